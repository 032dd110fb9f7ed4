package ports

import (
	"context"

	"github.com/jeredson/Spoti-Finder/internal/core/domain"
)

// MusicProvider assembles a catalog of tracks with audio features from an
// external service. Feature extraction and unit conversion happen on the
// provider side; the catalog arrives ready for scoring.
type MusicProvider interface {
	BuildCatalog(ctx context.Context, genres []string, tracksPerGenre int) (*domain.Catalog, error)
}
