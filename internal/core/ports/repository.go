package ports

import (
	"context"

	"github.com/jeredson/Spoti-Finder/internal/core/domain"
)

// CatalogRepository caches the most recent catalog snapshot locally so the
// service can start without reaching the provider. Load returns
// domain.ErrNotFound when nothing has been cached yet.
type CatalogRepository interface {
	Load(ctx context.Context) (*domain.Catalog, error)
	Save(ctx context.Context, c *domain.Catalog) error
	UpdateTrackEnergy(ctx context.Context, trackID string, energy float64) error
}
