package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/jeredson/Spoti-Finder/internal/core/cluster"
	"github.com/jeredson/Spoti-Finder/internal/core/domain"
	"github.com/jeredson/Spoti-Finder/internal/core/ports"
)

// LibraryConfig controls what a catalog refresh fetches and how it is
// partitioned.
type LibraryConfig struct {
	Genres         []string
	TracksPerGenre int
	Clusters       int
}

// Library owns the current catalog snapshot. Refreshes rebuild the snapshot
// whole, including its cluster cache, and swap it in atomically; readers
// never see a half-updated catalog and never block. Clustering runs here, on
// the refresh path, so recommendation queries stay cheap.
type Library struct {
	provider ports.MusicProvider
	repo     ports.CatalogRepository
	cfg      LibraryConfig
	log      zerolog.Logger

	current atomic.Pointer[domain.Catalog]
}

// NewLibrary constructs a Library starting from an empty catalog.
func NewLibrary(provider ports.MusicProvider, repo ports.CatalogRepository, cfg LibraryConfig, log zerolog.Logger) *Library {
	l := &Library{
		provider: provider,
		repo:     repo,
		cfg:      cfg,
		log:      log,
	}
	l.current.Store(domain.NewCatalog("", nil))
	return l
}

// Snapshot returns the current immutable catalog. The result stays valid
// after later refreshes; callers score against whatever snapshot they hold.
func (l *Library) Snapshot() *domain.Catalog {
	return l.current.Load()
}

// LoadCached restores the last persisted catalog, if any. A missing cache is
// not an error; the library simply stays empty until the first refresh.
func (l *Library) LoadCached(ctx context.Context) error {
	if l.repo == nil {
		return nil
	}
	cached, err := l.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			l.log.Info().Msg("no cached catalog, starting empty")
			return nil
		}
		return fmt.Errorf("library: load cached catalog: %w", err)
	}
	l.install(cached)
	l.log.Info().Int("tracks", cached.Len()).Str("version", cached.Version()).Msg("loaded cached catalog")
	return nil
}

// Refresh fetches a fresh catalog from the provider, persists it, clusters
// it and swaps it in. Persistence and clustering failures are logged but do
// not discard the fetched catalog.
func (l *Library) Refresh(ctx context.Context) (*domain.Catalog, error) {
	fetched, err := l.provider.BuildCatalog(ctx, l.cfg.Genres, l.cfg.TracksPerGenre)
	if err != nil {
		return nil, fmt.Errorf("library: refresh catalog: %w", err)
	}

	if l.repo != nil {
		if err := l.repo.Save(ctx, fetched); err != nil {
			l.log.Warn().Err(err).Msg("failed to persist catalog snapshot")
		}
	}

	installed := l.install(fetched)
	l.log.Info().Int("tracks", installed.Len()).Str("version", installed.Version()).Msg("catalog refreshed")
	return installed, nil
}

// install attaches the cluster cache and atomically publishes the snapshot.
func (l *Library) install(c *domain.Catalog) *domain.Catalog {
	if l.cfg.Clusters > 0 && c.Len() > 0 {
		assignment, err := cluster.Partition(c.Tracks(), l.cfg.Clusters)
		switch {
		case err == nil:
			c = c.WithClusters(assignment)
		case errors.Is(err, domain.ErrInsufficientData):
			l.log.Warn().Err(err).Msg("catalog too small to cluster, serving unclustered")
		default:
			l.log.Warn().Err(err).Msg("clustering failed, serving unclustered")
		}
	}
	l.current.Store(c)
	return c
}
