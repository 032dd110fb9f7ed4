package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeredson/Spoti-Finder/internal/core/domain"
)

// --- Mocks ---

type mockProvider struct {
	catalog *domain.Catalog
	err     error
	calls   int
}

func (m *mockProvider) BuildCatalog(ctx context.Context, genres []string, tracksPerGenre int) (*domain.Catalog, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.catalog, nil
}

type mockRepo struct {
	loaded  *domain.Catalog
	loadErr error
	saveErr error

	saved *domain.Catalog
}

func (m *mockRepo) Load(ctx context.Context) (*domain.Catalog, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.loaded, nil
}

func (m *mockRepo) Save(ctx context.Context, c *domain.Catalog) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = c
	return nil
}

func (m *mockRepo) UpdateTrackEnergy(ctx context.Context, trackID string, energy float64) error {
	return nil
}

func testTracks() []domain.Track {
	return []domain.Track{
		{ID: "a", Features: domain.AudioFeatures{Valence: 0.9, Energy: 0.8, Danceability: 0.8, Tempo: 130}},
		{ID: "b", Features: domain.AudioFeatures{Valence: 0.1, Energy: 0.2, Danceability: 0.2, Tempo: 70}},
		{ID: "c", Features: domain.AudioFeatures{Valence: 0.5, Energy: 0.5, Danceability: 0.5, Tempo: 110}},
	}
}

func TestLibraryStartsEmpty(t *testing.T) {
	l := NewLibrary(&mockProvider{}, &mockRepo{}, LibraryConfig{}, zerolog.Nop())

	snap := l.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, 0, snap.Len())
}

func TestLibraryLoadCached(t *testing.T) {
	cached := domain.NewCatalog("cached", testTracks())
	l := NewLibrary(&mockProvider{}, &mockRepo{loaded: cached}, LibraryConfig{}, zerolog.Nop())

	require.NoError(t, l.LoadCached(context.Background()))
	assert.Equal(t, 3, l.Snapshot().Len())
	assert.Equal(t, "cached", l.Snapshot().Version())
}

func TestLibraryLoadCachedMissingIsNotAnError(t *testing.T) {
	l := NewLibrary(&mockProvider{}, &mockRepo{loadErr: domain.ErrNotFound}, LibraryConfig{}, zerolog.Nop())

	require.NoError(t, l.LoadCached(context.Background()))
	assert.Equal(t, 0, l.Snapshot().Len())
}

func TestLibraryLoadCachedFailure(t *testing.T) {
	l := NewLibrary(&mockProvider{}, &mockRepo{loadErr: errors.New("disk on fire")}, LibraryConfig{}, zerolog.Nop())

	assert.Error(t, l.LoadCached(context.Background()))
}

func TestLibraryRefreshSwapsSnapshot(t *testing.T) {
	fetched := domain.NewCatalog("fresh", testTracks())
	provider := &mockProvider{catalog: fetched}
	repo := &mockRepo{}
	l := NewLibrary(provider, repo, LibraryConfig{Clusters: 2}, zerolog.Nop())

	before := l.Snapshot()

	got, err := l.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, got.Len())
	assert.Equal(t, "fresh", got.Version())
	require.NotNil(t, got.Clusters(), "refresh clusters the new snapshot")
	assert.Equal(t, 2, got.Clusters().K)

	assert.Same(t, got, l.Snapshot())
	assert.Equal(t, 0, before.Len(), "old snapshot is untouched")
	assert.Same(t, fetched, repo.saved, "fetched catalog is persisted")
}

func TestLibraryRefreshProviderFailure(t *testing.T) {
	l := NewLibrary(&mockProvider{err: errors.New("rate limited")}, &mockRepo{}, LibraryConfig{}, zerolog.Nop())

	_, err := l.Refresh(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, l.Snapshot().Len(), "failed refresh keeps the old snapshot")
}

func TestLibraryRefreshSaveFailureIsNotFatal(t *testing.T) {
	fetched := domain.NewCatalog("fresh", testTracks())
	l := NewLibrary(&mockProvider{catalog: fetched}, &mockRepo{saveErr: errors.New("disk full")}, LibraryConfig{}, zerolog.Nop())

	got, err := l.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, got.Len())
}

func TestLibraryRefreshTooSmallToCluster(t *testing.T) {
	fetched := domain.NewCatalog("fresh", testTracks()[:1])
	l := NewLibrary(&mockProvider{catalog: fetched}, &mockRepo{}, LibraryConfig{Clusters: 8}, zerolog.Nop())

	got, err := l.Refresh(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got.Clusters(), "undersized catalog is served unclustered")
	assert.Equal(t, 1, got.Len())
}

func TestLibraryCachedCatalogIsClustered(t *testing.T) {
	cached := domain.NewCatalog("cached", testTracks())
	l := NewLibrary(&mockProvider{}, &mockRepo{loaded: cached}, LibraryConfig{Clusters: 2}, zerolog.Nop())

	require.NoError(t, l.LoadCached(context.Background()))
	require.NotNil(t, l.Snapshot().Clusters())
	assert.Equal(t, 2, l.Snapshot().Clusters().K)
}
