package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeredson/Spoti-Finder/internal/core/domain"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := NewAdapter(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func sampleCatalog() *domain.Catalog {
	return domain.NewCatalog("2026-01-02T03:04:05Z", []domain.Track{
		{
			ID:          "t1",
			Title:       "First",
			Artist:      "Ann",
			Album:       "Debut",
			Popularity:  80,
			PreviewURL:  "https://cdn.example/t1.mp3",
			ExternalURL: "https://open.example/t1",
			Features:    domain.AudioFeatures{Valence: 0.9, Energy: 0.8, Danceability: 0.7, Tempo: 128, Acousticness: 0.1},
		},
		{
			ID:       "t2",
			Title:    "Second",
			Artist:   "Ben",
			Features: domain.AudioFeatures{Valence: 0.2, Energy: 0.3, Danceability: 0.2, Tempo: 72, Acousticness: 0.8},
		},
		{
			ID:       "t3",
			Title:    "Third",
			Artist:   "Cleo",
			Features: domain.AudioFeatures{Valence: 0.5, Energy: 0.5, Danceability: 0.5, Tempo: 100},
		},
	})
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, sampleCatalog()))

	got, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-02T03:04:05Z", got.Version())
	require.Equal(t, 3, got.Len())

	// Order survives the round trip.
	assert.Equal(t, "t1", got.Track(0).ID)
	assert.Equal(t, "t2", got.Track(1).ID)
	assert.Equal(t, "t3", got.Track(2).ID)

	first := got.Track(0)
	assert.Equal(t, "First", first.Title)
	assert.Equal(t, "Ann", first.Artist)
	assert.Equal(t, "Debut", first.Album)
	assert.Equal(t, 80, first.Popularity)
	assert.Equal(t, "https://cdn.example/t1.mp3", first.PreviewURL)
	assert.Equal(t, "https://open.example/t1", first.ExternalURL)
	assert.InDelta(t, 0.9, first.Features.Valence, 1e-12)
	assert.InDelta(t, 128, first.Features.Tempo, 1e-12)
}

func TestLoadEmptyCache(t *testing.T) {
	a := newTestAdapter(t)

	_, err := a.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, sampleCatalog()))

	smaller := domain.NewCatalog("v2", []domain.Track{
		{ID: "x1", Title: "Only", Artist: "Dee", Features: domain.AudioFeatures{Valence: 0.4, Energy: 0.4, Danceability: 0.4, Tempo: 90}},
	})
	require.NoError(t, a.Save(ctx, smaller))

	got, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Version())
	assert.Equal(t, 1, got.Len())
	assert.Equal(t, "x1", got.Track(0).ID)
}

func TestUpdateTrackEnergy(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, sampleCatalog()))
	require.NoError(t, a.UpdateTrackEnergy(ctx, "t2", 0.66))

	got, err := a.Load(ctx)
	require.NoError(t, err)
	track, ok := got.Lookup("t2")
	require.True(t, ok)
	assert.InDelta(t, 0.66, track.Features.Energy, 1e-12)
}

func TestUpdateTrackEnergyClampsValue(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, sampleCatalog()))
	require.NoError(t, a.UpdateTrackEnergy(ctx, "t1", 1.5))

	got, err := a.Load(ctx)
	require.NoError(t, err)
	track, _ := got.Lookup("t1")
	assert.Equal(t, 1.0, track.Features.Energy)
}

func TestUpdateTrackEnergyUnknownTrack(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, sampleCatalog()))

	err := a.UpdateTrackEnergy(ctx, "nope", 0.5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
