package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeredson/Spoti-Finder/internal/core/domain"
)

func upbeatTrack(id string, v float64) domain.Track {
	return domain.Track{ID: id, Features: domain.AudioFeatures{Valence: v, Energy: 0.8, Danceability: 0.8, Tempo: 130}}
}

func mellowTrack(id string, v float64) domain.Track {
	return domain.Track{ID: id, Features: domain.AudioFeatures{Valence: v, Energy: 0.2, Danceability: 0.2, Tempo: 70}}
}

func TestPartitionSeparatesObviousGroups(t *testing.T) {
	tracks := []domain.Track{
		upbeatTrack("u1", 0.9),
		mellowTrack("m1", 0.1),
		upbeatTrack("u2", 0.85),
		mellowTrack("m2", 0.15),
		upbeatTrack("u3", 0.95),
		mellowTrack("m3", 0.2),
	}

	a, err := Partition(tracks, 2)
	require.NoError(t, err)
	require.Len(t, a.Labels, len(tracks))
	require.Len(t, a.Centroids, 2)
	assert.Equal(t, 2, a.K)

	// All upbeat tracks share one cluster, all mellow tracks the other.
	assert.Equal(t, a.Labels[0], a.Labels[2])
	assert.Equal(t, a.Labels[0], a.Labels[4])
	assert.Equal(t, a.Labels[1], a.Labels[3])
	assert.Equal(t, a.Labels[1], a.Labels[5])
	assert.NotEqual(t, a.Labels[0], a.Labels[1])
}

func TestPartitionDeterministic(t *testing.T) {
	tracks := []domain.Track{
		upbeatTrack("a", 0.9),
		mellowTrack("b", 0.1),
		upbeatTrack("c", 0.7),
		mellowTrack("d", 0.3),
		upbeatTrack("e", 0.8),
		{ID: "f", Features: domain.AudioFeatures{Valence: 0.5, Energy: 0.5, Danceability: 0.5, Tempo: 110}},
	}

	first, err := Partition(tracks, 3)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := Partition(tracks, 3)
		require.NoError(t, err)
		assert.Equal(t, first.Labels, again.Labels)
		assert.Equal(t, first.Centroids, again.Centroids)
	}
}

func TestPartitionInvalidK(t *testing.T) {
	tracks := []domain.Track{upbeatTrack("a", 0.9)}

	_, err := Partition(tracks, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = Partition(tracks, -2)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestPartitionInsufficientData(t *testing.T) {
	tracks := []domain.Track{
		upbeatTrack("a", 0.9),
		mellowTrack("b", 0.1),
	}

	_, err := Partition(tracks, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientData)
}

func TestPartitionCountsDistinctVectors(t *testing.T) {
	// Two ids, identical feature vectors: only one distinct point, so two
	// clusters cannot be formed.
	tracks := []domain.Track{
		upbeatTrack("a", 0.9),
		upbeatTrack("b", 0.9),
	}

	_, err := Partition(tracks, 2)
	assert.ErrorIs(t, err, domain.ErrInsufficientData)
}

func TestPartitionEmptyCatalog(t *testing.T) {
	_, err := Partition(nil, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientData)
}

func TestPartitionSingleCluster(t *testing.T) {
	tracks := []domain.Track{
		upbeatTrack("a", 0.9),
		mellowTrack("b", 0.1),
		upbeatTrack("c", 0.8),
	}

	a, err := Partition(tracks, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, a.Labels)
}

func TestPartitionEveryTrackAssignedOnce(t *testing.T) {
	tracks := []domain.Track{
		upbeatTrack("a", 0.9),
		mellowTrack("b", 0.1),
		upbeatTrack("c", 0.7),
		mellowTrack("d", 0.2),
	}

	a, err := Partition(tracks, 2)
	require.NoError(t, err)
	for i, label := range a.Labels {
		assert.GreaterOrEqual(t, label, 0, "track %d", i)
		assert.Less(t, label, a.K, "track %d", i)
	}
}
