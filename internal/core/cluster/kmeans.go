// Package cluster partitions a catalog into feature-space regions so the
// recommender can narrow its search to tracks near an emotion target.
package cluster

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/jeredson/Spoti-Finder/internal/core/domain"
)

// maxIterations caps the assign/recompute loop so Partition always
// terminates even when assignments oscillate.
const maxIterations = 100

// Partition runs k-means over the tracks' normalized feature vectors and
// returns the resulting assignment. Seeding is deterministic (farthest-first
// from the first track in insertion order), so identical input always yields
// an identical partition. It fails with ErrInvalidArgument when k is not
// positive and ErrInsufficientData when k exceeds the number of distinct
// feature vectors.
func Partition(tracks []domain.Track, k int) (*domain.ClusterAssignment, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: cluster count must be positive, got %d", domain.ErrInvalidArgument, k)
	}

	vecs := make([][]float64, len(tracks))
	for i, t := range tracks {
		vecs[i] = t.Features.Vector()
	}

	if distinct := countDistinct(vecs); k > distinct {
		return nil, fmt.Errorf("%w: %d clusters requested but only %d distinct tracks", domain.ErrInsufficientData, k, distinct)
	}

	centroids := seed(vecs, k)
	labels := make([]int, len(vecs))
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < maxIterations; iter++ {
		if !assign(vecs, centroids, labels) {
			break
		}
		recompute(vecs, labels, centroids)
	}

	out := &domain.ClusterAssignment{
		K:         k,
		Labels:    labels,
		Centroids: make([]domain.AudioFeatures, k),
	}
	for id, c := range centroids {
		out.Centroids[id] = domain.FeaturesFromVector(c)
	}
	return out, nil
}

// seed picks k starting centroids spaced by maximal pairwise distance: the
// first track in insertion order, then repeatedly the track farthest from
// its nearest already-chosen centroid. Ties keep the lowest index.
func seed(vecs [][]float64, k int) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(vecs[0]))

	nearest := make([]float64, len(vecs))
	for i, v := range vecs {
		nearest[i] = floats.Distance(v, centroids[0], 2)
	}

	for len(centroids) < k {
		next := 0
		for i := 1; i < len(vecs); i++ {
			if nearest[i] > nearest[next] {
				next = i
			}
		}
		centroids = append(centroids, clone(vecs[next]))
		for i, v := range vecs {
			if d := floats.Distance(v, centroids[len(centroids)-1], 2); d < nearest[i] {
				nearest[i] = d
			}
		}
	}
	return centroids
}

// assign relabels every vector with its nearest centroid and reports whether
// any label changed. Ties keep the lowest cluster id.
func assign(vecs [][]float64, centroids [][]float64, labels []int) bool {
	changed := false
	for i, v := range vecs {
		best := 0
		bestDist := floats.Distance(v, centroids[0], 2)
		for id := 1; id < len(centroids); id++ {
			if d := floats.Distance(v, centroids[id], 2); d < bestDist {
				best = id
				bestDist = d
			}
		}
		if labels[i] != best {
			labels[i] = best
			changed = true
		}
	}
	return changed
}

// recompute replaces each centroid with the mean of its members. A cluster
// that lost all members keeps its previous centroid.
func recompute(vecs [][]float64, labels []int, centroids [][]float64) {
	dims := len(centroids[0])
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for id := range sums {
		sums[id] = make([]float64, dims)
	}

	for i, v := range vecs {
		floats.Add(sums[labels[i]], v)
		counts[labels[i]]++
	}

	for id := range centroids {
		if counts[id] == 0 {
			continue
		}
		floats.Scale(1/float64(counts[id]), sums[id])
		copy(centroids[id], sums[id])
	}
}

func countDistinct(vecs [][]float64) int {
	seen := make(map[[5]float64]struct{}, len(vecs))
	for _, v := range vecs {
		var key [5]float64
		copy(key[:], v)
		seen[key] = struct{}{}
	}
	return len(seen)
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
