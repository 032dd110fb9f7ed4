package services

import (
	"fmt"
	"sort"

	"github.com/jeredson/Spoti-Finder/internal/core/cluster"
	"github.com/jeredson/Spoti-Finder/internal/core/domain"
)

// DefaultPreferenceWeight is how strongly an optional user preference pulls
// the emotion target toward itself when no other weight is configured.
const DefaultPreferenceWeight = 0.5

// Recommender answers "tracks for emotion E" and "tracks like track T"
// queries against a catalog snapshot. Every method is a pure function of its
// inputs and the static profile table, so a single instance is safe for
// concurrent use from any number of request handlers.
type Recommender struct {
	prefWeight float64
}

// RecommenderOption customizes a Recommender at construction time.
type RecommenderOption func(*Recommender)

// WithPreferenceWeight overrides how strongly a user preference is blended
// into the emotion target. The value is clamped to [0,1].
func WithPreferenceWeight(w float64) RecommenderOption {
	return func(r *Recommender) {
		if w < 0 {
			w = 0
		}
		if w > 1 {
			w = 1
		}
		r.prefWeight = w
	}
}

// NewRecommender constructs a Recommender.
func NewRecommender(opts ...RecommenderOption) *Recommender {
	r := &Recommender{prefWeight: DefaultPreferenceWeight}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RecommendForEmotion ranks up to count tracks that best fit the emotion.
//
// The candidate set starts as the whole catalog. Tracks outside the
// profile's tempo range are dropped first; if that empties the set the
// filter is abandoned rather than returning nothing while broader matches
// exist. When the snapshot carries a cluster assignment, candidates are then
// narrowed to the cluster nearest the target unless that would leave fewer
// than count tracks. An optional preference is blended into the target as a
// weighted average before any scoring.
//
// An empty catalog yields an empty result, not an error. A catalog smaller
// than count yields as many tracks as exist.
func (r *Recommender) RecommendForEmotion(emotion domain.Emotion, catalog *domain.Catalog, count int, preference *domain.AudioFeatures) (domain.RecommendationResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", domain.ErrInvalidArgument, count)
	}

	profile, err := domain.ResolveProfile(emotion)
	if err != nil {
		return nil, err
	}

	target := profile.Target
	if preference != nil {
		target = target.Blend(*preference, r.prefWeight)
	}

	if catalog == nil || catalog.Len() == 0 {
		return domain.RecommendationResult{}, nil
	}

	candidates := make([]int, catalog.Len())
	for i := range candidates {
		candidates[i] = i
	}

	if !profile.Tempo.IsZero() {
		inRange := candidates[:0:0]
		for _, i := range candidates {
			if profile.Tempo.Contains(catalog.Track(i).Features.Tempo) {
				inRange = append(inRange, i)
			}
		}
		// Soft constraint: an empty tempo match falls back to the full
		// candidate set instead of returning nothing.
		if len(inRange) > 0 {
			candidates = inRange
		}
	}

	if clusters := catalog.Clusters(); clusters != nil {
		nearest := clusters.Nearest(target)
		within := candidates[:0:0]
		for _, i := range candidates {
			if clusters.Labels[i] == nearest {
				within = append(within, i)
			}
		}
		// Only narrow when the cluster can still satisfy the request.
		if len(within) >= count {
			candidates = within
		}
	}

	return rank(catalog, target, candidates, count, -1), nil
}

// RecommendSimilar ranks up to count tracks closest to the given track's
// feature vector, excluding the track itself. It fails with ErrTrackNotFound
// when the id is not in the catalog.
func (r *Recommender) RecommendSimilar(trackID string, catalog *domain.Catalog, count int) (domain.RecommendationResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", domain.ErrInvalidArgument, count)
	}
	if catalog == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrTrackNotFound, trackID)
	}

	source, ok := catalog.IndexOf(trackID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrTrackNotFound, trackID)
	}

	candidates := make([]int, catalog.Len())
	for i := range candidates {
		candidates[i] = i
	}

	return rank(catalog, catalog.Track(source).Features, candidates, count, source), nil
}

// RebuildClusters partitions the catalog into k feature-space regions. The
// caller attaches the result to the next snapshot; the engine itself never
// holds derived state.
func (r *Recommender) RebuildClusters(catalog *domain.Catalog, k int) (*domain.ClusterAssignment, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: no catalog", domain.ErrInsufficientData)
	}
	return cluster.Partition(catalog.Tracks(), k)
}

// rank scores the candidate positions against target and returns the top
// count, ordered by descending score. Candidates arrive in insertion order
// and the sort is stable, so ties keep catalog order and identical queries
// always produce identical output.
func rank(catalog *domain.Catalog, target domain.AudioFeatures, candidates []int, count int, exclude int) domain.RecommendationResult {
	scored := make(domain.RecommendationResult, 0, len(candidates))
	for _, i := range candidates {
		if i == exclude {
			continue
		}
		track := catalog.Track(i)
		scored = append(scored, domain.ScoredTrack{
			Track: track,
			Score: domain.Similarity(target, track.Features),
		})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})

	if len(scored) > count {
		scored = scored[:count]
	}
	return scored
}
