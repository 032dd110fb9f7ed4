package domain

// ScoredTrack pairs a track with its relevance score for one query. Scores
// are similarity values, not probabilities, and are comparable only within
// the result they arrived in.
type ScoredTrack struct {
	Track Track
	Score float64
}

// RecommendationResult is an ordered sequence of scored tracks, best match
// first. An empty result is a valid outcome, not an error.
type RecommendationResult []ScoredTrack
