package domain

// TempoRange bounds candidate tempo in BPM. The zero value means no bound.
type TempoRange struct {
	Min float64
	Max float64
}

// IsZero reports whether the range places no constraint on tempo.
func (r TempoRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Contains reports whether bpm falls inside the range. An unbounded range
// contains everything.
func (r TempoRange) Contains(bpm float64) bool {
	if r.IsZero() {
		return true
	}
	return bpm >= r.Min && bpm <= r.Max
}

// EmotionProfile maps an emotion onto a target region of feature space: the
// vector tracks are scored against, plus an optional preferred tempo range.
type EmotionProfile struct {
	Emotion Emotion
	Target  AudioFeatures
	Tempo   TempoRange
}

// profiles is static configuration: loaded once, never mutated at runtime.
var profiles = map[Emotion]EmotionProfile{
	EmotionHappy: {
		Emotion: EmotionHappy,
		Target:  AudioFeatures{Valence: 0.8, Energy: 0.7, Danceability: 0.8, Tempo: 120},
		Tempo:   TempoRange{Min: 100, Max: 180},
	},
	EmotionSad: {
		Emotion: EmotionSad,
		Target:  AudioFeatures{Valence: 0.2, Energy: 0.3, Danceability: 0.3, Tempo: 80},
		Tempo:   TempoRange{Min: 60, Max: 100},
	},
	EmotionAngry: {
		Emotion: EmotionAngry,
		Target:  AudioFeatures{Valence: 0.1, Energy: 0.9, Danceability: 0.6, Tempo: 140},
		Tempo:   TempoRange{Min: 120, Max: 200},
	},
	EmotionCalm: {
		Emotion: EmotionCalm,
		Target:  AudioFeatures{Valence: 0.5, Energy: 0.3, Danceability: 0.4, Tempo: 85},
		Tempo:   TempoRange{Min: 60, Max: 110},
	},
	EmotionFear: {
		Emotion: EmotionFear,
		Target:  AudioFeatures{Valence: 0.2, Energy: 0.4, Danceability: 0.2, Tempo: 90},
		Tempo:   TempoRange{Min: 70, Max: 120},
	},
	EmotionSurprise: {
		Emotion: EmotionSurprise,
		Target:  AudioFeatures{Valence: 0.6, Energy: 0.6, Danceability: 0.7, Tempo: 110},
		Tempo:   TempoRange{Min: 90, Max: 150},
	},
	EmotionDisgust: {
		Emotion: EmotionDisgust,
		Target:  AudioFeatures{Valence: 0.3, Energy: 0.4, Danceability: 0.3, Tempo: 95},
		Tempo:   TempoRange{Min: 70, Max: 130},
	},
	EmotionNeutral: {
		Emotion: EmotionNeutral,
		Target:  AudioFeatures{Valence: 0.5, Energy: 0.5, Danceability: 0.5, Tempo: 110},
	},
}

// ResolveProfile returns the static profile for an emotion from the closed
// set. Labels that have not been normalized with ParseEmotion fail with
// ErrUnknownEmotion.
func ResolveProfile(e Emotion) (EmotionProfile, error) {
	p, ok := profiles[e]
	if !ok {
		return EmotionProfile{}, ErrUnknownEmotion
	}
	return p, nil
}
