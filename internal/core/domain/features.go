package domain

// TempoCeiling is the reference BPM used to bring tempo onto the same
// [0,1] scale as the other audio features before any distance computation.
const TempoCeiling = 250.0

// AudioFeatures is the numeric fingerprint of a track. Valence, Energy,
// Danceability and Acousticness live in [0,1]; Tempo is beats per minute.
// Loudness, Instrumentalness and Speechiness are carried for display and
// future use but do not participate in emotion mapping.
type AudioFeatures struct {
	Valence          float64
	Energy           float64
	Danceability     float64
	Tempo            float64
	Acousticness     float64
	Loudness         float64
	Instrumentalness float64
	Speechiness      float64
}

// Clamp returns a copy with every bounded dimension forced into its declared
// range. Out-of-range input is clamped, never rejected.
func (f AudioFeatures) Clamp() AudioFeatures {
	f.Valence = clamp01(f.Valence)
	f.Energy = clamp01(f.Energy)
	f.Danceability = clamp01(f.Danceability)
	f.Acousticness = clamp01(f.Acousticness)
	f.Instrumentalness = clamp01(f.Instrumentalness)
	f.Speechiness = clamp01(f.Speechiness)
	if f.Tempo < 0 {
		f.Tempo = 0
	}
	return f
}

// Vector returns the normalized representation used by the similarity and
// clustering code: the unit-range dimensions as-is and tempo scaled by
// TempoCeiling, all clamped to [0,1].
func (f AudioFeatures) Vector() []float64 {
	c := f.Clamp()
	return []float64{
		c.Valence,
		c.Energy,
		c.Danceability,
		clamp01(c.Tempo / TempoCeiling),
		c.Acousticness,
	}
}

// FeaturesFromVector is the inverse of Vector, used to turn cluster
// centroids computed in normalized space back into AudioFeatures.
func FeaturesFromVector(v []float64) AudioFeatures {
	var f AudioFeatures
	if len(v) != 5 {
		return f
	}
	f.Valence = clamp01(v[0])
	f.Energy = clamp01(v[1])
	f.Danceability = clamp01(v[2])
	f.Tempo = clamp01(v[3]) * TempoCeiling
	f.Acousticness = clamp01(v[4])
	return f
}

// Blend mixes f toward other, giving other the supplied weight in [0,1].
// Only the dimensions that participate in emotion mapping are blended.
func (f AudioFeatures) Blend(other AudioFeatures, weight float64) AudioFeatures {
	w := clamp01(weight)
	a := f.Clamp()
	b := other.Clamp()
	return AudioFeatures{
		Valence:      a.Valence*(1-w) + b.Valence*w,
		Energy:       a.Energy*(1-w) + b.Energy*w,
		Danceability: a.Danceability*(1-w) + b.Danceability*w,
		Tempo:        a.Tempo*(1-w) + b.Tempo*w,
		Acousticness: a.Acousticness*(1-w) + b.Acousticness*w,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
