package domain

import "gonum.org/v1/gonum/floats"

// Similarity scores how closely two feature sets match, as cosine similarity
// over the normalized vectors. The result is in [0,1]: 1 for identical
// directions, 0 for orthogonal ones. Cosine is used instead of Euclidean
// distance because it is scale-invariant across dimensions with different
// natural ranges. If either vector is all zero there is no signal to compare
// and the score is 0.
func Similarity(a, b AudioFeatures) float64 {
	va := a.Vector()
	vb := b.Vector()

	na := floats.Norm(va, 2)
	nb := floats.Norm(vb, 2)
	if na == 0 || nb == 0 {
		return 0
	}

	// Every dimension is non-negative, so the cosine already lands in
	// [0,1]; the clamp only absorbs floating-point drift.
	return clamp01(floats.Dot(va, vb) / (na * nb))
}
