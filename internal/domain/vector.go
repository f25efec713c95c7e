package domain

import "math"

// Modality is one of the two independent query channels.
type Modality string

const (
	ModalityText  Modality = "text"
	ModalityImage Modality = "image"
)

// Vector is a fixed-length embedding produced by an external encoder.
// An all-zero vector is the "no usable signal" sentinel, not a real embedding.
type Vector []float32

// IsZero reports whether the vector is empty or all zeros.
func (v Vector) IsZero() bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Cosine returns the cosine similarity between v and other in [-1, 1].
// Either operand being the zero sentinel yields 0 by definition; the
// division in the cosine formula is never reached for degenerate input.
func (v Vector) Cosine(other Vector) float64 {
	if len(v) == 0 || len(v) != len(other) {
		return 0
	}
	var dot, normV, normO float64
	for i := range v {
		a, b := float64(v[i]), float64(other[i])
		dot += a * b
		normV += a * a
		normO += b * b
	}
	if normV == 0 || normO == 0 {
		return 0
	}
	return dot / (math.Sqrt(normV) * math.Sqrt(normO))
}
