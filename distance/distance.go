package distance

import (
	"errors"
)

// ErrLengthMismatch is returned by the checked variants when the two
// vectors have different lengths.
var ErrLengthMismatch = errors.New("vector sizes do not match")

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

// SquaredL2Checked is SquaredL2 with a length check.
func SquaredL2Checked(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrLengthMismatch
	}
	return SquaredL2(a, b), nil
}

// AddInPlace adds src to dst element-wise.
// Assumes len(src) >= len(dst).
func AddInPlace(dst, src []float64) {
	for i := range dst {
		dst[i] += src[i]
	}
}

// DivideInPlace divides every element of v by s.
func DivideInPlace(v []float64, s float64) {
	for i := range v {
		v[i] /= s
	}
}
