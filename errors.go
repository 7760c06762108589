package lloyd

import (
	"errors"
	"fmt"

	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/internal/kmeans"
)

var (
	// ErrInvalidThreshold is returned when the convergence threshold is
	// negative or NaN.
	ErrInvalidThreshold = errors.New("threshold must be a non-negative number")

	// ErrNonFiniteDistortion is returned when finite inputs overflow during
	// clustering and the distortion becomes infinite or NaN.
	ErrNonFiniteDistortion = kmeans.ErrNonFiniteDistortion
)

// Kinds of input points named in validation errors.
const (
	KindCentroid = "centroid"
	KindInstance = "instance"
)

// ErrDimensionMismatch indicates a point whose length differs from the
// dimension of the first centroid.
//
// It unwraps to distance.ErrLengthMismatch.
type ErrDimensionMismatch struct {
	Kind     string
	Index    int
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: %s %d: expected %d, got %d", e.Kind, e.Index, e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return distance.ErrLengthMismatch }

// ErrInvalidDimension indicates points without any coordinates.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ErrNonFiniteValue indicates a NaN or infinite coordinate.
type ErrNonFiniteValue struct {
	Kind      string
	Index     int
	Dimension int
	Value     float64
}

func (e *ErrNonFiniteValue) Error() string {
	return fmt.Sprintf("non-finite value: %s %d, dimension %d: %v", e.Kind, e.Index, e.Dimension, e.Value)
}
