package kmeans

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrNonFiniteDistortion is returned when the distortion overflows to an
// infinite or NaN value. Finite coordinates can still overflow once squared
// or summed.
var ErrNonFiniteDistortion = errors.New("distortion is not finite")

// Iteration is reported to Hooks.OnIteration after each completed pass.
type Iteration struct {
	// Index is zero-based.
	Index int
	// Distortion is the value appended to the history for this pass.
	Distortion float64
	// Change is the relative change against the previous pass (+Inf on the
	// first one).
	Change float64
	// Populations at the time the distortion was computed. Only valid for
	// the duration of the callback.
	Populations []int
}

// Hooks observe a run. Any field may be nil.
type Hooks struct {
	OnRepair       func(r Repair)
	OnUnrepairable func(iteration int, empty *roaring.Bitmap)
	OnIteration    func(it Iteration)
}

// Outcome is the state at the end of a run.
type Outcome struct {
	Assignment  []int
	Populations []int
	History     []float64
	Converged   bool
}

// Lloyd runs the k-means loop.
type Lloyd struct {
	// MaxIterations bounds the number of passes when positive.
	MaxIterations int
	Hooks         Hooks
}

// Run clusters instances starting from centroids, which are updated in place.
//
// The loop stops when the relative change in distortion is at most
// threshold. The first pass always runs. A distortion that overflows fails
// the run with ErrNonFiniteDistortion. If len(centroids) is zero or there
// are fewer instances than centroids Run does nothing and returns an empty
// Outcome.
func (l *Lloyd) Run(ctx context.Context, centroids, instances [][]float64, threshold float64) (*Outcome, error) {
	k, n := len(centroids), len(instances)
	if k == 0 || n < k {
		return &Outcome{}, nil
	}

	out := &Outcome{
		Assignment:  make([]int, n),
		Populations: make([]int, k),
	}

	for iter := 0; ; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("kmeans: iteration %d: %w", iter, err)
		}

		empty := Stabilize(instances, centroids, out.Assignment, out.Populations, l.Hooks.OnRepair)
		if !empty.IsEmpty() && l.Hooks.OnUnrepairable != nil {
			l.Hooks.OnUnrepairable(iter, empty)
		}

		Update(instances, centroids, out.Assignment, out.Populations)

		d := Distortion(instances, centroids, out.Assignment)
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, fmt.Errorf("kmeans: iteration %d: %w", iter, ErrNonFiniteDistortion)
		}
		out.History = append(out.History, d)
		change := RelativeChange(out.History)

		if l.Hooks.OnIteration != nil {
			l.Hooks.OnIteration(Iteration{
				Index:       iter,
				Distortion:  d,
				Change:      change,
				Populations: out.Populations,
			})
		}

		if Converged(out.History, threshold) {
			out.Converged = true
			return out, nil
		}

		if l.MaxIterations > 0 && iter+1 >= l.MaxIterations {
			return out, nil
		}
	}
}
