package lloyd

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Result is the outcome of a clustering run.
type Result struct {
	// Centroids are the final centroids, k vectors of dimension d.
	Centroids [][]float64
	// DistortionIterations holds the distortion after every iteration, in
	// order. Its length is the number of iterations run.
	DistortionIterations []float64
	// ClusterAssignment maps every instance index to a centroid index.
	ClusterAssignment []int
	// Converged is false when the run was cut short by WithMaxIterations.
	Converged bool
}

// Iterations returns the number of iterations run.
func (r *Result) Iterations() int {
	return len(r.DistortionIterations)
}

// Distortion returns the final distortion, or 0 for an empty result.
func (r *Result) Distortion() float64 {
	if len(r.DistortionIterations) == 0 {
		return 0
	}
	return r.DistortionIterations[len(r.DistortionIterations)-1]
}

// Populations returns the number of instances assigned to each centroid.
func (r *Result) Populations() []int {
	if len(r.Centroids) == 0 {
		return nil
	}
	populations := make([]int, len(r.Centroids))
	for _, c := range r.ClusterAssignment {
		populations[c]++
	}
	return populations
}

// Members returns the indices of the instances assigned to centroid c.
// The bitmap is empty if c is out of range.
func (r *Result) Members(c int) *roaring.Bitmap {
	members := roaring.New()
	for i, assigned := range r.ClusterAssignment {
		if assigned == c {
			members.Add(uint32(i))
		}
	}
	return members
}
