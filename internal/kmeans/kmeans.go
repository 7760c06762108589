package kmeans

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/lloyd/distance"
)

// Repair describes the relocation of one empty centroid.
type Repair struct {
	// Centroid is the index of the centroid that had no instances.
	Centroid int
	// Instance is the index of the instance it was moved onto.
	Instance int
	// Distance is the squared distance of that instance to the centroid it
	// was assigned to before the move.
	Distance float64
}

// Nearest returns the index of the centroid closest to vec and the squared
// distance to it. In case of ties the lower index wins.
func Nearest(vec []float64, centroids [][]float64) (int, float64) {
	best := 0
	minDist := distance.SquaredL2(vec, centroids[0])

	for j := 1; j < len(centroids); j++ {
		d := distance.SquaredL2(vec, centroids[j])
		if d < minDist {
			minDist = d
			best = j
		}
	}

	return best, minDist
}

// Assign recomputes assignment and populations from scratch.
// len(assignment) must equal len(instances) and len(populations) must equal
// len(centroids).
func Assign(instances, centroids [][]float64, assignment, populations []int) {
	clear(populations)
	for i, vec := range instances {
		c, _ := Nearest(vec, centroids)
		assignment[i] = c
		populations[c]++
	}
}

// Farthest returns the index of the instance with the largest squared
// distance to its own assigned centroid, and that distance. The first such
// instance wins ties.
func Farthest(instances, centroids [][]float64, assignment []int) (int, float64) {
	best := 0
	maxDist := distance.SquaredL2(instances[0], centroids[assignment[0]])

	for i := 1; i < len(instances); i++ {
		d := distance.SquaredL2(instances[i], centroids[assignment[i]])
		if d > maxDist {
			maxDist = d
			best = i
		}
	}

	return best, maxDist
}

// EmptyClusters returns the indices of all centroids with zero population.
func EmptyClusters(populations []int) *roaring.Bitmap {
	empty := roaring.New()
	for c, count := range populations {
		if count == 0 {
			empty.Add(uint32(c))
		}
	}
	return empty
}

// Stabilize assigns every instance and relocates empty clusters until no
// cluster is empty.
//
// Each round repairs the lowest empty index by copying the instance farthest
// from its assigned centroid into it, then reassigns everything. onRepair,
// if non-nil, is called after each relocation.
//
// When the farthest instance already sits on its centroid no instance can be
// split off: there are fewer distinct instances than clusters. The empty
// centroids are then left where they are and returned. On success the
// returned bitmap is empty.
func Stabilize(instances, centroids [][]float64, assignment, populations []int, onRepair func(Repair)) *roaring.Bitmap {
	for {
		Assign(instances, centroids, assignment, populations)

		empty := EmptyClusters(populations)
		if empty.IsEmpty() {
			return empty
		}

		far, d := Farthest(instances, centroids, assignment)
		if d == 0 {
			return empty
		}

		c := int(empty.Minimum())
		copy(centroids[c], instances[far])

		if onRepair != nil {
			onRepair(Repair{Centroid: c, Instance: far, Distance: d})
		}
	}
}

// Update sets every populated centroid to the coordinate-wise mean of its
// instances. Centroids with a population of zero keep their coordinates.
func Update(instances, centroids [][]float64, assignment, populations []int) {
	for c, centroid := range centroids {
		if populations[c] > 0 {
			clear(centroid)
		}
	}

	for i, vec := range instances {
		distance.AddInPlace(centroids[assignment[i]], vec)
	}

	for c, centroid := range centroids {
		if populations[c] > 0 {
			distance.DivideInPlace(centroid, float64(populations[c]))
		}
	}
}

// Distortion returns the sum of squared distances between each instance and
// its assigned centroid.
func Distortion(instances, centroids [][]float64, assignment []int) float64 {
	var sum float64
	for i, vec := range instances {
		sum += distance.SquaredL2(vec, centroids[assignment[i]])
	}
	return sum
}

// RelativeChange returns |h[t] - h[t-1]| / h[t-1] for the last two entries
// of history.
//
// With fewer than two entries the change is +Inf. A previous distortion of
// zero yields 0 if the current one is zero as well and +Inf otherwise.
func RelativeChange(history []float64) float64 {
	if len(history) < 2 {
		return math.Inf(1)
	}

	prev := history[len(history)-2]
	cur := history[len(history)-1]

	if prev == 0 {
		if cur == 0 {
			return 0
		}
		return math.Inf(1)
	}

	return math.Abs(cur-prev) / prev
}

// Converged reports whether the relative change at the end of history is at
// most threshold.
func Converged(history []float64, threshold float64) bool {
	return RelativeChange(history) <= threshold
}
