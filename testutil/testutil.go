package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformVectors generates random vectors with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float64()
		}
		vectors[i] = vec
	}

	return vectors
}

// GaussianVectors generates random vectors with values from a standard normal distribution.
func (r *RNG) GaussianVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.NormFloat64()
		}
		vectors[i] = vec
	}

	return vectors
}

// Blobs generates perCenter instances around each of the given centers with
// Gaussian noise of standard deviation spread. Instances are emitted center by
// center, and labels[i] is the index of the center instance i was drawn from.
func (r *RNG) Blobs(centers [][]float64, perCenter int, spread float64) ([][]float64, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	num := len(centers) * perCenter
	instances := make([][]float64, 0, num)
	labels := make([]int, 0, num)

	for c, center := range centers {
		for range perCenter {
			vec := make([]float64, len(center))
			for j := range vec {
				vec[j] = center[j] + r.rand.NormFloat64()*spread
			}
			instances = append(instances, vec)
			labels = append(labels, c)
		}
	}

	return instances, labels
}

// Sample returns copies of k distinct instances chosen at random.
// It panics if k > len(instances).
func (r *RNG) Sample(instances [][]float64, k int) [][]float64 {
	r.mu.Lock()
	perm := r.rand.Perm(len(instances))
	r.mu.Unlock()

	out := make([][]float64, k)
	for i := range k {
		out[i] = append([]float64(nil), instances[perm[i]]...)
	}
	return out
}

// Clone returns a deep copy of vectors.
func Clone(vectors [][]float64) [][]float64 {
	if vectors == nil {
		return nil
	}
	out := make([][]float64, len(vectors))
	for i, v := range vectors {
		out[i] = append([]float64(nil), v...)
	}
	return out
}

// SamePartition reports whether two labelings group the same indices
// together, regardless of which label number each group carries.
func SamePartition(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	forward := make(map[int]int)
	backward := make(map[int]int)

	for i := range a {
		if want, ok := forward[a[i]]; ok && want != b[i] {
			return false
		}
		if want, ok := backward[b[i]]; ok && want != a[i] {
			return false
		}
		forward[a[i]] = b[i]
		backward[b[i]] = a[i]
	}

	return true
}
