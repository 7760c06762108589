// Package distance provides the vector arithmetic used by the clusterer.
//
// Distances are squared Euclidean and never square-rooted: the square root is
// monotonic, so comparisons and distortion accounting work on the squared
// value directly.
//
// # Usage
//
//	d := distance.SquaredL2(a, b)
//	d, err := distance.SquaredL2Checked(a, b) // rejects unequal lengths
package distance
