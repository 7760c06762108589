// Package kmeans implements Lloyd's k-means iteration over caller-initialized
// centroids.
//
// Each step of an iteration is a separate function so it can be tested on
// its own:
//
//   - Assign: nearest centroid per instance, ties to the lowest index
//   - Stabilize: relocate empty clusters onto the farthest instance
//   - Update: centroid = mean of its instances
//   - Distortion: sum of squared distances to the assigned centroids
//   - RelativeChange / Converged: the stopping rule over the history
//
// Lloyd strings them together. All functions mutate the slices they are
// handed; copying caller data is the job of the public package.
package kmeans
