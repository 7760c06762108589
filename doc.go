// Package lloyd implements Lloyd's k-means clustering over caller-initialized
// centroids.
//
// # Quick Start
//
//	centroids := [][]float64{{0}, {5}}
//	instances := [][]float64{{1}, {2}, {9}, {10}}
//
//	res, err := lloyd.Cluster(ctx, centroids, instances, 0.001)
//	// res.Centroids         ≈ [[1.5] [9.5]]
//	// res.ClusterAssignment = [0 0 1 1]
//
// # Algorithm
//
// Every iteration:
//
//  1. assigns each instance to the nearest centroid by squared Euclidean
//     distance (ties go to the lower centroid index),
//  2. relocates each empty centroid onto the instance farthest from its own
//     centroid, reassigning after every relocation until no cluster is empty,
//  3. moves every centroid to the mean of its instances,
//  4. appends the distortion (sum of squared distances) to the history.
//
// The run stops once |h[t]-h[t-1]| / h[t-1] <= threshold. The first
// iteration has no predecessor and always runs. A previous distortion of zero
// counts as converged when the current one is zero too.
//
// If every instance already coincides with its centroid while a cluster is
// still empty (fewer distinct instances than centroids), the cluster stays
// empty and keeps its coordinates.
//
// # Configuration
//
//	c := lloyd.New(
//	    lloyd.WithLogger(lloyd.NewTextLogger(slog.LevelDebug)),
//	    lloyd.WithMetricsCollector(&lloyd.BasicMetricsCollector{}),
//	    lloyd.WithMaxIterations(100),
//	)
//	res, err := c.Cluster(ctx, centroids, instances, 1e-4)
//
// Initialization is up to the caller; the input centroids are copied and
// never modified.
package lloyd
