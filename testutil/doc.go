// Package testutil provides testing utilities for lloyd.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating seeded random data sets with a known
// cluster structure and for comparing partitions.
//
// # Random Data Generation
//
//	rng := testutil.NewRNG(seed)
//	vecs := rng.UniformVectors(1000, 8)  // uniform [0, 1)
//	instances, labels := rng.Blobs(centers, 50, 0.1)
//
// # Partition Comparison
//
//	ok := testutil.SamePartition(result.ClusterAssignment, labels)
package testutil
