package lloyd

import (
	"context"
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/lloyd/internal/kmeans"
)

// Clusterer runs Lloyd's k-means with a fixed configuration.
// It holds no per-run state and is safe for concurrent use.
type Clusterer struct {
	opts options
}

// New creates a Clusterer.
func New(optFns ...Option) *Clusterer {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Clusterer{opts: opts}
}

// Cluster is a convenience wrapper for New(optFns...).Cluster.
func Cluster(ctx context.Context, centroids, instances [][]float64, threshold float64, optFns ...Option) (*Result, error) {
	return New(optFns...).Cluster(ctx, centroids, instances, threshold)
}

// Cluster partitions instances starting from the given initial centroids.
//
// Each iteration assigns instances to their nearest centroid, relocates
// empty clusters, moves every centroid to the mean of its instances and
// records the distortion. The run ends when the relative change in
// distortion is at most threshold; the first iteration always runs, so a
// converged result holds at least two distortion values.
//
// centroids is not modified; the Result owns its own copy. If there are no
// centroids or fewer instances than centroids Cluster returns an empty Result
// and a nil error.
func (c *Clusterer) Cluster(ctx context.Context, centroids, instances [][]float64, threshold float64) (*Result, error) {
	start := time.Now()

	res, err := c.cluster(ctx, centroids, instances, threshold)

	iterations := 0
	if res != nil {
		iterations = res.Iterations()
	}
	c.opts.metricsCollector.RecordCluster(len(centroids), len(instances), iterations, time.Since(start), err)

	return res, err
}

func (c *Clusterer) cluster(ctx context.Context, centroids, instances [][]float64, threshold float64) (*Result, error) {
	k, n := len(centroids), len(instances)
	if k == 0 || n < k {
		return &Result{}, nil
	}

	log := c.opts.logger.WithK(k).WithCount(n)

	if err := validate(centroids, instances, threshold); err != nil {
		log.LogCluster(ctx, 0, false, 0, err)
		return nil, err
	}

	log = log.WithDimension(len(centroids[0]))
	mc := c.opts.metricsCollector

	l := &kmeans.Lloyd{
		MaxIterations: c.opts.maxIterations,
		Hooks: kmeans.Hooks{
			OnRepair: func(r kmeans.Repair) {
				mc.RecordRepair()
				log.LogRepair(ctx, r.Centroid, r.Instance, r.Distance)
			},
			OnUnrepairable: func(iteration int, empty *roaring.Bitmap) {
				mc.RecordUnrepairable(int(empty.GetCardinality()))
				log.LogUnrepairable(ctx, iteration, empty.ToArray())
			},
			OnIteration: func(it kmeans.Iteration) {
				mc.RecordIteration(it.Distortion, it.Change)
				log.LogIteration(ctx, it.Index, it.Distortion, it.Change)
			},
		},
	}

	work := cloneVectors(centroids)

	out, err := l.Run(ctx, work, instances, threshold)
	if err != nil {
		log.LogCluster(ctx, 0, false, 0, err)
		return nil, err
	}

	res := &Result{
		Centroids:            work,
		DistortionIterations: out.History,
		ClusterAssignment:    out.Assignment,
		Converged:            out.Converged,
	}

	log.LogCluster(ctx, res.Iterations(), res.Converged, res.Distortion(), nil)

	return res, nil
}

func validate(centroids, instances [][]float64, threshold float64) error {
	if threshold < 0 || math.IsNaN(threshold) {
		return ErrInvalidThreshold
	}

	dim := len(centroids[0])
	if dim == 0 {
		return &ErrInvalidDimension{Dimension: dim}
	}

	if err := validatePoints(KindCentroid, centroids, dim); err != nil {
		return err
	}
	return validatePoints(KindInstance, instances, dim)
}

func validatePoints(kind string, points [][]float64, dim int) error {
	for i, p := range points {
		if len(p) != dim {
			return &ErrDimensionMismatch{Kind: kind, Index: i, Expected: dim, Actual: len(p)}
		}
		for j, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &ErrNonFiniteValue{Kind: kind, Index: i, Dimension: j, Value: v}
			}
		}
	}
	return nil
}

func cloneVectors(vectors [][]float64) [][]float64 {
	dim := len(vectors[0])
	data := make([]float64, len(vectors)*dim)
	out := make([][]float64, len(vectors))
	for i, v := range vectors {
		out[i] = data[i*dim : (i+1)*dim : (i+1)*dim]
		copy(out[i], v)
	}
	return out
}
