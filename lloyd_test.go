package lloyd

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/testutil"
)

func TestCluster_FourPoints(t *testing.T) {
	ctx := context.Background()
	instances := [][]float64{{1.0}, {2.0}, {9.0}, {10.0}}
	centroids := [][]float64{{0.0}, {5.0}}

	res, err := Cluster(ctx, centroids, instances, 0.001)
	require.NoError(t, err)

	require.Len(t, res.Centroids, 2)
	assert.InDelta(t, 1.5, res.Centroids[0][0], 1e-12)
	assert.InDelta(t, 9.5, res.Centroids[1][0], 1e-12)
	assert.Equal(t, []int{0, 0, 1, 1}, res.ClusterAssignment)
	assert.Equal(t, []float64{1, 1}, res.DistortionIterations)
	assert.True(t, res.Converged)
}

func TestCluster_NoOp(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		centroids [][]float64
		instances [][]float64
	}{
		{"NoCentroids", nil, [][]float64{{1}, {2}}},
		{"EmptyCentroids", [][]float64{}, [][]float64{{1}}},
		{"FewerInstancesThanCentroids", [][]float64{{0}, {1}, {2}}, [][]float64{{1}, {2}}},
		{"NoInstances", [][]float64{{0}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := &BasicMetricsCollector{}
			res, err := Cluster(ctx, tt.centroids, tt.instances, 0.01, WithMetricsCollector(mc))
			require.NoError(t, err)
			require.NotNil(t, res)

			assert.Empty(t, res.Centroids)
			assert.Empty(t, res.ClusterAssignment)
			assert.Empty(t, res.DistortionIterations)
			assert.False(t, res.Converged)
			assert.Equal(t, int64(1), mc.GetStats().ClusterCount)
			assert.Equal(t, int64(0), mc.GetStats().IterationCount)
		})
	}
}

func TestCluster_NoOpSkipsValidation(t *testing.T) {
	res, err := Cluster(context.Background(), [][]float64{{0}, {1}, {2}}, [][]float64{{math.NaN()}}, -1)
	require.NoError(t, err)
	assert.Empty(t, res.Centroids)
}

func TestCluster_EmptyClusterRepair(t *testing.T) {
	ctx := context.Background()
	instances := [][]float64{{0.0}, {0.0}, {0.0}, {100.0}}
	centroids := [][]float64{{1.0}, {200.0}}

	mc := &BasicMetricsCollector{}
	res, err := Cluster(ctx, centroids, instances, 0.001, WithMetricsCollector(mc))
	require.NoError(t, err)

	assert.Equal(t, int64(1), mc.GetStats().RepairCount)
	assert.Equal(t, [][]float64{{0}, {100}}, res.Centroids)
	assert.Equal(t, []int{0, 0, 0, 1}, res.ClusterAssignment)
	assert.Equal(t, []int{3, 1}, res.Populations())
	assert.Equal(t, []float64{0, 0}, res.DistortionIterations)
	assert.True(t, res.Converged)
}

func TestCluster_WellPlacedCentroids(t *testing.T) {
	ctx := context.Background()
	instances := [][]float64{{0.0}, {0.0}, {0.0}, {100.0}}
	centroids := [][]float64{{1.0}, {2.0}}

	mc := &BasicMetricsCollector{}
	res, err := Cluster(ctx, centroids, instances, 0.001, WithMetricsCollector(mc))
	require.NoError(t, err)

	assert.Equal(t, int64(0), mc.GetStats().RepairCount)
	assert.Equal(t, [][]float64{{0}, {100}}, res.Centroids)
	assert.Equal(t, []int{0, 0, 0, 1}, res.ClusterAssignment)
	for _, p := range res.Populations() {
		assert.GreaterOrEqual(t, p, 1)
	}
}

func TestCluster_DuplicateCentroids(t *testing.T) {
	ctx := context.Background()
	instances := [][]float64{{-1}, {1}}
	centroids := [][]float64{{0}, {0}}

	res, err := Cluster(ctx, centroids, instances, 0)
	require.NoError(t, err)

	// Both instances tie on centroid 0; centroid 1 is relocated onto the
	// first of the equally distant instances.
	assert.Equal(t, [][]float64{{1}, {-1}}, res.Centroids)
	assert.Equal(t, []int{1, 0}, res.ClusterAssignment)
	assert.Equal(t, []float64{0, 0}, res.DistortionIterations)
}

func TestCluster_IdenticalInstances(t *testing.T) {
	ctx := context.Background()
	instances := [][]float64{{2, 2}, {2, 2}, {2, 2}, {2, 2}}
	centroids := [][]float64{{0, 0}, {1, 1}, {5, 5}}

	mc := &BasicMetricsCollector{}
	res, err := Cluster(ctx, centroids, instances, 0, WithMetricsCollector(mc))
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Equal(t, []float64{0, 0}, res.DistortionIterations)
	assert.Equal(t, []int{4, 0, 0}, res.Populations())
	assert.Positive(t, mc.GetStats().UnrepairableCount)
}

func TestCluster_DoesNotMutateInput(t *testing.T) {
	ctx := context.Background()
	instances := [][]float64{{1}, {2}, {9}, {10}}
	centroids := [][]float64{{0}, {5}}
	before := testutil.Clone(centroids)

	res, err := Cluster(ctx, centroids, instances, 0.001)
	require.NoError(t, err)

	assert.Equal(t, before, centroids)
	assert.Equal(t, [][]float64{{1}, {2}, {9}, {10}}, instances)

	res.Centroids[0][0] = 42
	assert.Equal(t, before, centroids)
}

func TestCluster_RoundTrip(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(1)
	centers := [][]float64{{0, 0, 0}, {10, 0, 0}, {0, 10, 0}}
	instances, _ := rng.Blobs(centers, 40, 1)
	seeds := rng.Sample(instances, 3)

	first, err := Cluster(ctx, seeds, instances, 0)
	require.NoError(t, err)
	require.True(t, first.Converged)

	second, err := Cluster(ctx, first.Centroids, instances, 0)
	require.NoError(t, err)

	// The first iteration has no predecessor, so two is the minimum.
	assert.Equal(t, 2, second.Iterations())
	assert.Equal(t, second.DistortionIterations[0], second.DistortionIterations[1])
	assert.Equal(t, first.Distortion(), second.Distortion())
	assert.Equal(t, first.Centroids, second.Centroids)
	assert.Equal(t, first.ClusterAssignment, second.ClusterAssignment)
}

func TestCluster_Deterministic(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(2)
	instances := rng.UniformVectors(300, 5)
	seeds := rng.Sample(instances, 6)

	r1, err := Cluster(ctx, seeds, instances, 1e-6)
	require.NoError(t, err)
	r2, err := Cluster(ctx, seeds, instances, 1e-6)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
}

func TestCluster_DistortionNonIncreasing(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(3)
	instances := rng.GaussianVectors(500, 2)
	seeds := rng.Sample(instances, 8)

	res, err := Cluster(ctx, seeds, instances, 1e-9, WithMaxIterations(500))
	require.NoError(t, err)

	h := res.DistortionIterations
	require.NotEmpty(t, h)
	for i := 1; i < len(h); i++ {
		assert.LessOrEqual(t, h[i], h[i-1]*(1+1e-12), "iteration %d", i)
	}
	for _, p := range res.Populations() {
		assert.GreaterOrEqual(t, p, 1)
	}
}

func TestCluster_MaxIterations(t *testing.T) {
	ctx := context.Background()
	instances := [][]float64{{1}, {2}, {9}, {10}}
	centroids := [][]float64{{0}, {5}}

	res, err := Cluster(ctx, centroids, instances, 0.001, WithMaxIterations(1))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Iterations())
	assert.False(t, res.Converged)
	assert.Equal(t, []int{0, 0, 1, 1}, res.ClusterAssignment)
}

func TestCluster_InfiniteThreshold(t *testing.T) {
	ctx := context.Background()
	instances := [][]float64{{1}, {2}, {9}, {10}}
	centroids := [][]float64{{0}, {5}}

	res, err := Cluster(ctx, centroids, instances, math.Inf(1))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Iterations())
	assert.True(t, res.Converged)
}

func TestCluster_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("NegativeThreshold", func(t *testing.T) {
		_, err := Cluster(ctx, [][]float64{{0}}, [][]float64{{1}}, -0.1)
		assert.ErrorIs(t, err, ErrInvalidThreshold)
	})

	t.Run("NaNThreshold", func(t *testing.T) {
		_, err := Cluster(ctx, [][]float64{{0}}, [][]float64{{1}}, math.NaN())
		assert.ErrorIs(t, err, ErrInvalidThreshold)
	})

	t.Run("ZeroDimension", func(t *testing.T) {
		_, err := Cluster(ctx, [][]float64{{}}, [][]float64{{}}, 0.1)
		var target *ErrInvalidDimension
		require.ErrorAs(t, err, &target)
		assert.Equal(t, 0, target.Dimension)
	})

	t.Run("CentroidDimensionMismatch", func(t *testing.T) {
		_, err := Cluster(ctx, [][]float64{{0, 0}, {1}}, [][]float64{{1, 1}, {2, 2}}, 0.1)
		var target *ErrDimensionMismatch
		require.ErrorAs(t, err, &target)
		assert.Equal(t, KindCentroid, target.Kind)
		assert.Equal(t, 1, target.Index)
		assert.Equal(t, 2, target.Expected)
		assert.Equal(t, 1, target.Actual)
		assert.ErrorIs(t, err, distance.ErrLengthMismatch)
	})

	t.Run("InstanceDimensionMismatch", func(t *testing.T) {
		_, err := Cluster(ctx, [][]float64{{0, 0}}, [][]float64{{1, 1}, {2, 2, 2}}, 0.1)
		var target *ErrDimensionMismatch
		require.ErrorAs(t, err, &target)
		assert.Equal(t, KindInstance, target.Kind)
		assert.Equal(t, 1, target.Index)
		assert.Equal(t, 3, target.Actual)
	})

	t.Run("NaNInstance", func(t *testing.T) {
		_, err := Cluster(ctx, [][]float64{{0, 0}}, [][]float64{{1, 1}, {2, math.NaN()}}, 0.1)
		var target *ErrNonFiniteValue
		require.ErrorAs(t, err, &target)
		assert.Equal(t, KindInstance, target.Kind)
		assert.Equal(t, 1, target.Index)
		assert.Equal(t, 1, target.Dimension)
	})

	t.Run("InfCentroid", func(t *testing.T) {
		_, err := Cluster(ctx, [][]float64{{math.Inf(-1)}}, [][]float64{{1}}, 0.1)
		var target *ErrNonFiniteValue
		require.ErrorAs(t, err, &target)
		assert.Equal(t, KindCentroid, target.Kind)
		assert.Contains(t, err.Error(), "-Inf")
	})

	t.Run("CountsAsError", func(t *testing.T) {
		mc := &BasicMetricsCollector{}
		_, err := Cluster(ctx, [][]float64{{0}}, [][]float64{{1}}, -1, WithMetricsCollector(mc))
		require.Error(t, err)
		assert.Equal(t, int64(1), mc.GetStats().ClusterErrors)
	})
}

func TestCluster_DistortionOverflow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mc := &BasicMetricsCollector{}
	res, err := Cluster(ctx, [][]float64{{0}}, [][]float64{{-1e200}, {1e200}, {1e200}}, 0.001, WithMetricsCollector(mc))

	require.ErrorIs(t, err, ErrNonFiniteDistortion)
	assert.NotErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, res)
	assert.Equal(t, int64(1), mc.GetStats().ClusterErrors)
}

func TestCluster_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	res, err := Cluster(ctx, [][]float64{{0}}, [][]float64{{1}, {2}}, 0.01)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestCluster_Logging(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Cluster(ctx, [][]float64{{1}, {200}}, [][]float64{{0}, {0}, {0}, {100}}, 0.001, WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"empty cluster relocated"`)
	assert.Contains(t, out, `"msg":"iteration completed"`)
	assert.Contains(t, out, `"msg":"clustering converged"`)
	assert.Contains(t, out, `"k":2`)
	assert.Contains(t, out, `"count":4`)
	assert.Contains(t, out, `"dimension":1`)
}

func TestClusterer_Reuse(t *testing.T) {
	ctx := context.Background()
	c := New(WithMaxIterations(50), WithLogger(nil), WithMetricsCollector(nil))

	r1, err := c.Cluster(ctx, [][]float64{{0}, {5}}, [][]float64{{1}, {2}, {9}, {10}}, 0.001)
	require.NoError(t, err)
	r2, err := c.Cluster(ctx, [][]float64{{0, 0}}, [][]float64{{1, 1}, {3, 3}}, 0.001)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 1, 1}, r1.ClusterAssignment)
	assert.Equal(t, [][]float64{{2, 2}}, r2.Centroids)
	assert.InDelta(t, 4.0, r2.Distortion(), 1e-12)
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ErrDimensionMismatch{Kind: KindInstance, Index: 3, Expected: 2, Actual: 5}, "dimension mismatch: instance 3: expected 2, got 5"},
		{&ErrInvalidDimension{Dimension: 0}, "invalid dimension: 0"},
		{&ErrNonFiniteValue{Kind: KindCentroid, Index: 1, Dimension: 0, Value: math.Inf(1)}, "non-finite value: centroid 1, dimension 0: +Inf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}

	assert.True(t, errors.Is(&ErrDimensionMismatch{}, distance.ErrLengthMismatch))
}
