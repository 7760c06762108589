package lloyd

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
// prommetrics.PrometheusCollector is a ready-made Prometheus implementation.
type MetricsCollector interface {
	// RecordCluster is called after each Cluster call.
	// k and n are the centroid and instance counts, iterations is the number
	// of completed iterations, err is nil if successful.
	RecordCluster(k, n, iterations int, duration time.Duration, err error)

	// RecordIteration is called after each completed iteration with its
	// distortion and relative change (+Inf for the first iteration).
	RecordIteration(distortion, change float64)

	// RecordRepair is called each time an empty centroid is relocated.
	RecordRepair()

	// RecordUnrepairable is called when clusters stay empty because no
	// instance can be split off; empty is the number of such clusters.
	RecordUnrepairable(empty int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCluster(int, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordIteration(float64, float64)                  {}
func (NoopMetricsCollector) RecordRepair()                                     {}
func (NoopMetricsCollector) RecordUnrepairable(int)                            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ClusterCount      atomic.Int64
	ClusterErrors     atomic.Int64
	ClusterTotalNanos atomic.Int64
	IterationCount    atomic.Int64
	RepairCount       atomic.Int64
	UnrepairableCount atomic.Int64
	lastDistortion    atomic.Uint64
}

// RecordCluster implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCluster(k, n, iterations int, duration time.Duration, err error) {
	b.ClusterCount.Add(1)
	b.ClusterTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ClusterErrors.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(distortion, change float64) {
	b.IterationCount.Add(1)
	b.lastDistortion.Store(math.Float64bits(distortion))
}

// RecordRepair implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRepair() {
	b.RepairCount.Add(1)
}

// RecordUnrepairable implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUnrepairable(empty int) {
	b.UnrepairableCount.Add(int64(empty))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ClusterCount:      b.ClusterCount.Load(),
		ClusterErrors:     b.ClusterErrors.Load(),
		ClusterAvgNanos:   b.getAvgClusterNanos(),
		IterationCount:    b.IterationCount.Load(),
		RepairCount:       b.RepairCount.Load(),
		UnrepairableCount: b.UnrepairableCount.Load(),
		LastDistortion:    math.Float64frombits(b.lastDistortion.Load()),
	}
}

func (b *BasicMetricsCollector) getAvgClusterNanos() int64 {
	count := b.ClusterCount.Load()
	if count == 0 {
		return 0
	}
	return b.ClusterTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ClusterCount      int64
	ClusterErrors     int64
	ClusterAvgNanos   int64
	IterationCount    int64
	RepairCount       int64
	UnrepairableCount int64
	LastDistortion    float64
}
