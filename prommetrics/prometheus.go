package prommetrics

import (
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements lloyd.MetricsCollector on top of
// Prometheus counters, histograms and gauges.
type PrometheusCollector struct {
	runsTotal         *prometheus.CounterVec
	runDuration       prometheus.Histogram
	runIterations     prometheus.Histogram
	iterationsTotal   prometheus.Counter
	repairsTotal      prometheus.Counter
	unrepairableTotal prometheus.Counter
	distortion        prometheus.Gauge
	relativeChange    prometheus.Gauge
}

// NewPrometheusCollector creates the collector and registers its metrics
// with reg under the given namespace.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) (*PrometheusCollector, error) {
	pc := &PrometheusCollector{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "kmeans_runs_total",
				Help:      "Total number of clustering runs by status",
			},
			[]string{"status"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "kmeans_run_duration_seconds",
				Help:      "Duration of clustering runs",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		runIterations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "kmeans_run_iterations",
				Help:      "Number of Lloyd iterations per clustering run",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		iterationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "kmeans_iterations_total",
				Help:      "Total number of completed Lloyd iterations",
			},
		),
		repairsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "kmeans_empty_cluster_repairs_total",
				Help:      "Total number of empty centroids relocated",
			},
		),
		unrepairableTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "kmeans_unrepairable_clusters_total",
				Help:      "Total number of clusters left empty after stabilization",
			},
		),
		distortion: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "kmeans_distortion",
				Help:      "Distortion of the most recent iteration",
			},
		),
		relativeChange: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "kmeans_relative_change",
				Help:      "Relative change in distortion of the most recent iteration",
			},
		),
	}

	for _, c := range []prometheus.Collector{
		pc.runsTotal,
		pc.runDuration,
		pc.runIterations,
		pc.iterationsTotal,
		pc.repairsTotal,
		pc.unrepairableTotal,
		pc.distortion,
		pc.relativeChange,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return pc, nil
}

// RecordCluster implements lloyd.MetricsCollector.
func (p *PrometheusCollector) RecordCluster(k, n, iterations int, duration time.Duration, err error) {
	status := "ok"
	switch {
	case err != nil:
		status = "error"
	case k == 0 || n < k:
		status = "skipped"
	}

	p.runsTotal.WithLabelValues(status).Inc()
	p.runDuration.Observe(duration.Seconds())
	if status == "ok" {
		p.runIterations.Observe(float64(iterations))
	}
}

// RecordIteration implements lloyd.MetricsCollector.
func (p *PrometheusCollector) RecordIteration(distortion, change float64) {
	p.iterationsTotal.Inc()
	p.distortion.Set(distortion)
	// The first iteration has no predecessor.
	if !math.IsInf(change, 0) {
		p.relativeChange.Set(change)
	}
}

// RecordRepair implements lloyd.MetricsCollector.
func (p *PrometheusCollector) RecordRepair() {
	p.repairsTotal.Inc()
}

// RecordUnrepairable implements lloyd.MetricsCollector.
func (p *PrometheusCollector) RecordUnrepairable(empty int) {
	p.unrepairableTotal.Add(float64(empty))
}
