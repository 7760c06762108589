// Package prommetrics exports clustering metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	pc, err := prommetrics.NewPrometheusCollector(reg, "myapp")
//	res, err := lloyd.Cluster(ctx, centroids, instances, 1e-4,
//	    lloyd.WithMetricsCollector(pc))
package prommetrics
