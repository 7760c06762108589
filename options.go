package lloyd

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	maxIterations    int
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures a Clusterer.
type Option func(*options)

// WithLogger configures structured logging.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures the collector notified about runs,
// iterations and repairs.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithMaxIterations bounds the number of Lloyd iterations.
//
// The loop normally runs until the relative change in distortion drops to the
// threshold, which may never happen for a threshold of zero on data that
// keeps oscillating. With a positive limit the run stops after n iterations
// and Result.Converged is false. Values <= 0 mean no limit (the default).
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}
