package lloyd

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with clustering-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithK adds a k (centroid count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count (instance count) field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogCluster logs the outcome of a clustering run.
func (l *Logger) LogCluster(ctx context.Context, iterations int, converged bool, distortion float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"iterations", iterations,
			"error", err,
		)
		return
	}

	if !converged {
		l.WarnContext(ctx, "clustering stopped before convergence",
			"iterations", iterations,
			"distortion", distortion,
		)
		return
	}

	l.InfoContext(ctx, "clustering converged",
		"iterations", iterations,
		"distortion", distortion,
	)
}

// LogIteration logs a completed Lloyd iteration.
func (l *Logger) LogIteration(ctx context.Context, iteration int, distortion, change float64) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", iteration,
		"distortion", distortion,
		"change", change,
	)
}

// LogRepair logs the relocation of an empty centroid.
func (l *Logger) LogRepair(ctx context.Context, centroid, instance int, dist float64) {
	l.DebugContext(ctx, "empty cluster relocated",
		"centroid", centroid,
		"instance", instance,
		"distance", dist,
	)
}

// LogUnrepairable logs clusters that stay empty because every instance
// already coincides with its centroid.
func (l *Logger) LogUnrepairable(ctx context.Context, iteration int, empty []uint32) {
	l.WarnContext(ctx, "empty clusters cannot be repaired",
		"iteration", iteration,
		"centroids", empty,
	)
}
