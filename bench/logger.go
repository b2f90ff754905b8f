package bench

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with harness-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithVariant adds a variant field to the logger.
func (l *Logger) WithVariant(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("variant", name),
	}
}

// WithScenario adds a scenario field to the logger.
func (l *Logger) WithScenario(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("scenario", name),
	}
}

// LogSmoke logs a smoke-test outcome.
func (l *Logger) LogSmoke(ctx context.Context, variant string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "smoke test failed",
			"variant", variant,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "smoke test passed",
			"variant", variant,
		)
	}
}

// LogGenerate logs a member-set generation outcome.
func (l *Logger) LogGenerate(ctx context.Context, scenario string, members int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "generation failed",
			"scenario", scenario,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "generation completed",
			"scenario", scenario,
			"members", members,
			"duration", duration,
		)
	}
}

// LogRun logs the timing summary for one variant/scenario pair.
func (l *Logger) LogRun(ctx context.Context, populate, check Result) {
	p := populate.Summary()
	c := check.Summary()
	l.InfoContext(ctx, "benchmark completed",
		"inner_reps", populate.Reps,
		"samples", p.N,
		"populate_mean_s", p.Mean,
		"populate_min_s", p.Min,
		"check_mean_s", c.Mean,
		"check_min_s", c.Min,
	)
}
