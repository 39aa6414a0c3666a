package kddgo

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/kddgo/result"
)

// Logger wraps slog.Logger with kddgo-specific helpers.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithRun tags every record with a run identifier.
func (l *Logger) WithRun(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run", id),
	}
}

// WithShape adds the matrix shape fields.
func (l *Logger) WithShape(rows, cols int) *Logger {
	return &Logger{
		Logger: l.Logger.With("rows", rows, "cols", cols),
	}
}

// LogCluster logs a clustering run.
func (l *Logger) LogCluster(ctx context.Context, rows, k int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clustering failed",
			"rows", rows,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "clustering completed",
		"rows", rows,
		"k", k,
		"duration", d,
	)
}

// LogPartition logs the partitioning of one source.
func (l *Logger) LogPartition(ctx context.Context, role string, groups, layers int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "partition failed",
			"role", role,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "partition completed",
		"role", role,
		"groups", groups,
		"layers", layers,
	)
}

// LogDifference logs a difference analysis.
func (l *Logger) LogDifference(ctx context.Context, groups int, maxAbs float64, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "difference analysis failed",
			"groups", groups,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "difference analysis completed",
		"groups", groups,
		"max_abs", maxAbs,
		"duration", d,
	)
}

// LogPublish logs a result publication.
func (l *Logger) LogPublish(ctx context.Context, kind result.Kind, h result.Handle, err error) {
	if err != nil {
		l.ErrorContext(ctx, "publish failed",
			"kind", string(kind),
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "result published",
		"handle", h.String(),
	)
}
