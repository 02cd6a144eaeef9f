package simmat

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with simmat-specific helpers.
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

// LogDense logs a dense matrix engine run.
func (l *Logger) LogDense(metric string, rows, cols int, elapsed time.Duration, err error) {
	if err != nil {
		l.Error("dense computation failed",
			"metric", metric,
			"rows", rows,
			"cols", cols,
			"error", err,
		)
	} else {
		l.Debug("dense computation completed",
			"metric", metric,
			"rows", rows,
			"cols", cols,
			"elapsed", elapsed,
		)
	}
}

// LogSparse logs a sparse engine run.
func (l *Logger) LogSparse(rows, cols, nnz int, elapsed time.Duration, err error) {
	if err != nil {
		l.Error("sparse computation failed",
			"rows", rows,
			"cols", cols,
			"nnz", nnz,
			"error", err,
		)
	} else {
		l.Debug("sparse computation completed",
			"rows", rows,
			"cols", cols,
			"nnz", nnz,
			"elapsed", elapsed,
		)
	}
}

// LogVectorPair logs a vector-pair computation.
func (l *Logger) LogVectorPair(n int, err error) {
	if err != nil {
		l.Error("vector-pair computation failed",
			"len", n,
			"error", err,
		)
	} else {
		l.Debug("vector-pair computation completed",
			"len", n,
		)
	}
}
