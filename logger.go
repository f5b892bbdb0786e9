package rangeset

import (
	"errors"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with rangeset-specific helpers.
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

// LogParse logs the outcome of parsing a range expression.
// Rejected expressions are logged with their kind and offset.
func (l *Logger) LogParse(input string, values int, err error) {
	if err == nil {
		l.Debug("range parsed",
			"input", input,
			"values", values,
		)
		return
	}

	var perr *ParseError
	if errors.As(err, &perr) {
		l.Debug("range rejected",
			"input", input,
			"kind", perr.Kind.String(),
			"offset", perr.Offset,
			"error", err,
		)
		return
	}

	l.Debug("range rejected",
		"input", input,
		"error", err,
	)
}

// LogUpdate logs the outcome of an update of a list, mask or selection.
func (l *Logger) LogUpdate(target Target, reset bool, size int, err error) {
	if err != nil {
		l.Debug("update failed",
			"target", string(target),
			"reset", reset,
			"error", err,
		)
		return
	}
	l.Debug("update completed",
		"target", string(target),
		"reset", reset,
		"size", size,
	)
}
