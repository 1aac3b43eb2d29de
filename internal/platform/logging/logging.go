// Package logging builds the service's slog loggers and carries the
// request-scoped logger through context.
//
// Services and the data portal log through FromContext so every line of a
// request carries the request_id, correlation_id and user the HTTP
// middleware attached. Error logs name the operation and the ids involved
// and pass the full chain with slog.Any("error", err):
//
//	logging.FromContext(ctx).ErrorContext(ctx, "failed to save project",
//	    slog.String("operation", "UpdateProject"),
//	    slog.Int64("id", id),
//	    slog.Any("error", err),
//	)
package logging

import (
	"context"
	"io"
	"log/slog"
)

// Handler formats accepted by New.
const (
	FormatJSON = "json"
	FormatText = "text"
)

type contextKey struct{}

// New creates a logger writing to w at the given level.
//
// Level accepts anything slog.Level understands ("debug", "WARN", "info+2");
// anything else means info. Format "text" selects the text handler, any
// other value JSON. Debug loggers include the source location. Values of
// sensitive keys are redacted, see SensitiveKeys.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: redactor(),
	}

	if format == FormatText {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel converts a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored by WithLogger, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// With returns a context whose logger adds args to every record.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}
