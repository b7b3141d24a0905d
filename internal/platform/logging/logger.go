// Package logging wraps log/slog with request-aware helpers shared by the
// form service, the gateway and formctl.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/louisbranch/formrelay/internal/platform/requestctx"
)

// Config selects the log level and output format.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Logger wraps slog.Logger and adds the request id from context.
type Logger struct {
	*slog.Logger
}

// NewWithWriter creates a Logger writing to w.
// format can be "json" or "text" (default is json).
func NewWithWriter(w io.Writer, level slog.Level, format string) *Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// FromConfig builds a Logger writing to w for a service and tags every
// record with it.
func FromConfig(w io.Writer, cfg Config, service string) *Logger {
	l := NewWithWriter(w, ParseLevel(cfg.Level), cfg.Format)
	if service != "" {
		l = l.With(Service(service))
	}
	return l
}

// Default returns a Logger backed by slog.Default.
func Default() *Logger {
	return &Logger{Logger: slog.Default()}
}

// Discard returns a Logger that drops every record.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// OrDefault returns l, or Default when l is nil.
func (l *Logger) OrDefault() *Logger {
	if l == nil || l.Logger == nil {
		return Default()
	}
	return l
}

// WithContext returns a slog.Logger carrying the request id found in ctx.
func (l *Logger) WithContext(ctx context.Context) *slog.Logger {
	if reqID := requestctx.RequestIDFromContext(ctx); reqID != "" {
		return l.Logger.With(RequestID(reqID))
	}
	return l.Logger
}

// InfoContext logs at Info level with context-aware fields.
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).InfoContext(ctx, msg, args...)
}

// WarnContext logs at Warn level with context-aware fields.
func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).WarnContext(ctx, msg, args...)
}

// ErrorContext logs at Error level with context-aware fields.
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).ErrorContext(ctx, msg, args...)
}

// DebugContext logs at Debug level with context-aware fields.
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).DebugContext(ctx, msg, args...)
}

// With returns a new logger with the given attributes added.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// ParseLevel converts a string log level to slog.Level.
// Unknown values map to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetDefault installs l as the process-wide slog and log default.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}
