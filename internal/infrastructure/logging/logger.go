package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/rmaia/contaflux/internal/domain"
)

// ContextKey is the type for logging context keys.
type ContextKey string

const (
	// RequestIDKey carries the request ID through the context.
	RequestIDKey ContextKey = "request_id"
	// UserIDKey carries the acting user through the context.
	UserIDKey ContextKey = "user_id"
)

// Logger wraps slog.Logger with context-aware helpers. Tenant and user are
// pulled from the request actor so every line of a settlement can be traced
// to who triggered it.
type Logger struct {
	*slog.Logger
}

// New creates a structured logger writing to stdout.
func New(level slog.Level, format string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger annotated with whatever identity the context
// carries.
func (l *Logger) WithContext(ctx context.Context) *slog.Logger {
	logger := l.Logger

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		logger = logger.With("request_id", requestID)
	}

	if userID, ok := ctx.Value(UserIDKey).(string); ok && userID != "" {
		logger = logger.With("user_id", userID)
	}

	if actor, ok := domain.ActorFromContext(ctx); ok {
		logger = logger.With("tenant_id", actor.TenantID)
		if actor.UserID != "" {
			logger = logger.With("user_id", actor.UserID)
		}
	}

	return logger
}

// InfoCtx logs an info message with context fields.
func (l *Logger) InfoCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Info(msg, args...)
}

// ErrorCtx logs an error message with context fields.
func (l *Logger) ErrorCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Error(msg, args...)
}

// WarnCtx logs a warning message with context fields.
func (l *Logger) WarnCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Warn(msg, args...)
}

// DebugCtx logs a debug message with context fields.
func (l *Logger) DebugCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Debug(msg, args...)
}

// ParseLevel parses a log level name, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
