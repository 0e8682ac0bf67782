// Package logging centralizes slog conventions: context plumbing for
// request-scoped loggers and small helpers so call sites stay one-liners.
package logging

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
)

type contextKey struct{}

// NewLogger returns the service's default logger, writing text to stderr.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// WithLogger stores a logger in the context for downstream handlers.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the context's logger, or slog.Default when none was
// attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// LogOperation records a notable non-error event.
func LogOperation(logger *slog.Logger, operation string, args ...any) {
	logger.Info(operation, args...)
}

// LogError records an error with its message attached as an attribute.
func LogError(logger *slog.Logger, message string, err error, args ...any) {
	logger.Error(message, append([]any{slog.String("error", err.Error())}, args...)...)
}

// LogHTTPRequest records one served request.
func LogHTTPRequest(logger *slog.Logger, method, path string, status int, durationMs float64, args ...any) {
	attrs := []any{
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("duration_ms", durationMs),
	}
	logger.Info("http_request", append(attrs, args...)...)
}

// SafeCloseWithLogging closes a resource and logs instead of returning the
// close error; for use in defers where the error has nowhere to go.
func SafeCloseWithLogging(closer io.Closer, logger *slog.Logger, name string) {
	if err := closer.Close(); err != nil {
		LogError(logger, "failed to close "+name, err)
	}
}

// SafeRollbackWithLogging rolls back a transaction in a defer. Rolling back
// after a successful commit returns sql.ErrTxDone, which is expected and
// stays silent.
func SafeRollbackWithLogging(tx interface{ Rollback() error }, logger *slog.Logger, operation string) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		LogError(logger, "failed to rollback "+operation, err)
	}
}
