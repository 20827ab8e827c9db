// Package ctxlog passes a *log.Logger through context.Context so every
// stage of a run logs with the same job-scoped fields.
package ctxlog

import (
	"context"

	"github.com/charmbracelet/log"
)

type key struct{}

var loggerKey = key{}

// WithLogger returns a context carrying the given logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from ctx, falling back to the package
// default logger when none was attached.
func FromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return logger
	}
	return log.Default()
}
