package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// WithLogger stores logger in ctx. A nil logger stores the default one.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// Ctx returns the logger stored in ctx, or the default logger.
func Ctx(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*zerolog.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithRunID tags the context logger with the reconciliation run ID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return with(ctx, "run_id", runID)
}

// WithOperation tags the context logger with the operation being run.
func WithOperation(ctx context.Context, operation string) context.Context {
	return with(ctx, "operation", operation)
}

// WithProvince tags the context logger with a province code or name.
func WithProvince(ctx context.Context, province string) context.Context {
	return with(ctx, "province", province)
}

// WithFile tags the context logger with the dataset file being processed.
func WithFile(ctx context.Context, path string) context.Context {
	return with(ctx, "file", path)
}

func with(ctx context.Context, key, value string) context.Context {
	logger := Ctx(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &logger)
}
