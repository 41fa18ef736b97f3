// Package logging provides structured logging for wilayah using zerolog.
// Console output is used on a terminal and JSON otherwise, so a
// reconciliation run can be read by a person or collected by a log shipper.
//
// Loggers travel in contexts; a run tags its logger once and every file and
// province below it inherits the fields:
//
//	ctx = logging.WithRunID(logging.WithLogger(ctx, logger), runID)
//	ctx = logging.WithFile(ctx, "kabupaten/11.json")
//	logging.Ctx(ctx).Debug().Msg("Renamed region")
package logging

import (
	"github.com/rs/zerolog"
)

// defaultLogger serves code that was given no logger of its own.
var defaultLogger = newDefaultLogger()

// newDefaultLogger follows the LOG_* environment but always writes to
// stderr; log files are opened by the application only.
func newDefaultLogger() zerolog.Logger {
	cfg := ConfigFromEnv()
	cfg.Output = OutputStderr
	return NewLoggerFromConfig(cfg)
}

// Default returns the default logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the default logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
}
