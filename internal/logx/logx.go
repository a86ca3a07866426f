// Package logx wraps zerolog: global logger setup plus small level helpers
// and the HTTP request-logging middleware.
package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger. Development gets a human-readable
// console writer at debug level; anything else gets JSON at info level.
func Init(isDevelopment bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if isDevelopment {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}
	log.Logger = logger
}

func Logger() *zerolog.Logger {
	return &log.Logger
}

// Info logs at info level with optional key-value fields.
func Info(msg string, fields ...any) {
	Logger().Info().Fields(fields).Msg(msg)
}

// Warn logs at warn level with optional key-value fields.
func Warn(msg string, fields ...any) {
	Logger().Warn().Fields(fields).Msg(msg)
}

// Error logs err at error level with optional key-value fields.
func Error(err error, msg string, fields ...any) {
	Logger().Error().Err(err).Fields(fields).Msg(msg)
}

// Fatal logs err and exits.
func Fatal(err error, msg string, fields ...any) {
	Logger().Fatal().Err(err).Fields(fields).Msg(msg)
}
