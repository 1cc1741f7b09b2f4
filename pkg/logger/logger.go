package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ServiceName is attached to every log line
const ServiceName = "newsroom-web"

// New creates a new zerolog logger with structured output.
// format "pretty" (or ENV=development) switches to console output.
func New(level, format string) zerolog.Logger {
	return NewWithWriter(os.Stdout, level, format)
}

// NewWithWriter is New with an explicit destination
func NewWithWriter(w io.Writer, level, format string) zerolog.Logger {
	// Configure zerolog
	zerolog.TimeFieldFormat = time.RFC3339

	logLevel := ParseLevel(level)

	// Use pretty console output in development
	if format == "pretty" || os.Getenv("ENV") == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			Level(logLevel).
			With().
			Timestamp().
			Caller().
			Str("service", ServiceName).
			Logger()
	}

	// JSON output for production
	return zerolog.New(w).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", ServiceName).
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
