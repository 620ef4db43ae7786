// Package logging configures zerolog for the vacancy report pipeline.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs per-page and per-record detail.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs run milestones.
	LevelInfo LogLevel = "info"

	// LevelWarn logs lenient stops and degraded cache behaviour.
	LevelWarn LogLevel = "warn"

	// LevelError logs run aborts only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger and returns it.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.TimeOnly}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// StartRun tags the global logger with a fresh run_id so that every line of
// one report invocation can be correlated. It returns the id.
func StartRun() string {
	runID := uuid.NewString()
	log.Logger = log.With().Str("run_id", runID).Logger()
	return runID
}

// Log Level Guidelines:
//
// Debug: page requests (area, page, per_page, items), cache hit/miss,
// conditional revalidation, skipped records.
//
// Info: run start/finish, fetch totals, report counts, plot output path.
//
// Warn: malformed page treated as exhaustion, cache read/write failures
// (the request falls through to the API), empty salary series.
//
// Error: transport errors, validation failures that abort the run,
// plot rendering failures.
//
// Context Fields:
//   - run_id: one report invocation
//   - component: client, cache, pagination, vacancy, report, plot
//   - endpoint, status, error_class: HTTP transport
//   - area, page, per_page, items: pagination
//   - field, index: normalization failures
