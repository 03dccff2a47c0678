package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tasklist/internal/config"
)

// DebugEnv forces debug logging when set to any non-empty value.
const DebugEnv = "TASKS_DEBUG"

// DebugEnabled returns true if debug mode is enabled via TASKS_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// Level resolves the effective log level from the configuration.
// --verbose and TASKS_DEBUG take precedence over the configured level.
func Level(cfg config.LoggingConfig) zerolog.Level {
	if cfg.Verbose || DebugEnabled() {
		return zerolog.DebugLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return level
}

// New builds a logger writing to w in the configured format.
func New(w io.Writer, cfg config.LoggingConfig) zerolog.Logger {
	if cfg.Format != "json" {
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.Out = w
		consoleWriter.TimeFormat = time.TimeOnly
		w = consoleWriter
	}

	return zerolog.New(w).
		Level(Level(cfg)).
		With().
		Timestamp().
		Logger()
}
