// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	envJSON  = "HUNTER_JSON_LOG"
	envLevel = "HUNTER_LOG_LEVEL"
)

// Init installs a global slog logger writing to stderr. JSON if
// HUNTER_JSON_LOG=1/true/json, else text. verbose forces debug level.
func Init(verbose bool) *slog.Logger {
	return New(os.Stderr, verbose)
}

// New builds the logger Init would install, writing to w, and makes it the default.
func New(w io.Writer, verbose bool) *slog.Logger {
	json := jsonFromEnv()
	level := levelFromEnv()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	logger.Debug("logging initialized", "json", json, "level", level.String())
	return logger
}

func jsonFromEnv() bool {
	switch strings.ToLower(os.Getenv(envJSON)) {
	case "1", "true", "json":
		return true
	default:
		return false
	}
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv(envLevel)) {
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
