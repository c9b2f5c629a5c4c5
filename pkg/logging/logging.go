package logging

import (
	"log/slog"
	"os"
	"strings"
)

// SetDefaultStructuredLogger installs a JSON slog handler as the process
// default, tagged with the service name and version. The level is read from
// LOG_LEVEL (debug, info, warn, error); unknown values fall back to info.
func SetDefaultStructuredLogger(name, version string) {
	SetDefaultLogger(name, version, LevelFromEnv(), true)
}

// SetDefaultLogger installs a slog handler as the process default. CLI
// invocations use the text handler; services use JSON.
func SetDefaultLogger(name, version string, level slog.Level, jsonFormat bool) {
	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	logger := slog.New(handler).With(
		"service", name,
		"version", version,
	)
	slog.SetDefault(logger)
}

// LevelFromEnv parses LOG_LEVEL into a slog.Level, defaulting to info.
func LevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
