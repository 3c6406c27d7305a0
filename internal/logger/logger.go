package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alkime/stylepost/internal/config"
	"github.com/lmittmann/tint"
)

// SetupLogger configures structured logging based on environment.
func SetupLogger(cfg *config.Config) *slog.Logger {
	// Determine log level
	logLevel := ParseLevel(cfg.LogLevel)
	if cfg.Env == "development" {
		logLevel = slog.LevelDebug
	}

	// Create JSON handler for structured logging
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	logger := slog.New(handler)

	// Set as default logger
	slog.SetDefault(logger)

	return logger
}

// NewCLILogger returns a colorized human-readable logger writing to w.
// The CLI keeps stdout for generated content, so callers pass os.Stderr.
func NewCLILogger(w io.Writer, level string) *slog.Logger {
	//nolint:exhaustruct
	handler := tint.NewHandler(w, &tint.Options{
		Level:      ParseLevel(level),
		TimeFormat: time.Kitchen,
	})

	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
