// Package logging configures the global slog logger. The narrative owns
// stdout, so diagnostics go to a rotating file, never the terminal.
package logging

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dkoosis/specview/internal/config"
)

// Setup configures the global slog logger from the logging config.
// With no log file set, log output is discarded. If verbose is true the
// level is forced to Debug.
func Setup(cfg config.Logging, verbose bool) {
	var w io.Writer = io.Discard
	if strings.TrimSpace(cfg.File) != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
	}

	level := ParseLevel(cfg.Level, slog.LevelInfo)
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})
	slog.SetDefault(slog.New(handler))
}

// ParseLevel maps a level name to a slog.Level, falling back to
// defaultLevel for unknown values.
func ParseLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}
