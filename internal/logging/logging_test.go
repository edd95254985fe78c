package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dkoosis/specview/internal/config"
)

func TestParseLevel_KnownNames(t *testing.T) {
	cases := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"  info  ", slog.LevelInfo},
		{"-4", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, c := range cases {
		got := ParseLevel(c.input, slog.LevelInfo)
		if got != c.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", c.input, got, c.expected)
		}
	}
}

func TestSetup_WritesToFile_When_FileConfigured(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "specview.log")

	Setup(config.Logging{File: logFile, Level: "debug", MaxSizeMB: 1, MaxBackups: 1}, false)
	slog.Debug("probe message", "key", "value")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "probe message") {
		t.Errorf("log file missing probe message, got: %s", data)
	}
}

func TestSetup_DiscardsOutput_When_NoFile(t *testing.T) {
	// Must not panic or write anywhere visible.
	Setup(config.Logging{Level: "info"}, false)
	slog.Info("dropped")
}

func TestSetup_ForcesDebug_When_Verbose(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "verbose.log")

	Setup(config.Logging{File: logFile, Level: "error", MaxSizeMB: 1, MaxBackups: 1}, true)
	slog.Debug("verbose probe")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "verbose probe") {
		t.Errorf("verbose log missing debug message, got: %s", data)
	}
}
