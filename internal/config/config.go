// Package config loads .specview.yaml project configuration.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project config file searched for from the working
// directory upward.
const FileName = ".specview.yaml"

// Default values applied before any file or flag overrides.
const (
	DefaultTheme      = "default"
	DefaultLogLevel   = "info"
	DefaultLogMaxSize = 5 // MB
	DefaultLogBackups = 2
)

// Glyphs overrides the status markers printed before test lines.
// Empty fields keep the built-in marker.
type Glyphs struct {
	Pass    string `yaml:"pass,omitempty"`
	Fail    string `yaml:"fail,omitempty"`
	Pending string `yaml:"pending,omitempty"`
}

// Logging configures the rotating debug log. Logging is off unless File
// is set here or via the --log-file flag.
type Logging struct {
	File       string `yaml:"file,omitempty"`
	Level      string `yaml:"level,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

// AppConfig is the merged application configuration from .specview.yaml.
type AppConfig struct {
	Theme   string  `yaml:"theme,omitempty"`
	NoColor bool    `yaml:"no_color"`
	Glyphs  Glyphs  `yaml:"glyphs,omitempty"`
	Logging Logging `yaml:"logging,omitempty"`

	// StripPrefixes adds project-specific leading words dropped when a
	// description is derived from an identifier, e.g. "spec" or "should".
	StripPrefixes []string `yaml:"strip_prefixes,omitempty"`
	// MinorWords adds words kept lowercase inside derived descriptions.
	MinorWords []string `yaml:"minor_words,omitempty"`
}

// Load finds and loads the project configuration. Returns defaults when no
// config file exists; a malformed file surfaces as an error rather than
// being silently ignored.
func Load() (*AppConfig, error) {
	cfg := defaults()

	path := findConfigPath()
	if path == "" {
		return cfg, nil
	}
	return loadFrom(path, cfg)
}

func defaults() *AppConfig {
	return &AppConfig{
		Theme: DefaultTheme,
		Logging: Logging{
			Level:      DefaultLogLevel,
			MaxSizeMB:  DefaultLogMaxSize,
			MaxBackups: DefaultLogBackups,
		},
	}
}

func loadFrom(path string, cfg *AppConfig) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var fileCfg AppConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, err
	}

	if fileCfg.Theme != "" {
		cfg.Theme = fileCfg.Theme
	}
	cfg.NoColor = fileCfg.NoColor
	if fileCfg.Glyphs.Pass != "" {
		cfg.Glyphs.Pass = fileCfg.Glyphs.Pass
	}
	if fileCfg.Glyphs.Fail != "" {
		cfg.Glyphs.Fail = fileCfg.Glyphs.Fail
	}
	if fileCfg.Glyphs.Pending != "" {
		cfg.Glyphs.Pending = fileCfg.Glyphs.Pending
	}
	if fileCfg.Logging.File != "" {
		cfg.Logging.File = fileCfg.Logging.File
	}
	if fileCfg.Logging.Level != "" {
		cfg.Logging.Level = fileCfg.Logging.Level
	}
	if fileCfg.Logging.MaxSizeMB > 0 {
		cfg.Logging.MaxSizeMB = fileCfg.Logging.MaxSizeMB
	}
	if fileCfg.Logging.MaxBackups > 0 {
		cfg.Logging.MaxBackups = fileCfg.Logging.MaxBackups
	}
	cfg.StripPrefixes = append(cfg.StripPrefixes, fileCfg.StripPrefixes...)
	cfg.MinorWords = append(cfg.MinorWords, fileCfg.MinorWords...)

	return cfg, nil
}

// findConfigPath walks from the working directory to the filesystem root
// looking for .specview.yaml, then falls back to the user config dir
// (e.g. ~/.config/specview/.specview.yaml).
func findConfigPath() string {
	dir, err := os.Getwd()
	if err == nil {
		for {
			candidate := filepath.Join(dir, FileName)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "specview", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
