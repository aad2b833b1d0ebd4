package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// validate is a package-level singleton for better performance.
// Creating a new validator on each call is expensive; reusing is recommended.
var validate = validator.New()

// FileConfig is the optional YAML configuration file.
type FileConfig struct {
	LibraryPath     string `yaml:"library_path"`
	DefaultLanguage string `yaml:"default_language" validate:"omitempty,oneof=starlark risor"`
	LogLevel        string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// LoadFileConfig reads and validates the YAML config at path. An empty path
// yields the zero config.
func LoadFileConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c FileConfig) slogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// newLogHandler returns a handler that writes to stderr with colorized
// output if stderr is a terminal. Stdout stays reserved for results.
func newLogHandler(level slog.Level) slog.Handler {
	return tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
}
