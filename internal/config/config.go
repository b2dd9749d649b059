// Package config loads the bizdesk configuration file.
//
// The file is YAML. Every field is optional; absent fields keep the values
// from Default. Unknown fields are rejected so typos surface early.
//
//	storage:
//	  backend: sqlite        # sqlite | bolt | memory
//	  path: bizdesk.db
//	  timeout: 5s
//	log:
//	  level: info            # debug | info | warn | error
//	  file: bizdesk.log      # optional rotating file sink
//	  max_size_mb: 10
//	  max_backups: 3
//	  max_age_days: 28
//	seed:
//	  sample_data: true
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/bizdesk/internal/kv"
)

// DefaultPath is the data file used when none is configured.
const DefaultPath = "bizdesk.db"

// Config is the full configuration.
type Config struct {
	Storage Storage `yaml:"storage"`
	Log     Log     `yaml:"log"`
	Seed    Seed    `yaml:"seed"`
}

// Storage selects and locates the persistence backend.
type Storage struct {
	Backend kv.Backend    `yaml:"backend"`
	Path    string        `yaml:"path"`
	Timeout time.Duration `yaml:"timeout"`
}

// Log configures the diagnostic logger.
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Seed controls first-run data.
type Seed struct {
	SampleData bool `yaml:"sample_data"`
}

// Default returns the configuration used without a file.
func Default() Config {
	return Config{
		Storage: Storage{
			Backend: kv.BackendSQLite,
			Path:    DefaultPath,
			Timeout: 5 * time.Second,
		},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Seed: Seed{SampleData: true},
	}
}

// Load reads the file at path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if !slices.Contains(kv.ValidBackends, c.Storage.Backend) {
		return fmt.Errorf("storage.backend %q: must be one of %v", c.Storage.Backend, kv.ValidBackends)
	}
	if c.Storage.Path == "" && c.Storage.Backend != kv.BackendMemory {
		return errors.New("storage.path is required")
	}
	if c.Storage.Timeout <= 0 {
		return fmt.Errorf("storage.timeout must be positive, got %s", c.Storage.Timeout)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return errors.New("log rotation limits must not be negative")
	}
	return nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log.level %q: must be one of debug, info, warn, error", name)
}
