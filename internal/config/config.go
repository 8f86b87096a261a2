package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// ArchiveConfig controls persistence of closed windows.
type ArchiveConfig struct {
	// Enabled turns on the pebble-backed window archive.
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Fsync is the storage durability mode: always|interval|never.
	Fsync string `json:"fsync" yaml:"fsync"`
	// MaxWindowAgeHours bounds retention for `tape window purge`; 0 disables
	// the default cutoff.
	MaxWindowAgeHours int `json:"maxWindowAgeHours" yaml:"maxWindowAgeHours"`
}

// LogConfig controls the operational logger.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // text|json
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Archive: ArchiveConfig{
			Enabled:           true,
			Fsync:             "always",
			MaxWindowAgeHours: 0,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from a JSON or YAML file (by extension). If path
// is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return cfg, nil
}
