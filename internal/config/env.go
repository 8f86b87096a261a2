package config

import (
	"os"
	"strconv"
)

// FromEnv overlays TAPE_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("TAPE_ARCHIVE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Archive.Enabled = b
		}
	}
	if v := os.Getenv("TAPE_ARCHIVE_FSYNC"); v != "" {
		cfg.Archive.Fsync = v
	}
	if v := os.Getenv("TAPE_ARCHIVE_MAX_WINDOW_AGE_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Archive.MaxWindowAgeHours = n
		}
	}
	if v := os.Getenv("TAPE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TAPE_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}
