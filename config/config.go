// Package config loads server configuration from the environment.
// A .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the server configuration.
type Config struct {
	Port      int
	DBPath    string
	LogLevel  string // "debug", "info", "warn", "error"
	LogFormat string // "json" or "console"

	// Lock bounds for the write-serialization protocol.
	LockWait      time.Duration
	BatchLockWait time.Duration
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          8080,
		DBPath:        "shifts.db",
		LogLevel:      "info",
		LogFormat:     "json",
		LockWait:      30 * time.Second,
		BatchLockWait: 60 * time.Second,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("LOCK_WAIT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOCK_WAIT_SECONDS %q: %w", v, err)
		}
		cfg.LockWait = time.Duration(secs) * time.Second
	}
	if v := os.Getenv("BATCH_LOCK_WAIT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BATCH_LOCK_WAIT_SECONDS %q: %w", v, err)
		}
		cfg.BatchLockWait = time.Duration(secs) * time.Second
	}

	return cfg, nil
}
