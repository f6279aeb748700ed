// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverDisk     = "disk"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config holds all configuration values for the server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of origins allowed to call the JSON API.
	// Empty (the default) disables CORS handling; the HTML pages are same-origin.
	CORSOrigins []string

	// StoreDriver selects the slot backend: disk (default), memory or postgres.
	StoreDriver string

	// DataDir is the diskv base directory for the disk driver.
	// Defaults to ~/.photo-journal; a leading ~ is expanded.
	DataDir string

	// DatabaseURL is the Postgres connection string. Required for the postgres driver.
	DatabaseURL string

	// StoreKey overrides the slot key the collection is stored under.
	StoreKey string

	// MaxUploadBytes caps request bodies and decoded photos. Defaults to 10 MiB.
	MaxUploadBytes int64

	// DecodeConcurrency bounds simultaneous photo decodes. Defaults to 4.
	DecodeConcurrency int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming the first variable that is missing or invalid.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(os.Getenv("CORS_ORIGINS")),
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverDisk)),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		StoreKey:    os.Getenv("STORE_KEY"),
	}

	switch cfg.StoreDriver {
	case DriverDisk:
		dir, err := homedir.Expand(getEnv("DATA_DIR", "~/.photo-journal"))
		if err != nil {
			return Config{}, fmt.Errorf("invalid DATA_DIR: %w", err)
		}
		cfg.DataDir = dir
	case DriverMemory:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("required environment variables not set: DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("invalid STORE_DRIVER %q: want disk, memory or postgres", cfg.StoreDriver)
	}

	var err error
	if cfg.MaxUploadBytes, err = getPositiveInt("MAX_UPLOAD_BYTES", 10<<20); err != nil {
		return Config{}, err
	}
	if cfg.DecodeConcurrency, err = getPositiveInt("DECODE_CONCURRENCY", 4); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getPositiveInt(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: want a positive integer", key, v)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
