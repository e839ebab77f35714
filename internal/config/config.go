// Package config loads taskbridge configuration from the environment.
// A .env file in the working directory is honored when present, matching
// how the service was deployed historically.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr      = "127.0.0.1:8080"
	defaultDBDriver      = "sqlite"
	defaultDBDSN         = "taskbridge.db"
	defaultTokenSecret   = "change-me-in-production"
	defaultTokenLifetime = 30 * time.Minute
)

// Config holds the runtime settings for the server and CLI.
type Config struct {
	HTTPAddr      string
	DBDriver      string // "sqlite" or "postgres"
	DBDSN         string
	TokenSecret   string
	TokenLifetime time.Duration
	Debug         bool
}

// FromEnv reads configuration from TASKBRIDGE_* variables, falling back to
// defaults. Call LoadDotEnv first if .env support is wanted.
func FromEnv() Config {
	cfg := Config{
		HTTPAddr:      envOr("TASKBRIDGE_HTTP_ADDR", defaultHTTPAddr),
		DBDriver:      strings.ToLower(envOr("TASKBRIDGE_DB_DRIVER", defaultDBDriver)),
		DBDSN:         envOr("TASKBRIDGE_DB_DSN", defaultDBDSN),
		TokenSecret:   envOr("TASKBRIDGE_TOKEN_SECRET", defaultTokenSecret),
		TokenLifetime: defaultTokenLifetime,
		Debug:         envBool("TASKBRIDGE_DEBUG"),
	}

	if raw := os.Getenv("TASKBRIDGE_TOKEN_LIFETIME_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			cfg.TokenLifetime = time.Duration(minutes) * time.Minute
		}
	}

	return cfg
}

// LoadDotEnv loads a .env file from the working directory when one exists.
// Missing files are not an error.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Overload()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
