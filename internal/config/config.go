package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort         = "8080"
	defaultDatabaseDSN  = "jobtrack.db"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTAccessTTL = "24h"
)

// Config is the runtime configuration of the API process, loaded from the
// environment with development defaults.
type Config struct {
	AppEnv       string
	Port         string
	DatabaseDSN  string
	JWTSecret    string
	JWTAccessTTL time.Duration

	// JobRequiredExtra appends field keys to the default required-field set
	// for job creation (comma separated, e.g. "serial_no,gstin").
	JobRequiredExtra []string
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:      envOr("APP_ENV", "local"),
		Port:        envOr("PORT", defaultPort),
		DatabaseDSN: envOr("DATABASE_URL", defaultDatabaseDSN),
		JWTSecret:   envOr("JWT_SECRET", defaultJWTSecret),
	}

	ttl, err := time.ParseDuration(envOr("JWT_ACCESS_TTL", defaultJWTAccessTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TTL: %w", err)
	}
	cfg.JWTAccessTTL = ttl

	if extra := os.Getenv("JOB_REQUIRED_EXTRA"); extra != "" {
		for _, f := range strings.Split(extra, ",") {
			if f = strings.TrimSpace(f); f != "" {
				cfg.JobRequiredExtra = append(cfg.JobRequiredExtra, f)
			}
		}
	}

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
