package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DevJWTSecret is the compiled-in development fallback. It is refused when
// the environment is production.
const DevJWTSecret = "quillpress-dev-secret-do-not-use-in-production"

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds the application configuration.
type Config struct {
	// Database connection string (DSN); SQLite file path or postgres:// URL
	DatabaseURL string

	// Server bind address (host:port)
	ServerAddr string

	// Maximum database connection pool size (PostgreSQL only)
	MaxDBConnections int

	// Enable debug logging
	Debug bool

	// Deployment environment: development or production
	Environment string

	// JWT signing configuration
	JWT JWTConfig
}

// JWTConfig holds the token signing parameters. A single shared HMAC secret
// signs every session token; there is no key rotation.
type JWTConfig struct {
	// Secret is the HMAC-SHA512 signing secret.
	Secret string

	// TTL is the token lifetime applied when the caller did not set an
	// expiry on the claims.
	TTL time.Duration
}

// Load reads configuration from environment variables with fallback defaults.
// Startup fails when production is configured with the development secret.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:      getEnv("QUILL_DATABASE_URL", "quillpress.db"),
		ServerAddr:       getEnv("QUILL_SERVER_ADDR", ":8080"),
		MaxDBConnections: getEnvInt("QUILL_MAX_DB_CONNECTIONS", 25),
		Debug:            getEnvBool("QUILL_DEBUG", false),
		Environment:      getEnv("QUILL_ENV", EnvDevelopment),
		JWT: JWTConfig{
			Secret: getEnv("QUILL_JWT_SECRET", DevJWTSecret),
			TTL:    time.Duration(getEnvInt64("QUILL_JWT_TTL_MS", 604800000)) * time.Millisecond,
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("QUILL_DATABASE_URL is required")
	}

	if cfg.Environment != EnvDevelopment && cfg.Environment != EnvProduction {
		return nil, fmt.Errorf("QUILL_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, cfg.Environment)
	}

	// The fallback secret is a development convenience only.
	if cfg.Environment == EnvProduction {
		if cfg.JWT.Secret == "" || cfg.JWT.Secret == DevJWTSecret {
			return nil, fmt.Errorf("QUILL_JWT_SECRET must be set to a strong secret in production")
		}
	}

	if cfg.JWT.TTL <= 0 {
		return nil, fmt.Errorf("QUILL_JWT_TTL_MS must be positive")
	}

	return cfg, nil
}

// IsProduction reports whether the production environment is configured.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
