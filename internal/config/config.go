// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"factorysite/internal/i18n"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// DefaultLang is served when a request names no supported language.
	DefaultLang i18n.Lang

	// PostgreSQL connection. An unreachable database is not fatal: the
	// public site falls back to the built-in sample catalog.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible session store)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// S3-compatible object storage for uploaded images
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	// MaxUploadBytes caps a single image upload.
	MaxUploadBytes int64

	// Per-client budgets for the public contact/quote forms and the admin
	// login, written as "requests/window" (e.g. "5/1m").
	FormRateLimit  RateLimit
	LoginRateLimit RateLimit
}

// RateLimit is a request budget per client and window.
type RateLimit struct {
	Requests int
	Window   time.Duration
}

func (l RateLimit) String() string {
	return fmt.Sprintf("%d/%s", l.Requests, l.Window)
}

// parseRateLimit reads "requests/window", where window is a Go duration.
func parseRateLimit(key, fallback string) (RateLimit, error) {
	raw := envOrDefault(key, fallback)
	count, window, ok := strings.Cut(raw, "/")
	if !ok {
		return RateLimit{}, fmt.Errorf("%s must look like 5/1m, got %q", key, raw)
	}
	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil || n < 1 {
		return RateLimit{}, fmt.Errorf("%s: request count must be a positive integer, got %q", key, count)
	}
	d, err := time.ParseDuration(strings.TrimSpace(window))
	if err != nil || d <= 0 {
		return RateLimit{}, fmt.Errorf("%s: window must be a positive duration, got %q", key, window)
	}
	return RateLimit{Requests: n, Window: d}, nil
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode or malformed.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "factorysite"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "factorysite"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "factorysite-media"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}

	lang, ok := i18n.Parse(envOrDefault("DEFAULT_LANG", string(i18n.Default)))
	if !ok {
		return nil, fmt.Errorf("DEFAULT_LANG must be one of %v", i18n.Supported)
	}
	cfg.DefaultLang = lang

	size, err := humanize.ParseBytes(envOrDefault("UPLOAD_MAX_SIZE", "10 MB"))
	if err != nil {
		return nil, fmt.Errorf("parse UPLOAD_MAX_SIZE: %w", err)
	}
	cfg.MaxUploadBytes = int64(size)

	if cfg.FormRateLimit, err = parseRateLimit("FORM_RATE_LIMIT", "5/1m"); err != nil {
		return nil, err
	}
	if cfg.LoginRateLimit, err = parseRateLimit("LOGIN_RATE_LIMIT", "10/1m"); err != nil {
		return nil, err
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// StorageEnabled reports whether S3 uploads are configured.
func (c *Config) StorageEnabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
