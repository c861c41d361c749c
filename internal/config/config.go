// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"wellnesshub/internal/apiclient"
	"wellnesshub/internal/persist"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Backend REST API
	APIBaseURL string
	APITimeout time.Duration

	// Visitor state persistence
	StorageDriver string // "memory", "file", "valkey", "postgres"
	StorageDir    string
	StateTTL      time.Duration

	// MockProducts serves the product catalogue from visitor-independent
	// local state instead of the backend.
	MockProducts bool

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	ValkeyDB       int

	// Image uploads
	S3Endpoint    string
	S3Region      string
	S3AccessKey   string
	S3SecretKey   string
	S3Bucket      string
	S3PublicURL   string
	UploadFolder  string
	CloudinaryURL string
}

// LoadDotEnv reads a .env file from the working directory when present.
// Variables already set in the environment win.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not read .env file", "error", err)
	}
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		APIBaseURL: strings.TrimRight(os.Getenv("API_BASE_URL"), "/"),

		StorageDriver: strings.ToLower(envOrDefault("STORAGE_DRIVER", "memory")),
		StorageDir:    envOrDefault("STORAGE_DIR", "data/state"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "wellnesshub"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "wellnesshub"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:    os.Getenv("S3_ENDPOINT"),
		S3Region:      envOrDefault("S3_REGION", "fsn1"),
		S3AccessKey:   os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:   os.Getenv("S3_SECRET_KEY"),
		S3Bucket:      envOrDefault("S3_BUCKET", "wellnesshub-media"),
		S3PublicURL:   os.Getenv("S3_PUBLIC_URL"),
		UploadFolder:  envOrDefault("UPLOAD_FOLDER", "wellnesshub"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
	}

	var err error
	if cfg.APITimeout, err = durationOrDefault("API_TIMEOUT", apiclient.DefaultTimeout); err != nil {
		return nil, err
	}
	if cfg.StateTTL, err = durationOrDefault("STATE_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.MockProducts, err = boolOrDefault("MOCK_PRODUCTS", false); err != nil {
		return nil, err
	}
	if cfg.ValkeyDB, err = intOrDefault("VALKEY_DB", 0); err != nil {
		return nil, err
	}

	if !persist.ValidDriver(cfg.StorageDriver) {
		return nil, fmt.Errorf("STORAGE_DRIVER %q is not one of memory, file, valkey, postgres", cfg.StorageDriver)
	}

	if cfg.Env == "production" {
		if cfg.APIBaseURL == "" {
			return nil, fmt.Errorf("API_BASE_URL must be set in production")
		}
		if cfg.StorageDriver == "postgres" && cfg.DBPassword == "changeme" {
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

// DevAPIBase is the backend origin used in development when API_BASE_URL
// is not set.
const DevAPIBase = "http://localhost:5099"

// APIBase returns the backend origin.
func (c *Config) APIBase() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	return DevAPIBase
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func boolOrDefault(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

func intOrDefault(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}
