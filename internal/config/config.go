// Package config loads application configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all app configuration.
type Config struct {
	// Server
	HTTPAddr string

	// Databases
	PostgresDSN   string
	ClickhouseDSN string

	// Artifacts
	OutputDir string

	// Dashboard
	RefreshInterval time.Duration

	// App settings
	Debug bool
}

// Load reads configuration from environment variables. A .env file in
// the working directory is loaded first if present; existing env vars
// are not overridden.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		PostgresDSN:     getEnv("POSTGRES_DSN", ""),
		ClickhouseDSN:   getEnv("CLICKHOUSE_DSN", ""),
		OutputDir:       getEnv("OUTPUT_DIR", "output"),
		RefreshInterval: getEnvDuration("DASHBOARD_REFRESH_INTERVAL", 5*time.Second),
		Debug:           getEnvBool("DEBUG", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
