package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the linelog daemons and CLI
type Config struct {
	// Store catalog
	CatalogPath string // YAML file declaring the named log stores

	// Compaction
	MetaDBPath      string        // BoltDB compaction journal path ("" disables the journal)
	CompactInterval time.Duration // How often the compactor daemon sweeps the catalog

	// Observability
	LogLevel        string
	TracingEnabled  bool
	TracingEndpoint string
	TracingProtocol string // "grpc" or "http"
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		CatalogPath: getEnv("LINELOG_CATALOG", "configs/stores.yaml"),

		MetaDBPath:      getEnv("LINELOG_META_DB", ""),
		CompactInterval: getEnvDuration("LINELOG_COMPACT_INTERVAL", time.Hour),

		LogLevel:        getEnv("LOG_LEVEL", "info"),
		TracingEnabled:  getEnvBool("TRACING_ENABLED", false),
		TracingEndpoint: getEnv("TRACING_ENDPOINT", ""),
		TracingProtocol: getEnv("TRACING_PROTOCOL", "grpc"),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.CatalogPath == "" {
		return fmt.Errorf("LINELOG_CATALOG is required")
	}
	if c.CompactInterval < time.Second {
		return fmt.Errorf("LINELOG_COMPACT_INTERVAL must be at least 1s")
	}
	if c.TracingProtocol != "grpc" && c.TracingProtocol != "http" {
		return fmt.Errorf("TRACING_PROTOCOL must be 'grpc' or 'http'")
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
