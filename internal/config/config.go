// Package config loads wattbill settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mmynk/wattbill/pkg/logging"
)

// Config holds all application configuration
type Config struct {
	// DBPath is the SQLite file holding the bills table.
	DBPath string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// CurrencySymbol is printed in front of every amount.
	CurrencySymbol string

	// MetricsFile, when set, receives Prometheus text metrics on exit.
	MetricsFile string
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:         getEnv("DB_PATH", "./data/electricity.db"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "warn")),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),
		MetricsFile:    os.Getenv("METRICS_FILE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
