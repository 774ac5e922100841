// Package config loads the truth-table client configuration.
package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// Defaults.
const (
	DefaultBaseURL    = "http://localhost:8085/"
	DefaultTimeout    = 10 * time.Second
	DefaultListenAddr = ":8080"
	DefaultLogLevel   = "info"
	DefaultFormat     = "table"

	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "TRUTHTABLE_"
)

// Config holds everything the CLI and the web front end need.
type Config struct {
	BaseURL          string        `koanf:"base_url"`
	Timeout          time.Duration `koanf:"timeout"`
	ListenAddr       string        `koanf:"listen_addr"`
	LogLevel         string        `koanf:"log_level"`
	Format           string        `koanf:"format"`
	TelemetryEnabled bool          `koanf:"telemetry_enabled"`
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.ListenAddr == "" {
		return errors.New("listen_addr is required")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}
