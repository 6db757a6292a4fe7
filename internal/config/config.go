// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"bandwidth-cost/internal/errors"
	"bandwidth-cost/internal/logging"
)

// Environment variables that override file settings.
const (
	EnvAddr      = "BANDWIDTH_COST_ADDR"
	EnvPlansFile = "BANDWIDTH_COST_PLANS"
	EnvLogLevel  = "BANDWIDTH_COST_LOG_LEVEL"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Pricing contains pricing configuration
	Pricing PricingConfig `json:"pricing"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds writing a response
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// PlansFile is an HCL plan catalog; empty uses the built-in plans
	PlansFile string `json:"plans_file"`

	// Currency labels monetary output
	Currency string `json:"currency"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// ShowDetails shows the per-tier breakdown
	ShowDetails bool `json:"show_details"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 10,
		},
		Pricing: PricingConfig{
			Currency: "USD",
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowDetails:   false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.bandwidth-cost.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".bandwidth-cost.json")
}

// Load loads configuration from a file, then applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.Config("read config "+path, err)
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, errors.Config("parse config "+path, err)
		}
	}

	config.ApplyEnv()
	return config, nil
}

// ApplyEnv overrides fields from the environment
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvPlansFile); v != "" {
		c.Pricing.PlansFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
