// Package config holds the storefront configuration: theme, catalog
// source, search debounce and the simulated payment delay. Configuration is
// a YAML file with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all storefront configuration.
type Config struct {
	// Theme selects the UI color scheme: "light", "dark" or "auto".
	Theme string `yaml:"theme"`

	// Catalog configures the product source.
	Catalog CatalogConfig `yaml:"catalog"`

	// Search configures the product search behavior.
	Search SearchConfig `yaml:"search"`

	// Payment configures the simulated payment call.
	Payment PaymentConfig `yaml:"payment"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// CatalogConfig configures the product catalog source.
type CatalogConfig struct {
	// Path to an external YAML catalog. Empty means the embedded catalog.
	Path string `yaml:"path"`

	// Watch enables live reload of the external catalog file.
	Watch bool `yaml:"watch"`
}

// SearchConfig configures search input handling.
type SearchConfig struct {
	// Debounce is how long the search input must be idle before the
	// filter re-runs (duration string, e.g. "300ms").
	Debounce string `yaml:"debounce"`
}

// PaymentConfig configures the simulated payment processing.
type PaymentConfig struct {
	// ProcessingDelay is the simulated gateway round trip (duration
	// string, e.g. "2s").
	ProcessingDelay string `yaml:"processing_delay"`
}

// DefaultConfig returns the reference defaults.
func DefaultConfig() *Config {
	return &Config{
		Theme: "auto",
		Search: SearchConfig{
			Debounce: "300ms",
		},
		Payment: PaymentConfig{
			ProcessingDelay: "2s",
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults when
// the file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if theme := os.Getenv("STOREFRONT_THEME"); theme != "" {
		c.Theme = theme
	}
	if path := os.Getenv("STOREFRONT_CATALOG"); path != "" {
		c.Catalog.Path = path
	}
	if os.Getenv("STOREFRONT_VERBOSE") == "1" {
		c.Verbose = true
	}
}

// SearchDebounce parses the configured debounce, falling back to the
// default on a bad value.
func (c *Config) SearchDebounce() time.Duration {
	return parseDuration(c.Search.Debounce, 300*time.Millisecond)
}

// ProcessingDelay parses the configured payment delay, falling back to the
// default on a bad value.
func (c *Config) ProcessingDelay() time.Duration {
	return parseDuration(c.Payment.ProcessingDelay, 2*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
