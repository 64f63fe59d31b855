// Package config provides configuration management for the cost dashboard.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingCredentials is returned when the live data path is requested
// but the Azure service principal configuration is absent or still holds
// placeholder values. The mock path is never substituted automatically.
var ErrMissingCredentials = errors.New("azure credentials are not configured")

// Config holds all configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Azure  AzureConfig  `yaml:"azure"`
	Mock   MockConfig   `yaml:"mock"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AzureConfig holds the service principal used for Cost Management
// queries.
type AzureConfig struct {
	TenantID       string `yaml:"tenant_id"`
	ClientID       string `yaml:"client_id"`
	ClientSecret   string `yaml:"client_secret"`
	SubscriptionID string `yaml:"subscription_id"`
}

// MockConfig configures the synthetic data generator.
type MockConfig struct {
	// Seed fixes the random source for reproducible demo data.
	// Zero means time-seeded.
	Seed int64 `yaml:"seed"`
}

// Load loads configuration from an optional YAML file, expands ${VAR}
// references, then applies environment overrides. An empty path loads
// defaults and environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{Addr: ":5001"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Expand environment variables
		data = []byte(os.ExpandEnv(string(data)))

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":5001"
	}

	return cfg, nil
}

// applyEnv overrides file values with the environment variables the
// upstream dashboard reads.
func (c *Config) applyEnv() {
	if v := os.Getenv("AZURE_TENANT_ID"); v != "" {
		c.Azure.TenantID = v
	}
	if v := os.Getenv("AZURE_CLIENT_ID"); v != "" {
		c.Azure.ClientID = v
	}
	if v := os.Getenv("AZURE_CLIENT_SECRET"); v != "" {
		c.Azure.ClientSecret = v
	}
	if v := os.Getenv("AZURE_SUBSCRIPTION_ID"); v != "" {
		c.Azure.SubscriptionID = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
}

// Validate checks that all credential fields are present and that the
// identifiers are not the "your_..." placeholders shipped with the
// example environment file.
func (c AzureConfig) Validate() error {
	if c.TenantID == "" || c.ClientID == "" || c.ClientSecret == "" || c.SubscriptionID == "" {
		return ErrMissingCredentials
	}
	for _, id := range []string{c.TenantID, c.ClientID, c.SubscriptionID} {
		if strings.HasPrefix(id, "your_") {
			return ErrMissingCredentials
		}
	}
	return nil
}
