package config

import (
	"fmt"
	"os"

	"stock-tracker/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides validation on load.
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new Config instance from a YAML file. The
// provider API key may be supplied via POLYGON_API_KEY instead of the
// file so the key never has to live in the repo.
func NewConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	if key := os.Getenv("POLYGON_API_KEY"); key != "" {
		modelConfig.Provider.APIKey = key
	}

	config := &Config{MConfig: &modelConfig}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Storage.DBType == "" {
		return fmt.Errorf("database type cannot be empty")
	}
	if c.Storage.DBType == "sqlite" && c.Storage.DBPath == "" {
		return fmt.Errorf("database path cannot be empty for sqlite")
	}
	if c.Storage.DBType == "postgres" && c.Storage.DBConnectionString == "" {
		return fmt.Errorf("connection string cannot be empty for postgres")
	}

	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	if c.Network.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}

	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider base URL cannot be empty")
	}
	if c.Provider.APIKey == "" {
		return fmt.Errorf("provider API key cannot be empty (set POLYGON_API_KEY)")
	}

	if c.Scraper.BaseURL == "" {
		return fmt.Errorf("scraper base URL cannot be empty")
	}
	if c.Scraper.DelaySeconds < 0 {
		return fmt.Errorf("scraper delay cannot be negative")
	}

	if c.Pipeline.NumTopStocks <= 0 {
		return fmt.Errorf("number of top stocks must be greater than 0")
	}

	return nil
}
