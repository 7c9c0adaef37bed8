// Package common provides shared utilities for Aurora
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/aurora/internal/engine"
)

// Config holds all configuration for Aurora
type Config struct {
	Environment string        `toml:"environment" validate:"required"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Feed        FeedConfig    `toml:"feed"`
	Engine      engine.Config `toml:"engine"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host" validate:"required"`
	Port int    `toml:"port" validate:"min=1,max=65535"`
}

// StorageConfig holds the user data store location
type StorageConfig struct {
	Path string `toml:"path" validate:"required"`
}

// FeedConfig holds market data feed client configuration
type FeedConfig struct {
	BaseURL   string `toml:"base_url" validate:"required,url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit" validate:"min=1"` // requests per second
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *FeedConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=console json"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data/userdb",
		},
		Feed: FeedConfig{
			BaseURL:   "https://feed.aurora.local/api",
			RateLimit: 10,
			Timeout:   "30s",
		},
		Engine: engine.DefaultConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the loaded configuration against its constraint tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("AURORA_ENV"); env != "" {
		config.Environment = env
	}
	if host := os.Getenv("AURORA_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("AURORA_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if path := os.Getenv("AURORA_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}
	if level := os.Getenv("AURORA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if url := os.Getenv("AURORA_FEED_BASE_URL"); url != "" {
		config.Feed.BaseURL = url
	}
	if key := os.Getenv("AURORA_FEED_API_KEY"); key != "" {
		config.Feed.APIKey = key
	}
	if key := os.Getenv("FEED_API_KEY"); key != "" && config.Feed.APIKey == "" {
		config.Feed.APIKey = key
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
