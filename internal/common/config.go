// Package common provides shared utilities for FinBuddy
package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for FinBuddy
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Clients     ClientsConfig   `toml:"clients"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the file storage area configuration
type StorageConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	MarketData MarketDataConfig `toml:"marketdata"`
	NewsFeed   NewsFeedConfig   `toml:"newsfeed"`
	Gemini     GeminiConfig     `toml:"gemini"`
}

// MarketDataConfig holds the live price API configuration
type MarketDataConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *MarketDataConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// NewsFeedConfig holds the news API configuration
type NewsFeedConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *NewsFeedConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the narrative generation timeout.
// This bounds every LLM call; on expiry the deterministic fallback is used.
func (c *GeminiConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// SchedulerConfig holds background job configuration
type SchedulerConfig struct {
	NewsRefreshSpec string `toml:"news_refresh_spec"` // cron spec, e.g. "@every 30m"
	NewsFetchLimit  int    `toml:"news_fetch_limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Storage: StorageConfig{
			Path: "data",
		},
		Clients: ClientsConfig{
			MarketData: MarketDataConfig{
				BaseURL:   "https://finnhub.io/api/v1",
				RateLimit: 10,
				Timeout:   "10s",
			},
			NewsFeed: NewsFeedConfig{
				BaseURL:   "https://newsapi.org/v2",
				RateLimit: 5,
				Timeout:   "15s",
			},
			Gemini: GeminiConfig{
				Model:   "gemini-2.0-flash",
				Timeout: "5s",
			},
		},
		Scheduler: SchedulerConfig{
			NewsRefreshSpec: "@every 30m",
			NewsFetchLimit:  50,
		},
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

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FINBUDDY_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FINBUDDY_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FINBUDDY_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FINBUDDY_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("FINBUDDY_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if v := os.Getenv("FINBUDDY_MARKETDATA_API_KEY"); v != "" {
		config.Clients.MarketData.APIKey = v
	}
	if v := os.Getenv("FINBUDDY_NEWSFEED_API_KEY"); v != "" {
		config.Clients.NewsFeed.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		config.Clients.Gemini.APIKey = v
	}
	if v := os.Getenv("FINBUDDY_GEMINI_API_KEY"); v != "" {
		config.Clients.Gemini.APIKey = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
