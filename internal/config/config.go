// Package config provides application configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	Server ServerConfig
	Google GoogleConfig `mapstructure:"google"`
	Redis  RedisConfig
	Cache  CacheConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// GoogleConfig holds settings for the Google calculator quote endpoint.
type GoogleConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout_sec"`
}

// RedisConfig holds connection settings for the optional provider cache.
type RedisConfig struct {
	CacheAddr string `mapstructure:"cache_addr"` // empty disables the Redis provider cache
}

// CacheConfig holds caching settings.
type CacheConfig struct {
	ProviderPriceTTLSec int `mapstructure:"provider_price_ttl_sec"`
}

// LoadConfig reads configuration from config files, environment variables, and defaults.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file found or error loading it: %v\n", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Config search paths
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("./internal/config")

	viper.SetEnvPrefix("RATESRC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// default values
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("google.base_url", "https://www.google.com/ig/calculator")
	viper.SetDefault("google.timeout_sec", 5)
	viper.SetDefault("redis.cache_addr", "")
	viper.SetDefault("cache.provider_price_ttl_sec", 300)

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if no config file, we have defaults and env
		fmt.Printf("Config file not found: %v\n", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks that all required configuration fields are set and valid.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be positive, got %d", c.Server.Port))
	}

	if c.Google.BaseURL == "" {
		errs = append(errs, fmt.Errorf("google.base_url is required"))
	}
	if c.Google.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("google.timeout_sec must be positive, got %d", c.Google.Timeout))
	}

	if c.Cache.ProviderPriceTTLSec <= 0 {
		errs = append(errs, fmt.Errorf("cache.provider_price_ttl_sec must be positive, got %d", c.Cache.ProviderPriceTTLSec))
	}

	return errors.Join(errs...)
}
