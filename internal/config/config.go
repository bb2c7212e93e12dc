// Package config loads the service configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/restwell/restwell/internal/insights"
)

// Config is the root service configuration.
type Config struct {
	Server ServerConfig      `yaml:"server"`
	Store  StoreConfig       `yaml:"store"`
	Cache  CacheConfig       `yaml:"cache"`
	Engine insights.Settings `yaml:"engine"`
	// HistoryDays is the default fetch window for insight requests.
	HistoryDays int `yaml:"history_days"`
}

// ServerConfig holds HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	IdleTimeoutSec  int    `yaml:"idle_timeout_sec"`
	// RatePerSecond and RateBurst bound per-client request rates.
	RatePerSecond float64 `yaml:"rate_per_second"`
	RateBurst     int     `yaml:"rate_burst"`
}

// ReadTimeout returns the read timeout as a duration.
func (s ServerConfig) ReadTimeout() time.Duration { return time.Duration(s.ReadTimeoutSec) * time.Second }

// WriteTimeout returns the write timeout as a duration.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSec) * time.Second
}

// IdleTimeout returns the idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration { return time.Duration(s.IdleTimeoutSec) * time.Second }

// StoreConfig holds the Postgres history store settings.
type StoreConfig struct {
	DSN        string `yaml:"dsn"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// Timeout returns the query timeout as a duration.
func (s StoreConfig) Timeout() time.Duration { return time.Duration(s.TimeoutSec) * time.Second }

// CacheConfig holds the Redis response cache settings. An empty Addr
// disables caching.
type CacheConfig struct {
	Addr   string `yaml:"addr"`
	TTLSec int    `yaml:"ttl_sec"`
}

// TTL returns the cache TTL as a duration.
func (c CacheConfig) TTL() time.Duration { return time.Duration(c.TTLSec) * time.Second }

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeoutSec:  10,
			WriteTimeoutSec: 10,
			IdleTimeoutSec:  60,
			RatePerSecond:   10,
			RateBurst:       20,
		},
		Store: StoreConfig{
			TimeoutSec: 5,
		},
		Cache: CacheConfig{
			TTLSec: 300,
		},
		Engine:      insights.DefaultSettings(),
		HistoryDays: 30,
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.HistoryDays <= 0 {
		return fmt.Errorf("history_days must be positive, got %d", c.HistoryDays)
	}
	if c.Engine.Baseline.RecentWindowDays <= 0 {
		return fmt.Errorf("baseline recent window must be positive, got %d", c.Engine.Baseline.RecentWindowDays)
	}
	if c.Engine.Baseline.MinSampleDays < 1 {
		return fmt.Errorf("baseline minimum sample floor must be at least 1, got %d", c.Engine.Baseline.MinSampleDays)
	}
	return nil
}
