// Package config loads the state service configuration from an optional
// YAML file overlaid with environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pixil98/go-errors"
	"gopkg.in/yaml.v3"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"

	DefaultAddr     = "127.0.0.1:8080"
	DefaultRedisKey = "trailhead:gamestate"
)

type Config struct {
	Addr        string `yaml:"addr"`
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	Store       string `yaml:"store"`
	RedisURL    string `yaml:"redis_url"`
	RedisKey    string `yaml:"redis_key"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Addr:        DefaultAddr,
		Environment: "development",
		LogLevel:    "info",
		Store:       StoreMemory,
		RedisKey:    DefaultRedisKey,
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// TRAILHEAD_CONFIG (if any), then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("TRAILHEAD_CONFIG"); path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Addr = getEnv("TRAILHEAD_ADDR", cfg.Addr)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Store = strings.ToLower(getEnv("STORE", cfg.Store))
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.RedisKey = getEnv("REDIS_KEY", cfg.RedisKey)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.Addr == "" {
		el.Add(fmt.Errorf("addr is required"))
	}

	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		el.Add(fmt.Errorf("unknown log_level %q", c.LogLevel))
	}

	switch c.Store {
	case StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			el.Add(fmt.Errorf("redis_url is required when store is %q", StoreRedis))
		}
		if c.RedisKey == "" {
			el.Add(fmt.Errorf("redis_key is required when store is %q", StoreRedis))
		}
	default:
		el.Add(fmt.Errorf("unknown store %q (want %q or %q)", c.Store, StoreMemory, StoreRedis))
	}

	return el.Err()
}

var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// SlogLevel returns the configured level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	if level, ok := logLevels[strings.ToLower(c.LogLevel)]; ok {
		return level
	}
	return slog.LevelInfo
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
