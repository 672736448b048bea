// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Config is the server configuration
type Config struct {
	Port              int           `env:"PORTAL_PORT" envDefault:"8080"`
	StorageType       string        `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL          string        `env:"REDIS_URL"`
	RedisKeyPrefix    string        `env:"REDIS_KEY_PREFIX" envDefault:"gameportal"`
	SQLitePath        string        `env:"SQLITE_PATH" envDefault:"gameportal.db"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	BcryptCost        int           `env:"PORTAL_BCRYPT_COST" envDefault:"10"`
	HistoryLimit      int           `env:"PORTAL_HISTORY_LIMIT" envDefault:"100"`
	SeedDemo          bool          `env:"PORTAL_SEED_DEMO" envDefault:"true"`
	AllowedOrigins    []string      `env:"PORTAL_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	PortalIdleTimeout time.Duration `env:"PORTAL_IDLE_TIMEOUT" envDefault:"30m"`
}

// Load reads an optional .env file and then parses the environment
func Load(envFiles ...string) (*Config, error) {
	// A missing .env file is normal
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	c.StorageType = strings.ToLower(strings.TrimSpace(c.StorageType))
	switch c.StorageType {
	case StorageMemory, StorageSQLite:
	case StorageRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be memory, redis or sqlite", c.StorageType)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORTAL_PORT %d", c.Port)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("invalid PORTAL_HISTORY_LIMIT %d", c.HistoryLimit)
	}
	if c.PortalIdleTimeout <= 0 {
		return fmt.Errorf("invalid PORTAL_IDLE_TIMEOUT %s", c.PortalIdleTimeout)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
