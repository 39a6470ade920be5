// Package cache connects the shared Redis client.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m3rciful/shopbot/core/logger"
)

const pingTimeout = 3 * time.Second

// Config holds Redis connection settings. Empty Addr disables the cache.
type Config struct {
	Addr       string `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password   string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB         int    `yaml:"db" envconfig:"REDIS_DB"`
	TTLSeconds int    `yaml:"ttl_seconds" envconfig:"REDIS_TTL_SECONDS"`
}

// Enabled reports whether an address is configured.
func (c Config) Enabled() bool {
	return c.Addr != ""
}

// TTL returns the entry lifetime, five minutes when unset.
func (c Config) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

// Normalize trims the address and validates the database index.
func (c *Config) Normalize() error {
	c.Addr = strings.TrimSpace(c.Addr)
	if c.DB < 0 {
		return fmt.Errorf("cache.db must be >= 0")
	}
	return nil
}

// Connect opens a client and pings it.
func Connect(cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	logger.Info(ctx, logger.ComponentCache, "connected",
		slog.String("addr", cfg.Addr),
		slog.Int("db", cfg.DB),
		slog.Duration("ttl", cfg.TTL()),
		slog.Duration("duration", logger.Took(start)),
	)
	return client, nil
}
