package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds recently read profiles.
type Cache interface {
	Get(ctx context.Context, userID int64) (Profile, bool, error)
	Set(ctx context.Context, p Profile) error
	Delete(ctx context.Context, userID int64) error
}

// RedisCache stores JSON-encoded profiles under profile:<id>.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache returns a cache on client. A non-positive ttl keeps entries until deleted.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(userID int64) string {
	return "profile:" + strconv.FormatInt(userID, 10)
}

// Get returns the cached profile. A miss is (Profile{}, false, nil).
func (c *RedisCache) Get(ctx context.Context, userID int64) (Profile, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Profile{}, false, nil
		}
		return Profile{}, false, fmt.Errorf("profile cache: get: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, false, fmt.Errorf("profile cache: decode: %w", err)
	}
	return p, true, nil
}

// Set stores p with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, p Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("profile cache: encode: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(p.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("profile cache: set: %w", err)
	}
	return nil
}

// Delete drops the entry for userID.
func (c *RedisCache) Delete(ctx context.Context, userID int64) error {
	if err := c.client.Del(ctx, cacheKey(userID)).Err(); err != nil {
		return fmt.Errorf("profile cache: delete: %w", err)
	}
	return nil
}
