// Package cache provides caching for the public passport page.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	passportapp "github.com/lucamadonia/dpp-backend/internal/application/passport"
	infraconfig "github.com/lucamadonia/dpp-backend/internal/infrastructure/config"
)

const passportKeyPrefix = "passport:public:"

// Ensure RedisPassportCache implements PassportCache
var _ passportapp.PassportCache = (*RedisPassportCache)(nil)

// RedisPassportCache caches public passport views in Redis, shared across
// instances so a published slug is built at most once per TTL window.
type RedisPassportCache struct {
	client     *redis.Client
	defaultTTL time.Duration
	logger     *zap.Logger
}

// NewRedisPassportCache connects to Redis and returns a passport cache
func NewRedisPassportCache(cfg *infraconfig.RedisConfig, defaultTTL time.Duration, logger *zap.Logger) (*RedisPassportCache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisPassportCache{
		client:     client,
		defaultTTL: defaultTTL,
		logger:     logger,
	}, nil
}

// NewRedisPassportCacheWithClient wraps an existing Redis client
func NewRedisPassportCacheWithClient(client *redis.Client, defaultTTL time.Duration, logger *zap.Logger) *RedisPassportCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPassportCache{
		client:     client,
		defaultTTL: defaultTTL,
		logger:     logger,
	}
}

// Get retrieves a cached passport view. Returns nil, nil on a cache miss.
func (c *RedisPassportCache) Get(ctx context.Context, slug string) (*passportapp.PublicPassportResponse, error) {
	data, err := c.client.Get(ctx, passportKeyPrefix+slug).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read passport from cache: %w", err)
	}

	var view passportapp.PublicPassportResponse
	if err := json.Unmarshal(data, &view); err != nil {
		// A stale or corrupt entry is treated as a miss
		c.logger.Warn("dropping unreadable passport cache entry", zap.String("slug", slug), zap.Error(err))
		c.client.Del(ctx, passportKeyPrefix+slug)
		return nil, nil
	}

	return &view, nil
}

// Set stores a passport view with the given TTL. A zero TTL uses the default.
func (c *RedisPassportCache) Set(ctx context.Context, slug string, view *passportapp.PublicPassportResponse, ttl time.Duration) error {
	if view == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal passport view: %w", err)
	}

	if err := c.client.Set(ctx, passportKeyPrefix+slug, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write passport to cache: %w", err)
	}

	return nil
}

// Delete removes a cached passport view
func (c *RedisPassportCache) Delete(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, passportKeyPrefix+slug).Err(); err != nil {
		return fmt.Errorf("failed to delete passport from cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisPassportCache) Close() error {
	return c.client.Close()
}
