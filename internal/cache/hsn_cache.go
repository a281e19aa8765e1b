// Package cache holds Redis-backed caches.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"gstsync/internal/config"
	"gstsync/internal/port"
)

const hsnKeyPrefix = "gstsync:hsn"

// HSNCache stores product classification codes in Redis.
// A stored empty string is a cached negative.
type HSNCache struct {
	client *redis.Client
}

// NewRedisClient connects to Redis. It returns nil when no address is configured
// or the server is unreachable, so callers can run without a cache.
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("cache.NewRedisClient: %s unreachable, continuing without cache: %v", cfg.Addr, err)
		_ = client.Close()
		return nil
	}
	return client
}

// NewHSNCache wraps a Redis client. A nil client yields a cache that always misses.
func NewHSNCache(client *redis.Client) port.HSNCache {
	return &HSNCache{client: client}
}

func hsnKey(shop, productID string) string {
	return fmt.Sprintf("%s:%s:%s", hsnKeyPrefix, shop, productID)
}

func (c *HSNCache) Get(ctx context.Context, shop, productID string) (string, bool, error) {
	if c.client == nil {
		return "", false, nil
	}
	code, err := c.client.Get(ctx, hsnKey(shop, productID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("HSNCache.Get: %w", err)
	}
	return code, true, nil
}

func (c *HSNCache) Set(ctx context.Context, shop, productID, code string, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, hsnKey(shop, productID), code, ttl).Err(); err != nil {
		return fmt.Errorf("HSNCache.Set: %w", err)
	}
	return nil
}
