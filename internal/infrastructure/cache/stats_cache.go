// Package cache provides TTL caches for expensive read-mostly payloads such
// as homepage and dashboard statistics.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// StatsCache stores JSON-serializable payloads with a TTL
type StatsCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

type memEntry struct {
	payload   []byte
	expiresAt time.Time
}

// InMemoryStatsCache is the single-instance fallback when redis is disabled
type InMemoryStatsCache struct {
	mu      sync.RWMutex
	entries map[string]memEntry
}

var _ StatsCache = (*InMemoryStatsCache)(nil)

// NewInMemoryStatsCache creates an empty cache. Expired entries are dropped
// lazily on read.
func NewInMemoryStatsCache() *InMemoryStatsCache {
	return &InMemoryStatsCache{entries: make(map[string]memEntry)}
}

func (c *InMemoryStatsCache) Get(ctx context.Context, key string, dest any) error {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return ErrCacheMiss
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return ErrCacheMiss
	}
	return json.Unmarshal(e.payload, dest)
}

func (c *InMemoryStatsCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memEntry{payload: payload, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *InMemoryStatsCache) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// RedisStatsCache shares cached stats across instances
type RedisStatsCache struct {
	client    redis.UniversalClient
	keyPrefix string
}

var _ StatsCache = (*RedisStatsCache)(nil)

// NewRedisStatsCache creates a redis-backed cache under a key prefix
func NewRedisStatsCache(client redis.UniversalClient) *RedisStatsCache {
	return &RedisStatsCache{client: client, keyPrefix: "stats:"}
}

func (c *RedisStatsCache) Get(ctx context.Context, key string, dest any) error {
	payload, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	return json.Unmarshal(payload, dest)
}

func (c *RedisStatsCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

func (c *RedisStatsCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache key %s: %w", key, err)
	}
	return nil
}
