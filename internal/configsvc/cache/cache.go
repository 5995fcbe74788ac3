// Package cache implements the two-level cache the config-watch daemon
// keeps in front of re-parsing a TOML file on every request: an
// in-process LRU (github.com/hashicorp/golang-lru) backed by a Redis
// layer shared across instances, adapted from
// internal/web/cache.RedisCache in this corpus's Conduit compiler.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when key is present in neither cache tier.
var ErrMiss = errors.New("cache: miss")

// Config configures both cache tiers.
type Config struct {
	LocalSize int
	TTL       time.Duration
}

// DefaultConfig returns sane defaults: a 256-entry L1 and a 5 minute
// L2 TTL, mirroring DefaultRedisConfig's defaulting shape.
func DefaultConfig() Config {
	return Config{LocalSize: 256, TTL: 5 * time.Minute}
}

// Cache is a read-through, write-through two-level cache: Get checks the
// in-process LRU first, then Redis; Set writes both.
type Cache struct {
	local  *lru.Cache
	redis  *redis.Client
	config Config
}

// New connects to redis at addr and builds the local LRU, verifying
// connectivity with a bounded Ping the way NewRedisCache does.
func New(addr, password string, db int, config Config) (*Cache, error) {
	local, err := lru.New(config.LocalSize)
	if err != nil {
		return nil, fmt.Errorf("cache: create local LRU: %w", err)
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: connect to redis at %s: %w", addr, err)
	}
	return &Cache{local: local, redis: client, config: config}, nil
}

// NewWithClient wraps an already-constructed redis client, used by
// tests against alicebob/miniredis.
func NewWithClient(client *redis.Client, config Config) (*Cache, error) {
	local, err := lru.New(config.LocalSize)
	if err != nil {
		return nil, fmt.Errorf("cache: create local LRU: %w", err)
	}
	return &Cache{local: local, redis: client, config: config}, nil
}

// Get returns the cached bytes for key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.local.Get(key); ok {
		return v.([]byte), nil
	}
	v, err := c.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get %s: %w", key, err)
	}
	c.local.Add(key, v)
	return v, nil
}

// Set writes key to both cache tiers with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	c.local.Add(key, value)
	ttl := c.config.TTL
	if ttl == 0 {
		ttl = DefaultConfig().TTL
	}
	if err := c.redis.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

// Invalidate removes key from both tiers.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	c.local.Remove(key)
	if err := c.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache: delete %s: %w", key, err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *Cache) Close() error { return c.redis.Close() }
