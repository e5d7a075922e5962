package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache: key not found")

// RedisCache is a thin string-valued wrapper around a Redis connection.
// All keys are namespaced under a prefix so several services can share
// one Redis instance.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to Redis and verifies the connection with a ping.
func NewRedisCache(opts ...RedisOption) (*RedisCache, error) {
	cfg := &RedisConfig{
		Host:   "localhost",
		Port:   6379,
		Prefix: "riskdesk",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{client: client, prefix: cfg.Prefix}, nil
}

// Close closes the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Set writes a string value with an expiration.
func (c *RedisCache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	return c.client.Set(ctx, c.wrap(key), value, expiration).Err()
}

// Get reads a single key. Returns ErrCacheMiss if it does not exist.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	v, err := c.client.Get(ctx, c.wrap(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// MGet reads a batch of keys in one round trip. Keys that do not exist are
// absent from the result map.
func (c *RedisCache) MGet(ctx context.Context, keys ...string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}

	wrapped := make([]string, len(keys))
	for i, k := range keys {
		wrapped[i] = c.wrap(k)
	}

	vals, err := c.client.MGet(ctx, wrapped...).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(keys))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		out[keys[i]] = s
	}
	return out, nil
}

// Delete removes keys. Missing keys are not an error.
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	wrapped := make([]string, len(keys))
	for i, k := range keys {
		wrapped[i] = c.wrap(k)
	}
	return c.client.Del(ctx, wrapped...).Err()
}

func (c *RedisCache) wrap(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}
