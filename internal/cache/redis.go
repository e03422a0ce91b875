package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache shares projection results across processes. Values are stored as
// JSON under a common key prefix with the configured TTL; Redis handles
// expiry, so there is nothing to clean up in-process.
type RedisCache[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedis[T any](addr, prefix string, ttl time.Duration) *RedisCache[T] {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache[T]{client: rdb, prefix: prefix, ttl: ttl}
}

func (c *RedisCache[T]) Get(key string) (T, bool) {
	var zero T
	raw, err := c.client.Get(context.Background(), c.prefix+key).Bytes()
	if err != nil {
		return zero, false
	}
	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		slog.Warn("Dropping undecodable cache entry", "key", key, "error", err)
		c.Delete(key)
		return zero, false
	}
	return data, true
}

func (c *RedisCache[T]) Set(key string, data T) {
	raw, err := json.Marshal(data)
	if err != nil {
		slog.Warn("Failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := c.client.Set(context.Background(), c.prefix+key, raw, c.ttl).Err(); err != nil {
		slog.Warn("Failed to store cache entry", "key", key, "error", err)
	}
}

func (c *RedisCache[T]) Delete(key string) {
	if err := c.client.Del(context.Background(), c.prefix+key).Err(); err != nil {
		slog.Warn("Failed to delete cache entry", "key", key, "error", err)
	}
}

// Size counts entries under this cache's prefix.
func (c *RedisCache[T]) Size() int {
	var count int
	iter := c.client.Scan(context.Background(), 0, c.prefix+"*", 0).Iterator()
	for iter.Next(context.Background()) {
		count++
	}
	return count
}

func (c *RedisCache[T]) Close() error {
	return c.client.Close()
}
