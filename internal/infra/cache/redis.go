package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parkspot/internal/pkg/config"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

// RedisCache shares the availability cache across instances. Every backend
// error degrades to a miss with a warning, never a failed request.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg config.CacheConfig) (shared.Cache, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, errs.Wrap(err, "failed to ping redis")
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err.Error())
		}
	}
	return &RedisCache{client: client}, cleanup, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("redis get failed", "key", key, "error", err.Error())
		}
		return nil, false
	}
	return data, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Warn("redis set failed", "key", key, "error", err.Error())
	}
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("redis delete failed", "keys", keys, "error", err.Error())
	}
}

func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) {
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Warn("redis scan failed", "prefix", prefix, "error", err.Error())
		return
	}
	c.Delete(ctx, keys...)
}
