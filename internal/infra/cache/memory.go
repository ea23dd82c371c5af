package cache

import (
	"context"
	"strings"
	"time"

	"parkspot/internal/usecase/shared"

	gocache "github.com/patrickmn/go-cache"
)

const cleanupInterval = 10 * time.Minute

// MemoryCache backs the availability cache with an in-process store. Suitable
// for single-instance deployments; multi-instance ones use the Redis backend.
type MemoryCache struct {
	store *gocache.Cache
}

func NewMemoryCache(defaultTTL time.Duration) shared.Cache {
	return &MemoryCache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	data, ok := v.([]byte)
	return data, ok
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) {
	for _, key := range keys {
		c.store.Delete(key)
	}
}

func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) {
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
		}
	}
}
