package bootstrap

import (
	"context"

	"parkspot/internal/infra/cache"
	"parkspot/internal/pkg/config"
	"parkspot/internal/usecase/shared"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewCache,
	),
)

// NewCache selects the availability-cache backend from configuration. The
// in-process backend is the default; Redis is for multi-instance deployments.
func NewCache(lc fx.Lifecycle, cfg config.Config) (shared.Cache, error) {
	if cfg.Cache.Backend != "redis" {
		return cache.NewMemoryCache(cfg.Cache.TTL), nil
	}

	c, cleanup, err := cache.NewRedisCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return c, nil
}
