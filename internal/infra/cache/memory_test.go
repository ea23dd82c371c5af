//go:build unit

package cache_test

import (
	"context"
	"testing"
	"time"

	"parkspot/internal/infra/cache"
	"parkspot/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set and get round-trip", func(t *testing.T) {
		c := cache.NewMemoryCache(time.Minute)
		c.Set(ctx, "k", []byte("v"), time.Minute)

		got, ok := c.Get(ctx, "k")
		require.True(t, ok)
		assert.Equal(t, []byte("v"), got)
	})

	t.Run("miss on unknown key", func(t *testing.T) {
		c := cache.NewMemoryCache(time.Minute)

		_, ok := c.Get(ctx, "nope")
		assert.False(t, ok)
	})

	t.Run("delete removes given keys only", func(t *testing.T) {
		c := cache.NewMemoryCache(time.Minute)
		c.Set(ctx, "a", []byte("1"), time.Minute)
		c.Set(ctx, "b", []byte("2"), time.Minute)

		c.Delete(ctx, "a")

		_, ok := c.Get(ctx, "a")
		assert.False(t, ok)
		_, ok = c.Get(ctx, "b")
		assert.True(t, ok)
	})

	t.Run("delete prefix clears a garage's availability dates", func(t *testing.T) {
		c := cache.NewMemoryCache(time.Minute)
		garageID := uuid.New()
		otherID := uuid.New()

		c.Set(ctx, shared.AvailabilityKey(garageID, "2026-03-02"), []byte("x"), time.Minute)
		c.Set(ctx, shared.AvailabilityKey(garageID, "2026-03-03"), []byte("y"), time.Minute)
		c.Set(ctx, shared.AvailabilityKey(otherID, "2026-03-02"), []byte("z"), time.Minute)

		c.DeletePrefix(ctx, shared.AvailabilityPrefix(garageID))

		_, ok := c.Get(ctx, shared.AvailabilityKey(garageID, "2026-03-02"))
		assert.False(t, ok)
		_, ok = c.Get(ctx, shared.AvailabilityKey(garageID, "2026-03-03"))
		assert.False(t, ok)
		_, ok = c.Get(ctx, shared.AvailabilityKey(otherID, "2026-03-02"))
		assert.True(t, ok)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		c := cache.NewMemoryCache(time.Minute)
		c.Set(ctx, "short", []byte("v"), time.Millisecond)

		time.Sleep(5 * time.Millisecond)

		_, ok := c.Get(ctx, "short")
		assert.False(t, ok)
	})
}
