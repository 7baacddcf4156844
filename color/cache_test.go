package color

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheHexForSpeedMemoizesLocally(t *testing.T) {
	c := NewCache()
	ctx := context.Background()

	first := c.HexForSpeed(ctx, 250)
	second := c.HexForSpeed(ctx, 250)
	assert.Equal(t, first, second)
	assert.Equal(t, SpeedToHex(250), first)
}

func TestCacheHexForSpeedRoundsToNearestInteger(t *testing.T) {
	c := NewCache()
	ctx := context.Background()

	assert.Equal(t, c.HexForSpeed(ctx, 100.2), c.HexForSpeed(ctx, 100.4))
}

func setupMiniRedisCache(t *testing.T) (*miniredis.Miniredis, *Cache) {
	t.Helper()
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache().WithRedis(client, "funscript-color-test", time.Hour)
	return mr, cache
}

func TestCacheHexForSpeedUsesRemoteTier(t *testing.T) {
	mr, cache := setupMiniRedisCache(t)
	ctx := context.Background()

	hex := cache.HexForSpeed(ctx, 42)
	assert.Equal(t, SpeedToHex(42), hex)

	// A fresh local cache sharing the same remote tier should hit Redis
	// instead of recomputing.
	other := NewCache().WithRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "funscript-color-test", time.Hour)
	assert.Equal(t, hex, other.HexForSpeed(ctx, 42))
}
