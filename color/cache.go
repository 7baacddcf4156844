package color

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stashtools/funscript/internal/log"
	"github.com/stashtools/funscript/metrics"
)

// Cache memoizes speed→hex lookups. Speeds are rounded to the nearest
// integer before lookup, since perceptible color differences only occur at
// integer speed boundaries. The zero value is not usable; use NewCache.
type Cache struct {
	mu    sync.RWMutex
	local map[int64]string

	// remote is an optional second tier shared across worker processes. A
	// cache hit there saves recomputing the OKLCH transform, but
	// correctness never depends on it.
	remote      *redis.Client
	remotePfx   string
	remoteTTL   time.Duration
	remoteMisss bool // true once a remote error is seen, to stop retrying this process's lifetime
}

// NewCache returns an in-memory-only cache.
func NewCache() *Cache {
	return &Cache{local: make(map[int64]string)}
}

// WithRedis attaches a shared second tier. keyPrefix namespaces keys (e.g.
// by library version) and ttl bounds how long a stale color mapping can
// linger — the mapping is a pure function of speed so a long TTL is safe,
// but a bound avoids unbounded growth if the speed domain is malformed.
func (c *Cache) WithRedis(client *redis.Client, keyPrefix string, ttl time.Duration) *Cache {
	c.remote = client
	c.remotePfx = keyPrefix
	c.remoteTTL = ttl
	return c
}

// HexForSpeed returns the hex color for an absolute speed, computing and
// caching it on first use.
func (c *Cache) HexForSpeed(ctx context.Context, speed float64) string {
	key := int64(math.Round(speed))

	c.mu.RLock()
	if hex, ok := c.local[key]; ok {
		c.mu.RUnlock()
		metrics.IncColorCacheLookup("local", true)
		return hex
	}
	c.mu.RUnlock()
	metrics.IncColorCacheLookup("local", false)

	if hex, ok := c.getRemote(ctx, key); ok {
		metrics.IncColorCacheLookup("remote", true)
		c.store(key, hex)
		return hex
	}
	if c.remote != nil {
		metrics.IncColorCacheLookup("remote", false)
	}

	hex := SpeedToHex(float64(key))
	c.store(key, hex)
	c.setRemote(ctx, key, hex)
	return hex
}

func (c *Cache) store(key int64, hex string) {
	c.mu.Lock()
	c.local[key] = hex
	c.mu.Unlock()
}

func (c *Cache) getRemote(ctx context.Context, key int64) (string, bool) {
	if c.remote == nil || c.remoteMisss {
		return "", false
	}
	val, err := c.remote.Get(ctx, c.remoteKey(key)).Result()
	if err != nil {
		if err != redis.Nil {
			log.From(ctx).Debug().Err(err).Msg("color: remote cache get failed")
			c.remoteMisss = true
		}
		return "", false
	}
	return val, true
}

func (c *Cache) setRemote(ctx context.Context, key int64, hex string) {
	if c.remote == nil {
		return
	}
	if err := c.remote.Set(ctx, c.remoteKey(key), hex, c.remoteTTL).Err(); err != nil {
		log.From(ctx).Debug().Err(err).Msg("color: remote cache set failed")
	}
}

func (c *Cache) remoteKey(key int64) string {
	return c.remotePfx + ":" + strconv.FormatInt(key, 10)
}

// Default is the process-wide cache the renderer uses when
// no caller-supplied Cache is given. It has no remote tier by default.
var Default = NewCache()
