// Package sqlitecache is an optional on-disk cache of rendered SVG
// heatmaps, keyed by a content hash of (script, options). An orchestrator
// that re-renders an unchanged scene gets a cache hit instead of paying
// the full render cost again.
package sqlitecache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure Go driver, no cgo
)

// Config tunes the underlying SQLite connection pool.
type Config struct {
	BusyTimeout  time.Duration
	MaxOpenConns int
}

// DefaultConfig is a single-writer-friendly pool: one connection keeps
// SQLite's single-writer constraint from ever causing SQLITE_BUSY under
// this cache's own concurrent use.
func DefaultConfig() Config {
	return Config{
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 1,
	}
}

// Cache is a key/value store of rendered SVG text. The zero value is not
// usable; construct with Open.
type Cache struct {
	db *sql.DB
}

// Open creates (if needed) and opens the cache database at path, applying
// the WAL + busy_timeout pragmas every connection in the pool needs.
func Open(path string, cfg Config) (*Cache, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)",
		path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlitecache: open: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlitecache: ping: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlitecache: migrate: %w", err)
	}

	return &Cache{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS renders (
	cache_key TEXT PRIMARY KEY,
	svg TEXT NOT NULL,
	created_at_ms INTEGER NOT NULL
);`

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached SVG for key, if present.
func (c *Cache) Get(ctx context.Context, key string) (svg string, ok bool, err error) {
	row := c.db.QueryRowContext(ctx, `SELECT svg FROM renders WHERE cache_key = ?`, key)
	if err := row.Scan(&svg); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("sqlitecache: get: %w", err)
	}
	return svg, true, nil
}

// Put stores svg under key, overwriting any existing entry.
func (c *Cache) Put(ctx context.Context, key, svg string, now time.Time) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO renders (cache_key, svg, created_at_ms) VALUES (?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET svg = excluded.svg, created_at_ms = excluded.created_at_ms`,
		key, svg, now.UnixMilli())
	if err != nil {
		return fmt.Errorf("sqlitecache: put: %w", err)
	}
	return nil
}

// Key derives a stable cache key from the serialized script bytes and the
// serialized render options bytes. Callers typically pass
// codec.Serialize(s, codec.SerializeOptions{Target: codec.Target20}) output
// and a deterministic encoding of svgrender.RenderOptions.
func Key(scriptBytes, optsBytes []byte) string {
	h := sha256.New()
	h.Write(scriptBytes)
	h.Write([]byte{0})
	h.Write(optsBytes)
	return hex.EncodeToString(h.Sum(nil))
}
