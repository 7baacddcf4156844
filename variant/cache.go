package variant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/stashtools/funscript/internal/log"
)

// Cache is a disk-backed memo of Plan results, keyed by directory, base
// name, and the directory's mtime at classification time — a cheap and
// sufficient invalidation signal for a folder a human edits occasionally.
type Cache struct {
	db *badger.DB
}

// OpenCache opens (creating if needed) a badger database at path.
func OpenCache(path string) (*Cache, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("variant: open cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error { return c.db.Close() }

type cachedPlan struct {
	Plan    Plan
	ModTime time.Time
}

func planKey(dir, base string) []byte {
	return []byte("plan:" + dir + "\x00" + base)
}

// Lookup returns a cached Plan if present and its stored modTime matches
// dirModTime exactly; otherwise ok is false.
func (c *Cache) Lookup(dir, base string, dirModTime time.Time) (Plan, bool) {
	var entry cachedPlan
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(planKey(dir, base))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return Plan{}, false
	}
	if !entry.ModTime.Equal(dirModTime) {
		return Plan{}, false
	}
	return entry.Plan, true
}

// Store persists plan under (dir, base), tagged with dirModTime.
func (c *Cache) Store(dir, base string, dirModTime time.Time, plan Plan) error {
	buf, err := json.Marshal(cachedPlan{Plan: plan, ModTime: dirModTime})
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(planKey(dir, base), buf)
	})
}

// ClassifyCached is Classify with a Cache fast path: a hit for the given
// (dir, base, dirModTime) skips reclassification entirely.
func ClassifyCached(cache *Cache, dir, base string, dirModTime time.Time, fileNames []string) (Plan, error) {
	if cache != nil {
		if plan, ok := cache.Lookup(dir, base, dirModTime); ok {
			return plan, nil
		}
	}

	plan, err := Classify(base, fileNames)
	if err != nil {
		return Plan{}, err
	}

	if cache != nil {
		if err := cache.Store(dir, base, dirModTime, plan); err != nil {
			log.From(context.Background()).Debug().Err(err).Str("dir", dir).Msg("variant: cache store failed")
		}
	}
	return plan, nil
}
