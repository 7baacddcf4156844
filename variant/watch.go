package variant

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/stashtools/funscript/internal/log"
)

// Watcher watches a single directory for funscript file changes and
// reports a freshly classified Plan, debounced so a burst of events (an
// editor's tmp+rename save, several axis files landing at once) collapses
// into one replan.
type Watcher struct {
	dir     string
	base    string
	cache   *Cache
	watcher *fsnotify.Watcher
	limiter *rate.Limiter

	mu       sync.Mutex
	listener func(Plan, error)
}

// WatchOptions configures a Watcher.
type WatchOptions struct {
	// Cache, if non-nil, backs replans the same way ClassifyCached does.
	Cache *Cache
	// DebounceInterval is the quiet period after the last relevant event
	// before a replan runs. Defaults to 500ms.
	DebounceInterval time.Duration
	// MinReplanInterval caps how often replans may fire even under
	// sustained churn. Defaults to one per second.
	MinReplanInterval time.Duration
}

// Watch starts watching dir for changes to "<base>*.funscript" files and
// calls onPlan with the recomputed Plan after each settled change. The
// returned Watcher must be stopped with Close. onPlan must not block.
func Watch(ctx context.Context, dir, base string, onPlan func(Plan, error), opts WatchOptions) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	debounce := opts.DebounceInterval
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	minInterval := opts.MinReplanInterval
	if minInterval <= 0 {
		minInterval = time.Second
	}

	w := &Watcher{
		dir:      dir,
		base:     base,
		cache:    opts.Cache,
		watcher:  fsw,
		limiter:  rate.NewLimiter(rate.Every(minInterval), 1),
		listener: onPlan,
	}

	go w.loop(ctx, debounce)
	return w, nil
}

func (w *Watcher) loop(ctx context.Context, debounce time.Duration) {
	logger := log.From(ctx)
	var timer *time.Timer

	replan := func() {
		if err := w.limiter.Wait(ctx); err != nil {
			return
		}
		plan, err := w.classify()
		w.mu.Lock()
		listener := w.listener
		w.mu.Unlock()
		if listener != nil {
			listener(plan, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			_ = w.watcher.Close()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, replan)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error().Err(err).Str("dir", w.dir).Msg("variant: watcher error")
		}
	}
}

func (w *Watcher) relevant(name string) bool {
	base := filepath.Base(name)
	if filepath.Ext(base) != ".funscript" {
		return false
	}
	return len(base) >= len(w.base) && base[:len(w.base)] == w.base
}

func (w *Watcher) classify() (Plan, error) {
	entries, err := listFunscriptNames(w.dir)
	if err != nil {
		return Plan{}, err
	}
	dirModTime, err := dirModTime(w.dir)
	if err != nil {
		return Plan{}, err
	}
	return ClassifyDeduped(w.cache, w.dir, w.base, dirModTime, entries)
}

// Close stops the underlying filesystem watch. Safe to call more than once.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
