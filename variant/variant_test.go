package variant

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/stashtools/funscript/script"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestClassifyEmptyBaseErrors(t *testing.T) {
	_, err := Classify("", []string{"movie.funscript"})
	assert.ErrorIs(t, err, ErrEmptyBaseName)
}

func TestClassifyDefault(t *testing.T) {
	plan, err := Classify("movie", []string{"movie.funscript"})
	require.NoError(t, err)
	require.NotNil(t, plan.Default)
	assert.Equal(t, "movie.funscript", plan.Default.FileName)
	assert.Empty(t, plan.Variants)
	assert.Empty(t, plan.Axes)
}

func TestClassifyNamedVariant(t *testing.T) {
	plan, err := Classify("movie", []string{"movie.funscript", "movie (Intense).funscript"})
	require.NoError(t, err)
	require.Len(t, plan.Variants, 1)
	assert.Equal(t, " (Intense)", plan.Variants[0].Suffix)
}

func TestClassifyAxisFile(t *testing.T) {
	plan, err := Classify("movie", []string{"movie.funscript", "movie.pitch.funscript"})
	require.NoError(t, err)
	assert.Equal(t, "movie.pitch.funscript", plan.Axes[script.ChannelPitch])
}

func TestClassifyMaxFileExcluded(t *testing.T) {
	plan, err := Classify("movie", []string{"movie.funscript", "movie.max.funscript"})
	require.NoError(t, err)
	require.NotNil(t, plan.Default)
	assert.Equal(t, "movie.funscript", plan.Default.FileName)
	assert.Empty(t, plan.Variants)
	assert.Empty(t, plan.Axes)
}

func TestClassifyUnrecognizedDottedSuffixIgnored(t *testing.T) {
	plan, err := Classify("movie", []string{"movie.funscript", "movie.bogus.funscript"})
	require.NoError(t, err)
	assert.Empty(t, plan.Axes)
	assert.Empty(t, plan.Variants)
}

func TestClassifyIgnoresUnrelatedFiles(t *testing.T) {
	plan, err := Classify("movie", []string{"other.funscript", "movie.mp4", "movie.funscript"})
	require.NoError(t, err)
	require.NotNil(t, plan.Default)
	assert.Empty(t, plan.Variants)
}

func TestCacheLookupMissThenHit(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenCache(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	modTime := time.Now()
	_, ok := cache.Lookup("/videos", "movie", modTime)
	assert.False(t, ok)

	plan := Plan{Default: &Variant{FileName: "movie.funscript"}, Axes: map[script.Channel]string{}}
	require.NoError(t, cache.Store("/videos", "movie", modTime, plan))

	got, ok := cache.Lookup("/videos", "movie", modTime)
	require.True(t, ok)
	assert.Equal(t, "movie.funscript", got.Default.FileName)
}

func TestCacheLookupMissOnStaleModTime(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenCache(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	plan := Plan{Axes: map[script.Channel]string{}}
	require.NoError(t, cache.Store("/videos", "movie", time.Now(), plan))

	_, ok := cache.Lookup("/videos", "movie", time.Now().Add(time.Hour))
	assert.False(t, ok)
}

func TestClassifyCachedFallsBackOnMiss(t *testing.T) {
	plan, err := ClassifyCached(nil, "/videos", "movie", time.Now(), []string{"movie.funscript"})
	require.NoError(t, err)
	require.NotNil(t, plan.Default)
}

func TestWatchDebouncesBurstIntoOneReplan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movie.funscript"), []byte(`{"actions":[]}`), 0o644))

	plans := make(chan Plan, 8)
	errs := make(chan error, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := Watch(ctx, dir, "movie", func(p Plan, err error) {
		if err != nil {
			errs <- err
			return
		}
		plans <- p
	}, WatchOptions{DebounceInterval: 50 * time.Millisecond, MinReplanInterval: time.Millisecond})
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "movie.pitch.funscript"), []byte(`{"actions":[]}`), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case p := <-plans:
		assert.Equal(t, "movie.pitch.funscript", p.Axes[script.ChannelPitch])
	case err := <-errs:
		t.Fatalf("unexpected classify error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced replan")
	}
}
