package presets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashtools/funscript/svgrender"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadRenderOptionsAppliesOnlySetFields(t *testing.T) {
	path := writeTempFile(t, "render.yaml", "width: 800\nhalo: false\n")

	opts, err := LoadRenderOptions(path)
	require.NoError(t, err)

	defaults := svgrender.Default()
	assert.Equal(t, 800.0, opts.Width)
	assert.False(t, opts.Halo)
	assert.Equal(t, defaults.Height, opts.Height)
	assert.Equal(t, defaults.Font, opts.Font)
}

func TestLoadRenderOptionsMissingFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := LoadRenderOptions(path)
	assert.Error(t, err)
}

func TestLoadRenderOptionsRejectsUnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "render.json", "{}")

	_, err := LoadRenderOptions(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadRenderOptionsRejectsUnknownFields(t *testing.T) {
	path := writeTempFile(t, "render.yaml", "bogusField: 1\n")

	_, err := LoadRenderOptions(path)
	assert.Error(t, err)
}

func TestLoadRenderOptionsZeroOverridesMergeLimit(t *testing.T) {
	path := writeTempFile(t, "render.yaml", "mergeLimit: 0\n")

	opts, err := LoadRenderOptions(path)
	require.NoError(t, err)
	assert.EqualValues(t, 0, opts.MergeLimit)
}

func TestLoadMergeOptionsAppliesOverride(t *testing.T) {
	path := writeTempFile(t, "merge.yaml", "combineSingleSecondaryChannel: true\n")

	opts, err := LoadMergeOptions(path)
	require.NoError(t, err)
	assert.True(t, opts.CombineSingleSecondaryChannel)
	assert.False(t, opts.AllowMissingActions)
}
