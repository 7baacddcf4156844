package svgrender

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashtools/funscript/internal/sqlitecache"
	"github.com/stashtools/funscript/script"
)

func sampleActions() []script.Action {
	return []script.Action{
		{At: 0, Pos: 0},
		{At: 500, Pos: 100},
		{At: 1000, Pos: 0},
		{At: 3000, Pos: 100},
		{At: 3500, Pos: 0},
	}
}

func TestComputeStatsOmitsDurationForSecondary(t *testing.T) {
	primary := computeStats(sampleActions(), 3.5, true)
	secondary := computeStats(sampleActions(), 3.5, false)

	labels := func(stats []stat) []string {
		out := make([]string, len(stats))
		for i, s := range stats {
			out[i] = s.Label
		}
		return out
	}
	assert.Contains(t, labels(primary), "Duration")
	assert.NotContains(t, labels(secondary), "Duration")
}

func TestFormatStatDurationShortAndLong(t *testing.T) {
	assert.Equal(t, "1:05", formatStatDuration(65))
	assert.Equal(t, "1:00:05", formatStatDuration(3605))
}

func TestTruncateWithEllipsisShortensOversizedTitle(t *testing.T) {
	long := strings.Repeat("x", 200)
	out := truncateWithEllipsis(long, 50, 16)
	assert.Less(t, len(out), len(long))
	assert.True(t, strings.HasSuffix(out, "…"))
}

func TestTruncateWithEllipsisLeavesShortTitleAlone(t *testing.T) {
	out := truncateWithEllipsis("short", 1000, 16)
	assert.Equal(t, "short", out)
}

func TestBuildGradientStopsNonEmptyForMotion(t *testing.T) {
	stops := buildGradientStops(sampleActions(), 3500)
	require.NotEmpty(t, stops)
	assert.LessOrEqual(t, stops[0].At, stops[len(stops)-1].At)
}

func TestRenderChapterBarOmitsNarrowLabels(t *testing.T) {
	chapters := []script.Chapter{
		{Name: "Intro", StartTime: "00:00:00.000", EndTime: "00:00:01.000"},
		{Name: "Main", StartTime: "00:00:01.000", EndTime: "00:00:30.000"},
	}
	svg := renderChapterBar(chapters, 30000, 0, 0, 600, 10, "Arial", true)
	assert.Contains(t, svg, "Main")
	assert.NotContains(t, svg, ">Intro<")
}

func TestRenderDocumentProducesValidSVGShell(t *testing.T) {
	s := script.New()
	s.Actions = sampleActions()
	s.Metadata.Duration = 3.5

	out, err := RenderDocument([]*script.Script{s}, Default())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, "</svg>")
	assert.Contains(t, out, "funsvg-lines")
}

func TestRenderDocumentFlagsNonFiniteActions(t *testing.T) {
	s := script.New()
	s.Actions = []script.Action{{At: 0, Pos: 0}, {At: 1000, Pos: math.NaN()}}
	s.Metadata.Duration = 1

	out, err := RenderDocument([]*script.Script{s}, Default())
	require.NoError(t, err)
	assert.Contains(t, out, "::bad")
	assert.Contains(t, out, "!!!")
}

func TestRenderDocumentRendersSecondaryChannelsWithoutDuration(t *testing.T) {
	root := script.New()
	root.Actions = sampleActions()
	root.Metadata.Duration = 3.5

	pitch := script.New()
	pitch.Channel = script.ChannelPitch
	pitch.Actions = sampleActions()
	pitch.Parent = root
	root.Channels[script.ChannelPitch] = pitch

	out, err := RenderDocument([]*script.Script{root}, Default())
	require.NoError(t, err)
	assert.Contains(t, out, "R2")
	// Only the primary row carries a Duration stat (drawn twice: halo + text).
	assert.Equal(t, 2, strings.Count(out, ">Duration<"))
}

func TestRenderDocumentErrorsOnEmptyInput(t *testing.T) {
	_, err := RenderDocument(nil, Default())
	assert.Error(t, err)
}

func TestRenderDocumentCachedHitsOnSecondCall(t *testing.T) {
	cache, err := sqlitecache.Open(filepath.Join(t.TempDir(), "cache.sqlite"), sqlitecache.DefaultConfig())
	require.NoError(t, err)
	defer cache.Close()

	s := script.New()
	s.Actions = sampleActions()
	s.Metadata.Duration = 3.5

	ctx := context.Background()
	first, err := RenderDocumentCached(ctx, cache, []*script.Script{s}, Default())
	require.NoError(t, err)

	second, err := RenderDocumentCached(ctx, cache, []*script.Script{s}, Default())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
