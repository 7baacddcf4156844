// Package svgrender renders a parsed funscript as a deterministic SVG
// heatmap: a speed-colored background gradient, speed-colored motion
// lines, a title band with stats, an axis icon column, and an optional
// chapter bar. Rendering is a pure function of (Script, RenderOptions) —
// no randomness, no wall-clock reads, no filesystem or network access.
package svgrender

// RenderOptions configures one heatmap render. Zero value is not ready to
// use; start from Default() and override individual fields.
type RenderOptions struct {
	Width, Height float64

	// TitleHeight 0 hides the title band entirely. TitleSpacing is the
	// gap between the title band and the graph area.
	TitleHeight, TitleSpacing float64

	// IconWidth 0 hides the axis-icon column. IconSpacing is the gap
	// between the icon column and the title/graph area.
	IconWidth, IconSpacing float64

	ChapterHeight float64
	ShowChapters  bool

	LineWidth float64

	// MergeLimit bounds (in ms) how long a run of same-signed speed
	// segments may span before curve.MergeLinesSpeed stops merging it.
	// 0 disables merging.
	MergeLimit int64

	GraphOpacity, TitleOpacity float64

	Halo                 bool
	SolidTitleBackground bool

	// Normalize applies codec normalization to a clone of the script
	// before rendering, so callers never need to pre-normalize.
	Normalize bool

	TitleEllipsis bool
	// AllowTitleWrap permits a title that doesn't fit its budget to wrap
	// onto a second row instead of being ellipsized. false forces
	// ellipsis (or overflow, if TitleEllipsis is also false).
	AllowTitleWrap bool

	Font, IconFont string

	// DurationMs overrides the x-axis scale. 0 means "use the script's
	// own actual duration".
	DurationMs int64
}

// Default mirrors the reference renderer's stock configuration.
func Default() RenderOptions {
	return RenderOptions{
		Width:          690,
		Height:         52,
		TitleHeight:    20,
		TitleSpacing:   0,
		IconWidth:      46,
		IconSpacing:    0,
		ChapterHeight:  10,
		ShowChapters:   false,
		LineWidth:      0.5,
		MergeLimit:     500,
		GraphOpacity:   0.2,
		TitleOpacity:   0.7,
		Halo:           true,
		Normalize:      true,
		TitleEllipsis:  true,
		AllowTitleWrap: true,
		Font:           "Arial, sans-serif",
		IconFont:       "Consolas, monospace",
	}
}

// spacingBetweenFunscripts is the vertical gap the document layout leaves
// between one script block (primary + its channels) and the next.
const spacingBetweenFunscripts = 4

// ChapterPalette is the fixed 8-color round-robin used for chapter bar
// segments, indexed by chapter position modulo its length.
var ChapterPalette = []string{
	"#ff6b6b", "#4ecdc4", "#45b7d1", "#ffa07a",
	"#98d8c8", "#f7dc6f", "#bb8fce", "#85c1e2",
}
