package svgrender

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/stashtools/funscript/codec"
	"github.com/stashtools/funscript/color"
	"github.com/stashtools/funscript/curve"
	"github.com/stashtools/funscript/metrics"
	"github.com/stashtools/funscript/script"
)

// RenderDocument renders one or more scripts (each with its own channels)
// as a single stacked SVG heatmap document. Scripts are laid out top to
// bottom in the order given; only the first script's own row shows a
// title (channel rows never do).
func RenderDocument(scripts []*script.Script, opts RenderOptions) (out string, err error) {
	start := time.Now()
	defer func() { metrics.Observe("render", start, err) }()

	if len(scripts) == 0 {
		return "", fmt.Errorf("svgrender: no scripts to render")
	}

	hasChapters := opts.ShowChapters && len(scripts[0].Metadata.Chapters) > 0
	chaptersAtTop := opts.TitleHeight > 0
	chapterOffset := 0.0
	if hasChapters {
		chapterOffset = opts.ChapterHeight
	}

	y := 0.0
	if chaptersAtTop {
		y += chapterOffset
	}

	var pieces []string
	var chapterDurationMs int64

	for si, original := range scripts {
		s := original
		if opts.Normalize {
			s = original.Clone()
			codec.Normalize(s, codec.NormalizeOptions{})
		}

		durationMs := opts.DurationMs
		if durationMs <= 0 {
			durationMs = int64(math.Round(s.ActualDuration() * 1000))
		}
		rowOpts := opts
		rowOpts.DurationMs = durationMs
		if si == 0 {
			chapterDurationMs = durationMs
		}

		title := rowTitle(s)
		rowSVG, extraHeight := renderRow(s, rowOpts, title, false, si > 0)
		pieces = append(pieces, fmt.Sprintf(`<g transform="translate(0, %s)">%s</g>`, fmtCoord(roundTo2(y)), rowSVG))
		y += rowOpts.Height + extraHeight

		if rowOpts.TitleHeight > 0 {
			for _, ch := range s.SortedChannels() {
				chRowSVG, chExtra := renderRow(ch, rowOpts, "", true, true)
				pieces = append(pieces, fmt.Sprintf(`<g transform="translate(0, %s)">%s</g>`, fmtCoord(roundTo2(y)), chRowSVG))
				y += rowOpts.Height + chExtra
			}
		}
		y += spacingBetweenFunscripts
	}
	y -= spacingBetweenFunscripts

	chapterSVG := ""
	if hasChapters {
		chapterY := y
		if chaptersAtTop {
			chapterY = 0
		}
		graphWidth := opts.Width - opts.IconWidth
		xOffset := 0.0
		if opts.IconWidth > 0 {
			graphWidth -= opts.IconSpacing
			xOffset = opts.IconWidth + opts.IconSpacing
		}
		chapterSVG = renderChapterBar(scripts[0].Metadata.Chapters, chapterDurationMs, xOffset, chapterY, graphWidth, opts.ChapterHeight, opts.Font, opts.Halo)
		if !chaptersAtTop {
			y += chapterOffset
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg class="funsvg" width="%s" height="%s" xmlns="http://www.w3.org/2000/svg" font-size="%spx" font-family="%s">`,
		fmtCoord(roundTo2(opts.Width)), fmtCoord(roundTo2(y)), fmtCoord(roundTo2(opts.TitleHeight*0.8)), opts.Font)
	b.WriteString(chapterSVG)
	for _, p := range pieces {
		b.WriteString(p)
	}
	b.WriteString(`</svg>`)
	return b.String(), nil
}

func rowTitle(s *script.Script) string {
	if s.File != nil {
		return s.File.Path()
	}
	return ""
}

// renderRow renders one axis row's <g> block (background, lines, title,
// icon, stats) and reports any extra height a wrapped title added.
func renderRow(s *script.Script, opts RenderOptions, title string, isSecondaryAxis bool, suppressTitle bool) (string, float64) {
	if suppressTitle {
		title = ""
	}

	iconSpacing := 0.0
	if opts.IconWidth > 0 {
		iconSpacing = opts.IconSpacing
	}
	titleStart := opts.IconWidth + iconSpacing
	graphWidth := opts.Width - opts.IconWidth - iconSpacing

	actions, badCount := sanitizeActions(s.Actions)
	bad := badCount > 0
	if bad {
		title += "::bad"
		metrics.IncRenderBadActions(badCount)
	}

	stats := computeStats(actions, float64(opts.DurationMs)/1000, !isSecondaryAxis)
	statCount := len(stats)

	titleFontPx := roundTo2(opts.TitleHeight * 0.8)
	statLabelFontPx := roundTo2(opts.TitleHeight * 0.4)
	statValueFontPx := roundTo2(opts.TitleHeight * 0.72)

	statTextX := func(i int) float64 {
		return roundTo2(opts.Width - (7+float64(i)*46)*(opts.TitleHeight/20))
	}
	iconTextX := roundTo2(opts.IconWidth / 2)
	titleTextX := roundTo2(titleStart + opts.TitleHeight*0.2)

	useSeparateLine := false
	textWidthBudget := func() float64 {
		i := statCount
		if useSeparateLine {
			i = 0
		}
		return statTextX(i) - titleTextX
	}

	if title != "" && opts.AllowTitleWrap && textWidthPx(title, titleFontPx) > textWidthBudget() {
		useSeparateLine = true
	}
	if title != "" && opts.TitleEllipsis && textWidthPx(title, titleFontPx) > textWidthBudget() {
		title = truncateWithEllipsis(title, textWidthBudget(), titleFontPx)
	}

	titleExtra := 0.0
	if useSeparateLine {
		titleExtra = opts.TitleHeight
	}
	titleBottom := roundTo2(opts.TitleHeight + titleExtra)
	graphTop := roundTo2(titleBottom + opts.TitleSpacing)
	svgBottom := roundTo2(opts.Height + titleExtra)
	iconTextY := roundTo2(svgBottom/2 + 4 + titleExtra/2)
	titleTextY := roundTo2(opts.TitleHeight * 0.75)
	statLabelTextY := roundTo2(opts.TitleHeight*0.35 + titleExtra)
	statValueTextY := roundTo2(opts.TitleHeight*0.92 + titleExtra)
	graphHeight := opts.Height - opts.TitleHeight - opts.TitleSpacing

	iconText := rowIcon(s)
	if bad {
		iconText = "!!!"
	}

	avgSpeed := curve.AverageSpeed(actions)

	bgGradientID := fmt.Sprintf("funsvg-grad-%s-%d-%d", s.Channel, len(actions), firstAt(actions))
	iconColor := color.Default.HexForSpeed(context.Background(), avgSpeed)
	iconOpacity := roundTo2(opts.TitleOpacity * math.Max(0.5, math.Min(1, avgSpeed/100)))

	var b strings.Builder
	b.WriteString(`<g class="funsvg-bgs">`)
	fmt.Fprintf(&b, `<defs>%s</defs>`, renderGradient(actions, opts.DurationMs, bgGradientID))
	if opts.IconWidth > 0 {
		fmt.Fprintf(&b, `<rect class="funsvg-bg-axis-drop" x="0" y="0" width="%s" height="%s" fill="#ccc" opacity="%s"></rect>`,
			fmtCoord(opts.IconWidth), fmtCoord(svgBottom), fmtCoord(roundTo2(opts.GraphOpacity*1.5)))
	}
	fmt.Fprintf(&b, `<rect class="funsvg-bg-title-drop" x="%s" width="%s" height="%s" fill="#ccc" opacity="%s"></rect>`,
		fmtCoord(titleStart), fmtCoord(graphWidth), fmtCoord(titleBottom), fmtCoord(roundTo2(opts.GraphOpacity*1.5)))
	if opts.IconWidth > 0 {
		fmt.Fprintf(&b, `<rect class="funsvg-bg-axis" x="0" y="0" width="%s" height="%s" fill="%s" opacity="%s"></rect>`,
			fmtCoord(opts.IconWidth), fmtCoord(svgBottom), iconColor, fmtCoord(iconOpacity))
	}
	titleFill := fmt.Sprintf("url(#%s)", bgGradientID)
	titleOp := opts.TitleOpacity
	if opts.SolidTitleBackground {
		titleFill = iconColor
		titleOp = iconOpacity
	}
	fmt.Fprintf(&b, `<rect class="funsvg-bg-title" x="%s" width="%s" height="%s" fill="%s" opacity="%s"></rect>`,
		fmtCoord(titleStart), fmtCoord(graphWidth), fmtCoord(titleBottom), titleFill, fmtCoord(roundTo2(titleOp)))
	fmt.Fprintf(&b, `<rect class="funsvg-bg-graph" x="%s" width="%s" y="%s" height="%s" fill="url(#%s)" opacity="%s"></rect>`,
		fmtCoord(titleStart), fmtCoord(graphWidth), fmtCoord(graphTop), fmtCoord(graphHeight), bgGradientID, fmtCoord(roundTo2(opts.GraphOpacity)))
	b.WriteString(`</g>`)

	fmt.Fprintf(&b, `<g class="funsvg-lines" transform="translate(%s, %s)" stroke-width="%s" fill="none" stroke-linecap="round">`,
		fmtCoord(titleStart), fmtCoord(graphTop), fmtCoord(opts.LineWidth))
	for _, line := range renderLines(actions, opts, graphWidth, graphHeight) {
		b.WriteString(line)
	}
	b.WriteString(`</g>`)

	b.WriteString(`<g class="funsvg-titles">`)
	if opts.Halo {
		b.WriteString(`<g class="funsvg-titles-halo" stroke="white" opacity="0.5" paint-order="stroke fill markers" stroke-width="3" stroke-dasharray="none" stroke-linejoin="round" fill="transparent">`)
		fmt.Fprintf(&b, `<text class="funsvg-title-halo" x="%s" y="%s">%s</text>`, fmtCoord(titleTextX), fmtCoord(titleTextY), escapeSVGText(title))
		for i := len(stats) - 1; i >= 0; i-- {
			pos := len(stats) - 1 - i
			st := stats[i]
			fmt.Fprintf(&b, `<text class="funsvg-stat-label-halo" x="%s" y="%s" font-weight="bold" font-size="%spx" text-anchor="end">%s</text>`,
				fmtCoord(statTextX(pos)), fmtCoord(statLabelTextY), fmtCoord(statLabelFontPx), st.Label)
			fmt.Fprintf(&b, `<text class="funsvg-stat-value-halo" x="%s" y="%s" font-weight="bold" font-size="%spx" text-anchor="end">%s</text>`,
				fmtCoord(statTextX(pos)), fmtCoord(statValueTextY), fmtCoord(statValueFontPx), st.Value)
		}
		b.WriteString(`</g>`)
	}
	if opts.IconWidth > 0 {
		fmt.Fprintf(&b, `<text class="funsvg-axis" x="%s" y="%s" font-size="%spx" font-family="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`,
			fmtCoord(iconTextX), fmtCoord(iconTextY), fmtCoord(roundTo2(math.Max(12, opts.IconWidth*0.75))), opts.IconFont, escapeSVGText(iconText))
	}
	fmt.Fprintf(&b, `<text class="funsvg-title" x="%s" y="%s">%s</text>`, fmtCoord(titleTextX), fmtCoord(titleTextY), escapeSVGText(title))
	for i := len(stats) - 1; i >= 0; i-- {
		pos := len(stats) - 1 - i
		st := stats[i]
		fmt.Fprintf(&b, `<text class="funsvg-stat-label" x="%s" y="%s" font-weight="bold" font-size="%spx" text-anchor="end">%s</text>`,
			fmtCoord(statTextX(pos)), fmtCoord(statLabelTextY), fmtCoord(statLabelFontPx), st.Label)
		fmt.Fprintf(&b, `<text class="funsvg-stat-value" x="%s" y="%s" font-weight="bold" font-size="%spx" text-anchor="end">%s</text>`,
			fmtCoord(statTextX(pos)), fmtCoord(statValueTextY), fmtCoord(statValueFontPx), st.Value)
	}
	b.WriteString(`</g>`)

	return b.String(), titleExtra
}

func rowIcon(s *script.Script) string {
	if s.Channel == "" {
		return "L0"
	}
	if axis, ok := script.AxisForChannel(s.Channel); ok {
		return string(axis)
	}
	return string(s.Channel)
}

func firstAt(actions []script.Action) int64 {
	if len(actions) == 0 {
		return 0
	}
	return actions[0].At
}

// sanitizeActions clones actions, flagging non-finite positions per the
// library's recovery rule: a bad point is pinned to pos=120 rather than
// aborting the render.
func sanitizeActions(actions []script.Action) ([]script.Action, int) {
	out := append([]script.Action(nil), actions...)
	bad := 0
	for i, a := range out {
		if math.IsNaN(a.Pos) || math.IsInf(a.Pos, 0) {
			out[i].Pos = 120
			bad++
		}
	}
	return out, bad
}
