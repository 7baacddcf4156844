package svgrender

import (
	"context"
	"fmt"
	"sort"

	"github.com/stashtools/funscript/color"
	"github.com/stashtools/funscript/curve"
	"github.com/stashtools/funscript/script"
)

// renderLines builds one speed-colored <path> per motion line, sorted
// ascending by absolute speed so the hottest segments paint last (and so
// overlapping strokes at a shared endpoint favor the more saturated one).
func renderLines(actions []script.Action, opts RenderOptions, width, height float64) []string {
	lines := curve.MergeLinesSpeed(curve.ActionsToLines(actions), opts.MergeLimit)

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].AbsSpeed < lines[j].AbsSpeed
	})

	durationMs := float64(opts.DurationMs)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		ax := round2(l.A.At, durationMs, opts.LineWidth, width)
		ay := round2Pos(l.A.Pos, opts.LineWidth, height)
		bx := round2(l.B.At, durationMs, opts.LineWidth, width)
		by := round2Pos(l.B.Pos, opts.LineWidth, height)
		hex := color.Default.HexForSpeed(context.Background(), l.AbsSpeed)
		out = append(out, fmt.Sprintf(`<path d="M %s %s L %s %s" stroke="%s"></path>`,
			fmtCoord(ax), fmtCoord(ay), fmtCoord(bx), fmtCoord(by), hex))
	}
	return out
}

func round2(at int64, durationMs, lineWidth, width float64) float64 {
	if durationMs <= 0 {
		return lineWidth
	}
	return roundTo2(float64(at)/durationMs*(width-2*lineWidth) + lineWidth)
}

func round2Pos(pos, lineWidth, height float64) float64 {
	return roundTo2((100-pos)*(height-2*lineWidth)/100 + lineWidth)
}
