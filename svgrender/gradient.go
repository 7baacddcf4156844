package svgrender

import (
	"context"
	"fmt"
	"strings"

	"github.com/stashtools/funscript/color"
	"github.com/stashtools/funscript/curve"
	"github.com/stashtools/funscript/script"
	"github.com/stashtools/funscript/timeutil"
)

type gradientStop struct {
	At    int64
	Speed float64
}

// zigzagLine is a speed-colored segment of the zigzag spine, after long
// runs are subdivided and near-zero gaps merged — the intermediate form
// buildGradientStops works over before collapsing to stops.
type zigzagLine struct {
	A, B  script.Action
	Speed float64
}

// buildGradientStops computes the background gradient's <stop> list for
// actions, scaled against durationMs.
func buildGradientStops(actions []script.Action, durationMs int64) []gradientStop {
	lines := zigzagLines(actions)
	lines = subdivideLongRuns(lines)
	lines = mergeShortRuns(lines)

	if len(lines) == 0 {
		return nil
	}

	kept := make([]zigzagLine, 0, len(lines))
	for i, e := range lines {
		if i == 0 || i == len(lines)-1 {
			kept = append(kept, e)
			continue
		}
		p, n := lines[i-1], lines[i+1]
		if p.Speed == e.Speed && e.Speed == n.Speed {
			continue
		}
		kept = append(kept, e)
	}

	stops := make([]gradientStop, 0, len(kept)+4)
	for _, e := range kept {
		stops = append(stops, gradientStop{At: (e.A.At + e.B.At) / 2, Speed: e.Speed})
	}

	first, last := lines[0], lines[len(lines)-1]
	stops = append([]gradientStop{{At: first.A.At, Speed: first.Speed}}, stops...)
	if first.A.At > 100 {
		stops = append([]gradientStop{{At: first.A.At - 100, Speed: 0}}, stops...)
	}
	stops = append(stops, gradientStop{At: last.B.At, Speed: last.Speed})
	if last.B.At < durationMs-100 {
		stops = append(stops, gradientStop{At: last.B.At + 100, Speed: 0})
	}

	return dedupeConstantRuns(stops)
}

func zigzagLines(actions []script.Action) []zigzagLine {
	lines := curve.ActionsToLines(curve.ToZigzag(actions))
	out := make([]zigzagLine, len(lines))
	for i, l := range lines {
		out[i] = zigzagLine{A: l.A, B: l.B, Speed: l.AbsSpeed}
	}
	return out
}

// subdivideLongRuns splits any segment longer than 2s into ~1s slices, so
// the gradient doesn't linearly interpolate color across a long silence.
func subdivideLongRuns(lines []zigzagLine) []zigzagLine {
	out := make([]zigzagLine, 0, len(lines))
	for _, e := range lines {
		length := e.B.At - e.A.At
		if length <= 0 {
			continue
		}
		if length < 2000 {
			out = append(out, e)
			continue
		}
		n := int((length - 500) / 1000)
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			at0 := timeutil.Lerp(float64(e.A.At), float64(e.B.At), float64(i)/float64(n))
			pos0 := timeutil.Lerp(e.A.Pos, e.B.Pos, float64(i)/float64(n))
			at1 := timeutil.Lerp(float64(e.A.At), float64(e.B.At), float64(i+1)/float64(n))
			pos1 := timeutil.Lerp(e.A.Pos, e.B.Pos, float64(i+1)/float64(n))
			out = append(out, zigzagLine{
				A:     script.Action{At: int64(at0), Pos: pos0},
				B:     script.Action{At: int64(at1), Pos: pos1},
				Speed: e.Speed,
			})
		}
	}
	return out
}

// mergeShortRuns merges each pair of adjacent segments whose combined span
// is under 1s, averaging speed by elapsed time. A lone segment shorter than
// 1s whose neighbour would push the pair past 1s stays unmerged.
func mergeShortRuns(lines []zigzagLine) []zigzagLine {
	out := append([]zigzagLine(nil), lines...)
	i := 0
	for i < len(out)-1 {
		a, b := out[i], out[i+1]
		if b.B.At-a.A.At < 1000 {
			aDat := float64(a.B.At - a.A.At)
			bDat := float64(b.B.At - b.A.At)
			speed := (a.Speed*aDat + b.Speed*bDat) / (aDat + bDat)
			merged := zigzagLine{A: a.A, B: b.B, Speed: speed}
			out = append(out[:i], append([]zigzagLine{merged}, out[i+2:]...)...)
			if i > 0 {
				i--
			}
			continue
		}
		i++
	}
	return out
}

func dedupeConstantRuns(stops []gradientStop) []gradientStop {
	out := make([]gradientStop, 0, len(stops))
	for i, e := range stops {
		if i == 0 || i == len(stops)-1 {
			out = append(out, e)
			continue
		}
		p, n := stops[i-1], stops[i+1]
		if p.Speed == e.Speed && e.Speed == n.Speed {
			continue
		}
		out = append(out, e)
	}
	return out
}

// renderGradient emits a <linearGradient> definition with id gradientID for
// actions, scaled against durationMs.
func renderGradient(actions []script.Action, durationMs int64, gradientID string) string {
	stops := buildGradientStops(actions, durationMs)

	var b strings.Builder
	fmt.Fprintf(&b, "<linearGradient id=\"%s\">", gradientID)
	for _, s := range stops {
		offset := roundTo2(timeutil.Clamp(float64(s.At)/float64(durationMs), 0, 1))
		opacityAttr := ""
		if s.Speed < 100 {
			opacityAttr = fmt.Sprintf(" stop-opacity=\"%s\"", fmtCoord(roundTo2(s.Speed/100)))
		}
		hex := color.Default.HexForSpeed(context.Background(), s.Speed)
		fmt.Fprintf(&b, "<stop offset=\"%s\" stop-color=\"%s\"%s></stop>", fmtCoord(offset), hex, opacityAttr)
	}
	b.WriteString("</linearGradient>")
	return b.String()
}
