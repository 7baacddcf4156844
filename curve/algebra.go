// Package curve implements the action algebra and curve
// manipulation kernels shared by the SVG renderer and the
// statistics computed over a script's actions.
package curve

import "github.com/stashtools/funscript/script"

// SpeedBetween returns the signed speed in units/s between two actions,
// positive when pos increases over time. Zero when the actions share the
// same timestamp.
func SpeedBetween(a, b script.Action) float64 {
	if a.At == b.At {
		return 0
	}
	return (b.Pos - a.Pos) / float64(b.At-a.At) * 1000
}

// AbsSpeedBetween is the magnitude of SpeedBetween.
func AbsSpeedBetween(a, b script.Action) float64 {
	s := SpeedBetween(a, b)
	if s < 0 {
		return -s
	}
	return s
}

// IsPeak classifies the action at index i: 1 for a peak (direction reverses
// upward), -1 for a valley, 0 when the incoming and outgoing speeds have
// the same sign (no reversal). The first and last actions are always
// peaks — a curve needs peaks at its corners. Callers should integer-snap
// `At` before classification to avoid floating-point sign flicker near
// zero speed.
func IsPeak(actions []script.Action, i int) int {
	hasPrev := i > 0
	hasNext := i < len(actions)-1

	if !hasPrev || !hasNext {
		return 1
	}

	speedTo := SpeedBetween(actions[i-1], actions[i])
	speedFrom := SpeedBetween(actions[i], actions[i+1])

	signTo := sign(speedTo)
	signFrom := sign(speedFrom)

	if signTo == signFrom {
		return 0
	}
	switch {
	case speedTo > speedFrom:
		return 1
	case speedTo < speedFrom:
		return -1
	default:
		return 0
	}
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// BinaryFindLeftBorder returns the rightmost index i with actions[i].At <=
// at, clamped to the array bounds.
func BinaryFindLeftBorder(actions []script.Action, at int64) int {
	if len(actions) <= 1 {
		return 0
	}
	if at < actions[0].At {
		return 0
	}
	if at > actions[len(actions)-1].At {
		return len(actions) - 1
	}

	left, right := 0, len(actions)-1
	for left < right {
		mid := (left + right) / 2
		if actions[mid].At < at {
			left = mid + 1
		} else {
			right = mid
		}
	}
	if left > 0 && actions[left].At > at {
		return left - 1
	}
	return left
}

// ClerpAt interpolates the position at time at. Returns 50 for an empty
// curve, and clamps to the nearest end outside
// the curve's extent.
func ClerpAt(actions []script.Action, at int64) float64 {
	switch len(actions) {
	case 0:
		return 50
	case 1:
		return actions[0].Pos
	}
	if at <= actions[0].At {
		return actions[0].Pos
	}
	if at >= actions[len(actions)-1].At {
		return actions[len(actions)-1].Pos
	}

	leftIdx := BinaryFindLeftBorder(actions, at)
	left := actions[leftIdx]
	if at == left.At {
		return left.Pos
	}
	if leftIdx+1 >= len(actions) {
		return left.Pos
	}
	right := actions[leftIdx+1]
	return clampLerp(at, left.At, right.At, left.Pos, right.Pos)
}

func clampLerp(at, lo, hi int64, loPos, hiPos float64) float64 {
	t := float64(at-lo) / float64(hi-lo)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return loPos + (hiPos-loPos)*t
}

// Line is a segment between two consecutive actions. Speed carries sign;
// AbsSpeed its magnitude; Dat the elapsed time.
type Line struct {
	A, B      script.Action
	Speed     float64
	AbsSpeed  float64
	SpeedSign int
	Dat       int64
}

// ActionsToLines decomposes actions into consecutive line segments, skipping
// any with zero or negative duration.
func ActionsToLines(actions []script.Action) []Line {
	lines := make([]Line, 0, len(actions))
	for i := 1; i < len(actions); i++ {
		a, b := actions[i-1], actions[i]
		if b.At <= a.At {
			continue
		}
		speed := SpeedBetween(a, b)
		lines = append(lines, Line{
			A: a, B: b,
			Speed:     speed,
			AbsSpeed:  absFloat(speed),
			SpeedSign: sign(speed),
			Dat:       b.At - a.At,
		})
	}
	return lines
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// ToZigzag returns the sub-sequence of peak actions only — the curve's
// "spine" (glossary: Zigzag).
func ToZigzag(actions []script.Action) []script.Action {
	out := make([]script.Action, 0, len(actions))
	for i, a := range actions {
		if IsPeak(actions, i) != 0 {
			out = append(out, a)
		}
	}
	return out
}
