package curve

import "github.com/stashtools/funscript/script"

// Handy device constraints: a hard speed ceiling and a minimum spacing
// between actions the firmware can reliably execute.
const (
	HandyMaxSpeed            = 550.0
	HandyMinInterval         = int64(60)
	HandyMaxStraightThreshold = 3.0
)

// HandySmooth reshapes a curve to respect the Handy device's speed ceiling
// and minimum action spacing, in the same seven passes as the reference
// pipeline: round positions, drop interior points too close to their
// segment's peaks or to each other, merge near-duplicate low-speed points,
// cap peak-to-peak speed, linearly simplify, then round again.
func HandySmooth(actions []script.Action) []script.Action {
	working := make([]script.Action, len(actions))
	for i, a := range actions {
		working[i] = script.Action{At: a.At, Pos: round(a.Pos)}
	}

	segments := SplitToSegments(working)
	filteredSegments := make([][]script.Action, len(segments))
	for i, seg := range segments {
		filteredSegments[i] = simplifyHandySegment(seg)
	}
	filtered := ConnectSegments(filteredSegments)

	filtered = mergeCloseLowSpeedPoints(filtered)
	filtered = LimitPeakSpeed(filtered, HandyMaxSpeed)
	filtered = SimplifyLinearCurve(filtered, HandyMaxStraightThreshold)

	for i := range filtered {
		filtered[i].At = int64(round(float64(filtered[i].At)))
		filtered[i].Pos = round(filtered[i].Pos)
	}
	return filtered
}

func round(v float64) float64 {
	if v < 0 {
		return -round(-v)
	}
	f := float64(int64(v))
	if v-f >= 0.5 {
		return f + 1
	}
	return f
}

func straighten(segment []script.Action) []script.Action {
	if len(segment) <= 2 {
		return segment
	}
	if LineDeviation(segment) <= HandyMaxStraightThreshold {
		return []script.Action{segment[0], segment[len(segment)-1]}
	}
	return segment
}

// simplifyHandySegment recursively drops interior points that are either
// redundant (the segment is already near-straight), would force a
// speed spike if used as a split point, or sit too close to either
// endpoint for the Handy to act on independently.
func simplifyHandySegment(segment []script.Action) []script.Action {
	if len(segment) <= 2 {
		return segment
	}
	first := segment[0]
	last := segment[len(segment)-1]
	middle := segment[1 : len(segment)-1]

	if LineDeviation(segment) <= HandyMaxStraightThreshold {
		return []script.Action{first, last}
	}
	if AbsSpeedBetween(first, last) > HandyMaxSpeed {
		return []script.Action{first, last}
	}

	var candidates []script.Action
	for _, e := range middle {
		if AbsSpeedBetween(first, e) < HandyMaxSpeed && AbsSpeedBetween(e, last) < HandyMaxSpeed {
			candidates = append(candidates, e)
		}
	}
	var spaced []script.Action
	for _, e := range candidates {
		if e.At-first.At >= HandyMinInterval && last.At-e.At >= HandyMinInterval {
			spaced = append(spaced, e)
		}
	}

	if len(spaced) == 0 {
		return []script.Action{first, last}
	}
	if len(spaced) == 1 {
		return straighten([]script.Action{first, spaced[0], last})
	}

	middleDuration := spaced[len(spaced)-1].At - spaced[0].At
	if middleDuration < HandyMinInterval {
		target := float64(middleDuration) / 2
		mid := spaced[0]
		best := absFloat(float64(mid.At-first.At) - target)
		for _, e := range spaced[1:] {
			d := absFloat(float64(e.At-first.At) - target)
			if d < best {
				best = d
				mid = e
			}
		}
		return straighten([]script.Action{first, mid, last})
	}

	inner := simplifyHandySegment(spaced)
	out := make([]script.Action, 0, len(inner)+2)
	out = append(out, first)
	out = append(out, inner...)
	out = append(out, last)
	return out
}

// mergeCloseLowSpeedPoints collapses adjacent points joined by a speed
// below 10 units/s into their midpoint, but only where at least one side
// of the pair is a peak — interior points on a straight run are left for
// the simplification pass.
func mergeCloseLowSpeedPoints(actions []script.Action) []script.Action {
	out := append([]script.Action(nil), actions...)

	i := 1
	for i < len(out) {
		current := out[i]
		prev := out[i-1]
		if IsPeak(out, i) == 0 && IsPeak(out, i-1) == 0 {
			i++
			continue
		}
		if AbsSpeedBetween(prev, current) > 10 {
			i++
			continue
		}

		merged := script.Action{
			At:  int64(lerpFloat(float64(prev.At), float64(current.At), 0.5)),
			Pos: lerpFloat(prev.Pos, current.Pos, 0.5),
		}
		out[i-1] = merged
		out = append(out[:i], out[i+1:]...)
	}
	return out
}
