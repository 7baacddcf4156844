package curve

import "github.com/stashtools/funscript/script"

// LimitPeakSpeed iteratively (up to 10 passes) reduces peak positions so no
// adjacent pair of peaks exceeds maxSpeed, then linearly re-interpolates
// every non-peak position within its segment by its original At. Converges
// in practice well before the 10-pass cap; hitting the cap without
// converging is a latent condition, not an error — callers needing a
// diagnostic should inspect the result's peak speeds themselves.
func LimitPeakSpeed(actions []script.Action, maxSpeed float64) []script.Action {
	peaks := ToZigzag(actions)
	if len(peaks) < 2 {
		return append([]script.Action(nil), actions...)
	}

	positions := make([]float64, len(peaks))
	for i, p := range peaks {
		positions[i] = p.Pos
	}

	for iteration := 0; iteration < 10; iteration++ {
		lchanges := make([]float64, len(positions))
		rchanges := make([]float64, len(positions))

		for left := 0; left < len(positions)-1; left++ {
			right := left + 1
			l := script.Action{At: peaks[left].At, Pos: positions[left]}
			r := script.Action{At: peaks[right].At, Pos: positions[right]}
			absSpeed := AbsSpeedBetween(l, r)
			if absSpeed <= maxSpeed {
				continue
			}
			height := r.Pos - l.Pos
			changePercent := (absSpeed - maxSpeed) / absSpeed
			totalChange := height * changePercent
			lchanges[left] += totalChange / 2
			rchanges[right] -= totalChange / 2
		}

		changes := make([]float64, len(positions))
		for i := range positions {
			lc, rc := lchanges[i], rchanges[i]
			if sign(lc) == sign(rc) || lc == 0 || rc == 0 {
				if absFloat(lc) > absFloat(rc) {
					changes[i] = lc
				} else {
					changes[i] = rc
				}
			} else {
				changes[i] = lc + rc
			}
		}

		var maxRemaining float64
		for i := range positions {
			positions[i] += changes[i]
			peaks[i].Pos = positions[i]
		}
		for i := 0; i < len(peaks)-1; i++ {
			s := AbsSpeedBetween(peaks[i], peaks[i+1])
			if s > maxRemaining {
				maxRemaining = s
			}
		}
		if maxRemaining <= maxSpeed {
			break
		}
	}

	segments := SplitToSegments(actions)
	newSegments := make([][]script.Action, len(segments))
	for i, segment := range segments {
		newLeft := peaks[i].Pos
		newRight := peaks[i+1].Pos
		leftAt := segment[0].At
		rightAt := segment[len(segment)-1].At

		out := make([]script.Action, len(segment))
		for j, a := range segment {
			t := unlerpInt(leftAt, rightAt, a.At)
			out[j] = script.Action{At: a.At, Pos: lerpFloat(newLeft, newRight, t)}
		}
		newSegments[i] = out
	}

	return ConnectSegments(newSegments)
}

func unlerpInt(lo, hi, v int64) float64 {
	if lo == hi {
		return 0.5
	}
	return float64(v-lo) / float64(hi-lo)
}

func lerpFloat(lo, hi, t float64) float64 {
	return lo + (hi-lo)*t
}
