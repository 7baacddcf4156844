package curve

import "github.com/stashtools/funscript/script"

// SmoothCurve applies a weighted moving average over a window of radius 5
// samples. Weights are triangular in time: for each point i,
// the sum runs over j in [i-5, i+5] with weight = max(0, timeRadius -
// |at[j]-at[i]|). Each pass computes weights from the ORIGINAL positions of
// that pass; passes are independent, so consecutive iterations compound.
// When preserveEnds is true, the first and last points are left untouched.
func SmoothCurve(curve []script.Action, timeRadius int64, iterations int, preserveEnds bool) []script.Action {
	const radius = 5
	out := append([]script.Action(nil), curve...)
	positions := make([]float64, len(out))
	for i, a := range out {
		positions[i] = a.Pos
	}

	for iter := 0; iter < iterations; iter++ {
		next := make([]float64, len(out))
		copy(next, positions)
		for i := range out {
			if preserveEnds && (i == 0 || i == len(out)-1) {
				continue
			}

			var sum, weightSum float64
			for j := -radius; j <= radius; j++ {
				idx := i + j
				if idx < 0 || idx >= len(out) {
					continue
				}
				dt := out[idx].At - out[i].At
				if dt < 0 {
					dt = -dt
				}
				weight := float64(timeRadius) - float64(dt)
				if weight < 0 {
					weight = 0
				}
				sum += positions[idx] * weight
				weightSum += weight
			}
			if weightSum == 0 {
				continue
			}
			next[i] = sum / weightSum
		}
		positions = next
		for i := range out {
			out[i].Pos = positions[i]
		}
	}
	return out
}
