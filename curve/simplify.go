package curve

import "github.com/stashtools/funscript/script"

// LineDeviation returns the maximum vertical distance from each interior
// point of segment to the straight line through its first and last points,
// parameterized by At. 0 for segments of length <= 2.
func LineDeviation(segment []script.Action) float64 {
	if len(segment) <= 2 {
		return 0
	}
	first := segment[0]
	last := segment[len(segment)-1]
	span := float64(last.At - first.At)

	var maxDeviation float64
	for i := 1; i < len(segment)-1; i++ {
		t := float64(segment[i].At-first.At) / span
		expected := first.Pos + (last.Pos-first.Pos)*t
		deviation := segment[i].Pos - expected
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation > maxDeviation {
			maxDeviation = deviation
		}
	}
	return maxDeviation
}

// SimplifyLinearCurve greedily drops points that lie within threshold of a
// straight line through their segment's neighbors, per segment. If a whole
// segment's deviation is within threshold it collapses to its endpoints.
func SimplifyLinearCurve(curve []script.Action, threshold float64) []script.Action {
	if len(curve) <= 2 {
		return curve
	}

	segments := SplitToSegments(curve)
	simplified := make([][]script.Action, 0, len(segments))

	for _, segment := range segments {
		if LineDeviation(segment) <= threshold {
			simplified = append(simplified, []script.Action{segment[0], segment[len(segment)-1]})
			continue
		}

		result := []script.Action{segment[0]}
		startIdx := 0
		for startIdx < len(segment)-1 {
			endIdx := startIdx + 2
			for endIdx <= len(segment)-1 {
				if LineDeviation(segment[startIdx:endIdx+1]) > threshold {
					break
				}
				endIdx++
			}
			endIdx--
			if endIdx < startIdx+1 {
				endIdx = startIdx + 1
			}
			result = append(result, segment[endIdx])
			startIdx = endIdx
		}
		simplified = append(simplified, result)
	}

	return ConnectSegments(simplified)
}
