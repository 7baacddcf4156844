package curve

import "github.com/stashtools/funscript/script"

// SplitToSegments splits a curve into overlapping segments between peaks:
// each segment begins at a peak and ends at the next peak (inclusive).
// Non-peak leading/trailing points are dropped.
func SplitToSegments(actions []script.Action) [][]script.Action {
	var segments [][]script.Action
	prevPeak := -1
	for i := range actions {
		if IsPeak(actions, i) != 0 {
			if prevPeak != -1 {
				segments = append(segments, actions[prevPeak:i+1])
			}
			prevPeak = i
		}
	}
	return segments
}

// ConnectSegments is the inverse of SplitToSegments: it concatenates
// segments and de-duplicates the peaks shared between adjacent segments.
func ConnectSegments(segments [][]script.Action) []script.Action {
	var flat []script.Action
	for _, seg := range segments {
		flat = append(flat, seg...)
	}

	out := make([]script.Action, 0, len(flat))
	for i, a := range flat {
		if i == 0 || flat[i-1] != a {
			out = append(out, a)
		}
	}
	return out
}
