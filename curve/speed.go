package curve

import (
	"sort"

	"github.com/stashtools/funscript/script"
)

// RequiredMaxSpeed returns the highest speed the actions require a device
// to sustain for at least 50ms — the device need only reach a speed it
// must hold, not every instantaneous peak-to-peak speed. 0 for
// fewer than two actions.
func RequiredMaxSpeed(actions []script.Action) float64 {
	if len(actions) < 2 {
		return 0
	}

	type requirement struct {
		speed float64
		dat   int64
	}
	var requirements []requirement

	nextPeakIndex := 0
	for i := range actions {
		if nextPeakIndex == i {
			nextPeakIndex = -1
			for idx := i + 1; idx < len(actions); idx++ {
				if IsPeak(actions, idx) != 0 {
					nextPeakIndex = idx
					break
				}
			}
			if nextPeakIndex == -1 {
				break
			}
		}
		nextPeak := actions[nextPeakIndex]
		requirements = append(requirements, requirement{
			speed: AbsSpeedBetween(actions[i], nextPeak),
			dat:   nextPeak.At - actions[i].At,
		})
	}

	sort.SliceStable(requirements, func(a, b int) bool {
		return requirements[a].speed > requirements[b].speed
	})

	for _, r := range requirements {
		if r.dat >= 50 {
			return r.speed
		}
	}
	return 0
}

// AverageSpeed returns the time-weighted mean of peak-to-peak absolute
// speeds, restricted to transitions whose speed exceeds 30 units/s. 0 for
// an empty curve.
func AverageSpeed(actions []script.Action) float64 {
	zigzag := ToZigzag(actions)

	var fast []script.Action
	for i, e := range zigzag {
		if i == 0 {
			continue
		}
		if AbsSpeedBetween(zigzag[i-1], e) > 30 {
			fast = append(fast, e)
		}
	}

	var numerator, denominator float64
	for i, e := range fast {
		var speedNext float64
		var datNext int64
		if i < len(fast)-1 {
			speedNext = AbsSpeedBetween(e, fast[i+1])
			datNext = fast[i+1].At - e.At
		}
		numerator += speedNext * float64(datNext)
	}
	for i := 0; i < len(fast)-1; i++ {
		denominator += float64(fast[i+1].At - fast[i].At)
	}

	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
