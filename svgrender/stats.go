package svgrender

import (
	"fmt"

	"github.com/stashtools/funscript/curve"
	"github.com/stashtools/funscript/script"
)

// stat is one right-anchored label/value pair in the title band, in the
// fixed display order Duration, Actions, MaxSpeed, AvgSpeed.
type stat struct {
	Label string
	Value string
}

// computeStats derives the title-band stats for actions. durationSeconds
// is the axis-scale duration, not the script's own metadata duration.
// includeDuration is false for secondary channels, which never show their
// own duration (it is identical to the primary's).
func computeStats(actions []script.Action, durationSeconds float64, includeDuration bool) []stat {
	maxSpeed := curve.RequiredMaxSpeed(actions)
	avgSpeed := curve.AverageSpeed(actions)

	peaks := 0
	for i := range actions {
		if curve.IsPeak(actions, i) != 0 {
			peaks++
		}
	}

	stats := make([]stat, 0, 4)
	if includeDuration {
		stats = append(stats, stat{"Duration", formatStatDuration(durationSeconds)})
	}
	stats = append(stats,
		stat{"Actions", fmt.Sprintf("%d", peaks)},
		stat{"MaxSpeed", fmt.Sprintf("%.0f", roundHalfAwayFromZero(maxSpeed))},
		stat{"AvgSpeed", fmt.Sprintf("%.0f", roundHalfAwayFromZero(avgSpeed))},
	)
	return stats
}

// formatStatDuration renders whole seconds as "M:SS" (or "H:MM:SS" past one
// hour) — the compact stat-band form, distinct from timeutil's
// "HH:MM:SS.mmm" used for chapter timestamps.
func formatStatDuration(seconds float64) string {
	total := int64(roundHalfAwayFromZero(seconds))
	if total < 3600 {
		return fmt.Sprintf("%d:%02d", total/60, total%60)
	}
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

func roundHalfAwayFromZero(v float64) float64 {
	if v < 0 {
		return -roundHalfAwayFromZero(-v)
	}
	return float64(int64(v + 0.5))
}
