package codec

import (
	"math"
	"sort"
	"time"

	"github.com/stashtools/funscript/metrics"
	"github.com/stashtools/funscript/script"
)

// NormalizeOptions tunes the otherwise-mandatory normalization pass.
type NormalizeOptions struct {
	// DisableDurationHeuristic skips Normalize's actions-duration-vs-
	// metadata-duration reconciliation, always trusting the recomputed max
	// action time instead. It does not affect the milliseconds-to-seconds
	// rescale Parse applies to a large metadata duration.
	DisableDurationHeuristic bool
}

// Normalize coerces s (and every channel) into canonical form: integer
// at/pos, strictly ascending at with duplicates collapsed to the last
// write, non-negative at, and a recomputed metadata.duration. It never
// fails and is idempotent — calling it twice is a no-op on the second
// call.
func Normalize(s *script.Script, opts NormalizeOptions) {
	start := time.Now()
	defer func() { metrics.Observe("normalize", start, nil) }()
	normalizeRecursive(s, opts)
}

func normalizeRecursive(s *script.Script, opts NormalizeOptions) {
	for _, ch := range s.Channels {
		normalizeRecursive(ch, opts)
	}
	normalizeActions(s)

	duration := actualDurationSeconds(s, opts)
	rounded := math.Ceil(duration)
	s.Metadata.Duration = rounded
	for _, ch := range s.Channels {
		ch.Metadata.Duration = rounded
	}
}

func normalizeActions(s *script.Script) {
	for i := range s.Actions {
		s.Actions[i].At = int64(math.Round(float64(s.Actions[i].At)))
		s.Actions[i].Pos = clampPos(math.Round(s.Actions[i].Pos))
	}

	sort.SliceStable(s.Actions, func(i, j int) bool {
		return s.Actions[i].At < s.Actions[j].At
	})

	deduped := s.Actions[:0:0]
	for i, a := range s.Actions {
		if i > 0 && s.Actions[i-1].At == a.At {
			deduped[len(deduped)-1] = a
			continue
		}
		deduped = append(deduped, a)
	}
	s.Actions = deduped

	var negatives []script.Action
	kept := s.Actions[:0:0]
	for _, a := range s.Actions {
		if a.At < 0 {
			negatives = append(negatives, a)
			continue
		}
		kept = append(kept, a)
	}
	if len(negatives) > 0 {
		s.Actions = kept
		if len(s.Actions) > 0 && s.Actions[0].At > 0 {
			last := negatives[len(negatives)-1]
			last.At = 0
			s.Actions = append([]script.Action{last}, s.Actions...)
		}
	} else {
		s.Actions = kept
	}
}

func clampPos(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func actualDurationSeconds(s *script.Script, opts NormalizeOptions) float64 {
	actionsDuration := s.ActionsDuration()
	if opts.DisableDurationHeuristic || s.Metadata.Duration == 0 {
		return actionsDuration
	}
	metaDuration := s.Metadata.Duration
	if actionsDuration > metaDuration {
		return actionsDuration
	}
	if actionsDuration*3 < metaDuration {
		return actionsDuration
	}
	return metaDuration
}
