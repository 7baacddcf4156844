// Package metrics provides Prometheus instrumentation for the funscript
// library's operations: parsing, serializing, merging, unmerging,
// classifying variants, and rendering heatmaps.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var durationBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

var (
	opsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "funscript_operations_total",
		Help: "Total library operations by kind and outcome",
	}, []string{"op", "outcome"}) // op=parse|serialize|normalize|merge|unmerge|classify|render, outcome=success|error

	opDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "funscript_operation_duration_seconds",
		Help:    "Wall-clock time spent in a library operation",
		Buckets: durationBuckets,
	}, []string{"op"})

	actionsParsed = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "funscript_parsed_actions",
		Help:    "Number of actions in a parsed script (primary channel only)",
		Buckets: []float64{10, 50, 100, 500, 1000, 5000, 20000},
	})

	mergedChannels = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "funscript_merged_channels",
		Help:    "Number of secondary channels combined by a merge",
		Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 7},
	})

	renderBadActions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "funscript_render_bad_actions_total",
		Help: "Total non-finite-position actions recovered during render",
	})

	colorCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "funscript_color_cache_lookups_total",
		Help: "Speed-to-color cache lookups by tier and outcome",
	}, []string{"tier", "outcome"}) // tier=local|remote, outcome=hit|miss
)

// Outcome labels a completed operation's result.
type Outcome string

const (
	Success Outcome = "success"
	Failure Outcome = "error"
)

// Observe records one operation's outcome and duration. Typical use:
//
//	start := time.Now()
//	err := doParse()
//	metrics.Observe("parse", start, err)
func Observe(op string, start time.Time, err error) {
	outcome := Success
	if err != nil {
		outcome = Failure
	}
	opsTotal.WithLabelValues(op, string(outcome)).Inc()
	opDurationSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// RecordParsedActions records a primary script's action count after a
// successful parse.
func RecordParsedActions(n int) { actionsParsed.Observe(float64(n)) }

// RecordMergedChannels records how many secondary channels a merge combined.
func RecordMergedChannels(n int) { mergedChannels.Observe(float64(n)) }

// IncRenderBadActions adds to the count of non-finite positions a render
// had to recover from.
func IncRenderBadActions(n int) {
	if n > 0 {
		renderBadActions.Add(float64(n))
	}
}

// IncColorCacheLookup records a speed-to-color cache lookup outcome.
func IncColorCacheLookup(tier string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	colorCacheLookups.WithLabelValues(tier, outcome).Inc()
}
