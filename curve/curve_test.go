package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashtools/funscript/script"
)

func actions(pairs ...int64) []script.Action {
	out := make([]script.Action, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, script.Action{At: pairs[i], Pos: float64(pairs[i+1])})
	}
	return out
}

func TestSpeedBetween(t *testing.T) {
	a := script.Action{At: 0, Pos: 0}
	b := script.Action{At: 1000, Pos: 50}
	assert.Equal(t, 50.0, SpeedBetween(a, b))
	assert.Equal(t, 50.0, AbsSpeedBetween(b, a))
}

func TestIsPeakEndpointsAlwaysPeaks(t *testing.T) {
	as := actions(0, 0, 500, 100, 1000, 0)
	assert.Equal(t, 1, IsPeak(as, 0))
	assert.Equal(t, 1, IsPeak(as, 2))
}

func TestIsPeakClassifiesZigzag(t *testing.T) {
	as := actions(0, 0, 100, 100, 200, 0, 300, 100)
	want := []int{1, 1, -1, 1}
	for i, w := range want {
		assert.Equal(t, w, IsPeak(as, i), "index %d", i)
	}
}

func TestIsPeakValley(t *testing.T) {
	as := actions(0, 0, 500, 100, 1000, 0, 1500, 100)
	assert.Equal(t, -1, IsPeak(as, 2))
}

func TestToZigzagKeepsOnlyPeaks(t *testing.T) {
	as := actions(0, 0, 250, 50, 500, 100, 1000, 0)
	zz := ToZigzag(as)
	assert.Len(t, zz, 3)
}

func TestBinaryFindLeftBorder(t *testing.T) {
	as := actions(0, 0, 100, 10, 200, 20, 300, 30)
	assert.Equal(t, 0, BinaryFindLeftBorder(as, -10))
	assert.Equal(t, 1, BinaryFindLeftBorder(as, 150))
	assert.Equal(t, 3, BinaryFindLeftBorder(as, 1000))
}

func TestClerpAt(t *testing.T) {
	assert.Equal(t, 50.0, ClerpAt(nil, 0))
	as := actions(0, 0, 1000, 100)
	assert.Equal(t, 50.0, ClerpAt(as, 500))
	assert.Equal(t, 0.0, ClerpAt(as, -100))
	assert.Equal(t, 100.0, ClerpAt(as, 5000))
}

func TestActionsToLinesSkipsNonPositiveDuration(t *testing.T) {
	as := actions(0, 0, 0, 50, 1000, 100)
	lines := ActionsToLines(as)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1000), lines[0].Dat)
}

func TestSplitToSegments(t *testing.T) {
	as := actions(0, 0, 500, 100, 1000, 0, 1500, 100)
	segs := SplitToSegments(as)
	require.Len(t, segs, 3)
	for _, s := range segs {
		assert.Len(t, s, 2)
	}
}

func TestConnectSegmentsDedupesSharedPeak(t *testing.T) {
	segs := [][]script.Action{
		actions(0, 0, 500, 100),
		actions(500, 100, 1000, 0),
	}
	connected := ConnectSegments(segs)
	assert.Len(t, connected, 3)
}

func TestSmoothCurvePreservesEnds(t *testing.T) {
	as := actions(0, 0, 100, 100, 200, 0, 300, 100, 400, 0)
	smoothed := SmoothCurve(as, 150, 1, true)
	assert.Equal(t, as[0].Pos, smoothed[0].Pos)
	assert.Equal(t, as[len(as)-1].Pos, smoothed[len(smoothed)-1].Pos)
}

func TestSmoothCurveUsesOriginalPositionsWithinAPass(t *testing.T) {
	as := actions(0, 0, 100, 100, 200, 0)
	once := SmoothCurve(as, 1000, 1, false)
	twice := SmoothCurve(as, 1000, 2, false)
	// A single pass weights the unmodified input positions 0, 100, 0.
	assert.InDelta(t, 100000.0/2800.0, once[1].Pos, 1e-9)
	assert.NotEqual(t, once[1].Pos, twice[1].Pos)
}

func TestMergeLinesSpeedAveragesSameSignRun(t *testing.T) {
	as := actions(0, 0, 100, 10, 200, 30, 300, 60)
	lines := ActionsToLines(as)
	merged := MergeLinesSpeed(lines, 1000)
	for _, l := range merged {
		assert.InDelta(t, merged[0].AbsSpeed, l.AbsSpeed, 0.001)
	}
}

func TestMergeLinesSpeedRespectsMergeLimit(t *testing.T) {
	as := actions(0, 0, 100, 10, 200, 30)
	lines := ActionsToLines(as)
	merged := MergeLinesSpeed(lines, 0)
	assert.Equal(t, lines, merged)
}

func TestLineDeviationStraightLineIsZero(t *testing.T) {
	as := actions(0, 0, 500, 50, 1000, 100)
	assert.InDelta(t, 0, LineDeviation(as), 0.001)
}

func TestSimplifyLinearCurveCollapsesStraightSegment(t *testing.T) {
	as := actions(0, 0, 250, 25, 500, 50, 750, 75, 1000, 100, 1500, 0)
	simplified := SimplifyLinearCurve(as, 1)
	assert.Less(t, len(simplified), len(as))
}

func TestRequiredMaxSpeedEmpty(t *testing.T) {
	assert.Equal(t, 0.0, RequiredMaxSpeed(nil))
	assert.Equal(t, 0.0, RequiredMaxSpeed(actions(0, 0)))
}

func TestAverageSpeedIgnoresSlowTransitions(t *testing.T) {
	as := actions(0, 0, 10000, 1)
	assert.Equal(t, 0.0, AverageSpeed(as))
}

func TestLimitPeakSpeedCapsExcessiveSpeed(t *testing.T) {
	as := actions(0, 0, 10, 100, 20, 0)
	limited := LimitPeakSpeed(as, 100)
	zz := ToZigzag(limited)
	for i := 1; i < len(zz); i++ {
		assert.LessOrEqual(t, AbsSpeedBetween(zz[i-1], zz[i]), 100.0+0.01)
	}
}

func TestLimitPeakSpeedNoOpBelowLimit(t *testing.T) {
	as := actions(0, 0, 1000, 100, 2000, 0)
	limited := LimitPeakSpeed(as, 1000)
	assert.Equal(t, as, limited)
}

func TestHandySmoothKeepsOrderAndStart(t *testing.T) {
	as := actions(0, 0, 10, 50, 20, 100, 1000, 0)
	out := HandySmooth(as)
	for i := 1; i < len(out)-1; i++ {
		assert.True(t, out[i].At-out[i-1].At >= 0)
	}
	assert.Equal(t, out[0].At, as[0].At)
}

func TestHandySmoothCapsSpeed(t *testing.T) {
	as := actions(0, 0, 10, 100, 20, 0, 30, 100, 40, 0)
	out := HandySmooth(as)
	zz := ToZigzag(out)
	for i := 1; i < len(zz); i++ {
		assert.LessOrEqual(t, AbsSpeedBetween(zz[i-1], zz[i]), HandyMaxSpeed+0.5)
	}
}
