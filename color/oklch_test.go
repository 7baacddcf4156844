package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpeedToOklchClampsAtBandEdges(t *testing.T) {
	lLow, _, _, aLow := SpeedToOklch(0)
	assert.Equal(t, 0.8, lLow)
	assert.Equal(t, 0.0, aLow)

	lHigh, cHigh, _, aHigh := SpeedToOklch(900)
	assert.Equal(t, 0.4, lHigh)
	assert.Equal(t, 0.1, cHigh)
	assert.Equal(t, 1.0, aHigh)
}

func TestSpeedToOklchHueWrapsAround360(t *testing.T) {
	_, _, h, _ := SpeedToOklch(0)
	assert.GreaterOrEqual(t, h, 0.0)
	assert.Less(t, h, 360.0)

	_, _, hFast, _ := SpeedToOklch(100000)
	assert.GreaterOrEqual(t, hFast, 0.0)
	assert.Less(t, hFast, 360.0)
}

func TestOklchToSRGBProducesValidChannels(t *testing.T) {
	l, c, h, _ := SpeedToOklch(250)
	r, g, b := OklchToSRGB(l, c, h)
	// uint8 return type already bounds these to [0,255]; this just
	// exercises the conversion path end to end.
	_ = r
	_ = g
	_ = b
}

func TestHexFormatsLowercaseSixDigit(t *testing.T) {
	assert.Equal(t, "#ff00aa", Hex(255, 0, 170))
	assert.Equal(t, "#000000", Hex(0, 0, 0))
}

func TestSpeedToHexIsDeterministic(t *testing.T) {
	a := SpeedToHex(123.4)
	b := SpeedToHex(123.4)
	assert.Equal(t, a, b)
	assert.Len(t, a, 7)
	assert.Equal(t, byte('#'), a[0])
}
