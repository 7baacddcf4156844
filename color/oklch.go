// Package color implements the speed-to-OKLCH mapping and the OKLCH→sRGB
// conversion used by the SVG renderer, plus a memoized,
// optionally process-shared cache of speed→hex-color lookups.
package color

import (
	"fmt"
	"math"

	"github.com/stashtools/funscript/timeutil"
)

// speedToOklchParams mirrors funlib_py.converter.speedToOklchParams.
const (
	lLeft, lRight, lFrom, lTo = 500, 600, 0.8, 0.4
	cLeft, cRight, cFrom, cTo = 800, 900, 0.4, 0.1
	hOffset, hSpeed           = 210, -2.4
	aLeft, aRight, aFrom, aTo = 0, 100, 0, 1
)

// SpeedToOklch maps an absolute speed (units/s) to an OKLCH(L, C, H) triple
// plus alpha: L, C and alpha are piecewise-linear clamps over three fixed
// speed bands, and hue rotates linearly with speed.
func SpeedToOklch(speed float64) (l, c, h, a float64) {
	l = timeutil.ClampLerp(speed, lLeft, lRight, lFrom, lTo)
	c = timeutil.ClampLerp(speed, cLeft, cRight, cFrom, cTo)
	h = roll(hOffset+speed/hSpeed, 360)
	a = timeutil.ClampLerp(speed, aLeft, aRight, aFrom, aTo)
	return l, c, h, a
}

func roll(value, cap float64) float64 {
	return math.Mod(math.Mod(value, cap)+cap, cap)
}

// OklchToSRGB converts an OKLCH triple to 8-bit sRGB, via Björn Ottosson's
// OKLab transform (https://bottosson.github.io/posts/oklab/) and standard
// sRGB gamma encoding.
func OklchToSRGB(l, c, h float64) (r, g, b uint8) {
	hRad := h * math.Pi / 180
	a := c * math.Cos(hRad)
	bb := c * math.Sin(hRad)

	lp := l + 0.3963377774*a + 0.2158037573*bb
	mp := l - 0.1055613458*a - 0.0638541728*bb
	sp := l - 0.0894841775*a - 1.2914855480*bb

	lc, mc, sc := lp*lp*lp, mp*mp*mp, sp*sp*sp

	rl := +4.0767416621*lc - 3.3077115913*mc + 0.2309699292*sc
	gl := -1.2684380046*lc + 2.6097574011*mc - 0.3413193965*sc
	bl := -0.0041960863*lc - 0.7034186147*mc + 1.7076147010*sc

	return gammaEncode(rl), gammaEncode(gl), gammaEncode(bl)
}

func gammaEncode(c float64) uint8 {
	var srgb float64
	if c <= 0.0031308 {
		srgb = 12.92 * c
	} else {
		srgb = 1.055*math.Pow(c, 1/2.4) - 0.055
	}
	clamped := timeutil.Clamp(math.Round(srgb*255), 0, 255)
	return uint8(clamped)
}

// Hex formats an sRGB triple as a lowercase 6-digit hex color.
func Hex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// SpeedToHex converts an absolute speed directly to its hex color, with no
// caching. Prefer Cache.HexForSpeed in hot paths (the SVG renderer calls
// this for every line and gradient stop).
func SpeedToHex(speed float64) string {
	l, c, h, _ := SpeedToOklch(speed)
	r, g, b := OklchToSRGB(l, c, h)
	return Hex(r, g, b)
}
