package svgrender

import (
	"math"
	"strconv"
	"strings"
)

// roundTo2 rounds to 2 decimal places, half away from zero — every
// coordinate and computed dimension in the document uses this rounding.
func roundTo2(v float64) float64 {
	return roundHalfAwayFromZero(v*100) / 100
}

// fmtCoord formats an already-rounded coordinate with no superfluous
// trailing zeros (12, not 12.00; 12.3, not 12.30).
func fmtCoord(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var svgEntities = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"/", "&#x2F;",
)

// escapeSVGText escapes text for safe inclusion inside SVG markup.
func escapeSVGText(s string) string {
	if s == "" {
		return s
	}
	return svgEntities.Replace(s)
}
