package svgrender

import (
	"golang.org/x/text/width"
)

// charWidthEm approximates a rune's on-screen width as a fraction of its
// font size. East-Asian fullwidth/wide runes render at roughly 1em;
// halfwidth, narrow and ambiguous runes at roughly 0.55em — close enough
// for the ellipsis/wrap decision, which only needs to be right at the
// pixel-budget boundary, not exact.
func charWidthEm(r rune) float64 {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 1.0
	default:
		return 0.55
	}
}

// textWidthPx estimates text's rendered width at fontSizePx.
func textWidthPx(text string, fontSizePx float64) float64 {
	var total float64
	for _, r := range text {
		total += charWidthEm(r) * fontSizePx
	}
	return total
}

// truncateWithEllipsis removes trailing characters from text until it
// (plus a trailing "…") fits within maxWidthPx.
func truncateWithEllipsis(text string, maxWidthPx, fontSizePx float64) string {
	if text == "" || textWidthPx(text, fontSizePx) <= maxWidthPx {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && textWidthPx(string(runes)+"…", fontSizePx) > maxWidthPx {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
