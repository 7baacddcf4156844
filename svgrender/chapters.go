package svgrender

import (
	"fmt"
	"strings"

	"github.com/stashtools/funscript/script"
	"github.com/stashtools/funscript/timeutil"
)

// renderChapterBar draws one horizontal bar spanning graphWidth at (xOffset,
// y), with one rounded rect per chapter colored from ChapterPalette in
// round-robin order. A chapter's label is drawn only when its rect is
// wider than 30px, with a white halo pass behind it when halo is true.
func renderChapterBar(chapters []script.Chapter, durationMs int64, xOffset, y, graphWidth, chapterHeight float64, font string, halo bool) string {
	if len(chapters) == 0 || durationMs <= 0 {
		return ""
	}

	var rects, halos, labels []string
	fontSize := roundTo2(chapterHeight * 0.7)

	for i, ch := range chapters {
		startMs, _ := timeutil.TimeSpanToMs(ch.StartTime)
		endMs, _ := timeutil.TimeSpanToMs(ch.EndTime)

		startX := float64(startMs)/float64(durationMs)*graphWidth + xOffset
		endX := float64(endMs)/float64(durationMs)*graphWidth + xOffset
		chapterWidth := endX - startX
		fill := ChapterPalette[i%len(ChapterPalette)]

		rects = append(rects, fmt.Sprintf(
			`<rect x="%s" y="%s" width="%s" height="%s" fill="%s" opacity="0.8" rx="2" ry="2"/>`,
			fmtCoord(roundTo2(startX)), fmtCoord(roundTo2(y)), fmtCoord(roundTo2(chapterWidth)), fmtCoord(roundTo2(chapterHeight)), fill))

		if chapterWidth <= 30 {
			continue
		}
		textX := roundTo2(startX + chapterWidth/2)
		textY := roundTo2(y + chapterHeight/2 + 3)
		name := escapeSVGText(ch.Name)

		label := fmt.Sprintf(
			`<text x="%s" y="%s" font-size="%spx" font-family="%s" text-anchor="middle" font-weight="bold">%s</text>`,
			fmtCoord(textX), fmtCoord(textY), fmtCoord(fontSize), font, name)
		labels = append(labels, label)
		if halo {
			halos = append(halos, label)
		}
	}

	var b strings.Builder
	b.WriteString(`<g id="chapters">`)
	b.WriteString(strings.Join(rects, ""))
	if len(halos) > 0 {
		b.WriteString(`<g stroke="white" opacity="0.5" paint-order="stroke fill markers" stroke-width="3" stroke-dasharray="none" stroke-linejoin="round" fill="transparent">`)
		b.WriteString(strings.Join(halos, ""))
		b.WriteString(`</g>`)
	}
	b.WriteString(strings.Join(labels, ""))
	b.WriteString(`</g>`)
	return b.String()
}
