package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// FormatOptions controls the diff-stable textual rendering produced by
// Format.
type FormatOptions struct {
	// LineLength is the target column budget for packed action lines.
	// Defaults to 100.
	LineLength int
}

var actionArrayPattern = regexp.MustCompile(`(?s)\[\s*\{\s*"at"[\s\S]*?\}\s*(?:,\s*\{\s*"at"[\s\S]*?\}\s*)*\]`)

// Format re-renders an already-indented JSON document (as produced by
// json.MarshalIndent with a two-space indent) so that every actions array
// is packed onto as few lines as fit within LineLength, with "at" and
// "pos" right-aligned by the widest value in that array. The result is
// stable across runs for identical input, making it suitable for
// bit-for-bit diff tooling.
func Format(indented []byte, opts FormatOptions) []byte {
	lineLength := opts.LineLength
	if lineLength <= 0 {
		lineLength = 100
	}

	return actionArrayPattern.ReplaceAllFunc(indented, func(match []byte) []byte {
		return packActionArray(match, lineLength)
	})
}

type rawAction struct {
	At  json.Number `json:"at"`
	Pos json.Number `json:"pos"`
}

func packActionArray(match []byte, lineLength int) []byte {
	var actions []rawAction
	if err := json.Unmarshal(match, &actions); err != nil {
		return match
	}
	if len(actions) == 0 {
		return []byte("[]")
	}

	atStrs := make([]string, len(actions))
	posStrs := make([]string, len(actions))
	maxAtWidth := 0
	maxPosFrac := 0
	for i, a := range actions {
		atStrs[i] = a.At.String()
		posStrs[i] = a.Pos.String()
		if len(atStrs[i]) > maxAtWidth {
			maxAtWidth = len(atStrs[i])
		}
		if dot := strings.IndexByte(posStrs[i], '.'); dot >= 0 {
			if frac := len(posStrs[i]) - dot; frac > maxPosFrac {
				maxPosFrac = frac
			}
		}
	}

	entries := make([]string, len(actions))
	for i := range actions {
		at := padLeft(atStrs[i], maxAtWidth)
		pos := padPos(posStrs[i], maxPosFrac)
		entries[i] = fmt.Sprintf(`{ "at": %s, "pos": %s }`, at, pos)
	}

	entryWidth := len(entries[0]) + 1 // + comma
	perLine := 10
	for perLine > 1 && 6+entryWidth*perLine-1 > lineLength {
		perLine--
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, e := range entries {
		if i%perLine == 0 {
			buf.WriteString("\n  ")
		} else {
			buf.WriteByte(' ')
		}
		buf.WriteString(e)
		if i != len(entries)-1 {
			buf.WriteByte(',')
		}
	}
	buf.WriteString("\n]")
	return buf.Bytes()
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func padPos(s string, fracWidth int) string {
	s = padLeft(s, 3)
	if fracWidth == 0 {
		return s
	}
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s + strings.Repeat(" ", fracWidth)
	}
	frac := len(s) - dot
	if frac >= fracWidth {
		return s
	}
	return s + strings.Repeat(" ", fracWidth-frac)
}

// MarshalIndented is a convenience wrapper combining Serialize's compact
// JSON with two-space indentation, the form Format expects as input.
func MarshalIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
