// Package variant classifies funscript files found alongside a video into
// a default script, named variants, and per-axis files, and caches that
// classification across repeated directory scans.
package variant

import "errors"

// ErrEmptyBaseName is returned when Classify is called with an empty base
// (video stem) name — every candidate file would trivially match.
var ErrEmptyBaseName = errors.New("variant: base name must not be empty")
