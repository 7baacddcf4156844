// Package presets loads RenderOptions and MergeOptions overrides from a
// YAML document, applying only the fields the document sets and leaving
// the rest at Default().
package presets

import "errors"

// ErrUnsupportedFormat is returned when the override file's extension
// isn't ".yaml" or ".yml".
var ErrUnsupportedFormat = errors.New("presets: unsupported file format, only YAML is supported")
