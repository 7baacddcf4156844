package script

import "strings"

// FileRef is a parsed funscript file path: directory, title stem, and an
// optional axis/channel suffix (e.g. "movie.pitch.funscript" parses to
// title "movie", channel "pitch"). It is metadata only — the library never
// opens a FileRef itself.
type FileRef struct {
	Dir     string
	Title   string
	Channel Channel

	// MergedFiles records the source paths a merge combined into this
	// script, for informational/debugging purposes only.
	MergedFiles []string
}

// ParseFileRef splits a "<dir>/<title>[.<channel>].funscript" path into its
// components. A trailing segment that names a known channel or axis label
// is captured as Channel; any other trailing segment is left as part of
// Title.
func ParseFileRef(path string) FileRef {
	trimmed := strings.TrimSuffix(path, ".funscript")

	var channel Channel
	if dot := strings.LastIndexByte(trimmed, '.'); dot >= 0 {
		candidate := trimmed[dot+1:]
		if ch, ok := ChannelForAxis(candidate); ok {
			channel = ch
			trimmed = trimmed[:dot]
		}
	}

	dir := ""
	title := trimmed
	if slash := strings.LastIndexAny(trimmed, "/\\"); slash >= 0 {
		dir = trimmed[:slash+1]
		title = trimmed[slash+1:]
	}

	return FileRef{Dir: dir, Title: title, Channel: channel}
}

// Path reconstructs the file path this ref was parsed from (or would be
// written to), including the channel suffix when set.
func (f FileRef) Path() string {
	var b strings.Builder
	b.WriteString(f.Dir)
	b.WriteString(f.Title)
	if f.Channel != "" {
		b.WriteByte('.')
		b.WriteString(string(f.Channel))
	}
	b.WriteString(".funscript")
	return b.String()
}

// GroupKey is the (dir, title) identity used to group sibling axis files
// for a merge.
func (f FileRef) GroupKey() string {
	return f.Dir + f.Title
}
