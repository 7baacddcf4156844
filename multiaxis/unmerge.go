package multiaxis

import (
	"time"

	"github.com/stashtools/funscript/metrics"
	"github.com/stashtools/funscript/script"
)

// UnmergeFunscript splits a multi-channel script into one single-axis
// script per channel plus the primary, each a standalone v1.0-shaped
// Script. Every child inherits any metadata field it left blank from the
// parent, and inherits the parent's duration outright. Chapters are not
// copied down to children — they describe the primary timeline.
func UnmergeFunscript(s *script.Script) []*script.Script {
	start := time.Now()
	defer func() { metrics.Observe("unmerge", start, nil) }()

	primary := s.Clone()
	primary.Channels = map[script.Channel]*script.Script{}
	primary.File = primaryFileRef(s)

	out := make([]*script.Script, 0, 1+len(s.Channels))
	out = append(out, primary)

	for _, ch := range s.SortedChannels() {
		child := ch.Clone()
		child.Parent = nil
		child.Channels = map[script.Channel]*script.Script{}
		child.Metadata = inheritMetadata(ch.Metadata, s.Metadata)
		child.Metadata.Duration = s.Metadata.Duration
		child.File = childFileRef(s, ch)
		out = append(out, child)
	}

	return out
}

func primaryFileRef(s *script.Script) *script.FileRef {
	if s.File == nil {
		return nil
	}
	ref := *s.File
	ref.Channel = ""
	ref.MergedFiles = nil
	return &ref
}

func childFileRef(parent, ch *script.Script) *script.FileRef {
	if parent.File == nil {
		return &script.FileRef{Channel: ch.Channel}
	}
	ref := *parent.File
	ref.Channel = ch.Channel
	ref.MergedFiles = nil
	return &ref
}

// inheritMetadata fills every zero-valued field of child with parent's
// value. Chapters are deliberately left as child's own (usually empty) —
// they belong to the primary timeline, not to secondary channels.
func inheritMetadata(child, parent script.Metadata) script.Metadata {
	out := child
	if out.Title == "" {
		out.Title = parent.Title
	}
	if out.Creator == "" {
		out.Creator = parent.Creator
	}
	if out.Description == "" {
		out.Description = parent.Description
	}
	if out.License == "" {
		out.License = parent.License
	}
	if out.Notes == "" {
		out.Notes = parent.Notes
	}
	if len(out.Performers) == 0 {
		out.Performers = append([]string(nil), parent.Performers...)
	}
	if out.TopicURL == "" {
		out.TopicURL = parent.TopicURL
	}
	if out.ScriptURL == "" {
		out.ScriptURL = parent.ScriptURL
	}
	if out.VideoURL == "" {
		out.VideoURL = parent.VideoURL
	}
	if len(out.Tags) == 0 {
		out.Tags = append([]string(nil), parent.Tags...)
	}
	if out.Type == "" {
		out.Type = parent.Type
	}
	if len(out.Bookmarks) == 0 {
		out.Bookmarks = append([]script.Bookmark(nil), parent.Bookmarks...)
	}
	return out
}
