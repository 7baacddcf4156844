package multiaxis

import (
	"time"

	"github.com/stashtools/funscript/metrics"
	"github.com/stashtools/funscript/script"
)

// MergeOptions tunes how ambiguous or sparse input groups are handled.
type MergeOptions struct {
	// AllowMissingActions permits a group with no channel-less script to
	// merge anyway, synthesizing an empty primary.
	AllowMissingActions bool

	// CombineSingleSecondaryChannel wraps a lone channel-tagged script (no
	// sibling primary or other channels in its group) into a parent with an
	// empty primary actions list, rather than leaving it untouched.
	CombineSingleSecondaryChannel bool
}

// Default returns the strict merge behavior: a group with no primary
// script is an error, and a lone secondary channel passes through
// untouched instead of being wrapped.
func Default() MergeOptions {
	return MergeOptions{}
}

// MergeMultiAxis groups scripts by (dir, title) and combines each group's
// single-axis siblings into one multi-channel script. Scripts that already
// carry channels pass through unchanged. Order of the returned slice is
// pass-through scripts first, then merged groups in first-seen order.
func MergeMultiAxis(scripts []*script.Script, opts MergeOptions) (result []*script.Script, err error) {
	start := time.Now()
	defer func() { metrics.Observe("merge", start, err) }()

	var passthrough []*script.Script
	var singles []*script.Script
	for _, s := range scripts {
		if len(s.Channels) > 0 {
			passthrough = append(passthrough, s)
		} else {
			singles = append(singles, s)
		}
	}

	groupOrder := make([]string, 0)
	groups := make(map[string][]*script.Script)
	for _, s := range singles {
		key := groupKey(s)
		if _, ok := groups[key]; !ok {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], s)
	}

	merged := make([]*script.Script, 0, len(groupOrder))
	for _, key := range groupOrder {
		group := groups[key]
		combined, err := mergeGroup(group, opts)
		if err != nil {
			return nil, err
		}
		merged = append(merged, combined...)
	}

	for _, m := range merged {
		metrics.RecordMergedChannels(len(m.Channels))
	}
	return append(passthrough, merged...), nil
}

func groupKey(s *script.Script) string {
	if s.File != nil {
		return s.File.GroupKey()
	}
	return "[unnamed]"
}

func mergeGroup(group []*script.Script, opts MergeOptions) ([]*script.Script, error) {
	usedChannels := map[script.Channel]bool{}
	for _, s := range group {
		if s.Channel == "" {
			continue
		}
		if usedChannels[s.Channel] {
			return nil, ErrDuplicateChannel
		}
		usedChannels[s.Channel] = true
	}

	if len(group) == 1 {
		only := group[0]
		if only.Channel == "" {
			return []*script.Script{only}, nil
		}
		if !opts.CombineSingleSecondaryChannel {
			return []*script.Script{only}, nil
		}
		return []*script.Script{wrapSingleSecondary(only)}, nil
	}

	var primary *script.Script
	var secondaries []*script.Script
	for _, s := range group {
		if s.Channel == "" {
			primary = s
		} else {
			secondaries = append(secondaries, s)
		}
	}

	if primary == nil {
		if !opts.AllowMissingActions {
			return nil, ErrNoPrimary
		}
		primary = script.New()
	}

	merged := primary.Clone()
	merged.Channels = make(map[script.Channel]*script.Script, len(secondaries))
	var mergedPaths []string
	if primary.File != nil {
		mergedPaths = append(mergedPaths, primary.File.Path())
	}
	for _, sec := range secondaries {
		child := sec.Clone()
		child.Parent = merged
		merged.Channels[child.Channel] = child
		if sec.File != nil {
			mergedPaths = append(mergedPaths, sec.File.Path())
		}
	}
	if len(mergedPaths) > 0 {
		ref := baseFileRef(merged, group)
		ref.MergedFiles = mergedPaths
		merged.File = &ref
	}

	return []*script.Script{merged}, nil
}

func wrapSingleSecondary(only *script.Script) *script.Script {
	parent := script.New()
	parent.Metadata = only.Metadata.Clone()
	child := only.Clone()
	child.Parent = parent
	parent.Channels[child.Channel] = child
	if only.File != nil {
		ref := *only.File
		ref.Channel = ""
		ref.MergedFiles = []string{only.File.Path()}
		parent.File = &ref
	}
	return parent
}

func baseFileRef(merged *script.Script, group []*script.Script) script.FileRef {
	for _, s := range group {
		if s.File != nil && s.Channel == "" {
			ref := *s.File
			return ref
		}
	}
	for _, s := range group {
		if s.File != nil {
			ref := *s.File
			ref.Channel = ""
			return ref
		}
	}
	return script.FileRef{}
}
