package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/stashtools/funscript/metrics"
	"github.com/stashtools/funscript/script"
	"github.com/stashtools/funscript/timeutil"
)

// ParseOptions controls tolerance of parse-time anomalies.
type ParseOptions struct {
	// AllowMissingActions lets an unresolvable axis id become a channel
	// named after its raw id text instead of failing the parse.
	AllowMissingActions bool
}

// Parse decodes a funscript document of any wire version into a Script.
func Parse(data []byte, opts ParseOptions) (result *script.Script, err error) {
	start := time.Now()
	defer func() { metrics.Observe("parse", start, err) }()

	version, err := DetectVersion(data)
	if err != nil {
		return nil, err
	}

	var doc wireFunscript
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if len(doc.Axes) > 0 && len(doc.Channels) > 0 {
		return nil, ErrBothAxesAndChannels
	}

	root := script.New()
	root.Actions = actionsFromWire(doc.Actions)
	if doc.Metadata != nil {
		root.Metadata = metadataFromWire(*doc.Metadata, lastActionAtMs(root.Actions))
	}

	switch version {
	case "1.1":
		seen := map[script.Channel]bool{}
		for _, axis := range doc.Axes {
			ch, err := resolveAxisID(axis.ID, opts.AllowMissingActions)
			if err != nil {
				return nil, err
			}
			if seen[ch] {
				return nil, ErrDuplicateChannel
			}
			seen[ch] = true

			child := script.New()
			child.Channel = ch
			child.Actions = actionsFromWire(axis.Actions)
			child.Metadata = root.Metadata.Clone()
			if axis.Metadata != nil {
				child.Metadata = metadataFromWire(*axis.Metadata, lastActionAtMs(child.Actions))
			}
			child.Parent = root
			root.Channels[ch] = child
		}
	case "2.0":
		seen := map[script.Channel]bool{}
		for name, sub := range doc.Channels {
			ch, err := resolveAxisID(json.RawMessage(fmt.Sprintf("%q", name)), opts.AllowMissingActions)
			if err != nil {
				return nil, err
			}
			if seen[ch] {
				return nil, ErrDuplicateChannel
			}
			seen[ch] = true

			child := script.New()
			child.Channel = ch
			child.Actions = actionsFromWire(sub.Actions)
			child.Metadata = root.Metadata.Clone()
			if sub.Metadata != nil {
				child.Metadata = metadataFromWire(*sub.Metadata, lastActionAtMs(child.Actions))
			}
			child.Parent = root
			root.Channels[ch] = child
		}
	}

	metrics.RecordParsedActions(len(root.Actions))
	return root, nil
}

func resolveAxisID(raw json.RawMessage, allowMissing bool) (script.Channel, error) {
	if len(raw) == 0 {
		if allowMissing {
			return script.ChannelStroke, nil
		}
		return "", ErrUnknownAxis
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if ch, ok := script.ChannelForAxis(asString); ok {
			return ch, nil
		}
		if allowMissing {
			return script.Channel(asString), nil
		}
		return "", fmt.Errorf("%w: %q", ErrUnknownAxis, asString)
	}

	var asNumber int
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		if ch, ok := script.ChannelForAxis(fmt.Sprintf("%d", asNumber)); ok {
			return ch, nil
		}
		if allowMissing {
			return script.Channel(fmt.Sprintf("%d", asNumber)), nil
		}
		return "", fmt.Errorf("%w: %d", ErrUnknownAxis, asNumber)
	}

	if allowMissing {
		return script.Channel(string(raw)), nil
	}
	return "", ErrUnknownAxis
}

func actionsFromWire(in []wireAction) []script.Action {
	out := make([]script.Action, len(in))
	for i, a := range in {
		out[i] = script.Action{At: int64(a.At), Pos: a.Pos}
	}
	return out
}

// lastActionAtMs returns the timestamp of the last action, the millisecond
// extent metadataFromWire compares a suspiciously large duration against.
func lastActionAtMs(actions []script.Action) int64 {
	if len(actions) == 0 {
		return 0
	}
	return actions[len(actions)-1].At
}

func metadataFromWire(in wireMetadata, fallbackParentActionsDurationMs int64) script.Metadata {
	m := script.Metadata{
		Title:       in.Title,
		Creator:     in.Creator,
		Description: in.Description,
		License:     in.License,
		Notes:       in.Notes,
		Performers:  append([]string(nil), in.Performers...),
		TopicURL:    in.TopicURL,
		ScriptURL:   in.ScriptURL,
		VideoURL:    in.VideoURL,
		Tags:        append([]string(nil), in.Tags...),
		Type:        in.Type,
	}
	if in.Duration != nil {
		m.Duration = *in.Duration
		// Some legacy writers emit duration in milliseconds; if it dwarfs a
		// plausible action-derived duration, rescale to seconds.
		if m.Duration > 3600 && fallbackParentActionsDurationMs > 0 &&
			float64(fallbackParentActionsDurationMs) < 500*m.Duration {
			m.Duration /= 1000
		}
	}
	for _, c := range in.Chapters {
		m.Chapters = append(m.Chapters, script.Chapter{Name: c.Name, StartTime: c.StartTime, EndTime: c.EndTime})
	}
	for _, b := range in.Bookmarks {
		m.Bookmarks = append(m.Bookmarks, script.Bookmark{Name: b.Name, Time: b.Time})
	}
	return m
}

// parseTimeSpanOrZero converts span to milliseconds, returning 0 instead of
// an error for a malformed timespan. Nothing in the package calls it.
func parseTimeSpanOrZero(span string) int64 {
	ms, err := timeutil.TimeSpanToMs(span)
	if err != nil {
		return 0
	}
	return ms
}
