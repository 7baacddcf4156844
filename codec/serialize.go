package codec

import (
	"time"

	"github.com/stashtools/funscript/metrics"
	"github.com/stashtools/funscript/script"
	"github.com/stashtools/funscript/timeutil"
)

// Target is a serialization target version.
type Target string

const (
	Target10     Target = "1.0"
	Target10List Target = "1.0-list"
	Target11     Target = "1.1"
	Target20     Target = "2.0"
)

// SerializeOptions controls the shape of the emitted document.
type SerializeOptions struct {
	Target Target

	// EmitChannelOnV10 includes the "channel" field on a v1.0 document even
	// though v1.0 is conventionally primary-only. Orchestrators set this
	// when writing out a single secondary channel as its own file.
	EmitChannelOnV10 bool
}

// Serialize renders s as the wire document(s) for opts.Target. For
// Target10List the result is a JSON array; every other target is a single
// JSON object.
func Serialize(s *script.Script, opts SerializeOptions) (out []byte, err error) {
	start := time.Now()
	defer func() { metrics.Observe("serialize", start, err) }()

	if opts.Target == Target10List {
		docs := toList(s)
		return marshalCompact(docs)
	}

	doc := toWireDocument(s, opts)
	return marshalCompact(doc)
}

func toList(s *script.Script) []wireFunscript {
	all := s.AllScripts()
	docs := make([]wireFunscript, len(all))
	for i, e := range all {
		opts := SerializeOptions{Target: Target10, EmitChannelOnV10: e.IsChannel()}
		docs[i] = buildV10(e, opts, e.Metadata)
	}
	return docs
}

func toWireDocument(s *script.Script, opts SerializeOptions) wireFunscript {
	switch opts.Target {
	case Target11:
		return buildV11(s, opts)
	case Target20:
		return buildV20(s, opts)
	default:
		return buildV10(s, opts, s.Metadata)
	}
}

func buildV10(s *script.Script, opts SerializeOptions, metadata script.Metadata) wireFunscript {
	doc := wireFunscript{
		Version: "1.0",
		Actions: actionsToWire(s.Actions),
	}
	if opts.EmitChannelOnV10 && s.Channel != "" {
		doc.Channel = string(s.Channel)
	}
	if w := metadataToWire(metadata); w != nil {
		doc.Metadata = w
	}
	return doc
}

func buildV11(s *script.Script, opts SerializeOptions) wireFunscript {
	doc := wireFunscript{
		Version: "1.1",
		Actions: actionsToWire(s.Actions),
	}
	if w := metadataToWire(s.Metadata); w != nil {
		doc.Metadata = w
	}
	for _, ch := range s.SortedChannels() {
		axis := wireAxis{
			ID:      axisIDJSON(ch.Channel),
			Actions: actionsToWire(ch.Actions),
		}
		if !ch.Metadata.EqualModuloDuration(s.Metadata) {
			axis.Metadata = metadataToWire(ch.Metadata)
		}
		doc.Axes = append(doc.Axes, axis)
	}
	return doc
}

func buildV20(s *script.Script, opts SerializeOptions) wireFunscript {
	doc := wireFunscript{
		Version: "2.0",
		Actions: actionsToWire(s.Actions),
	}
	if w := metadataToWire(s.Metadata); w != nil {
		doc.Metadata = w
	}
	if len(s.Channels) > 0 {
		doc.Channels = make(map[string]wireFunscript, len(s.Channels))
		for _, ch := range s.SortedChannels() {
			sub := wireFunscript{Actions: actionsToWire(ch.Actions)}
			if !ch.Metadata.EqualModuloDuration(s.Metadata) {
				sub.Metadata = metadataToWire(ch.Metadata)
			}
			doc.Channels[string(ch.Channel)] = sub
		}
	}
	return doc
}

func axisIDJSON(ch script.Channel) []byte {
	return []byte(`"` + string(ch) + `"`)
}

func actionsToWire(in []script.Action) []wireAction {
	out := make([]wireAction, len(in))
	for i, a := range in {
		out[i] = wireAction{At: roundTo(float64(a.At), 1), Pos: roundTo(a.Pos, 1)}
	}
	return out
}

func roundTo(v float64, decimals int) float64 {
	mult := 1.0
	for i := 0; i < decimals; i++ {
		mult *= 10
	}
	return float64(int64(v*mult+sign05(v))) / mult
}

func sign05(v float64) float64 {
	if v < 0 {
		return -0.5
	}
	return 0.5
}

// metadataToWire returns nil when every field is at its schema default, so
// callers can omit an empty "metadata" key entirely.
func metadataToWire(m script.Metadata) *wireMetadata {
	w := wireMetadata{
		Title:       m.Title,
		Creator:     m.Creator,
		Description: m.Description,
		License:     m.License,
		Notes:       m.Notes,
		Performers:  m.Performers,
		TopicURL:    m.TopicURL,
		ScriptURL:   m.ScriptURL,
		VideoURL:    m.VideoURL,
		Tags:        m.Tags,
		Type:        m.Type,
	}
	if m.Duration != 0 {
		d := roundTo(m.Duration, 3)
		w.Duration = &d
		w.DurationTime = timeutil.MsToTimeSpan(int64(m.Duration * 1000))
	}
	for _, c := range m.Chapters {
		w.Chapters = append(w.Chapters, wireChapter{Name: c.Name, StartTime: c.StartTime, EndTime: c.EndTime})
	}
	for _, b := range m.Bookmarks {
		w.Bookmarks = append(w.Bookmarks, wireBookmark{Name: b.Name, Time: b.Time})
	}

	if w.Title == "" && w.Creator == "" && w.Description == "" && w.License == "" && w.Notes == "" &&
		len(w.Performers) == 0 && w.TopicURL == "" && w.ScriptURL == "" && w.VideoURL == "" &&
		len(w.Tags) == 0 && w.Type == "" && w.Duration == nil && len(w.Chapters) == 0 && len(w.Bookmarks) == 0 {
		return nil
	}
	return &w
}
