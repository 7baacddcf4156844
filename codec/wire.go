package codec

import "encoding/json"

// wireAction is the {at, pos} pair as it appears on the wire.
type wireAction struct {
	At  float64 `json:"at"`
	Pos float64 `json:"pos"`
}

type wireChapter struct {
	Name      string `json:"name,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

type wireBookmark struct {
	Name string `json:"name,omitempty"`
	Time string `json:"time,omitempty"`
}

type wireMetadata struct {
	Title        string         `json:"title,omitempty"`
	Creator      string         `json:"creator,omitempty"`
	Description  string         `json:"description,omitempty"`
	License      string         `json:"license,omitempty"`
	Notes        string         `json:"notes,omitempty"`
	Performers   []string       `json:"performers,omitempty"`
	TopicURL     string         `json:"topic_url,omitempty"`
	ScriptURL    string         `json:"script_url,omitempty"`
	VideoURL     string         `json:"video_url,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	Type         string         `json:"type,omitempty"`
	Duration     *float64       `json:"duration,omitempty"`
	DurationTime string         `json:"durationTime,omitempty"`
	Chapters     []wireChapter  `json:"chapters,omitempty"`
	Bookmarks    []wireBookmark `json:"bookmarks,omitempty"`
}

// wireAxis is a v1.1 axes[] entry: a nested document carrying only the
// fields that differ from its parent, plus an axis id.
type wireAxis struct {
	ID      json.RawMessage `json:"id,omitempty"`
	Actions []wireAction    `json:"actions,omitempty"`

	Metadata *wireMetadata `json:"metadata,omitempty"`
	Inverted *bool         `json:"inverted,omitempty"`
	Range    *int          `json:"range,omitempty"`
}

// wireFunscript is the top-level document shape shared by v1.0/1.1/2.0.
type wireFunscript struct {
	Version  string                  `json:"version,omitempty"`
	ID       json.RawMessage         `json:"id,omitempty"`
	Channel  string                  `json:"channel,omitempty"`
	Actions  []wireAction            `json:"actions,omitempty"`
	Axes     []wireAxis              `json:"axes,omitempty"`
	Channels map[string]wireFunscript `json:"channels,omitempty"`
	Metadata *wireMetadata           `json:"metadata,omitempty"`
	Inverted bool                    `json:"inverted,omitempty"`
	Range    int                     `json:"range,omitempty"`
}

// DetectVersion inspects a raw funscript document and reports which wire
// version it is shaped as, without fully decoding it.
func DetectVersion(data []byte) (string, error) {
	var probe struct {
		Channels map[string]json.RawMessage `json:"channels"`
		Axes     []json.RawMessage          `json:"axes"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", ErrMalformedJSON
	}
	switch {
	case len(probe.Channels) > 0:
		return "2.0", nil
	case len(probe.Axes) > 0:
		return "1.1", nil
	default:
		return "1.0", nil
	}
}
