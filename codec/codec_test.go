package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashtools/funscript/script"
)

func TestDetectVersion(t *testing.T) {
	cases := []struct {
		name string
		json string
		want string
	}{
		{"plain", `{"actions":[]}`, "1.0"},
		{"axes", `{"axes":[{"id":"L0","actions":[]}]}`, "1.1"},
		{"channels", `{"channels":{"pitch":{"actions":[]}}}`, "2.0"},
		{"empty axes ignored", `{"axes":[],"actions":[]}`, "1.0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectVersion([]byte(tc.json))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDetectVersionMalformed(t *testing.T) {
	_, err := DetectVersion([]byte("not json"))
	assert.ErrorIs(t, err, ErrMalformedJSON)
}

func TestParseSingleAxisRoundTrip(t *testing.T) {
	input := `{"version":"1.0","actions":[{"at":0,"pos":0},{"at":1000,"pos":100}]}`
	s, err := Parse([]byte(input), ParseOptions{})
	require.NoError(t, err)
	require.Len(t, s.Actions, 2)
	assert.Equal(t, int64(0), s.Actions[0].At)
	assert.Equal(t, int64(1000), s.Actions[1].At)
	assert.Empty(t, s.Channels)

	Normalize(s, NormalizeOptions{})
	assert.Equal(t, float64(1), s.Metadata.Duration)

	out, err := Serialize(s, SerializeOptions{Target: Target10})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"version":"1.0"`)
	assert.Contains(t, string(out), `"duration":1`)
}

func TestParseMultiAxisV11(t *testing.T) {
	input := `{
		"version":"1.1",
		"actions":[{"at":0,"pos":0},{"at":500,"pos":100}],
		"axes":[{"id":"R2","actions":[{"at":0,"pos":50},{"at":500,"pos":0}]}]
	}`
	s, err := Parse([]byte(input), ParseOptions{})
	require.NoError(t, err)
	require.Len(t, s.Channels, 1)
	ch, ok := s.Channels[script.ChannelPitch]
	require.True(t, ok)
	assert.Len(t, ch.Actions, 2)
	assert.Same(t, s, ch.Parent)
}

func TestParseUnknownAxisErrors(t *testing.T) {
	input := `{"axes":[{"id":"bogus","actions":[]}]}`
	_, err := Parse([]byte(input), ParseOptions{})
	assert.ErrorIs(t, err, ErrUnknownAxis)

	s, err := Parse([]byte(input), ParseOptions{AllowMissingActions: true})
	require.NoError(t, err)
	assert.Len(t, s.Channels, 1)
}

func TestParseRescalesMillisecondDurationToSeconds(t *testing.T) {
	input := `{"actions":[{"at":0,"pos":0},{"at":3000000,"pos":100}],"metadata":{"duration":7200}}`
	s, err := Parse([]byte(input), ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, 7.2, s.Metadata.Duration)
}

func TestParseLeavesPlausibleSecondsDurationAlone(t *testing.T) {
	input := `{"actions":[{"at":0,"pos":0},{"at":7200000,"pos":100}],"metadata":{"duration":7200}}`
	s, err := Parse([]byte(input), ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, float64(7200), s.Metadata.Duration)
}

func TestParseBothAxesAndChannelsErrors(t *testing.T) {
	input := `{"axes":[{"id":"L0","actions":[]}],"channels":{"pitch":{"actions":[]}}}`
	_, err := Parse([]byte(input), ParseOptions{})
	assert.ErrorIs(t, err, ErrBothAxesAndChannels)
}

func TestSerializeV20MergedExample(t *testing.T) {
	root := script.New()
	root.Actions = []script.Action{{At: 0, Pos: 0}, {At: 500, Pos: 100}}
	pitch := script.New()
	pitch.Channel = script.ChannelPitch
	pitch.Actions = []script.Action{{At: 0, Pos: 50}, {At: 500, Pos: 0}}
	pitch.Parent = root
	root.Channels[script.ChannelPitch] = pitch

	out, err := Serialize(root, SerializeOptions{Target: Target20})
	require.NoError(t, err)
	body := string(out)
	assert.Contains(t, body, `"version":"2.0"`)
	assert.Contains(t, body, `"pitch"`)
	assert.NotContains(t, body, `"axes"`)
}

func TestSerializeV10List(t *testing.T) {
	root := script.New()
	root.Actions = []script.Action{{At: 0, Pos: 0}}
	pitch := script.New()
	pitch.Channel = script.ChannelPitch
	pitch.Actions = []script.Action{{At: 0, Pos: 50}}
	pitch.Parent = root
	root.Channels[script.ChannelPitch] = pitch

	out, err := Serialize(root, SerializeOptions{Target: Target10List})
	require.NoError(t, err)
	assert.True(t, out[0] == '[')
}

func TestNormalizeDedupesKeepsLast(t *testing.T) {
	s := script.New()
	s.Actions = []script.Action{
		{At: 0, Pos: 0},
		{At: 100, Pos: 10},
		{At: 100, Pos: 20},
	}
	Normalize(s, NormalizeOptions{})
	require.Len(t, s.Actions, 2)
	assert.Equal(t, 20.0, s.Actions[1].Pos)
}

func TestNormalizeDropsNegativeAtExceptMostRecent(t *testing.T) {
	s := script.New()
	s.Actions = []script.Action{
		{At: -500, Pos: 10},
		{At: -100, Pos: 20},
		{At: 200, Pos: 30},
	}
	Normalize(s, NormalizeOptions{})
	require.Len(t, s.Actions, 2)
	assert.Equal(t, int64(0), s.Actions[0].At)
	assert.Equal(t, 20.0, s.Actions[0].Pos)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	s := script.New()
	s.Actions = []script.Action{{At: 0, Pos: 0}, {At: 1500, Pos: 100}}
	Normalize(s, NormalizeOptions{})
	first := append([]script.Action(nil), s.Actions...)
	firstDuration := s.Metadata.Duration

	Normalize(s, NormalizeOptions{})
	assert.Equal(t, first, s.Actions)
	assert.Equal(t, firstDuration, s.Metadata.Duration)
}

func TestFormatPacksActionColumns(t *testing.T) {
	root := script.New()
	root.Actions = []script.Action{{At: 0, Pos: 0}, {At: 1000, Pos: 100}}
	indented, err := MarshalIndented(toWireDocument(root, SerializeOptions{Target: Target10}))
	require.NoError(t, err)

	formatted := Format(indented, FormatOptions{})
	assert.Contains(t, string(formatted), `"at":    0`)
}
