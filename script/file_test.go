package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFileRefPlainFile(t *testing.T) {
	ref := ParseFileRef("movie.funscript")
	assert.Equal(t, "", ref.Dir)
	assert.Equal(t, "movie", ref.Title)
	assert.Equal(t, Channel(""), ref.Channel)
}

func TestParseFileRefWithChannelSuffix(t *testing.T) {
	ref := ParseFileRef("/videos/movie.pitch.funscript")
	assert.Equal(t, "/videos/", ref.Dir)
	assert.Equal(t, "movie", ref.Title)
	assert.Equal(t, ChannelPitch, ref.Channel)
}

func TestParseFileRefUnrecognizedSuffixStaysInTitle(t *testing.T) {
	ref := ParseFileRef("movie.intense.funscript")
	assert.Equal(t, "movie.intense", ref.Title)
	assert.Equal(t, Channel(""), ref.Channel)
}

func TestFileRefPathReconstructsOriginal(t *testing.T) {
	ref := FileRef{Dir: "/videos/", Title: "movie", Channel: ChannelPitch}
	assert.Equal(t, "/videos/movie.pitch.funscript", ref.Path())

	plain := FileRef{Title: "movie"}
	assert.Equal(t, "movie.funscript", plain.Path())
}

func TestFileRefGroupKeyIgnoresChannel(t *testing.T) {
	withChannel := FileRef{Dir: "/videos/", Title: "movie", Channel: ChannelPitch}
	withoutChannel := FileRef{Dir: "/videos/", Title: "movie"}
	assert.Equal(t, withoutChannel.GroupKey(), withChannel.GroupKey())
}

func TestParseFileRefRoundTripsThroughPath(t *testing.T) {
	original := "/a/b/movie.roll.funscript"
	ref := ParseFileRef(original)
	assert.Equal(t, original, ref.Path())
}
