// Package codec parses and serializes the three funscript wire formats
// (single-axis, axes-array, channels-map) into and out of script.Script.
package codec

import "errors"

var (
	// ErrMalformedJSON is returned when the input does not decode as a
	// funscript JSON object, including an actions entry of the wrong type.
	// An actions entry missing at or pos decodes with that field as 0.
	ErrMalformedJSON = errors.New("codec: malformed funscript JSON")

	// ErrBadActions is exported for callers classifying action errors;
	// Parse itself reports undecodable actions as ErrMalformedJSON.
	ErrBadActions = errors.New("codec: bad actions array")

	// ErrUnknownAxis is returned when an axes entry's id does not match a
	// known axis label, channel name, or legacy numeric id, and the caller
	// has not set ParseOptions.AllowMissingActions.
	ErrUnknownAxis = errors.New("codec: unknown axis id")

	// ErrDuplicateChannel is returned when two axes/channels entries map to
	// the same channel.
	ErrDuplicateChannel = errors.New("codec: duplicate channel")

	// ErrBothAxesAndChannels is returned when a document carries both a
	// non-empty axes array and a non-empty channels map.
	ErrBothAxesAndChannels = errors.New("codec: both axes and channels present")
)
