package script

import "errors"

var errNotLegacy = errors.New("not a legacy numeric axis id")

// ErrUnknownAxis names an axis identifier that does not resolve to a known
// channel. ChannelForAxis reports that case through its bool result rather
// than returning this error.
var ErrUnknownAxis = errors.New("funscript: unknown axis")
