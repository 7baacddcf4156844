package script

// Axis identifies a motion degree of freedom. Legacy funscripts carry the
// axis as a numeric id 0..6; modern ones use the short label (L0, R2, ...)
// or the channel name (stroke, pitch, ...).
type Axis string

const (
	AxisL0 Axis = "L0" // stroke
	AxisL1 Axis = "L1" // surge
	AxisL2 Axis = "L2" // sway
	AxisR0 Axis = "R0" // twist
	AxisR1 Axis = "R1" // roll
	AxisR2 Axis = "R2" // pitch
	AxisA1 Axis = "A1" // suck
)

// Channel is the human-readable name for an axis, used as the key in v2.0
// "channels" maps and as the File.Channel suffix.
type Channel string

const (
	ChannelStroke Channel = "stroke"
	ChannelSurge  Channel = "surge"
	ChannelSway   Channel = "sway"
	ChannelTwist  Channel = "twist"
	ChannelRoll   Channel = "roll"
	ChannelPitch  Channel = "pitch"
	ChannelSuck   Channel = "suck"
)

// axisPair mirrors funlib_py/types.py's axisPairs: the fixed ordering used
// for legacy numeric ids, channel ordering, and tie-breaking.
type axisPair struct {
	Axis    Axis
	Channel Channel
}

// LegacyAxisOrder is the fixed axis sequence legacy numeric ids (0..6) map
// onto, and the ordering channels follow when no tie-break is needed.
var LegacyAxisOrder = []axisPair{
	{AxisL0, ChannelStroke},
	{AxisL1, ChannelSurge},
	{AxisL2, ChannelSway},
	{AxisR0, ChannelTwist},
	{AxisR1, ChannelRoll},
	{AxisR2, ChannelPitch},
	{AxisA1, ChannelSuck},
}

var (
	axisToChannel = map[Axis]Channel{}
	channelToAxis = map[Channel]Axis{}
	channelOrder  = map[Channel]int{}
)

func init() {
	for i, p := range LegacyAxisOrder {
		axisToChannel[p.Axis] = p.Channel
		channelToAxis[p.Channel] = p.Axis
		channelOrder[p.Channel] = i
	}
}

// ChannelForAxis maps an axis label (including legacy numeric strings "0".."6")
// to its channel name. ok is false for an unrecognized axis.
func ChannelForAxis(axisLike string) (Channel, bool) {
	if idx, err := legacyIndex(axisLike); err == nil {
		return LegacyAxisOrder[idx].Channel, true
	}
	if ch, ok := channelToAxis[Channel(axisLike)]; ok {
		return Channel(axisLike), ok && ch != ""
	}
	if ch, ok := axisToChannel[Axis(axisLike)]; ok {
		return ch, true
	}
	return "", false
}

// AxisForChannel maps a channel name to its short axis label (e.g.
// "pitch" -> "R2"). ok is false for an unrecognized channel.
func AxisForChannel(ch Channel) (Axis, bool) {
	axis, ok := channelToAxis[ch]
	return axis, ok
}

// legacyIndex parses a single-digit legacy numeric axis id ("0".."6").
func legacyIndex(s string) (int, error) {
	if len(s) != 1 || s[0] < '0' || s[0] > '6' {
		return 0, errNotLegacy
	}
	return int(s[0] - '0'), nil
}

// ChannelOrder reports the fixed ordering index for a channel name, and
// whether it is a recognized channel at all. Unrecognized channels sort
// after all recognized ones, lexicographically among themselves.
func ChannelOrder(ch Channel) (int, bool) {
	idx, ok := channelOrder[ch]
	return idx, ok
}

// CompareChannels orders two channel names per the fixed axis sequence,
// falling back to lexicographic order for unrecognized names.
func CompareChannels(a, b Channel) int {
	ai, aok := ChannelOrder(a)
	bi, bok := ChannelOrder(b)
	switch {
	case aok && bok:
		return ai - bi
	case aok && !bok:
		return -1
	case !aok && bok:
		return 1
	case a == b:
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}
