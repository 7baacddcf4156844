package multiaxis

import (
	"github.com/stashtools/funscript/codec"
	"github.com/stashtools/funscript/script"
)

// ConvertVersion re-serializes data (any parseable wire version) as
// target, as a composition of parse then serialize. It does not merge or
// unmerge channels.
func ConvertVersion(data []byte, target codec.Target, parseOpts codec.ParseOptions) ([]byte, error) {
	s, err := codec.Parse(data, parseOpts)
	if err != nil {
		return nil, err
	}
	return codec.Serialize(s, codec.SerializeOptions{Target: target})
}

// ConvertScript is the in-memory equivalent of ConvertVersion, useful when
// the caller already holds a *script.Script rather than raw bytes.
func ConvertScript(s *script.Script, target codec.Target) ([]byte, error) {
	return codec.Serialize(s, codec.SerializeOptions{Target: target})
}
