package presets

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/stashtools/funscript/multiaxis"
)

type mergeOptionsFile struct {
	AllowMissingActions           *bool `yaml:"allowMissingActions,omitempty"`
	CombineSingleSecondaryChannel *bool `yaml:"combineSingleSecondaryChannel,omitempty"`
}

// LoadMergeOptions reads a YAML override document at path and applies it
// on top of multiaxis.Default(). An empty file yields the defaults
// unchanged; a missing file or one with an unsupported extension is an
// error.
func LoadMergeOptions(path string) (multiaxis.MergeOptions, error) {
	opts := multiaxis.Default()

	data, err := readOverrideFile(path)
	if err != nil {
		return opts, err
	}
	if len(data) == 0 {
		return opts, nil
	}

	var file mergeOptionsFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return opts, nil
		}
		return opts, fmt.Errorf("presets: parse %s: %w", path, err)
	}

	if file.AllowMissingActions != nil {
		opts.AllowMissingActions = *file.AllowMissingActions
	}
	if file.CombineSingleSecondaryChannel != nil {
		opts.CombineSingleSecondaryChannel = *file.CombineSingleSecondaryChannel
	}
	return opts, nil
}
