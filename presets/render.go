package presets

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stashtools/funscript/svgrender"
)

// renderOptionsFile is the YAML shape of a RenderOptions override. Pointer
// fields distinguish "not set in the file" from "explicitly set to the
// type's zero value" (MergeLimit: 0 disables merging; ShowChapters: false
// is a real choice, not an absent key).
type renderOptionsFile struct {
	Width         *float64 `yaml:"width,omitempty"`
	Height        *float64 `yaml:"height,omitempty"`
	TitleHeight   *float64 `yaml:"titleHeight,omitempty"`
	TitleSpacing  *float64 `yaml:"titleSpacing,omitempty"`
	IconWidth     *float64 `yaml:"iconWidth,omitempty"`
	IconSpacing   *float64 `yaml:"iconSpacing,omitempty"`
	ChapterHeight *float64 `yaml:"chapterHeight,omitempty"`
	ShowChapters  *bool    `yaml:"showChapters,omitempty"`
	LineWidth     *float64 `yaml:"lineWidth,omitempty"`
	MergeLimit    *int64   `yaml:"mergeLimit,omitempty"`
	GraphOpacity  *float64 `yaml:"graphOpacity,omitempty"`
	TitleOpacity  *float64 `yaml:"titleOpacity,omitempty"`
	Halo                 *bool  `yaml:"halo,omitempty"`
	SolidTitleBackground *bool  `yaml:"solidTitleBackground,omitempty"`
	Normalize            *bool  `yaml:"normalize,omitempty"`
	TitleEllipsis        *bool  `yaml:"titleEllipsis,omitempty"`
	AllowTitleWrap       *bool  `yaml:"allowTitleWrap,omitempty"`
	Font                 string `yaml:"font,omitempty"`
	IconFont             string `yaml:"iconFont,omitempty"`
	DurationMs           *int64 `yaml:"durationMs,omitempty"`
}

// LoadRenderOptions reads a YAML override document at path and applies it
// on top of svgrender.Default(). An empty file yields the defaults
// unchanged; a missing file or one with an unsupported extension is an
// error.
func LoadRenderOptions(path string) (svgrender.RenderOptions, error) {
	opts := svgrender.Default()

	data, err := readOverrideFile(path)
	if err != nil {
		return opts, err
	}
	if len(data) == 0 {
		return opts, nil
	}

	var file renderOptionsFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return opts, nil
		}
		return opts, fmt.Errorf("presets: parse %s: %w", path, err)
	}

	applyRenderOverrides(&opts, file)
	return opts, nil
}

func applyRenderOverrides(dst *svgrender.RenderOptions, src renderOptionsFile) {
	if src.Width != nil {
		dst.Width = *src.Width
	}
	if src.Height != nil {
		dst.Height = *src.Height
	}
	if src.TitleHeight != nil {
		dst.TitleHeight = *src.TitleHeight
	}
	if src.TitleSpacing != nil {
		dst.TitleSpacing = *src.TitleSpacing
	}
	if src.IconWidth != nil {
		dst.IconWidth = *src.IconWidth
	}
	if src.IconSpacing != nil {
		dst.IconSpacing = *src.IconSpacing
	}
	if src.ChapterHeight != nil {
		dst.ChapterHeight = *src.ChapterHeight
	}
	if src.ShowChapters != nil {
		dst.ShowChapters = *src.ShowChapters
	}
	if src.LineWidth != nil {
		dst.LineWidth = *src.LineWidth
	}
	if src.MergeLimit != nil {
		dst.MergeLimit = *src.MergeLimit
	}
	if src.GraphOpacity != nil {
		dst.GraphOpacity = *src.GraphOpacity
	}
	if src.TitleOpacity != nil {
		dst.TitleOpacity = *src.TitleOpacity
	}
	if src.Halo != nil {
		dst.Halo = *src.Halo
	}
	if src.SolidTitleBackground != nil {
		dst.SolidTitleBackground = *src.SolidTitleBackground
	}
	if src.Normalize != nil {
		dst.Normalize = *src.Normalize
	}
	if src.TitleEllipsis != nil {
		dst.TitleEllipsis = *src.TitleEllipsis
	}
	if src.AllowTitleWrap != nil {
		dst.AllowTitleWrap = *src.AllowTitleWrap
	}
	if src.Font != "" {
		dst.Font = src.Font
	}
	if src.IconFont != "" {
		dst.IconFont = src.IconFont
	}
	if src.DurationMs != nil {
		dst.DurationMs = *src.DurationMs
	}
}

func readOverrideFile(path string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, ErrUnsupportedFormat
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("presets: read %s: %w", path, err)
	}
	return data, nil
}
