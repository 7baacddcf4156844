package variant

import (
	"strings"
	"time"

	"github.com/stashtools/funscript/metrics"
	"github.com/stashtools/funscript/script"
)

// Variant is one named funscript alternative for a base video: the empty
// suffix is the "default" variant, any other exact suffix string (e.g.
// " (Intense)") names a distinct alternative cut.
type Variant struct {
	Suffix   string
	FileName string
}

// Plan is the result of classifying every "<base>*.funscript" file in a
// directory.
type Plan struct {
	Default  *Variant
	Variants []Variant
	Axes     map[script.Channel]string // channel -> filename
}

// Classify partitions fileNames (plain file names, no directory component)
// into a Plan for the given base (video file stem, without extension).
// Files not ending in ".funscript" or not starting with base are ignored.
// "<base>.max.funscript" files are intermediate merge outputs and are
// excluded entirely.
func Classify(base string, fileNames []string) (plan Plan, err error) {
	start := time.Now()
	defer func() { metrics.Observe("classify", start, err) }()

	if base == "" {
		return Plan{}, ErrEmptyBaseName
	}

	plan = Plan{Axes: map[script.Channel]string{}}

	for _, name := range fileNames {
		if !strings.HasSuffix(name, ".funscript") {
			continue
		}
		if !strings.HasPrefix(name, base) {
			continue
		}
		rest := name[len(base):]
		rest = strings.TrimSuffix(rest, ".funscript")
		if rest == ".max" {
			continue
		}

		if rest == "" {
			v := Variant{Suffix: "", FileName: name}
			if plan.Default == nil {
				plan.Default = &v
			}
			continue
		}

		if strings.HasPrefix(rest, ".") {
			axisLike := rest[1:]
			if ch, ok := script.ChannelForAxis(axisLike); ok {
				plan.Axes[ch] = name
			}
			// An unrecognized dotted segment after the base is ignored
			// rather than treated as a variant suffix.
			continue
		}

		v := Variant{Suffix: rest, FileName: name}
		plan.Variants = append(plan.Variants, v)
	}

	return plan, nil
}
