package plugin

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/matt-g-everett/ledtween/tween"
)

var unitPattern = regexp.MustCompile(`^\s*(-?(?:\d+\.?\d*|\.\d+))([a-zA-Z%]*)\s*$`)

// Suffix interpolates numbers carrying a unit suffix such as "10px" or
// "50%". Both ends of a step must use the same unit; a step that mixes
// units is recorded as a mismatch and jumps between its end values.
type Suffix struct {
	tween.BasePlugin
}

type unitPair struct {
	from, to float64
	unit     string
}

// NewSuffix creates the unit suffix plugin.
func NewSuffix() *Suffix {
	return &Suffix{}
}

func (*Suffix) ID() string { return "suffix" }

func (*Suffix) Priority() float64 { return -10 }

func (s *Suffix) Init(tw *tween.Tween, prop string, value tween.Value) tween.Result {
	if _, _, ok := parseUnit(value); ok {
		tw.AddPlugin(s)
	}
	return tween.Pass()
}

func (s *Suffix) Step(tw *tween.Tween, step *tween.Step, props tween.Props) error {
	pairs := stepData[unitPair](tw, s.ID())
	for name, v := range props {
		to, toUnit, ok := parseUnit(v)
		if !ok {
			continue
		}
		prev := step.Prev().Props[name]
		from, fromUnit, ok := parseUnit(prev)
		if !ok {
			continue
		}
		if fromUnit != toUnit {
			tw.RecordMismatch(step, name, fmt.Errorf("%w: %v to %v", tween.ErrUnitMismatch, prev, v))
			continue
		}
		put(pairs, step, name, unitPair{from: from, to: to, unit: toUnit})
	}
	return nil
}

func (s *Suffix) Change(tw *tween.Tween, step *tween.Step, prop string, value tween.Value, ratio float64, end bool) tween.Result {
	p, ok := lookup(stepData[unitPair](tw, s.ID()), step, prop)
	if !ok {
		return tween.Pass()
	}
	v := p.to
	if ratio < 1 {
		v = p.from + (p.to-p.from)*ratio
	}
	return tween.Use(tween.String(strconv.FormatFloat(v, 'f', -1, 64) + p.unit))
}

// parseUnit splits a string like "12.5px" into its number and unit.
func parseUnit(v tween.Value) (float64, string, bool) {
	s, ok := v.Str()
	if !ok {
		return 0, "", false
	}
	m := unitPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, "", false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	return f, m[2], true
}
