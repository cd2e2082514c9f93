package plugin

import (
	"strconv"
	"strings"

	"github.com/matt-g-everett/ledtween/tween"
)

// Relative resolves "+=N" and "-=N" strings against the value at the start
// of the step.
type Relative struct {
	tween.BasePlugin
}

// NewRelative creates the relative value plugin.
func NewRelative() *Relative {
	return &Relative{}
}

func (*Relative) ID() string { return "relative" }

func (*Relative) Priority() float64 { return 100 }

func (r *Relative) Init(tw *tween.Tween, prop string, value tween.Value) tween.Result {
	tw.AddPlugin(r)
	return tween.Pass()
}

func (*Relative) Step(tw *tween.Tween, step *tween.Step, props tween.Props) error {
	for name, v := range props {
		delta, ok := parseRelative(v)
		if !ok {
			continue
		}
		base, ok := step.Prev().Props[name].Float()
		if !ok {
			continue
		}
		resolved := tween.Number(base + delta)
		step.Props[name] = resolved
		props[name] = resolved
	}
	return nil
}

func parseRelative(v tween.Value) (float64, bool) {
	s, ok := v.Str()
	if !ok || len(s) < 3 || s[1] != '=' {
		return 0, false
	}
	sign := 1.0
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s[2:]), 64)
	if err != nil {
		return 0, false
	}
	return sign * f, true
}
