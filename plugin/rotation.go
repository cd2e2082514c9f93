package plugin

import (
	"math"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/matt-g-everett/ledtween/tween"
)

// Rotation rewrites the end of each step for the configured angle props so
// the tween turns the short way round. Angles are in degrees.
type Rotation struct {
	tween.BasePlugin
	props mapset.Set[string]
}

// NewRotation creates a rotation plugin for the "rotation" and "hue" props.
func NewRotation() *Rotation {
	return &Rotation{props: mapset.NewThreadUnsafeSet("rotation", "hue")}
}

func (*Rotation) ID() string { return "rotation" }

func (*Rotation) Priority() float64 { return 50 }

// Install replaces the handled props with every key set to true in props.
func (r *Rotation) Install(props tween.Props) {
	if len(props) == 0 {
		return
	}
	r.props.Clear()
	for name, v := range props {
		if on, ok := v.Truth(); ok && on {
			r.props.Add(name)
		}
	}
}

func (r *Rotation) Init(tw *tween.Tween, prop string, value tween.Value) tween.Result {
	if r.props.Contains(prop) {
		tw.AddPlugin(r)
	}
	return tween.Pass()
}

func (r *Rotation) Step(tw *tween.Tween, step *tween.Step, props tween.Props) error {
	for name, v := range props {
		if !r.props.Contains(name) {
			continue
		}
		end, ok := v.Float()
		if !ok {
			continue
		}
		start, ok := step.Prev().Props[name].Float()
		if !ok {
			continue
		}
		adjusted := tween.Number(start + shortestTurn(end-start))
		step.Props[name] = adjusted
		props[name] = adjusted
	}
	return nil
}

// shortestTurn folds delta into [-180, 180].
func shortestTurn(delta float64) float64 {
	delta = math.Mod(delta, 360)
	switch {
	case delta > 180:
		delta -= 360
	case delta < -180:
		delta += 360
	}
	return delta
}
