package plugin

import (
	"fmt"
	"math"

	"github.com/matt-g-everett/ledtween/tween"
)

const guideSamples = 16

// GuideSpec describes a motion path made of quadratic curves:
// [x0, y0, cx1, cy1, x1, y1, cx2, cy2, x2, y2, ...]. Start and End select
// the portion of the path to travel as fractions of its length; End
// defaults to 1. Orient also drives the "rotation" prop along the path.
type GuideSpec struct {
	Path   []float64
	Start  float64
	End    float64
	Orient bool
}

// Guide moves a target's "x" and "y" props along a GuideSpec named by the
// "guide" prop.
type Guide struct {
	tween.BasePlugin
}

type guidePath struct {
	spec    GuideSpec
	lengths []float64 // cumulative arc length per sample, per segment
	total   float64
}

// NewGuide creates the motion guide plugin.
func NewGuide() *Guide {
	return &Guide{}
}

func (*Guide) ID() string { return "guide" }

func (*Guide) Priority() float64 { return 0 }

func (g *Guide) Init(tw *tween.Tween, prop string, value tween.Value) tween.Result {
	if prop == "guide" {
		tw.AddPlugin(g)
	}
	return tween.Pass()
}

func (g *Guide) Step(tw *tween.Tween, step *tween.Step, props tween.Props) error {
	v, ok := props["guide"]
	if !ok {
		return nil
	}
	spec, err := guideSpec(v)
	if err != nil {
		return &tween.Error{Op: "guide.Step", Kind: tween.KindInvalidInput, Prop: "guide", Err: err}
	}
	path := newGuidePath(spec)
	put(stepData[*guidePath](tw, g.ID()), step, "guide", path)

	x, y, angle := path.at(1)
	tw.InjectProp("x", tween.Number(x))
	tw.InjectProp("y", tween.Number(y))
	if spec.Orient {
		tw.InjectProp("rotation", tween.Number(angle))
	}
	return nil
}

func (g *Guide) Change(tw *tween.Tween, step *tween.Step, prop string, value tween.Value, ratio float64, end bool) tween.Result {
	path, ok := lookup(stepData[*guidePath](tw, g.ID()), step, "guide")
	switch {
	case prop == "guide":
		if ok {
			x, y, angle := path.at(ratio)
			target := tw.Target()
			target.Set("x", tween.Number(x))
			target.Set("y", tween.Number(y))
			if path.spec.Orient {
				target.Set("rotation", tween.Number(angle))
			}
		}
		return tween.Ignore()
	case !ok:
		return tween.Pass()
	case prop == "x", prop == "y", prop == "rotation" && path.spec.Orient:
		return tween.Ignore()
	}
	return tween.Pass()
}

func guideSpec(v tween.Value) (GuideSpec, error) {
	var spec GuideSpec
	switch s := v.Any().(type) {
	case GuideSpec:
		spec = s
	case *GuideSpec:
		if s == nil {
			return spec, fmt.Errorf("%w: nil guide", tween.ErrMalformedPath)
		}
		spec = *s
	default:
		return spec, fmt.Errorf("%w: guide is %s, not a GuideSpec", tween.ErrMalformedPath, v.Kind())
	}
	n := len(spec.Path)
	if n < 6 || (n-2)%4 != 0 {
		return spec, fmt.Errorf("%w: %d coordinates", tween.ErrMalformedPath, n)
	}
	if spec.End == 0 {
		spec.End = 1
	}
	if spec.Start < 0 || spec.Start > 1 || spec.End < 0 || spec.End > 1 {
		return spec, fmt.Errorf("%w: range %g to %g outside [0, 1]", tween.ErrMalformedPath, spec.Start, spec.End)
	}
	return spec, nil
}

func newGuidePath(spec GuideSpec) *guidePath {
	segments := (len(spec.Path) - 2) / 4
	p := &guidePath{spec: spec, lengths: make([]float64, 0, segments*guideSamples)}
	for s := 0; s < segments; s++ {
		px, py := segmentPoint(spec.Path, s, 0)
		for i := 1; i <= guideSamples; i++ {
			x, y := segmentPoint(spec.Path, s, float64(i)/guideSamples)
			p.total += math.Hypot(x-px, y-py)
			p.lengths = append(p.lengths, p.total)
			px, py = x, y
		}
	}
	return p
}

// at returns the position and heading in degrees at ratio of the way from
// Start to End.
func (p *guidePath) at(ratio float64) (x, y, angle float64) {
	frac := p.spec.Start + (p.spec.End-p.spec.Start)*ratio
	frac = math.Max(0, math.Min(1, frac))
	dist := frac * p.total

	i := 0
	for i < len(p.lengths)-1 && p.lengths[i] < dist {
		i++
	}
	prev := 0.0
	if i > 0 {
		prev = p.lengths[i-1]
	}
	local := 1.0
	if span := p.lengths[i] - prev; span > 0 {
		local = (dist - prev) / span
	}
	seg := i / guideSamples
	t := (float64(i%guideSamples) + local) / guideSamples

	x, y = segmentPoint(p.spec.Path, seg, t)
	dx, dy := segmentTangent(p.spec.Path, seg, t)
	angle = math.Atan2(dy, dx) * 180 / math.Pi
	return x, y, angle
}

func segmentPoint(path []float64, seg int, t float64) (float64, float64) {
	o := seg * 4
	x0, y0, cx, cy, x1, y1 := path[o], path[o+1], path[o+2], path[o+3], path[o+4], path[o+5]
	u := 1 - t
	return u*u*x0 + 2*u*t*cx + t*t*x1, u*u*y0 + 2*u*t*cy + t*t*y1
}

func segmentTangent(path []float64, seg int, t float64) (float64, float64) {
	o := seg * 4
	x0, y0, cx, cy, x1, y1 := path[o], path[o+1], path[o+2], path[o+3], path[o+4], path[o+5]
	u := 1 - t
	return 2*u*(cx-x0) + 2*t*(x1-cx), 2*u*(cy-y0) + 2*t*(y1-cy)
}
