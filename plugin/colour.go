package plugin

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/tween"
)

type blendFunc func(c1, c2 colorful.Color, t float64) colorful.Color

var blendSpaces = map[string]blendFunc{
	"rgb": colorful.Color.BlendRgb,
	"hcl": colorful.Color.BlendHcl,
	"lab": colorful.Color.BlendLab,
	"hsv": colorful.Color.BlendHsv,
	"luv": colorful.Color.BlendLuv,
}

// Colour interpolates hex colour strings such as "#ff8800". Colours are
// blended in HCL space unless installed with {"space": "rgb"} or another
// supported space.
type Colour struct {
	tween.BasePlugin
	blend blendFunc
}

type colourPair [2]colorful.Color

// NewColour creates the colour plugin.
func NewColour() *Colour {
	return &Colour{blend: colorful.Color.BlendHcl}
}

func (*Colour) ID() string { return "colour" }

func (*Colour) Priority() float64 { return 0 }

func (c *Colour) Install(props tween.Props) {
	if s, ok := props["space"].Str(); ok {
		if fn, ok := blendSpaces[s]; ok {
			c.blend = fn
		}
	}
}

func (c *Colour) Init(tw *tween.Tween, prop string, value tween.Value) tween.Result {
	if _, ok := parseColour(value); ok {
		tw.AddPlugin(c)
	}
	return tween.Pass()
}

func (c *Colour) Step(tw *tween.Tween, step *tween.Step, props tween.Props) error {
	pairs := stepData[colourPair](tw, c.ID())
	for name, v := range props {
		to, ok := parseColour(v)
		if !ok {
			continue
		}
		from, ok := parseColour(step.Prev().Props[name])
		if !ok {
			continue
		}
		put(pairs, step, name, colourPair{from, to})
	}
	return nil
}

func (c *Colour) Change(tw *tween.Tween, step *tween.Step, prop string, value tween.Value, ratio float64, end bool) tween.Result {
	pair, ok := lookup(stepData[colourPair](tw, c.ID()), step, prop)
	if !ok {
		return tween.Pass()
	}
	if ratio >= 1 {
		return tween.Use(tween.String(pair[1].Hex()))
	}
	return tween.Use(tween.String(c.blend(pair[0], pair[1], ratio).Clamped().Hex()))
}

func parseColour(v tween.Value) (colorful.Color, bool) {
	s, ok := v.Str()
	if !ok || len(s) == 0 || s[0] != '#' {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}
