package stream

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/tween"
	"github.com/matt-g-everett/ledtween/util"
)

const falloffLength = 64

// Strip is a tween target that renders an LED strip. Its props are:
//
//	colour      hex colour; empty paints the gradient instead
//	brightness  0 to 1
//	hue         degrees added to every pixel's hue
//	position    centre of the lit band, 0 to 1 along the strip
//	width       band width as a fraction of the strip; 0 lights it all
//	offset      shifts the gradient along the strip, 0 to 1 per cycle
//	twinkle     fraction of pixels sparkling on top, 0 to 1
type Strip struct {
	pixels   int
	props    tween.Props
	colour   colorful.Color
	gradient GradientTable
	falloff  []float64
	twinkle  *twinkle
}

// NewStrip creates a dark strip of n pixels painted with gradient.
func NewStrip(n int, gradient GradientTable) *Strip {
	if gradient == nil {
		gradient = Rainbow
	}
	s := &Strip{
		pixels:   n,
		gradient: gradient,
		falloff:  util.GenerateLut(falloffLength, nil),
		twinkle:  newTwinkle(n, rand.Int63()),
		props: tween.Props{
			"colour":     tween.String(""),
			"brightness": tween.Number(0),
			"hue":        tween.Number(0),
			"position":   tween.Number(0.5),
			"width":      tween.Number(0),
			"offset":     tween.Number(0),
			"twinkle":    tween.Number(0),
		},
	}
	return s
}

func (s *Strip) Get(prop string) (tween.Value, bool) {
	v, ok := s.props[prop]
	return v, ok
}

func (s *Strip) Set(prop string, v tween.Value) {
	if prop == "colour" {
		str, _ := v.Str()
		c, err := colorful.Hex(str)
		if err != nil {
			str = ""
		}
		s.colour = c
		v = tween.String(str)
	}
	s.props[prop] = v
}

func (s *Strip) number(prop string) float64 {
	f, _ := s.props[prop].Float()
	return f
}

// CalculateFrame renders the strip's current props.
func (s *Strip) CalculateFrame() *Frame {
	f := NewFrame(s.pixels)
	defer s.twinkle.apply(f, s.number("twinkle"))
	brightness := math.Max(0, math.Min(1, s.number("brightness")))
	if brightness == 0 {
		return f
	}
	hue := s.number("hue")
	position := s.number("position")
	width := s.number("width")
	offset := s.number("offset")
	str, _ := s.props["colour"].Str()
	solid := str != ""

	for i := range f.pixels {
		t := 0.5
		if s.pixels > 1 {
			t = float64(i) / float64(s.pixels-1)
		}

		level := brightness
		if width > 0 {
			band := (t-position)/width + 0.5
			if band < 0 || band > 1 {
				continue
			}
			level *= util.Sample(s.falloff, band)
		}

		var c colorful.Color
		if solid {
			c = s.colour
		} else {
			c = s.gradient.GetColor(t+offset, 1.0, 0.5)
		}
		if hue != 0 {
			h, ch, l := c.Hcl()
			c = colorful.Hcl(h+hue, ch, l)
		}
		f.pixels[i] = colorful.Color{R: c.R * level, G: c.G * level, B: c.B * level}.Clamped()
	}
	return f
}

func (s *Strip) String() string {
	return fmt.Sprintf("Strip(%d) %v", s.pixels, tween.NewObject(s.props))
}
