package stream

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

var sparkleColour, _ = colorful.Hex("#404040")

// twinkle picks a stable set of random pixels to sparkle over a strip.
// Raising the fraction adds particles; lowering it drops the newest ones.
type twinkle struct {
	rnd       *rand.Rand
	order     []int
	particles map[int]bool
}

func newTwinkle(numPixels int, seed int64) *twinkle {
	t := &twinkle{
		rnd:       rand.New(rand.NewSource(seed)),
		particles: make(map[int]bool),
	}
	t.order = t.rnd.Perm(numPixels)
	return t
}

// apply paints the sparkling pixels of f for the given fraction.
func (t *twinkle) apply(f *Frame, fraction float64) {
	if fraction <= 0 {
		return
	}
	if fraction > 1 {
		fraction = 1
	}
	count := int(fraction*float64(len(t.order)) + 0.5)
	clear(t.particles)
	for _, i := range t.order[:count] {
		t.particles[i] = true
	}
	for i := range f.pixels {
		if t.particles[i] {
			f.pixels[i] = f.pixels[i].BlendRgb(sparkleColour, 0.5+0.5*t.rnd.Float64()).Clamped()
		}
	}
}
