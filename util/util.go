package util

import (
	"github.com/fogleman/ease"
)

// GenerateLut samples fn into a symmetric look-up table that rises from 0
// over the first half and falls back over the second. A nil fn uses
// ease.InOutQuad.
func GenerateLut(length int, fn func(float64) float64) []float64 {
	if fn == nil {
		fn = ease.InOutQuad
	}
	lut := make([]float64, length)
	if length < 3 {
		for i := range lut {
			lut[i] = 1
		}
		return lut
	}
	half := (length + 1) / 2
	increment := 1.0 / float64(half-1)
	for i, j := 0, length-1; i < half; i, j = i+1, j-1 {
		value := fn(float64(i) * increment)
		lut[i] = value
		lut[j] = value
	}
	return lut
}

// Sample reads lut at t in [0, 1], clamping out of range values.
func Sample(lut []float64, t float64) float64 {
	if len(lut) == 0 {
		return 0
	}
	if t <= 0 {
		return lut[0]
	}
	if t >= 1 {
		return lut[len(lut)-1]
	}
	return lut[int(t*float64(len(lut)-1)+0.5)]
}
