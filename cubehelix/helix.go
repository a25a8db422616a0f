// Package cubehelix maps normalized intensity to RGB along Dave Green's
// CubeHelix colour path (Green 2011, Bull. Astr. Soc. India 39, 289).
//
// The path starts at black, ends at white and spirals around the gray
// diagonal of the RGB cube so that perceived brightness rises
// monotonically while hue sweeps.
//
// All functions are pure and safe for concurrent use.
package cubehelix

import (
	"math"
)

// Basis vectors of the helix perturbation, per channel (cos, sin)
const (
	redCos   = -0.14861
	redSin   = 1.78277
	greenCos = -0.29227
	greenSin = -0.90649
	blueCos  = 1.97294
)

// ColorSample is one mapped colour, channels in [0,1] unless NaN propagated from the input
type ColorSample struct {
	R, G, B float64
}

// IsValid reports whether every channel is finite
func (c ColorSample) IsValid() bool {
	return finite(c.R) && finite(c.G) && finite(c.B)
}

// MapSample maps intensity t to a colour.
// t is not clamped; a negative t with fractional gamma yields NaN channels.
func MapSample(t float64, p Params) ColorSample {
	angle := 2 * math.Pi * (p.Start/3.0 + 1 + p.EffectiveRotations()*t)
	f := math.Pow(t, p.Gamma)
	amp := p.Saturation * f * (1 - t) / 2.0

	cos, sin := math.Cos(angle), math.Sin(angle)

	return ColorSample{
		R: clamp01(f + amp*(redCos*cos+redSin*sin)),
		G: clamp01(f + amp*(greenCos*cos+greenSin*sin)),
		B: clamp01(f + amp*(blueCos*cos)),
	}
}

// clamp01 limits v to [0,1]; NaN fails both comparisons and passes through
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
