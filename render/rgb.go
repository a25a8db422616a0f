package render

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/cubehelix/cubehelix"
)

// RGB represents a quantized 24-bit color
type RGB struct {
	R, G, B uint8
}

// Predefined colors used by host chrome
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Colorful converts to go-colorful space
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

// Quantize converts a mapped sample to 8-bit channels: floor(255*c) clamped to [0,255].
// NaN channels quantize to 0.
func Quantize(c cubehelix.ColorSample) RGB {
	return RGB{
		R: quantizeChannel(c.R),
		G: quantizeChannel(c.G),
		B: quantizeChannel(c.B),
	}
}

// FromColorful quantizes a go-colorful color with the same floor rule as Quantize
func FromColorful(c colorful.Color) RGB {
	return Quantize(cubehelix.ColorSample{R: c.R, G: c.G, B: c.B})
}

// quantizeChannel floors then clamps; the clamp is repeated here since callers may pass unclamped floats
func quantizeChannel(v float64) uint8 {
	f := math.Floor(255 * v)
	if f >= 255 {
		return 255
	}
	// Negated form catches NaN
	if !(f > 0) {
		return 0
	}
	return uint8(f)
}

// Blend mixes src over c by alpha in sRGB
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}
	return FromColorful(c.Colorful().BlendRgb(src.Colorful(), alpha))
}
