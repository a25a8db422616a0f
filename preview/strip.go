// Package preview renders the gradient strip that shows the current colour
// path while parameters are being edited.
package preview

import (
	"github.com/lixenwraith/cubehelix/cubehelix"
	"github.com/lixenwraith/cubehelix/render"
)

// Default strip dimensions in pixels
const (
	DefaultWidth  = 550
	DefaultHeight = 50
)

// Strip is a gradient of Width columns, each a solid vertical line of Height pixels
type Strip struct {
	Width   int
	Height  int
	Columns []render.RGB
}

// At returns the color at (x, y); every row of a column shares one color
func (s *Strip) At(x, y int) render.RGB {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return render.RGBBlack
	}
	return s.Columns[x]
}

// Fraction returns the intensity sampled by column i.
// A single-column strip samples t=0.
func Fraction(i, width int) float64 {
	if width <= 1 {
		return 0
	}
	return float64(i) / float64(width-1)
}

// RenderStrip evaluates the colour path across width columns.
// Non-positive dimensions yield an empty strip.
func RenderStrip(p cubehelix.Params, width, height int) *Strip {
	if width <= 0 || height <= 0 {
		return &Strip{}
	}

	s := &Strip{
		Width:   width,
		Height:  height,
		Columns: make([]render.RGB, width),
	}
	for i := range s.Columns {
		s.Columns[i] = render.Quantize(cubehelix.MapSample(Fraction(i, width), p))
	}
	return s
}

// ColorBuffer expands the strip to a full-height float buffer
func (s *Strip) ColorBuffer() *cubehelix.ColorBuffer {
	cb := cubehelix.NewColorBuffer(s.Width, s.Height)
	for x, c := range s.Columns {
		f := c.Colorful()
		sample := cubehelix.ColorSample{R: f.R, G: f.G, B: f.B}
		for y := 0; y < s.Height; y++ {
			cb.Set(x, y, sample)
		}
	}
	return cb
}

// Renderer regenerates the strip whenever parameters change.
// It keeps only the most recent strip; each Update is a full re-render.
type Renderer struct {
	width  int
	height int
	last   *Strip
}

// NewRenderer creates a renderer; non-positive dimensions fall back to defaults
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Renderer{width: width, height: height}
}

// Size returns the strip dimensions
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Resize changes strip width; the next Update renders at the new size
func (r *Renderer) Resize(width int) {
	if width > 0 {
		r.width = width
	}
}

// Update renders synchronously for p and returns the new strip
func (r *Renderer) Update(p cubehelix.Params) *Strip {
	r.last = RenderStrip(p, r.width, r.height)
	return r.last
}

// Strip returns the last rendered strip, nil before the first Update
func (r *Renderer) Strip() *Strip {
	return r.last
}
