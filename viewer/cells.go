package viewer

import (
	"github.com/lixenwraith/cubehelix/cubehelix"
	"github.com/lixenwraith/cubehelix/render"
)

// QuadrantChars maps 4-bit patterns to Unicode quadrant characters
// Bit order: 0=UL, 1=UR, 2=LL, 3=LR (1 = foreground)
var QuadrantChars = [16]rune{
	' ', '▘', '▝', '▀', '▖', '▌', '▞', '▛',
	'▗', '▚', '▐', '▜', '▄', '▙', '▟', '█',
}

// RenderMode determines how mapped pixels become terminal cells
type RenderMode uint8

const (
	ModeBackground RenderMode = iota // 1x2 pixels averaged into a background color
	ModeHalfBlock                    // 1x2 pixels as upper-half block fg/bg
	ModeQuadrant                     // 2x2 pixels as best-fit quadrant glyph
)

// ParseRenderMode resolves a flag or config value
func ParseRenderMode(s string) RenderMode {
	switch s {
	case "bg", "background":
		return ModeBackground
	case "quadrant", "q":
		return ModeQuadrant
	default:
		return ModeHalfBlock
	}
}

// String returns human-readable mode name
func (m RenderMode) String() string {
	switch m {
	case ModeBackground:
		return "Background"
	case ModeHalfBlock:
		return "Half"
	case ModeQuadrant:
		return "Quadrant"
	default:
		return "Unknown"
	}
}

// PixelsPerCell returns the pixel footprint of one terminal cell
func (m RenderMode) PixelsPerCell() (w, h int) {
	if m == ModeQuadrant {
		return 2, 2
	}
	return 1, 2
}

// Cell is one terminal cell of the converted image
type Cell struct {
	Rune rune
	Fg   render.RGB
	Bg   render.RGB
}

// Converted holds the cell grid for a mapped image
type Converted struct {
	Cells  []Cell
	Width  int
	Height int
}

// Convert turns a mapped colour buffer into terminal cells.
// Odd trailing rows or columns reuse the last pixel.
func Convert(cb *cubehelix.ColorBuffer, mode RenderMode) *Converted {
	if cb == nil || cb.Width == 0 || cb.Height == 0 {
		return &Converted{}
	}

	pw, ph := mode.PixelsPerCell()
	outW := (cb.Width + pw - 1) / pw
	outH := (cb.Height + ph - 1) / ph

	px := func(x, y int) render.RGB {
		return render.Quantize(cb.At(min(x, cb.Width-1), min(y, cb.Height-1)))
	}

	cells := make([]Cell, outW*outH)
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			gx, gy := x*pw, y*ph
			idx := y*outW + x

			switch mode {
			case ModeBackground:
				top, bottom := px(gx, gy), px(gx, gy+1)
				cells[idx] = Cell{Rune: ' ', Bg: render.Blend(top, bottom, 0.5)}
			case ModeHalfBlock:
				cells[idx] = Cell{Rune: '▀', Fg: px(gx, gy), Bg: px(gx, gy+1)}
			case ModeQuadrant:
				cells[idx] = quadrantCell([4]render.RGB{px(gx, gy), px(gx+1, gy), px(gx, gy+1), px(gx+1, gy+1)})
			}
		}
	}

	return &Converted{Cells: cells, Width: outW, Height: outH}
}

// quadrantCell splits a 2x2 block into foreground and background halves for each
// of the 16 masks, colours each half with its mean and keeps the mask with the
// least squared RGB error. Ties keep the lower mask.
func quadrantCell(block [4]render.RGB) Cell {
	var best Cell
	bestErr := -1

	for mask := range len(QuadrantChars) {
		var on, off colorSum
		for i, p := range block {
			if mask&(1<<i) != 0 {
				on.add(p)
			} else {
				off.add(p)
			}
		}

		fg, bg := on.mean(), off.mean()
		e := 0
		for i, p := range block {
			if mask&(1<<i) != 0 {
				e += distanceSq(p, fg)
			} else {
				e += distanceSq(p, bg)
			}
		}

		if bestErr < 0 || e < bestErr {
			bestErr = e
			best = Cell{Rune: QuadrantChars[mask], Fg: fg, Bg: bg}
		}
	}
	return best
}

// colorSum accumulates pixels for a channel-wise mean
type colorSum struct {
	r, g, b, n int
}

func (s *colorSum) add(c render.RGB) {
	s.r += int(c.R)
	s.g += int(c.G)
	s.b += int(c.B)
	s.n++
}

// mean of an empty side is black
func (s colorSum) mean() render.RGB {
	if s.n == 0 {
		return render.RGBBlack
	}
	return render.RGB{R: uint8(s.r / s.n), G: uint8(s.g / s.n), B: uint8(s.b / s.n)}
}

func distanceSq(a, b render.RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}
