// Package viewer is the interactive terminal host for the cubehelix mapper:
// it shows the mapped image, the gradient preview strip and the parameter
// controls on a tcell screen.
package viewer

import (
	"fmt"
	"image"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cubehelix/cubehelix"
	"github.com/lixenwraith/cubehelix/imaging"
	"github.com/lixenwraith/cubehelix/preview"
	"github.com/lixenwraith/cubehelix/render"
)

// Screen rows reserved below the image
const (
	stripRows = 2
	panelRows = int(fieldCount)
)

// Options configures a Viewer
type Options struct {
	Params      cubehelix.Params
	Step        float64
	StripWidth  int
	StripHeight int
	Workers     int
	RenderMode  RenderMode
	ColorMode   render.ColorMode
	ShowStatus  bool
	Live        bool
	Logger      *log.Logger
}

// Viewer manages the mapped image, preview strip and controls
type Viewer struct {
	src       image.Image
	srcWidth  int
	srcHeight int

	// Display-resolution intensity and its mapping
	display   *cubehelix.IntensityBuffer
	converted *Converted
	applied   cubehelix.Params
	stale     bool

	mapper   *cubehelix.Mapper
	strip    *preview.Renderer
	Controls *Controls

	// Display settings
	RenderMode RenderMode
	ColorMode  render.ColorMode
	ShowStatus bool
	Live       bool

	termW, termH int
	message      string
}

// New creates a viewer for a monochrome source image.
// Color sources fail with a DomainError before anything is drawn.
func New(src image.Image, opts Options) (*Viewer, error) {
	if !imaging.IsMonochrome(src) {
		_, err := imaging.FromImage(src)
		return nil, err
	}

	bounds := src.Bounds()
	v := &Viewer{
		src:        src,
		srcWidth:   bounds.Dx(),
		srcHeight:  bounds.Dy(),
		mapper:     &cubehelix.Mapper{Workers: opts.Workers, Logger: opts.Logger},
		strip:      preview.NewRenderer(opts.StripWidth, opts.StripHeight),
		Controls:   NewControls(opts.Params, opts.Step),
		RenderMode: opts.RenderMode,
		ColorMode:  opts.ColorMode,
		ShowStatus: opts.ShowStatus,
		Live:       opts.Live,
		stale:      true,
	}
	v.strip.Update(v.Controls.Params())
	return v, nil
}

// ImageArea returns the cell rows and columns available for the image
func (v *Viewer) ImageArea(termW, termH int) (int, int) {
	h := termH - stripRows - panelRows
	if v.ShowStatus {
		h--
	}
	return max(termW, 0), max(h, 0)
}

// Resize refits the display buffer to the terminal and remaps it
func (v *Viewer) Resize(termW, termH int) error {
	v.termW, v.termH = termW, termH

	areaW, areaH := v.ImageArea(termW, termH)
	if areaW == 0 || areaH == 0 {
		v.display = nil
		v.converted = nil
		return nil
	}

	pw, ph := v.RenderMode.PixelsPerCell()
	fitted := imaging.Fit(v.src, areaW*pw, areaH*ph)
	buf, err := imaging.FromImage(fitted)
	if err != nil {
		return fmt.Errorf("display buffer: %w", err)
	}
	v.display = buf
	return v.Apply()
}

// Apply maps the display buffer with the current parameters
func (v *Viewer) Apply() error {
	p := v.Controls.Params()
	v.applied = p
	v.stale = false
	if v.display == nil {
		return nil
	}

	mapped, err := v.mapper.Apply(v.display, p)
	if err != nil {
		return err
	}
	v.converted = Convert(mapped, v.RenderMode)

	if s := cubehelix.NumericStats(mapped); s.NaN > 0 {
		v.message = fmt.Sprintf("%d non-finite samples", s.NaN)
	} else {
		v.message = ""
	}
	return nil
}

// ParamsChanged re-renders the preview strip and, in live mode, the image
func (v *Viewer) ParamsChanged() error {
	p := v.Controls.Params()
	v.strip.Update(p)
	if v.Live {
		return v.Apply()
	}
	v.stale = p != v.applied
	return nil
}

// Stale reports whether the image lags behind the controls
func (v *Viewer) Stale() bool {
	return v.stale
}

// Strip returns the latest preview strip
func (v *Viewer) Strip() *preview.Strip {
	return v.strip.Strip()
}

// ToggleRenderMode cycles render modes; the caller must Resize afterwards
func (v *Viewer) ToggleRenderMode() {
	v.RenderMode = (v.RenderMode + 1) % 3
}

// ToggleColorMode switches between truecolor and 256 palette
func (v *Viewer) ToggleColorMode() {
	if v.ColorMode == render.ColorModeTrueColor {
		v.ColorMode = render.ColorMode256
	} else {
		v.ColorMode = render.ColorModeTrueColor
	}
}

// Draw renders the whole interface to s
func (v *Viewer) Draw(s tcell.Screen) {
	termW, termH := s.Size()
	s.Clear()

	areaW, areaH := v.ImageArea(termW, termH)
	v.drawImage(s, areaW, areaH)

	y := areaH
	v.drawStrip(s, y, termW)
	y += stripRows
	v.drawPanel(s, y, termW)

	if v.ShowStatus {
		v.drawStatus(s, termW, termH-1)
	}
}

// drawImage centers the converted image inside the image area
func (v *Viewer) drawImage(s tcell.Screen, areaW, areaH int) {
	c := v.converted
	if c == nil {
		return
	}

	offsetX := max((areaW-c.Width)/2, 0)
	offsetY := max((areaH-c.Height)/2, 0)

	for y := 0; y < min(c.Height, areaH); y++ {
		for x := 0; x < min(c.Width, areaW); x++ {
			cell := c.Cells[y*c.Width+x]
			s.SetContent(offsetX+x, offsetY+y, cell.Rune, nil, render.Style(cell.Fg, cell.Bg, v.ColorMode))
		}
	}
}

// drawStrip samples the preview strip across the terminal width
func (v *Viewer) drawStrip(s tcell.Screen, y, termW int) {
	strip := v.strip.Strip()
	if strip == nil || strip.Width == 0 || termW <= 0 {
		return
	}

	for x := 0; x < termW; x++ {
		col := preview.Fraction(x, termW) * float64(strip.Width-1)
		c := strip.At(int(col+0.5), 0)
		style := render.Style(c, c, v.ColorMode)
		for row := 0; row < stripRows; row++ {
			s.SetContent(x, y+row, ' ', nil, style)
		}
	}
}

// Panel colors
var (
	panelBg = render.RGB{R: 20, G: 20, B: 26}
	panelFg = render.RGB{R: 200, G: 200, B: 200}
	focusFg = render.RGB{R: 100, G: 180, B: 255}
	trackFg = render.RGB{R: 70, G: 70, B: 80}
)

const sliderWidth = 30

// drawPanel draws one line per parameter with a slider
func (v *Viewer) drawPanel(s tcell.Screen, y, termW int) {
	p := v.Controls.Params()
	dimFg := render.Blend(panelFg, panelBg, 0.4)

	for i := Field(0); i < fieldCount; i++ {
		row := y + int(i)
		fill(s, 0, row, termW, render.Style(panelFg, panelBg, v.ColorMode))

		labelFg := dimFg
		marker := "  "
		if v.Controls.Focus() == i {
			labelFg = focusFg
			marker = "> "
		}
		x := drawText(s, 0, row, marker+fmt.Sprintf("%-13s", i.String()), render.Style(labelFg, panelBg, v.ColorMode))

		if i == FieldDirection {
			drawText(s, x+1, row, i.Format(p), render.Style(panelFg, panelBg, v.ColorMode))
			continue
		}

		lo, hi := i.Range()
		filled := int((i.Value(p) - lo) / (hi - lo) * float64(sliderWidth))
		for k := 0; k < sliderWidth; k++ {
			r, fg := '─', trackFg
			if k < filled {
				r, fg = '━', labelFg
			}
			s.SetContent(x+1+k, row, r, nil, render.Style(fg, panelBg, v.ColorMode))
		}
		drawText(s, x+2+sliderWidth, row, i.Format(p), render.Style(panelFg, panelBg, v.ColorMode))
	}
}

// drawStatus draws the status line at the bottom of the screen
func (v *Viewer) drawStatus(s tcell.Screen, termW, y int) {
	statusBg := render.RGB{R: 40, G: 40, B: 50}
	statusFg := render.RGB{R: 200, G: 200, B: 200}
	keyFg := render.RGB{R: 100, G: 180, B: 255}

	fill(s, 0, y, termW, render.Style(statusFg, statusBg, v.ColorMode))

	var convW, convH int
	if v.converted != nil {
		convW, convH = v.converted.Width, v.converted.Height
	}

	state := "applied"
	if v.Live {
		state = "live"
	} else if v.stale {
		state = "pending"
	}

	status := fmt.Sprintf(" %dx%d → %dx%d | %s | %s | %s ",
		v.srcWidth, v.srcHeight, convW, convH, v.RenderMode, v.ColorMode, state)
	if v.message != "" {
		status += "| " + v.message + " "
	}

	x := drawText(s, 0, y, status, render.Style(statusFg, statusBg, v.ColorMode))

	help := " q:quit a:apply v:live d:dir r:reset m:mode c:color "
	helpStart := termW - len([]rune(help))
	if helpStart <= x {
		return
	}
	x = helpStart
	for _, r := range help {
		fg := statusFg
		if r == ':' || (r >= 'a' && r <= 'z') {
			fg = keyFg
		}
		s.SetContent(x, y, r, nil, render.Style(fg, statusBg, v.ColorMode))
		x++
	}
}

func fill(s tcell.Screen, x, y, w int, style tcell.Style) {
	for i := x; i < x+w; i++ {
		s.SetContent(i, y, ' ', nil, style)
	}
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
