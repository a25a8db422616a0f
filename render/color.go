package render

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// String returns the short name shown in the status bar
func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "24bit"
	}
	return "256"
}

// ParseColorMode resolves a flag or config value; "auto" and "" detect from environment
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DetectColorMode(), nil
	case "true", "truecolor", "24", "24bit":
		return ColorModeTrueColor, nil
	case "256", "8":
		return ColorMode256, nil
	default:
		return ColorMode256, fmt.Errorf("unknown color mode %q", s)
	}
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

// paletteLab holds CIE L*a*b* coordinates of xterm indices 16-255.
// The 16 system colors are skipped since terminal themes redefine them.
var paletteLab = func() (lab [240][3]float64) {
	level := func(i int) uint8 {
		if i == 0 {
			return 0
		}
		return uint8(55 + 40*i)
	}
	for i := range lab {
		c := RGB{level(i / 36), level(i / 6 % 6), level(i % 6)}
		if i >= 216 {
			v := uint8(8 + 10*(i-216))
			c = RGB{v, v, v}
		}
		lab[i][0], lab[i][1], lab[i][2] = c.Colorful().Lab()
	}
	return lab
}()

// RGBTo256 returns the xterm-256 index perceptually nearest to c.
// Distance is Euclidean in Lab against the precomputed palette; ties keep the lower index.
func RGBTo256(c RGB) uint8 {
	l, a, b := c.Colorful().Lab()
	best, bestDist := 0, math.Inf(1)
	for i, p := range paletteLab {
		dl, da, db := l-p[0], a-p[1], b-p[2]
		if d := dl*dl + da*da + db*db; d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(16 + best)
}

// TcellColor converts to a tcell color for the given mode
func TcellColor(c RGB, mode ColorMode) tcell.Color {
	if mode == ColorMode256 {
		return tcell.PaletteColor(int(RGBTo256(c)))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Style builds a tcell style from foreground and background colors
func Style(fg, bg RGB, mode ColorMode) tcell.Style {
	return tcell.StyleDefault.
		Foreground(TcellColor(fg, mode)).
		Background(TcellColor(bg, mode))
}
