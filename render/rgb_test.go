package render

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cubehelix/cubehelix"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name string
		in   cubehelix.ColorSample
		want RGB
	}{
		{"Black", cubehelix.ColorSample{}, RGBBlack},
		{"White", cubehelix.ColorSample{R: 1, G: 1, B: 1}, RGBWhite},
		{"Floors", cubehelix.ColorSample{R: 0.3163, G: 0.6164, B: 0.3767}, RGB{80, 157, 96}},
		{"Just below step", cubehelix.ColorSample{R: 0.99999, G: 1.0 / 255.0 * 0.999, B: 0.5}, RGB{254, 0, 127}},
		{"Out of range clamps", cubehelix.ColorSample{R: -2, G: 7, B: 1.0000001}, RGB{0, 255, 255}},
		{"NaN is zero", cubehelix.ColorSample{R: math.NaN(), G: math.Inf(1), B: math.Inf(-1)}, RGB{0, 255, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantize(tt.in); got != tt.want {
				t.Errorf("Quantize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromColorfulEndpoints(t *testing.T) {
	if got := FromColorful(RGBWhite.Colorful()); got != RGBWhite {
		t.Errorf("White round trip = %+v", got)
	}
	if got := FromColorful(RGBBlack.Colorful()); got != RGBBlack {
		t.Errorf("Black round trip = %+v", got)
	}
}

func TestRGBTo256(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		want uint8
	}{
		{"Black", RGBBlack, 16},
		{"White", RGBWhite, 231},
		{"Pure red", RGB{255, 0, 0}, 196},
		{"Pure blue", RGB{0, 0, 255}, 21},
		{"Mid gray uses ramp", RGB{128, 128, 128}, 244},
		{"Cube level exact", RGB{95, 135, 175}, 16 + 36*1 + 6*2 + 3},
		{"Ramp level exact", RGB{238, 238, 238}, 255},
		{"Near black prefers ramp", RGB{9, 9, 9}, 232},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBTo256(tt.in); got != tt.want {
				t.Errorf("RGBTo256(%+v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorMode(t *testing.T) {
	t.Setenv("COLORTERM", "truecolor")

	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"auto", ColorModeTrueColor, false},
		{"", ColorModeTrueColor, false},
		{"256", ColorMode256, false},
		{"truecolor", ColorModeTrueColor, false},
		{"16", ColorMode256, true},
	}

	for _, tt := range tests {
		got, err := ParseColorMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColorMode(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColorMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStyle(t *testing.T) {
	s := Style(RGB{255, 0, 0}, RGBBlack, ColorModeTrueColor)
	fg, bg, _ := s.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("Unexpected fg %v", fg)
	}
	if bg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("Unexpected bg %v", bg)
	}

	s = Style(RGB{255, 0, 0}, RGBBlack, ColorMode256)
	fg, _, _ = s.Decompose()
	if fg != tcell.PaletteColor(196) {
		t.Errorf("Expected palette 196, got %v", fg)
	}
}

func TestBlend(t *testing.T) {
	if got := Blend(RGBBlack, RGBWhite, 0.5); got != (RGB{127, 127, 127}) {
		t.Errorf("Blend half = %+v", got)
	}
	if got := Blend(RGBBlack, RGBWhite, 2); got != RGBWhite {
		t.Errorf("Blend over = %+v", got)
	}
	if got := Blend(RGB{255, 0, 0}, RGB{0, 0, 255}, 0.5); got != (RGB{127, 0, 127}) {
		t.Errorf("Blend red/blue = %+v", got)
	}
}

func TestRGBTo256Nearest(t *testing.T) {
	// Every palette entry maps to itself
	for idx := 16; idx < 256; idx++ {
		var c RGB
		if idx < 232 {
			i := idx - 16
			level := func(v int) uint8 {
				if v == 0 {
					return 0
				}
				return uint8(55 + 40*v)
			}
			c = RGB{level(i / 36), level(i / 6 % 6), level(i % 6)}
		} else {
			v := uint8(8 + 10*(idx-232))
			c = RGB{v, v, v}
		}
		if got := RGBTo256(c); int(got) != idx {
			t.Errorf("RGBTo256(%+v) = %d, want %d", c, got, idx)
		}
	}
}
