package cubehelix

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const tolerance = 5e-5

func near(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestMapSampleGolden(t *testing.T) {
	tests := []struct {
		name    string
		t       float64
		p       Params
		r, g, b float64
	}{
		{"Default midpoint", 0.5, DefaultParams(), 0.3163, 0.6164, 0.3767},
		{"Default quarter", 0.25, DefaultParams(), 0.3456, 0.2312, 0.0898},
		{"Negative quarter", 0.25, Params{0.5, 1.0, 1.0, 1.0, Negative}, 0.1544, 0.2688, 0.4102},
		{"Custom params", 0.25, Params{1.5, 1.5, 1.2, 0.8, Positive}, 0.1271, 0.3943, 0.5370},
		{"Clipped red", 0.1, Params{3.0, 2.0, 2.0, 0.2, Positive}, 1.0, 0.0901, 0.9772},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := MapSample(tt.t, tt.p)
			if !near(c.R, tt.r) || !near(c.G, tt.g) || !near(c.B, tt.b) {
				t.Errorf("MapSample(%v) = (%.4f,%.4f,%.4f), want (%.4f,%.4f,%.4f)",
					tt.t, c.R, c.G, c.B, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestMapSampleAnchors(t *testing.T) {
	for _, p := range []Params{
		DefaultParams(),
		{3.0, 2.0, 2.0, 0.2, Negative},
		{1.7, 0.3, 0.0, 1.6, Positive},
	} {
		black := MapSample(0, p)
		if black != (ColorSample{}) {
			t.Errorf("Expected black at t=0 for %s, got %+v", p, black)
		}
		white := MapSample(1, p)
		if white != (ColorSample{1, 1, 1}) {
			t.Errorf("Expected white at t=1 for %s, got %+v", p, white)
		}
	}
}

func TestMapSampleRange(t *testing.T) {
	params := []Params{
		DefaultParams(),
		{StartMin, RotationsMax, SaturationMax, GammaMin, Negative},
		{StartMax, RotationsMax, SaturationMax, GammaMax, Positive},
		{2.0, 0.0, 0.0, 1.0, Positive},
	}
	for _, p := range params {
		for i := 0; i <= 1000; i++ {
			c := MapSample(float64(i)/1000, p)
			for _, v := range []float64{c.R, c.G, c.B} {
				if v < 0 || v > 1 || math.IsNaN(v) {
					t.Fatalf("Channel out of [0,1] at t=%v for %s: %+v", float64(i)/1000, p, c)
				}
			}
		}
	}
}

func TestMapSampleZeroSaturationIsGray(t *testing.T) {
	p := Params{1.0, 1.5, 0.0, 0.7, Positive}
	for _, x := range []float64{0.1, 0.4, 0.9} {
		c := MapSample(x, p)
		want := math.Pow(x, 0.7)
		if c.R != want || c.G != want || c.B != want {
			t.Errorf("Expected gray %v at t=%v, got %+v", want, x, c)
		}
	}
}

func TestMapSampleDeterministic(t *testing.T) {
	p := Params{2.3, 1.7, 1.3, 0.45, Negative}
	for i := 0; i < 50; i++ {
		x := float64(i) / 49
		a := MapSample(x, p)
		b := MapSample(x, p)
		if math.Float64bits(a.R) != math.Float64bits(b.R) ||
			math.Float64bits(a.G) != math.Float64bits(b.G) ||
			math.Float64bits(a.B) != math.Float64bits(b.B) {
			t.Fatalf("MapSample not bit-identical at t=%v: %+v vs %+v", x, a, b)
		}
	}
}

func TestMapSampleOutOfDomain(t *testing.T) {
	t.Run("Negative t fractional gamma propagates NaN", func(t *testing.T) {
		c := MapSample(-0.5, Params{0.5, 1.0, 1.0, 0.5, Positive})
		if !math.IsNaN(c.R) || !math.IsNaN(c.G) || !math.IsNaN(c.B) {
			t.Errorf("Expected NaN channels, got %+v", c)
		}
		if c.IsValid() {
			t.Error("Expected IsValid false for NaN sample")
		}
	})

	t.Run("Negative t integer gamma is clamped", func(t *testing.T) {
		c := MapSample(-0.5, DefaultParams())
		if !near(c.R, 0.0511) || c.G != 0 || c.B != 0 {
			t.Errorf("Expected (0.0511,0,0), got %+v", c)
		}
	})

	t.Run("t above one is clamped", func(t *testing.T) {
		c := MapSample(1.5, DefaultParams())
		if c != (ColorSample{1, 1, 1}) {
			t.Errorf("Expected white, got %+v", c)
		}
	})
}

func TestMapSampleLightnessRises(t *testing.T) {
	// Perceived lightness along the default path should increase
	p := DefaultParams()
	prev := -1.0
	for _, x := range []float64{0, 0.25, 0.5, 0.75, 1} {
		c := MapSample(x, p)
		l, _, _ := colorful.Color{R: c.R, G: c.G, B: c.B}.Lab()
		if l <= prev {
			t.Errorf("Lightness did not rise at t=%v: %v <= %v", x, l, prev)
		}
		prev = l
	}
}
