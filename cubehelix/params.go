package cubehelix

import (
	"fmt"
)

// Direction selects the sense of the hue rotation
type Direction int

const (
	Positive Direction = 1
	Negative Direction = -1
)

// String returns human-readable direction name
func (d Direction) String() string {
	switch d {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Flip returns the opposite direction
func (d Direction) Flip() Direction {
	if d == Negative {
		return Positive
	}
	return Negative
}

// Parameter ranges, matching the two-decimal controls of the interactive host
const (
	StartMin      = 0.5
	StartMax      = 3.0
	RotationsMin  = 0.0
	RotationsMax  = 2.0
	SaturationMin = 0.0
	SaturationMax = 2.0
	GammaMin      = 0.2
	GammaMax      = 1.6
)

// Params is the complete, immutable parameter set of the colour path.
// Start is the starting hue (1.0 red, 2.0 green, 3.0 blue), Rotations the
// number of R→G→B turns over the intensity range, Saturation the hue
// amplitude and Gamma the intensity exponent.
type Params struct {
	Start      float64
	Rotations  float64
	Saturation float64
	Gamma      float64
	Direction  Direction
}

// DefaultParams returns the parameter set a fresh session starts with
func DefaultParams() Params {
	return Params{
		Start:      0.5,
		Rotations:  1.0,
		Saturation: 1.0,
		Gamma:      1.0,
		Direction:  Positive,
	}
}

// EffectiveRotations returns rotations signed by direction
func (p Params) EffectiveRotations() float64 {
	return p.Rotations * float64(p.Direction)
}

// Validate reports the first field outside its range.
// Mapping functions accept any Params; validation is for hosts accepting user input.
func (p Params) Validate() error {
	checks := []struct {
		name     string
		v        float64
		min, max float64
	}{
		{"start", p.Start, StartMin, StartMax},
		{"rotations", p.Rotations, RotationsMin, RotationsMax},
		{"saturation", p.Saturation, SaturationMin, SaturationMax},
		{"gamma", p.Gamma, GammaMin, GammaMax},
	}
	for _, c := range checks {
		// Negated form also rejects NaN
		if !(c.v >= c.min && c.v <= c.max) {
			return &RangeError{Field: c.name, Value: c.v, Min: c.min, Max: c.max}
		}
	}
	if p.Direction != Positive && p.Direction != Negative {
		return &RangeError{Field: "direction", Value: float64(p.Direction), Min: -1, Max: 1}
	}
	return nil
}

// Clamp returns a copy with every field pulled into range
func (p Params) Clamp() Params {
	p.Start = clampRange(p.Start, StartMin, StartMax)
	p.Rotations = clampRange(p.Rotations, RotationsMin, RotationsMax)
	p.Saturation = clampRange(p.Saturation, SaturationMin, SaturationMax)
	p.Gamma = clampRange(p.Gamma, GammaMin, GammaMax)
	if p.Direction != Negative {
		p.Direction = Positive
	}
	return p
}

// String formats parameters with two decimals
func (p Params) String() string {
	return fmt.Sprintf("start=%.2f rotations=%.2f saturation=%.2f gamma=%.2f dir=%+d",
		p.Start, p.Rotations, p.Saturation, p.Gamma, int(p.Direction))
}

func clampRange(v, lo, hi float64) float64 {
	if v != v {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
