package viewer

import (
	"fmt"
	"math"

	"github.com/lixenwraith/cubehelix/cubehelix"
)

// Field identifies one editable parameter
type Field uint8

const (
	FieldStart Field = iota
	FieldRotations
	FieldSaturation
	FieldGamma
	FieldDirection
	fieldCount
)

// String returns the panel label
func (f Field) String() string {
	switch f {
	case FieldStart:
		return "Start colour"
	case FieldRotations:
		return "Rotations"
	case FieldSaturation:
		return "Saturation"
	case FieldGamma:
		return "Gamma"
	case FieldDirection:
		return "Direction"
	default:
		return "Unknown"
	}
}

// Range returns the allowed interval of a numeric field
func (f Field) Range() (lo, hi float64) {
	switch f {
	case FieldStart:
		return cubehelix.StartMin, cubehelix.StartMax
	case FieldRotations:
		return cubehelix.RotationsMin, cubehelix.RotationsMax
	case FieldSaturation:
		return cubehelix.SaturationMin, cubehelix.SaturationMax
	case FieldGamma:
		return cubehelix.GammaMin, cubehelix.GammaMax
	default:
		return -1, 1
	}
}

// Value reads the field from p
func (f Field) Value(p cubehelix.Params) float64 {
	switch f {
	case FieldStart:
		return p.Start
	case FieldRotations:
		return p.Rotations
	case FieldSaturation:
		return p.Saturation
	case FieldGamma:
		return p.Gamma
	case FieldDirection:
		return float64(p.Direction)
	default:
		return 0
	}
}

// Format renders the field value for the panel
func (f Field) Format(p cubehelix.Params) string {
	if f == FieldDirection {
		return p.Direction.String()
	}
	return fmt.Sprintf("%.2f", f.Value(p))
}

// Controls owns the current parameter set for the interactive session.
// Consumers receive value snapshots through Params; nothing else holds the live value.
type Controls struct {
	params  cubehelix.Params
	initial cubehelix.Params
	focus   Field
	step    float64
}

// NewControls starts editing from p, clamped into range
func NewControls(p cubehelix.Params, step float64) *Controls {
	if !(step > 0) {
		step = 0.05
	}
	p = p.Clamp()
	return &Controls{params: p, initial: p, step: step}
}

// Params returns a snapshot of the current parameters
func (c *Controls) Params() cubehelix.Params {
	return c.params
}

// Focus returns the selected field
func (c *Controls) Focus() Field {
	return c.focus
}

// Step returns the fine adjustment increment
func (c *Controls) Step() float64 {
	return c.step
}

// Next moves focus down, wrapping
func (c *Controls) Next() {
	c.focus = (c.focus + 1) % fieldCount
}

// Prev moves focus up, wrapping
func (c *Controls) Prev() {
	c.focus = (c.focus + fieldCount - 1) % fieldCount
}

// Adjust moves the focused field by steps increments and reports whether it changed.
// Values snap to two decimals and stop at the range limits.
func (c *Controls) Adjust(steps int) bool {
	if steps == 0 {
		return false
	}
	if c.focus == FieldDirection {
		c.ToggleDirection()
		return true
	}

	lo, hi := c.focus.Range()
	old := c.focus.Value(c.params)
	v := math.Round((old+float64(steps)*c.step)*100) / 100
	v = math.Max(lo, math.Min(hi, v))
	if v == old {
		return false
	}

	switch c.focus {
	case FieldStart:
		c.params.Start = v
	case FieldRotations:
		c.params.Rotations = v
	case FieldSaturation:
		c.params.Saturation = v
	case FieldGamma:
		c.params.Gamma = v
	}
	return true
}

// ToggleDirection flips the rotation direction
func (c *Controls) ToggleDirection() {
	c.params.Direction = c.params.Direction.Flip()
}

// Reset restores the starting parameters and reports whether anything changed
func (c *Controls) Reset() bool {
	changed := c.params != c.initial
	c.params = c.initial
	return changed
}
