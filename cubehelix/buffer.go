package cubehelix

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"
)

// IntensityBuffer is a row-major grid of normalized samples.
// Channels is the number of samples per pixel; only 1 can be mapped.
type IntensityBuffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []float64
}

// NewIntensityBuffer allocates a monochrome buffer
func NewIntensityBuffer(width, height int) *IntensityBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &IntensityBuffer{
		Width:    width,
		Height:   height,
		Channels: 1,
		Pix:      make([]float64, width*height),
	}
}

// At returns the monochrome sample at (x, y)
func (b *IntensityBuffer) At(x, y int) float64 {
	return b.Pix[(y*b.Width+x)*b.Channels]
}

// Set stores the monochrome sample at (x, y)
func (b *IntensityBuffer) Set(x, y int, v float64) {
	b.Pix[(y*b.Width+x)*b.Channels] = v
}

// check validates the buffer before any mapping work
func (b *IntensityBuffer) check(op string) error {
	if b == nil {
		return &DomainError{Op: op, Err: fmt.Errorf("%w: nil buffer", ErrBufferShape)}
	}
	if b.Channels != 1 {
		return &DomainError{Op: op, Err: fmt.Errorf("%w: got %d channels", ErrNotMonochrome, b.Channels)}
	}
	if b.Width < 0 || b.Height < 0 || len(b.Pix) != b.Width*b.Height {
		return &DomainError{Op: op, Err: fmt.Errorf("%w: %dx%d with %d samples",
			ErrBufferShape, b.Width, b.Height, len(b.Pix))}
	}
	return nil
}

// ColorBuffer is a row-major grid of mapped colours
type ColorBuffer struct {
	Width  int
	Height int
	Pix    []ColorSample
}

// NewColorBuffer allocates a zeroed (black) colour buffer
func NewColorBuffer(width, height int) *ColorBuffer {
	return &ColorBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]ColorSample, width*height),
	}
}

// At returns the colour at (x, y)
func (b *ColorBuffer) At(x, y int) ColorSample {
	return b.Pix[y*b.Width+x]
}

// Set stores the colour at (x, y)
func (b *ColorBuffer) Set(x, y int, c ColorSample) {
	b.Pix[y*b.Width+x] = c
}

// MapBuffer maps every sample using all available CPUs
func MapBuffer(in *IntensityBuffer, p Params) (*ColorBuffer, error) {
	return MapBufferWorkers(in, p, runtime.GOMAXPROCS(0))
}

// MapBufferWorkers maps every sample using at most workers goroutines.
// The source is validated before the output is allocated, so a rejected
// buffer produces no output at all.
func MapBufferWorkers(in *IntensityBuffer, p Params, workers int) (*ColorBuffer, error) {
	if err := in.check("map buffer"); err != nil {
		return nil, err
	}

	out := NewColorBuffer(in.Width, in.Height)
	if len(in.Pix) == 0 {
		return out, nil
	}

	if workers <= 1 || in.Height == 1 {
		mapRows(in, out, p, 0, in.Height)
		return out, nil
	}

	if workers > in.Height {
		workers = in.Height
	}

	// Row bands, each goroutine owns a disjoint slice of out.Pix
	band := (in.Height + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < in.Height; y0 += band {
		y1 := min(y0+band, in.Height)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			mapRows(in, out, p, y0, y1)
		}(y0, y1)
	}
	wg.Wait()

	return out, nil
}

func mapRows(in *IntensityBuffer, out *ColorBuffer, p Params, y0, y1 int) {
	lo := y0 * in.Width
	hi := y1 * in.Width
	src := in.Pix[lo:hi]
	dst := out.Pix[lo:hi]
	for i, t := range src {
		dst[i] = MapSample(t, p)
	}
}

// Stats summarizes numeric anomalies in a mapped buffer
type Stats struct {
	Samples int
	NaN     int
}

// NumericStats counts non-finite output samples.
// Anomalies come from out-of-domain input and are reported, not treated as errors.
func NumericStats(b *ColorBuffer) Stats {
	s := Stats{Samples: len(b.Pix)}
	for _, c := range b.Pix {
		if !c.IsValid() {
			s.NaN++
		}
	}
	return s
}

// Mapper applies the colour path on behalf of a host, logging each run
type Mapper struct {
	Workers int         // <= 0 uses GOMAXPROCS
	Logger  *log.Logger // nil uses the standard logger
}

// Apply maps the buffer and logs a one-line summary
func (m *Mapper) Apply(in *IntensityBuffer, p Params) (*ColorBuffer, error) {
	workers := m.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	out, err := MapBufferWorkers(in, p, workers)
	if err != nil {
		m.logf("CubeHelix apply rejected: %v", err)
		return nil, err
	}

	stats := NumericStats(out)
	m.logf("CubeHelix applied %dx%d (%s) workers=%d in %v",
		out.Width, out.Height, p, workers, time.Since(start))
	if stats.NaN > 0 {
		m.logf("CubeHelix output has %d/%d non-finite samples", stats.NaN, stats.Samples)
	}
	return out, nil
}

func (m *Mapper) logf(format string, args ...any) {
	if m.Logger != nil {
		m.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
