package cubehelix

import (
	"bytes"
	"errors"
	"log"
	"math"
	"strings"
	"testing"
)

func rampBuffer(w, h int) *IntensityBuffer {
	b := NewIntensityBuffer(w, h)
	n := float64(w*h - 1)
	if n <= 0 {
		n = 1
	}
	for i := range b.Pix {
		b.Pix[i] = float64(i) / n
	}
	return b
}

func TestMapBufferShape(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"Square", 16, 16},
		{"Wide", 320, 3},
		{"Tall", 2, 97},
		{"Single pixel", 1, 1},
		{"Empty", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := MapBuffer(rampBuffer(tt.w, tt.h), DefaultParams())
			if err != nil {
				t.Fatalf("MapBuffer failed: %v", err)
			}
			if out.Width != tt.w || out.Height != tt.h {
				t.Errorf("Expected %dx%d, got %dx%d", tt.w, tt.h, out.Width, out.Height)
			}
			if len(out.Pix) != tt.w*tt.h {
				t.Errorf("Expected %d samples, got %d", tt.w*tt.h, len(out.Pix))
			}
		})
	}
}

func TestMapBufferMatchesMapSample(t *testing.T) {
	in := rampBuffer(37, 11)
	p := Params{2.1, 1.4, 0.8, 0.6, Negative}
	out, err := MapBuffer(in, p)
	if err != nil {
		t.Fatalf("MapBuffer failed: %v", err)
	}
	for y := 0; y < in.Height; y++ {
		for x := 0; x < in.Width; x++ {
			want := MapSample(in.At(x, y), p)
			if got := out.At(x, y); got != want {
				t.Fatalf("Pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestMapBufferParallelMatchesSequential(t *testing.T) {
	in := rampBuffer(123, 77)
	p := Params{0.9, 2.0, 1.5, 1.3, Positive}

	seq, err := MapBufferWorkers(in, p, 1)
	if err != nil {
		t.Fatalf("Sequential failed: %v", err)
	}

	for _, workers := range []int{2, 3, 8, 64, 1000} {
		par, err := MapBufferWorkers(in, p, workers)
		if err != nil {
			t.Fatalf("Parallel(%d) failed: %v", workers, err)
		}
		for i := range seq.Pix {
			if seq.Pix[i] != par.Pix[i] {
				t.Fatalf("workers=%d: sample %d differs: %+v vs %+v", workers, i, seq.Pix[i], par.Pix[i])
			}
		}
	}
}

func TestMapBufferRejectsNonMonochrome(t *testing.T) {
	in := &IntensityBuffer{Width: 4, Height: 2, Channels: 3, Pix: make([]float64, 4*2*3)}

	out, err := MapBuffer(in, DefaultParams())
	if out != nil {
		t.Error("Expected no output for rejected buffer")
	}

	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatalf("Expected DomainError, got %v", err)
	}
	if !errors.Is(err, ErrNotMonochrome) {
		t.Errorf("Expected ErrNotMonochrome, got %v", err)
	}
	if !strings.Contains(err.Error(), "source must be monochrome") {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestMapBufferRejectsBadShape(t *testing.T) {
	tests := []struct {
		name string
		in   *IntensityBuffer
	}{
		{"Nil", nil},
		{"Short", &IntensityBuffer{Width: 4, Height: 4, Channels: 1, Pix: make([]float64, 15)}},
		{"Negative", &IntensityBuffer{Width: -1, Height: 4, Channels: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := MapBuffer(tt.in, DefaultParams())
			if out != nil {
				t.Error("Expected no output")
			}
			if !errors.Is(err, ErrBufferShape) {
				t.Errorf("Expected ErrBufferShape, got %v", err)
			}
		})
	}
}

func TestNumericStats(t *testing.T) {
	in := NewIntensityBuffer(3, 1)
	in.Pix[0] = -0.5
	in.Pix[1] = 0.5
	in.Pix[2] = math.NaN()

	out, err := MapBuffer(in, Params{0.5, 1.0, 1.0, 0.5, Positive})
	if err != nil {
		t.Fatalf("MapBuffer failed: %v", err)
	}
	s := NumericStats(out)
	if s.Samples != 3 || s.NaN != 2 {
		t.Errorf("Expected 2 of 3 non-finite, got %+v", s)
	}
}

func TestMapperApplyLogs(t *testing.T) {
	var buf bytes.Buffer
	m := &Mapper{Workers: 2, Logger: log.New(&buf, "", 0)}

	out, err := m.Apply(rampBuffer(8, 8), DefaultParams())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if out.Width != 8 || out.Height != 8 {
		t.Errorf("Unexpected size %dx%d", out.Width, out.Height)
	}
	if !strings.Contains(buf.String(), "applied 8x8") {
		t.Errorf("Expected summary in log, got %q", buf.String())
	}

	buf.Reset()
	_, err = m.Apply(&IntensityBuffer{Width: 1, Height: 1, Channels: 2, Pix: []float64{0, 0}}, DefaultParams())
	if err == nil {
		t.Fatal("Expected error for two-channel buffer")
	}
	if !strings.Contains(buf.String(), "rejected") {
		t.Errorf("Expected rejection in log, got %q", buf.String())
	}
}
