package cubehelix

import (
	"errors"
	"fmt"
)

var (
	// ErrNotMonochrome is returned when a source buffer carries more than one channel
	ErrNotMonochrome = errors.New("source must be monochrome")
	// ErrBufferShape is returned when buffer dimensions disagree with its sample slice
	ErrBufferShape = errors.New("buffer shape mismatch")
)

// DomainError is an input precondition violation detected before any mapping work
type DomainError struct {
	Op  string
	Err error
}

func (e *DomainError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *DomainError) Unwrap() error { return e.Err }

// RangeError names a parameter outside its allowed interval
type RangeError struct {
	Field    string
	Value    float64
	Min, Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %.4g out of range [%.2f, %.2f]", e.Field, e.Value, e.Min, e.Max)
}
