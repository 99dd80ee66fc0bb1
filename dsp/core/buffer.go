package core

import "fmt"

// SampleBuffer is a mono block of samples, nominally in [-1, 1], together
// with the rate it was captured at. Engine functions borrow it and never
// retain or mutate Samples.
type SampleBuffer struct {
	Samples    []float64
	SampleRate float64
}

// NewSampleBuffer wraps samples captured at sampleRate.
func NewSampleBuffer(samples []float64, sampleRate float64) SampleBuffer {
	return SampleBuffer{Samples: samples, SampleRate: sampleRate}
}

// Len returns the number of samples.
func (b SampleBuffer) Len() int { return len(b.Samples) }

// Duration returns the buffer length in seconds.
func (b SampleBuffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}

	return float64(len(b.Samples)) / b.SampleRate
}

// Validate reports whether the buffer has a usable sample rate and at least
// one sample.
func (b SampleBuffer) Validate() error {
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidParameter, b.SampleRate)
	}

	if len(b.Samples) == 0 {
		return fmt.Errorf("%w: empty buffer", ErrInsufficientData)
	}

	return nil
}
