package ir

import (
	"errors"
	"fmt"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
)

// Errors returned by IR functions.
var (
	ErrEmptyIR           = fmt.Errorf("ir: impulse response is empty: %w", core.ErrInsufficientData)
	ErrInvalidSampleRate = fmt.Errorf("ir: sample rate must be positive: %w", core.ErrInvalidParameter)
	ErrInvalidTime       = fmt.Errorf("ir: time must be positive: %w", core.ErrInvalidParameter)
	ErrPeakOutOfRange    = fmt.Errorf("ir: peak index out of range: %w", core.ErrInvalidParameter)
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
)

// Response is a measured impulse response.
//
// T has the same length as IR, is spaced by 1/SampleRate and is zero at
// PeakIndex. PeakAt is the peak position relative to the buffer centre,
// PeakIndex - len(IR)/2.
type Response struct {
	IR []float64
	// Complex is the IR rotated so the peak sits at index 0. It is nil when
	// the real IR should be transformed as is.
	Complex    []complex128
	T          []float64
	PeakIndex  int
	PeakAt     int
	SampleRate float64
	FFTSize    int
}

// New wraps samples in a Response with the time axis centred on peakIndex.
// samples is retained, not copied.
func New(samples []float64, peakIndex int, sampleRate float64) (Response, error) {
	if len(samples) == 0 {
		return Response{}, ErrEmptyIR
	}

	if sampleRate <= 0 {
		return Response{}, ErrInvalidSampleRate
	}

	if peakIndex < 0 || peakIndex >= len(samples) {
		return Response{}, fmt.Errorf("%w: %d of %d", ErrPeakOutOfRange, peakIndex, len(samples))
	}

	t := make([]float64, len(samples))
	for i := range t {
		t[i] = float64(i-peakIndex) / sampleRate
	}

	return Response{
		IR:         samples,
		T:          t,
		PeakIndex:  peakIndex,
		PeakAt:     peakIndex - len(samples)/2,
		SampleRate: sampleRate,
		FFTSize:    len(samples),
	}, nil
}

// Len returns the number of IR samples.
func (r Response) Len() int { return len(r.IR) }

// Validate checks the structural invariants of r.
func (r Response) Validate() error {
	if len(r.IR) == 0 {
		return ErrEmptyIR
	}

	if r.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	if len(r.T) != len(r.IR) {
		return fmt.Errorf("ir: time axis has %d points for %d samples: %w",
			len(r.T), len(r.IR), core.ErrInvalidParameter)
	}

	return nil
}

// PeakIndex returns the index of the largest signed sample, the first one
// on ties. A polarity-inverted system therefore peaks on its largest
// positive lobe, not its absolute maximum. Returns -1 for empty input.
func PeakIndex(x []float64) int {
	if len(x) == 0 {
		return -1
	}

	best := 0
	for i, v := range x {
		if v > x[best] {
			best = i
		}
	}

	return best
}
