package conv

import (
	"errors"
	"fmt"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/dsp/fft"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput  = fmt.Errorf("conv: empty input: %w", core.ErrInsufficientData)
	ErrEmptyKernel = fmt.Errorf("conv: empty kernel: %w", core.ErrInsufficientData)
	ErrUnknownMode = errors.New("conv: unknown mode")
)

// Mode specifies the output mode for convolution and correlation.
type Mode int

const (
	// ModeFull returns the full convolution result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns output with the same length as the first input,
	// starting (len(b)-1)/2 samples into the full result.
	ModeSame

	// ModeValid returns only the portion where signals fully overlap,
	// with length max(len(a), len(b)) - min(len(a), len(b)) + 1.
	ModeValid
)

// directThreshold is the kernel length at or below which Convolve stays in
// the time domain.
const directThreshold = 64

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		if x == 0 {
			continue
		}

		for j, h := range b {
			result[i+j] += x * h
		}
	}

	return result, nil
}

// FFT performs linear convolution of a and b by zero-padded spectral
// multiplication at the next power of two >= len(a)+len(b)-1.
func FFT(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	n := len(a) + len(b) - 1
	size := core.NextPowerOf2(n)

	aFreq, err := fft.ForwardRealComplex(a, size)
	if err != nil {
		return nil, fmt.Errorf("conv: %w", err)
	}

	bFreq, err := fft.ForwardRealComplex(b, size)
	if err != nil {
		return nil, fmt.Errorf("conv: %w", err)
	}

	for i := range aFreq {
		aFreq[i] *= bFreq[i]
	}

	resultTime, err := fft.InverseComplex(aFreq)
	if err != nil {
		return nil, fmt.Errorf("conv: %w", err)
	}

	result := make([]float64, n)
	for i := range result {
		result[i] = real(resultTime[i])
	}

	return result, nil
}

// Convolve performs linear convolution, choosing direct evaluation for
// short kernels and FFT multiplication otherwise.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	if min(len(a), len(b)) <= directThreshold {
		if len(b) > len(a) {
			return Direct(b, a)
		}

		return Direct(a, b)
	}

	return FFT(a, b)
}

// ConvolveMode performs convolution with specified output mode.
func ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	full, err := Convolve(a, b)
	if err != nil {
		return nil, err
	}

	return trimToMode(full, len(a), len(b), mode)
}

// trimToMode extracts the appropriate portion of a full convolution result.
func trimToMode(full []float64, lenA, lenB int, mode Mode) ([]float64, error) {
	switch mode {
	case ModeFull:
		return full, nil
	case ModeSame:
		start := (lenB - 1) / 2
		return full[start : start+lenA], nil
	case ModeValid:
		if lenA >= lenB {
			return full[lenB-1 : lenA], nil
		}

		return full[lenA-1 : lenB], nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}
}
