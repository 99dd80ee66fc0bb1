// Package fft wraps algo-fft plans with the transforms the measurement
// packages need.
//
// Two flavours are provided. [ForwardReal] and [Inverse] work on interleaved
// real/imaginary float64 arrays (re0, im0, re1, im1, ...), which is the layout
// used when spectra are stored or exchanged. [Forward] and [InverseComplex]
// work on []complex128 and are what the engine uses internally.
//
// All sizes must be powers of two. Inverse transforms are scaled by 1/N so
// that a forward/inverse round trip reproduces the input.
package fft

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
)

// ErrNotPowerOfTwo is returned for transform sizes that are not a power of two.
var ErrNotPowerOfTwo = fmt.Errorf("fft: size is not a power of two: %w", core.ErrInvalidParameter)

// ErrOddLength is returned when an interleaved spectrum has an odd length.
var ErrOddLength = fmt.Errorf("fft: interleaved spectrum has odd length: %w", core.ErrInvalidParameter)

// plan creates a plan for size n. Plans carry scratch state, so each call
// gets its own and concurrent transforms never share one.
func plan(n int) (*algofft.Plan[complex128], error) {
	if !core.IsPowerOf2(n) {
		return nil, fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}

	p, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fft: failed to create plan for %d: %w", n, err)
	}

	return p, nil
}

// Forward returns the DFT of src, zero-padded or truncated to size.
func Forward(src []complex128, size int) ([]complex128, error) {
	p, err := plan(size)
	if err != nil {
		return nil, err
	}

	in := make([]complex128, size)
	copy(in, src)

	out := make([]complex128, size)
	if err := p.Forward(out, in); err != nil {
		return nil, fmt.Errorf("fft: forward transform failed: %w", err)
	}

	return out, nil
}

// ForwardRealComplex returns the DFT of a real signal, zero-padded or
// truncated to size.
func ForwardRealComplex(src []float64, size int) ([]complex128, error) {
	in := make([]complex128, min(len(src), size))
	for i := range in {
		in[i] = complex(src[i], 0)
	}

	return Forward(in, size)
}

// InverseComplex returns the normalized inverse DFT of spec. len(spec) must
// be a power of two.
func InverseComplex(spec []complex128) ([]complex128, error) {
	n := len(spec)

	p, err := plan(n)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, n)
	if err := p.Inverse(out, spec); err != nil {
		return nil, fmt.Errorf("fft: inverse transform failed: %w", err)
	}

	return out, nil
}

// ForwardReal zero-pads or truncates buffer to size and returns the full
// interleaved complex spectrum of length 2*size.
func ForwardReal(buffer []float64, size int) ([]float64, error) {
	spec, err := ForwardRealComplex(buffer, size)
	if err != nil {
		return nil, err
	}

	return Interleave(spec), nil
}

// Inverse transforms an interleaved spectrum back to the time domain and
// returns the interleaved result of the same length.
func Inverse(spectrum []float64) ([]float64, error) {
	spec, err := Deinterleave(spectrum)
	if err != nil {
		return nil, err
	}

	out, err := InverseComplex(spec)
	if err != nil {
		return nil, err
	}

	return Interleave(out), nil
}

// Interleave flattens complex values into re/im pairs.
func Interleave(src []complex128) []float64 {
	out := make([]float64, 2*len(src))
	for i, v := range src {
		out[2*i] = real(v)
		out[2*i+1] = imag(v)
	}

	return out
}

// Deinterleave converts re/im pairs to complex values.
func Deinterleave(src []float64) ([]complex128, error) {
	if len(src)%2 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrOddLength, len(src))
	}

	out := make([]complex128, len(src)/2)
	for i := range out {
		out[i] = complex(src[2*i], src[2*i+1])
	}

	return out, nil
}

// RealPart returns the real components of src.
func RealPart(src []complex128) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = real(v)
	}

	return out
}
