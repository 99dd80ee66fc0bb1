package transfer

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/dsp/fft"
	"github.com/maredm/dunkadunka.se-sub000/dsp/spectrum"
	"github.com/maredm/dunkadunka.se-sub000/measure/ir"
)

// ErrSampleRateMismatch is returned when response and reference were
// captured at different rates.
var ErrSampleRateMismatch = fmt.Errorf("transfer: response and reference sample rates differ: %w", core.ErrInvalidParameter)

// Estimate returns the transfer function response/reference as a one-sided
// spectrum together with its impulse response.
//
// The impulse response has N samples, N = NextPowerOf2(len(response) +
// len(reference) - 1), with zero delay at N/2 and its mean removed. Its peak
// is the largest signed sample; PeakAt is the delay of that peak in samples.
// The spectrum is computed from the peak-rotated complex form, so a pure
// delay yields flat phase.
func Estimate(response, reference core.SampleBuffer, opts ...Option) (spectrum.Result, ir.Response, error) {
	if err := response.Validate(); err != nil {
		return spectrum.Result{}, ir.Response{}, fmt.Errorf("transfer: response: %w", err)
	}

	if err := reference.Validate(); err != nil {
		return spectrum.Result{}, ir.Response{}, fmt.Errorf("transfer: reference: %w", err)
	}

	if response.SampleRate != reference.SampleRate {
		return spectrum.Result{}, ir.Response{}, fmt.Errorf("%w: %v != %v",
			ErrSampleRateMismatch, response.SampleRate, reference.SampleRate)
	}

	cfg := ApplyOptions(opts...)

	resp, err := impulseResponse(response.Samples, reference.Samples, response.SampleRate, cfg.Epsilon)
	if err != nil {
		return spectrum.Result{}, ir.Response{}, err
	}

	spec, err := ir.Spectrum(resp, cfg.PhaseReferenceHz)
	if err != nil {
		return spectrum.Result{}, ir.Response{}, err
	}

	return spec, resp, nil
}

func impulseResponse(a, b []float64, sampleRate, eps float64) (ir.Response, error) {
	n := core.NextPowerOf2(len(a) + len(b) - 1)

	specA, err := fft.ForwardRealComplex(a, n)
	if err != nil {
		return ir.Response{}, fmt.Errorf("transfer: %w", err)
	}

	specB, err := fft.ForwardRealComplex(b, n)
	if err != nil {
		return ir.Response{}, fmt.Errorf("transfer: %w", err)
	}

	for k, bk := range specB {
		p := real(bk)*real(bk) + imag(bk)*imag(bk)
		specA[k] = specA[k] * cmplx.Conj(bk) / complex(p+eps, 0)
	}

	h, err := fft.InverseComplex(specA)
	if err != nil {
		return ir.Response{}, fmt.Errorf("transfer: %w", err)
	}

	samples := make([]float64, n)
	for i := range samples {
		samples[i] = real(h[(i+n/2)%n])
	}

	floats.AddConst(-floats.Sum(samples)/float64(n), samples)

	resp, err := ir.New(samples, ir.PeakIndex(samples), sampleRate)
	if err != nil {
		return ir.Response{}, err
	}

	resp.Complex = make([]complex128, n)
	for i := range resp.Complex {
		resp.Complex[i] = h[((i+resp.PeakAt)%n+n)%n]
	}

	return resp, nil
}
