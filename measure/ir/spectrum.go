package ir

import (
	"fmt"
	"math"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/dsp/fft"
	"github.com/maredm/dunkadunka.se-sub000/dsp/spectrum"
)

// Spectrum transforms r into a one-sided spectrum of FFTSize/2 bins.
//
// The complex form is transformed when present; otherwise the real IR is
// zero-padded to the next power of two. Phase is unwrapped, shifted by the
// whole number of turns found at the bin nearest phaseRefHz, and returned in
// degrees.
func Spectrum(r Response, phaseRefHz float64) (spectrum.Result, error) {
	if err := r.Validate(); err != nil {
		return spectrum.Result{}, err
	}

	var (
		bins []complex128
		err  error
	)

	if len(r.Complex) > 0 {
		bins, err = fft.Forward(r.Complex, core.NextPowerOf2(len(r.Complex)))
	} else {
		bins, err = fft.ForwardRealComplex(r.IR, core.NextPowerOf2(len(r.IR)))
	}

	if err != nil {
		return spectrum.Result{}, fmt.Errorf("ir: %w", err)
	}

	n := len(bins)
	if n < 2 {
		return spectrum.Result{}, fmt.Errorf("ir: spectrum needs at least 2 samples: %w", core.ErrInsufficientData)
	}

	half := bins[:n/2]
	freq := spectrum.BinFrequencies(n, r.SampleRate)
	phase := spectrum.UnwrapPhase(spectrum.Phase(half))

	ref := phase[core.ClosestIndex(freq, phaseRefHz)]
	turns := math.Floor(ref/(2*math.Pi)+0.5) * 2 * math.Pi

	for i := range phase {
		phase[i] -= turns
	}

	return spectrum.Result{
		Frequency:  freq,
		Magnitude:  spectrum.Magnitude(half),
		Phase:      spectrum.RadiansToDegrees(phase),
		FFTSize:    n,
		SampleRate: r.SampleRate,
	}, nil
}
