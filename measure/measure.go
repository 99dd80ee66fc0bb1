package measure

import (
	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/dsp/spectrum"
	"github.com/maredm/dunkadunka.se-sub000/measure/ir"
	"github.com/maredm/dunkadunka.se-sub000/measure/loudness"
	"github.com/maredm/dunkadunka.se-sub000/measure/p56"
	"github.com/maredm/dunkadunka.se-sub000/measure/smoothing"
	"github.com/maredm/dunkadunka.se-sub000/measure/sweep"
	"github.com/maredm/dunkadunka.se-sub000/measure/thd"
	"github.com/maredm/dunkadunka.se-sub000/measure/transfer"
)

// SynthesizeSweep generates the exponential sweep described by d.
func SynthesizeSweep(d sweep.Descriptor) (sweep.Stimulus, error) {
	return sweep.Generate(d)
}

// EstimateTransferFunction returns response/reference as a spectrum and an
// impulse response.
func EstimateTransferFunction(response, reference core.SampleBuffer) (spectrum.Result, ir.Response, error) {
	return transfer.Estimate(response, reference)
}

// DeconvolveFarina deconvolves a recording of the sweep d. The returned
// Deconvolver holds the result for Harmonics and Delay.
func DeconvolveFarina(response core.SampleBuffer, d sweep.Descriptor) (*sweep.Deconvolver, ir.Response, error) {
	dc, err := sweep.NewDeconvolver(d)
	if err != nil {
		return nil, ir.Response{}, err
	}

	res, err := dc.Deconvolve(response)
	if err != nil {
		return nil, ir.Response{}, err
	}

	return dc, res, nil
}

// SmoothSpectrum applies fraction-octave smoothing on the default grid.
func SmoothSpectrum(r spectrum.Result, fraction float64) (spectrum.Result, error) {
	return smoothing.SmoothSpectrum(r, fraction)
}

// GroupDelay returns the group delay of r in seconds, zero at normalizeHz.
func GroupDelay(r spectrum.Result, normalizeHz float64) ([]float64, error) {
	return spectrum.GroupDelay(r, normalizeHz)
}

// MeasureLoudness returns the gated BS.1770 loudness of an interleaved
// buffer.
func MeasureLoudness(buffer core.SampleBuffer, channels int) (loudness.Result, error) {
	return loudness.Measure(buffer, channels)
}

// MeasureActiveSpeechLevel returns the P.56 active speech level of buffer.
func MeasureActiveSpeechLevel(buffer core.SampleBuffer) (p56.Result, error) {
	return p56.Measure(buffer)
}

// HarmonicDistortion separates maxOrder harmonics from the last response
// deconvolved by d, each in a window of windowSeconds, and returns the THD
// curve after fraction-octave smoothing.
func HarmonicDistortion(d *sweep.Deconvolver, windowSeconds float64, maxOrder int, fraction float64) (thd.Curve, error) {
	responses, err := d.Harmonics(windowSeconds, maxOrder)
	if err != nil {
		return thd.Curve{}, err
	}

	return thd.FromImpulseResponses(responses, fraction)
}
