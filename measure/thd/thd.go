// Package thd computes harmonic distortion curves from separated harmonic
// responses.
package thd

import (
	"fmt"
	"math"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/dsp/spectrum"
	"github.com/maredm/dunkadunka.se-sub000/measure/ir"
	"github.com/maredm/dunkadunka.se-sub000/measure/smoothing"
)

// ErrNoFundamental is returned by FromImpulseResponses when given no
// responses at all.
var ErrNoFundamental = fmt.Errorf("thd: fundamental response is missing: %w", core.ErrInsufficientData)

// Curve is total harmonic distortion as a function of the excitation
// frequency. All slices are parallel to Frequency.
type Curve struct {
	Frequency []float64
	// THD is sqrt(Σ|H_n|²)/|H_1| over the supplied orders n >= 2.
	THD []float64
	// Even and Odd split THD into even and odd orders.
	Even []float64
	Odd  []float64
	// Harmonics[k] is |H_{k+2}|/|H_1|.
	Harmonics [][]float64
}

// NewCurve builds a distortion curve from the fundamental spectrum and the
// spectra of harmonics 2, 3, ... in order.
//
// A harmonic of order n excited at f appears at n·f, so each harmonic's
// frequency axis is divided by n and its magnitude linearly interpolated
// onto the fundamental's grid. Where the fundamental is zero the ratios are
// zero.
func NewCurve(fundamental spectrum.Result, harmonics []spectrum.Result) (Curve, error) {
	if err := fundamental.Validate(); err != nil {
		return Curve{}, err
	}

	n := fundamental.Len()
	c := Curve{
		Frequency: append([]float64(nil), fundamental.Frequency...),
		THD:       make([]float64, n),
		Even:      make([]float64, n),
		Odd:       make([]float64, n),
		Harmonics: make([][]float64, len(harmonics)),
	}

	for k, h := range harmonics {
		order := float64(k + 2)

		if err := h.Validate(); err != nil {
			return Curve{}, fmt.Errorf("thd: harmonic %d: %w", k+2, err)
		}

		axis := make([]float64, h.Len())
		for i, f := range h.Frequency {
			axis[i] = f / order
		}

		mag, err := spectrum.InterpolateLinear(axis, h.Magnitude, fundamental.Frequency)
		if err != nil {
			return Curve{}, fmt.Errorf("thd: harmonic %d: %w", k+2, err)
		}

		for i, m := range mag {
			h1 := fundamental.Magnitude[i]
			if h1 == 0 {
				mag[i] = 0
				continue
			}

			mag[i] = m / h1
			p := mag[i] * mag[i]

			c.THD[i] += p
			if (k+2)%2 == 0 {
				c.Even[i] += p
			} else {
				c.Odd[i] += p
			}
		}

		c.Harmonics[k] = mag
	}

	for i := range c.THD {
		c.THD[i] = math.Sqrt(c.THD[i])
		c.Even[i] = math.Sqrt(c.Even[i])
		c.Odd[i] = math.Sqrt(c.Odd[i])
	}

	return c, nil
}

// FromImpulseResponses transforms separated harmonic impulse responses
// (element 0 the fundamental) into smoothed spectra and builds the curve.
// fraction is the smoothing width in octaves.
func FromImpulseResponses(responses []ir.Response, fraction float64, opts ...smoothing.Option) (Curve, error) {
	if len(responses) == 0 {
		return Curve{}, ErrNoFundamental
	}

	spectra := make([]spectrum.Result, len(responses))

	for i, r := range responses {
		spec, err := ir.Spectrum(r, 1000)
		if err != nil {
			return Curve{}, fmt.Errorf("thd: order %d: %w", i+1, err)
		}

		spectra[i], err = smoothing.SmoothSpectrum(spec, fraction, opts...)
		if err != nil {
			return Curve{}, fmt.Errorf("thd: order %d: %w", i+1, err)
		}
	}

	return NewCurve(spectra[0], spectra[1:])
}

// DB returns THD in dB relative to the fundamental, floored at floorDB.
func (c Curve) DB(floorDB float64) []float64 {
	out := make([]float64, len(c.THD))
	for i, v := range c.THD {
		out[i] = math.Max(core.LinearToDB(v), floorDB)
	}

	return out
}

// Percent returns THD in percent.
func (c Curve) Percent() []float64 {
	out := make([]float64, len(c.THD))
	for i, v := range c.THD {
		out[i] = 100 * v
	}

	return out
}

// At returns the THD ratio at the point nearest freqHz, or 0 for an empty
// curve.
func (c Curve) At(freqHz float64) float64 {
	i := core.ClosestIndex(c.Frequency, freqHz)
	if i < 0 {
		return 0
	}

	return c.THD[i]
}
