package biquad

import (
	"math"
	"math/cmplx"
)

// Chain runs a fixed list of sections in series, each with its own delay
// line.
type Chain struct {
	coeffs []Coefficients
	state  [][2]float64
}

// NewChain returns a chain over a copy of coeffs with cleared state.
func NewChain(coeffs []Coefficients) *Chain {
	return &Chain{
		coeffs: append([]Coefficients(nil), coeffs...),
		state:  make([][2]float64, len(coeffs)),
	}
}

// Len returns the number of sections.
func (c *Chain) Len() int { return len(c.coeffs) }

// Coefficients returns a copy of the section coefficients.
func (c *Chain) Coefficients() []Coefficients {
	return append([]Coefficients(nil), c.coeffs...)
}

// ProcessSample pushes one sample through every section.
func (c *Chain) ProcessSample(x float64) float64 {
	for k := range c.coeffs {
		x = Step(c.coeffs[k], &c.state[k], x)
	}

	return x
}

// ProcessBlock filters buf in place, section by section.
func (c *Chain) ProcessBlock(buf []float64) {
	for k := range c.coeffs {
		co, st := c.coeffs[k], &c.state[k]
		for i, x := range buf {
			buf[i] = Step(co, st, x)
		}
	}
}

// Reset clears every delay line.
func (c *Chain) Reset() {
	clear(c.state)
}

// Response is the product of the section responses.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for _, co := range c.coeffs {
		h *= co.Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns the cascaded magnitude in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// ImpulseResponse returns the first n output samples of a cleared copy of
// the chain driven by a unit impulse. c itself is not touched.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	out[0] = 1
	NewChain(c.coeffs).ProcessBlock(out)

	return out
}
