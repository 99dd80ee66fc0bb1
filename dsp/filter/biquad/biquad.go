package biquad

import (
	"math"
	"math/cmplx"
)

// Coefficients holds one second-order section with a0 normalized to 1.
//
// Processing is Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Step filters x through c using the delay line in state and returns the
// output. state is updated in place.
func Step(c Coefficients, state *[2]float64, x float64) float64 {
	y := c.B0*x + state[0]
	state[0] = c.B1*x - c.A1*y + state[1]
	state[1] = c.B2*x - c.A2*y

	return y
}

// Response evaluates H(z) on the unit circle at freqHz.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z1 := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate)
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return num / den
}

// MagnitudeDB returns 20*log10|H(f)|.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}
