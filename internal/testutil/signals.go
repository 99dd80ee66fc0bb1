// Package testutil holds signal generators and tolerance assertions shared
// by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns amplitude*sin(2*pi*f*n/fs) starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	w := 2 * math.Pi * freqHz / sampleRate

	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i))
	}

	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude) from a
// seeded source, so runs are reproducible.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))

	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}

	return out
}

// Impulse returns a unit impulse at pos. An out-of-range pos gives silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Ones is DC(1, n).
func Ones(n int) []float64 { return DC(1, n) }

// SquareWave returns a bipolar square wave that starts high.
func SquareWave(freqHz, sampleRate, amplitude float64, length int) []float64 {
	period := sampleRate / freqHz

	out := make([]float64, length)
	for i := range out {
		out[i] = -amplitude
		if math.Mod(float64(i), period) < period/2 {
			out[i] = amplitude
		}
	}

	return out
}

// Delay shifts src right by n samples and truncates to len(src).
func Delay(src []float64, n int) []float64 {
	out := make([]float64, len(src))
	if n < len(src) {
		copy(out[n:], src)
	}

	return out
}

// Scale returns gain*src.
func Scale(src []float64, gain float64) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = gain * v
	}

	return out
}

// Interleave merges equally long channels into frame order.
func Interleave(channels ...[]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}

	nch := len(channels)
	out := make([]float64, nch*len(channels[0]))

	for i := range out {
		out[i] = channels[i%nch][i/nch]
	}

	return out
}
