package spectrum

import (
	"fmt"
	"math"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
)

// Result is a one-sided spectrum: parallel frequency (Hz), linear magnitude
// and phase (degrees) arrays. Bin-domain results hold FFTSize/2 points
// starting at 0 Hz; smoothed results hold their log-spaced grid instead.
type Result struct {
	Frequency  []float64
	Magnitude  []float64
	Phase      []float64
	FFTSize    int
	SampleRate float64
}

// BinFrequencies returns the frequencies of the first fftSize/2 bins.
func BinFrequencies(fftSize int, sampleRate float64) []float64 {
	out := make([]float64, fftSize/2)
	df := sampleRate / float64(fftSize)

	for k := range out {
		out[k] = float64(k) * df
	}

	return out
}

// Len returns the number of points.
func (r Result) Len() int { return len(r.Frequency) }

// Validate checks the parallel-array invariants.
func (r Result) Validate() error {
	n := len(r.Frequency)
	if n == 0 {
		return ErrEmpty
	}

	if len(r.Magnitude) != n || len(r.Phase) != n {
		return fmt.Errorf("%w: frequency=%d magnitude=%d phase=%d",
			ErrLengthMismatch, n, len(r.Magnitude), len(r.Phase))
	}

	for i := 1; i < n; i++ {
		if !(r.Frequency[i] > r.Frequency[i-1]) {
			return fmt.Errorf("%w: index %d", ErrNotIncreasing, i)
		}
	}

	return nil
}

// MagnitudeDB returns the magnitude in dB (20*log10), floored at floorDB.
func (r Result) MagnitudeDB(floorDB float64) []float64 {
	out := make([]float64, len(r.Magnitude))
	for i, m := range r.Magnitude {
		out[i] = math.Max(core.LinearToDB(m), floorDB)
	}

	return out
}

// At returns the magnitude and phase at the point nearest freqHz.
func (r Result) At(freqHz float64) (magnitude, phase float64) {
	i := core.ClosestIndex(r.Frequency, freqHz)
	if i < 0 {
		return 0, 0
	}

	return r.Magnitude[i], r.Phase[i]
}

// Clone returns a deep copy.
func (r Result) Clone() Result {
	return Result{
		Frequency:  append([]float64(nil), r.Frequency...),
		Magnitude:  append([]float64(nil), r.Magnitude...),
		Phase:      append([]float64(nil), r.Phase...),
		FFTSize:    r.FFTSize,
		SampleRate: r.SampleRate,
	}
}
