package conv

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/dsp/fft"
)

// Correlate computes the full cross-correlation of a and b.
// The result has length len(a) + len(b) - 1.
// Output index k corresponds to lag k - (len(b) - 1).
func Correlate(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	bReversed := make([]float64, len(b))
	for i := range b {
		bReversed[i] = b[len(b)-1-i]
	}

	return Convolve(a, bReversed)
}

// CorrelateMode computes cross-correlation with specified output mode.
func CorrelateMode(a, b []float64, mode Mode) ([]float64, error) {
	full, err := Correlate(a, b)
	if err != nil {
		return nil, err
	}

	return trimToMode(full, len(a), len(b), mode)
}

// CorrelateFFT computes the full cross-correlation as IFFT(A * conj(B)),
// laid out like [Correlate].
func CorrelateFFT(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	n := len(a)
	m := len(b)
	size := core.NextPowerOf2(n + m - 1)

	aFreq, err := fft.ForwardRealComplex(a, size)
	if err != nil {
		return nil, fmt.Errorf("conv: %w", err)
	}

	bFreq, err := fft.ForwardRealComplex(b, size)
	if err != nil {
		return nil, fmt.Errorf("conv: %w", err)
	}

	for i := range aFreq {
		aFreq[i] *= cmplx.Conj(bFreq[i])
	}

	resultTime, err := fft.InverseComplex(aFreq)
	if err != nil {
		return nil, fmt.Errorf("conv: %w", err)
	}

	// Non-negative lags sit at the start of the circular result, negative
	// lags wrap around to its end.
	result := make([]float64, n+m-1)
	for i := 0; i < n; i++ {
		result[m-1+i] = real(resultTime[i])
	}

	for i := 0; i < m-1; i++ {
		result[i] = real(resultTime[size-m+1+i])
	}

	return result, nil
}

// FindPeak finds the index and value of the maximum in a correlation result.
func FindPeak(corr []float64) (index int, value float64) {
	if len(corr) == 0 {
		return -1, 0
	}

	index = 0
	value = corr[0]

	for i, v := range corr {
		if v > value {
			index = i
			value = v
		}
	}

	return index, value
}

// LagFromIndex converts a correlation result index to a lag value.
func LagFromIndex(index, lenB int) int {
	return index - (lenB - 1)
}

// EstimateLag returns how many samples b must be delayed to line up with a,
// taken from the largest absolute cross-correlation value.
func EstimateLag(a, b []float64) (int, error) {
	corr, err := CorrelateFFT(a, b)
	if err != nil {
		return 0, err
	}

	best := 0
	for i, v := range corr {
		if math.Abs(v) > math.Abs(corr[best]) {
			best = i
		}
	}

	return LagFromIndex(best, len(b)), nil
}
