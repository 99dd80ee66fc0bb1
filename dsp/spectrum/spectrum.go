package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-vecmath"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
)

// Errors returned by the spectrum helpers.
var (
	ErrEmpty          = fmt.Errorf("spectrum: empty input: %w", core.ErrInsufficientData)
	ErrLengthMismatch = fmt.Errorf("spectrum: length mismatch: %w", core.ErrInvalidParameter)
	ErrNotIncreasing  = fmt.Errorf("spectrum: abscissa must be strictly increasing: %w", core.ErrInvalidParameter)
)

// Magnitude returns |X[k]| for each bin, or nil for no bins.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	re := make([]float64, len(in))
	im := make([]float64, len(in))

	for i, c := range in {
		re[i], im[i] = real(c), imag(c)
	}

	out := make([]float64, len(in))
	vecmath.Magnitude(out, re, im)

	return out
}

// Phase returns arg(X[k]) in radians for each bin.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}

	return out
}

// UnwrapPhase returns a copy of phase with every jump larger than pi
// folded back by a multiple of 2*pi.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}

	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0

	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]

		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}

		out[i] = phase[i] + offset
	}

	return out
}

// RadiansToDegrees rescales phase in place and returns it.
func RadiansToDegrees(phase []float64) []float64 {
	for i := range phase {
		phase[i] *= 180 / math.Pi
	}

	return phase
}

// InterpolateLinear evaluates the polyline through (x, y) at each query.
// Queries outside [x[0], x[n-1]] take the nearest end value. x must be
// strictly increasing.
func InterpolateLinear(x, y, queryX []float64) ([]float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, ErrEmpty
	}

	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: x=%d y=%d", ErrLengthMismatch, len(x), len(y))
	}

	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("%w: index %d", ErrNotIncreasing, i)
		}
	}

	out := make([]float64, len(queryX))

	for i, q := range queryX {
		if q <= x[0] {
			out[i] = y[0]
			continue
		}

		if q >= x[len(x)-1] {
			out[i] = y[len(y)-1]
			continue
		}

		j := sort.SearchFloat64s(x, q)
		x0, x1 := x[j-1], x[j]
		t := (q - x0) / (x1 - x0)
		out[i] = y[j-1] + t*(y[j]-y[j-1])
	}

	return out, nil
}
