package smoothing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/dsp/spectrum"
)

// Errors returned by the smoother.
var (
	ErrInvalidResolution = fmt.Errorf("smoothing: grid resolution must be positive: %w", core.ErrInvalidParameter)
	ErrInvalidBand       = fmt.Errorf("smoothing: band limits must satisfy 0 < low < high: %w", core.ErrInvalidParameter)
	ErrInvalidFraction   = fmt.Errorf("smoothing: octave fraction must not be negative: %w", core.ErrInvalidParameter)
	ErrInvalidFFTSize    = fmt.Errorf("smoothing: fft size must be positive: %w", core.ErrInvalidParameter)
	ErrInvalidSampleRate = fmt.Errorf("smoothing: sample rate must be positive: %w", core.ErrInvalidParameter)
	ErrNotBinAxis        = fmt.Errorf("smoothing: input must be on the FFT bin axis: %w", core.ErrInvalidParameter)
)

// FrequencyGrid returns round(log10(fHigh/fLow)/resolution)+1 log-spaced
// frequencies from fLow to fHigh, each snapped to the nearest multiple of
// sampleRate/fftSize. Points that snap onto the same bin appear once.
//
// resolution is in decades per step: 1/96 gives 96 points per decade.
func FrequencyGrid(resolution, fLow, fHigh float64, fftSize int, sampleRate float64) ([]float64, error) {
	switch {
	case !(resolution > 0):
		return nil, fmt.Errorf("%w: %v", ErrInvalidResolution, resolution)
	case !(fLow > 0) || !(fHigh > fLow):
		return nil, fmt.Errorf("%w: %v..%v Hz", ErrInvalidBand, fLow, fHigh)
	case fftSize <= 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	case !(sampleRate > 0):
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	points := int(math.Round(math.Log10(fHigh/fLow)/resolution)) + 1
	df := sampleRate / float64(fftSize)

	grid := make([]float64, 0, points)

	for k := range points {
		f := fLow
		if points > 1 {
			f = fLow * math.Pow(fHigh/fLow, float64(k)/float64(points-1))
		}

		f = math.Round(f/df) * df
		if len(grid) > 0 && grid[len(grid)-1] == f {
			continue
		}

		grid = append(grid, f)
	}

	return grid, nil
}

// Smooth averages data, the first n bins of a 2n-point FFT (bin k at
// k·fs/2n), onto grid with a window of fraction octaves.
//
// Each grid frequency maps to bin i = round(f·2n/fs), clamped to the data.
// The half-width is w = round(0.5·(2^{fraction/2} − 2^{−fraction/2})·min(i, n−i))
// bins and the output is the mean of data[i−w+1 : i+w], clipped to the data. When
// w is zero the bin is passed through.
func Smooth(data []float64, fraction float64, grid []float64, sampleRate float64) []float64 {
	out := make([]float64, len(grid))

	n := len(data)
	if n == 0 {
		return out
	}

	prefix := make([]float64, n+1)
	floats.CumSum(prefix[1:], data)

	fac := math.Pow(2, 0.5*fraction) - math.Pow(2, -0.5*fraction)

	toBin := 0.0
	if sampleRate > 0 {
		toBin = float64(2*n) / sampleRate
	}

	for p, f := range grid {
		i := min(max(int(math.Round(f*toBin)), 0), n-1)

		w := int(math.Round(0.5 * fac * float64(min(i, n-i))))
		if w <= 0 {
			out[p] = data[i]
			continue
		}

		start := max(i-w+1, 0)
		end := min(i+w, n)
		out[p] = (prefix[end] - prefix[start]) / float64(end-start)
	}

	return out
}

// SmoothDB smooths a curve held in dB. Values are converted to linear
// magnitude, averaged and converted back.
func SmoothDB(dataDB []float64, fraction float64, grid []float64, sampleRate float64) []float64 {
	linear := make([]float64, len(dataDB))
	for i, v := range dataDB {
		linear[i] = core.DBToLinear(v)
	}

	out := Smooth(linear, fraction, grid, sampleRate)
	for i, v := range out {
		out[i] = core.LinearToDB(v)
	}

	return out
}

// SmoothSpectrum smooths the magnitude and phase of r onto a log grid.
// Magnitude is averaged linearly and phase directly in degrees. The result
// carries the grid as its Frequency axis and keeps r's FFTSize and
// SampleRate.
//
// r must be a bin-domain result: FFTSize/2 points on the axis returned by
// spectrum.BinFrequencies. An already smoothed result is rejected with
// ErrNotBinAxis.
func SmoothSpectrum(r spectrum.Result, fraction float64, opts ...Option) (spectrum.Result, error) {
	if err := r.Validate(); err != nil {
		return spectrum.Result{}, err
	}

	if fraction < 0 {
		return spectrum.Result{}, fmt.Errorf("%w: %v", ErrInvalidFraction, fraction)
	}

	if err := checkBinAxis(r); err != nil {
		return spectrum.Result{}, err
	}

	cfg := ApplyOptions(opts...)

	high := cfg.HighHz
	if high <= 0 {
		high = r.SampleRate / 2
	}

	grid, err := FrequencyGrid(cfg.Resolution, cfg.LowHz, high, r.FFTSize, r.SampleRate)
	if err != nil {
		return spectrum.Result{}, err
	}

	return spectrum.Result{
		Frequency:  grid,
		Magnitude:  Smooth(r.Magnitude, fraction, grid, r.SampleRate),
		Phase:      Smooth(r.Phase, fraction, grid, r.SampleRate),
		FFTSize:    r.FFTSize,
		SampleRate: r.SampleRate,
	}, nil
}

func checkBinAxis(r spectrum.Result) error {
	if !(r.SampleRate > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, r.SampleRate)
	}

	if r.FFTSize <= 0 || r.Len() != r.FFTSize/2 {
		return fmt.Errorf("%w: %d points for fft size %d", ErrNotBinAxis, r.Len(), r.FFTSize)
	}

	df := r.SampleRate / float64(r.FFTSize)
	for k, f := range r.Frequency {
		if math.Abs(f-float64(k)*df) > 1e-9*df {
			return fmt.Errorf("%w: point %d is %v Hz, bin is %v Hz", ErrNotBinAxis, k, f, float64(k)*df)
		}
	}

	return nil
}
