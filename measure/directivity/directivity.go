package directivity

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/dsp/spectrum"
	"github.com/maredm/dunkadunka.se-sub000/measure/smoothing"
	"github.com/maredm/dunkadunka.se-sub000/measure/transfer"
)

// Errors returned by Measure.
var (
	ErrNoCaptures   = fmt.Errorf("directivity: no captures: %w", core.ErrInsufficientData)
	ErrNoOnAxis     = fmt.Errorf("directivity: no 0° capture to normalize against: %w", core.ErrInvalidParameter)
	ErrSilentOnAxis = fmt.Errorf("directivity: on-axis magnitude is zero at the normalization frequency: %w", core.ErrInsufficientData)
)

// Capture is the response recorded at one angle.
type Capture struct {
	Angle    float64 // degrees
	Response core.SampleBuffer
}

// Curve is the normalized response at one angle.
type Curve struct {
	Angle float64
	// Spectrum is the smoothed transfer function before normalization.
	Spectrum spectrum.Result
	// Level is the smoothed magnitude relative to the on-axis magnitude at
	// the normalization frequency, in dB.
	Level []float64
	// Delay is the impulse response peak offset in samples.
	Delay int
}

// Result holds one Curve per capture, in capture order.
type Result struct {
	Curves []Curve
	// NormalizeHz is the grid frequency actually used for normalization.
	NormalizeHz float64
	// OnAxis is the index of the 0° curve.
	OnAxis int
}

// Measure estimates and normalizes every capture against reference. The
// captures are processed by a pool of Workers goroutines; ctx cancellation
// stops the pool between captures.
func Measure(ctx context.Context, captures []Capture, reference core.SampleBuffer, opts ...Option) (Result, error) {
	if len(captures) == 0 {
		return Result{}, ErrNoCaptures
	}

	onAxis := -1

	for i, c := range captures {
		if isOnAxis(c.Angle) {
			onAxis = i
			break
		}
	}

	if onAxis < 0 {
		return Result{}, ErrNoOnAxis
	}

	cfg := ApplyOptions(opts...)

	curves, err := estimateAll(ctx, captures, reference, cfg)
	if err != nil {
		return Result{}, err
	}

	axis := curves[onAxis].Spectrum

	k := core.ClosestIndex(axis.Frequency, cfg.NormalizeHz)
	ref := axis.Magnitude[k]

	if ref == 0 {
		return Result{}, fmt.Errorf("%w: %v Hz", ErrSilentOnAxis, axis.Frequency[k])
	}

	for i := range curves {
		level := make([]float64, curves[i].Spectrum.Len())
		for j, v := range curves[i].Spectrum.Magnitude {
			level[j] = core.LinearToDB(v / ref)
		}

		curves[i].Level = level
	}

	return Result{
		Curves:      curves,
		NormalizeHz: axis.Frequency[k],
		OnAxis:      onAxis,
	}, nil
}

func estimateAll(ctx context.Context, captures []Capture, reference core.SampleBuffer, cfg Config) ([]Curve, error) {
	curves := make([]Curve, len(captures))
	errs := make([]error, len(captures))
	jobs := make(chan int)

	var wg sync.WaitGroup

	for range min(cfg.Workers, len(captures)) {
		wg.Go(func() {
			for i := range jobs {
				curves[i], errs[i] = estimate(captures[i], reference, cfg)
			}
		})
	}

feed:
	for i := range captures {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("directivity: %w", err)
	}

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("directivity: capture %d (%v°): %w", i, captures[i].Angle, err)
		}
	}

	return curves, nil
}

func estimate(c Capture, reference core.SampleBuffer, cfg Config) (Curve, error) {
	spec, resp, err := transfer.Estimate(c.Response, reference, cfg.Transfer...)
	if err != nil {
		return Curve{}, err
	}

	smoothed, err := smoothing.SmoothSpectrum(spec, cfg.Fraction, cfg.Smoothing...)
	if err != nil {
		return Curve{}, err
	}

	return Curve{
		Angle:    c.Angle,
		Spectrum: smoothed,
		Delay:    resp.PeakAt,
	}, nil
}

func isOnAxis(angle float64) bool {
	a := math.Mod(angle, 360)

	return math.Abs(a) < 1e-9 || math.Abs(math.Abs(a)-360) < 1e-9
}

// Find returns the curve measured at angle (degrees, modulo 360).
func (r Result) Find(angle float64) (Curve, bool) {
	for _, c := range r.Curves {
		if isOnAxis(c.Angle - angle) {
			return c, true
		}
	}

	return Curve{}, false
}

// Polar returns the level of every curve at the grid point nearest freqHz,
// in capture order.
func (r Result) Polar(freqHz float64) []float64 {
	out := make([]float64, len(r.Curves))

	for i, c := range r.Curves {
		k := core.ClosestIndex(c.Spectrum.Frequency, freqHz)
		if k < 0 {
			out[i] = math.Inf(-1)
			continue
		}

		out[i] = c.Level[k]
	}

	return out
}
