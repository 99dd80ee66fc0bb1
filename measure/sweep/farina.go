package sweep

import (
	"errors"
	"fmt"
	"math"

	"github.com/maredm/dunkadunka.se-sub000/dsp/conv"
	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/dsp/window"
	"github.com/maredm/dunkadunka.se-sub000/measure/ir"
)

// maxHarmonicScan bounds the MaxSafeHarmonic search.
const maxHarmonicScan = 1000

// Errors returned by the deconvolver.
var (
	ErrEmptyResponse       = fmt.Errorf("sweep: response signal is empty: %w", core.ErrInsufficientData)
	ErrSampleRateMismatch  = fmt.Errorf("sweep: response sample rate differs from sweep: %w", core.ErrInvalidParameter)
	ErrNotDeconvolved      = errors.New("sweep: no response has been deconvolved")
	ErrInvalidWindow       = fmt.Errorf("sweep: harmonic window must be positive: %w", core.ErrInvalidParameter)
	ErrInvalidOrder        = fmt.Errorf("sweep: harmonic order must be >= 1: %w", core.ErrInvalidParameter)
	ErrHarmonicScanTooLong = fmt.Errorf("sweep: no harmonic limit below %d: %w", maxHarmonicScan, core.ErrInsufficientData)
)

// Deconvolver recovers impulse responses from recordings of one sweep.
//
// A Deconvolver keeps the last deconvolved response for Harmonics and is not
// safe for concurrent use. Use one per measurement stream.
type Deconvolver struct {
	desc     Descriptor
	stimulus Stimulus
	inverse  []float64
	norm     float64
	refPeak  int

	last  ir.Response
	delay int
	done  bool
}

// NewDeconvolver synthesizes the sweep of d and its inverse filter:
// the time-reversed stimulus divided by e^{i/(ℓ·fs)}, normalized so the
// stimulus deconvolves to a unit peak.
func NewDeconvolver(d Descriptor) (*Deconvolver, error) {
	stim, err := Generate(d)
	if err != nil {
		return nil, err
	}

	n := len(stim.Signal)
	inv := make([]float64, n)
	rate := stim.Ell * d.SampleRate

	for i := range inv {
		inv[i] = stim.Signal[n-1-i] / math.Exp(float64(i)/rate)
	}

	self, err := conv.ConvolveMode(stim.Signal, inv, conv.ModeSame)
	if err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}

	norm := 0.0
	for _, v := range self {
		norm = max(norm, math.Abs(v))
	}

	if norm == 0 {
		return nil, fmt.Errorf("sweep: degenerate stimulus: %w", core.ErrInvalidParameter)
	}

	return &Deconvolver{
		desc:     d,
		stimulus: stim,
		inverse:  inv,
		norm:     norm,
		refPeak:  ir.PeakIndex(self),
	}, nil
}

// Descriptor returns the sweep the deconvolver was built for.
func (dc *Deconvolver) Descriptor() Descriptor { return dc.desc }

// Stimulus returns the synthesized sweep.
func (dc *Deconvolver) Stimulus() Stimulus { return dc.stimulus }

// InverseFilter returns a copy of the compensated, time-reversed sweep.
func (dc *Deconvolver) InverseFilter() []float64 {
	return append([]float64(nil), dc.inverse...)
}

// Ell returns the sweep's logarithmic rate constant in seconds.
func (dc *Deconvolver) Ell() float64 { return dc.stimulus.Ell }

// Deconvolve convolves response with the inverse filter ("same" length) and
// scales the result so that the sweep itself would produce a unit peak.
// The returned response is centred on its largest signed sample.
func (dc *Deconvolver) Deconvolve(response core.SampleBuffer) (ir.Response, error) {
	if len(response.Samples) == 0 {
		return ir.Response{}, ErrEmptyResponse
	}

	if response.SampleRate != dc.desc.SampleRate {
		return ir.Response{}, fmt.Errorf("%w: %v != %v", ErrSampleRateMismatch, response.SampleRate, dc.desc.SampleRate)
	}

	out, err := conv.ConvolveMode(response.Samples, dc.inverse, conv.ModeSame)
	if err != nil {
		return ir.Response{}, fmt.Errorf("sweep: %w", err)
	}

	for i := range out {
		out[i] /= dc.norm
	}

	peak := ir.PeakIndex(out)

	res, err := ir.New(out, peak, response.SampleRate)
	if err != nil {
		return ir.Response{}, err
	}

	dc.last = res
	dc.delay = peak - dc.refPeak
	dc.done = true

	return res, nil
}

// Delay returns the latency of the last deconvolved response relative to
// the stimulus, in samples.
func (dc *Deconvolver) Delay() (int, error) {
	if !dc.done {
		return 0, ErrNotDeconvolved
	}

	return dc.delay, nil
}

// LagOfHarmonic returns how far before the fundamental peak the n-th
// harmonic's impulse response appears: ℓ·ln(n) seconds.
func (dc *Deconvolver) LagOfHarmonic(n int) float64 {
	return dc.Ell() * math.Log(float64(n))
}

// MarginOfHarmonic returns the time between the n-th and (n+1)-th harmonic
// impulse responses: ℓ·ln(n+1) − ℓ·ln(n) seconds.
func (dc *Deconvolver) MarginOfHarmonic(n int) float64 {
	return dc.Ell()*math.Log(float64(n+1)) - dc.Ell()*math.Log(float64(n))
}

// MaxSafeHarmonic returns the number of harmonic orders, starting at the
// fundamental, whose margin exceeds windowSeconds. Windows of that length
// around those orders do not overlap.
func (dc *Deconvolver) MaxSafeHarmonic(windowSeconds float64) (int, error) {
	if windowSeconds <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidWindow, windowSeconds)
	}

	for n := 1; n < maxHarmonicScan; n++ {
		if dc.MarginOfHarmonic(n) <= windowSeconds {
			return n - 1, nil
		}
	}

	return 0, ErrHarmonicScanTooLong
}

type harmonicConfig struct {
	window window.Type
}

// HarmonicOption configures Harmonics.
type HarmonicOption func(*harmonicConfig)

// WithWindow selects the taper applied to each harmonic segment.
// Default is Hann.
func WithWindow(t window.Type) HarmonicOption {
	return func(cfg *harmonicConfig) { cfg.window = t }
}

// Harmonics separates the last deconvolved response into maxOrder impulse
// responses. Element 0 is the fundamental and element n-1 the n-th
// harmonic. Each is a window of floor(windowSeconds·fs) samples centred
// lag(n) before the fundamental peak.
//
// Callers should keep maxOrder within MaxSafeHarmonic(windowSeconds); larger
// orders overlap their neighbours.
func (dc *Deconvolver) Harmonics(windowSeconds float64, maxOrder int, opts ...HarmonicOption) ([]ir.Response, error) {
	if !dc.done {
		return nil, ErrNotDeconvolved
	}

	if maxOrder < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, maxOrder)
	}

	fs := dc.last.SampleRate

	size := int(math.Floor(windowSeconds * fs))
	if windowSeconds <= 0 || size < 1 {
		return nil, fmt.Errorf("%w: %v s", ErrInvalidWindow, windowSeconds)
	}

	cfg := harmonicConfig{window: window.TypeHann}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]ir.Response, maxOrder)

	for n := 1; n <= maxOrder; n++ {
		at := int(math.Round(float64(dc.last.PeakIndex) - dc.LagOfHarmonic(n)*fs))

		seg, err := ir.Extract(dc.last, at, size, cfg.window)
		if err != nil {
			return nil, err
		}

		out[n-1] = seg
	}

	return out, nil
}
