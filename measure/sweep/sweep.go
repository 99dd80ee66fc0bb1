package sweep

import (
	"fmt"
	"math"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
)

// DefaultFade is the attack fade used by the command-line tools (s).
const DefaultFade = 0.01

// Errors returned by sweep functions.
var (
	ErrInvalidFrequency     = fmt.Errorf("sweep: frequency must be positive: %w", core.ErrInvalidParameter)
	ErrFrequencyOrder       = fmt.Errorf("sweep: start frequency must be less than stop frequency: %w", core.ErrInvalidParameter)
	ErrInvalidDuration      = fmt.Errorf("sweep: duration or rate must be positive: %w", core.ErrInvalidParameter)
	ErrDurationRateMismatch = fmt.Errorf("sweep: duration and rate disagree: %w", core.ErrInvalidParameter)
	ErrInvalidFade          = fmt.Errorf("sweep: fade must not be negative: %w", core.ErrInvalidParameter)
	ErrInvalidSampleRate    = fmt.Errorf("sweep: sample rate must be positive: %w", core.ErrInvalidParameter)
)

// Descriptor describes exactly one exponential sweep. The stimulus and its
// inverse filter are derived from it deterministically.
//
// Either Duration (s) or Rate (decades per second) must be set. When both
// are set they must agree to within one sample period.
type Descriptor struct {
	StartFreq  float64 // Hz
	StopFreq   float64 // Hz
	Duration   float64 // s, main sweep without fades
	Rate       float64 // decades per second
	Fade       float64 // attack length (s); the release is Fade/10
	SampleRate float64 // Hz
}

// Validate checks d and the agreement of Duration and Rate.
func (d Descriptor) Validate() error {
	_, err := d.duration()
	return err
}

// duration resolves the sweep duration from Duration and Rate.
func (d Descriptor) duration() (float64, error) {
	if d.StartFreq <= 0 || d.StopFreq <= 0 {
		return 0, ErrInvalidFrequency
	}

	if d.StartFreq >= d.StopFreq {
		return 0, fmt.Errorf("%w: %v >= %v", ErrFrequencyOrder, d.StartFreq, d.StopFreq)
	}

	if d.SampleRate <= 0 {
		return 0, ErrInvalidSampleRate
	}

	if d.Fade < 0 {
		return 0, ErrInvalidFade
	}

	if d.Duration < 0 || d.Rate < 0 || (d.Duration == 0 && d.Rate == 0) {
		return 0, ErrInvalidDuration
	}

	if d.Rate == 0 {
		return d.Duration, nil
	}

	fromRate := math.Log10(d.StopFreq/d.StartFreq) / d.Rate
	if d.Duration == 0 {
		return fromRate, nil
	}

	if math.Abs(fromRate-d.Duration) > 1/d.SampleRate {
		return 0, fmt.Errorf("%w: duration %v s, rate implies %v s", ErrDurationRateMismatch, d.Duration, fromRate)
	}

	return d.Duration, nil
}

// Ell returns the logarithmic rate constant ℓ = duration / ln(stop/start)
// in seconds. It returns 0 for an invalid descriptor.
func (d Descriptor) Ell() float64 {
	dur, err := d.duration()
	if err != nil {
		return 0
	}

	return dur / math.Log(d.StopFreq/d.StartFreq)
}

// InstantaneousFrequency returns the sweep frequency t seconds into the main
// sweep: StartFreq·e^{t/ℓ}.
func (d Descriptor) InstantaneousFrequency(t float64) float64 {
	return d.StartFreq * math.Exp(t/d.Ell())
}

// Stimulus is a synthesized sweep.
type Stimulus struct {
	Signal []float64
	// Phase is the instantaneous phase in cycles; Signal = sin(2π·Phase).
	Phase []float64
	// Time is i/SampleRate for every Signal sample.
	Time []float64
	// Envelope is the expected magnitude envelope of the sweep, padded with
	// 10 ms of leading and 1 ms of trailing zeros.
	Envelope []float64

	FadeIn       int // samples
	Samples      int // main sweep samples
	FadeOut      int // samples
	SampleRate   float64
	Ell          float64
	DurationSecs float64
}

// Buffer returns Signal as a sample buffer.
func (s Stimulus) Buffer() core.SampleBuffer {
	return core.NewSampleBuffer(s.Signal, s.SampleRate)
}

// Generate synthesizes the sweep described by d.
//
// The instantaneous phase follows φ(t) = ℓ·f1·(e^{t/ℓ} − 1). Fades are built
// into the phase: a constant-frequency segment at StartFreq is prepended and
// one at StopFreq appended, so the phase stays continuous. A linear amplitude
// ramp is applied to those two segments only.
func Generate(d Descriptor) (Stimulus, error) {
	dur, err := d.duration()
	if err != nil {
		return Stimulus{}, err
	}

	fs := d.SampleRate
	lnRatio := math.Log(d.StopFreq / d.StartFreq)
	ell := dur / lnRatio

	samples := max(1, int(math.Round(ell*lnRatio*fs)))
	fadeIn := int(math.Floor(d.Fade * fs))
	fadeOut := int(math.Floor(d.Fade / 10 * fs))
	total := fadeIn + samples + fadeOut

	phase := make([]float64, total)

	for i := range fadeIn {
		phase[i] = d.StartFreq * float64(i) / fs
	}

	offset := d.StartFreq * float64(fadeIn+1) / fs
	for i := range samples {
		t := float64(i) / fs
		phase[fadeIn+i] = ell*d.StartFreq*(math.Exp(t/ell)-1) + offset
	}

	last := phase[fadeIn+samples-1]
	for i := range fadeOut {
		phase[fadeIn+samples+i] = last + d.StopFreq*float64(i+1)/fs
	}

	signal := make([]float64, total)
	timeAxis := make([]float64, total)

	for i, p := range phase {
		signal[i] = math.Sin(2 * math.Pi * p)
		timeAxis[i] = float64(i) / fs
	}

	for i := range fadeIn {
		signal[i] *= float64(i) / float64(fadeIn)
	}

	for k := range fadeOut {
		signal[total-fadeOut+k] *= 1 - float64(k)/float64(fadeOut)
	}

	return Stimulus{
		Signal:       signal,
		Phase:        phase,
		Time:         timeAxis,
		Envelope:     envelope(timeAxis, ell, d.StopFreq, dur, fs),
		FadeIn:       fadeIn,
		Samples:      samples,
		FadeOut:      fadeOut,
		SampleRate:   fs,
		Ell:          ell,
		DurationSecs: dur,
	}, nil
}

func envelope(t []float64, ell, stop, dur, fs float64) []float64 {
	lead := int(math.Floor(0.01 * fs))
	trail := int(math.Floor(0.001 * fs))
	out := make([]float64, lead+len(t)+trail)
	scale := stop * dur * dur

	for i, ti := range t {
		out[lead+i] = math.Exp(-ti/ell) / ell * scale
	}

	return out
}
