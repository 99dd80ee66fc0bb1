package ir

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Metrics holds ISO 3382 decay parameters of an impulse response.
type Metrics struct {
	RT60       float64 // T30 when available, else T20 (s)
	EDT        float64 // early decay time, 0 to -10 dB (s)
	T20        float64 // -5 to -25 dB, extrapolated (s)
	T30        float64 // -5 to -35 dB, extrapolated (s)
	C50        float64 // dB
	C80        float64 // dB
	D50        float64 // 0..1
	D80        float64 // 0..1
	CenterTime float64 // s after the peak
}

// Analyze computes decay metrics from the part of r that follows its peak.
func Analyze(r Response) (Metrics, error) {
	if err := r.Validate(); err != nil {
		return Metrics{}, err
	}

	tail := r.IR[r.PeakIndex:]
	fs := r.SampleRate
	decay := Schroeder(tail)

	m := Metrics{
		EDT:        reverbTime(decay, fs, 0, -10),
		T20:        reverbTime(decay, fs, -5, -25),
		T30:        reverbTime(decay, fs, -5, -35),
		C50:        clarity(tail, fs, 0.050),
		C80:        clarity(tail, fs, 0.080),
		D50:        definition(tail, fs, 0.050),
		D80:        definition(tail, fs, 0.080),
		CenterTime: centerTime(tail, fs),
	}

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}

	return m, nil
}

// RT60 returns the reverberation time of r, from T30 when the decay reaches
// -35 dB and from T20 otherwise.
func RT60(r Response) (float64, error) {
	m, err := Analyze(r)
	if err != nil {
		return 0, err
	}

	if m.RT60 == 0 {
		return 0, ErrNoDecay
	}

	return m.RT60, nil
}

// Clarity returns C(t) of r in dB for a boundary of seconds after the peak.
func Clarity(r Response, seconds float64) (float64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}

	if seconds <= 0 {
		return 0, ErrInvalidTime
	}

	return clarity(r.IR[r.PeakIndex:], r.SampleRate, seconds), nil
}

// Schroeder returns the backward-integrated energy decay of h in dB relative
// to the total energy:
//
//	S(t) = 10*log10( ∫_t^∞ h²(τ) dτ / ∫_0^∞ h²(τ) dτ )
//
// Values below -200 dB are floored there. All-zero input returns zeros.
func Schroeder(h []float64) []float64 {
	out := make([]float64, len(h))

	var sum float64
	for i := len(h) - 1; i >= 0; i-- {
		sum += h[i] * h[i]
		out[i] = sum
	}

	if len(out) == 0 || out[0] <= 0 {
		return out
	}

	floats.Scale(1/out[0], out)

	for i, v := range out {
		if v <= 0 {
			out[i] = -200
			continue
		}

		out[i] = 10 * math.Log10(v)
	}

	return out
}

// reverbTime fits a line to decay between startDB and endDB and
// extrapolates it to -60 dB. Returns 0 when the range is not reached.
func reverbTime(decay []float64, fs, startDB, endDB float64) float64 {
	first, last := -1, -1

	for i, v := range decay {
		if first < 0 && v <= startDB {
			first = i
		}

		if first >= 0 && v <= endDB {
			last = i
			break
		}
	}

	if first < 0 || last-first < 1 {
		return 0
	}

	ys := decay[first : last+1]
	xs := make([]float64, len(ys))

	for i := range xs {
		xs[i] = float64(i) / fs
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)
	if slope >= 0 {
		return 0
	}

	return -60 / slope
}

func boundary(fs, seconds float64) int {
	return int(math.Round(seconds * fs))
}

func definition(h []float64, fs, seconds float64) float64 {
	b := boundary(fs, seconds)
	if b <= 0 {
		return 0
	}

	if b >= len(h) {
		return 1
	}

	total := floats.Dot(h, h)
	if total <= 0 {
		return 0
	}

	return floats.Dot(h[:b], h[:b]) / total
}

func clarity(h []float64, fs, seconds float64) float64 {
	b := boundary(fs, seconds)
	if b <= 0 {
		return math.Inf(-1)
	}

	if b >= len(h) {
		return math.Inf(1)
	}

	early := floats.Dot(h[:b], h[:b])
	late := floats.Dot(h[b:], h[b:])

	switch {
	case late <= 0:
		return math.Inf(1)
	case early <= 0:
		return math.Inf(-1)
	}

	return 10 * math.Log10(early/late)
}

func centerTime(h []float64, fs float64) float64 {
	var num, den float64

	for i, v := range h {
		e := v * v
		num += float64(i) / fs * e
		den += e
	}

	if den <= 0 {
		return 0
	}

	return num / den
}
