package p56

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
)

const (
	timeConstant = 0.03 // s
	hangover     = 0.2  // s
	margin       = 15.9 // dB
	thresholds   = 15
	logOffset    = 1e-20
	tolerance    = 0.5 // dB

	// SilenceLevel is reported when no activity is found.
	SilenceLevel = -100.0
)

// ErrInvalidSampleRate is returned for a non-positive sample rate.
var ErrInvalidSampleRate = fmt.Errorf("p56: sample rate must be positive: %w", core.ErrInvalidParameter)

// Result holds the voltmeter readings.
type Result struct {
	// Level is the active speech level in dBov, SilenceLevel when Silent.
	Level float64
	// ActivityFactor is the active fraction of the signal, 0 when Silent.
	ActivityFactor float64
	// RMS is the long-term level in dBov.
	RMS      float64
	DCOffset float64

	Peak        float64
	MaxPositive float64
	MaxNegative float64

	Silent bool
}

// State is a running speech voltmeter for one signal.
//
// It accumulates across Process calls until Reset. A State is not safe for
// concurrent use.
type State struct {
	sampleRate float64
	g          float64
	hangLimit  int
	c          [thresholds]float64

	a    [thresholds]int
	hang [thresholds]int

	sum, sumSq float64
	n          int
	p, q       float64
	maxPos     float64
	maxNeg     float64
}

// NewState returns a voltmeter for signals sampled at sampleRate.
func NewState(sampleRate float64) (*State, error) {
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	s := &State{
		sampleRate: sampleRate,
		g:          math.Exp(-1 / (sampleRate * timeConstant)),
		hangLimit:  int(math.Floor(hangover*sampleRate + 0.5)),
	}

	// c[14] = 0.5 down to c[0] = 0.5/2^14.
	for j, x := 1, 0.5; j <= thresholds; j, x = j+1, x/2 {
		s.c[thresholds-j] = x
	}

	s.Reset()

	return s, nil
}

// SampleRate returns the rate the state was built for.
func (s *State) SampleRate() float64 { return s.sampleRate }

// Thresholds returns the activity thresholds, lowest first.
func (s *State) Thresholds() []float64 { return append([]float64(nil), s.c[:]...) }

// Reset clears all accumulated statistics.
func (s *State) Reset() {
	s.a = [thresholds]int{}

	for j := range s.hang {
		s.hang[j] = s.hangLimit
	}

	s.sum, s.sumSq, s.n = 0, 0, 0
	s.p, s.q = 0, 0
	s.maxPos = math.Inf(-1)
	s.maxNeg = math.Inf(1)
}

// Process runs samples through the envelope detector and activity
// counters.
func (s *State) Process(samples []float64) {
	if len(samples) == 0 {
		return
	}

	s.maxPos = max(s.maxPos, floats.Max(samples))
	s.maxNeg = min(s.maxNeg, floats.Min(samples))
	s.sum += floats.Sum(samples)
	s.sumSq += floats.Dot(samples, samples)
	s.n += len(samples)

	for _, x := range samples {
		s.p = s.g*s.p + (1-s.g)*math.Abs(x)
		s.q = s.g*s.q + (1-s.g)*s.p

		for j, c := range s.c {
			switch {
			case s.q >= c:
				s.a[j]++
				s.hang[j] = 0
			case s.hang[j] < s.hangLimit:
				s.a[j]++
				s.hang[j]++
			}
		}
	}
}

// Result computes the readings for everything processed since the last
// Reset. It does not modify the state.
func (s *State) Result() Result {
	res := Result{
		Level:  SilenceLevel,
		RMS:    10 * math.Log10(logOffset),
		Silent: true,
	}

	if s.n == 0 {
		return res
	}

	res.DCOffset = s.sum / float64(s.n)
	res.MaxPositive = s.maxPos
	res.MaxNegative = s.maxNeg
	res.Peak = max(math.Abs(s.maxPos), math.Abs(s.maxNeg))

	longTerm := 10 * math.Log10(s.sumSq/float64(s.n)+logOffset)
	res.RMS = longTerm

	if s.a[0] == 0 || s.activeDB(0)-s.thresholdDB(0) < margin {
		return res
	}

	for j := 1; j < thresholds; j++ {
		if s.a[j] == 0 {
			continue
		}

		upper, upperThr := s.activeDB(j), s.thresholdDB(j)
		if upper-upperThr > margin {
			continue
		}

		level := interpolate(upper, s.activeDB(j-1), upperThr, s.thresholdDB(j-1), margin, tolerance)

		res.Level = level
		res.ActivityFactor = math.Pow(10, (longTerm-level)/10)
		res.Silent = false

		break
	}

	return res
}

func (s *State) activeDB(j int) float64 {
	return 10 * math.Log10(s.sumSq/float64(s.a[j])+logOffset)
}

func (s *State) thresholdDB(j int) float64 {
	return 20 * math.Log10(s.c[j]+logOffset)
}

// interpolate bisects between the activity levels (up, lw) and their
// thresholds (upThr, lwThr) until level − threshold is within tol of m.
// After 20 halvings the tolerance widens by 10% per step.
func interpolate(up, lw, upThr, lwThr, m, tol float64) float64 {
	tol = math.Abs(tol)

	if math.Abs((up-upThr)-m) < tol {
		return up
	}

	if math.Abs((lw-lwThr)-m) < tol {
		return lw
	}

	mid := (up + lw) / 2
	midThr := (upThr + lwThr) / 2

	for iter := 1; ; {
		diff := (mid - midThr) - m
		if math.Abs(diff) <= tol {
			return mid
		}

		if iter++; iter > 20 {
			tol *= 1.1
		}

		switch {
		case diff > tol:
			mid = (up + mid) / 2
			midThr = (upThr + midThr) / 2
			lw, lwThr = mid, midThr
		case diff < -tol:
			mid = (mid + lw) / 2
			midThr = (midThr + lwThr) / 2
			up, upThr = mid, midThr
		}
	}
}

// Measure runs a fresh State over buffer.
func Measure(buffer core.SampleBuffer) (Result, error) {
	if err := buffer.Validate(); err != nil {
		return Result{}, fmt.Errorf("p56: %w", err)
	}

	s, err := NewState(buffer.SampleRate)
	if err != nil {
		return Result{}, err
	}

	s.Process(buffer.Samples)

	return s.Result(), nil
}
