package weighting

import (
	"fmt"
	"math"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/dsp/filter/biquad"
)

// ITU-R BS.1770 analog prototype parameters.
const (
	shelfFreq = 1681.974450955533
	shelfGain = 3.999843853973347 // dB
	shelfQ    = 0.7071752369554196
	// Exponent giving the shelf its band-pass gain at the corner.
	shelfVbExp = 0.4996667741545416

	highPassFreq = 38.13547087602444
	highPassQ    = 0.5003270373238773
)

// Type identifies a frequency weighting curve.
type Type int

const (
	// TypeK is the K-weighting of ITU-R BS.1770: a high-frequency shelf
	// (pre-filter) followed by the revised low-frequency B (RLB) high-pass.
	TypeK Type = iota

	// TypeZ applies no weighting.
	TypeZ
)

// String returns a human-readable name for the weighting type.
func (t Type) String() string {
	switch t {
	case TypeK:
		return "K"
	case TypeZ:
		return "Z"
	default:
		return "Unknown"
	}
}

// New returns a [biquad.Chain] for the given weighting curve at the given
// sample rate.
func New(t Type, sampleRate float64) (*biquad.Chain, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("weighting: sample rate must be positive: %v: %w", sampleRate, core.ErrInvalidParameter)
	}

	switch t {
	case TypeK:
		return biquad.NewChain(KWeighting(sampleRate)), nil
	case TypeZ:
		return biquad.NewChain([]biquad.Coefficients{{B0: 1}}), nil
	default:
		return nil, fmt.Errorf("weighting: unknown type %d: %w", int(t), core.ErrInvalidParameter)
	}
}

// KWeighting returns the two K-weighting stages in processing order:
// the shelf followed by the RLB high-pass. sampleRate must be positive.
func KWeighting(sampleRate float64) []biquad.Coefficients {
	return []biquad.Coefficients{Shelf(sampleRate), HighPass(sampleRate)}
}

// Shelf designs the K-weighting high shelf by bilinear transform with
// prewarping at the shelf frequency. It lifts content above about 2 kHz by
// roughly 4 dB.
func Shelf(sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * shelfFreq / sampleRate)
	k2 := k * k
	vh := math.Pow(10, shelfGain/20)
	vb := math.Pow(vh, shelfVbExp)
	a0 := 1 + k/shelfQ + k2

	return biquad.Coefficients{
		B0: (vh + vb*k/shelfQ + k2) / a0,
		B1: 2 * (k2 - vh) / a0,
		B2: (vh - vb*k/shelfQ + k2) / a0,
		A1: 2 * (k2 - 1) / a0,
		A2: (1 - k/shelfQ + k2) / a0,
	}
}

// HighPass designs the RLB high-pass. The numerator is left unnormalized
// as [1, -2, 1], matching the published 48 kHz coefficient table.
func HighPass(sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * highPassFreq / sampleRate)
	k2 := k * k
	a0 := 1 + k/highPassQ + k2

	return biquad.Coefficients{
		B0: 1,
		B1: -2,
		B2: 1,
		A1: 2 * (k2 - 1) / a0,
		A2: (1 - k/highPassQ + k2) / a0,
	}
}
