// Package time summarizes captured buffers in the time domain: level,
// offset, crest factor and clipping. The measurement front end uses it to
// sanity-check recordings before they reach the estimators.
package time

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
)

// ClipLevel is the absolute sample value at or above which a sample is
// counted as clipped.
const ClipLevel = 0.999

// Stats holds time-domain statistics of a capture.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	DC_dB          float64
	RMS            float64
	RMS_dB         float64
	Max            float64
	MaxPos         int
	Min            float64
	MinPos         int
	Peak           float64 // max(|max|, |min|)
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS, 0 for silence
	CrestFactor_dB float64
	Energy         float64 // sum of squares
	Variance       float64 // population variance
	Skewness       float64
	Kurtosis       float64 // excess
	ZeroCrossings  int
	Clipped        int // samples with |x| >= ClipLevel
}

// Duration returns the capture length in seconds at sampleRate.
func (s Stats) Duration(sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}

	return float64(s.Length) / sampleRate
}

// IsClipped reports whether any sample reached ClipLevel.
func (s Stats) IsClipped() bool { return s.Clipped > 0 }

func emptyStats() Stats {
	return Stats{
		DC_dB:          math.Inf(-1),
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes all statistics of signal.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return emptyStats()
	}

	maxPos, minPos := floats.MaxIdx(signal), floats.MinIdx(signal)
	maxVal, minVal := signal[maxPos], signal[minPos]

	energy := floats.Dot(signal, signal)
	rms := math.Sqrt(energy / float64(n))
	peak := math.Max(math.Abs(maxVal), math.Abs(minVal))

	mean, variance := stat.PopMeanVariance(signal, nil)

	var skewness, kurtosis float64
	if variance > 0 && n > 3 {
		skewness = stat.Skew(signal, nil)
		kurtosis = stat.ExKurtosis(signal, nil)
	}

	crest, crestdB := 0.0, 0.0
	if rms > 0 {
		crest = peak / rms
		crestdB = core.LinearToDB(crest)
	}

	return Stats{
		Length:         n,
		DC:             mean,
		DC_dB:          core.LinearToDB(math.Abs(mean)),
		RMS:            rms,
		RMS_dB:         core.LinearToDB(rms),
		Max:            maxVal,
		MaxPos:         maxPos,
		Min:            minVal,
		MinPos:         minPos,
		Peak:           peak,
		Peak_dB:        core.LinearToDB(peak),
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		Energy:         energy,
		Variance:       variance,
		Skewness:       skewness,
		Kurtosis:       kurtosis,
		ZeroCrossings:  ZeroCrossings(signal),
		Clipped:        Clipped(signal, ClipLevel),
	}
}

// RMS returns the root-mean-square of signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Sqrt(floats.Dot(signal, signal) / float64(len(signal)))
}

// DC returns the mean of signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return stat.Mean(signal, nil)
}

// Peak returns the largest absolute sample value.
func Peak(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Max(math.Abs(floats.Max(signal)), math.Abs(floats.Min(signal)))
}

// CrestFactor returns peak / RMS, or 0 when RMS is zero.
func CrestFactor(signal []float64) float64 {
	r := RMS(signal)
	if r == 0 {
		return 0
	}

	return Peak(signal) / r
}

// ZeroCrossings counts sign changes between consecutive samples.
func ZeroCrossings(signal []float64) int {
	var count int

	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}

	return count
}

// Clipped counts samples whose magnitude is at least level.
func Clipped(signal []float64, level float64) int {
	var count int

	for _, x := range signal {
		if math.Abs(x) >= level {
			count++
		}
	}

	return count
}

// RemoveDC subtracts the mean of signal in place and returns it.
func RemoveDC(signal []float64) []float64 {
	if len(signal) > 0 {
		floats.AddConst(-DC(signal), signal)
	}

	return signal
}
