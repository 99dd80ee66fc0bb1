package thd

import (
	"testing"

	"github.com/maredm/dunkadunka.se-sub000/dsp/spectrum"
	"github.com/maredm/dunkadunka.se-sub000/internal/testutil"
)

func BenchmarkNewCurve(b *testing.B) {
	const bins = 4096

	mk := func(level float64) spectrum.Result {
		return spectrum.Result{
			Frequency:  spectrum.BinFrequencies(2*bins, 48000),
			Magnitude:  testutil.DC(level, bins),
			Phase:      make([]float64, bins),
			FFTSize:    2 * bins,
			SampleRate: 48000,
		}
	}

	fund := mk(1)
	harmonics := []spectrum.Result{mk(0.01), mk(0.005), mk(0.002), mk(0.001)}

	b.ResetTimer()

	for b.Loop() {
		if _, err := NewCurve(fund, harmonics); err != nil {
			b.Fatal(err)
		}
	}
}
