package sweep

import (
	"testing"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
)

func BenchmarkGenerate(b *testing.B) {
	d := Descriptor{StartFreq: 20, StopFreq: 20000, Duration: 1, Fade: DefaultFade, SampleRate: 48000}

	for b.Loop() {
		if _, err := Generate(d); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDeconvolve(b *testing.B) {
	d := Descriptor{StartFreq: 20, StopFreq: 20000, Duration: 0.25, Fade: DefaultFade, SampleRate: 48000}

	dc, err := NewDeconvolver(d)
	if err != nil {
		b.Fatal(err)
	}

	response := core.NewSampleBuffer(dc.Stimulus().Signal, d.SampleRate)

	b.ResetTimer()

	for b.Loop() {
		if _, err := dc.Deconvolve(response); err != nil {
			b.Fatal(err)
		}
	}
}
