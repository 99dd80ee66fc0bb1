package sweep_test

import (
	"fmt"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/measure/sweep"
)

func ExampleGenerate() {
	s, err := sweep.Generate(sweep.Descriptor{
		StartFreq:  20,
		StopFreq:   20000,
		Duration:   1,
		Fade:       sweep.DefaultFade,
		SampleRate: 48000,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("%d samples: %d fade-in, %d sweep, %d fade-out\n",
		len(s.Signal), s.FadeIn, s.Samples, s.FadeOut)

	// Output:
	// 48528 samples: 480 fade-in, 48000 sweep, 48 fade-out
}

func ExampleDeconvolver_Delay() {
	desc := sweep.Descriptor{StartFreq: 100, StopFreq: 2000, Duration: 0.5, Fade: 0.01, SampleRate: 8000}

	dc, err := sweep.NewDeconvolver(desc)
	if err != nil {
		panic(err)
	}

	// The device under test delays the sweep by 37 samples.
	recorded := append(make([]float64, 37), dc.Stimulus().Signal...)

	if _, err := dc.Deconvolve(core.NewSampleBuffer(recorded, desc.SampleRate)); err != nil {
		panic(err)
	}

	delay, _ := dc.Delay()
	fmt.Println("latency:", delay, "samples")

	// Output:
	// latency: 37 samples
}

func ExampleDeconvolver_MaxSafeHarmonic() {
	dc, err := sweep.NewDeconvolver(sweep.Descriptor{StartFreq: 50, StopFreq: 1500, Duration: 1, SampleRate: 8000})
	if err != nil {
		panic(err)
	}

	n, _ := dc.MaxSafeHarmonic(0.1)
	fmt.Printf("ell = %.3f s, %d orders fit a 100 ms window\n", dc.Ell(), n)

	// Output:
	// ell = 0.294 s, 2 orders fit a 100 ms window
}
