package biquad_test

import (
	"fmt"

	"github.com/maredm/dunkadunka.se-sub000/dsp/filter/biquad"
)

func ExampleStep() {
	delay := biquad.Coefficients{B1: 1}

	// One delay line per channel.
	states := make([][2]float64, 2)
	left := biquad.Step(delay, &states[0], 3)
	right := biquad.Step(delay, &states[1], 4)
	fmt.Println(left, right, biquad.Step(delay, &states[0], 0), biquad.Step(delay, &states[1], 0))
	// Output:
	// 0 0 3 4
}

func ExampleChain() {
	avg := biquad.Coefficients{B0: 0.5, B1: 0.5}
	chain := biquad.NewChain([]biquad.Coefficients{avg, avg})

	out := make([]float64, 3)
	for i := range out {
		out[i] = chain.ProcessSample(1)
	}

	fmt.Printf("%.2f\n", out)
	fmt.Printf("DC: %.1f dB\n", chain.MagnitudeDB(0, 48000))
	// Output:
	// [0.25 0.75 1.00]
	// DC: 0.0 dB
}
