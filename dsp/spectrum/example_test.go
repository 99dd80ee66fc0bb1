package spectrum_test

import (
	"fmt"

	"github.com/maredm/dunkadunka.se-sub000/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExampleUnwrapPhase() {
	wrapped := []float64{2.8, -2.7, -2.6}
	unwrapped := spectrum.UnwrapPhase(wrapped)
	fmt.Printf("%.3f %.3f %.3f\n", unwrapped[0], unwrapped[1], unwrapped[2])
	// Output:
	// 2.800 3.583 3.683
}

func ExampleGroupDelay() {
	// Delay rises from 1 ms to 2 ms across the band.
	r := spectrum.Result{
		Frequency: []float64{0, 500, 1000, 1500, 2000},
		Magnitude: []float64{1, 1, 1, 1, 1},
		Phase:     []float64{0, -180, -360, -720, -1080},
	}

	gd, err := spectrum.GroupDelay(r, 1000)
	if err != nil {
		panic(err)
	}

	for i := range gd {
		gd[i] *= 1000
	}

	fmt.Printf("%.2f ms\n", gd)
	// Output:
	// [-0.50 -0.50 0.00 0.50 0.50] ms
}
