package thd_test

import (
	"fmt"

	"github.com/maredm/dunkadunka.se-sub000/dsp/spectrum"
	"github.com/maredm/dunkadunka.se-sub000/measure/thd"
)

func ExampleNewCurve() {
	freq := []float64{100, 200, 400, 800}

	fundamental := spectrum.Result{Frequency: freq, Magnitude: []float64{1, 1, 1, 1}, Phase: make([]float64, 4)}
	second := spectrum.Result{Frequency: freq, Magnitude: []float64{0.01, 0.01, 0.01, 0.01}, Phase: make([]float64, 4)}
	third := spectrum.Result{Frequency: freq, Magnitude: []float64{0.02, 0.02, 0.02, 0.02}, Phase: make([]float64, 4)}

	c, err := thd.NewCurve(fundamental, []spectrum.Result{second, third})
	if err != nil {
		panic(err)
	}

	fmt.Printf("THD at 200 Hz: %.2f%% (%.1f dB)\n", c.Percent()[1], c.DB(-120)[1])

	// Output:
	// THD at 200 Hz: 2.24% (-33.0 dB)
}
