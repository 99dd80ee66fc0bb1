package directivity_test

import (
	"context"
	"fmt"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/internal/testutil"
	"github.com/maredm/dunkadunka.se-sub000/measure/directivity"
)

func ExampleMeasure() {
	const fs = 8000.0

	ref := testutil.DeterministicNoise(3, 0.5, 512)
	side := append(make([]float64, 4), testutil.Scale(ref, 0.5)...)

	res, err := directivity.Measure(context.Background(), []directivity.Capture{
		{Angle: 0, Response: core.NewSampleBuffer(ref, fs)},
		{Angle: 90, Response: core.NewSampleBuffer(side, fs)},
	}, core.NewSampleBuffer(ref, fs))
	if err != nil {
		fmt.Println(err)
		return
	}

	for i, level := range res.Polar(1000) {
		fmt.Printf("%v°: %.2f dB\n", res.Curves[i].Angle, level)
	}
	// Output:
	// 0°: 0.00 dB
	// 90°: -6.02 dB
}
