package ir

import (
	"fmt"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/dsp/window"
)

// Extract cuts length samples of r centred on center and multiplies them by
// a window of type wt. Positions outside r read as zero. The result has its
// time axis centred on the segment midpoint and no complex form.
func Extract(r Response, center, length int, wt window.Type) (Response, error) {
	if err := r.Validate(); err != nil {
		return Response{}, err
	}

	if length <= 0 {
		return Response{}, fmt.Errorf("ir: segment length must be positive: %d: %w", length, core.ErrInvalidParameter)
	}

	out := make([]float64, length)
	start := center - length/2

	for i := range out {
		if j := start + i; j >= 0 && j < len(r.IR) {
			out[i] = r.IR[j]
		}
	}

	window.Apply(wt, out)

	return New(out, length/2, r.SampleRate)
}
