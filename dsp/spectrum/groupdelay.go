package spectrum

import (
	"fmt"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
)

// GroupDelay differentiates the unwrapped phase (degrees) of r with respect
// to frequency and returns the delay in seconds per point:
//
//	gd[i] = -(phase[i+1] - phase[i-1]) / (f[i+1] - f[i-1]) / 360
//
// The first and last points copy their interior neighbours. The curve is then
// shifted so the point nearest normalizeHz is exactly zero.
func GroupDelay(r Result, normalizeHz float64) ([]float64, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	n := r.Len()
	if n < 3 {
		return nil, fmt.Errorf("spectrum: group delay needs at least 3 points, got %d: %w",
			n, core.ErrInsufficientData)
	}

	gd := make([]float64, n)
	for i := 1; i < n-1; i++ {
		dPhase := r.Phase[i+1] - r.Phase[i-1]
		dFreq := r.Frequency[i+1] - r.Frequency[i-1]
		gd[i] = -dPhase / dFreq / 360
	}

	gd[0] = gd[1]
	gd[n-1] = gd[n-2]

	ref := gd[core.ClosestIndex(r.Frequency, normalizeHz)]
	for i := range gd {
		gd[i] -= ref
	}

	return gd, nil
}
