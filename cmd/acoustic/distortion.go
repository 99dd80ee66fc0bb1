package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/measure"
)

// DistortionCmd separates the harmonics of a recorded sweep.
type DistortionCmd struct {
	SweepFlags `embed:""`

	Window   float64 `default:"0.1" help:"Length of each harmonic window in seconds."`
	Orders   int     `default:"5" help:"Highest harmonic order to separate."`
	Octave   int     `default:"3" help:"Smoothing width as 1/N octave; 0 disables smoothing."`
	Channel  int     `default:"0" help:"Channel of the recording to analyse."`
	Response string  `arg:"" type:"existingfile" help:"Recording of the sweep."`
}

// Run deconvolves the recording and reports THD per octave.
func (c *DistortionCmd) Run(g *Globals) error {
	resp, err := g.capture(c.Response, c.Channel)
	if err != nil {
		return err
	}

	dc, fundamental, err := measure.DeconvolveFarina(resp, c.descriptor(resp.SampleRate))
	if err != nil {
		return err
	}

	safe, err := dc.MaxSafeHarmonic(c.Window)
	if err != nil {
		return err
	}

	orders := min(c.Orders, safe)
	if orders < 2 {
		return fmt.Errorf("a %v s window leaves room for no harmonic of this sweep: %w", c.Window, core.ErrInvalidParameter)
	}

	if orders < c.Orders {
		g.Log.WithFields(logrus.Fields{
			"requested": c.Orders,
			"window":    c.Window,
			"orders":    orders,
		}).Warn("harmonic windows would overlap, order reduced")
	}

	curve, err := measure.HarmonicDistortion(dc, c.Window, orders, octaveFraction(c.Octave))
	if err != nil {
		return err
	}

	delay, err := dc.Delay()
	if err != nil {
		return err
	}

	r := newReport("Harmonic distortion")
	r.add("Recording", "%s (channel %d)", c.Response, c.Channel)
	r.add("Sweep", "%g Hz to %g Hz, %g s", c.Start, c.Stop, c.Duration)
	r.add("Latency", "%d samples (%.2f ms)", delay, ms(delay, resp.SampleRate))
	r.add("Fundamental peak", "%.4f", fundamental.IR[fundamental.PeakIndex])
	r.add("Orders", "2 to %d", orders)

	r.columns("Hz", "THD %", "THD dB", "Even dB", "Odd dB")

	thdDB := curve.DB(-140)

	// Above Stop/2 the second harmonic leaves the sweep band.
	for _, f := range bands(c.Start, c.Stop/2) {
		k := core.ClosestIndex(curve.Frequency, f)
		if k < 0 {
			continue
		}

		r.row(hz(f),
			fmt.Sprintf("%.3f", 100*curve.THD[k]),
			fmt.Sprintf("%.1f", thdDB[k]),
			fmt.Sprintf("%.1f", max(core.LinearToDB(curve.Even[k]), -140)),
			fmt.Sprintf("%.1f", max(core.LinearToDB(curve.Odd[k]), -140)))
	}

	return r.render(g.Out)
}
