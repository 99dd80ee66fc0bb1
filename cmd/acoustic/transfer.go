package main

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/maredm/dunkadunka.se-sub000/dsp/conv"
	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/dsp/spectrum"
	"github.com/maredm/dunkadunka.se-sub000/measure/ir"
	"github.com/maredm/dunkadunka.se-sub000/measure/smoothing"
	"github.com/maredm/dunkadunka.se-sub000/measure/transfer"
)

// TransferCmd estimates response/reference.
type TransferCmd struct {
	Reference string `required:"" type:"existingfile" help:"Stimulus as it was played."`
	Channel   int    `default:"0" help:"Channel of the response file to analyse."`
	Octave    int    `default:"6" help:"Smoothing width as 1/N octave; 0 disables smoothing."`
	Response  string `arg:"" type:"existingfile" help:"Recorded response."`
}

func octaveFraction(n int) float64 {
	if n <= 0 {
		return 0
	}

	return 1 / float64(n)
}

func ms(samples int, sampleRate float64) float64 {
	return 1000 * float64(samples) / sampleRate
}

// Run estimates, smooths and reports the transfer function.
func (c *TransferCmd) Run(g *Globals) error {
	ref, err := g.capture(c.Reference, 0)
	if err != nil {
		return err
	}

	resp, err := g.capture(c.Response, c.Channel)
	if err != nil {
		return err
	}

	spec, h, err := transfer.Estimate(resp, ref)
	if err != nil {
		return err
	}

	smoothed, err := smoothing.SmoothSpectrum(spec, octaveFraction(c.Octave))
	if err != nil {
		return err
	}

	gd, err := spectrum.GroupDelay(smoothed, 1000)
	if err != nil {
		return err
	}

	lag, err := conv.EstimateLag(resp.Samples, ref.Samples)
	if err != nil {
		return err
	}

	if lag != h.PeakAt {
		g.Log.WithFields(logrus.Fields{
			"peak":        h.PeakAt,
			"correlation": lag,
		}).Warn("impulse peak and cross-correlation disagree on the latency")
	}

	m, err := ir.Analyze(h)
	if err != nil {
		return err
	}

	r := newReport("Transfer function")
	r.add("Response", "%s (channel %d)", c.Response, c.Channel)
	r.add("Reference", "%s", c.Reference)
	r.add("FFT size", "%d", spec.FFTSize)
	r.add("Latency", "%d samples (%.2f ms)", h.PeakAt, ms(h.PeakAt, h.SampleRate))
	r.add("Correlation lag", "%d samples", lag)
	r.add("RT60", "%s", seconds(m.RT60))
	r.add("EDT", "%s", seconds(m.EDT))
	r.add("C50 / C80", "%.1f dB / %.1f dB", m.C50, m.C80)
	r.add("D50", "%.2f", m.D50)

	r.columns("Hz", "Level dB", "Phase °", "Delay ms")

	for _, f := range bands(smoothed.Frequency[0], smoothed.Frequency[smoothed.Len()-1]) {
		k := core.ClosestIndex(smoothed.Frequency, f)
		r.row(hz(f),
			fmt.Sprintf("%.2f", core.LinearToDB(smoothed.Magnitude[k])),
			fmt.Sprintf("%.1f", smoothed.Phase[k]),
			fmt.Sprintf("%.3f", 1000*gd[k]))
	}

	if c.Octave > 0 {
		r.note("1/%d octave smoothing, group delay relative to 1 kHz", c.Octave)
	}

	return r.render(g.Out)
}

func seconds(v float64) string {
	if v <= 0 || math.IsNaN(v) {
		return "n/a"
	}

	return fmt.Sprintf("%.3f s", v)
}
