package main

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/measure/loudness"
	"github.com/maredm/dunkadunka.se-sub000/measure/p56"
	timestats "github.com/maredm/dunkadunka.se-sub000/stats/time"
)

// LoudnessCmd meters a programme file.
type LoudnessCmd struct {
	Weights []float64 `help:"Per-channel weights; defaults follow the 5.1 and 7.1 layouts."`
	Ungated bool      `help:"Report the plain mean-square loudness without gating."`
	File    string    `arg:"" type:"existingfile" help:"Interleaved programme file."`
}

// Run streams the file through a meter one 100 ms step at a time.
func (c *LoudnessCmd) Run(g *Globals) error {
	a, err := g.load(c.File)
	if err != nil {
		return err
	}

	var opts []loudness.Option
	if len(c.Weights) > 0 {
		opts = append(opts, loudness.WithChannelWeights(c.Weights...))
	}

	if c.Ungated {
		opts = append(opts, loudness.WithoutGating())
	}

	meter, err := loudness.NewState(a.SampleRate, a.Channels, opts...)
	if err != nil {
		return err
	}

	chunk := max(int(math.Floor(0.1*a.SampleRate)), 1) * a.Channels
	maxMomentary := math.Inf(-1)

	for off := 0; off < len(a.Samples); off += chunk {
		if err := meter.Process(a.Samples[off:min(off+chunk, len(a.Samples))]); err != nil {
			return err
		}

		maxMomentary = max(maxMomentary, meter.Momentary())
	}

	res := meter.Result()

	g.Log.WithFields(logrus.Fields{
		"file":   c.File,
		"blocks": res.Blocks,
	}).Debug("loudness metered")

	if res.Blocks == 0 {
		return fmt.Errorf("%w: %s", loudness.ErrTooShort, c.File)
	}

	r := newReport("Loudness")
	r.add("File", "%s", c.File)
	r.add("Format", "%d ch, %g Hz, %d bit", a.Channels, a.SampleRate, a.BitDepth)
	r.add("Integrated", "%s", lkfs(res.IntegratedLoudness))
	r.add("Loudness range", "%.1f LU", res.LoudnessRange)
	r.add("Max momentary", "%s", lkfs(maxMomentary))
	r.add("Gating blocks", "%d", res.Blocks)

	r.columns("Channel", "Peak dBFS")

	for ch, p := range meter.Peaks() {
		r.row(fmt.Sprint(ch), fmt.Sprintf("%.2f", max(core.LinearToDB(p), -140)))
	}

	switch {
	case res.ZeroInput:
		r.note("input is digital silence")
	case res.ZeroPassed:
		r.note("no block passed the gates")
	}

	return r.render(g.Out)
}

func lkfs(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf"
	}

	return fmt.Sprintf("%.2f LKFS", v)
}

// SpeechCmd measures one channel with the P.56 voltmeter.
type SpeechCmd struct {
	Channel int    `default:"0" help:"Channel to measure."`
	File    string `arg:"" type:"existingfile" help:"Speech recording."`
}

// Run reports the active speech level beside plain level statistics.
func (c *SpeechCmd) Run(g *Globals) error {
	buf, err := g.capture(c.File, c.Channel)
	if err != nil {
		return err
	}

	res, err := p56.Measure(buf)
	if err != nil {
		return err
	}

	st := timestats.Calculate(buf.Samples)

	r := newReport("Active speech level")
	r.add("File", "%s (channel %d)", c.File, c.Channel)
	r.add("Active level", "%.2f dBov", res.Level)
	r.add("Activity", "%.1f %%", 100*res.ActivityFactor)
	r.add("Long-term level", "%.2f dBov", res.RMS)
	r.add("Peak", "%.2f dBov", max(core.LinearToDB(res.Peak), -140))
	r.add("DC offset", "%.6f", res.DCOffset)
	r.add("Crest factor", "%.2f dB", st.CrestFactor_dB)
	r.add("Clipped samples", "%d", st.Clipped)

	if res.Silent {
		r.note("signal stays below the lowest activity threshold")
	}

	return r.render(g.Out)
}
