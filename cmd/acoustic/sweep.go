package main

import (
	"github.com/sirupsen/logrus"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/internal/wavio"
	"github.com/maredm/dunkadunka.se-sub000/measure/sweep"
	timestats "github.com/maredm/dunkadunka.se-sub000/stats/time"
)

// SweepFlags describe the exponential sweep shared by the sweep and
// distortion commands.
type SweepFlags struct {
	Start    float64 `default:"20" help:"Start frequency in Hz."`
	Stop     float64 `default:"20000" help:"Stop frequency in Hz."`
	Duration float64 `default:"5" help:"Sweep length in seconds, fades excluded."`
	Fade     float64 `default:"0.01" help:"Fade-in length in seconds; the fade-out is a tenth of it."`
}

func (f SweepFlags) descriptor(sampleRate float64) sweep.Descriptor {
	return sweep.Descriptor{
		StartFreq:  f.Start,
		StopFreq:   f.Stop,
		Duration:   f.Duration,
		Fade:       f.Fade,
		SampleRate: sampleRate,
	}
}

// SweepCmd writes a stimulus file.
type SweepCmd struct {
	SweepFlags `embed:""`

	SampleRate float64 `name:"sample-rate" short:"r" default:"48000" help:"Sample rate in Hz."`
	Bits       int     `default:"24" help:"PCM bit depth (16, 24, 32)."`
	Level      float64 `default:"-3" help:"Peak level in dBFS."`
	Output     string  `arg:"" type:"path" help:"WAV file to write."`
}

// Run generates, scales and writes the sweep.
func (c *SweepCmd) Run(g *Globals) error {
	desc := c.descriptor(c.SampleRate)

	stim, err := sweep.Generate(desc)
	if err != nil {
		return err
	}

	signal := append([]float64(nil), stim.Signal...)
	gain := core.DBToLinear(c.Level)

	for i := range signal {
		signal[i] *= gain
	}

	if err := wavio.WriteFile(c.Output, wavio.Mono(core.NewSampleBuffer(signal, c.SampleRate), c.Bits)); err != nil {
		return err
	}

	g.Log.WithFields(logrus.Fields{
		"file":    c.Output,
		"samples": len(signal),
		"bits":    c.Bits,
	}).Info("sweep written")

	st := timestats.Calculate(signal)

	r := newReport("Sweep")
	r.add("File", "%s", c.Output)
	r.add("Range", "%g Hz to %g Hz", c.Start, c.Stop)
	r.add("Length", "%.3f s (%d samples)", st.Duration(c.SampleRate), st.Length)
	r.add("Fades", "%d + %d samples", stim.FadeIn, stim.FadeOut)
	r.add("Rate constant", "%.4f s", stim.Ell)
	r.add("Peak", "%.2f dBFS", st.Peak_dB)
	r.add("RMS", "%.2f dBFS", st.RMS_dB)

	return r.render(g.Out)
}
