package main

import (
	"fmt"
	"strings"

	"github.com/maredm/dunkadunka.se-sub000/dsp/window"
)

// WindowsCmd lists the tapering windows used for impulse response and
// harmonic extraction.
type WindowsCmd struct {
	Size     int      `default:"1024" help:"Window length in samples."`
	Periodic bool     `help:"Use the periodic (FFT) form instead of the symmetric one."`
	Names    []string `arg:"" optional:"" help:"Windows to show; all when omitted."`
}

// Run prints the tabulated and measured properties of each window.
func (c *WindowsCmd) Run(g *Globals) error {
	types := window.Types

	if len(c.Names) > 0 {
		types = types[:0:0]

		for _, name := range c.Names {
			t, err := window.Parse(name)
			if err != nil {
				return err
			}

			types = append(types, t)
		}
	}

	var opts []window.Option
	if c.Periodic {
		opts = append(opts, window.WithPeriodic())
	}

	r := newReport("Windows")
	r.add("Size", "%d", c.Size)
	r.columns("Window", "ENBW", "Measured ENBW", "Coherent gain", "Correction")

	for _, t := range types {
		info := window.Info(t)

		enbw, err := window.EquivalentNoiseBandwidth(window.Generate(t, c.Size, opts...))
		if err != nil {
			return err
		}

		r.row(strings.ToLower(info.Name),
			fmt.Sprintf("%.4f", info.ENBW),
			fmt.Sprintf("%.4f", enbw),
			fmt.Sprintf("%.4f", info.CoherentGain),
			fmt.Sprintf("%.3f", info.CorrectionFactor))
	}

	return r.render(g.Out)
}
