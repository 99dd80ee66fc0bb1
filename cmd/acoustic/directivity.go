package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/measure/directivity"
)

// DirectivityCmd normalizes a set of angle captures.
type DirectivityCmd struct {
	Reference   string    `required:"" type:"existingfile" help:"Stimulus as it was played."`
	Channel     int       `default:"0" help:"Channel of each capture to analyse."`
	Octave      int       `default:"6" help:"Smoothing width as 1/N octave; 0 disables smoothing."`
	Normalize   float64   `default:"1000" help:"Frequency in Hz at which 0° is 0 dB."`
	Frequencies []float64 `default:"500,1000,2000,4000,8000" help:"Frequencies to tabulate."`
	Workers     int       `default:"0" help:"Captures estimated at once; 0 uses every CPU."`
	Captures    []string  `arg:"" help:"Captures as ANGLE=FILE, one of them at 0°."`
}

func parseCapture(arg string) (float64, string, error) {
	angle, path, ok := strings.Cut(arg, "=")
	if !ok || path == "" {
		return 0, "", fmt.Errorf("capture %q is not ANGLE=FILE: %w", arg, core.ErrInvalidParameter)
	}

	a, err := strconv.ParseFloat(strings.TrimSuffix(angle, "°"), 64)
	if err != nil {
		return 0, "", fmt.Errorf("capture %q: angle: %w", arg, err)
	}

	return a, path, nil
}

// Run estimates every capture and prints the polar levels.
func (c *DirectivityCmd) Run(g *Globals) error {
	ref, err := g.capture(c.Reference, 0)
	if err != nil {
		return err
	}

	captures := make([]directivity.Capture, 0, len(c.Captures))

	for _, arg := range c.Captures {
		angle, path, err := parseCapture(arg)
		if err != nil {
			return err
		}

		buf, err := g.capture(path, c.Channel)
		if err != nil {
			return err
		}

		captures = append(captures, directivity.Capture{Angle: angle, Response: buf})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []directivity.Option{
		directivity.WithFraction(octaveFraction(c.Octave)),
		directivity.WithNormalization(c.Normalize),
		directivity.WithWorkers(c.Workers),
	}

	res, err := directivity.Measure(ctx, captures, ref, opts...)
	if err != nil {
		return err
	}

	g.Log.WithFields(logrus.Fields{
		"captures":  len(res.Curves),
		"normalize": res.NormalizeHz,
	}).Info("directivity estimated")

	r := newReport("Directivity")
	r.add("Reference", "%s", c.Reference)
	r.add("0 dB at", "%.1f Hz (capture %d)", res.NormalizeHz, res.OnAxis)

	header := []string{"Angle", "Delay"}
	for _, f := range c.Frequencies {
		header = append(header, hz(f))
	}

	r.columns(header...)

	polar := make([][]float64, len(c.Frequencies))
	for j, f := range c.Frequencies {
		polar[j] = res.Polar(f)
	}

	for i, curve := range res.Curves {
		cells := []string{fmt.Sprintf("%g°", curve.Angle), fmt.Sprint(curve.Delay)}
		for j := range c.Frequencies {
			cells = append(cells, fmt.Sprintf("%.1f", max(polar[j][i], -140)))
		}

		r.row(cells...)
	}

	r.note("levels in dB relative to 0° at %.1f Hz", res.NormalizeHz)

	return r.render(g.Out)
}
