// Command acoustic runs the measurement engine on WAV files.
//
// Usage:
//
//	acoustic <command> [flags]
//
// Examples:
//
//	acoustic sweep --duration 3 sweep.wav
//	acoustic distortion --duration 3 recording.wav
//	acoustic transfer --reference sweep.wav recording.wav
//	acoustic loudness programme.wav
//	acoustic speech --channel 0 talk.wav
//	acoustic directivity --reference sweep.wav 0=front.wav 90=side.wav
//	acoustic windows
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

var version = "0.1.0"

const description = "Acoustic measurement engine: sweeps, transfer functions, distortion and levels"

// Globals are the flags shared by every command.
type Globals struct {
	LogLevel string           `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log verbosity (debug, info, warn, error)."`
	Version  kong.VersionFlag `short:"v" help:"Show version information."`
	Out      io.Writer        `kong:"-"`
	Log      *logrus.Logger   `kong:"-"`
}

// CLI is the command tree.
type CLI struct {
	Globals

	Sweep       SweepCmd       `cmd:"" help:"Write an exponential sweep to a WAV file."`
	Transfer    TransferCmd    `cmd:"" help:"Estimate a transfer function from a response and its reference."`
	Distortion  DistortionCmd  `cmd:"" help:"Deconvolve a recorded sweep and report harmonic distortion."`
	Loudness    LoudnessCmd    `cmd:"" help:"Measure BS.1770 integrated loudness and loudness range."`
	Speech      SpeechCmd      `cmd:"" help:"Measure the P.56 active speech level."`
	Directivity DirectivityCmd `cmd:"" help:"Normalize responses captured at several angles against 0°."`
	Windows     WindowsCmd     `cmd:"" help:"List the tapering windows and their spectral properties."`
}

func (g *Globals) setupLogging() error {
	level, err := logrus.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}

	if g.Log == nil {
		g.Log = logrus.New()
		g.Log.SetOutput(os.Stderr)
		g.Log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	g.Log.SetLevel(level)

	return nil
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("acoustic"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Help(styledHelp),
		kong.Vars{"version": version},
	}, options...)

	return kong.New(cli, options...)
}

func main() {
	cli := &CLI{Globals: Globals{Out: os.Stdout}}

	parser, err := newParser(cli)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx.FatalIfErrorf(cli.setupLogging())
	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}
