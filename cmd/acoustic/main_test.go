package main

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/internal/testutil"
	"github.com/maredm/dunkadunka.se-sub000/internal/wavio"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	log := logrus.New()
	log.SetOutput(io.Discard)

	cli := &CLI{Globals: Globals{Out: &out, Log: log}}

	parser, err := newParser(cli,
		kong.Writers(&out, &out),
		kong.Exit(func(int) { t.Fatalf("acoustic %v exited:\n%s", args, out.String()) }))
	if err != nil {
		t.Fatalf("newParser() error = %v", err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}

	if err := cli.setupLogging(); err != nil {
		t.Fatalf("setupLogging() error = %v", err)
	}

	err = ctx.Run(&cli.Globals)

	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()

	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("acoustic %v: %v", args, err)
	}

	return out
}

func requireContains(t *testing.T, out string, want ...string) {
	t.Helper()

	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Fatalf("output lacks %q:\n%s", w, out)
		}
	}
}

var sweepArgs = []string{"--start", "50", "--stop", "4000", "--duration", "1"}

func writeSweep(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sweep.wav")
	args := append([]string{"sweep", "--sample-rate", "16000"}, sweepArgs...)

	out := mustRun(t, append(args, path)...)
	requireContains(t, out, "Sweep", "16176 samples", "160 + 16 samples", "-3.00 dBFS")

	return path
}

func TestSweepAndDistortion(t *testing.T) {
	path := writeSweep(t)

	args := append([]string{"distortion", "--window", "0.05"}, sweepArgs...)
	out := mustRun(t, append(args, path)...)

	requireContains(t, out, "Harmonic distortion", "0 samples (0.00 ms)", "2 to 4", "THD %", "1k")
}

func TestDistortionWindowTooLong(t *testing.T) {
	path := writeSweep(t)

	args := append([]string{"distortion", "--window", "0.5"}, sweepArgs...)

	if _, err := run(t, append(args, path)...); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}
}

func TestTransferIdentity(t *testing.T) {
	path := writeSweep(t)

	out := mustRun(t, "transfer", "--reference", path, path)
	requireContains(t, out, "Transfer function", "0 samples (0.00 ms)", "Correlation lag", "Level dB")
}

func TestLevels(t *testing.T) {
	path := writeSweep(t)

	requireContains(t, mustRun(t, "loudness", path), "Loudness", "LKFS", "1 ch, 16000 Hz, 24 bit")
	requireContains(t, mustRun(t, "speech", path), "Active speech level", "dBov", "Clipped samples")
}

func TestLoudnessTooShort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.wav")
	if err := wavio.WriteFile(path, wavio.Mono(core.NewSampleBuffer(make([]float64, 100), 8000), 16)); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "loudness", path); !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("error = %v, want ErrInsufficientData", err)
	}
}

func TestDirectivity(t *testing.T) {
	dir := t.TempDir()
	ref := testutil.DeterministicNoise(4, 0.5, 4096)

	write := func(name string, samples []float64) string {
		path := filepath.Join(dir, name)
		if err := wavio.WriteFile(path, wavio.Mono(core.NewSampleBuffer(samples, 16000), 32)); err != nil {
			t.Fatal(err)
		}

		return path
	}

	refPath := write("ref.wav", ref)
	side := write("side.wav", append(make([]float64, 8), testutil.Scale(ref, 0.5)...))

	out := mustRun(t, "directivity", "--reference", refPath, "--frequencies", "1000",
		"0="+refPath, "90°="+side)

	requireContains(t, out, "Directivity", "90°", "-6.0")
}

func TestParseCapture(t *testing.T) {
	tests := []struct {
		arg   string
		angle float64
		path  string
		ok    bool
	}{
		{"0=front.wav", 0, "front.wav", true},
		{"-45=a=b.wav", -45, "a=b.wav", true},
		{"180°=back.wav", 180, "back.wav", true},
		{"front.wav", 0, "", false},
		{"x=front.wav", 0, "", false},
		{"90=", 0, "", false},
	}

	for _, tt := range tests {
		angle, path, err := parseCapture(tt.arg)
		if (err == nil) != tt.ok {
			t.Fatalf("parseCapture(%q) error = %v", tt.arg, err)
		}

		if tt.ok && (angle != tt.angle || path != tt.path) {
			t.Fatalf("parseCapture(%q) = %v, %q", tt.arg, angle, path)
		}
	}
}

func TestWindows(t *testing.T) {
	out := mustRun(t, "windows", "hann", "blackman")
	requireContains(t, out, "hann", "blackman", "1.5000")

	if strings.Contains(out, "hamming") {
		t.Fatalf("unrequested window listed:\n%s", out)
	}

	if _, err := run(t, "windows", "nonesuch"); err == nil {
		t.Fatal("unknown window: expected error")
	}
}

func TestBands(t *testing.T) {
	got := bands(50, 2000)
	want := []float64{63, 125, 250, 500, 1000, 2000}

	testutil.RequireSliceNearlyEqual(t, got, want, 0)

	if hz(31.5) != "31.5" || hz(2000) != "2k" {
		t.Fatalf("hz() = %q, %q", hz(31.5), hz(2000))
	}
}
