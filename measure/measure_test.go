package measure

import (
	"errors"
	"math"
	"testing"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/internal/testutil"
	"github.com/maredm/dunkadunka.se-sub000/measure/sweep"
)

var desc = sweep.Descriptor{StartFreq: 50, StopFreq: 1500, Duration: 1, SampleRate: 8000}

func distort(x []float64, k float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v + k*(v*v-0.5)
	}

	return out
}

func TestSweepRoundTrip(t *testing.T) {
	stim, err := SynthesizeSweep(desc)
	if err != nil {
		t.Fatalf("SynthesizeSweep() error = %v", err)
	}

	recorded := append(make([]float64, 25), stim.Signal...)

	dc, res, err := DeconvolveFarina(core.NewSampleBuffer(recorded, desc.SampleRate), desc)
	if err != nil {
		t.Fatalf("DeconvolveFarina() error = %v", err)
	}

	_, base, err := DeconvolveFarina(stim.Buffer(), desc)
	if err != nil {
		t.Fatalf("DeconvolveFarina(stimulus) error = %v", err)
	}

	if res.PeakIndex != base.PeakIndex+25 {
		t.Fatalf("PeakIndex = %d, want %d", res.PeakIndex, base.PeakIndex+25)
	}

	// PeakAt is relative to the centre of the deconvolved buffer.
	if res.PeakAt != res.PeakIndex-len(res.IR)/2 {
		t.Fatalf("PeakAt = %d, want %d", res.PeakAt, res.PeakIndex-len(res.IR)/2)
	}

	delay, err := dc.Delay()
	if err != nil || delay != 25 {
		t.Fatalf("Delay() = %d, %v; want 25", delay, err)
	}
}

func TestDeconvolveFarinaErrors(t *testing.T) {
	if _, _, err := DeconvolveFarina(core.NewSampleBuffer([]float64{1}, 8000), sweep.Descriptor{}); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("zero descriptor error = %v, want ErrInvalidParameter", err)
	}

	if _, _, err := DeconvolveFarina(core.SampleBuffer{}, desc); err == nil {
		t.Fatal("empty response: expected error")
	}
}

func TestHarmonicDistortion(t *testing.T) {
	thdAt := func(k float64) float64 {
		t.Helper()

		stim, err := SynthesizeSweep(desc)
		if err != nil {
			t.Fatal(err)
		}

		dc, _, err := DeconvolveFarina(core.NewSampleBuffer(distort(stim.Signal, k), desc.SampleRate), desc)
		if err != nil {
			t.Fatal(err)
		}

		curve, err := HarmonicDistortion(dc, 0.1, 2, 1.0/3)
		if err != nil {
			t.Fatalf("HarmonicDistortion() error = %v", err)
		}

		testutil.RequireFinite(t, curve.THD)

		return curve.At(300)
	}

	clean := thdAt(0)
	dirty := thdAt(0.2)

	if dirty < 0.02 || dirty > 0.3 {
		t.Errorf("THD(300 Hz) with a 10%% second harmonic = %v", dirty)
	}

	if clean > dirty/5 {
		t.Errorf("THD of a linear system %v is not well below %v", clean, dirty)
	}
}

func TestTransferSmoothGroupDelay(t *testing.T) {
	ref := testutil.DeterministicNoise(9, 0.5, 1024)
	resp := append(make([]float64, 12), testutil.Scale(ref, 0.25)...)

	spec, res, err := EstimateTransferFunction(core.NewSampleBuffer(resp, 48000), core.NewSampleBuffer(ref, 48000))
	if err != nil {
		t.Fatalf("EstimateTransferFunction() error = %v", err)
	}

	if res.PeakAt != 12 {
		t.Fatalf("PeakAt = %d, want 12", res.PeakAt)
	}

	smoothed, err := SmoothSpectrum(spec, 1.0/3)
	if err != nil {
		t.Fatalf("SmoothSpectrum() error = %v", err)
	}

	for i, m := range smoothed.Magnitude[1:] {
		if math.Abs(m-0.25) > 1e-6 {
			t.Fatalf("smoothed[%d] = %v, want 0.25", i+1, m)
		}
	}

	gd, err := GroupDelay(spec, 1000)
	if err != nil {
		t.Fatalf("GroupDelay() error = %v", err)
	}

	if gd[core.ClosestIndex(spec.Frequency, 1000)] != 0 {
		t.Fatal("group delay is not zero at the normalization frequency")
	}

	for i, v := range gd {
		if math.Abs(v) > 1e-6 {
			t.Fatalf("gd[%d] = %v s, want 0 for a peak-aligned pure delay", i, v)
		}
	}
}

func TestLevels(t *testing.T) {
	sine := testutil.DeterministicSine(997, 48000, 1, 48000*4)

	lk, err := MeasureLoudness(core.NewSampleBuffer(sine, 48000), 1)
	if err != nil {
		t.Fatalf("MeasureLoudness() error = %v", err)
	}

	testutil.RequireNearlyEqual(t, "integrated", lk.IntegratedLoudness, -3.0, 0.05)

	speech, err := MeasureActiveSpeechLevel(core.NewSampleBuffer(sine, 48000))
	if err != nil {
		t.Fatalf("MeasureActiveSpeechLevel() error = %v", err)
	}

	testutil.RequireNearlyEqual(t, "rms", speech.RMS, -3.0103, 1e-3)

	if speech.Silent {
		t.Fatal("full-scale sine reported silent")
	}
}
