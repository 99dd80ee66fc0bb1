package directivity

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/maredm/dunkadunka.se-sub000/dsp/core"
	"github.com/maredm/dunkadunka.se-sub000/internal/testutil"
	"github.com/maredm/dunkadunka.se-sub000/measure/smoothing"
)

const fs = 48000.0

// cardioid-like gain, 1 on axis and 0.1 at the back.
func gain(angle float64) float64 {
	return 0.55 + 0.45*math.Cos(angle*math.Pi/180)
}

func captures(reference []float64, n int) []Capture {
	out := make([]Capture, n)

	for i := range out {
		angle := float64(i) * 360 / float64(n)
		delay := 10 + i%4

		resp := append(make([]float64, delay), testutil.Scale(reference, gain(angle))...)
		out[i] = Capture{Angle: angle, Response: core.NewSampleBuffer(resp, fs)}
	}

	return out
}

func TestMeasureThirtySixAngles(t *testing.T) {
	ref := testutil.DeterministicNoise(21, 0.5, 2048)

	res, err := Measure(context.Background(), captures(ref, 36), core.NewSampleBuffer(ref, fs))
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}

	if len(res.Curves) != 36 || res.OnAxis != 0 {
		t.Fatalf("%d curves, on-axis index %d", len(res.Curves), res.OnAxis)
	}

	axis := res.Curves[res.OnAxis]
	k := core.ClosestIndex(axis.Spectrum.Frequency, 1000)

	if axis.Level[k] != 0 {
		t.Fatalf("on-axis level at %v Hz = %v, want exactly 0", res.NormalizeHz, axis.Level[k])
	}

	if res.NormalizeHz != axis.Spectrum.Frequency[k] {
		t.Fatalf("NormalizeHz = %v, want grid point %v", res.NormalizeHz, axis.Spectrum.Frequency[k])
	}

	for i, c := range res.Curves {
		want := 20 * math.Log10(gain(c.Angle))

		for j, v := range c.Level {
			if math.Abs(v-want) > 1e-6 {
				t.Fatalf("%v°, point %d: level %v dB, want %v", c.Angle, j, v, want)
			}
		}

		if c.Delay != 10+i%4 {
			t.Fatalf("%v°: delay %d, want %d", c.Angle, c.Delay, 10+i%4)
		}
	}

	polar := res.Polar(5000)
	testutil.RequireNearlyEqual(t, "front", polar[0], 0, 1e-6)
	testutil.RequireNearlyEqual(t, "back", polar[18], 20*math.Log10(0.1), 1e-6)

	back, ok := res.Find(-180)
	if !ok || back.Angle != 180 {
		t.Fatalf("Find(-180) = %v, %v", back.Angle, ok)
	}
}

func TestMeasureWorkerCountIrrelevant(t *testing.T) {
	ref := testutil.DeterministicNoise(5, 0.5, 512)
	caps := captures(ref, 12)
	buf := core.NewSampleBuffer(ref, fs)

	serial, err := Measure(context.Background(), caps, buf, WithWorkers(1))
	if err != nil {
		t.Fatal(err)
	}

	parallel, err := Measure(context.Background(), caps, buf, WithWorkers(8))
	if err != nil {
		t.Fatal(err)
	}

	for i := range serial.Curves {
		testutil.RequireSliceNearlyEqual(t, parallel.Curves[i].Level, serial.Curves[i].Level, 0)
	}
}

func TestMeasureOnAxisNotFirst(t *testing.T) {
	ref := testutil.DeterministicNoise(5, 0.5, 512)
	caps := captures(ref, 8)
	caps[0].Angle = 720 // still on axis
	caps[0], caps[3] = caps[3], caps[0]

	res, err := Measure(context.Background(), caps, core.NewSampleBuffer(ref, fs),
		WithNormalization(2000), WithFraction(1.0/3),
		WithSmoothingOptions(smoothing.WithResolution(1.0/24)))
	if err != nil {
		t.Fatal(err)
	}

	if res.OnAxis != 3 {
		t.Fatalf("on-axis index = %d, want 3", res.OnAxis)
	}

	if got := res.Polar(2000)[3]; got != 0 {
		t.Fatalf("on-axis level at 2 kHz = %v", got)
	}
}

func TestMeasureErrors(t *testing.T) {
	ref := testutil.DeterministicNoise(5, 0.5, 256)
	buf := core.NewSampleBuffer(ref, fs)

	if _, err := Measure(context.Background(), nil, buf); !errors.Is(err, ErrNoCaptures) {
		t.Fatalf("no captures error = %v", err)
	}

	offAxis := captures(ref, 4)[1:]
	if _, err := Measure(context.Background(), offAxis, buf); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("no on-axis error = %v", err)
	}

	bad := captures(ref, 4)
	bad[2].Response.SampleRate = 44100

	if _, err := Measure(context.Background(), bad, buf); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("bad capture error = %v", err)
	}

	silent := captures(ref, 4)
	silent[0].Response = core.NewSampleBuffer(make([]float64, 300), fs)

	if _, err := Measure(context.Background(), silent, buf); !errors.Is(err, ErrSilentOnAxis) {
		t.Fatalf("silent on-axis error = %v", err)
	}
}

func TestMeasureCancelled(t *testing.T) {
	ref := testutil.DeterministicNoise(5, 0.5, 256)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Measure(ctx, captures(ref, 36), core.NewSampleBuffer(ref, fs))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestOptions(t *testing.T) {
	cfg := ApplyOptions(WithWorkers(3), WithFraction(0.5), WithNormalization(500))
	if cfg.Workers != 3 || cfg.Fraction != 0.5 || cfg.NormalizeHz != 500 {
		t.Fatalf("cfg = %+v", cfg)
	}

	def := DefaultConfig()
	if cfg := ApplyOptions(WithWorkers(0), WithFraction(-1), WithNormalization(0)); cfg.Workers != def.Workers ||
		cfg.Fraction != def.Fraction || cfg.NormalizeHz != def.NormalizeHz {
		t.Fatalf("invalid options changed config: %+v", cfg)
	}
}
