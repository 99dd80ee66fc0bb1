package time

import (
	"math"
	"testing"

	"github.com/maredm/dunkadunka.se-sub000/internal/testutil"
)

const tolerance = 1e-10

func alternating(val float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		if i%2 == 0 {
			out[i] = val
		} else {
			out[i] = -val
		}
	}

	return out
}

func TestCalculateDC(t *testing.T) {
	s := Calculate(testutil.DC(1, 1000))

	if s.Length != 1000 {
		t.Errorf("Length = %d, want 1000", s.Length)
	}

	testutil.RequireNearlyEqual(t, "DC", s.DC, 1, tolerance)
	testutil.RequireNearlyEqual(t, "RMS", s.RMS, 1, tolerance)
	testutil.RequireNearlyEqual(t, "Peak", s.Peak, 1, tolerance)
	testutil.RequireNearlyEqual(t, "CrestFactor", s.CrestFactor, 1, tolerance)
	testutil.RequireNearlyEqual(t, "CrestFactor_dB", s.CrestFactor_dB, 0, tolerance)
	testutil.RequireNearlyEqual(t, "Variance", s.Variance, 0, tolerance)

	if s.Skewness != 0 || s.Kurtosis != 0 {
		t.Errorf("higher moments of a constant = %v, %v; want 0", s.Skewness, s.Kurtosis)
	}

	if s.ZeroCrossings != 0 {
		t.Errorf("ZeroCrossings = %d, want 0", s.ZeroCrossings)
	}

	if s.Clipped != 1000 || !s.IsClipped() {
		t.Errorf("Clipped = %d, want 1000", s.Clipped)
	}
}

func TestCalculateAlternating(t *testing.T) {
	s := Calculate(alternating(0.5, 100))

	if s.DC != 0 || !math.IsInf(s.DC_dB, -1) {
		t.Errorf("DC = %v (%v dB), want 0 (-Inf)", s.DC, s.DC_dB)
	}

	testutil.RequireNearlyEqual(t, "RMS", s.RMS, 0.5, tolerance)
	testutil.RequireNearlyEqual(t, "RMS_dB", s.RMS_dB, 20*math.Log10(0.5), tolerance)
	testutil.RequireNearlyEqual(t, "Variance", s.Variance, 0.25, tolerance)
	testutil.RequireNearlyEqual(t, "Energy", s.Energy, 25, tolerance)

	if s.MaxPos != 0 || s.MinPos != 1 {
		t.Errorf("MaxPos, MinPos = %d, %d; want 0, 1", s.MaxPos, s.MinPos)
	}

	if s.ZeroCrossings != 99 {
		t.Errorf("ZeroCrossings = %d, want 99", s.ZeroCrossings)
	}

	if s.IsClipped() {
		t.Errorf("Clipped = %d, want 0", s.Clipped)
	}
}

func TestCalculateSine(t *testing.T) {
	// 48 samples per cycle, so the peaks land on exact samples.
	s := Calculate(testutil.DeterministicSine(1000, 48000, 0.5, 4800))

	testutil.RequireNearlyEqual(t, "DC", s.DC, 0, 1e-12)
	testutil.RequireNearlyEqual(t, "RMS", s.RMS, 0.5/math.Sqrt2, 1e-10)
	testutil.RequireNearlyEqual(t, "Peak", s.Peak, 0.5, 1e-12)
	testutil.RequireNearlyEqual(t, "CrestFactor", s.CrestFactor, math.Sqrt2, 1e-9)
	testutil.RequireNearlyEqual(t, "CrestFactor_dB", s.CrestFactor_dB, 10*math.Log10(2), 1e-8)
	testutil.RequireNearlyEqual(t, "Skewness", s.Skewness, 0, 1e-9)
	testutil.RequireNearlyEqual(t, "Kurtosis", s.Kurtosis, -1.5, 0.01)
}

func TestCalculateUniformKurtosis(t *testing.T) {
	signal := make([]float64, 1001)
	for i := range signal {
		signal[i] = -1 + 2*float64(i)/1000
	}

	s := Calculate(signal)

	testutil.RequireNearlyEqual(t, "Kurtosis", s.Kurtosis, -1.2, 0.02)
	testutil.RequireNearlyEqual(t, "Skewness", s.Skewness, 0, 1e-9)
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)

	if s.Length != 0 {
		t.Fatalf("Length = %d", s.Length)
	}

	for name, v := range map[string]float64{
		"DC_dB": s.DC_dB, "RMS_dB": s.RMS_dB, "Peak_dB": s.Peak_dB, "CrestFactor_dB": s.CrestFactor_dB,
	} {
		if !math.IsInf(v, -1) {
			t.Errorf("%s = %v, want -Inf", name, v)
		}
	}
}

func TestSilenceCrestFactor(t *testing.T) {
	s := Calculate(make([]float64, 64))

	if s.CrestFactor != 0 || s.CrestFactor_dB != 0 {
		t.Errorf("crest factor of silence = %v (%v dB), want 0", s.CrestFactor, s.CrestFactor_dB)
	}

	if CrestFactor(make([]float64, 8)) != 0 {
		t.Error("CrestFactor(silence) != 0")
	}
}

func TestScalarHelpers(t *testing.T) {
	signal := []float64{0.25, -0.75, 0.5, 0}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"RMS", RMS(signal), math.Sqrt((0.0625 + 0.5625 + 0.25) / 4)},
		{"DC", DC(signal), 0},
		{"Peak", Peak(signal), 0.75},
		{"CrestFactor", CrestFactor(signal), 0.75 / math.Sqrt(0.875/4)},
		{"RMS(nil)", RMS(nil), 0},
		{"DC(nil)", DC(nil), 0},
		{"Peak(nil)", Peak(nil), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.RequireNearlyEqual(t, tt.name, tt.got, tt.want, tolerance)
		})
	}
}

func TestZeroCrossings(t *testing.T) {
	tests := []struct {
		signal []float64
		want   int
	}{
		{nil, 0},
		{[]float64{1}, 0},
		{[]float64{1, -1}, 1},
		// Touching zero is not a crossing.
		{[]float64{1, 0, -1}, 0},
		{[]float64{-1, 1, -1, 1}, 3},
	}

	for _, tt := range tests {
		if got := ZeroCrossings(tt.signal); got != tt.want {
			t.Errorf("ZeroCrossings(%v) = %d, want %d", tt.signal, got, tt.want)
		}
	}
}

func TestClipped(t *testing.T) {
	if got := Clipped([]float64{0.999, -1, 0.5, -0.9989}, ClipLevel); got != 2 {
		t.Fatalf("Clipped() = %d, want 2", got)
	}

	if got := Clipped([]float64{0.6, -0.7}, 0.5); got != 2 {
		t.Fatalf("Clipped(level 0.5) = %d, want 2", got)
	}
}

func TestRemoveDC(t *testing.T) {
	signal := testutil.DeterministicNoise(3, 0.1, 512)
	for i := range signal {
		signal[i] += 0.3
	}

	out := RemoveDC(signal)
	if &out[0] != &signal[0] {
		t.Fatal("RemoveDC did not work in place")
	}

	testutil.RequireNearlyEqual(t, "mean", DC(out), 0, 1e-12)

	if RemoveDC(nil) != nil {
		t.Fatal("RemoveDC(nil) != nil")
	}
}

func TestDuration(t *testing.T) {
	s := Calculate(make([]float64, 24000))

	testutil.RequireNearlyEqual(t, "duration", s.Duration(48000), 0.5, 0)

	if s.Duration(0) != 0 {
		t.Fatal("Duration(0) != 0")
	}
}
