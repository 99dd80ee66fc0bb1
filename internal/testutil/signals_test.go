package testutil

import (
	"math"
	"slices"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	// 12 samples per period: quarter-period samples hit the extremes.
	s := DeterministicSine(4000, 48000, 0.5, 12)

	for i, want := range map[int]float64{0: 0, 3: 0.5, 6: 0, 9: -0.5} {
		if math.Abs(s[i]-want) > 1e-12 {
			t.Errorf("s[%d] = %v, want %v", i, s[i], want)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.25, 256)

	if !slices.Equal(a, DeterministicNoise(42, 0.25, 256)) {
		t.Fatal("same seed gave different noise")
	}

	if slices.Equal(a, DeterministicNoise(43, 0.25, 256)) {
		t.Fatal("different seeds gave identical noise")
	}

	for i, v := range a {
		if v < -0.25 || v >= 0.25 {
			t.Fatalf("a[%d] = %v outside amplitude", i, v)
		}
	}
}

func TestShapes(t *testing.T) {
	tests := []struct {
		name string
		got  []float64
		want []float64
	}{
		{name: "impulse", got: Impulse(4, 2), want: []float64{0, 0, 1, 0}},
		{name: "impulse out of range", got: Impulse(3, 7), want: []float64{0, 0, 0}},
		{name: "dc", got: DC(-2, 3), want: []float64{-2, -2, -2}},
		{name: "ones", got: Ones(2), want: []float64{1, 1}},
		{name: "square", got: SquareWave(2, 8, 1, 8), want: []float64{1, 1, -1, -1, 1, 1, -1, -1}},
		{name: "delay", got: Delay([]float64{1, 2, 3}, 1), want: []float64{0, 1, 2}},
		{name: "delay past end", got: Delay([]float64{1, 2}, 5), want: []float64{0, 0}},
		{name: "scale", got: Scale([]float64{1, -2}, 0.5), want: []float64{0.5, -1}},
		{name: "interleave", got: Interleave([]float64{1, 2}, []float64{3, 4}), want: []float64{1, 3, 2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !slices.Equal(tt.got, tt.want) {
				t.Fatalf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if Interleave() != nil {
		t.Fatal("Interleave() should be nil")
	}
}
