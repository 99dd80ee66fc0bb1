package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "empty", want: 0},
		{name: "identical", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, want: 0},
		{name: "largest wins", a: []float64{0, -1, 4}, b: []float64{0.5, 1, 4}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaxAbsDiff(tt.a, tt.b)
			if err != nil {
				t.Fatalf("MaxAbsDiff() error = %v", err)
			}

			if got != tt.want {
				t.Fatalf("MaxAbsDiff() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaxAbsDiffNaN(t *testing.T) {
	got, err := MaxAbsDiff([]float64{0, math.NaN()}, []float64{5, 0})
	if err != nil {
		t.Fatalf("MaxAbsDiff() error = %v", err)
	}

	if !math.IsNaN(got) {
		t.Fatalf("MaxAbsDiff() = %v, want NaN", got)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	if _, err := MaxAbsDiff([]float64{1}, nil); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestWorstIndex(t *testing.T) {
	if i := worstIndex([]float64{0, 0, 0}, []float64{0.1, -3, 1}); i != 1 {
		t.Fatalf("worstIndex() = %d, want 1", i)
	}
}
