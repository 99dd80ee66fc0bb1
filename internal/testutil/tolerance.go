package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireNearlyEqual fails t when got is NaN or further than eps from want.
func RequireNearlyEqual(t *testing.T, name string, got, want, eps float64) {
	t.Helper()

	if math.IsNaN(got) || math.Abs(got-want) > eps {
		t.Fatalf("%s = %v, want %v (eps %v)", name, got, want, eps)
	}
}

// RequireSliceNearlyEqual compares got and want element by element with an
// absolute tolerance.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	d, err := MaxAbsDiff(got, want)
	if err != nil {
		t.Fatal(err)
	}

	if d > eps || math.IsNaN(d) {
		i := worstIndex(got, want)
		t.Fatalf("index %d: got %v, want %v (max diff %v > eps %v)", i, got[i], want[i], d, eps)
	}
}

// RequireFinite fails t on the first NaN or Inf in data.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns max |a[i]-b[i]|. A NaN in either slice yields NaN.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("testutil: length mismatch: %d vs %d", len(a), len(b))
	}

	var worst float64

	for i := range a {
		d := math.Abs(a[i] - b[i])
		if math.IsNaN(d) {
			return d, nil
		}

		worst = math.Max(worst, d)
	}

	return worst, nil
}

func worstIndex(a, b []float64) int {
	best, at := -1.0, 0

	for i := range a {
		d := math.Abs(a[i] - b[i])
		if math.IsNaN(d) {
			return i
		}

		if d > best {
			best, at = d, i
		}
	}

	return at
}
