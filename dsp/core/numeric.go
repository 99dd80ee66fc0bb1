package core

import "math"

// Clamp limits v to [lo, hi]. Swapped bounds are reordered.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	return math.Min(math.Max(v, lo), hi)
}

// NextPowerOf2 returns the smallest power of two >= n, or 1 for n <= 1.
func NextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// IsPowerOf2 reports whether n is a positive power of two.
func IsPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// ClosestIndex returns the index of the value nearest target, preferring
// the lower index on ties, or -1 when values is empty.
func ClosestIndex(values []float64, target float64) int {
	best, dist := -1, math.Inf(1)

	for i, v := range values {
		if d := math.Abs(v - target); d < dist {
			best, dist = i, d
		}
	}

	return best
}

// DBToLinear converts an amplitude level in dB to a linear gain.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts a linear amplitude to dB. Zero maps to -Inf and
// negative input to NaN.
func LinearToDB(linear float64) float64 {
	switch {
	case linear < 0:
		return math.NaN()
	case linear == 0:
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
