package biquad

import (
	"fmt"
	"testing"
)

func BenchmarkStep(b *testing.B) {
	var st [2]float64

	c := lowpass()
	x := 1.0

	for b.Loop() {
		x = Step(c, &st, x)
	}

	_ = x
}

func BenchmarkChainProcessBlock(b *testing.B) {
	for _, n := range []int{256, 4096} {
		b.Run(fmt.Sprintf("N=%d", n), func(b *testing.B) {
			c := NewChain(twoSections())

			buf := make([]float64, n)
			for i := range buf {
				buf[i] = float64(i%64) / 64
			}

			b.SetBytes(int64(n * 8))

			for b.Loop() {
				c.ProcessBlock(buf)
			}
		})
	}
}
