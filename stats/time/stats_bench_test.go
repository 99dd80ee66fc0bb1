//nolint:revive
package time

import (
	"fmt"
	"testing"

	"github.com/maredm/dunkadunka.se-sub000/internal/testutil"
)

func BenchmarkCalculate(b *testing.B) {
	for _, n := range []int{1024, 65536} {
		signal := testutil.DeterministicNoise(1, 0.5, n)

		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))

			for b.Loop() {
				Calculate(signal)
			}
		})
	}
}
