package factor_test

import (
	"testing"

	"github.com/katalvlaran/bayes/factor"
)

// BenchmarkProject measures building a prepared table from a 6-dimensional
// clique (4^6 cells) onto a 3-dimensional separator.
func BenchmarkProject(b *testing.B) {
	big, _ := factor.New([]int{0, 1, 2, 3, 4, 5}, []int{4, 4, 4, 4, 4, 4})
	small, _ := factor.New([]int{1, 3, 5}, []int{4, 4, 4})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = factor.Project(big, small)
	}
}

// BenchmarkSumPrepared compares the two precisions on the same prepared sum.
func BenchmarkSumPrepared(b *testing.B) {
	for _, p := range []factor.Precision{factor.Float64, factor.Float32} {
		b.Run(p.String(), func(b *testing.B) {
			big, _ := factor.New([]int{0, 1, 2, 3, 4, 5}, []int{4, 4, 4, 4, 4, 4}, factor.WithPrecision(p))
			small, _ := factor.New([]int{1, 3, 5}, []int{4, 4, 4}, factor.WithPrecision(p))
			positions, _ := factor.Project(big, small)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = small.SumPrepared(big, positions)
			}
		})
	}
}
