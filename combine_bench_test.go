package factor

import (
	"fmt"
	"testing"
)

var benchmarkSizes = []struct {
	name string
	n    int
}{
	{"1000_obs", 1000},
	{"10000_obs", 10000},
	{"100000_obs", 100000},
}

// generateCategorical produces n values cycling through `levels` distinct
// integers in a non-repeating pattern.
func generateCategorical(n, levels, stride int) []int {
	values := make([]int, n)
	for i := range values {
		values[i] = (i * stride) % levels
	}

	return values
}

func BenchmarkFactorize(b *testing.B) {
	for _, size := range benchmarkSizes {
		for _, levels := range []int{10, 100, 1000} {
			name := fmt.Sprintf("%s_%d_levels", size.name, levels)
			b.Run(name, func(b *testing.B) {
				values := generateCategorical(size.n, levels, 7)
				codes := make([]uint32, size.n)
				b.ResetTimer()
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_, err := Factorize(values, codes)
					if err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkCombineObserved(b *testing.B) {
	for _, size := range benchmarkSizes {
		b.Run(size.name, func(b *testing.B) {
			variables := [][]int{
				generateCategorical(size.n, 13, 7),
				generateCategorical(size.n, 5, 11),
				generateCategorical(size.n, 3, 17),
			}
			codes := make([]uint32, size.n)
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, err := CombineObserved(variables, codes)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCombineFull(b *testing.B) {
	for _, size := range benchmarkSizes {
		b.Run(size.name, func(b *testing.B) {
			variables := []Variable[int]{
				{Values: generateCategorical(size.n, 13, 7), Cardinality: 13},
				{Values: generateCategorical(size.n, 5, 11), Cardinality: 5},
				{Values: generateCategorical(size.n, 3, 17), Cardinality: 3},
			}
			codes := make([]uint32, size.n)
			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, err := CombineFull(variables, codes)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
