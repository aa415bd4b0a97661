package benchmarks

import (
	"testing"

	"github.com/ahmetb/go-linq/v3"
	"github.com/destel/rill"
	"github.com/samber/lo"

	"github.com/lguimbarda/rp/pipe"
	"github.com/lguimbarda/rp/pipe/filter"
)

// =============================================================================
// Memory Allocation Benchmarks
// These benchmarks are designed to highlight allocation differences.
// Run with: go test -bench=BenchmarkAlloc -benchmem
// =============================================================================

// Large dataset to amplify allocation differences
const AllocSize = 10_000

func BenchmarkAlloc_Map_Pipe(b *testing.B) {
	data := generateInts(AllocSize)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		stream := pipe.FromSlice(data)
		mapped := pipe.Map(doubleWithErr).Apply(ctx, stream)
		_, _ = pipe.Slice(ctx, mapped)
	}
}

func BenchmarkAlloc_Map_Rill(b *testing.B) {
	data := generateInts(AllocSize)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		stream := rill.FromSlice(data, nil)
		mapped := rill.Map(stream, 1, func(x int) (int, error) {
			return double(x), nil
		})
		_, _ = rill.ToSlice(mapped)
	}
}

func BenchmarkAlloc_Map_Lo(b *testing.B) {
	data := generateInts(AllocSize)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = lo.Map(data, func(x int, _ int) int {
			return double(x)
		})
	}
}

func BenchmarkAlloc_Map_GoLinq(b *testing.B) {
	data := generateInts(AllocSize)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		var result []int
		linq.From(data).SelectT(func(x int) int {
			return double(x)
		}).ToSlice(&result)
	}
}

func BenchmarkAlloc_Map_RawLoop(b *testing.B) {
	data := generateInts(AllocSize)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		result := make([]int, len(data))
		for j, x := range data {
			result[j] = double(x)
		}
		_ = result
	}
}

// =============================================================================
// Render Allocations - int to string per item, the :gen format workload
// =============================================================================

func BenchmarkAlloc_Render_Pipe(b *testing.B) {
	data := generateInts(AllocSize)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		stream := pipe.FromSlice(data)
		rendered := pipe.Map(renderWithErr).Apply(ctx, stream)
		_, _ = pipe.Slice(ctx, rendered)
	}
}

func BenchmarkAlloc_Render_Lo(b *testing.B) {
	data := generateInts(AllocSize)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = lo.Map(data, func(x int, _ int) string {
			s, _ := renderWithErr(x)
			return s
		})
	}
}

// =============================================================================
// Distinct Allocations - map-backed dedup state per run
// =============================================================================

func BenchmarkAlloc_Distinct_Pipe(b *testing.B) {
	data := generateLines(AllocSize)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		stream := pipe.FromSlice(data)
		unique := filter.Distinct[string]().Apply(ctx, stream)
		_, _ = pipe.Slice(ctx, unique)
	}
}

func BenchmarkAlloc_Distinct_Lo(b *testing.B) {
	data := generateLines(AllocSize)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = lo.Uniq(data)
	}
}
