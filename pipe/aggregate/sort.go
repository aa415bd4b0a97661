package aggregate

import (
	"cmp"
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/lguimbarda/rp/pipe/core"
)

// SortBy creates a Transformer that materializes every value in the stream,
// sorts them with the provided less function, and re-emits them in order
// once the upstream completes. The sort is stable: values with equal keys
// keep their arrival order. Errors and sentinels pass through as they
// arrive, ahead of the sorted output.
func SortBy[T any](less func(a, b T) bool) core.Transformer[T, T] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[T]) <-chan core.Result[T] {
		out := make(chan core.Result[T])
		go func() {
			defer close(out)
			var values []T

			for res := range in {
				if !res.IsValue() {
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
					continue
				}
				values = append(values, res.Value())
			}

			sort.SliceStable(values, func(i, j int) bool {
				return less(values[i], values[j])
			})

			for _, v := range values {
				select {
				case <-ctx.Done():
					return
				case out <- core.Ok(v):
				}
			}
		}()
		return out
	})
}

// Sort is SortBy with the natural ascending order of T.
func Sort[T cmp.Ordered]() core.Transformer[T, T] {
	return SortBy(cmp.Less[T])
}

// Shuffle creates a Transformer that materializes every value in the stream
// and re-emits them in uniformly random order once the upstream completes.
// Errors and sentinels pass through as they arrive.
func Shuffle[T any]() core.Transformer[T, T] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[T]) <-chan core.Result[T] {
		out := make(chan core.Result[T])
		go func() {
			defer close(out)
			var values []T

			for res := range in {
				if !res.IsValue() {
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
					continue
				}
				values = append(values, res.Value())
			}

			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			rng.Shuffle(len(values), func(i, j int) {
				values[i], values[j] = values[j], values[i]
			})

			for _, v := range values {
				select {
				case <-ctx.Done():
					return
				case out <- core.Ok(v):
				}
			}
		}()
		return out
	})
}
