package filter

import (
	"context"

	"github.com/lguimbarda/rp/pipe/core"
)

// Take creates a Transformer that passes through the first n values and then
// completes. Errors and sentinels do not count toward n. Once n values have
// been emitted the upstream channel is no longer consumed.
func Take[T any](n int) core.Transformer[T, T] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[T]) <-chan core.Result[T] {
		out := make(chan core.Result[T])
		go func() {
			defer close(out)
			if n <= 0 {
				return
			}

			taken := 0
			for res := range in {
				if !res.IsValue() {
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
					continue
				}

				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
				taken++
				if taken >= n {
					return
				}
			}
		}()
		return out
	})
}

// TakeWhile creates a Transformer that passes through values while the
// predicate holds. The first value failing the predicate ends the stream;
// neither it nor anything after it is emitted.
func TakeWhile[T any](predicate func(T) bool) core.Transformer[T, T] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[T]) <-chan core.Result[T] {
		out := make(chan core.Result[T])
		go func() {
			defer close(out)
			for res := range in {
				if !res.IsValue() {
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
					continue
				}

				if !predicate(res.Value()) {
					return
				}
				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}()
		return out
	})
}

// Skip creates a Transformer that drops the first n values and passes through
// the rest. Errors and sentinels pass through even while skipping.
func Skip[T any](n int) core.Transformer[T, T] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[T]) <-chan core.Result[T] {
		out := make(chan core.Result[T])
		go func() {
			defer close(out)
			skipped := 0
			for res := range in {
				if !res.IsValue() {
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
					continue
				}

				if skipped < n {
					skipped++
					continue
				}
				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}()
		return out
	})
}

// SkipWhile creates a Transformer that drops values while the predicate
// holds. The first value failing the predicate passes through, as does
// everything after it without further predicate calls.
func SkipWhile[T any](predicate func(T) bool) core.Transformer[T, T] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[T]) <-chan core.Result[T] {
		out := make(chan core.Result[T])
		go func() {
			defer close(out)
			skipping := true
			for res := range in {
				if !res.IsValue() {
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
					continue
				}

				if skipping {
					if predicate(res.Value()) {
						continue
					}
					skipping = false
				}
				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}()
		return out
	})
}
