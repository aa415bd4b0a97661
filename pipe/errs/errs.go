// Package errs provides error-flow policies for streams: dropping,
// observing, collecting, and rewriting in-band error results.
package errs

import (
	"context"

	"github.com/lguimbarda/rp/pipe/core"
)

// Skip creates a Transformer that drops every error result.
// Only values and sentinels pass through.
func Skip[T any]() core.Transformer[T, T] {
	return SkipIf[T](func(error) bool {
		return true
	})
}

// SkipIf creates a Transformer that drops error results matching the
// predicate. Non-matching errors pass through.
func SkipIf[T any](predicate func(error) bool) core.Transformer[T, T] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[T]) <-chan core.Result[T] {
		out := make(chan core.Result[T])
		go func() {
			defer close(out)
			for res := range in {
				if res.IsError() && predicate(res.Error()) {
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

// OnError creates a Transformer that calls a handler for each error result.
// The handler is called for side effects; the error still passes through
// the stream.
func OnError[T any](handler func(error)) core.Transformer[T, T] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[T]) <-chan core.Result[T] {
		out := make(chan core.Result[T])
		go func() {
			defer close(out)
			for res := range in {
				if res.IsError() {
					handler(res.Error())
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

// Rewrite creates a Transformer that replaces each error with the result of
// the mapping function. Values and sentinels pass through unchanged.
func Rewrite[T any](mapper func(error) error) core.Transformer[T, T] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[T]) <-chan core.Result[T] {
		out := make(chan core.Result[T])
		go func() {
			defer close(out)
			for res := range in {
				if res.IsError() {
					select {
					case <-ctx.Done():
						return
					case out <- core.Err[T](mapper(res.Error())):
					}
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

// Collect creates a Transformer that appends each error to into and drops
// it from the stream. The slice is owned by the caller and must not be read
// until the stream completes.
func Collect[T any](into *[]error) core.Transformer[T, T] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[T]) <-chan core.Result[T] {
		out := make(chan core.Result[T])
		go func() {
			defer close(out)
			for res := range in {
				if res.IsError() {
					*into = append(*into, res.Error())
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
