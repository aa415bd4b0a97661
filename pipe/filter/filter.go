// Package filter provides predicate and position based selection operators
// built on top of the core stream abstractions.
package filter

import (
	"context"

	"github.com/lguimbarda/rp/pipe/core"
)

// Where creates a Transformer that only passes through values matching the
// predicate. Values that don't match are silently dropped. Errors and
// sentinels pass through unchanged.
func Where[T any](predicate func(T) bool) core.Transformer[T, T] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[T]) <-chan core.Result[T] {
		out := make(chan core.Result[T])
		go func() {
			defer close(out)
			for res := range in {
				if res.IsValue() && !predicate(res.Value()) {
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

// Exclude creates a Transformer that drops values matching the predicate.
// It is the inverse of Where.
func Exclude[T any](predicate func(T) bool) core.Transformer[T, T] {
	return Where(func(v T) bool { return !predicate(v) })
}

// Distinct creates a Transformer that passes each value through the first
// time it is seen and drops every later occurrence. The whole stream is one
// window, so the set of seen values grows with the number of distinct values.
func Distinct[T comparable]() core.Transformer[T, T] {
	return DistinctBy(func(v T) T { return v })
}

// DistinctBy is Distinct with a key function: two values collide when their
// keys are equal, and the first value for a key is the one that survives.
func DistinctBy[T any, K comparable](keyFn func(T) K) core.Transformer[T, T] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[T]) <-chan core.Result[T] {
		out := make(chan core.Result[T])
		go func() {
			defer close(out)
			seen := make(map[K]struct{})
			for res := range in {
				if res.IsValue() {
					key := keyFn(res.Value())
					if _, dup := seen[key]; dup {
						continue
					}
					seen[key] = struct{}{}
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
