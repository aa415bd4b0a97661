package pipe

import (
	"context"
	"iter"

	"github.com/lguimbarda/rp/pipe/core"
)

// FromSlice creates a Stream that emits each element from the given slice.
// The stream completes after all elements have been emitted.
// Uses buffered channels to reduce goroutine synchronization overhead.
func FromSlice[T any](items []T) Stream[T] {
	const maxBufferSize = 512

	return Emit(func(ctx context.Context) <-chan Result[T] {
		// For small slices, use a fully-buffered channel (no goroutine needed)
		if len(items) <= maxBufferSize {
			out := make(chan Result[T], len(items))
			for _, item := range items {
				out <- Ok(item)
			}
			close(out)
			return out
		}

		// For larger slices, use a buffered channel with a goroutine
		out := make(chan Result[T], maxBufferSize)
		go func() {
			defer close(out)
			for _, item := range items {
				select {
				case <-ctx.Done():
					return
				case out <- Ok(item):
				}
			}
		}()
		return out
	})
}

// FromChannel creates a Stream that emits values received from the given channel.
// The stream completes when the input channel is closed.
// The caller is responsible for closing the input channel.
func FromChannel[T any](ch <-chan T) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-ch:
					if !ok {
						return
					}
					select {
					case <-ctx.Done():
						return
					case out <- Ok(item):
					}
				}
			}
		}()
		return out
	})
}

// FromIter creates a Stream from a Go iterator sequence.
// The stream completes when the iterator is exhausted.
func FromIter[T any](seq iter.Seq[T]) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			for item := range seq {
				select {
				case <-ctx.Done():
					return
				case out <- Ok(item):
				}
			}
		}()
		return out
	})
}

// Empty creates a Stream that emits no values and completes immediately.
func Empty[T any]() Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		close(out)
		return out
	})
}

// Once creates a Stream that emits a single value and then completes.
func Once[T any](value T) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			select {
			case <-ctx.Done():
				return
			case out <- Ok(value):
			}
		}()
		return out
	})
}

// FromError creates a Stream that immediately emits an error and completes.
func FromError[T any](err error) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			select {
			case <-ctx.Done():
				return
			case out <- core.Err[T](err):
			}
		}()
		return out
	})
}

// Generate creates a Stream that lazily generates values using the provided
// function. The function should return the next value and true to continue,
// or zero value and false to signal completion. If the function returns an
// error, it is wrapped in an error Result and the stream continues.
func Generate[T any](fn func() (T, bool, error)) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			for {
				value, ok, err := fn()
				if err != nil {
					select {
					case <-ctx.Done():
						return
					case out <- core.Err[T](err):
					}
					continue
				}
				if !ok {
					return
				}
				select {
				case <-ctx.Done():
					return
				case out <- Ok(value):
				}
			}
		}()
		return out
	})
}

// Repeat creates a Stream that emits the same value n times.
// If n is negative, the stream repeats indefinitely until context
// cancellation or a downstream stage stops pulling.
func Repeat[T any](value T, n int) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			count := 0
			for n < 0 || count < n {
				select {
				case <-ctx.Done():
					return
				case out <- Ok(value):
					count++
				}
			}
		}()
		return out
	})
}

// Range creates a Stream that emits integers from start (inclusive) to end (exclusive).
// If start >= end, an empty stream is returned.
func Range(start, end int) Stream[int] {
	return Emit(func(ctx context.Context) <-chan Result[int] {
		out := make(chan Result[int])
		go func() {
			defer close(out)
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return
				case out <- Ok(i):
				}
			}
		}()
		return out
	})
}

// RangeStep creates a Stream that emits integers from start to end with the given step.
// If step is positive, emits start, start+step, start+2*step, ... (while < end)
// If step is negative, emits start, start+step, start+2*step, ... (while > end)
// If step is zero or the direction is invalid, an empty stream is returned.
func RangeStep(start, end, step int) Stream[int] {
	return Emit(func(ctx context.Context) <-chan Result[int] {
		out := make(chan Result[int])
		go func() {
			defer close(out)

			if step == 0 {
				return
			}
			if step > 0 && start >= end {
				return
			}
			if step < 0 && start <= end {
				return
			}

			for i := start; (step > 0 && i < end) || (step < 0 && i > end); i += step {
				select {
				case <-ctx.Done():
					return
				case out <- Ok(i):
				}
			}
		}()
		return out
	})
}

// Span creates a Stream that enumerates int64 values between start and
// end. The end bound is exclusive unless inclusive is set. A positive
// step walks up from start; a negative step walks down from the end
// bound, honoring the same bounds in reverse. A zero step repeats start
// forever while it lies inside the bounds. Enumeration stops when the
// next value would leave the bounds, including by integer wraparound.
func Span(start, end int64, inclusive bool, step int64) Stream[int64] {
	return Emit(func(ctx context.Context) <-chan Result[int64] {
		out := make(chan Result[int64])
		go func() {
			defer close(out)

			back := end
			if !inclusive {
				back--
			}
			if start > back {
				return
			}
			if step == 0 {
				for {
					select {
					case <-ctx.Done():
						return
					case out <- Ok(start):
					}
				}
			}

			next := start
			if step < 0 {
				next = back
			}
			for next >= start && next <= back {
				select {
				case <-ctx.Done():
					return
				case out <- Ok(next):
				}
				next += step
			}
		}()
		return out
	})
}

// Concat creates a Stream that emits all values from the first stream,
// then all values from the second stream, and so on.
func Concat[T any](streams ...Stream[T]) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			for _, stream := range streams {
				for res := range stream.Emit(ctx) {
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
				}
			}
		}()
		return out
	})
}

// Defer creates a Stream lazily, calling the factory function each time
// the stream is subscribed to. This allows for late binding of stream creation.
func Defer[T any](factory func() Stream[T]) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		stream := factory()
		return stream.Emit(ctx)
	})
}

// Unfold creates a Stream by unfolding a seed value.
// The function receives the current state and returns:
// - The value to emit
// - The next state
// - Whether to continue (false = complete)
// - An error (if any, emitted as an error result)
func Unfold[T, S any](seed S, fn func(S) (T, S, bool, error)) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			state := seed
			for {
				value, nextState, ok, err := fn(state)
				if err != nil {
					select {
					case <-ctx.Done():
						return
					case out <- core.Err[T](err):
					}
					state = nextState
					continue
				}
				if !ok {
					return
				}
				select {
				case <-ctx.Done():
					return
				case out <- Ok(value):
				}
				state = nextState
			}
		}()
		return out
	})
}

// Iterate creates a Stream by repeatedly applying a function to a value.
// Emits seed, fn(seed), fn(fn(seed)), ... indefinitely until context cancellation.
func Iterate[T any](seed T, fn func(T) T) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			current := seed
			for {
				select {
				case <-ctx.Done():
					return
				case out <- Ok(current):
					current = fn(current)
				}
			}
		}()
		return out
	})
}

// IterateN creates a Stream that emits seed, fn(seed), fn(fn(seed)), ... for n iterations.
func IterateN[T any](seed T, fn func(T) T, n int) Stream[T] {
	return Emit(func(ctx context.Context) <-chan Result[T] {
		out := make(chan Result[T])
		go func() {
			defer close(out)
			current := seed
			for i := 0; i < n; i++ {
				select {
				case <-ctx.Done():
					return
				case out <- Ok(current):
					current = fn(current)
				}
			}
		}()
		return out
	})
}
