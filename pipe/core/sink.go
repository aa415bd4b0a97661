package core

import "context"

// Sink consumes an entire stream and produces a single outcome. From runs
// the sink directly; Apply wraps the outcome in a one-element stream so a
// sink can still sit inside a pipeline as a Transformer.
type Sink[IN, OUT any] func(context.Context, Stream[IN]) (OUT, error)

// ToSlice returns a Sink that collects every value into a slice.
func ToSlice[T any]() Sink[T, []T] {
	return func(ctx context.Context, in Stream[T]) ([]T, error) {
		return Slice(ctx, in)
	}
}

// ToFirst returns a Sink that yields the first value of the stream.
func ToFirst[T any]() Sink[T, T] {
	return func(ctx context.Context, in Stream[T]) (T, error) {
		return First(ctx, in)
	}
}

// ToRun returns a Sink that drains the stream for its side effects.
func ToRun[T any]() Sink[T, struct{}] {
	return func(ctx context.Context, in Stream[T]) (struct{}, error) {
		return struct{}{}, Run(ctx, in)
	}
}

// From runs the sink against a stream and returns its outcome.
func (s Sink[IN, OUT]) From(ctx context.Context, in Stream[IN]) (OUT, error) {
	return s(ctx, in)
}

// Apply runs the sink and emits its outcome as a single Result.
// A sink error becomes an error Result.
func (s Sink[IN, OUT]) Apply(ctx context.Context, in Stream[IN]) Stream[OUT] {
	return Emit(func(ctx context.Context) <-chan Result[OUT] {
		out := make(chan Result[OUT], 1)
		go func() {
			defer close(out)
			val, err := s(ctx, in)
			if err != nil {
				select {
				case <-ctx.Done():
				case out <- Err[OUT](err):
				}
				return
			}
			select {
			case <-ctx.Done():
			case out <- Ok(val):
			}
		}()
		return out
	})
}
