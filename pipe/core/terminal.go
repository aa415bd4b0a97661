package core

import (
	"context"
	"fmt"
)

// Terminal functions consume a stream and produce a final outcome: a slice
// of values, the first value, a side effect per value, or nothing at all.
// Each one derives a cancellable context so the upstream goroutines stop
// as soon as the terminal returns.

func Slice[OUT any](ctx context.Context, in Stream[OUT]) ([]OUT, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var result []OUT
	for res := range in.Emit(ctx) {
		if res.IsError() {
			return nil, res.Error()
		}
		if res.IsSentinel() {
			continue
		}
		result = append(result, res.Value())
	}
	return result, nil
}

func First[OUT any](ctx context.Context, in Stream[OUT]) (OUT, error) {
	var zero OUT

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	res, ok := <-in.Emit(ctx)
	switch {
	case !ok || res.IsSentinel():
		return zero, fmt.Errorf("stream is empty")
	case res.IsError():
		return zero, res.Error()
	default:
		return res.Value(), nil
	}
}

// Each calls fn for every value in the stream, in order. It stops and
// returns on the first error Result or the first error from fn.
func Each[OUT any](ctx context.Context, in Stream[OUT], fn func(OUT) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for res := range in.Emit(ctx) {
		if res.IsError() {
			return res.Error()
		}
		if res.IsSentinel() {
			continue
		}
		if err := fn(res.Value()); err != nil {
			return err
		}
	}
	return nil
}

func Run[OUT any](ctx context.Context, in Stream[OUT]) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for res := range in.Emit(ctx) {
		if res.IsError() {
			return res.Error()
		}
	}
	return nil
}
