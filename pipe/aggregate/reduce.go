package aggregate

import (
	"context"

	"github.com/lguimbarda/rp/pipe/core"
)

// Fold creates a Transformer that folds all values in the stream into a
// single value using the provided folder function and initial value.
// Fold always emits exactly one value, the initial value when the stream
// carried none.
func Fold[T, R any](initial R, folder func(acc R, item T) R) core.Transformer[T, R] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[T]) <-chan core.Result[R] {
		out := make(chan core.Result[R])
		go func() {
			defer close(out)
			acc := initial

			for res := range in {
				if res.IsError() {
					select {
					case <-ctx.Done():
						return
					case out <- core.Err[R](res.Error()):
					}
					continue
				}

				if res.IsSentinel() {
					select {
					case <-ctx.Done():
						return
					case out <- core.Sentinel[R](res.Error()):
					}
					continue
				}

				acc = folder(acc, res.Value())
			}

			select {
			case <-ctx.Done():
				return
			case out <- core.Ok(acc):
			}
		}()
		return out
	})
}

// Count creates a Transformer that counts the values in the stream.
// Emits a single int when the stream completes; errors and sentinels do
// not count.
func Count[T any]() core.Transformer[T, int] {
	return Fold[T, int](0, func(acc int, _ T) int {
		return acc + 1
	})
}
