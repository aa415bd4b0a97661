// Package aggregate provides transformers that collapse or regroup a stream:
// fixed-size batches, folds, counting, and whole-stream reordering.
package aggregate

import (
	"context"

	"github.com/lguimbarda/rp/pipe/core"
)

// AggregateConfig provides configuration for aggregate transformers.
type AggregateConfig struct {
	// BatchSize specifies the default batch size for batching operations.
	// A value of 0 or negative will use the function-level default.
	BatchSize int
}

// WithBatchSize returns a functional option that sets the batch size.
func WithBatchSize(size int) func(*AggregateConfig) {
	return func(c *AggregateConfig) {
		c.BatchSize = size
	}
}

// effectiveBatchSize returns the batch size to use, considering context
// config and the explicitly provided value. If size > 0, it takes
// precedence. Otherwise, config from context is used.
// Returns 0 if neither provides a valid value (caller must handle).
func effectiveBatchSize(ctx context.Context, size int) int {
	if size > 0 {
		return size
	}
	if cfg, ok := core.GetConfig[*AggregateConfig](ctx); ok && cfg.BatchSize > 0 {
		return cfg.BatchSize
	}
	return 0
}

// Batch creates a Transformer that collects values into batches of the
// specified size. When the batch is full, it is emitted as a slice. The
// final partial batch is emitted when the stream completes.
// If size <= 0 and no context config provides a valid size, panics.
func Batch[T any](size int) core.Transformer[T, []T] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[T]) <-chan core.Result[[]T] {
		batchSize := effectiveBatchSize(ctx, size)
		if batchSize <= 0 {
			panic("Batch size must be > 0")
		}

		out := make(chan core.Result[[]T])
		go func() {
			defer close(out)
			batch := make([]T, 0, batchSize)

			emit := func() {
				if len(batch) > 0 {
					batchCopy := make([]T, len(batch))
					copy(batchCopy, batch)
					select {
					case <-ctx.Done():
						return
					case out <- core.Ok(batchCopy):
					}
					batch = batch[:0]
				}
			}

			for res := range in {
				if res.IsError() {
					// Emit current batch before the error
					emit()
					select {
					case <-ctx.Done():
						return
					case out <- core.Err[[]T](res.Error()):
					}
					continue
				}

				if res.IsSentinel() {
					emit()
					select {
					case <-ctx.Done():
						return
					case out <- core.Sentinel[[]T](res.Error()):
					}
					continue
				}

				batch = append(batch, res.Value())
				if len(batch) >= batchSize {
					emit()
				}
			}

			// Emit final partial batch
			emit()
		}()
		return out
	})
}
