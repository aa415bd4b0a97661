package core

import "context"

// DefaultBufferSize is the default buffer size for internal channels.
// A small buffer reduces goroutine synchronization overhead without
// consuming excessive memory.
const DefaultBufferSize = 64

// TransformConfig holds configuration options for transform operations.
type TransformConfig struct {
	BufferSize int
}

// TransformOption is a functional option for configuring transforms.
type TransformOption func(*TransformConfig)

// WithBufferSize sets the buffer size for the transform's output channel.
// A larger buffer can improve throughput for CPU-bound stages by reducing
// goroutine synchronization. Use 0 for unbuffered (synchronous) operation.
func WithBufferSize(size int) TransformOption {
	return func(c *TransformConfig) {
		c.BufferSize = size
	}
}

func defaultConfig() TransformConfig {
	return TransformConfig{
		BufferSize: DefaultBufferSize,
	}
}

// applyOptions resolves the effective config: defaults, then any
// *TransformConfig injected via WithConfig, then explicit options.
func applyOptions(ctx context.Context, opts ...TransformOption) TransformConfig {
	cfg := defaultConfig()
	if injected, ok := GetConfig[*TransformConfig](ctx); ok && injected != nil {
		cfg = *injected
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Mapper defines a function that maps a Result of type IN to a Result of
// type OUT, one output item per input item. It is the lowest level of
// abstraction in the pipeline; it answers the question:
// "What is done to each item in the stream?"
type Mapper[IN, OUT any] func(Result[IN]) (Result[OUT], error)

// Map creates a Mapper from a plain transformation function. Error and
// sentinel Results pass through untouched; a panic in the function becomes
// an error Result carrying the recovered value and a cleaned stack.
func Map[IN, OUT any](mapFunc func(IN) (OUT, error)) Mapper[IN, OUT] {
	return func(res Result[IN]) (out Result[OUT], err error) {
		defer func() {
			if r := recover(); r != nil {
				err = NewPanicError(r)
			}
		}()

		if res.IsError() {
			return Err[OUT](res.Error()), nil
		}
		if res.IsSentinel() {
			return Sentinel[OUT](res.Sentinel()), nil
		}
		mappedValue, err := mapFunc(res.Value())
		if err != nil {
			return Err[OUT](err), nil
		}
		return Ok(mappedValue), nil
	}
}

// Apply transforms a stream using this Mapper with default configuration.
func (m Mapper[IN, OUT]) Apply(ctx context.Context, s Stream[IN]) Stream[OUT] {
	return m.ApplyWith(ctx, s)
}

// ApplyWith transforms a stream using this Mapper with custom options.
func (m Mapper[IN, OUT]) ApplyWith(ctx context.Context, s Stream[IN], opts ...TransformOption) Stream[OUT] {
	cfg := applyOptions(ctx, opts...)
	return Emit(func(ctx context.Context) <-chan Result[OUT] {
		outChan := make(chan Result[OUT], cfg.BufferSize)
		go func() {
			defer close(outChan)
			for resIn := range s.Emit(ctx) {
				resOut, err := m(resIn)
				if err != nil {
					select {
					case <-ctx.Done():
						return
					case outChan <- Err[OUT](err):
					}
					continue
				}
				select {
				case <-ctx.Done():
					return
				case outChan <- resOut:
				}
			}
		}()
		return outChan
	})
}

// FlatMapper defines a function that maps one input Result to zero or more
// output Results. It is the cardinality-changing counterpart of Mapper;
// it answers the question: "How are items in the stream reduced or expanded?"
type FlatMapper[IN, OUT any] func(Result[IN]) ([]Result[OUT], error)

// FlatMap creates a FlatMapper from a plain transformation function.
// Error and sentinel Results pass through untouched.
func FlatMap[IN, OUT any](flatMapFunc func(IN) ([]OUT, error)) FlatMapper[IN, OUT] {
	return func(res Result[IN]) (outs []Result[OUT], err error) {
		defer func() {
			if r := recover(); r != nil {
				err = NewPanicError(r)
			}
		}()

		if res.IsError() {
			return []Result[OUT]{Err[OUT](res.Error())}, nil
		}
		if res.IsSentinel() {
			return []Result[OUT]{Sentinel[OUT](res.Sentinel())}, nil
		}
		mappedValues, err := flatMapFunc(res.Value())
		if err != nil {
			return []Result[OUT]{Err[OUT](err)}, nil
		}
		results := make([]Result[OUT], len(mappedValues))
		for i, v := range mappedValues {
			results[i] = Ok(v)
		}
		return results, nil
	}
}

// Apply transforms a stream using this FlatMapper with default configuration.
func (fm FlatMapper[IN, OUT]) Apply(ctx context.Context, s Stream[IN]) Stream[OUT] {
	return fm.ApplyWith(ctx, s)
}

// ApplyWith transforms a stream using this FlatMapper with custom options.
func (fm FlatMapper[IN, OUT]) ApplyWith(ctx context.Context, s Stream[IN], opts ...TransformOption) Stream[OUT] {
	cfg := applyOptions(ctx, opts...)
	return Emit(func(ctx context.Context) <-chan Result[OUT] {
		outChan := make(chan Result[OUT], cfg.BufferSize)
		go func() {
			defer close(outChan)
			for resIn := range s.Emit(ctx) {
				resOuts, err := fm(resIn)
				if err != nil {
					select {
					case <-ctx.Done():
						return
					case outChan <- Err[OUT](err):
					}
					continue
				}
				for _, resOut := range resOuts {
					select {
					case <-ctx.Done():
						return
					case outChan <- resOut:
					}
				}
			}
		}()
		return outChan
	})
}
