// Package observe provides typed hook registration for watching streams
// from the outside: per-value callbacks, counters, and logging. Hooks are
// carried on the context and fire wherever a core.Notify stage runs.
package observe

import (
	"context"
	"sync/atomic"

	"github.com/lguimbarda/rp/pipe/core"
)

// WithValueHook attaches a value observation hook for type T to the
// context. The callback fires for each value passing a Notify stage.
func WithValueHook[T any](ctx context.Context, callback func(T)) context.Context {
	return core.WithHooks(ctx, core.Hooks[T]{
		OnValue: callback,
	})
}

// WithErrorHook attaches an error observation hook for type T to the
// context. The callback fires for each error result.
func WithErrorHook[T any](ctx context.Context, callback func(error)) context.Context {
	return core.WithHooks(ctx, core.Hooks[T]{
		OnError: callback,
	})
}

// WithStartHook attaches a stream start hook for type T to the context.
func WithStartHook[T any](ctx context.Context, callback func()) context.Context {
	return core.WithHooks(ctx, core.Hooks[T]{
		OnStart: callback,
	})
}

// WithCompleteHook attaches a stream completion hook for type T to the
// context.
func WithCompleteHook[T any](ctx context.Context, callback func()) context.Context {
	return core.WithHooks(ctx, core.Hooks[T]{
		OnComplete: callback,
	})
}

// WithSentinelHook attaches a sentinel observation hook for type T to the
// context.
func WithSentinelHook[T any](ctx context.Context, callback func(error)) context.Context {
	return core.WithHooks(ctx, core.Hooks[T]{
		OnSentinel: callback,
	})
}

// Counter provides thread-safe counting of values and errors.
type Counter struct {
	values atomic.Int64
	errors atomic.Int64
}

// Values returns the count of values processed.
func (c *Counter) Values() int64 { return c.values.Load() }

// Errors returns the count of errors encountered.
func (c *Counter) Errors() int64 { return c.errors.Load() }

// Total returns the total count of values and errors.
func (c *Counter) Total() int64 { return c.values.Load() + c.errors.Load() }

// WithCounter attaches counting hooks for type T and returns the counter
// for querying after the run.
func WithCounter[T any](ctx context.Context) (context.Context, *Counter) {
	counter := &Counter{}
	ctx = core.WithHooks(ctx, core.Hooks[T]{
		OnValue: func(T) { counter.values.Add(1) },
		OnError: func(error) { counter.errors.Add(1) },
	})
	return ctx, counter
}

// Logger is a function type for logging messages.
type Logger func(format string, args ...any)

// WithLogging attaches logging hooks for type T to the context.
func WithLogging[T any](ctx context.Context, logger Logger) context.Context {
	return core.WithHooks(ctx, core.Hooks[T]{
		OnStart: func() {
			logger("stream started")
		},
		OnValue: func(v T) {
			logger("value: %v", v)
		},
		OnError: func(err error) {
			logger("error: %v", err)
		},
		OnSentinel: func(err error) {
			logger("sentinel: %v", err)
		},
		OnComplete: func() {
			logger("stream completed")
		},
	})
}
