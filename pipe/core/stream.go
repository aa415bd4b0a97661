// Package core defines the abstractions every pipe stage is built from:
// streams, transformers, emitters, and the Result type that travels
// between them. Higher-level packages compose these primitives into
// full pipelines.
//
// NOTE: this package should have no dependencies outside the standard
// library, including other pipe packages.
package core

import (
	"context"
	"iter"
)

// Stream represents a lazy sequence of Results. Nothing is produced until
// Emit is called; each call starts an independent pass over the source.
// Stream answers the question: "What operations will produce the stream's data?".
type Stream[OUT any] interface {
	Emit(context.Context) <-chan Result[OUT]

	Collect(context.Context) []Result[OUT]
	All(context.Context) iter.Seq[Result[OUT]]
}

func Collect[OUT any](ctx context.Context, stream Stream[OUT]) []Result[OUT] {
	var results []Result[OUT]
	for res := range stream.Emit(ctx) {
		results = append(results, res)
	}
	return results
}

func All[OUT any](ctx context.Context, stream Stream[OUT]) iter.Seq[Result[OUT]] {
	return func(yield func(Result[OUT]) bool) {
		for res := range stream.Emit(ctx) {
			if !yield(res) {
				return
			}
		}
	}
}

// Transformer represents one processing stage: it turns a Stream of IN
// into a Stream of OUT. Stages compose freely, so a pipeline is just a
// chain of Transformers applied to a source Stream.
// They answer the question: "What operations are being applied to the stream's data?".
type Transformer[IN, OUT any] interface {
	Apply(context.Context, Stream[IN]) Stream[OUT]
}
