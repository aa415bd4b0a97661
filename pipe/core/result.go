package core

import "errors"

// Result is the unit that travels through a stream. It is in exactly one
// of three states:
//   - value: an item that was produced successfully (IsValue() is true)
//   - error: a recoverable per-item failure (IsError() is true)
//   - sentinel: a stream control signal (IsSentinel() is true)
//
// Errors flow through the stream alongside values so a failed item does not
// tear down the pipeline; stages forward error Results untouched unless they
// exist to handle them. Sentinels may carry an optional error for context,
// ErrEndOfStream being the common case.
type Result[OUT any] struct {
	value      OUT
	err        error
	isSentinel bool
}

// NewResult builds a Result with every field spelled out.
// Prefer Ok, Err, Sentinel, or EndOfStream for the usual cases.
func NewResult[OUT any](value OUT, err error, isSentinel bool) Result[OUT] {
	return Result[OUT]{value: value, err: err, isSentinel: isSentinel}
}

// Ok creates a value Result.
func Ok[OUT any](value OUT) Result[OUT] {
	return Result[OUT]{value: value}
}

// Err creates an error Result. The stream keeps going; use this for
// per-item failures that downstream stages or the sink should see.
func Err[OUT any](err error) Result[OUT] {
	var zero OUT
	return Result[OUT]{value: zero, err: err}
}

// Sentinel creates a sentinel Result carrying an optional context error.
// Use EndOfStream for the normal completion signal.
func Sentinel[OUT any](err error) Result[OUT] {
	var zero OUT
	return Result[OUT]{value: zero, err: err, isSentinel: true}
}

// ErrEndOfStream is the sentinel error for normal stream termination.
var ErrEndOfStream = errors.New("end of stream")

// EndOfStream creates the sentinel Result that signals normal completion.
func EndOfStream[OUT any]() Result[OUT] {
	var zero OUT
	return Result[OUT]{value: zero, err: ErrEndOfStream, isSentinel: true}
}

// IsValue reports whether this Result holds a successfully produced item.
func (r Result[OUT]) IsValue() bool {
	return r.err == nil && !r.isSentinel
}

// IsSentinel reports whether this Result is a control signal.
func (r Result[OUT]) IsSentinel() bool {
	return r.isSentinel
}

// IsError reports whether this Result holds a per-item failure.
func (r Result[OUT]) IsError() bool {
	return r.err != nil && !r.isSentinel
}

// Value returns the contained item. Meaningful only when IsValue() is true;
// otherwise it returns the zero value.
func (r Result[OUT]) Value() OUT {
	return r.value
}

// Error returns the failure if this is an error Result, nil otherwise.
// Sentinel context errors are reached through Sentinel(), not here.
func (r Result[OUT]) Error() error {
	if r.isSentinel {
		return nil
	}
	return r.err
}

// Sentinel returns the control signal's context error if this is a
// sentinel Result, nil otherwise.
func (r Result[OUT]) Sentinel() error {
	if !r.isSentinel {
		return nil
	}
	return r.err
}

// Unwrap returns the value and error together, whatever the state.
func (r Result[OUT]) Unwrap() (OUT, error) {
	return r.value, r.err
}
