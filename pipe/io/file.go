// Package io provides stream adapters for line-oriented I/O.
// It enables reading from and writing to files and writers as part of
// stream pipelines.
package io

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/lguimbarda/rp/pipe/core"
)

// DefaultBufferSize is re-exported from core for convenience.
const DefaultBufferSize = core.DefaultBufferSize

// maxLineSize bounds a single scanned line.
const maxLineSize = 10 * 1024 * 1024

// LineEnding is the terminator appended after each written line.
type LineEnding string

const (
	LF   LineEnding = "\n"
	CRLF LineEnding = "\r\n"
)

// ReadLines creates a Stream that emits each line of the named file.
// Lines are emitted without their trailing newline. If the file cannot be
// opened, the stream emits one error and completes.
func ReadLines(path string) core.Stream[string] {
	return ReadLinesBuffered(path, DefaultBufferSize)
}

// ReadLinesBuffered creates a Stream that emits lines with a specified
// channel buffer size.
func ReadLinesBuffered(path string, bufferSize int) core.Stream[string] {
	return core.Emit(func(ctx context.Context) <-chan core.Result[string] {
		out := make(chan core.Result[string], bufferSize)

		go func() {
			defer close(out)

			file, err := os.Open(path)
			if err != nil {
				select {
				case <-ctx.Done():
				case out <- core.Err[string](err):
				}
				return
			}
			defer file.Close()

			scanLines(ctx, file, out)
		}()

		return out
	})
}

// ReadLinesFrom creates a Stream that reads lines from an io.Reader.
// This is useful for reading from stdin, network connections, or other
// readers.
func ReadLinesFrom(r io.Reader) core.Stream[string] {
	return ReadLinesFromBuffered(r, DefaultBufferSize)
}

// ReadLinesFromBuffered creates a Stream that reads lines with a specified
// channel buffer size.
func ReadLinesFromBuffered(r io.Reader, bufferSize int) core.Stream[string] {
	return core.Emit(func(ctx context.Context) <-chan core.Result[string] {
		out := make(chan core.Result[string], bufferSize)

		go func() {
			defer close(out)
			scanLines(ctx, r, out)
		}()

		return out
	})
}

func scanLines(ctx context.Context, r io.Reader, out chan<- core.Result[string]) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		case out <- core.Ok(scanner.Text()):
		}
	}

	if err := scanner.Err(); err != nil {
		select {
		case <-ctx.Done():
		case out <- core.Err[string](err):
		}
	}
}

// WriteLines creates a Transformer that writes each string to a file, one
// per line. The file is created if it doesn't exist, or truncated if it
// does. Items pass through unchanged after being written.
func WriteLines(path string) core.Transformer[string, string] {
	return WriteLinesWithOptions(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644, LF)
}

// AppendLines creates a Transformer that appends each string to a file, one
// per line. The file is created if it doesn't exist.
// Items pass through unchanged after being written.
func AppendLines(path string) core.Transformer[string, string] {
	return WriteLinesWithOptions(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644, LF)
}

// WriteLinesWithOptions creates a Transformer that writes lines with custom
// file options and line ending.
func WriteLinesWithOptions(path string, flag int, perm os.FileMode, ending LineEnding) core.Transformer[string, string] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[string]) <-chan core.Result[string] {
		out := make(chan core.Result[string], DefaultBufferSize)

		go func() {
			defer close(out)

			file, err := os.OpenFile(path, flag, perm)
			if err != nil {
				select {
				case <-ctx.Done():
				case out <- core.Err[string](err):
				}
				return
			}
			defer file.Close()

			writer := bufio.NewWriter(file)
			defer writer.Flush()

			writeStream(ctx, in, out, writer, ending)
		}()

		return out
	})
}

// WriteTo creates a Transformer that writes each string to an io.Writer
// followed by a line feed. Items pass through unchanged after being
// written.
func WriteTo(w io.Writer) core.Transformer[string, string] {
	return WriteToEnding(w, LF)
}

// WriteToEnding is WriteTo with an explicit line ending.
func WriteToEnding(w io.Writer, ending LineEnding) core.Transformer[string, string] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[string]) <-chan core.Result[string] {
		out := make(chan core.Result[string], DefaultBufferSize)

		go func() {
			defer close(out)

			writer := bufio.NewWriter(w)
			defer writer.Flush()

			writeStream(ctx, in, out, writer, ending)
		}()

		return out
	})
}

func writeStream(ctx context.Context, in <-chan core.Result[string], out chan<- core.Result[string], writer *bufio.Writer, ending LineEnding) {
	for res := range in {
		if res.IsError() || res.IsSentinel() {
			select {
			case <-ctx.Done():
				return
			case out <- res:
			}
			continue
		}

		if _, err := writer.WriteString(res.Value() + string(ending)); err != nil {
			select {
			case <-ctx.Done():
				return
			case out <- core.Err[string](err):
			}
			continue
		}

		select {
		case <-ctx.Done():
			return
		case out <- res:
		}
	}
}

// ToFile creates a Sink that drains a string stream into the named file,
// one line per value, and reports the number of lines written. The first
// error Result stops the write and is returned; lines already written stay
// written.
func ToFile(path string, flag int, perm os.FileMode, ending LineEnding) core.Sink[string, int] {
	return func(ctx context.Context, in core.Stream[string]) (int, error) {
		file, err := os.OpenFile(path, flag, perm)
		if err != nil {
			return 0, err
		}

		n, err := drainTo(ctx, in, file, ending)
		cerr := file.Close()
		if err != nil {
			return n, err
		}
		return n, cerr
	}
}

// ToWriter creates a Sink that drains a string stream into w, one line per
// value, and reports the number of lines written.
func ToWriter(w io.Writer, ending LineEnding) core.Sink[string, int] {
	return func(ctx context.Context, in core.Stream[string]) (int, error) {
		return drainTo(ctx, in, w, ending)
	}
}

func drainTo(ctx context.Context, in core.Stream[string], w io.Writer, ending LineEnding) (int, error) {
	writer := bufio.NewWriter(w)
	n := 0
	for res := range in.Emit(ctx) {
		if res.IsSentinel() {
			continue
		}
		if res.IsError() {
			writer.Flush()
			return n, res.Error()
		}
		if _, err := writer.WriteString(res.Value() + string(ending)); err != nil {
			writer.Flush()
			return n, err
		}
		n++
	}
	return n, writer.Flush()
}
