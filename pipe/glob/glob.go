// Package glob provides filesystem pattern matching: an eager expansion
// helper for argument lists and a Stream form for pipelines.
package glob

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/lguimbarda/rp/pipe/core"
)

// DefaultBufferSize is the default buffer size for glob streams.
const DefaultBufferSize = 64

// IsPattern reports whether name contains glob metacharacters and should
// be expanded rather than used verbatim.
func IsPattern(name string) bool {
	return strings.ContainsAny(name, "*?[")
}

// Expand resolves one name to concrete paths. Plain names come back as a
// single-element slice untouched, even when no such file exists. Pattern
// names are matched with filepath.Glob; a pattern with no matches expands
// to nothing.
func Expand(name string) ([]string, error) {
	if !IsPattern(name) {
		return []string{name}, nil
	}
	return filepath.Glob(name)
}

// ExpandAll expands every name in order, concatenating the results.
func ExpandAll(names []string) ([]string, error) {
	var paths []string
	for _, name := range names {
		expanded, err := Expand(name)
		if err != nil {
			return nil, err
		}
		paths = append(paths, expanded...)
	}
	return paths, nil
}

// Match creates a Stream that emits file paths matching a glob pattern.
// Patterns are matched using filepath.Glob.
func Match(pattern string) core.Stream[string] {
	return MatchBuffered(pattern, DefaultBufferSize)
}

// MatchBuffered creates a Match stream with a specified buffer size.
func MatchBuffered(pattern string, bufferSize int) core.Stream[string] {
	return core.Emit(func(ctx context.Context) <-chan core.Result[string] {
		out := make(chan core.Result[string], bufferSize)
		go func() {
			defer close(out)
			matches, err := filepath.Glob(pattern)
			if err != nil {
				select {
				case <-ctx.Done():
				case out <- core.Err[string](err):
				}
				return
			}
			for _, match := range matches {
				select {
				case <-ctx.Done():
					return
				case out <- core.Ok(match):
				}
			}
		}()
		return out
	})
}
