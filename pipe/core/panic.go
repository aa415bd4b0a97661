package core

import (
	"fmt"
	"runtime"
	"strings"
)

// ErrPanic wraps a panic recovered from a user-provided function during
// stream processing. The attached stack trace has engine frames removed so
// the first frames shown are the user code that panicked.
type ErrPanic struct {
	Value any
	Stack string
}

func (e ErrPanic) Error() string {
	if e.Stack != "" {
		return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// NewPanicError captures the current stack and builds an ErrPanic from a
// recovered value. Call it directly from the recovering defer.
func NewPanicError(recovered any) ErrPanic {
	// skip: runtime.Callers, captureStack, NewPanicError, defer func
	return ErrPanic{
		Value: recovered,
		Stack: cleanStack(captureStack(4)),
	}
}

func captureStack(skip int) string {
	const maxFrames = 32
	var pcs [maxFrames]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder

	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}

	return sb.String()
}

// cleanStack drops pipe-internal frames from a captured trace, keeping
// user code and standard library frames.
func cleanStack(stack string) string {
	lines := strings.Split(stack, "\n")
	var result []string
	var skipNext bool

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !strings.HasPrefix(line, "\t") {
			if strings.Contains(line, "github.com/lguimbarda/rp/pipe/") {
				skipNext = true
				continue
			}
			skipNext = false
		} else if skipNext {
			continue
		}

		result = append(result, line)
	}

	return strings.Join(result, "\n")
}
