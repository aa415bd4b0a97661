// Package rperr provides the process error taxonomy. Every failure the
// tool reports carries a Kind whose numeric value doubles as the process
// exit code, rendered as "[Kind:code] message".
package rperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error. The numeric value is the exit code.
type Kind int

const (
	ParseToken          Kind = 1
	ArgParse            Kind = 2
	MissingArg          Kind = 3
	UnexpectedRemaining Kind = 4
	UnknownArgs         Kind = 5
	ReadClip            Kind = 6
	ReadFile            Kind = 7
	WriteClip           Kind = 8
	OpenFile            Kind = 9
	WriteFile           Kind = 10
	FormatString        Kind = 11
	ParseRegex          Kind = 12
	ParseNum            Kind = 13
	InvalidCount        Kind = 14
)

func (k Kind) String() string {
	switch k {
	case ParseToken:
		return "ParseToken"
	case ArgParse:
		return "ArgParse"
	case MissingArg:
		return "MissingArg"
	case UnexpectedRemaining:
		return "UnexpectedRemaining"
	case UnknownArgs:
		return "UnknownArgs"
	case ReadClip:
		return "ReadClip"
	case ReadFile:
		return "ReadFile"
	case WriteClip:
		return "WriteClip"
	case OpenFile:
		return "OpenFile"
	case WriteFile:
		return "WriteFile"
	case FormatString:
		return "FormatString"
	case ParseRegex:
		return "ParseRegex"
	case ParseNum:
		return "ParseNum"
	case InvalidCount:
		return "InvalidCount"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the structured error type. Message already includes the cause
// text; Cause is kept for errors.Is chains.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s:%d] %s", e.Kind, int(e.Kind), e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with a preformatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error whose message ends with the cause text.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	prefix := fmt.Sprintf(format, args...)
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf("%s: %v", prefix, cause),
		Cause:   cause,
	}
}

// KindOf extracts the Kind from an error chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// ExitCode maps an error to the process exit code: 0 for nil, the Kind's
// code for taxonomy errors, 1 for anything unclassified.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if kind, ok := KindOf(err); ok {
		return int(kind)
	}
	return 1
}

// --- Constructors ---

// ParseTokenErr reports a failure splitting the command string into words.
func ParseTokenErr(format string, args ...any) *Error {
	return New(ParseToken, "parse token: %s", fmt.Sprintf(format, args...))
}

// ArgParseErr reports an argument value that does not parse.
func ArgParseErr(cmd, arg, value string, cause error) *Error {
	return Wrap(ArgParse, cause, "cannot parse %q in argument `%s` of cmd `%s`", value, arg, cmd)
}

// MissingArgErr reports a command missing a required argument.
func MissingArgErr(cmd, arg string) *Error {
	return New(MissingArg, "missing argument `%s` of cmd `%s`", arg, cmd)
}

// UnexpectedRemainingErr reports trailing unparsed content inside one
// argument value.
func UnexpectedRemainingErr(cmd, arg, remaining string) *Error {
	return New(UnexpectedRemaining, "unexpected remaining value %q in argument `%s` of cmd `%s`", remaining, arg, cmd)
}

// UnknownArgsErr reports words left over once the whole pipeline has
// parsed.
func UnknownArgsErr(args []string) *Error {
	return New(UnknownArgs, "unknown arguments: %q", args)
}

// ReadClipErr reports a clipboard read failure.
func ReadClipErr(cause error) *Error {
	return Wrap(ReadClip, cause, "read clipboard")
}

// ReadFileErr reports a failure reading an input file.
func ReadFileErr(file string, cause error) *Error {
	return Wrap(ReadFile, cause, "read file %q", file)
}

// WriteClipErr reports a clipboard write failure.
func WriteClipErr(cause error) *Error {
	return Wrap(WriteClip, cause, "write clipboard")
}

// OpenFileErr reports a failure opening an output file.
func OpenFileErr(file string, cause error) *Error {
	return Wrap(OpenFile, cause, "open file %q", file)
}

// WriteFileErr reports a failure writing to an output file.
func WriteFileErr(file string, cause error) *Error {
	return Wrap(WriteFile, cause, "write to file %q", file)
}

// FormatStringErr reports a malformed format template at a byte position.
func FormatStringErr(format string, pos int) *Error {
	return New(FormatString, "bad format string %q at position %d", format, pos)
}

// ParseRegexErr reports a regex pattern that does not compile.
func ParseRegexErr(pattern string, cause error) *Error {
	return Wrap(ParseRegex, cause, "parse regex %q", pattern)
}

// ParseNumErr reports text that parses as neither integer nor float.
func ParseNumErr(value string) *Error {
	return New(ParseNum, "parse number from %q", value)
}

// InvalidCountErr reports a count argument that is not a non-negative
// integer.
func InvalidCountErr(cmd, arg, value string) *Error {
	return New(InvalidCount, "argument `%s` of cmd `%s` requires a non-negative count, got %q", arg, cmd, value)
}
