package parse

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lguimbarda/rp/internal/ops"
	"github.com/lguimbarda/rp/internal/rperr"
)

// Input describes where the items of a run come from. String renders
// the input the way it is written on the command line.
type Input interface {
	fmt.Stringer
	input()
}

// StdIn reads lines from standard input. It is the default input.
type StdIn struct{}

func (StdIn) input() {}

func (StdIn) String() string { return ":in" }

// FileIn reads the lines of each named file in order. Names may be
// glob patterns.
type FileIn struct {
	Files []string
}

func (FileIn) input() {}

func (f FileIn) String() string { return ":file" + renderList(f.Files) }

// ClipIn reads the clipboard text split into lines.
type ClipIn struct{}

func (ClipIn) input() {}

func (ClipIn) String() string { return ":clip" }

// OfIn turns each literal value into one item.
type OfIn struct {
	Values []string
}

func (OfIn) input() {}

func (o OfIn) String() string { return ":of" + renderList(o.Values) }

// GenIn enumerates integers from Start towards End, exclusive unless
// Inclusive. A negative Step walks from the end bound backwards. With
// a Format every value renders through the template into a text item.
type GenIn struct {
	Start     int64
	End       int64
	Inclusive bool
	Step      int64
	Format    *ops.Template
}

func (GenIn) input() {}

func (g GenIn) String() string {
	s := ":gen " + strconv.FormatInt(g.Start, 10)
	switch {
	case g.End == math.MaxInt64 && !g.Inclusive:
		if g.Step != 1 {
			s += ",," + strconv.FormatInt(g.Step, 10)
		}
	default:
		s += ","
		if g.Inclusive {
			s += "="
		}
		s += strconv.FormatInt(g.End, 10)
		if g.Step != 1 {
			s += "," + strconv.FormatInt(g.Step, 10)
		}
	}
	if g.Format != nil {
		s += fmt.Sprintf(" %q", g.Format.String())
	}
	return s
}

// RepeatIn emits Value over and over, Count times or forever when
// Count is nil.
type RepeatIn struct {
	Value string
	Count *int
}

func (RepeatIn) input() {}

func (r RepeatIn) String() string {
	s := fmt.Sprintf(":repeat %q", r.Value)
	if r.Count != nil {
		s += " " + strconv.Itoa(*r.Count)
	}
	return s
}

func renderList(values []string) string {
	if len(values) == 1 {
		return fmt.Sprintf(" %q", values[0])
	}
	var b strings.Builder
	b.WriteString(" [")
	for _, v := range values {
		fmt.Fprintf(&b, " %q", v)
	}
	b.WriteString(" ]")
	return b.String()
}

func (p *parser) input() (Input, error) {
	w, ok := p.peek()
	if !ok {
		return StdIn{}, nil
	}
	switch strings.ToLower(w) {
	case ":in":
		p.pos++
		return StdIn{}, nil
	case ":file":
		p.pos++
		files, err := p.argList(":file", "file")
		if err != nil {
			return nil, err
		}
		return FileIn{Files: files}, nil
	case ":clip":
		p.pos++
		return ClipIn{}, nil
	case ":of":
		p.pos++
		values, err := p.argList(":of", "value")
		if err != nil {
			return nil, err
		}
		return OfIn{Values: values}, nil
	case ":gen":
		p.pos++
		return p.genIn()
	case ":repeat":
		p.pos++
		return p.repeatIn()
	default:
		return StdIn{}, nil
	}
}

func (p *parser) genIn() (Input, error) {
	w, err := p.requireArg(":gen", "range")
	if err != nil {
		return nil, err
	}
	gen, rest, err := parseGenRange(w)
	if err != nil {
		return nil, rperr.ArgParseErr(":gen", "range", w, err)
	}
	if rest != "" {
		return nil, rperr.UnexpectedRemainingErr(":gen", "range", rest)
	}
	if f, ok := p.optArg(); ok {
		tpl, err := ops.ParseTemplate(f)
		if err != nil {
			return nil, err
		}
		gen.Format = tpl
	}
	return gen, nil
}

// parseGenRange parses the :gen range, trying the spellings in order:
// a,=b,s | a,b,s | a,=b | a,b | a,,s | a. The end bound defaults to
// the maximum integer, the step to 1; an explicit step must be
// nonzero. The first spelling that matches wins and any unconsumed
// suffix is returned for the caller to reject.
func parseGenRange(s string) (GenIn, string, error) {
	start, i, err := scanInt(s, 0)
	if err != nil {
		return GenIn{}, "", err
	}
	gen := GenIn{Start: start, End: math.MaxInt64, Step: 1}
	if i >= len(s) || s[i] != ',' {
		return gen, s[i:], nil
	}
	mark := i
	i++
	inclusive := false
	if i < len(s) && s[i] == '=' {
		inclusive = true
		i++
	}
	if end, j, err := scanInt(s, i); err == nil {
		gen.End, gen.Inclusive = end, inclusive
		if j < len(s) && s[j] == ',' {
			if step, k, err := scanInt(s, j+1); err == nil && step != 0 {
				gen.Step = step
				return gen, s[k:], nil
			}
		}
		return gen, s[j:], nil
	}
	if !inclusive && i < len(s) && s[i] == ',' {
		if step, k, err := scanInt(s, i+1); err == nil && step != 0 {
			gen.Step = step
			return gen, s[k:], nil
		}
	}
	return gen, s[mark:], nil
}

// scanInt scans a signed decimal integer starting at i and returns the
// value and the index just past it.
func scanInt(s string, i int) (int64, int, error) {
	j := i
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	for j < len(s) && '0' <= s[j] && s[j] <= '9' {
		j++
	}
	n, err := strconv.ParseInt(s[i:j], 10, 64)
	if err != nil {
		return 0, i, err
	}
	return n, j, nil
}

func (p *parser) repeatIn() (Input, error) {
	value, err := p.requireArg(":repeat", "value")
	if err != nil {
		return nil, err
	}
	in := RepeatIn{Value: value}
	if n, ok := p.count(); ok {
		in.Count = &n
	}
	return in, nil
}
