// Package parse turns command words into a pipeline description. Each
// command family (input, operator, output) is an ordered list of
// keyword alternatives; the first keyword that matches the next word
// commits, and any failure past that point is a hard error instead of
// a fallback to another alternative. Keywords match case-insensitively.
// The whole pipeline parses eagerly, before any item is read.
package parse

import (
	"errors"
	"strconv"
	"strings"

	"github.com/lguimbarda/rp/internal/ops"
	"github.com/lguimbarda/rp/internal/rperr"
	"github.com/lguimbarda/rp/internal/token"
	"github.com/lguimbarda/rp/pipe/io"
)

var errBareBracket = errors.New("unescaped bracket in a value list")

// Pipeline is the parsed description of one run: where items come
// from, the operator chain, and where they go.
type Pipeline struct {
	Input  Input
	Ops    []ops.Op
	Output Output
}

// String renders the pipeline the way it is written on the command
// line, one word group per part.
func (p *Pipeline) String() string {
	parts := make([]string, 0, len(p.Ops)+2)
	parts = append(parts, p.Input.String())
	for _, op := range p.Ops {
		parts = append(parts, op.String())
	}
	parts = append(parts, p.Output.String())
	return strings.Join(parts, " ")
}

// Parse builds a pipeline from command words. Words left over after
// the output family are rejected.
func Parse(words []string) (*Pipeline, error) {
	p := &parser{words: words}
	input, err := p.input()
	if err != nil {
		return nil, err
	}
	opList, err := p.operators()
	if err != nil {
		return nil, err
	}
	output, err := p.output()
	if err != nil {
		return nil, err
	}
	if rest := p.words[p.pos:]; len(rest) > 0 {
		return nil, rperr.UnknownArgsErr(rest)
	}
	return &Pipeline{Input: input, Ops: opList, Output: output}, nil
}

type parser struct {
	words []string
	pos   int
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.words) {
		return "", false
	}
	return p.words[p.pos], true
}

func (p *parser) next() (string, bool) {
	w, ok := p.peek()
	if ok {
		p.pos++
	}
	return w, ok
}

// keyword consumes the next word when it equals kw case-insensitively.
func (p *parser) keyword(kw string) bool {
	if w, ok := p.peek(); ok && strings.EqualFold(w, kw) {
		p.pos++
		return true
	}
	return false
}

// unescape restores a literal leading colon written as `::x` or `\:x`,
// and a literal bracket written as `\[` or `\]`.
func unescape(arg string) string {
	switch {
	case strings.HasPrefix(arg, "::"), strings.HasPrefix(arg, `\:`):
		return arg[1:]
	case arg == `\[`, arg == `\]`:
		return arg[1:]
	}
	return arg
}

// optArg consumes the next word when it is not a command token.
// Optional argument values are unescaped; required ones, which are
// consumed no matter what they look like, are taken verbatim.
func (p *parser) optArg() (string, bool) {
	w, ok := p.peek()
	if !ok || token.IsCmd(w) {
		return "", false
	}
	p.pos++
	return unescape(w), true
}

// requireArg consumes the next word unconditionally.
func (p *parser) requireArg(cmd, arg string) (string, error) {
	w, ok := p.next()
	if !ok {
		return "", rperr.MissingArgErr(cmd, arg)
	}
	return w, nil
}

// argList consumes a one-or-more value list: either bare words up to
// the next command token, or a bracketed `[ a b c ]` list.
func (p *parser) argList(cmd, arg string) ([]string, error) {
	if w, ok := p.peek(); ok && w == "[" {
		p.pos++
		return p.bracketList(cmd, arg)
	}
	var list []string
	for {
		v, ok := p.optArg()
		if !ok {
			break
		}
		list = append(list, v)
	}
	if len(list) == 0 {
		return nil, rperr.MissingArgErr(cmd, arg)
	}
	return list, nil
}

func (p *parser) bracketList(cmd, arg string) ([]string, error) {
	var list []string
	for {
		w, ok := p.next()
		if !ok {
			return nil, rperr.MissingArgErr(cmd, "]")
		}
		switch w {
		case "]":
			if len(list) == 0 {
				return nil, rperr.MissingArgErr(cmd, arg)
			}
			return list, nil
		case "[":
			return nil, rperr.ArgParseErr(cmd, arg, w, errBareBracket)
		default:
			list = append(list, unescape(w))
		}
	}
}

// count consumes the next word when it parses as a non-negative
// integer.
func (p *parser) count() (int, bool) {
	w, ok := p.peek()
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(w)
	if err != nil || n < 0 {
		return 0, false
	}
	p.pos++
	return n, true
}

// positiveCount consumes the next word when it parses as a positive
// integer.
func (p *parser) positiveCount() (int, bool) {
	w, ok := p.peek()
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(w)
	if err != nil || n <= 0 {
		return 0, false
	}
	p.pos++
	return n, true
}

// requireCount consumes a non-negative count. A missing word or a
// following command token is a missing argument; anything else that
// fails to parse is consumed and reported as an invalid count.
func (p *parser) requireCount(cmd string) (int, error) {
	w, ok := p.peek()
	if !ok || token.IsCmd(w) {
		return 0, rperr.MissingArgErr(cmd, "count")
	}
	p.pos++
	n, err := strconv.Atoi(w)
	if err != nil || n < 0 {
		return 0, rperr.InvalidCountErr(cmd, "count", w)
	}
	return n, nil
}

// fileMode consumes the optional `append` and `lf|crlf` words after a
// file name. The zero LineEnding stands for the LF default.
func (p *parser) fileMode() (bool, io.LineEnding) {
	appending := p.keyword("append")
	return appending, p.lineEnding()
}

func (p *parser) lineEnding() io.LineEnding {
	switch {
	case p.keyword("crlf"):
		return io.CRLF
	case p.keyword("lf"):
		return io.LF
	}
	return ""
}
