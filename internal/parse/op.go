package parse

import (
	"strconv"
	"strings"

	"github.com/lguimbarda/rp/internal/ops"
	"github.com/lguimbarda/rp/internal/rperr"
)

func (p *parser) operators() ([]ops.Op, error) {
	var list []ops.Op
	for {
		op, err := p.operator()
		if err != nil {
			return nil, err
		}
		if op == nil {
			break
		}
		list = append(list, op)
	}
	return list, nil
}

func (p *parser) operator() (ops.Op, error) {
	w, ok := p.peek()
	if !ok {
		return nil, nil
	}
	switch strings.ToLower(w) {
	case ":peek":
		p.pos++
		return p.peekOp(), nil
	case ":upper":
		p.pos++
		return ops.Upper{}, nil
	case ":lower":
		p.pos++
		return ops.Lower{}, nil
	case ":case":
		p.pos++
		return ops.SwapCase{}, nil
	case ":replace":
		p.pos++
		return p.replaceOp()
	case ":trim":
		p.pos++
		return p.trimOp(ops.TrimBoth, false), nil
	case ":ltrim":
		p.pos++
		return p.trimOp(ops.TrimLeft, false), nil
	case ":rtrim":
		p.pos++
		return p.trimOp(ops.TrimRight, false), nil
	case ":trimc":
		p.pos++
		return p.trimOp(ops.TrimBoth, true), nil
	case ":ltrimc":
		p.pos++
		return p.trimOp(ops.TrimLeft, true), nil
	case ":rtrimc":
		p.pos++
		return p.trimOp(ops.TrimRight, true), nil
	case ":uniq":
		p.pos++
		return ops.Uniq{Nocase: p.keyword("nocase")}, nil
	case ":join":
		p.pos++
		return p.joinOp(), nil
	case ":limit":
		p.pos++
		n, err := p.requireCount(":limit")
		if err != nil {
			return nil, err
		}
		return ops.Limit{Count: n}, nil
	case ":skip":
		p.pos++
		n, err := p.requireCount(":skip")
		if err != nil {
			return nil, err
		}
		return ops.Skip{Count: n}, nil
	case ":slice":
		p.pos++
		return p.sliceOp()
	case ":take":
		p.pos++
		return p.takeDropOp(":take", true)
	case ":drop":
		p.pos++
		return p.takeDropOp(":drop", false)
	case ":count":
		p.pos++
		return ops.Count{}, nil
	case ":sort":
		p.pos++
		return p.sortOp(), nil
	default:
		return nil, nil
	}
}

func (p *parser) peekOp() ops.Op {
	op := ops.Peek{}
	if file, ok := p.optArg(); ok {
		op.Path = file
		op.Append, op.Ending = p.fileMode()
	}
	return op
}

func (p *parser) replaceOp() (ops.Op, error) {
	from, err := p.requireArg(":replace", "from")
	if err != nil {
		return nil, err
	}
	to, err := p.requireArg(":replace", "to")
	if err != nil {
		return nil, err
	}
	op := ops.Replace{From: from, To: to, Count: -1}
	if n, ok := p.count(); ok {
		op.Count = n
	}
	op.Nocase = p.keyword("nocase")
	return op, nil
}

// trimOp parses the shared shape of the trim family. The pattern slot
// is filled first, so a lone `nocase` word is a pattern, not the flag.
func (p *parser) trimOp(side ops.TrimSide, chars bool) ops.Op {
	op := ops.Trim{Side: side, Chars: chars}
	if pattern, ok := p.optArg(); ok {
		op.Pattern = pattern
		op.Nocase = p.keyword("nocase")
	}
	return op
}

func (p *parser) joinOp() ops.Op {
	op := ops.Join{}
	delim, ok := p.optArg()
	if !ok {
		return op
	}
	op.Delim = delim
	prefix, ok := p.optArg()
	if !ok {
		return op
	}
	op.Prefix = prefix
	postfix, ok := p.optArg()
	if !ok {
		return op
	}
	op.Postfix = postfix
	if n, ok := p.positiveCount(); ok {
		op.Batch = n
	}
	return op
}

func (p *parser) sliceOp() (ops.Op, error) {
	var ranges []ops.IndexRange
	for {
		w, ok := p.peek()
		if !ok {
			break
		}
		r, ok := parseIndexRange(w)
		if !ok {
			break
		}
		p.pos++
		ranges = append(ranges, r)
	}
	if len(ranges) == 0 {
		return nil, rperr.MissingArgErr(":slice", "range")
	}
	return ops.Slice{Ranges: ranges}, nil
}

// parseIndexRange parses one slice range: `a,b | ,b | a, | n`.
// Indexes are non-negative, so any word that does not scan as one is
// left for the next parser rather than rejected outright.
func parseIndexRange(w string) (ops.IndexRange, bool) {
	lo, hi, found := strings.Cut(w, ",")
	if !found {
		n, ok := parseIndex(w)
		if !ok {
			return ops.IndexRange{}, false
		}
		return ops.IndexRange{Min: &n, Max: &n}, true
	}
	var r ops.IndexRange
	if lo != "" {
		n, ok := parseIndex(lo)
		if !ok {
			return ops.IndexRange{}, false
		}
		r.Min = &n
	}
	if hi != "" {
		n, ok := parseIndex(hi)
		if !ok {
			return ops.IndexRange{}, false
		}
		r.Max = &n
	}
	if r.Min == nil && r.Max == nil {
		return ops.IndexRange{}, false
	}
	return r, true
}

func parseIndex(s string) (int64, bool) {
	n, err := strconv.ParseUint(s, 10, 63)
	if err != nil {
		return 0, false
	}
	return int64(n), true
}

func (p *parser) takeDropOp(cmd string, take bool) (ops.Op, error) {
	mode := ops.Take
	if !take {
		mode = ops.Drop
	}
	if p.keyword("while") {
		cmd += " while"
		if take {
			mode = ops.TakeWhile
		} else {
			mode = ops.DropWhile
		}
	}
	c, err := p.condition(cmd)
	if err != nil {
		return nil, err
	}
	return ops.TakeDrop{Mode: mode, Cond: c}, nil
}

func (p *parser) sortOp() ops.Op {
	if p.keyword("random") {
		return ops.Sort{Kind: ops.SortRandom}
	}
	op := ops.Sort{}
	if p.keyword("num") {
		op.Kind = ops.SortNum
		if w, ok := p.peek(); ok {
			if n, err := strconv.ParseInt(w, 10, 64); err == nil {
				p.pos++
				op.IntDefault = &n
			} else if f, err := strconv.ParseFloat(w, 64); err == nil {
				p.pos++
				op.FloatDefault = &f
			}
		}
	}
	op.Nocase = p.keyword("nocase")
	op.Desc = p.keyword("desc")
	return op
}
