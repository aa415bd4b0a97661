package parse

import (
	"errors"
	"strconv"
	"strings"

	"github.com/lguimbarda/rp/internal/cond"
	"github.com/lguimbarda/rp/internal/item"
	"github.com/lguimbarda/rp/internal/rperr"
)

var errRangeOrSpec = errors.New("neither a min,max range nor an exact value")

// condition parses `[not] <selector>` for a take or drop command. The
// cmd name is carried into errors so `:take while` reports as itself.
func (p *parser) condition(cmd string) (cond.Condition, error) {
	c := cond.Condition{Not: p.keyword("not")}
	sel, err := p.selector(cmd)
	if err != nil {
		return cond.Condition{}, err
	}
	c.Select = sel
	return c, nil
}

func (p *parser) selector(cmd string) (cond.Selector, error) {
	w, ok := p.peek()
	if !ok {
		return nil, rperr.MissingArgErr(cmd, "condition")
	}
	switch strings.ToLower(w) {
	case "len":
		p.pos++
		return p.lenSelector(cmd)
	case "num":
		p.pos++
		return p.numSelector(), nil
	case "reg":
		p.pos++
		pattern, err := p.requireArg(cmd, "reg regex")
		if err != nil {
			return nil, err
		}
		return cond.NewRegex(pattern)
	case "upper":
		p.pos++
		return cond.Upper, nil
	case "lower":
		p.pos++
		return cond.Lower, nil
	case "ascii":
		p.pos++
		return cond.Ascii, nil
	case "nonascii":
		p.pos++
		return cond.NonAscii, nil
	case "empty":
		p.pos++
		return cond.Empty, nil
	case "blank":
		p.pos++
		return cond.Blank, nil
	default:
		return nil, rperr.MissingArgErr(cmd, "condition")
	}
}

// lenSelector requires the word after `len`; there is no bare-len form.
func (p *parser) lenSelector(cmd string) (cond.Selector, error) {
	w, err := p.requireArg(cmd, "len range or spec")
	if err != nil {
		return nil, err
	}
	sel, ok := parseLen(w)
	if !ok {
		return nil, rperr.ArgParseErr(cmd, "len range or spec", w, errRangeOrSpec)
	}
	return sel, nil
}

// parseLen parses `min,max` with open ends, `=n`, or a bare `n`.
func parseLen(w string) (cond.Selector, bool) {
	if lo, hi, found := strings.Cut(w, ","); found {
		var r cond.LenRange
		if lo != "" {
			n, ok := parseLenBound(lo)
			if !ok {
				return nil, false
			}
			r.Min = &n
		}
		if hi != "" {
			n, ok := parseLenBound(hi)
			if !ok {
				return nil, false
			}
			r.Max = &n
		}
		if r.Min == nil && r.Max == nil {
			return nil, false
		}
		return r, true
	}
	n, ok := parseLenBound(strings.TrimPrefix(w, "="))
	if !ok {
		return nil, false
	}
	return cond.LenSpec(n), true
}

func parseLenBound(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// numSelector never fails: every word after `num` is optional, and one
// that is neither a class keyword nor a range or spec is left in place
// for the next parser.
func (p *parser) numSelector() cond.Selector {
	w, ok := p.peek()
	if !ok {
		return cond.AnyNumber
	}
	switch strings.ToLower(w) {
	case "integer":
		p.pos++
		return cond.IntegerNumber
	case "float":
		p.pos++
		return cond.FloatNumber
	}
	if sel, ok := parseNum(w); ok {
		p.pos++
		return sel
	}
	return cond.AnyNumber
}

// parseNum parses `min,max` with open numeric ends, `=n`, or a bare `n`.
func parseNum(w string) (cond.Selector, bool) {
	if lo, hi, found := strings.Cut(w, ","); found {
		var r cond.NumRange
		if lo != "" {
			n, err := item.ParseNum(lo)
			if err != nil {
				return nil, false
			}
			r.Min = &n
		}
		if hi != "" {
			n, err := item.ParseNum(hi)
			if err != nil {
				return nil, false
			}
			r.Max = &n
		}
		if r.Min == nil && r.Max == nil {
			return nil, false
		}
		return r, true
	}
	n, err := item.ParseNum(strings.TrimPrefix(w, "="))
	if err != nil {
		return nil, false
	}
	return cond.NumSpec{Want: n}, true
}
