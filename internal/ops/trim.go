package ops

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lguimbarda/rp/internal/item"
	"github.com/lguimbarda/rp/pipe"
)

// TrimSide selects which end(s) of an item a Trim op works on.
type TrimSide int

const (
	TrimBoth TrimSide = iota
	TrimLeft
	TrimRight
)

// Trim strips content from item boundaries. With an empty Pattern it
// strips Unicode whitespace. Otherwise the pattern is either a literal
// substring, stripped repeatedly while the boundary still matches, or
// (Chars mode) a set of runes stripped one by one while the boundary
// rune belongs to the set.
type Trim struct {
	Side    TrimSide
	Chars   bool
	Pattern string
	Nocase  bool
}

func (t Trim) String() string {
	var name string
	switch t.Side {
	case TrimLeft:
		name = ":ltrim"
	case TrimRight:
		name = ":rtrim"
	default:
		name = ":trim"
	}
	if t.Chars {
		name += "c"
	}
	if t.Pattern != "" {
		name += fmt.Sprintf(" %q", t.Pattern)
	}
	if t.Nocase {
		name += " nocase"
	}
	return name
}

func (t Trim) Stage() pipe.Transformer[item.Item, item.Item] {
	return pipe.Transmit(func(ctx context.Context, in <-chan pipe.Result[item.Item]) <-chan pipe.Result[item.Item] {
		return through(ctx, in, mapText(t.fn(nocase(ctx, t.Nocase))))
	})
}

// fn builds the per-item trim for the effective case mode. The pattern
// is normalized here, once per run, so per-item work only ever folds
// the subject's own runes.
func (t Trim) fn(fold bool) func(string) string {
	if t.Pattern == "" {
		switch t.Side {
		case TrimLeft:
			return func(s string) string { return strings.TrimLeftFunc(s, unicode.IsSpace) }
		case TrimRight:
			return func(s string) string { return strings.TrimRightFunc(s, unicode.IsSpace) }
		default:
			return strings.TrimSpace
		}
	}
	pat := t.Pattern
	if fold {
		pat = lowerASCII(pat)
	}
	if t.Chars {
		member := runeSet(pat, fold)
		switch t.Side {
		case TrimLeft:
			return func(s string) string { return strings.TrimLeftFunc(s, member) }
		case TrimRight:
			return func(s string) string { return strings.TrimRightFunc(s, member) }
		default:
			return func(s string) string { return strings.TrimFunc(s, member) }
		}
	}
	switch t.Side {
	case TrimLeft:
		return func(s string) string { return trimPrefixRepeat(s, pat, fold) }
	case TrimRight:
		return func(s string) string { return trimSuffixRepeat(s, pat, fold) }
	default:
		return func(s string) string {
			return trimSuffixRepeat(trimPrefixRepeat(s, pat, fold), pat, fold)
		}
	}
}

// runeSet builds the membership test for character mode over a
// pre-folded pattern, deduplicating it up front.
func runeSet(pat string, fold bool) func(rune) bool {
	seen := make(map[rune]bool, len(pat))
	var set strings.Builder
	for _, r := range pat {
		if !seen[r] {
			seen[r] = true
			set.WriteRune(r)
		}
	}
	chars := set.String()
	if fold {
		return func(r rune) bool { return strings.ContainsRune(chars, lowerRune(r)) }
	}
	return func(r rune) bool { return strings.ContainsRune(chars, r) }
}

func trimPrefixRepeat(s, pat string, fold bool) string {
	for {
		rest, ok := cutPrefixFold(s, pat, fold)
		if !ok {
			return s
		}
		s = rest
	}
}

func trimSuffixRepeat(s, pat string, fold bool) string {
	for {
		rest, ok := cutSuffixFold(s, pat, fold)
		if !ok {
			return s
		}
		s = rest
	}
}

func cutPrefixFold(s, pat string, fold bool) (string, bool) {
	if !fold {
		return strings.CutPrefix(s, pat)
	}
	rest := s
	for _, pc := range pat {
		rc, size := utf8.DecodeRuneInString(rest)
		if size == 0 || lowerRune(rc) != pc {
			return s, false
		}
		rest = rest[size:]
	}
	return rest, true
}

func cutSuffixFold(s, pat string, fold bool) (string, bool) {
	if !fold {
		return strings.CutSuffix(s, pat)
	}
	rest := s
	for i := len(pat); i > 0; {
		pc, psize := utf8.DecodeLastRuneInString(pat[:i])
		i -= psize
		rc, rsize := utf8.DecodeLastRuneInString(rest)
		if rsize == 0 || lowerRune(rc) != pc {
			return s, false
		}
		rest = rest[:len(rest)-rsize]
	}
	return rest, true
}
