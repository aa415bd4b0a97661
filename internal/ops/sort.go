package ops

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/lguimbarda/rp/internal/item"
	"github.com/lguimbarda/rp/pipe"
	"github.com/lguimbarda/rp/pipe/aggregate"
)

// SortKind selects the ranking of a Sort op.
type SortKind int

const (
	SortText SortKind = iota
	SortNum
	SortRandom
)

// Sort materializes the stream and re-emits it ordered; the sort is
// stable, so equal keys keep their upstream order. Text ranking
// compares item text, optionally case-folded. Num ranking parses each
// item: with IntDefault set, by the integer grammar with unparsable
// items ranking as the default; otherwise by the float grammar with
// FloatDefault (or the greatest float, pushing failures to the end of
// an ascending run). Random shuffles.
type Sort struct {
	Kind         SortKind
	IntDefault   *int64
	FloatDefault *float64
	Nocase       bool
	Desc         bool
}

func (s Sort) String() string {
	if s.Kind == SortRandom {
		return ":sort random"
	}
	out := ":sort"
	if s.Kind == SortNum {
		out += " num"
		if s.IntDefault != nil {
			out += " " + strconv.FormatInt(*s.IntDefault, 10)
		} else if s.FloatDefault != nil {
			out += " " + strconv.FormatFloat(*s.FloatDefault, 'g', -1, 64)
		}
	}
	if s.Nocase {
		out += " nocase"
	}
	if s.Desc {
		out += " desc"
	}
	return out
}

func (s Sort) Stage() pipe.Transformer[item.Item, item.Item] {
	switch s.Kind {
	case SortRandom:
		return aggregate.Shuffle[item.Item]()
	case SortNum:
		return aggregate.SortBy(s.numLess())
	default:
		return pipe.Transmit(func(ctx context.Context, in <-chan pipe.Result[item.Item]) <-chan pipe.Result[item.Item] {
			return through(ctx, in, aggregate.SortBy(s.textLess(nocase(ctx, s.Nocase))))
		})
	}
}

func (s Sort) numLess() func(a, b item.Item) bool {
	if s.IntDefault != nil {
		def := *s.IntDefault
		key := func(it item.Item) int64 {
			n, err := strconv.ParseInt(it.Text(), 10, 64)
			if err != nil {
				return def
			}
			return n
		}
		if s.Desc {
			return func(a, b item.Item) bool { return key(b) < key(a) }
		}
		return func(a, b item.Item) bool { return key(a) < key(b) }
	}
	def := math.MaxFloat64
	if s.FloatDefault != nil {
		def = *s.FloatDefault
	}
	key := func(it item.Item) float64 {
		f, err := strconv.ParseFloat(it.Text(), 64)
		if err != nil {
			return def
		}
		return f
	}
	if s.Desc {
		return func(a, b item.Item) bool { return lessFloat(key(b), key(a)) }
	}
	return func(a, b item.Item) bool { return lessFloat(key(a), key(b)) }
}

func (s Sort) textLess(fold bool) func(a, b item.Item) bool {
	key := item.Item.Text
	if fold {
		key = func(it item.Item) string { return strings.ToLower(it.Text()) }
	}
	if s.Desc {
		return func(a, b item.Item) bool { return key(b) < key(a) }
	}
	return func(a, b item.Item) bool { return key(a) < key(b) }
}

// lessFloat orders float keys with NaN ranking greatest, so NaN items
// land where unparsable items do under the greatest-float default.
func lessFloat(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}
