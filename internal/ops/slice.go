package ops

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/lguimbarda/rp/internal/item"
	"github.com/lguimbarda/rp/pipe"
	"github.com/lguimbarda/rp/pipe/filter"
)

// IndexRange is one inclusive range of zero-based stream indices. A nil
// bound leaves that side open.
type IndexRange struct {
	Min, Max *int64
}

func (r IndexRange) String() string {
	var min, max string
	if r.Min != nil {
		min = strconv.FormatInt(*r.Min, 10)
	}
	if r.Max != nil {
		max = strconv.FormatInt(*r.Max, 10)
	}
	if r.Min != nil && r.Max != nil && *r.Min == *r.Max {
		return min
	}
	return min + "," + max
}

// Slice passes through the items whose stream index falls in the union
// of Ranges. The ranges normalize once per stage: open bounds close to
// 0 and the greatest index, inverted ranges drop out, the rest sort
// and merge into a disjoint ascending set. Consumption stops as soon
// as no range can match any later index.
type Slice struct {
	Ranges []IndexRange
}

func (s Slice) String() string {
	parts := make([]string, len(s.Ranges)+1)
	parts[0] = ":slice"
	for i, r := range s.Ranges {
		parts[i+1] = r.String()
	}
	return strings.Join(parts, " ")
}

func (s Slice) Stage() pipe.Transformer[item.Item, item.Item] {
	spans := normalize(s.Ranges)
	return pipe.Transmit(func(ctx context.Context, in <-chan pipe.Result[item.Item]) <-chan pipe.Result[item.Item] {
		out := make(chan pipe.Result[item.Item])
		go func() {
			defer close(out)
			var idx int64
			cur := 0
			for res := range in {
				if !res.IsValue() {
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
					continue
				}
				for cur < len(spans) && idx > spans[cur].max {
					cur++
				}
				if cur == len(spans) {
					return
				}
				if idx >= spans[cur].min {
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
				}
				idx++
			}
		}()
		return out
	})
}

type span struct{ min, max int64 }

// normalize closes open bounds, discards inverted ranges and merges
// the rest into a sorted disjoint union.
func normalize(ranges []IndexRange) []span {
	spans := make([]span, 0, len(ranges))
	for _, r := range ranges {
		sp := span{0, math.MaxInt64}
		if r.Min != nil {
			sp.min = *r.Min
		}
		if r.Max != nil {
			sp.max = *r.Max
		}
		if sp.min > sp.max {
			continue
		}
		spans = append(spans, sp)
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].min < spans[j].min })
	merged := spans[:0]
	for _, sp := range spans {
		if n := len(merged); n > 0 && sp.min <= merged[n-1].max {
			if sp.max > merged[n-1].max {
				merged[n-1].max = sp.max
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// Limit passes through the first Count items and ends the stream.
type Limit struct {
	Count int
}

func (l Limit) String() string { return ":limit " + strconv.Itoa(l.Count) }

func (l Limit) Stage() pipe.Transformer[item.Item, item.Item] {
	return filter.Take[item.Item](l.Count)
}

// Skip drops the first Count items and passes through the rest.
type Skip struct {
	Count int
}

func (s Skip) String() string { return ":skip " + strconv.Itoa(s.Count) }

func (s Skip) Stage() pipe.Transformer[item.Item, item.Item] {
	return filter.Skip[item.Item](s.Count)
}
