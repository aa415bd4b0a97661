package ops

import (
	"fmt"
	"strings"

	"github.com/lguimbarda/rp/internal/item"
	"github.com/lguimbarda/rp/pipe"
	"github.com/lguimbarda/rp/pipe/aggregate"
)

// Join concatenates item texts with Delim and wraps the result in
// Prefix and Postfix. Batch > 0 joins consecutive groups of that size,
// still emitting the final short group. Batch <= 0 collapses the whole
// stream into one item, which is emitted even when the stream is
// empty.
type Join struct {
	Delim, Prefix, Postfix string
	Batch                  int
}

func (j Join) String() string {
	s := ":join"
	if j.Delim != "" || j.Prefix != "" || j.Postfix != "" || j.Batch > 0 {
		s += fmt.Sprintf(" %q %q %q", j.Delim, j.Prefix, j.Postfix)
	}
	if j.Batch > 0 {
		s += fmt.Sprintf(" %d", j.Batch)
	}
	return s
}

func (j Join) Stage() pipe.Transformer[item.Item, item.Item] {
	if j.Batch > 0 {
		return pipe.Through(aggregate.Batch[item.Item](j.Batch), pipe.Map(func(chunk []item.Item) (item.Item, error) {
			return j.glue(chunk), nil
		}))
	}
	all := aggregate.Fold([]item.Item{}, func(acc []item.Item, it item.Item) []item.Item {
		return append(acc, it)
	})
	return pipe.Through(all, pipe.Map(func(chunk []item.Item) (item.Item, error) {
		return j.glue(chunk), nil
	}))
}

func (j Join) glue(chunk []item.Item) item.Item {
	texts := make([]string, len(chunk))
	for i, it := range chunk {
		texts[i] = it.Text()
	}
	return item.Str(j.Prefix + strings.Join(texts, j.Delim) + j.Postfix)
}
