package ops

import (
	"github.com/lguimbarda/rp/internal/cond"
	"github.com/lguimbarda/rp/internal/item"
	"github.com/lguimbarda/rp/pipe"
	"github.com/lguimbarda/rp/pipe/filter"
)

// TakeMode selects how a TakeDrop op applies its condition.
type TakeMode int

const (
	Take TakeMode = iota
	Drop
	TakeWhile
	DropWhile
)

// TakeDrop filters by condition. Take keeps matching items and Drop
// rejects them, each judging every item independently. The While
// forms switch at the first item whose verdict flips: TakeWhile ends
// the stream there, DropWhile passes it and everything after without
// further tests.
type TakeDrop struct {
	Mode TakeMode
	Cond cond.Condition
}

func (t TakeDrop) String() string {
	switch t.Mode {
	case Drop:
		return ":drop " + t.Cond.String()
	case TakeWhile:
		return ":take while " + t.Cond.String()
	case DropWhile:
		return ":drop while " + t.Cond.String()
	default:
		return ":take " + t.Cond.String()
	}
}

func (t TakeDrop) Stage() pipe.Transformer[item.Item, item.Item] {
	pred := func(it item.Item) bool { return t.Cond.Test(it.Text()) }
	switch t.Mode {
	case Drop:
		return filter.Exclude(pred)
	case TakeWhile:
		return filter.TakeWhile(pred)
	case DropWhile:
		return filter.SkipWhile(pred)
	default:
		return filter.Where(pred)
	}
}
