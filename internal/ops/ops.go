// Package ops implements the operator catalog. An Op value is one
// configured pipeline operator; Stage realizes it as a transformer over
// the item stream. Stages resolve the run Settings from the context, so
// configuration stays a per-run snapshot instead of global state.
package ops

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lguimbarda/rp/internal/config"
	"github.com/lguimbarda/rp/internal/item"
	"github.com/lguimbarda/rp/pipe"
	"github.com/lguimbarda/rp/pipe/aggregate"
	"github.com/lguimbarda/rp/pipe/core"
	"github.com/lguimbarda/rp/pipe/filter"
)

// Op is one configured pipeline operator. String renders it the way it
// is written on the command line.
type Op interface {
	fmt.Stringer
	Stage() pipe.Transformer[item.Item, item.Item]
}

// settings resolves the run configuration snapshot from the context.
func settings(ctx context.Context) config.Settings {
	set, _ := core.GetConfig[config.Settings](ctx)
	return set
}

// nocase resolves the effective case sensitivity of one operator: its
// own flag, or the run-wide default.
func nocase(ctx context.Context, flag bool) bool {
	return flag || settings(ctx).Nocase
}

// mapText builds a per-item stage applying fn to the textual form of
// each item. Items whose text comes back unchanged pass through as-is,
// so integer items stay integer.
func mapText(fn func(string) string) pipe.Transformer[item.Item, item.Item] {
	return pipe.Map(func(it item.Item) (item.Item, error) {
		return it.WithText(fn(it.Text())), nil
	})
}

// through re-applies a transformer built from the run context to an
// already-emitted channel. Stages use it when the transformer they
// delegate to can only be chosen once the Settings are known.
func through[T any](ctx context.Context, in <-chan pipe.Result[T], t pipe.Transformer[T, T]) <-chan pipe.Result[T] {
	src := pipe.Emit(func(context.Context) <-chan pipe.Result[T] { return in })
	return t.Apply(ctx, src).Emit(ctx)
}

// Upper converts ASCII letters to upper case.
type Upper struct{}

func (Upper) String() string { return ":upper" }

func (Upper) Stage() pipe.Transformer[item.Item, item.Item] { return mapText(upperASCII) }

// Lower converts ASCII letters to lower case.
type Lower struct{}

func (Lower) String() string { return ":lower" }

func (Lower) Stage() pipe.Transformer[item.Item, item.Item] { return mapText(lowerASCII) }

// SwapCase flips the case of ASCII letters.
type SwapCase struct{}

func (SwapCase) String() string { return ":case" }

func (SwapCase) Stage() pipe.Transformer[item.Item, item.Item] { return mapText(swapASCII) }

// Uniq keeps the first occurrence of every text and drops later
// duplicates. With nocase the dedup key is ASCII-case folded, so the
// first-seen casing survives.
type Uniq struct {
	Nocase bool
}

func (u Uniq) String() string {
	if u.Nocase {
		return ":uniq nocase"
	}
	return ":uniq"
}

func (u Uniq) Stage() pipe.Transformer[item.Item, item.Item] {
	return pipe.Transmit(func(ctx context.Context, in <-chan pipe.Result[item.Item]) <-chan pipe.Result[item.Item] {
		key := item.Item.Text
		if nocase(ctx, u.Nocase) {
			key = func(it item.Item) string { return upperASCII(it.Text()) }
		}
		return through(ctx, in, filter.DistinctBy(key))
	})
}

// Count collapses the whole stream into a single text item carrying
// the number of upstream values, 0 when the stream is empty.
type Count struct{}

func (Count) String() string { return ":count" }

func (Count) Stage() pipe.Transformer[item.Item, item.Item] {
	counted := aggregate.Fold(int64(0), func(n int64, _ item.Item) int64 { return n + 1 })
	return pipe.Through(counted, pipe.Map(func(n int64) (item.Item, error) {
		return item.Str(strconv.FormatInt(n, 10)), nil
	}))
}
