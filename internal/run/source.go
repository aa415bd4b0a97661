package run

import (
	"context"

	"github.com/lguimbarda/rp/internal/clip"
	"github.com/lguimbarda/rp/internal/item"
	"github.com/lguimbarda/rp/internal/parse"
	"github.com/lguimbarda/rp/internal/rperr"
	"github.com/lguimbarda/rp/pipe"
	"github.com/lguimbarda/rp/pipe/errs"
	"github.com/lguimbarda/rp/pipe/glob"
	pio "github.com/lguimbarda/rp/pipe/io"
)

// source builds the item stream for the parsed input clause.
func (r *Runner) source(ctx context.Context, in parse.Input) (pipe.Stream[item.Item], error) {
	switch in := in.(type) {
	case parse.StdIn:
		return lineItems(ctx, pio.ReadLinesFrom(r.In)), nil
	case parse.FileIn:
		return fileSource(ctx, in)
	case parse.ClipIn:
		return clip.Lines(), nil
	case parse.OfIn:
		items := make([]item.Item, len(in.Values))
		for i, v := range in.Values {
			items[i] = item.Str(v)
		}
		return pipe.FromSlice(items), nil
	case parse.GenIn:
		return genSource(ctx, in), nil
	case parse.RepeatIn:
		n := -1
		if in.Count != nil {
			n = *in.Count
		}
		return pipe.Repeat(item.Str(in.Value), n), nil
	}
	panic("unhandled input clause")
}

// fileSource expands each name and concatenates the files' lines in
// order. A pattern that matches nothing contributes nothing; a plain
// name that does not exist surfaces as a read error when pulled.
func fileSource(ctx context.Context, in parse.FileIn) (pipe.Stream[item.Item], error) {
	var streams []pipe.Stream[item.Item]
	for _, name := range in.Files {
		paths, err := glob.Expand(name)
		if err != nil {
			return nil, rperr.ReadFileErr(name, err)
		}
		for _, path := range paths {
			streams = append(streams, lineItems(ctx, fileLines(ctx, path)))
		}
	}
	return pipe.Concat(streams...), nil
}

// fileLines reads one file's lines with failures tagged by path, so a
// multi-file input reports which file broke.
func fileLines(ctx context.Context, path string) pipe.Stream[string] {
	tag := errs.Rewrite[string](func(err error) error {
		return rperr.ReadFileErr(path, err)
	})
	return pipe.Apply(ctx, pio.ReadLines(path), tag)
}

func lineItems(ctx context.Context, lines pipe.Stream[string]) pipe.Stream[item.Item] {
	return pipe.Apply(ctx, lines, pipe.Map(func(line string) (item.Item, error) {
		return item.Str(line), nil
	}))
}

// genSource enumerates the range. Without a format the items stay
// numeric, so a later :sort num needs no reparse.
func genSource(ctx context.Context, in parse.GenIn) pipe.Stream[item.Item] {
	span := pipe.Span(in.Start, in.End, in.Inclusive, in.Step)
	if f := in.Format; f != nil {
		return pipe.Apply(ctx, span, pipe.Map(func(n int64) (item.Item, error) {
			return item.Str(f.Render(n)), nil
		}))
	}
	return pipe.Apply(ctx, span, pipe.Map(func(n int64) (item.Item, error) {
		return item.Int(n), nil
	}))
}
