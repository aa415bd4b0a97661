package run

import (
	"context"
	"io"
	"os"

	"github.com/lguimbarda/rp/internal/clip"
	"github.com/lguimbarda/rp/internal/item"
	"github.com/lguimbarda/rp/internal/parse"
	"github.com/lguimbarda/rp/internal/rperr"
	"github.com/lguimbarda/rp/pipe"
	pio "github.com/lguimbarda/rp/pipe/io"
)

// sink drains the stream into the parsed output clause.
func (r *Runner) sink(ctx context.Context, stream pipe.Stream[item.Item], out parse.Output) error {
	switch out := out.(type) {
	case parse.StdOut:
		_, err := pio.ToWriter(r.Out, pio.LF)(ctx, itemTexts(ctx, stream))
		return err
	case parse.FileOut:
		return fileSink(ctx, stream, out)
	case parse.ClipOut:
		_, err := clip.Replace(out.Ending)(ctx, stream)
		return err
	}
	panic("unhandled output clause")
}

func itemTexts(ctx context.Context, in pipe.Stream[item.Item]) pipe.Stream[string] {
	return pipe.Apply(ctx, in, pipe.Map(func(it item.Item) (string, error) {
		return it.Text(), nil
	}))
}

func fileSink(ctx context.Context, stream pipe.Stream[item.Item], out parse.FileOut) error {
	flag := os.O_WRONLY | os.O_CREATE
	if out.Append {
		flag |= os.O_APPEND
	} else {
		flag |= os.O_TRUNC
	}
	file, err := os.OpenFile(out.Path, flag, 0o644)
	if err != nil {
		return rperr.OpenFileErr(out.Path, err)
	}
	ending := out.Ending
	if ending == "" {
		ending = pio.LF
	}
	w := &taggedWriter{w: file, path: out.Path}
	_, werr := pio.ToWriter(w, ending)(ctx, itemTexts(ctx, stream))
	cerr := file.Close()
	if werr != nil {
		return werr
	}
	if cerr != nil {
		return rperr.WriteFileErr(out.Path, cerr)
	}
	return nil
}

// taggedWriter wraps write failures with the destination path, keeping
// them distinguishable from in-stream errors after the sink merges the
// two error paths.
type taggedWriter struct {
	w    io.Writer
	path string
}

func (t *taggedWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil {
		return n, rperr.WriteFileErr(t.path, err)
	}
	return n, nil
}
