package ops

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/lguimbarda/rp/internal/item"
	"github.com/lguimbarda/rp/internal/rperr"
	"github.com/lguimbarda/rp/pipe"
	"github.com/lguimbarda/rp/pipe/io"
)

// Peek mirrors every item as a side effect and passes the stream
// through unchanged. With an empty Path items echo to stdout.
// Otherwise they are written to the file, truncated unless Append, one
// per line with Ending (LF when unset).
type Peek struct {
	Path   string
	Append bool
	Ending io.LineEnding
}

func (p Peek) String() string {
	if p.Path == "" {
		return ":peek"
	}
	s := fmt.Sprintf(":peek %q", p.Path)
	if p.Append {
		s += " append"
	}
	if p.Ending == io.CRLF {
		s += " crlf"
	}
	return s
}

func (p Peek) Stage() pipe.Transformer[item.Item, item.Item] {
	if p.Path == "" {
		return pipe.Transmit(func(ctx context.Context, in <-chan pipe.Result[item.Item]) <-chan pipe.Result[item.Item] {
			out := make(chan pipe.Result[item.Item])
			go func() {
				defer close(out)
				for res := range in {
					if res.IsValue() {
						fmt.Println(res.Value())
					}
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
				}
			}()
			return out
		})
	}
	return pipe.Transmit(p.tee)
}

// tee opens the target when the stage starts pulling and reports open
// and write failures in-band; a write failure ends the stream, so it
// surfaces the way any fatal upstream error does.
func (p Peek) tee(ctx context.Context, in <-chan pipe.Result[item.Item]) <-chan pipe.Result[item.Item] {
	out := make(chan pipe.Result[item.Item])
	go func() {
		defer close(out)
		flag := os.O_WRONLY | os.O_CREATE
		if p.Append {
			flag |= os.O_APPEND
		} else {
			flag |= os.O_TRUNC
		}
		file, err := os.OpenFile(p.Path, flag, 0644)
		if err != nil {
			select {
			case <-ctx.Done():
			case out <- pipe.Err[item.Item](rperr.OpenFileErr(p.Path, err)):
			}
			return
		}
		defer file.Close()
		writer := bufio.NewWriter(file)
		defer writer.Flush()
		ending := p.Ending
		if ending == "" {
			ending = io.LF
		}
		for res := range in {
			if res.IsValue() {
				if _, err := writer.WriteString(res.Value().Text() + string(ending)); err != nil {
					select {
					case <-ctx.Done():
					case out <- pipe.Err[item.Item](rperr.WriteFileErr(p.Path, err)):
					}
					return
				}
			}
			select {
			case <-ctx.Done():
				return
			case out <- res:
			}
		}
	}()
	return out
}
