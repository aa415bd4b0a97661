// Package clip adapts the system clipboard to the stream model: the
// clipboard text as a source of lines, and a sink that replaces the
// clipboard with the stream's items.
package clip

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/lguimbarda/rp/internal/item"
	"github.com/lguimbarda/rp/internal/rperr"
	"github.com/lguimbarda/rp/pipe"
	pio "github.com/lguimbarda/rp/pipe/io"
)

// Lines emits the clipboard content one line per item. The clipboard is
// read when the stream is first pulled, not when Lines is called, so a
// pipeline built ahead of time still sees the content at run time.
func Lines() pipe.Stream[item.Item] {
	return pipe.Defer(func() pipe.Stream[item.Item] {
		text, err := clipboard.ReadAll()
		if err != nil {
			return pipe.FromError[item.Item](rperr.ReadClipErr(err))
		}
		return pipe.FromSlice(splitLines(text))
	})
}

// splitLines breaks clipboard text into lines the same way the file
// reader does: a trailing newline terminates the last line rather than
// opening an empty one, and CR before LF is stripped.
func splitLines(text string) []item.Item {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	items := make([]item.Item, len(lines))
	for i, line := range lines {
		items[i] = item.Str(strings.TrimSuffix(line, "\r"))
	}
	return items
}

// Replace consumes the stream and sets the clipboard to its items
// joined by ending, with no ending after the last one. The clipboard is
// only written when the whole stream arrives without error, so a failed
// run leaves the previous content in place.
func Replace(ending pio.LineEnding) pipe.Sink[item.Item, int] {
	if ending == "" {
		ending = pio.LF
	}
	return func(ctx context.Context, in pipe.Stream[item.Item]) (int, error) {
		var b strings.Builder
		n := 0
		for res := range in.Emit(ctx) {
			if res.IsSentinel() {
				continue
			}
			if res.IsError() {
				return n, res.Error()
			}
			if n > 0 {
				b.WriteString(string(ending))
			}
			b.WriteString(res.Value().Text())
			n++
		}
		if err := clipboard.WriteAll(b.String()); err != nil {
			return n, rperr.WriteClipErr(err)
		}
		return n, nil
	}
}
