package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/lguimbarda/rp/internal/item"
	"github.com/lguimbarda/rp/pipe"
)

// Replace substitutes occurrences of From with To in each item. Count
// caps the number of substitutions, negative means all. An empty From
// matches at the start of the item and after every rune, the same as
// strings.Replace.
type Replace struct {
	From, To string
	Count    int
	Nocase   bool
}

func (r Replace) String() string {
	s := fmt.Sprintf(":replace %q %q", r.From, r.To)
	if r.Count >= 0 {
		s += fmt.Sprintf(" %d", r.Count)
	}
	if r.Nocase {
		s += " nocase"
	}
	return s
}

func (r Replace) Stage() pipe.Transformer[item.Item, item.Item] {
	if r.Count == 0 {
		return pipe.Chain[item.Item]()
	}
	return pipe.Transmit(func(ctx context.Context, in <-chan pipe.Result[item.Item]) <-chan pipe.Result[item.Item] {
		fn := func(s string) string { return strings.Replace(s, r.From, r.To, r.Count) }
		if nocase(ctx, r.Nocase) && r.From != "" {
			pat := lowerASCII(r.From)
			fn = func(s string) string { return replaceFold(s, pat, r.To, r.Count) }
		}
		return through(ctx, in, mapText(fn))
	})
}

// replaceFold is strings.Replace with ASCII-case-insensitive matching.
// pat must be non-empty and already lower-folded; bytes outside the
// matches keep their original case.
func replaceFold(s, pat, to string, n int) string {
	hay := lowerASCII(s)
	var b strings.Builder
	start := 0
	for n != 0 {
		i := strings.Index(hay[start:], pat)
		if i < 0 {
			break
		}
		i += start
		b.WriteString(s[start:i])
		b.WriteString(to)
		start = i + len(pat)
		n--
	}
	if start == 0 {
		return s
	}
	b.WriteString(s[start:])
	return b.String()
}
