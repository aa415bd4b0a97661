package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lguimbarda/rp/pipe/io"
)

// Output names the destination the finished stream is written to.
type Output interface {
	fmt.Stringer
	output()
}

// StdOut writes lines to standard output.
type StdOut struct{}

func (StdOut) output() {}

func (StdOut) String() string { return ":to out" }

// FileOut writes lines to a file.
type FileOut struct {
	Path   string
	Append bool
	Ending io.LineEnding
}

func (FileOut) output() {}

func (o FileOut) String() string {
	s := ":to file " + strconv.Quote(o.Path)
	if o.Append {
		s += " append"
	}
	if o.Ending == io.CRLF {
		s += " crlf"
	}
	return s
}

// ClipOut replaces the clipboard with the joined lines.
type ClipOut struct {
	Ending io.LineEnding
}

func (ClipOut) output() {}

func (o ClipOut) String() string {
	s := ":to clip"
	if o.Ending == io.CRLF {
		s += " crlf"
	}
	return s
}

// output parses the trailing `:to` clause. A missing clause and an
// unrecognized target both mean standard output; the target word is
// left in place so an unrecognized one surfaces as an unknown arg.
func (p *parser) output() (Output, error) {
	if !p.keyword(":to") {
		return StdOut{}, nil
	}
	w, ok := p.peek()
	if !ok {
		return StdOut{}, nil
	}
	switch strings.ToLower(w) {
	case "out":
		p.pos++
		return StdOut{}, nil
	case "file":
		p.pos++
		path, err := p.requireArg(":to file", "file")
		if err != nil {
			return nil, err
		}
		out := FileOut{Path: path}
		out.Append, out.Ending = p.fileMode()
		return out, nil
	case "clip":
		p.pos++
		return ClipOut{Ending: p.lineEnding()}, nil
	default:
		return StdOut{}, nil
	}
}
