// Package help renders the usage text and the version banner.
package help

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"
)

// Version reports the version line built from the information the Go
// toolchain stamps into the binary: the module version and the short
// commit hash, when present.
func Version() string {
	version, commit := "devel", "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			version = v
		}
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 8 {
				commit = s.Value[:8]
			}
		}
	}
	return fmt.Sprintf("rp %s (%s)", version, commit)
}

// Print writes the usage banner followed by the requested topic
// section. No topic prints every section; an unknown topic prints the
// banner alone, which includes the topic list.
func Print(w io.Writer, topic string) {
	fmt.Fprintf(w, "%s\n%s", Version(), banner)
	if topic == "" {
		for _, s := range sections {
			fmt.Fprint(w, s.text)
		}
		return
	}
	name := strings.ToLower(topic)
	for _, s := range sections {
		for _, alias := range s.names {
			if alias == name {
				fmt.Fprint(w, s.text)
				return
			}
		}
	}
}

const banner = `
Stream line-oriented items from an input through a chain of operators
to an output.

Usage: rp [options] [input] [op ...] [output]

Help topics: options input op output cond code
`

var sections = []struct {
	names []string
	text  string
}{
	{[]string{"opt", "options"}, optionsHelp},
	{[]string{"in", "input"}, inputHelp},
	{[]string{"op"}, opHelp},
	{[]string{"out", "output"}, outputHelp},
	{[]string{"cond", "condition"}, condHelp},
	{[]string{"code"}, codeHelp},
}

const optionsHelp = `
Options:
  -h, --help [topic]   print help, optionally for one topic
  -V, --version        print the version line
  -v, --verbose        log the parsed pipeline and run counters
  -d, --dry-run        parse the pipeline but do not run it
  -n, --nocase         compare text case-insensitively everywhere
  -s, --skip-errors    drop failed items instead of stopping
  -e, --eval           treat the next argument as a whole pipeline
`

const inputHelp = `
Input commands (default :in):
  :in                      read lines from standard input
  :file <file ...>         read lines from files; names may be globs
  :file [ <file ...> ]     bracket form for names starting with ':'
  :clip                    read the clipboard as lines
  :of <value ...>          one item per value; bracket form as :file
  :gen <range> [<format>]  enumerate integers over a range:
                             a     from a on, never ending
                             a,b   from a up to but excluding b
                             a,=b  from a up to and including b
                             a,b,s / a,=b,s / a,,s
                                   the same with step s; a negative
                                   step walks the range backwards
                           the format example "{:04x}" renders 26
                           as 001a
  :repeat <value> [<count>]
                           repeat value count times, forever when
                           count is not given
`

const opHelp = `
Operator commands:
  :peek [<file> [append] [lf|crlf]]
                   copy items to standard output, or to a file
  :upper           uppercase ASCII letters
  :lower           lowercase ASCII letters
  :case            swap ASCII letter case
  :replace <from> <to> [<count>] [nocase]
                   replace a literal substring, count times per item
                   (every occurrence when count is not given)
  :trim | :ltrim | :rtrim [<pattern>] [nocase]
                   strip whitespace, or repeats of pattern, from both
                   ends, the left end, or the right end
  :trimc | :ltrimc | :rtrimc [<chars>] [nocase]
                   the same, stripping any run of the given characters
  :uniq [nocase]   drop items seen before
  :join [<delim> [<prefix> [<postfix> [<batch>]]]]
                   concatenate items, batch at a time (all of them
                   when batch is not given)
  :limit <count>   keep only the first count items
  :skip <count>    drop the first count items
  :slice <range ...>
                   keep items whose index falls in any range:
                     a,b  from a through b    a,  from a on
                     ,b   up through b        n   exactly n
  :take [while] <condition>
                   keep matching items; with while, stop at the first
                   item that does not match
  :drop [while] <condition>
                   drop matching items; with while, drop only until
                   the first item that does not match
  :count           emit the number of items
  :sort [random | num [<default>]] [nocase] [desc]
                   sort items as text, as numbers (items that are not
                   numbers sort as default), or shuffle with random
`

const outputHelp = `
Output commands (default :to out):
  :to out          write lines to standard output
  :to file <file> [append] [lf|crlf]
                   write lines to a file, overwriting unless append is
                   given; lines end with LF unless crlf is given
  :to clip [lf|crlf]
                   replace the clipboard with the items joined by the
                   chosen ending
`

const condHelp = `
Conditions, for :take and :drop:
  [not] <selector>   not inverts the selector
Selectors:
  len a,b | len n | len =n
                   rune count within a,b (either bound may be left
                   out) or exactly n
  num [integer | float | a,b | n | =n]
                   numeric items: any number, only integers, only
                   floats, within a range, or equal to a value
  reg <regex>      the whole item matches the regular expression
  upper | lower    no letter of the other case
  ascii | nonascii every rune inside, or outside, ASCII
  empty | blank    no text at all, or only whitespace
`

const codeHelp = `
Exit codes:
   0  success                6  ReadClip          11  FormatString
   1  ParseToken             7  ReadFile          12  ParseRegex
   2  ArgParse               8  WriteClip         13  ParseNum
   3  MissingArg             9  OpenFile          14  InvalidCount
   4  UnexpectedRemaining   10  WriteFile
   5  UnknownArgs
`
