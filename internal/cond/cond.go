// Package cond evaluates selection conditions against the textual form of
// one item. A Condition pairs a Selector with a polarity bit; evaluation
// always resolves to a definite boolean, so double negation restores the
// original selection for every input, including text the selector cannot
// parse.
package cond

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/lguimbarda/rp/internal/item"
	"github.com/lguimbarda/rp/internal/rperr"
)

// Selector decides whether one item's text is selected. String renders
// the selector the way it is written on the command line.
type Selector interface {
	fmt.Stringer
	Test(text string) bool
}

// Condition is a selector with optional negation.
type Condition struct {
	Select Selector
	Not    bool
}

// Test evaluates the condition. The selector's verdict is inverted
// uniformly when Not is set.
func (c Condition) Test(text string) bool {
	return c.Select.Test(text) != c.Not
}

func (c Condition) String() string {
	if c.Not {
		return "not " + c.Select.String()
	}
	return c.Select.String()
}

// LenRange selects text whose rune count lies within the bounds. A nil
// bound is open.
type LenRange struct {
	Min, Max *int
}

func (r LenRange) Test(text string) bool {
	n := utf8.RuneCountInString(text)
	return (r.Min == nil || n >= *r.Min) && (r.Max == nil || n <= *r.Max)
}

func (r LenRange) String() string {
	var min, max string
	if r.Min != nil {
		min = strconv.Itoa(*r.Min)
	}
	if r.Max != nil {
		max = strconv.Itoa(*r.Max)
	}
	return "len " + min + "," + max
}

// LenSpec selects text with exactly this rune count.
type LenSpec int

func (s LenSpec) Test(text string) bool {
	return utf8.RuneCountInString(text) == int(s)
}

func (s LenSpec) String() string { return "len " + strconv.Itoa(int(s)) }

// NumRange selects text that parses as a number within the bounds. A nil
// bound is open; unparsable text is never selected.
type NumRange struct {
	Min, Max *item.Num
}

func (r NumRange) Test(text string) bool {
	n, err := item.ParseNum(text)
	if err != nil {
		return false
	}
	return (r.Min == nil || n.Compare(*r.Min) >= 0) && (r.Max == nil || n.Compare(*r.Max) <= 0)
}

func (r NumRange) String() string {
	var min, max string
	if r.Min != nil {
		min = r.Min.String()
	}
	if r.Max != nil {
		max = r.Max.String()
	}
	return "num " + min + "," + max
}

// NumSpec selects text numerically equal to the wanted value.
type NumSpec struct {
	Want item.Num
}

func (s NumSpec) Test(text string) bool {
	n, err := item.ParseNum(text)
	return err == nil && n.Compare(s.Want) == 0
}

func (s NumSpec) String() string { return "num " + s.Want.String() }

// Class selects by numeric shape.
type Class int

const (
	// AnyNumber selects any finite number.
	AnyNumber Class = iota
	// IntegerNumber selects text the integer grammar accepts.
	IntegerNumber
	// FloatNumber selects finite floats the integer grammar rejects.
	FloatNumber
)

func (c Class) Test(text string) bool {
	n, err := item.ParseNum(text)
	if err != nil {
		return false
	}
	switch c {
	case IntegerNumber:
		return !n.IsFloat()
	case FloatNumber:
		return n.IsFloat()
	default:
		return true
	}
}

func (c Class) String() string {
	switch c {
	case IntegerNumber:
		return "num integer"
	case FloatNumber:
		return "num float"
	default:
		return "num"
	}
}

// TextCase selects text containing no letter of the opposite case.
// Text without cased letters satisfies both polarities.
type TextCase bool

const (
	Lower TextCase = false
	Upper TextCase = true
)

func (u TextCase) Test(text string) bool {
	opposite := unicode.IsLower
	if u == Lower {
		opposite = unicode.IsUpper
	}
	for _, r := range text {
		if opposite(r) {
			return false
		}
	}
	return true
}

func (u TextCase) String() string {
	if u == Upper {
		return "upper"
	}
	return "lower"
}

// Asciiness selects text whose runes are all ASCII, or all non-ASCII.
// The empty string vacuously satisfies both.
type Asciiness bool

const (
	NonAscii Asciiness = false
	Ascii    Asciiness = true
)

func (a Asciiness) Test(text string) bool {
	for _, r := range text {
		if bool(a) != (r < utf8.RuneSelf) {
			return false
		}
	}
	return true
}

func (a Asciiness) String() string {
	if a == Ascii {
		return "ascii"
	}
	return "nonascii"
}

// Blankness selects empty text, or text made of whitespace only. Empty
// text is also blank.
type Blankness bool

const (
	Blank Blankness = false
	Empty Blankness = true
)

func (b Blankness) Test(text string) bool {
	if b == Empty {
		return text == ""
	}
	for _, r := range text {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func (b Blankness) String() string {
	if b == Empty {
		return "empty"
	}
	return "blank"
}

// Regex selects text fully matched by the pattern.
type Regex struct {
	re      *regexp.Regexp
	pattern string
}

// NewRegex compiles a full-match selector. The pattern is wrapped in
// \A(?:...)\z so an embedded (?m) cannot defeat the anchoring.
func NewRegex(pattern string) (Regex, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return Regex{}, rperr.ParseRegexErr(pattern, err)
	}
	return Regex{re: re, pattern: pattern}, nil
}

func (r Regex) Test(text string) bool { return r.re.MatchString(text) }

func (r Regex) String() string { return "reg " + r.pattern }
