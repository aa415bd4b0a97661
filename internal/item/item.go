// Package item defines the value that flows through a pipeline: a piece
// of text or an integer. Integer items remember their numeric identity so
// numeric stages can use them without reparsing, while text stages see the
// canonical base-10 rendering.
package item

import (
	"cmp"
	"math"
	"strconv"

	"github.com/lguimbarda/rp/internal/rperr"
)

// Item is one pipeline value. Items are immutable; transforms return new
// Items.
type Item struct {
	text  string
	num   int64
	isInt bool
}

// Str builds a text item.
func Str(text string) Item { return Item{text: text} }

// Int builds an integer item. Its Text is the base-10 rendering.
func Int(n int64) Item {
	return Item{text: strconv.FormatInt(n, 10), num: n, isInt: true}
}

// Text returns the canonical textual form.
func (it Item) Text() string { return it.text }

// IsInt reports whether the item was born numeric.
func (it Item) IsInt() bool { return it.isInt }

// IntValue returns the numeric value for integer items.
func (it Item) IntValue() (int64, bool) { return it.num, it.isInt }

// WithText returns an item carrying the given text. When the text is
// unchanged the receiver is returned as-is, so an integer item survives a
// transform that does not touch its rendering.
func (it Item) WithText(text string) Item {
	if text == it.text {
		return it
	}
	return Str(text)
}

// Num parses the item as a number. Integer items resolve to themselves.
func (it Item) Num() (Num, error) {
	if it.isInt {
		return IntNum(it.num), nil
	}
	return ParseNum(it.text)
}

func (it Item) String() string { return it.text }

// Num is a parsed number, either an int64 or a finite float64.
type Num struct {
	i       int64
	f       float64
	isFloat bool
}

// IntNum builds an integer Num.
func IntNum(n int64) Num { return Num{i: n} }

// FloatNum builds a float Num.
func FloatNum(f float64) Num { return Num{f: f, isFloat: true} }

// IsFloat reports whether the number came from the float grammar.
func (n Num) IsFloat() bool { return n.isFloat }

// Float returns the value widened to float64.
func (n Num) Float() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

// Compare orders two numbers. Same-kind integers compare exactly; mixed
// kinds widen the integer side to float64.
func (n Num) Compare(other Num) int {
	if !n.isFloat && !other.isFloat {
		return cmp.Compare(n.i, other.i)
	}
	return cmp.Compare(n.Float(), other.Float())
}

// Less reports whether n orders before other.
func (n Num) Less(other Num) bool { return n.Compare(other) < 0 }

// String renders the number the way it parsed: integers in base 10,
// floats in shortest round-trip form.
func (n Num) String() string {
	if n.isFloat {
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
	return strconv.FormatInt(n.i, 10)
}

// ParseNum parses text as a number: the integer grammar first, then a
// finite float. NaN and infinities are rejected.
func ParseNum(text string) (Num, error) {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return IntNum(i), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Num{}, rperr.ParseNumErr(text)
	}
	return FloatNum(f), nil
}
