package ops

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lguimbarda/rp/internal/rperr"
)

// Template is a parsed render template for generated values: literal
// text interleaved with substitution placeholders. A placeholder is
// `{name:spec}` with both parts optional; the name is ignored, every
// placeholder renders the one value. `{{` and `}}` escape literal
// braces. The spec is `[[fill]align][0][width][type]` with align one
// of `< ^ >`, the `0` flag padding with sign-aware zeros, and type one
// of `b o d x X e E` (empty renders decimal).
type Template struct {
	raw   string
	parts []part
}

type part struct {
	lit string
	sp  *spec
}

type spec struct {
	fill  rune
	align byte
	zero  bool
	width int
	verb  byte
}

// ParseTemplate parses a template, rejecting unterminated placeholders,
// stray closing braces and malformed specs with the byte position of
// the offending character.
func ParseTemplate(format string) (*Template, error) {
	t := &Template{raw: format}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.parts = append(t.parts, part{lit: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(format); {
		switch format[i] {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(format[i+1:], '}')
			if end < 0 {
				return nil, rperr.FormatStringErr(format, i)
			}
			inner := format[i+1 : i+1+end]
			specStr, offset := "", 0
			if colon := strings.IndexByte(inner, ':'); colon >= 0 {
				specStr, offset = inner[colon+1:], colon+1
			}
			sp, err := parseSpec(specStr, i+1+offset, format)
			if err != nil {
				return nil, err
			}
			flush()
			t.parts = append(t.parts, part{sp: &sp})
			i += end + 2
		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, rperr.FormatStringErr(format, i)
		default:
			lit.WriteByte(format[i])
			i++
		}
	}
	flush()
	return t, nil
}

func (t *Template) String() string { return t.raw }

// Render substitutes v into every placeholder.
func (t *Template) Render(v int64) string {
	var b strings.Builder
	for _, p := range t.parts {
		if p.sp != nil {
			b.WriteString(p.sp.render(v))
		} else {
			b.WriteString(p.lit)
		}
	}
	return b.String()
}

func parseSpec(s string, base int, format string) (spec, error) {
	sp := spec{fill: ' '}
	i := 0
	if i < len(s) {
		if r, n := utf8.DecodeRuneInString(s[i:]); n > 0 && i+n < len(s) && isAlign(s[i+n]) {
			sp.fill, sp.align = r, s[i+n]
			i += n + 1
		} else if isAlign(s[i]) {
			sp.align = s[i]
			i++
		}
	}
	if i < len(s) && s[i] == '0' {
		sp.zero = true
		i++
	}
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		sp.width = sp.width*10 + int(s[i]-'0')
		i++
	}
	if i < len(s) {
		switch s[i] {
		case 'b', 'o', 'd', 'x', 'X', 'e', 'E':
			sp.verb = s[i]
			i++
		}
	}
	if i != len(s) {
		return spec{}, rperr.FormatStringErr(format, base+i)
	}
	return sp, nil
}

func isAlign(c byte) bool { return c == '<' || c == '^' || c == '>' }

func (sp spec) render(v int64) string {
	body := sp.body(v)
	pad := sp.width - len(body)
	if pad <= 0 {
		return body
	}
	fill := string(sp.fill)
	if sp.fill == 0 {
		fill = " "
	}
	switch {
	case sp.zero:
		// zeros go after the sign, overriding any alignment
		if body[0] == '-' {
			return "-" + strings.Repeat("0", pad) + body[1:]
		}
		return strings.Repeat("0", pad) + body
	case sp.align == '<':
		return body + strings.Repeat(fill, pad)
	case sp.align == '^':
		left := pad / 2
		return strings.Repeat(fill, left) + body + strings.Repeat(fill, pad-left)
	default:
		return strings.Repeat(fill, pad) + body
	}
}

// body renders the bare value for the spec's type. The radix forms
// print the two's complement bit pattern for negative values.
func (sp spec) body(v int64) string {
	switch sp.verb {
	case 'b':
		return strconv.FormatUint(uint64(v), 2)
	case 'o':
		return strconv.FormatUint(uint64(v), 8)
	case 'x':
		return strconv.FormatUint(uint64(v), 16)
	case 'X':
		return strings.ToUpper(strconv.FormatUint(uint64(v), 16))
	case 'e', 'E':
		return sciInt(v, sp.verb == 'E')
	default:
		return strconv.FormatInt(v, 10)
	}
}

// sciInt renders v in scientific notation with the mantissa's trailing
// zeros stripped and a bare exponent: 1.05e3 for 1050, 0e0 for zero.
func sciInt(v int64, upper bool) string {
	exp := byte('e')
	if upper {
		exp = 'E'
	}
	sign, digits := "", strconv.FormatInt(v, 10)
	if v < 0 {
		sign, digits = "-", digits[1:]
	}
	power := len(digits) - 1
	digits = strings.TrimRight(digits, "0")
	if digits == "" {
		return "0" + string(exp) + "0"
	}
	out := sign + digits[:1]
	if len(digits) > 1 {
		out += "." + digits[1:]
	}
	return out + string(exp) + strconv.Itoa(power)
}
