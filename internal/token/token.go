// Package token splits one command string into words under POSIX-like
// quoting rules. It is the entry point for eval mode, where the whole
// pipeline arrives as a single argument instead of pre-split argv words.
package token

import (
	"regexp"
	"strings"

	"github.com/lguimbarda/rp/internal/rperr"
)

var cmdPattern = regexp.MustCompile(`^:[A-Za-z0-9._-]+$`)

// IsCmd reports whether a word is a command token.
func IsCmd(word string) bool { return cmdPattern.MatchString(word) }

// Split splits a command string into words. Unquoted runs end at a space
// or tab. Double-quoted spans honor the backslash escapes \\ \" \n \t \r
// and escaped space; unknown escapes keep the backslash verbatim, so a
// \:-escaped colon survives splitting and is resolved during argument
// consumption.
// Single-quoted spans are fully literal. Adjacent parts concatenate into
// one word.
func Split(s string) ([]string, error) {
	var words []string
	i := 0
	for i < len(s) {
		if s[i] == ' ' || s[i] == '\t' {
			i++
			continue
		}
		word, next, err := scanWord(s, i)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
		i = next
	}
	return words, nil
}

func scanWord(s string, i int) (string, int, error) {
	var b strings.Builder
	for i < len(s) && s[i] != ' ' && s[i] != '\t' {
		switch s[i] {
		case '\'':
			end := strings.IndexByte(s[i+1:], '\'')
			if end < 0 {
				return "", 0, rperr.ParseTokenErr("unterminated single quote in %q", s)
			}
			b.WriteString(s[i+1 : i+1+end])
			i += end + 2
		case '"':
			next, err := scanDouble(&b, s, i+1)
			if err != nil {
				return "", 0, err
			}
			i = next
		case '\\':
			if i+1 >= len(s) {
				b.WriteByte('\\')
				i++
				continue
			}
			writeEscape(&b, s[i+1])
			i += 2
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String(), i, nil
}

func scanDouble(b *strings.Builder, s string, i int) (int, error) {
	for i < len(s) {
		switch s[i] {
		case '"':
			return i + 1, nil
		case '\\':
			if i+1 >= len(s) {
				return 0, rperr.ParseTokenErr("unterminated double quote in %q", s)
			}
			writeEscape(b, s[i+1])
			i += 2
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return 0, rperr.ParseTokenErr("unterminated double quote in %q", s)
}

func writeEscape(b *strings.Builder, c byte) {
	switch c {
	case '\\':
		b.WriteByte('\\')
	case ' ':
		b.WriteByte(' ')
	case '"':
		b.WriteByte('"')
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	default:
		b.WriteByte('\\')
		b.WriteByte(c)
	}
}
