package ops

// Case conversion is ASCII-only: the 26 letters convert, every other
// byte passes through untouched, so multi-byte runes survive byte for
// byte. Strings that need no change are returned without allocating.

func upperASCII(s string) string {
	i := 0
	for ; i < len(s); i++ {
		if isLower(s[i]) {
			break
		}
	}
	if i == len(s) {
		return s
	}
	b := []byte(s)
	for ; i < len(b); i++ {
		if isLower(b[i]) {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}

func lowerASCII(s string) string {
	i := 0
	for ; i < len(s); i++ {
		if isUpper(s[i]) {
			break
		}
	}
	if i == len(s) {
		return s
	}
	b := []byte(s)
	for ; i < len(b); i++ {
		if isUpper(b[i]) {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

func swapASCII(s string) string {
	i := 0
	for ; i < len(s); i++ {
		if isLower(s[i]) || isUpper(s[i]) {
			break
		}
	}
	if i == len(s) {
		return s
	}
	b := []byte(s)
	for ; i < len(b); i++ {
		switch {
		case isLower(b[i]):
			b[i] -= 'a' - 'A'
		case isUpper(b[i]):
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

func isLower(c byte) bool { return 'a' <= c && c <= 'z' }

func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }

// lowerRune folds a single rune to ASCII lower case. Non-ASCII runes
// are left alone, matching the byte-level conversions above.
func lowerRune(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
