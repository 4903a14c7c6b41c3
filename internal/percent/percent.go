// Package percent escapes strings for query strings and form bodies.
//
// The allowed set is A-Z, a-z, 0-9, '-', '.', '_', '*' and ' '. Every
// other byte of the UTF-8 encoding is written as %XX with uppercase
// hex digits. A final substitution pass writes '+' as %2B, '/' as %2F and
// ' ' as '+', so that spaces never become %20.
package percent

import "strings"

const upperhex = "0123456789ABCDEF"

// shouldEscape returns whether c is outside the allowed set.
func shouldEscape(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return false
	}
	switch c {
	case '-', '.', '_', '*', ' ':
		return false
	}
	return true
}

// encode performs the first pass: escape every byte outside the allowed set.
func encode(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !shouldEscape(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&15])
	}
	return sb.String()
}

// substituter is the second pass. It runs after encode, which has already
// turned '+' and '/' into %2B and %2F, so only the space rewrite can
// introduce a literal '+' in the output.
var substituter = strings.NewReplacer("+", "%2B", "/", "%2F", " ", "+")

// Escape escapes s for use as a query or form key or value.
func Escape(s string) string {
	return substituter.Replace(encode(s))
}
