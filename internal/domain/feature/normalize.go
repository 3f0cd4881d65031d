package feature

import (
	"strings"
	"unicode"
)

// Normalize lowercases s and replaces every rune that is neither an ASCII
// letter nor whitespace with a single space. Runs of replaced runes are not
// collapsed, so the output has the same rune count as the lowercased input.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, lower)
}
