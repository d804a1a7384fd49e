// Package search implements the normalized token matching used by the
// search page.
package search

import (
	"strings"
	"unicode"
)

// Normalize lower-cases a string, maps hyphens and underscores to spaces,
// drops all other punctuation, and collapses runs of whitespace. Hyphen
// mapping makes "el-spade" findable as "el spade" and vice versa.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r == '-' || r == '_':
			r = ' '
		case unicode.IsLetter(r) || unicode.IsDigit(r):
		case unicode.IsSpace(r):
			r = ' '
		default:
			continue
		}
		if r == ' ' {
			if lastSpace {
				continue
			}
			lastSpace = true
		} else {
			lastSpace = false
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

// Match reports whether every normalized token of query occurs as a
// substring of the normalized haystack. An empty query matches nothing.
func Match(haystack, query string) bool {
	tokens := strings.Fields(Normalize(query))
	if len(tokens) == 0 {
		return false
	}
	hay := Normalize(haystack)
	for _, token := range tokens {
		if !strings.Contains(hay, token) {
			return false
		}
	}
	return true
}
