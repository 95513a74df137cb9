// Package stringutil provides rune-safe string helpers shared across scribe.
package stringutil

import (
	"strings"
	"unicode"
)

// TruncateRunes truncates s to at most limit runes, appending suffix when
// truncation happened. The suffix counts against the limit.
func TruncateRunes(s string, limit int, suffix string) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	suffixRunes := []rune(suffix)
	keep := limit - len(suffixRunes)
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + suffix
}

// CapitalizeFirst upper-cases the first rune of s.
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// CollapseWhitespace replaces every run of whitespace in s with a single
// space and trims leading/trailing whitespace.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
