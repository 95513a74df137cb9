// Package ignore implements the ignore-safety pass scribe runs before each
// commit: it reconciles the repository's .gitignore against a required
// protection set and against nested git repositories discovered in the tree.
//
// Pattern matching here is intentionally a subset of real gitignore
// semantics: no `**`, no character classes, no `!` negation, and no
// directory-vs-file distinction beyond the trailing-slash rule. Patterns
// the subset cannot express still round-trip through the file untouched;
// they just never match anything.
package ignore

import (
	"regexp"
	"strings"
)

// Matcher reports whether a repository-relative, forward-slash normalized
// path is matched by one ignore pattern.
type Matcher func(relPath string) bool

// Compile translates a single ignore-file line into a Matcher.
//
// Matching rules, in priority order:
//  1. Exact string equality between pattern and path.
//  2. A pattern ending in "/" matches the path equal to the pattern minus
//     the slash, and any path under that directory (prefix match).
//  3. Otherwise the pattern is translated into an anchored regular
//     expression with `*` meaning `.*` and `?` meaning `.`.
//
// A pattern that fails to compile yields a Matcher that never matches;
// compile failures are never propagated.
func Compile(pattern string) Matcher {
	if strings.HasSuffix(pattern, "/") {
		bare := strings.TrimSuffix(pattern, "/")
		return func(relPath string) bool {
			if relPath == pattern {
				return true
			}
			return relPath == bare || strings.HasPrefix(relPath, pattern)
		}
	}

	re, err := compileGlob(pattern)
	if err != nil {
		// Malformed pattern: degrade to never-matching rather than failing.
		return func(string) bool { return false }
	}

	return func(relPath string) bool {
		if relPath == pattern {
			return true
		}
		return re.MatchString(relPath)
	}
}

// compileGlob escapes every regexp metacharacter in the pattern, then
// restores `*` as `.*` and `?` as `.`, anchored at both ends.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	escaped := regexp.QuoteMeta(pattern)
	escaped = strings.ReplaceAll(escaped, `\*`, `.*`)
	escaped = strings.ReplaceAll(escaped, `\?`, `.`)
	return regexp.Compile("^" + escaped + "$")
}

// PatternSet is an ordered collection of compiled ignore patterns.
type PatternSet struct {
	lines    []string
	matchers []Matcher
}

// NewPatternSet compiles each non-empty, non-comment line into a matcher.
// Lines are kept in input order; the caller is expected to have trimmed them.
func NewPatternSet(lines []string) *PatternSet {
	ps := &PatternSet{}
	for _, line := range lines {
		ps.lines = append(ps.lines, line)
		ps.matchers = append(ps.matchers, Compile(line))
	}
	return ps
}

// Matches reports whether any pattern in the set matches relPath.
func (ps *PatternSet) Matches(relPath string) bool {
	for _, m := range ps.matchers {
		if m(relPath) {
			return true
		}
	}
	return false
}

// Contains reports whether the set holds the pattern as a literal line.
func (ps *PatternSet) Contains(pattern string) bool {
	for _, line := range ps.lines {
		if line == pattern {
			return true
		}
	}
	return false
}

// ParseLines splits ignore-file content into trimmed, non-empty,
// non-comment lines.
func ParseLines(content string) []string {
	var lines []string
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
