// Package digest serializes staged-change records into a size-bounded JSON
// summary suitable for embedding in an inference prompt.
package digest

import (
	"path"
	"strings"

	"github.com/scribedev/scribe/cmd/scribe/cli/stringutil"
)

// DefaultBudget is the maximum digest length used by the commit workflow
// when no override is given.
const DefaultBudget = 400

// FileChange describes one staged file: its repository-relative path and a
// short opaque token describing the change. Entries are kept in the order
// the analyzer produced them; earlier entries survive truncation longer.
type FileChange struct {
	File   string
	Change string
}

// changeTruncations are the verbosity tiers applied to the change token,
// most detailed first. 0 means the full token.
var changeTruncations = []int{0, 12, 6, 3, 1}

// CompressToJSON serializes changes into `{"files":[{"f":...,"c":...},...]}`
// within budget characters whenever structurally possible.
//
// Degradation order: shorten every change token through the verbosity tiers,
// and within each tier drop entries from the tail until the serialization
// fits. If not even a single entry fits at the shortest tier, the result is
// a single entry holding the basename of the first file with the change
// token "mod"; that last resort is returned without re-checking the budget,
// so a pathological filename can still exceed it.
//
// The empty input compresses to `{"files":[]}`. Pure function; no side
// effects.
func CompressToJSON(changes []FileChange, budget int) string {
	if len(changes) == 0 {
		return `{"files":[]}`
	}

	for _, limit := range changeTruncations {
		for keep := len(changes); keep >= 1; keep-- {
			candidate := serialize(changes[:keep], limit)
			if len(candidate) <= budget {
				return candidate
			}
		}
	}

	// Only reachable when a single file name alone exceeds the budget.
	fallback := []FileChange{{File: path.Base(changes[0].File), Change: "mod"}}
	return serialize(fallback, 0)
}

// serialize hand-builds the digest JSON so the cost of escaping is part of
// every measured candidate. limit truncates each change token to that many
// runes; 0 keeps it. Cutting on rune boundaries keeps the digest valid UTF-8
// when a fragment token carries multi-byte characters.
func serialize(changes []FileChange, limit int) string {
	var b strings.Builder
	b.WriteString(`{"files":[`)
	for i, fc := range changes {
		if i > 0 {
			b.WriteByte(',')
		}
		change := fc.Change
		if limit > 0 {
			change = stringutil.TruncateRunes(change, limit, "")
		}
		b.WriteString(`{"f":"`)
		b.WriteString(escape(fc.File))
		b.WriteString(`","c":"`)
		b.WriteString(escape(change))
		b.WriteString(`"}`)
	}
	b.WriteString(`]}`)
	return b.String()
}

// escape handles the characters that can appear in file names and change
// tokens and would break the hand-built JSON: backslash, double quote,
// newline, and carriage return.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	return s
}
