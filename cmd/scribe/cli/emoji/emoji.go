// Package emoji decorates commit messages with an emoji matched from
// keywords in the message subject.
package emoji

import "strings"

// rule pairs a set of trigger keywords with the emoji they select.
// Rules are scanned in order; the first keyword found in the message wins,
// so more specific triggers come before generic ones.
type rule struct {
	keywords []string
	emoji    string
}

var rules = []rule{
	{[]string{"revert"}, "⏪"},
	{[]string{"fix", "bug", "patch"}, "🐛"},
	{[]string{"security", "vulnerab"}, "🔒"},
	{[]string{"test"}, "✅"},
	{[]string{"doc", "readme", "comment"}, "📝"},
	{[]string{"perf", "optimiz", "speed"}, "⚡"},
	{[]string{"refactor", "restructur", "cleanup", "clean up"}, "♻️"},
	{[]string{"remove", "delete", "drop"}, "🔥"},
	{[]string{"deploy", "release"}, "🚀"},
	// "ci" alone would substring-match words like "dependencies".
	{[]string{"pipeline", "workflow", "github actions"}, "👷"},
	{[]string{"dependen", "upgrade", "bump"}, "⬆️"},
	{[]string{"config", "setting"}, "🔧"},
	{[]string{"format", "style", "lint"}, "🎨"},
	{[]string{"init", "initial"}, "🎉"},
	{[]string{"add", "feat", "new", "implement", "introduce"}, "✨"},
}

// Decorate prepends a matched emoji to the commit message. The scan is a
// bounded linear pass over the lowercased message; when no keyword matches,
// the message is returned unchanged.
func Decorate(message string) string {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.emoji + " " + message
			}
		}
	}
	return message
}
