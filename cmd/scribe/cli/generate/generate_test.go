package generate

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	digest := `{"files":[{"f":"a.go","c":"1+/0-"}]}`
	prompt := BuildPrompt(digest)

	if !strings.Contains(prompt, "<changes>\n"+digest+"\n</changes>") {
		t.Errorf("digest not embedded in tagged boundaries:\n%s", prompt)
	}
}

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
		desc string
	}{
		{"Fix crash", "Fix crash", "plain text untouched"},
		{"```\nFix crash\n```", "Fix crash", "bare fences"},
		{"```text\nFix crash\n```", "Fix crash", "fence with language tag"},
		{"  \n```\nFix crash\n```\n", "Fix crash", "surrounding whitespace"},
		{"```Fix crash", "Fix crash", "unterminated single-line fence"},
		{"Fix ```inline``` crash", "Fix ```inline``` crash", "inline backticks kept"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := StripMarkdownFences(tt.in); got != tt.want {
				t.Errorf("StripMarkdownFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFallbackMessage(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "Update working tree"},
		{1, "Update 1 file"},
		{2, "Update 2 files"},
		{17, "Update 17 files"},
	}

	for _, tt := range tests {
		if got := FallbackMessage(tt.count); got != tt.want {
			t.Errorf("FallbackMessage(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}
