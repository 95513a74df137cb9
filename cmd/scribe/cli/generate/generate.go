// Package generate turns a staged-change digest into a commit message via
// an inference API.
package generate

import (
	"context"
	"fmt"
	"strings"
)

// promptTemplate is the prompt used to generate commit messages.
//
// The digest is wrapped in <changes> tags to give the model a clear
// structural boundary around content derived from the working tree.
const promptTemplate = `Write a git commit message for the staged changes summarized below.

<changes>
%s
</changes>

The summary is JSON: "f" is a file path, "c" is a change token, either
"<added>+/<removed>-" line counts, a diff fragment, or a placeholder.

Rules:
- First line: imperative mood, at most 72 characters, no trailing period
- Add a short body only when the change spans several concerns
- Return ONLY the commit message, no markdown formatting or explanation`

// Input carries everything a generator needs for one message.
type Input struct {
	// Digest is the size-bounded JSON summary of staged changes.
	Digest string

	// Model is the inference model to use. Empty means the generator's
	// default.
	Model string
}

// Generator generates commit messages from a change digest.
type Generator interface {
	// Generate creates a commit message. Returns the message text or an
	// error if generation fails; callers are expected to fall back to a
	// local message rather than abort the commit.
	Generate(ctx context.Context, input Input) (string, error)
}

// BuildPrompt renders the generation prompt for a digest.
func BuildPrompt(digest string) string {
	return fmt.Sprintf(promptTemplate, digest)
}

// StripMarkdownFences removes a surrounding markdown code block from model
// output. Input without fences is returned unchanged apart from trimming.
func StripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		// Drop the opening fence line (may carry a language tag).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		return strings.TrimSpace(s)
	}

	return s
}

// FallbackMessage builds a deterministic local message for when the
// inference call is unavailable. The commit must never block on the network.
func FallbackMessage(fileCount int) string {
	switch fileCount {
	case 0:
		return "Update working tree"
	case 1:
		return "Update 1 file"
	default:
		return fmt.Sprintf("Update %d files", fileCount)
	}
}
