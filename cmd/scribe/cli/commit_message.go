package cli

import (
	"strings"

	"github.com/scribedev/scribe/cmd/scribe/cli/stringutil"
)

// subjectLimit is the conventional maximum commit subject length.
const subjectLimit = 72

// finalizeCommitMessage normalizes a generated commit message: the subject
// line is trimmed to 72 runes with its first letter capitalized and any
// trailing period removed, and the body (if present) is kept as-is after a
// blank line.
func finalizeCommitMessage(message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return message
	}

	subject, body, hasBody := strings.Cut(message, "\n")

	subject = strings.TrimSpace(subject)
	subject = strings.TrimSuffix(subject, ".")
	subject = stringutil.TruncateRunes(subject, subjectLimit, "")
	subject = strings.TrimSpace(subject)
	subject = stringutil.CapitalizeFirst(subject)

	if !hasBody {
		return subject
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return subject
	}
	return subject + "\n\n" + body
}
