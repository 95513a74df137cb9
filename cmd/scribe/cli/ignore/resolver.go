package ignore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scribedev/scribe/cmd/scribe/cli/logging"
)

// RequiredPatterns must always be effectively active in the ignore file so
// environment files and document scratch directories never reach a commit.
// Static configuration; not user-editable through the resolver.
var RequiredPatterns = []string{"*.env*", ".env*", "docx/", ".docx/"}

// Comment labels written above appended lines so a reader can tell where
// they came from.
const (
	requiredComment   = "# scribe: protect environment files"
	nestedRepoComment = "# scribe: nested git repository"
)

// Resolve performs one reconciliation pass over the ignore file at root.
// It appends any uncovered required pattern and a `<path>/` line for every
// nested git repository that is neither declared as a submodule nor already
// ignored. Existing lines are never reordered or deleted.
//
// Returns true when the ignore file was rewritten. A second pass over the
// just-rewritten file reports no modification.
func Resolve(ctx context.Context, root string) (bool, error) {
	ctx = logging.WithComponent(ctx, "ignore")
	defer logging.LogDuration(ctx, slog.LevelDebug, "ignore reconciliation finished", time.Now())

	ignorePath := filepath.Join(root, ".gitignore")

	content := ""
	if data, err := os.ReadFile(ignorePath); err == nil {
		content = string(data)
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("reading ignore file: %w", err)
	}

	existing := NewPatternSet(ParseLines(content))

	var additions []string

	for _, required := range RequiredPatterns {
		if covered(existing, required) {
			continue
		}
		additions = append(additions, requiredComment, required)
	}

	walk := FindNestedRepos(root, existing)
	if len(walk.Skipped) > 0 {
		logging.Debug(ctx, "unreadable directories skipped during walk",
			slog.Int("count", len(walk.Skipped)),
			slog.String("first", walk.Skipped[0]),
		)
	}

	submodules := ReadSubmodulePaths(root)

	for _, parent := range walk.NestedRepoParents {
		if _, ok := submodules[parent]; ok {
			continue
		}
		if existing.Matches(parent) || existing.Matches(parent+"/") {
			continue
		}
		if nestedRegistryMentions(root, parent) {
			continue
		}
		additions = append(additions, nestedRepoComment, parent+"/")
	}

	if len(additions) == 0 {
		return false, nil
	}

	updated := content
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += strings.Join(additions, "\n") + "\n"

	if err := os.WriteFile(ignorePath, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("writing ignore file: %w", err)
	}

	logging.Info(ctx, "ignore file updated", slog.Int("lines_appended", len(additions)))
	return true, nil
}

// covered reports whether a required pattern is already effectively active:
// present as a literal line, or matched by some existing pattern when the
// required pattern string is treated as a path.
func covered(existing *PatternSet, required string) bool {
	if existing.Contains(required) {
		return true
	}
	return existing.Matches(required)
}

// nestedRegistryMentions reports whether the nested repository at parent
// declares its own .gitmodules whose contents textually mention the parent
// path. This is a substring check, not a structural parse of that registry;
// it can both false-positive on unrelated text and false-negative on paths
// declared with different separators. Kept as-is on purpose.
func nestedRegistryMentions(root, parent string) bool {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(parent), ".gitmodules"))
	if err != nil {
		return false
	}
	return strings.Contains(string(data), parent)
}
