package ignore

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const gitDirName = ".git"

// WalkResult holds what the tree walk found below the repository root.
type WalkResult struct {
	// NestedRepoParents are repository-root-relative, forward-slash
	// normalized paths of directories that directly contain a .git entry,
	// strictly below the root. Deduplicated and sorted for stable output.
	NestedRepoParents []string

	// Skipped lists directories that could not be read and were passed
	// over. Diagnostic only; the resolver does not act on it.
	Skipped []string
}

// FindNestedRepos walks the tree below root depth-first and collects the
// parent directory of every .git entry found strictly below the root.
// Subtrees matched as ignored by the pattern set are not descended into.
// A directory named .git is detected as a boundary regardless of ignore
// status and is never descended into.
//
// Directories that cannot be listed are skipped silently (recorded in
// Skipped); the walk continues with partial information.
func FindNestedRepos(root string, patterns *PatternSet) WalkResult {
	w := &walker{root: root, patterns: patterns, seen: make(map[string]struct{})}
	w.walk(root)

	result := WalkResult{Skipped: w.skipped}
	for parent := range w.seen {
		result.NestedRepoParents = append(result.NestedRepoParents, parent)
	}
	sort.Strings(result.NestedRepoParents)
	return result
}

type walker struct {
	root     string
	patterns *PatternSet
	seen     map[string]struct{}
	skipped  []string
}

func (w *walker) walk(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable directory (permissions, deletion race): keep going.
		w.skipped = append(w.skipped, w.relPath(dir))
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(dir, name)

		if name == gitDirName {
			// Boundary marker. The root's own .git is not a nested repo.
			if dir != w.root {
				w.seen[w.relPath(dir)] = struct{}{}
			}
			continue
		}

		if !entry.IsDir() {
			continue
		}
		if w.patterns != nil && w.patterns.Matches(w.relPath(full)) {
			continue
		}
		w.walk(full)
	}
}

// relPath returns the path relative to the walk root with forward slashes.
func (w *walker) relPath(full string) string {
	rel, err := filepath.Rel(w.root, full)
	if err != nil {
		rel = full
	}
	return strings.ReplaceAll(rel, string(filepath.Separator), "/")
}
