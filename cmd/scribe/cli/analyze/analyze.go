// Package analyze produces the short change token for each staged file
// that feeds the digest compressor.
package analyze

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/scribedev/scribe/cmd/scribe/cli/digest"
	"github.com/scribedev/scribe/cmd/scribe/cli/stringutil"
)

// fragmentLimit bounds the diff-fragment change token.
const fragmentLimit = 40

// Degraded-path tokens. The compressor treats all tokens as opaque strings.
const (
	tokenUnchanged = "unchanged"
	tokenModified  = "mod"
	tokenError     = "err"
)

// Analyzer computes change tokens for staged files in one repository.
type Analyzer struct {
	repo *git.Repository
}

// New returns an Analyzer for the given repository.
func New(repo *git.Repository) *Analyzer {
	return &Analyzer{repo: repo}
}

// Changes returns one FileChange per staged file, in git's name order.
// The token for each file is computed independently; a file that cannot be
// analyzed contributes the "err" token rather than failing the whole list.
func (a *Analyzer) Changes() ([]digest.FileChange, error) {
	staged, err := a.stagedPaths()
	if err != nil {
		return nil, err
	}

	changes := make([]digest.FileChange, 0, len(staged))
	for _, path := range staged {
		changes = append(changes, digest.FileChange{
			File:   path,
			Change: a.changeToken(path),
		})
	}
	return changes, nil
}

// stagedPaths lists the paths with staged changes, sorted by name to match
// the order git itself reports them. The digest keeps this order verbatim.
func (a *Analyzer) stagedPaths() ([]string, error) {
	worktree, err := a.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	var staged []string
	for path, fileStatus := range status {
		if fileStatus.Staging == git.Unmodified || fileStatus.Staging == git.Untracked {
			continue
		}
		staged = append(staged, path)
	}
	sort.Strings(staged)
	return staged, nil
}

// changeToken computes the token for one staged file:
// "<added>+/<removed>-" line counts in the common case, "unchanged" when
// head and staged content are identical, "mod" for binary content, a
// collapsed first-hunk fragment when line counting is inconclusive, and
// "err" when content cannot be read at all.
func (a *Analyzer) changeToken(path string) string {
	head, headOK := a.headContent(path)
	staged, stagedOK := a.stagedContent(path)
	if !headOK && !stagedOK {
		return tokenError
	}

	if head == staged {
		return tokenUnchanged
	}
	if isBinary(head) || isBinary(staged) {
		return tokenModified
	}

	added, removed, fragment := diffStats(head, staged)
	if added == 0 && removed == 0 {
		if fragment != "" {
			return fragment
		}
		return tokenModified
	}
	return fmt.Sprintf("%d+/%d-", added, removed)
}

// headContent returns the file's content at HEAD. A missing file (new file,
// or empty repository) yields ("", true); a read failure yields ("", false).
func (a *Analyzer) headContent(path string) (string, bool) {
	head, err := a.repo.Head()
	if err != nil {
		// Unborn branch: everything staged is new.
		return "", true
	}
	commit, err := a.repo.CommitObject(head.Hash())
	if err != nil {
		return "", false
	}
	tree, err := commit.Tree()
	if err != nil {
		return "", false
	}
	file, err := tree.File(path)
	if err != nil {
		if err == object.ErrFileNotFound {
			return "", true
		}
		return "", false
	}
	content, err := file.Contents()
	if err != nil {
		return "", false
	}
	return content, true
}

// stagedContent returns the file's content from the index. A file absent
// from the index (staged deletion) yields ("", true); a read failure yields
// ("", false).
func (a *Analyzer) stagedContent(path string) (string, bool) {
	idx, err := a.repo.Storer.Index()
	if err != nil {
		return "", false
	}
	entry, err := idx.Entry(path)
	if err != nil {
		return "", true
	}
	blob, err := a.repo.BlobObject(entry.Hash)
	if err != nil {
		return "", false
	}
	reader, err := blob.Reader()
	if err != nil {
		return "", false
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// diffStats compares two text blobs line by line and returns added/removed
// line counts plus a fragment of the first changed line, whitespace
// collapsed and capped at fragmentLimit runes.
func diffStats(before, after string) (added, removed int, fragment string) {
	dmp := diffmatchpatch.New()

	text1, text2, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(text1, text2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += countLines(d.Text)
			if fragment == "" {
				fragment = firstLineFragment("+", d.Text)
			}
		case diffmatchpatch.DiffDelete:
			removed += countLines(d.Text)
			if fragment == "" {
				fragment = firstLineFragment("-", d.Text)
			}
		case diffmatchpatch.DiffEqual:
		}
	}
	return added, removed, fragment
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

func firstLineFragment(sign, text string) string {
	line, _, _ := strings.Cut(text, "\n")
	line = stringutil.CollapseWhitespace(line)
	if line == "" {
		return ""
	}
	return stringutil.TruncateRunes(sign+line, fragmentLimit, "")
}

// isBinary mirrors git's heuristic: content containing a null byte is
// treated as binary and excluded from line-based diffing.
func isBinary(content string) bool {
	return strings.Contains(content, "\x00")
}
