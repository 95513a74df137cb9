package ignore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readIgnore(t *testing.T, root string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	return string(data)
}

func TestResolveCreatesIgnoreFileWithRequiredPatterns(t *testing.T) {
	root := t.TempDir()

	modified, err := Resolve(context.Background(), root)
	require.NoError(t, err)
	assert.True(t, modified)

	content := readIgnore(t, root)
	for _, pattern := range RequiredPatterns {
		assert.Contains(t, content, pattern+"\n")
	}
	assert.Contains(t, content, requiredComment)
}

func TestResolveIdempotent(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, root, "plugin", ".git")

	modified, err := Resolve(context.Background(), root)
	require.NoError(t, err)
	require.True(t, modified)

	first := readIgnore(t, root)

	modified, err = Resolve(context.Background(), root)
	require.NoError(t, err)
	assert.False(t, modified, "second pass must not modify the file")
	assert.Equal(t, first, readIgnore(t, root))
}

func TestResolvePreservesExistingContent(t *testing.T) {
	root := t.TempDir()
	existing := "# project rules\n*.log\nbin"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte(existing), 0o644))

	modified, err := Resolve(context.Background(), root)
	require.NoError(t, err)
	require.True(t, modified)

	content := readIgnore(t, root)
	assert.True(t, strings.HasPrefix(content, existing+"\n"),
		"existing lines must stay first and unmodified; a newline separates the append")
}

func TestResolveRequiredPatternCoveredByLiteral(t *testing.T) {
	root := t.TempDir()
	all := strings.Join(RequiredPatterns, "\n") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte(all), 0o644))

	modified, err := Resolve(context.Background(), root)
	require.NoError(t, err)
	assert.False(t, modified)
}

func TestResolveRequiredPatternCoveredByMatcher(t *testing.T) {
	root := t.TempDir()
	// "*env*" is broader than every required env pattern and matches each
	// required pattern string treated as a path. The docx rules are present
	// literally.
	content := "*env*\ndocx/\n.docx/\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte(content), 0o644))

	modified, err := Resolve(context.Background(), root)
	require.NoError(t, err)
	assert.False(t, modified, "matcher coverage counts as coverage")
}

func TestResolveAppendsNestedRepo(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, root, "extern", "widget", ".git")

	modified, err := Resolve(context.Background(), root)
	require.NoError(t, err)
	require.True(t, modified)

	content := readIgnore(t, root)
	assert.Contains(t, content, nestedRepoComment+"\nextern/widget/\n")
}

func TestResolveSubmoduleExempt(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, root, "vendor", "lib", ".git")
	writeGitmodules(t, root, "[submodule \"lib\"]\n\tpath = vendor/lib\n\turl = https://example.com/lib.git\n")

	modified, err := Resolve(context.Background(), root)
	require.NoError(t, err)
	require.True(t, modified)

	assert.NotContains(t, readIgnore(t, root), "vendor/lib/",
		"declared submodules must not be ignored")
}

func TestResolveAlreadyIgnoredNestedRepoSkipped(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, root, "third_party", "dep", ".git")

	content := strings.Join(RequiredPatterns, "\n") + "\nthird_party/\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte(content), 0o644))

	modified, err := Resolve(context.Background(), root)
	require.NoError(t, err)
	assert.False(t, modified, "a nested repo under an ignored subtree needs no new line")
}

func TestResolveNestedRegistryMentionExempt(t *testing.T) {
	root := t.TempDir()
	mkdirAll(t, root, "meta", ".git")
	// The nested repo's own registry textually mentions its parent path.
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "meta", ".gitmodules"),
		[]byte("# managed checkout of meta\n"), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"),
		[]byte(strings.Join(RequiredPatterns, "\n")+"\n"), 0o644))

	modified, err := Resolve(context.Background(), root)
	require.NoError(t, err)
	assert.False(t, modified)
}

func TestResolveSeparatingNewline(t *testing.T) {
	root := t.TempDir()
	// File ends without a trailing newline.
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log"), 0o644))

	modified, err := Resolve(context.Background(), root)
	require.NoError(t, err)
	require.True(t, modified)

	content := readIgnore(t, root)
	assert.True(t, strings.HasPrefix(content, "*.log\n"+requiredComment))
	assert.False(t, strings.Contains(content, "\n\n"), "no blank lines are inserted")
	assert.True(t, strings.HasSuffix(content, "\n"))
}
