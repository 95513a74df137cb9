package cli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/scribedev/scribe/cmd/scribe/cli/paths"
)

// Fallback author used when no git user is configured anywhere.
const (
	defaultAuthorName  = "Unknown"
	defaultAuthorEmail = "unknown@local"
)

// openRepository opens the git repository from the repo root with linked
// worktree support enabled.
func openRepository() (*git.Repository, error) {
	root, err := paths.RepoRoot()
	if err != nil {
		return nil, err
	}
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	return repo, nil
}

// StageAll stages every working-tree change, including untracked files and
// deletions, mirroring `git add -A`.
func StageAll(repo *git.Repository) error {
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	return nil
}

// GitAuthor represents the git user configuration.
type GitAuthor struct {
	Name  string
	Email string
}

// GetGitAuthor retrieves the git user.name and user.email, checking the
// repository config first and the global config after it. If go-git can't
// find a value it falls back to the git command, which handles non-standard
// config locations. Returns fallback defaults when nothing is configured.
func GetGitAuthor(repo *git.Repository) *GitAuthor {
	name, email := defaultAuthorName, defaultAuthorEmail

	if cfg, err := repo.ConfigScoped(gitconfig.GlobalScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}

	if name == defaultAuthorName {
		if gitName := getGitConfigValue("user.name"); gitName != "" {
			name = gitName
		}
	}
	if email == defaultAuthorEmail {
		if gitEmail := getGitConfigValue("user.email"); gitEmail != "" {
			email = gitEmail
		}
	}

	return &GitAuthor{Name: name, Email: email}
}

// getGitConfigValue retrieves a git config value using the git command.
// Returns empty string if the value is not set or on error.
func getGitConfigValue(key string) string {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "git", "config", "--get", key)
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// CreateCommit creates a commit from the staged index with the given message.
// Returns the new commit hash as a string.
func CreateCommit(repo *git.Repository, message string) (string, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	author := GetGitAuthor(repo)
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return hash.String(), nil
}
