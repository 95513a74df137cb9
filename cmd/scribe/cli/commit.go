package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/scribedev/scribe/cmd/scribe/cli/analyze"
	"github.com/scribedev/scribe/cmd/scribe/cli/digest"
	"github.com/scribedev/scribe/cmd/scribe/cli/emoji"
	"github.com/scribedev/scribe/cmd/scribe/cli/generate"
	"github.com/scribedev/scribe/cmd/scribe/cli/ignore"
	"github.com/scribedev/scribe/cmd/scribe/cli/logging"
	"github.com/scribedev/scribe/cmd/scribe/cli/paths"
	"github.com/scribedev/scribe/cmd/scribe/cli/settings"
	"github.com/scribedev/scribe/redact"
)

func newCommitCmd() *cobra.Command {
	var (
		yes      bool
		budget   int
		model    string
		useEmoji bool
	)

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Stage changes and commit with a generated message",
		Long: `Stages all working-tree changes, checks the ignore file for missing
protections, summarizes the staged changes, and commits with a message
generated by the configured inference model. Without an API key the
message falls back to a local summary.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithCommand(cmd.Context(), cmd.CommandPath())

			cfg, err := settings.Load()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}

			root, err := paths.RepoRoot()
			if err != nil {
				return errors.New("not inside a git repository")
			}

			modified, err := ignore.Resolve(ctx, root)
			if err != nil {
				// The safety pass must not block the commit; report and go on.
				logging.Warn(ctx, "ignore reconciliation failed", slog.String("error", err.Error()))
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: ignore check failed: %v\n", err)
			} else if modified {
				fmt.Fprintln(cmd.OutOrStdout(), "Updated .gitignore with missing protections")
			}

			repo, err := openRepository()
			if err != nil {
				return err
			}

			if err := StageAll(repo); err != nil {
				return err
			}

			changes, err := analyze.New(repo).Changes()
			if err != nil {
				return err
			}
			if len(changes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes to commit")
				return nil
			}

			if budget <= 0 {
				budget = cfg.Budget
			}
			if budget <= 0 {
				budget = digest.DefaultBudget
			}
			summary := digest.CompressToJSON(changes, budget)
			summary = redact.String(summary)
			logging.Debug(ctx, "digest built",
				slog.Int("files", len(changes)),
				slog.Int("digest_len", len(summary)),
			)

			if model == "" {
				model = cfg.Model
			}

			message := generateMessage(cmd, summary, model, len(changes))
			message = finalizeCommitMessage(message)

			if useEmoji || cfg.Emoji {
				message = emoji.Decorate(message)
			}

			if !yes && term.IsTerminal(int(os.Stdin.Fd())) {
				confirmed, edited, err := confirmMessage(message)
				if err != nil {
					return fmt.Errorf("reading confirmation: %w", err)
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Commit aborted")
					return NewSilentError(errors.New("commit aborted"))
				}
				message = edited
			}

			hash, err := CreateCommit(repo, message)
			if err != nil {
				return err
			}

			logging.Info(ctx, "commit created", slog.String("hash", hash))
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", shortHash(hash), firstLine(message))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "commit without confirmation")
	cmd.Flags().IntVar(&budget, "budget", 0, "digest character budget (default 400)")
	cmd.Flags().StringVar(&model, "model", "", "inference model to use")
	cmd.Flags().BoolVar(&useEmoji, "emoji", false, "prepend a matched emoji to the message")

	return cmd
}

// generateMessage produces the commit message, preferring the inference
// API and falling back to a deterministic local message so the commit never
// blocks on the network.
func generateMessage(cmd *cobra.Command, summary, model string, fileCount int) string {
	ctx := cmd.Context()

	apiKey := settings.APIKey()
	if apiKey == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "No GEMINI_API_KEY configured; using local message")
		return generate.FallbackMessage(fileCount)
	}

	client, err := generate.NewSDKClient(ctx, apiKey)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; using local message\n", err)
		return generate.FallbackMessage(fileCount)
	}

	message, err := generate.NewGeminiGenerator(client).Generate(ctx, generate.Input{
		Digest: summary,
		Model:  model,
	})
	if err != nil {
		logging.Warn(ctx, "generation failed", slog.String("error", err.Error()))
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; using local message\n", err)
		return generate.FallbackMessage(fileCount)
	}
	return message
}

// confirmMessage shows the generated message in an editable prompt and asks
// for confirmation. Returns the possibly edited message.
func confirmMessage(message string) (bool, string, error) {
	edited := message
	confirmed := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Commit message").
				Value(&edited),
			huh.NewConfirm().
				Title("Create commit?").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false, "", err
	}
	return confirmed, edited, nil
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
