package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scribedev/scribe/cmd/scribe/cli/ignore"
	"github.com/scribedev/scribe/cmd/scribe/cli/logging"
	"github.com/scribedev/scribe/cmd/scribe/cli/paths"
)

func newCheckIgnoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-ignore",
		Short: "Reconcile .gitignore protections",
		Long: `Runs the ignore reconciliation pass on its own: ensures the required
environment-file patterns are covered and that nested git repositories not
registered as submodules are ignored. Prints whether the ignore file was
modified. Running it twice in a row never modifies the file a second time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithCommand(cmd.Context(), cmd.CommandPath())

			root, err := paths.RepoRoot()
			if err != nil {
				return errors.New("not inside a git repository")
			}

			modified, err := ignore.Resolve(ctx, root)
			if err != nil {
				return err
			}
			if modified {
				fmt.Fprintln(cmd.OutOrStdout(), "Updated .gitignore with missing protections")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ".gitignore already covers all protections")
			}
			return nil
		},
	}
}
