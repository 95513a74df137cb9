package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/scribedev/scribe/cmd/scribe/cli/logging"
	"github.com/scribedev/scribe/cmd/scribe/cli/settings"
	"github.com/scribedev/scribe/cmd/scribe/cli/telemetry"
	"github.com/scribedev/scribe/cmd/scribe/cli/versioncheck"
)

const gettingStarted = `

Getting Started:
  Run 'scribe commit' inside a git repository to stage your changes and
  commit them with a generated message. Set GEMINI_API_KEY (or put it in
  a .env file at the repository root) to enable AI-generated messages.

`

// Version information (can be set at build time)
var (
	Version = "dev"
	Commit  = "unknown"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scribe",
		Short: "Commit with generated messages",
		Long:  "A git commit assistant that writes the message for you" + gettingStarted,
		// Let main.go handle error printing to avoid duplication
		SilenceErrors: true,
		// Hide completion command from help but keep it functional
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.SetLogLevelGetter(func() string {
				cfg, err := settings.Load()
				if err != nil {
					return ""
				}
				return cfg.LogLevel
			})
			_ = logging.Init(logging.NewRunID())
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			defer logging.Close()

			// Telemetry preference from settings; nil defaults to disabled
			var enabled *bool
			model := settings.DefaultModel
			if cfg, err := settings.Load(); err == nil {
				enabled = cfg.Telemetry
				model = cfg.Model
			}

			client := telemetry.NewClient(Version, enabled)
			defer client.Close()
			client.TrackCommand(cmd, model)

			versioncheck.CheckAndNotify(cmd, Version)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newCommitCmd())
	cmd.AddCommand(newModelsCmd())
	cmd.AddCommand(newCheckIgnoreCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("scribe %s (%s)\n", Version, Commit)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
