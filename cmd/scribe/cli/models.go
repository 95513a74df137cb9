package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/scribedev/scribe/cmd/scribe/cli/generate"
	"github.com/scribedev/scribe/cmd/scribe/cli/settings"
)

func newModelsCmd() *cobra.Command {
	var selectModel bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List available inference models",
		Long: `Lists the text-generation models available with the configured API key.
With --select, presents a picker and saves the chosen model to
.scribe/settings.json.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			apiKey := settings.APIKey()
			if apiKey == "" {
				return errors.New("GEMINI_API_KEY is not set; configure it in the environment or a .env file")
			}

			client, err := generate.NewSDKClient(ctx, apiKey)
			if err != nil {
				return err
			}

			models, err := client.ListModels(ctx)
			if err != nil {
				return fmt.Errorf("listing models: %w", err)
			}
			if len(models) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No models available")
				return nil
			}

			cfg, err := settings.Load()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}

			if !selectModel {
				for _, m := range models {
					marker := "  "
					if m.Name == cfg.Model || m.Name == "models/"+cfg.Model {
						marker = "* "
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s%s (in: %d, out: %d)\n",
						marker, m.Name, m.InputTokenLimit, m.OutputTokenLimit)
				}
				return nil
			}

			options := make([]huh.Option[string], 0, len(models))
			for _, m := range models {
				options = append(options, huh.NewOption(m.Name, m.Name))
			}

			chosen := cfg.Model
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewSelect[string]().
						Title("Inference model").
						Options(options...).
						Value(&chosen),
				),
			)
			if err := form.Run(); err != nil {
				return fmt.Errorf("selecting model: %w", err)
			}

			cfg.Model = chosen
			if err := settings.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Model set to %s\n", chosen)
			return nil
		},
	}

	cmd.Flags().BoolVar(&selectModel, "select", false, "interactively choose and save a model")

	return cmd
}
