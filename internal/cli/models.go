package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/autolink/internal/app"
)

func newModelsCommand(opts *options) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models offered by the configured provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(opts)
			if err != nil {
				return err
			}
			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			for _, id := range a.Models(cmd.Context(), refresh) {
				marker := "  "
				if id == cfg.LLMModel {
					marker = "* "
				}
				fmt.Fprintln(cmd.OutOrStdout(), marker+id)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Ignore pinned and cached model lists and ask the provider")
	return cmd
}
