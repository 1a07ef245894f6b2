package cli

import (
	"github.com/spf13/cobra"

	"github.com/hyperifyio/autolink/internal/app"
)

func newWatchCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <note.md>",
		Short: "Link a note now and again every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(opts)
			if err != nil {
				return err
			}
			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return a.Watch(cmd.Context(), args[0])
		},
	}
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 0, "Quiet period after a save before relinking (env WATCH_DEBOUNCE)")
	return cmd
}
