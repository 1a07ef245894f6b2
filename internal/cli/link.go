package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/autolink/internal/app"
)

func newLinkCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link <note.md>",
		Short: "Extract keywords from a note and link them in place",
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
			out, err := a.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch {
			case out.Status == app.StatusLinked && cfg.DryRun:
				fmt.Fprint(w, out.Text)
			case out.Status == app.StatusLinked:
				fmt.Fprintf(w, "Linked %d new keyword(s)\n", out.Linked)
			case out.Status == app.StatusNoKeywords:
				fmt.Fprintln(w, "No keywords found")
			case out.Status == app.StatusNoNewLinks:
				fmt.Fprintln(w, "No new keywords linked")
			case out.Status == app.StatusCancelled:
				fmt.Fprintln(w, "Cancelled; note left unchanged")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the linked note instead of writing it (env DRY_RUN)")
	return cmd
}
