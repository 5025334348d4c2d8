package cmd

import (
	"github.com/bethropolis/dir-bundler/internal/app"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command
func NewListCommand(g *globalFlags) *cobra.Command {
	var (
		f      filterFlags
		output string
		style  string
	)

	cmd := &cobra.Command{
		Use:   "list [root]",
		Short: "Write an indented folder-structure document",
		Long: `Walk root (default ".") with the same skip rules as combine and write
one line per directory ("name/") and file, indented four spaces per level.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			applyRoot(args, cfg)
			f.apply(cmd, cfg)
			if cmd.Flags().Changed("output") {
				cfg.Listing.Output = output
			}
			if cmd.Flags().Changed("style") {
				cfg.Listing.Style = style
			}

			_, err = app.New(cfg, cmd.ErrOrStderr()).List(cmd.Context())
			return err
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, '-' for stdout")
	cmd.Flags().StringVar(&style, "style", "", "Listing style: plain or decorated")

	return cmd
}
