package cmd

import (
	"github.com/bethropolis/dir-bundler/internal/app"
	"github.com/spf13/cobra"
)

// NewAnnotateCommand creates the annotate command
func NewAnnotateCommand(g *globalFlags) *cobra.Command {
	var (
		paths []string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "annotate [root]",
		Short: "Prepend a '// path' header line to each listed file",
		Long: `Rewrite every file of the explicit path list (--path or paths: in the
config file) so it starts with "// <path>" followed by a blank line. Files
that already carry the header are left alone. Without --force nothing is
written and the command only reports what it would change.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			applyRoot(args, cfg)
			if cmd.Flags().Changed("path") {
				cfg.Paths = paths
			}

			_, err = app.New(cfg, cmd.ErrOrStderr()).Annotate(force)
			return err
		},
	}

	cmd.Flags().StringSliceVarP(&paths, "path", "p", nil, "File to annotate, relative to root (repeatable)")
	cmd.Flags().BoolVar(&force, "force", false, "Rewrite the files in place")

	return cmd
}
