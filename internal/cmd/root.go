// Package cmd wires the bundler's cobra commands
package cmd

import (
	"github.com/bethropolis/dir-bundler/internal/config"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = config.Version

// globalFlags are shared by every subcommand
type globalFlags struct {
	configFile string
	verbose    bool
	quiet      bool
	logLevel   string
	noColor    bool
}

// NewRootCommand creates and returns the root cobra command
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "dir-bundler",
		Short: "Bundle a project's source files into delimited text documents",
		Long: `dir-bundler scans a project tree, selects files with skip-folder and
skip-file rules, and concatenates their contents into one or more output
documents. Each file becomes a block headed by a rule of 40 '=' characters
and its path. Blocks can go to a single output, alternate round-robin
between outputs, or be routed to an output by path substring.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.configFile, "config", "c", "", "YAML configuration file")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "Suppress INFO messages (only show WARN, ERROR)")
	pf.StringVar(&g.logLevel, "log-level", "", "Set the logging level (DEBUG, INFO, WARN, ERROR)")
	pf.BoolVar(&g.noColor, "no-color", false, "Disable color output")

	cmd.AddCommand(NewCombineCommand(g))
	cmd.AddCommand(NewListCommand(g))
	cmd.AddCommand(NewAnnotateCommand(g))

	return cmd
}

// load reads the config file and applies the global flags
func (g *globalFlags) load() (*config.Config, error) {
	cfg, err := config.Load(g.configFile)
	if err != nil {
		return nil, err
	}
	cfg.Verbose = g.verbose
	cfg.Quiet = g.quiet
	cfg.LogLevel = g.logLevel
	cfg.NoColor = g.noColor
	cfg.DetectColors()
	return cfg, nil
}
