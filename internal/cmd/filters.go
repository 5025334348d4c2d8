package cmd

import (
	"github.com/bethropolis/dir-bundler/internal/config"
	"github.com/spf13/cobra"
)

// filterFlags are the selection options shared by combine and list
type filterFlags struct {
	skipFolders  []string
	skipFiles    []string
	excludePaths []string
	ignore       []string
	extensions   []string
	hidden       bool
	gitDir       bool
	gitignore    bool
	maxDepth     int
	showSkipped  bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringSliceVar(&f.skipFolders, "skip-folder", nil, "Skip directories whose path contains this string (repeatable)")
	fl.StringSliceVar(&f.skipFiles, "skip-file", nil, "Skip files with exactly this name (repeatable)")
	fl.StringSliceVar(&f.excludePaths, "exclude-path", nil, "Skip files beneath this directory path, e.g. components/ui (repeatable)")
	fl.StringSliceVar(&f.ignore, "ignore", nil, "Extra ignore patterns in gitignore syntax (repeatable)")
	fl.StringSliceVar(&f.extensions, "ext", nil, "Only include files with these extensions (comma-separated, e.g., 'go,md,txt')")
	fl.BoolVar(&f.hidden, "hidden", false, "Ignore hidden files/directories (starting with '.')")
	fl.BoolVar(&f.gitDir, "git", false, "Ignore .git directories")
	fl.BoolVar(&f.gitignore, "gitignore", false, "Apply .gitignore files found in the tree")
	fl.IntVar(&f.maxDepth, "max-depth", 0, "Do not descend below this depth (0 = unlimited)")
	fl.BoolVar(&f.showSkipped, "show-skipped", false, "Show a list of skipped files/directories and reasons at the end")
}

// apply overrides cfg with every flag the user actually set
func (f *filterFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()
	if fl.Changed("skip-folder") {
		cfg.SkipFolders = f.skipFolders
	}
	if fl.Changed("skip-file") {
		cfg.SkipFiles = f.skipFiles
	}
	if fl.Changed("exclude-path") {
		cfg.ExcludePaths = f.excludePaths
	}
	if fl.Changed("ignore") {
		cfg.CustomIgnore = f.ignore
	}
	if fl.Changed("ext") {
		cfg.Extensions = f.extensions
	}
	if fl.Changed("hidden") {
		cfg.IgnoreHidden = f.hidden
	}
	if fl.Changed("git") {
		cfg.IgnoreGit = f.gitDir
	}
	if fl.Changed("gitignore") {
		cfg.RespectGitignore = f.gitignore
	}
	if fl.Changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if fl.Changed("show-skipped") {
		cfg.ShowSkipped = f.showSkipped
	}
}

func applyRoot(args []string, cfg *config.Config) {
	if len(args) > 0 {
		cfg.Root = args[0]
	}
}
