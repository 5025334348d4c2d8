package cmd

import (
	"fmt"
	"time"

	"github.com/bethropolis/dir-bundler/internal/app"
	"github.com/bethropolis/dir-bundler/internal/config"
	"github.com/bethropolis/dir-bundler/internal/router"
	"github.com/spf13/cobra"
)

type combineFlags struct {
	filterFlags
	outputs     []string
	paths       []string
	strategy    string
	roundRobin  int
	routes      []string
	defaultSink int
	format      string
	maxSizeMB   int64
	timeout     string
	progress    bool
	check       bool
}

// NewCombineCommand creates the combine command
func NewCombineCommand(g *globalFlags) *cobra.Command {
	f := &combineFlags{}

	cmd := &cobra.Command{
		Use:   "combine [root]",
		Short: "Concatenate selected files into one or more output documents",
		Long: `Walk root (default ".") and write every selected file as a delimited
block. With --path (or paths: in the config file) the given files are used
verbatim instead of a walk, and missing ones become placeholder blocks.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			applyRoot(args, cfg)
			if err := f.apply(cmd, cfg); err != nil {
				return err
			}

			a := app.New(cfg, cmd.ErrOrStderr())
			if f.check {
				_, err = a.Check(cmd.Context())
				return err
			}
			_, err = a.Combine(cmd.Context())
			return err
		},
	}

	f.register(cmd)
	fl := cmd.Flags()
	fl.StringSliceVarP(&f.outputs, "output", "o", nil, "Output file, '-' for stdout (repeatable; order gives the sink index)")
	fl.StringSliceVarP(&f.paths, "path", "p", nil, "Explicit file to include, relative to root (repeatable)")
	fl.StringVarP(&f.strategy, "strategy", "s", "", "Routing strategy: single, round-robin or category")
	fl.IntVar(&f.roundRobin, "round-robin", 0, "Number of outputs to alternate between (0 = all)")
	fl.StringArrayVar(&f.routes, "route", nil, "Category rule substring=index, first match wins (repeatable)")
	fl.IntVar(&f.defaultSink, "default-sink", 0, "Output index for paths no --route matches")
	fl.StringVar(&f.format, "format", "", "Block format: text or markdown")
	fl.Int64Var(&f.maxSizeMB, "max-size", 0, "Report files larger than this many MB as read errors (0 = no limit)")
	fl.StringVar(&f.timeout, "timeout", "", "Maximum execution time (e.g., '30s', '5m')")
	fl.BoolVar(&f.progress, "progress", false, "Show progress information")
	fl.BoolVar(&f.check, "check", false, "Compare the outputs on disk with a fresh run instead of writing them")

	return cmd
}

func (f *combineFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	f.filterFlags.apply(cmd, cfg)

	fl := cmd.Flags()
	if fl.Changed("output") {
		cfg.Outputs = f.outputs
	}
	if fl.Changed("path") {
		cfg.Paths = f.paths
	}
	if fl.Changed("strategy") {
		cfg.Strategy.Type = f.strategy
	}
	if fl.Changed("round-robin") {
		cfg.Strategy.Sinks = f.roundRobin
		if !fl.Changed("strategy") {
			cfg.Strategy.Type = "round-robin"
		}
	}
	if fl.Changed("route") {
		rules := make([]router.Rule, 0, len(f.routes))
		for _, r := range f.routes {
			rule, err := router.ParseRule(r)
			if err != nil {
				return err
			}
			rules = append(rules, rule)
		}
		cfg.Strategy.Rules = rules
		if !fl.Changed("strategy") {
			cfg.Strategy.Type = "category"
		}
	}
	if fl.Changed("default-sink") {
		cfg.Strategy.Default = f.defaultSink
	}
	if fl.Changed("format") {
		cfg.Format = f.format
	}
	if fl.Changed("max-size") {
		cfg.MaxFileSizeMB = f.maxSizeMB
	}
	if fl.Changed("timeout") {
		d, err := time.ParseDuration(f.timeout)
		if err != nil {
			return fmt.Errorf("invalid --timeout %q: %w", f.timeout, err)
		}
		cfg.Timeout = d
	}
	if fl.Changed("progress") {
		cfg.ShowProgress = f.progress
	}
	return nil
}
