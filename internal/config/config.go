// Package config holds the bundler's configuration bundle: skip rules,
// outputs, routing strategy and logging settings. Values come from
// Default, an optional YAML file, and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/bethropolis/dir-bundler/internal/ignore"
	"github.com/bethropolis/dir-bundler/internal/listing"
	"github.com/bethropolis/dir-bundler/internal/render"
	"github.com/bethropolis/dir-bundler/internal/router"
	"github.com/bethropolis/dir-bundler/internal/sink"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// Version is reported by --version
const Version = "1.0.0"

// StrategyConfig selects the routing strategy
type StrategyConfig struct {
	// Type is single, round-robin or category
	Type string `yaml:"type"`

	// Sinks is k for round-robin (0 = every output)
	Sinks int `yaml:"sinks"`

	// Rules are the ordered substring rules for category routing
	Rules []router.Rule `yaml:"rules"`

	// Default is the sink for paths no category rule matches
	Default int `yaml:"default"`
}

// ListingConfig configures the folder-structure mode
type ListingConfig struct {
	Output string `yaml:"output"`
	Style  string `yaml:"style"`
}

// Config holds all application configuration settings
type Config struct {
	// Root is the directory to scan, and the base for Paths
	Root string `yaml:"root"`

	// Paths switches combine to the explicit-list variant
	Paths []string `yaml:"paths"`

	// Filtering
	SkipFolders      []string `yaml:"skip_folders"`
	SkipFiles        []string `yaml:"skip_files"`
	ExcludePaths     []string `yaml:"exclude_paths"`
	IgnoreHidden     bool     `yaml:"ignore_hidden"`
	IgnoreGit        bool     `yaml:"ignore_git"`
	RespectGitignore bool     `yaml:"gitignore"`
	CustomIgnore     []string `yaml:"ignore"`
	Extensions       []string `yaml:"extensions"`
	MaxDepth         int      `yaml:"max_depth"`

	// Output
	Outputs       []string       `yaml:"outputs"`
	Strategy      StrategyConfig `yaml:"strategy"`
	Format        string         `yaml:"format"`
	MaxFileSizeMB int64          `yaml:"max_file_size_mb"`
	Listing       ListingConfig  `yaml:"listing"`

	// Processing
	Timeout      time.Duration `yaml:"timeout"`
	ShowSkipped  bool          `yaml:"show_skipped"`
	ShowProgress bool          `yaml:"progress"`

	// Logging, command line only
	Verbose   bool   `yaml:"-"`
	Quiet     bool   `yaml:"-"`
	LogLevel  string `yaml:"-"`
	NoColor   bool   `yaml:"-"`
	UseColors bool   `yaml:"-"`
}

// Default returns the configuration used when nothing else is given
func Default() *Config {
	return &Config{
		Root:        ".",
		SkipFolders: []string{"node_modules", ".next", ".git"},
		Outputs:     []string{"combined_files.txt"},
		Strategy:    StrategyConfig{Type: "single"},
		Format:      "text",
		Listing: ListingConfig{
			Output: "folder_structure.txt",
			Style:  "plain",
		},
	}
}

// Load reads a YAML file over Default. Keys missing from the file keep
// their default value; lists in the file replace the default lists.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	var errs []error
	if c.Root == "" {
		errs = append(errs, errors.New("root must not be empty"))
	}
	if len(c.Outputs) == 0 {
		errs = append(errs, errors.New("at least one output is required"))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must be >= 0, got %d", c.MaxDepth))
	}
	if c.MaxFileSizeMB < 0 {
		errs = append(errs, fmt.Errorf("max_file_size_mb must be >= 0, got %d", c.MaxFileSizeMB))
	}
	if _, err := render.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := listing.ParseStyle(c.Listing.Style); err != nil {
		errs = append(errs, err)
	}
	if s, err := c.RoutingStrategy(); err != nil {
		errs = append(errs, err)
	} else if len(c.Outputs) > 0 {
		if err := s.Validate(len(c.Outputs)); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// RoutingStrategy builds the router strategy
func (c *Config) RoutingStrategy() (router.Strategy, error) {
	k := c.Strategy.Sinks
	if k == 0 {
		k = len(c.Outputs)
	}
	return router.Parse(c.Strategy.Type, k, c.Strategy.Rules, c.Strategy.Default)
}

// Rules returns the filter rule set
func (c *Config) Rules() ignore.Rules {
	return ignore.Rules{
		SkipFolders:      c.SkipFolders,
		SkipFiles:        c.SkipFiles,
		ExcludePaths:     c.ExcludePaths,
		IgnoreHidden:     c.IgnoreHidden,
		IgnoreGit:        c.IgnoreGit,
		RespectGitignore: c.RespectGitignore,
		CustomPatterns:   c.CustomIgnore,
		Extensions:       c.Extensions,
		ExcludeFiles:     c.OutputFiles(),
	}
}

// OutputFiles lists every file a run writes, lock files included, so a
// walk never picks up its own output
func (c *Config) OutputFiles() []string {
	var files []string
	for _, name := range append(slices.Clone(c.Outputs), c.Listing.Output) {
		if name == "" || name == sink.Stdout {
			continue
		}
		files = append(files, name, sink.LockPath(name))
	}
	return files
}

// MaxFileSizeBytes converts MaxFileSizeMB
func (c *Config) MaxFileSizeBytes() int64 {
	return c.MaxFileSizeMB * 1024 * 1024
}

// ExplicitList reports whether combine should use Paths instead of a walk
func (c *Config) ExplicitList() bool {
	return len(c.Paths) > 0
}

// DetectColors enables colors only for an interactive stderr
func (c *Config) DetectColors() {
	fd := os.Stderr.Fd()
	c.UseColors = !c.NoColor && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}
