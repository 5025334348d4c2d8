// Package setup builds the scan pipeline components from a Config
package setup

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/bethropolis/dir-bundler/internal/config"
	"github.com/bethropolis/dir-bundler/internal/ignore"
	"github.com/bethropolis/dir-bundler/internal/render"
	"github.com/bethropolis/dir-bundler/internal/router"
	"github.com/bethropolis/dir-bundler/internal/utils"
	"github.com/bethropolis/dir-bundler/internal/walker"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// Pipeline is everything combine needs except the sinks
type Pipeline struct {
	// Walker is nil in explicit-list mode
	Walker   *walker.Walker
	Entries  iter.Seq[walker.Entry]
	Renderer *render.Renderer
	Router   *router.Router
}

// ConfigureWalker sets up the matcher and walker for cfg.Root. It fails
// with walker.ErrPathNotFound before anything is opened if the root is
// missing.
func ConfigureWalker(cfg *config.Config, log utils.Logger, infoLog InfoLogger, progress io.Writer) (*walker.Walker, error) {
	if len(cfg.SkipFolders) > 0 {
		infoLog("Skipping folders matching: %v", cfg.SkipFolders)
	}
	if len(cfg.SkipFiles) > 0 {
		infoLog("Skipping %d file names.", len(cfg.SkipFiles))
	}
	if len(cfg.ExcludePaths) > 0 {
		infoLog("Excluding files under: %v", cfg.ExcludePaths)
	}
	if len(cfg.Extensions) > 0 {
		infoLog("Filtering enabled. Only including extensions: %s", strings.Join(cfg.Extensions, ", "))
	}
	if cfg.IgnoreHidden {
		infoLog("Ignoring hidden files/directories (starting with '.').")
	}
	if cfg.RespectGitignore {
		infoLog("Applying .gitignore rules.")
	}
	if len(cfg.CustomIgnore) > 0 {
		infoLog("Using custom ignore patterns: %v", cfg.CustomIgnore)
	}

	matcher, err := ignore.NewFromRules(cfg.Root, cfg.Rules(), log)
	if err != nil {
		return nil, fmt.Errorf("error initializing ignore rules: %w", err)
	}

	opts := []walker.Option{
		walker.WithLogger(log),
		walker.WithMaxDepth(cfg.MaxDepth),
	}
	if cfg.ShowProgress && progress != nil {
		log.Debug("Progress display enabled")
		opts = append(opts, walker.WithProgress(progressPrinter(progress)))
	}

	return walker.New(cfg.Root, matcher, opts...)
}

// ConfigurePipeline builds the entry source, renderer and router for a
// combine run.
func ConfigurePipeline(cfg *config.Config, log utils.Logger, infoLog InfoLogger, progress io.Writer) (*Pipeline, error) {
	p := &Pipeline{}

	if cfg.ExplicitList() {
		infoLog("Using explicit list of %d paths under %s.", len(cfg.Paths), cfg.Root)
		p.Entries = walker.List(cfg.Root, cfg.Paths)
	} else {
		w, err := ConfigureWalker(cfg, log, infoLog, progress)
		if err != nil {
			return nil, err
		}
		p.Walker = w
		p.Entries = w.Files()
	}

	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	renderOpts := []render.Option{render.WithFormat(format), render.WithLogger(log)}
	if cfg.MaxFileSizeMB > 0 {
		infoLog("Files larger than %d MB are reported as read errors.", cfg.MaxFileSizeMB)
		renderOpts = append(renderOpts, render.WithMaxFileSize(cfg.MaxFileSizeBytes()))
	}
	p.Renderer = render.New(renderOpts...)

	strategy, err := cfg.RoutingStrategy()
	if err != nil {
		return nil, err
	}
	p.Router, err = router.New(strategy, len(cfg.Outputs))
	if err != nil {
		return nil, err
	}
	infoLog("Routing %s over %d output(s).", strategy, len(cfg.Outputs))

	return p, nil
}

func progressPrinter(out io.Writer) walker.ProgressCallback {
	return func(stats walker.ProgressStats) {
		path := stats.CurrentFilePath
		if len(path) > 40 {
			path = "..." + path[len(path)-37:]
		}
		fmt.Fprintf(out, "\rProcessing: %-40s | Files: %d | Skipped: %d | Dirs: %d",
			path, stats.YieldedFiles, stats.SkippedFiles, stats.TotalDirs)
	}
}
