// Package app runs one bundler mode from a Config
package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/bethropolis/dir-bundler/internal/aggregate"
	"github.com/bethropolis/dir-bundler/internal/annotate"
	"github.com/bethropolis/dir-bundler/internal/config"
	"github.com/bethropolis/dir-bundler/internal/drift"
	"github.com/bethropolis/dir-bundler/internal/listing"
	"github.com/bethropolis/dir-bundler/internal/logger"
	"github.com/bethropolis/dir-bundler/internal/setup"
	"github.com/bethropolis/dir-bundler/internal/sink"
	"github.com/bethropolis/dir-bundler/internal/summary"
	"github.com/bethropolis/dir-bundler/internal/walker"
	"github.com/fatih/color"
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	stderr io.Writer
}

// New creates an App logging to stderr
func New(cfg *config.Config, stderr io.Writer) *App {
	color.NoColor = !cfg.UseColors

	log := logger.New(stderr, cfg.Verbose, cfg.UseColors)
	switch {
	case cfg.LogLevel != "":
		log.SetLevel(cfg.LogLevel)
	case cfg.Quiet:
		log.WithLevel(logger.LevelWarn)
	}

	return &App{cfg: cfg, log: log, stderr: stderr}
}

// Logger exposes the app's logger
func (a *App) Logger() *logger.Logger {
	return a.log
}

func (a *App) infoLog(format string, args ...interface{}) {
	if !a.cfg.Quiet {
		a.log.Info(format, args...)
	}
}

func (a *App) context(parent context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.Timeout > 0 {
		return context.WithTimeout(parent, a.cfg.Timeout)
	}
	return context.WithCancel(parent)
}

func (a *App) progressOut() io.Writer {
	if a.cfg.Quiet {
		return nil
	}
	return a.stderr
}

// Combine walks (or lists) the configured files and writes them to the
// configured outputs.
func (a *App) Combine(parent context.Context) (aggregate.Report, error) {
	if err := a.cfg.Validate(); err != nil {
		return aggregate.Report{}, err
	}
	a.log.Debug("Config: root=%s outputs=%v strategy=%s format=%s",
		a.cfg.Root, a.cfg.Outputs, a.cfg.Strategy.Type, a.cfg.Format)

	pipeline, err := setup.ConfigurePipeline(a.cfg, a.log, a.infoLog, a.progressOut())
	if err != nil {
		return aggregate.Report{}, err
	}

	sinks, err := sink.OpenAll(a.cfg.Outputs)
	if err != nil {
		return aggregate.Report{}, err
	}

	ctx, cancel := a.context(parent)
	defer cancel()

	a.infoLog("Scanning: %s", a.cfg.Root)
	report, runErr := aggregate.Run(ctx, pipeline.Entries, pipeline.Renderer, pipeline.Router, sinks,
		summary.Notices(a.log), aggregate.WithLogger(a.log))
	if a.cfg.ShowProgress && !a.cfg.Quiet {
		fmt.Fprintln(a.stderr)
	}
	if runErr != nil {
		a.log.Error("Run aborted after %d files: %v", len(report.Records), runErr)
		return report, runErr
	}

	summary.DisplayResults(a.log, report, a.cfg.Outputs, a.cfg.Quiet)
	summary.DisplayProblems(a.stderr, report.Problems(), a.cfg.UseColors)
	if a.cfg.ShowSkipped && pipeline.Walker != nil {
		summary.DisplaySkippedItems(a.log, pipeline.Walker.Skipped(), a.stderr, a.cfg.Quiet)
	}
	return report, nil
}

// Check renders the configured outputs in memory and compares them with
// the files on disk. Nothing is written. It returns drift.ErrStale when any
// output differs.
func (a *App) Check(parent context.Context) ([]drift.Result, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	if slices.Contains(a.cfg.Outputs, sink.Stdout) {
		return nil, fmt.Errorf("check needs file outputs, not %q", sink.Stdout)
	}

	pipeline, err := setup.ConfigurePipeline(a.cfg, a.log, a.infoLog, nil)
	if err != nil {
		return nil, err
	}

	bufs := make([]*bytes.Buffer, len(a.cfg.Outputs))
	sinks := make([]*sink.Sink, len(a.cfg.Outputs))
	for i, name := range a.cfg.Outputs {
		bufs[i] = new(bytes.Buffer)
		sinks[i] = sink.New(name, bufs[i])
	}

	ctx, cancel := a.context(parent)
	defer cancel()

	if _, err := aggregate.Run(ctx, pipeline.Entries, pipeline.Renderer, pipeline.Router,
		sink.NewSet(sinks...), nil, aggregate.WithLogger(a.log)); err != nil {
		return nil, err
	}

	results := make([]drift.Result, 0, len(bufs))
	stale := 0
	for i, name := range a.cfg.Outputs {
		res, err := drift.Compare(name, bufs[i].String())
		if err != nil {
			return results, err
		}
		if res.Stale() {
			stale++
		}
		results = append(results, res)
	}

	drift.Print(a.stderr, results, a.cfg.UseColors)
	if stale > 0 {
		return results, fmt.Errorf("%d of %d outputs: %w", stale, len(results), drift.ErrStale)
	}
	a.infoLog("All %d outputs are up to date.", len(results))
	return results, nil
}

// List writes the folder-structure document to cfg.Listing.Output
func (a *App) List(parent context.Context) (listing.Stats, error) {
	if err := a.cfg.Validate(); err != nil {
		return listing.Stats{}, err
	}
	style, err := listing.ParseStyle(a.cfg.Listing.Style)
	if err != nil {
		return listing.Stats{}, err
	}

	w, err := setup.ConfigureWalker(a.cfg, a.log, a.infoLog, nil)
	if err != nil {
		return listing.Stats{}, err
	}

	out, err := sink.Create(a.cfg.Listing.Output)
	if err != nil {
		return listing.Stats{}, err
	}

	ctx, cancel := a.context(parent)
	defer cancel()

	stats, err := listing.Write(out, stopOnDone(ctx, w.All()), style)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return stats, fmt.Errorf("listing %s: %w", a.cfg.Root, err)
	}

	a.infoLog("Wrote %d directories and %d files to %s.", stats.Dirs, stats.Files, a.cfg.Listing.Output)
	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, w.Skipped(), a.stderr, a.cfg.Quiet)
	}
	return stats, nil
}

// Annotate prepends path headers to the explicit path list. Files are only
// rewritten when apply is true.
func (a *App) Annotate(apply bool) ([]annotate.Result, error) {
	if !a.cfg.ExplicitList() {
		return nil, fmt.Errorf("annotate needs an explicit path list (--path or paths: in the config file)")
	}
	if !apply {
		a.log.Warn("Dry run: no files will be modified. Pass --force to rewrite files in place.")
	}

	results := annotate.Run(walker.List(a.cfg.Root, a.cfg.Paths), apply, a.log)
	counts := map[annotate.Status]int{}
	for _, r := range results {
		counts[r.Status]++
		if r.Status == annotate.StatusPending {
			a.infoLog("Would annotate %s", r.Path)
		}
	}
	a.infoLog("Annotated: %d, pending: %d, already present: %d, missing: %d, failed: %d",
		counts[annotate.StatusAnnotated], counts[annotate.StatusPending], counts[annotate.StatusPresent],
		counts[annotate.StatusMissing], counts[annotate.StatusFailed])

	if counts[annotate.StatusFailed] > 0 {
		return results, fmt.Errorf("annotate: %d files could not be rewritten", counts[annotate.StatusFailed])
	}
	return results, nil
}
