// Package summary handles display of run results and diagnostics
package summary

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bethropolis/dir-bundler/internal/aggregate"
	"github.com/bethropolis/dir-bundler/internal/render"
	"github.com/bethropolis/dir-bundler/internal/walker"
	"github.com/fatih/color"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// Notices returns an observer that reports every missing or unreadable
// file as soon as it is written.
func Notices(logger Logger) aggregate.Observer {
	return aggregate.ObserverFunc(func(rec aggregate.Record) {
		switch rec.Outcome {
		case render.OutcomeNotFound:
			logger.Warn("File not found: %s", rec.Path)
		case render.OutcomeReadError:
			logger.Warn("Error reading %s: %v", rec.Path, rec.Err)
		}
	})
}

// DisplayResults logs the totals of a combine run
func DisplayResults(logger Logger, report aggregate.Report, outputs []string, quiet bool) {
	if quiet {
		return
	}
	logger.Info("Processed %d files: %d written, %d not found, %d unreadable.",
		len(report.Records), report.Written, report.NotFound, report.ReadErrors)
	for i, n := range report.SinkBlocks {
		name := fmt.Sprintf("#%d", i)
		if i < len(outputs) {
			name = outputs[i]
		}
		logger.Info("  %s: %d blocks", name, n)
	}
	logger.Info("Run complete in %v.", report.Duration.Round(time.Millisecond))
}

// DisplayProblems prints one line per missing or unreadable file
func DisplayProblems(output io.Writer, problems []aggregate.Record, useColors bool) {
	if len(problems) == 0 {
		return
	}
	tag := color.New(color.FgYellow)
	if !useColors {
		tag.DisableColor()
	}
	for _, rec := range problems {
		label := "MISSING"
		detail := ""
		if rec.Outcome == render.OutcomeReadError {
			label = "ERROR  "
			detail = fmt.Sprintf(" (%v)", rec.Err)
		}
		fmt.Fprintf(output, "%s %s%s\n", tag.Sprint(label), rec.Path, detail)
	}
}

// DisplaySkippedItems formats and prints information about skipped items
func DisplaySkippedItems(
	logger Logger,
	skippedItems []walker.SkippedItem,
	output io.Writer,
	quiet bool,
) {
	infoLog := func(format string, args ...interface{}) {
		if !quiet {
			logger.Info(format, args...)
		}
	}

	infoLog("--- Skipped Items (%d) ---", len(skippedItems))
	if len(skippedItems) > 0 {
		sort.Slice(skippedItems, func(i, j int) bool {
			return skippedItems[i].Path < skippedItems[j].Path
		})
		for _, item := range skippedItems {
			typeStr := "FILE"
			if item.IsDir {
				typeStr = "DIR " // Add space for alignment
			}
			fmt.Fprintf(output, "Skipped %s: %-.*s [%s]\n",
				typeStr,
				50, // Max width for path column
				item.Path,
				item.Reason,
			)
		}
	} else {
		infoLog("No items were skipped.")
	}
	infoLog("--- End Skipped Items ---")
}
