// Package aggregate drives a walk through rendering and routing into the
// output sinks.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/bethropolis/dir-bundler/internal/render"
	"github.com/bethropolis/dir-bundler/internal/sink"
	"github.com/bethropolis/dir-bundler/internal/utils"
	"github.com/bethropolis/dir-bundler/internal/walker"
	"github.com/google/uuid"
)

// ErrSinkWrite marks a run aborted because an output could not be written
var ErrSinkWrite = errors.New("sink write failed")

// Renderer builds the block for one entry
type Renderer interface {
	Render(entry walker.Entry) render.Block
}

// Router picks the sink index for one entry
type Router interface {
	Route(entry walker.Entry) int
}

// Record is the outcome for one entry
type Record struct {
	Path    string
	Sink    int
	Outcome render.Outcome
	Err     error
}

// Observer is told about every record as soon as its block is written
type Observer interface {
	Observe(rec Record)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(rec Record)

func (f ObserverFunc) Observe(rec Record) { f(rec) }

// Report summarizes a run
type Report struct {
	RunID      string
	Records    []Record
	Written    int
	NotFound   int
	ReadErrors int
	SinkBlocks []int
	Duration   time.Duration
}

// Problems returns the NotFound and ReadError records in order
func (r Report) Problems() []Record {
	var out []Record
	for _, rec := range r.Records {
		if rec.Outcome != render.OutcomeWritten {
			out = append(out, rec)
		}
	}
	return out
}

func (r *Report) add(rec Record) {
	r.Records = append(r.Records, rec)
	r.SinkBlocks[rec.Sink]++
	switch rec.Outcome {
	case render.OutcomeWritten:
		r.Written++
	case render.OutcomeNotFound:
		r.NotFound++
	case render.OutcomeReadError:
		r.ReadErrors++
	}
}

type options struct {
	logger utils.Logger
	clock  func() time.Time
}

// Option configures Run
type Option func(*options)

func WithLogger(logger utils.Logger) Option {
	return func(o *options) {
		o.logger = utils.OrNoop(logger)
	}
}

// Run renders every entry, routes it and appends it to the chosen sink, in
// order. Missing and unreadable files are recorded and do not stop the run;
// a failed sink write or a cancelled ctx does. sinks is closed before Run
// returns on every path, and close failures are joined into the error.
func Run(
	ctx context.Context,
	entries iter.Seq[walker.Entry],
	renderer Renderer,
	router Router,
	sinks *sink.Set,
	observer Observer,
	opts ...Option,
) (report Report, err error) {
	o := options{logger: utils.NoopLogger{}, clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	start := o.clock()
	report.RunID = uuid.New().String()
	report.SinkBlocks = make([]int, sinks.Len())

	defer func() {
		if closeErr := sinks.Close(); closeErr != nil {
			o.logger.Error("aggregate: closing outputs: %v", closeErr)
			err = errors.Join(err, fmt.Errorf("aggregate: %w: %w", ErrSinkWrite, closeErr))
		}
		report.Duration = o.clock().Sub(start)
	}()

	o.logger.Debug("aggregate: run %s started with %d outputs", report.RunID, sinks.Len())
	for entry := range entries {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, fmt.Errorf("aggregate: run stopped: %w", ctxErr)
		}

		block := renderer.Render(entry)
		idx := router.Route(entry)
		if idx < 0 || idx >= sinks.Len() {
			return report, fmt.Errorf("aggregate: router chose sink %d for %q, only %d configured", idx, block.Path, sinks.Len())
		}

		out := sinks.Get(idx)
		if writeErr := out.Write(block.String()); writeErr != nil {
			o.logger.Error("aggregate: writing %q to %s: %v", block.Path, out.Name(), writeErr)
			return report, fmt.Errorf("aggregate: %w: %s: %w", ErrSinkWrite, out.Name(), writeErr)
		}
		o.logger.Debug("aggregate: %s -> %s (%s)", block.Path, out.Name(), block.Outcome)

		rec := Record{Path: block.Path, Sink: idx, Outcome: block.Outcome, Err: block.Err}
		report.add(rec)
		if observer != nil {
			observer.Observe(rec)
		}
	}
	return report, nil
}
