package router

import (
	"strings"

	"github.com/bethropolis/dir-bundler/internal/utils"
	"github.com/bethropolis/dir-bundler/internal/walker"
)

// Router applies one Strategy for the length of a run. Only round-robin
// keeps state: a counter starting at 0.
type Router struct {
	strategy  Strategy
	sinkCount int
	counter   int
}

// New validates strategy against sinkCount
func New(strategy Strategy, sinkCount int) (*Router, error) {
	if err := strategy.Validate(sinkCount); err != nil {
		return nil, err
	}
	return &Router{strategy: strategy, sinkCount: sinkCount}, nil
}

// Route returns the sink index for entry
func (r *Router) Route(entry walker.Entry) int {
	switch r.strategy.kind {
	case KindRoundRobin:
		idx := r.counter % r.strategy.k
		r.counter++
		return idx
	case KindCategory:
		p := utils.NormalizePath(entry.Path)
		for _, rule := range r.strategy.rules {
			if strings.Contains(p, rule.Substring) {
				return rule.Sink
			}
		}
		return r.strategy.defaultSink
	default:
		return 0
	}
}

// Strategy returns the strategy in use
func (r *Router) Strategy() Strategy {
	return r.strategy
}

// SinkCount is the number of sinks the router was validated against
func (r *Router) SinkCount() int {
	return r.sinkCount
}
