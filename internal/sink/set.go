package sink

import (
	"errors"
	"fmt"
)

// Set is the ordered group of sinks for one run; index i is the sink the
// router's index i refers to.
type Set struct {
	sinks []*Sink
}

// NewSet groups already opened sinks
func NewSet(sinks ...*Sink) *Set {
	return &Set{sinks: sinks}
}

// OpenAll creates one sink per name. If any fails, the ones already opened
// are closed again and the error is returned.
func OpenAll(names []string) (*Set, error) {
	if len(names) == 0 {
		return nil, errors.New("sink: no outputs configured")
	}
	seen := make(map[string]struct{}, len(names))
	set := &Set{}
	for _, name := range names {
		if _, dup := seen[name]; dup {
			set.Close()
			return nil, fmt.Errorf("sink: output %q listed twice", name)
		}
		seen[name] = struct{}{}

		s, err := Create(name)
		if err != nil {
			set.Close()
			return nil, err
		}
		set.sinks = append(set.sinks, s)
	}
	return set, nil
}

// Len is the number of sinks
func (s *Set) Len() int {
	return len(s.sinks)
}

// Get returns sink i
func (s *Set) Get(i int) *Sink {
	return s.sinks[i]
}

// Sinks returns the sinks in index order
func (s *Set) Sinks() []*Sink {
	return s.sinks
}

// Close closes every sink and joins their errors
func (s *Set) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, sk := range s.sinks {
		if err := sk.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
