// Package sink provides the append-only output documents blocks are
// written to.
package sink

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Stdout is the sink name that writes to standard output
const Stdout = "-"

// ErrLocked is returned when another run holds the output file
var ErrLocked = errors.New("output is locked by another run")

// ErrClosed is returned by Write after Close
var ErrClosed = errors.New("sink is closed")

// Sink is one named output document. It is not safe for concurrent use.
type Sink struct {
	name   string
	w      *bufio.Writer
	closer io.Closer
	lock   *flock.Flock
	pos    int64
	blocks int
	closed bool
}

// New wraps w. If w is an io.Closer it is closed by Close.
func New(name string, w io.Writer) *Sink {
	s := &Sink{name: name, w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// Create opens the named file for writing, truncating it. The name "-"
// means standard output, which is flushed but never closed. Files are
// guarded by an advisory lock on name+".lock" for the life of the sink.
func Create(name string) (*Sink, error) {
	if name == Stdout {
		return &Sink{name: name, w: bufio.NewWriter(os.Stdout)}, nil
	}

	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sink: failed to create directory %s: %w", dir, err)
		}
	}

	lock := flock.New(LockPath(name))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("sink: failed to lock %s: %w", name, err)
	}
	if !locked {
		return nil, fmt.Errorf("sink: %s: %w", name, ErrLocked)
	}

	file, err := os.Create(name)
	if err != nil {
		releaseLock(lock)
		return nil, fmt.Errorf("sink: failed to create %s: %w", name, err)
	}

	return &Sink{
		name:   name,
		w:      bufio.NewWriter(file),
		closer: file,
		lock:   lock,
	}, nil
}

// Name returns the sink's name
func (s *Sink) Name() string {
	return s.name
}

// Position is the number of bytes written so far
func (s *Sink) Position() int64 {
	return s.pos
}

// Blocks is the number of successful Write calls
func (s *Sink) Blocks() int {
	return s.blocks
}

// Write appends one complete block
func (s *Sink) Write(text string) error {
	if s.closed {
		return fmt.Errorf("sink: %s: %w", s.name, ErrClosed)
	}
	n, err := s.w.WriteString(text)
	s.pos += int64(n)
	if err != nil {
		return fmt.Errorf("sink: write to %s failed: %w", s.name, err)
	}
	s.blocks++
	return nil
}

// Close flushes and releases the sink. Calling it again is a no-op.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := s.w.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("sink: flush %s failed: %w", s.name, err))
	}
	if s.closer != nil {
		if err := s.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("sink: close %s failed: %w", s.name, err))
		}
	}
	if s.lock != nil {
		releaseLock(s.lock)
	}
	return errors.Join(errs...)
}

// LockPath is the advisory lock file guarding the output name. It is left
// in place after Close; removing it would let two runs lock different inodes.
func LockPath(name string) string {
	return name + ".lock"
}

func releaseLock(lock *flock.Flock) {
	_ = lock.Unlock()
}
