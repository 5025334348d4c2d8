// Package walker turns a directory tree into an ordered, lazy sequence of
// entries.
//
// The walk is depth-first and parent-before-children: a directory, then the
// files directly inside it, then each of its subdirectories in turn. Entries
// within one directory come in the order os.ReadDir returns them, which is
// sorted by file name. Callers must not assume any other platform order.
package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"

	"github.com/bethropolis/dir-bundler/internal/ignore"
)

// Walker walks one root with one rule set. Its sequences may be ranged over
// any number of times; each pass re-reads the file system.
type Walker struct {
	root    string
	matcher *ignore.Matcher
	options WalkOptions
	tracker *SkippedTracker
	stats   ProgressStats
}

// New validates rootDir and prepares a walk over it. It fails with an error
// wrapping ErrPathNotFound if rootDir does not exist or is not a directory.
func New(rootDir string, matcher *ignore.Matcher, opts ...Option) (*Walker, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: failed to get absolute path for '%s': %w", rootDir, err)
	}

	info, err := os.Stat(absRootDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("walker: root directory '%s': %w", absRootDir, ErrPathNotFound)
		}
		return nil, fmt.Errorf("walker: could not access root directory '%s': %w (%v)", absRootDir, ErrPathNotFound, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("walker: '%s' is not a directory: %w", absRootDir, ErrPathNotFound)
	}

	return &Walker{
		root:    absRootDir,
		matcher: matcher,
		options: options,
		tracker: NewSkippedTracker(64),
	}, nil
}

// Root returns the absolute scan root
func (w *Walker) Root() string {
	return w.root
}

// Files yields every selected file
func (w *Walker) Files() iter.Seq[Entry] {
	return w.seq(false)
}

// All yields every visited directory, the root included, and every selected
// file. Used by the folder-structure listing.
func (w *Walker) All() iter.Seq[Entry] {
	return w.seq(true)
}

// Skipped returns what the most recent pass left out
func (w *Walker) Skipped() []SkippedItem {
	return w.tracker.Items()
}

func (w *Walker) seq(withDirs bool) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		w.tracker.reset()
		w.stats = ProgressStats{}
		w.options.Logger.Debug("walker: starting walk of %s (dirs: %v)", w.root, withDirs)

		root := Entry{
			Path:    "",
			AbsPath: w.root,
			Name:    filepath.Base(w.root),
			Depth:   0,
			IsDir:   true,
		}
		w.walkDir(root, withDirs, yield)
	}
}

// walkDir returns false once the consumer stops pulling.
func (w *Walker) walkDir(dir Entry, withDirs bool, yield func(Entry) bool) bool {
	w.stats.TotalDirs++
	if withDirs && !yield(dir) {
		return false
	}

	if w.options.MaxDepth > 0 && dir.Depth >= w.options.MaxDepth {
		w.options.Logger.Debug("walker: not reading %q, max depth %d reached", dir.Path, w.options.MaxDepth)
		w.tracker.Track(dir.Path, ReasonSkippedMaxDepth, true)
		return true
	}

	dirEntries, err := os.ReadDir(dir.AbsPath)
	if err != nil {
		reason := ReasonSkippedWalkError
		if os.IsPermission(err) {
			reason = ReasonSkippedPermError
		}
		w.options.Logger.Warn("walker: cannot read directory %q: %v", displayPath(dir.Path), err)
		w.tracker.Track(dir.Path, reason, true)
		// os.ReadDir returns whatever it read before the error
	}

	var subdirs []Entry
	for _, d := range dirEntries {
		entry := Entry{
			Path:    path.Join(dir.Path, d.Name()),
			AbsPath: filepath.Join(dir.AbsPath, d.Name()),
			Name:    d.Name(),
			Depth:   dir.Depth + 1,
			IsDir:   d.IsDir(),
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if info, statErr := os.Stat(entry.AbsPath); statErr == nil && info.IsDir() {
				w.options.Logger.Debug("walker: not following symlinked directory %q", entry.Path)
				w.tracker.Track(entry.Path, ReasonSkippedSymlinkDir, true)
				w.stats.SkippedDirs++
				continue
			}
		}

		if entry.IsDir {
			subdirs = append(subdirs, entry)
			continue
		}

		if v := w.matcher.CheckFile(entry.Path, entry.Name); v.Skip {
			w.options.Logger.Debug("walker: skipped file %q: %s", entry.Path, v.Reason)
			w.tracker.Track(entry.Path, SkippedReason(v.Reason), false)
			w.stats.SkippedFiles++
			continue
		}

		w.stats.YieldedFiles++
		w.report(entry.Path)
		if !yield(entry) {
			return false
		}
	}

	for _, sub := range subdirs {
		if v := w.matcher.CheckDir(sub.Path); v.Skip {
			w.options.Logger.Debug("walker: pruned directory %q: %s", sub.Path, v.Reason)
			w.tracker.Track(sub.Path, SkippedReason(v.Reason), true)
			w.stats.SkippedDirs++
			continue
		}
		if !w.walkDir(sub, withDirs, yield) {
			return false
		}
	}
	return true
}

func (w *Walker) report(current string) {
	if w.options.ProgressFn == nil {
		return
	}
	stats := w.stats
	stats.CurrentFilePath = current
	w.options.ProgressFn(stats)
}

func displayPath(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
