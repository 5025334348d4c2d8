package walker

import (
	"github.com/bethropolis/dir-bundler/internal/utils"
)

// WalkOptions configures a Walker
type WalkOptions struct {
	Logger     utils.Logger
	MaxDepth   int // 0 = unlimited
	ProgressFn ProgressCallback
}

// ProgressCallback receives a snapshot after every yielded entry
type ProgressCallback func(stats ProgressStats)

// ProgressStats holds statistics about the walk progress
type ProgressStats struct {
	YieldedFiles    int64  // Files that passed the filter
	SkippedFiles    int64  // Files rejected by a rule
	TotalDirs       int64  // Directories entered
	SkippedDirs     int64  // Directories pruned
	CurrentFilePath string // Relative path of the entry just yielded
}

func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger: utils.NoopLogger{},
	}
}

// Option is a functional option for configuring WalkOptions
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(logger utils.Logger) Option {
	return func(opts *WalkOptions) {
		opts.Logger = utils.OrNoop(logger)
	}
}

// WithMaxDepth stops the walk below the given depth. A directory at
// exactly maxDepth is still listed but not read.
func WithMaxDepth(maxDepth int) Option {
	return func(opts *WalkOptions) {
		if maxDepth > 0 {
			opts.MaxDepth = maxDepth
		}
	}
}

// WithProgress adds a progress callback function
func WithProgress(fn ProgressCallback) Option {
	return func(o *WalkOptions) {
		o.ProgressFn = fn
	}
}
