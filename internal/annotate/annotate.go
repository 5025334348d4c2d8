// Package annotate prepends a "// path" comment line to source files in
// place. It rewrites files on disk and is only used when explicitly asked
// for.
package annotate

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/dir-bundler/internal/utils"
	"github.com/bethropolis/dir-bundler/internal/walker"
)

// Status is what happened to one file
type Status string

const (
	StatusAnnotated Status = "annotated"
	StatusPending   Status = "would annotate"
	StatusPresent   Status = "already annotated"
	StatusMissing   Status = "not found"
	StatusFailed    Status = "failed"
)

// Result is the outcome for one path
type Result struct {
	Path   string
	Status Status
	Err    error
}

// Header is the line prepended to the file at path
func Header(path string) string {
	return "// " + utils.NormalizePath(path)
}

// Run annotates each entry. With apply false nothing is written and files
// that need a header are reported as StatusPending. Per-file failures are
// recorded and do not stop the run.
func Run(entries iter.Seq[walker.Entry], apply bool, logger utils.Logger) []Result {
	logger = utils.OrNoop(logger)
	var results []Result
	for e := range entries {
		res := annotateOne(e, apply)
		switch res.Status {
		case StatusMissing:
			logger.Warn("File not found: %s", res.Path)
		case StatusFailed:
			logger.Error("Could not annotate %s: %v", res.Path, res.Err)
		default:
			logger.Debug("annotate: %s: %s", res.Path, res.Status)
		}
		results = append(results, res)
	}
	return results
}

func annotateOne(e walker.Entry, apply bool) Result {
	res := Result{Path: utils.NormalizePath(e.Path)}

	info, err := os.Stat(e.AbsPath)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		res.Status = StatusMissing
		return res
	}
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		return res
	}

	data, err := os.ReadFile(e.AbsPath)
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		return res
	}

	header := Header(e.Path)
	content := string(data)
	if firstLine(content) == header {
		res.Status = StatusPresent
		return res
	}
	if !apply {
		res.Status = StatusPending
		return res
	}

	if err := atomicWrite(e.AbsPath, []byte(header+"\n\n"+content), info.Mode().Perm()); err != nil {
		res.Status, res.Err = StatusFailed, err
		return res
	}
	res.Status = StatusAnnotated
	return res
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, "\r")
}

// atomicWrite replaces path via a temp file in the same directory, so an
// interrupted write never leaves a half-written source file.
func atomicWrite(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".annotate-*")
	if err != nil {
		return fmt.Errorf("annotate: failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("annotate: failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("annotate: failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("annotate: failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("annotate: failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("annotate: failed to replace %s: %w", path, err)
	}
	return nil
}
