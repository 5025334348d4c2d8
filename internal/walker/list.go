package walker

import (
	"iter"
	"path"
	"path/filepath"

	"github.com/bethropolis/dir-bundler/internal/utils"
)

// List yields the given paths verbatim and in order, resolved against
// root. Nothing is filtered and existence is not checked; the renderer
// reports missing files.
func List(root string, paths []string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, p := range paths {
			rel := utils.NormalizePath(p)
			abs := filepath.FromSlash(p)
			if !filepath.IsAbs(abs) {
				abs = filepath.Join(root, abs)
			}
			entry := Entry{
				Path:    rel,
				AbsPath: abs,
				Name:    path.Base(rel),
				Depth:   utils.Depth(rel),
			}
			if !yield(entry) {
				return
			}
		}
	}
}
