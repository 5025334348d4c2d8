package ignore

import (
	"path/filepath"
	"strings"

	"github.com/bethropolis/dir-bundler/internal/utils"
)

// Option configures a Matcher
type Option func(*Matcher)

// WithSkipFolders excludes any directory whose relative path contains one
// of the given strings.
func WithSkipFolders(folders []string) Option {
	return func(m *Matcher) {
		for _, f := range folders {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			m.skipFolders = append(m.skipFolders, utils.NormalizePath(f))
		}
	}
}

// WithSkipFiles excludes files whose name is exactly one of names.
func WithSkipFiles(names []string) Option {
	return func(m *Matcher) {
		for _, n := range names {
			n = strings.TrimSpace(n)
			if n != "" {
				m.skipFiles[n] = struct{}{}
			}
		}
	}
}

// WithExcludePaths excludes files that sit beneath a directory path such as
// "components/ui", wherever that path occurs in the tree.
func WithExcludePaths(paths []string) Option {
	return func(m *Matcher) {
		for _, p := range paths {
			if p = utils.NormalizePath(strings.TrimSpace(p)); p != "" {
				m.excludePaths = append(m.excludePaths, p)
			}
		}
	}
}

// WithExtensions keeps only files whose extension (without the dot, case
// insensitive) is listed. An empty list keeps every file.
func WithExtensions(extensions []string) Option {
	return func(m *Matcher) {
		for _, ext := range extensions {
			ext = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(ext), ".")))
			if ext == "" {
				continue
			}
			if m.extensions == nil {
				m.extensions = make(map[string]struct{})
			}
			m.extensions[ext] = struct{}{}
		}
	}
}

// WithExcludeFiles skips exactly these files. Relative paths are resolved
// against the working directory, as output names are.
func WithExcludeFiles(paths []string) Option {
	return func(m *Matcher) {
		for _, p := range paths {
			if strings.TrimSpace(p) == "" {
				continue
			}
			abs, err := filepath.Abs(p)
			if err != nil {
				continue
			}
			if m.excludeFiles == nil {
				m.excludeFiles = make(map[string]struct{})
			}
			m.excludeFiles[abs] = struct{}{}
		}
	}
}

func WithHiddenIgnore(ignore bool) Option {
	return func(m *Matcher) {
		m.ignoreHidden = ignore
	}
}

func WithGitDirIgnore(ignore bool) Option {
	return func(m *Matcher) {
		m.ignoreGit = ignore
	}
}

// WithGitignore loads .gitignore files found under the root.
func WithGitignore(enabled bool) Option {
	return func(m *Matcher) {
		m.respectGitignore = enabled
	}
}

// WithCustomPatterns adds gitignore-syntax patterns.
func WithCustomPatterns(patterns []string) Option {
	return func(m *Matcher) {
		for _, p := range patterns {
			if p = strings.TrimSpace(p); p != "" {
				m.customPatterns = append(m.customPatterns, p)
			}
		}
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRules applies every field of r.
func WithRules(r Rules) Option {
	return func(m *Matcher) {
		for _, opt := range []Option{
			WithSkipFolders(r.SkipFolders),
			WithSkipFiles(r.SkipFiles),
			WithExcludePaths(r.ExcludePaths),
			WithHiddenIgnore(r.IgnoreHidden),
			WithGitDirIgnore(r.IgnoreGit),
			WithGitignore(r.RespectGitignore),
			WithCustomPatterns(r.CustomPatterns),
			WithExtensions(r.Extensions),
			WithExcludeFiles(r.ExcludeFiles),
		} {
			opt(m)
		}
	}
}
