package ignore

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bethropolis/dir-bundler/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

// ShouldDescend reports whether the directory at relPath may be walked into
func (m *Matcher) ShouldDescend(relPath string) bool {
	return !m.CheckDir(relPath).Skip
}

// ShouldInclude reports whether the file name inside relPath is selected.
// relPath is the file's own relative path.
func (m *Matcher) ShouldInclude(relPath, fileName string) bool {
	return !m.CheckFile(relPath, fileName).Skip
}

// CheckDir is ShouldDescend with the rejecting rule
func (m *Matcher) CheckDir(relPath string) Verdict {
	if m == nil {
		return keep
	}
	rel := utils.NormalizePath(relPath)
	if rel == "" {
		return keep
	}

	for _, folder := range m.skipFolders {
		if strings.Contains(rel, folder) {
			m.logger.Debug("ignore.CheckDir: %q contains skip folder %q", rel, folder)
			return skip(ReasonSkipFolder)
		}
	}

	base := path.Base(rel)
	if m.ignoreGit && base == ".git" {
		return skip(ReasonGitDir)
	}
	if m.ignoreHidden && strings.HasPrefix(base, ".") {
		return skip(ReasonHidden)
	}
	if v := m.checkPatterns(rel, true); v.Skip {
		return v
	}
	return keep
}

// CheckFile is ShouldInclude with the rejecting rule
func (m *Matcher) CheckFile(relPath, fileName string) Verdict {
	if m == nil {
		return keep
	}
	rel := utils.NormalizePath(relPath)
	if len(m.excludeFiles) > 0 {
		if _, ok := m.excludeFiles[filepath.Join(m.rootDir, filepath.FromSlash(rel))]; ok {
			m.logger.Debug("ignore.CheckFile: %q is an output of this run", rel)
			return skip(ReasonOutputFile)
		}
	}
	if _, ok := m.skipFiles[fileName]; ok {
		m.logger.Debug("ignore.CheckFile: %q is a skip file", fileName)
		return skip(ReasonSkipFile)
	}

	if dir := path.Dir(rel); dir != "." && len(m.excludePaths) > 0 {
		wrapped := "/" + dir + "/"
		for _, ex := range m.excludePaths {
			if strings.Contains(wrapped, "/"+ex+"/") {
				m.logger.Debug("ignore.CheckFile: %q lies under excluded path %q", rel, ex)
				return skip(ReasonExcludePath)
			}
		}
	}

	if len(m.extensions) > 0 {
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(fileName), "."))
		if _, ok := m.extensions[ext]; !ok {
			return skip(ReasonExtension)
		}
	}

	if m.ignoreHidden && strings.HasPrefix(fileName, ".") {
		return skip(ReasonHidden)
	}
	if v := m.checkPatterns(rel, false); v.Skip {
		return v
	}
	return keep
}

func (m *Matcher) checkPatterns(rel string, isDir bool) Verdict {
	if m.customIgnore != nil && m.matches(m.customIgnore, rel, isDir) {
		return skip(ReasonCustom)
	}
	if m.repoIgnore != nil && m.matches(m.repoIgnore, rel, isDir) {
		return skip(ReasonGitignore)
	}
	return keep
}

// matches asks the gitignore library about rel. A panic inside the library
// is logged and treated as "not ignored".
func (m *Matcher) matches(g gitignore.GitIgnore, rel string, isDir bool) (ignored bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("PANIC recovered in gitignore library for path %q: %v", rel, r)
			ignored = false
		}
	}()
	match := g.Relative(rel, isDir)
	return match != nil && match.Ignore()
}
