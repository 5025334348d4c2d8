package ignore

import (
	"github.com/bethropolis/dir-bundler/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

// Reason explains why a path was rejected
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonSkipFolder  Reason = "Skipped (Skip-Folder Rule)"
	ReasonSkipFile    Reason = "Skipped (Skip-File Rule)"
	ReasonExcludePath Reason = "Skipped (Excluded Path)"
	ReasonHidden      Reason = "Ignored (Hidden Rule)"
	ReasonGitignore   Reason = "Ignored (Gitignore Rule)"
	ReasonCustom      Reason = "Ignored (Custom Pattern)"
	ReasonGitDir      Reason = "Ignored (.git Directory)"
	ReasonExtension   Reason = "Filtered (Extension Mismatch)"
	ReasonOutputFile  Reason = "Skipped (Output File)"
)

// Verdict is the outcome of checking one path
type Verdict struct {
	Skip   bool
	Reason Reason
}

var keep = Verdict{}

func skip(r Reason) Verdict { return Verdict{Skip: true, Reason: r} }

// Matcher holds an immutable rule set for one run
type Matcher struct {
	rootDir string

	skipFolders  []string
	skipFiles    map[string]struct{}
	excludePaths []string
	extensions   map[string]struct{}
	excludeFiles map[string]struct{}

	ignoreHidden     bool
	ignoreGit        bool
	respectGitignore bool
	customPatterns   []string

	repoIgnore   gitignore.GitIgnore
	customIgnore gitignore.GitIgnore

	logger utils.Logger
}

// Rules is the plain-data form of a rule set, as read from configuration
type Rules struct {
	SkipFolders      []string
	SkipFiles        []string
	ExcludePaths     []string
	IgnoreHidden     bool
	IgnoreGit        bool
	RespectGitignore bool
	CustomPatterns   []string
	Extensions       []string
	ExcludeFiles     []string
}
