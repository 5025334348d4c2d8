package ignore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bethropolis/dir-bundler/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

// New creates a Matcher for the tree rooted at rootDir
func New(rootDir string, opts ...Option) (*Matcher, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("ignore: failed to get absolute path for rootDir '%s': %w", rootDir, err)
	}

	matcher := &Matcher{
		rootDir:   absRootDir,
		skipFiles: make(map[string]struct{}),
		logger:    utils.NoopLogger{},
	}
	for _, opt := range opts {
		opt(matcher)
	}

	if err := matcher.init(); err != nil {
		return nil, err
	}
	return matcher, nil
}

// NewFromRules is New with a Rules value
func NewFromRules(rootDir string, r Rules, logger utils.Logger) (*Matcher, error) {
	return New(rootDir, WithRules(r), WithLogger(logger))
}

func (m *Matcher) init() error {
	m.logger.Debug("ignore.New: root=%s skipFolders=%v skipFiles=%d excludePaths=%v",
		m.rootDir, m.skipFolders, len(m.skipFiles), m.excludePaths)

	if m.respectGitignore {
		repoMatcher, repoErr := gitignore.NewRepository(m.rootDir)
		if repoErr != nil {
			if repoMatcher == nil {
				m.logger.Warn("ignore.New: No .gitignore rules loaded for '%s': %v", m.rootDir, repoErr)
			} else {
				return fmt.Errorf("ignore: failed to load repository ignores: %w", repoErr)
			}
		}
		m.repoIgnore = repoMatcher
	}

	if len(m.customPatterns) > 0 {
		src := strings.NewReader(strings.Join(m.customPatterns, "\n"))
		var parseErr error
		m.customIgnore = gitignore.New(src, m.rootDir, func(e gitignore.Error) bool {
			parseErr = e
			return false
		})
		if parseErr != nil {
			return fmt.Errorf("ignore: invalid custom pattern: %w", parseErr)
		}
	}
	return nil
}

// Root returns the absolute root the matcher was built for
func (m *Matcher) Root() string {
	return m.rootDir
}
