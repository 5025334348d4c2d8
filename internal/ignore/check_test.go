package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatcher(t *testing.T, opts ...Option) *Matcher {
	t.Helper()
	m, err := New(t.TempDir(), opts...)
	require.NoError(t, err)
	return m
}

func TestShouldDescend_SkipFolders(t *testing.T) {
	m := newMatcher(t, WithSkipFolders([]string{"node_modules", ".next", "components/ui"}))

	tests := []struct {
		path string
		want bool
	}{
		{"", true},
		{".", true},
		{"app", true},
		{"node_modules", false},
		{"web/node_modules/react", false},
		{".next", false},
		{"components", true},
		{"components/ui", false},
		{"components\\ui\\forms", false},
		{"src/components/ui", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.ShouldDescend(tt.path))
		})
	}
}

func TestShouldDescend_SubstringSemantics(t *testing.T) {
	m := newMatcher(t, WithSkipFolders([]string{"a"}))
	assert.False(t, m.ShouldDescend("a"))
	assert.False(t, m.ShouldDescend("data"))
	assert.True(t, m.ShouldDescend("b"))
}

func TestShouldInclude_SkipFiles(t *testing.T) {
	m := newMatcher(t, WithSkipFiles([]string{"package.json", " README.md "}))

	assert.False(t, m.ShouldInclude("package.json", "package.json"))
	assert.False(t, m.ShouldInclude("web/package.json", "package.json"))
	assert.False(t, m.ShouldInclude("docs/README.md", "README.md"))
	assert.True(t, m.ShouldInclude("docs/readme.md", "readme.md"))
	assert.True(t, m.ShouldInclude("package.json.bak", "package.json.bak"))
}

func TestShouldInclude_ExcludePaths(t *testing.T) {
	m := newMatcher(t, WithExcludePaths([]string{"components/ui"}))

	assert.False(t, m.ShouldInclude("components/ui/button.tsx", "button.tsx"))
	assert.False(t, m.ShouldInclude("components/ui/forms/input.tsx", "input.tsx"))
	assert.False(t, m.ShouldInclude("src/components/ui/card.tsx", "card.tsx"))
	assert.True(t, m.ShouldInclude("components/Sidebar.tsx", "Sidebar.tsx"))
	assert.True(t, m.ShouldInclude("components/uikit/x.tsx", "x.tsx"))
	assert.True(t, m.ShouldInclude("mycomponents/ui/x.tsx", "x.tsx"))
}

func TestHiddenAndGitDir(t *testing.T) {
	m := newMatcher(t, WithHiddenIgnore(true), WithGitDirIgnore(true))

	assert.Equal(t, ReasonGitDir, m.CheckDir(".git").Reason)
	assert.Equal(t, ReasonHidden, m.CheckDir("src/.cache").Reason)
	assert.Equal(t, ReasonHidden, m.CheckFile(".env.local", ".env.local").Reason)
	assert.True(t, m.ShouldInclude("src/main.go", "main.go"))

	off := newMatcher(t)
	assert.True(t, off.ShouldDescend(".git"))
	assert.True(t, off.ShouldInclude(".env", ".env"))
}

func TestCustomPatterns(t *testing.T) {
	m := newMatcher(t, WithCustomPatterns([]string{"*.log", "dist/"}))

	assert.Equal(t, ReasonCustom, m.CheckFile("logs/app.log", "app.log").Reason)
	assert.Equal(t, ReasonCustom, m.CheckDir("dist").Reason)
	assert.True(t, m.ShouldInclude("main.go", "main.go"))
}

func TestGitignore(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("build/\n*.tmp\n"), 0o644))

	m, err := New(root, WithGitignore(true))
	require.NoError(t, err)

	assert.Equal(t, ReasonGitignore, m.CheckDir("build").Reason)
	assert.Equal(t, ReasonGitignore, m.CheckFile("scratch.tmp", "scratch.tmp").Reason)
	assert.True(t, m.ShouldDescend("src"))
}

func TestVerdictReasons(t *testing.T) {
	m := newMatcher(t,
		WithSkipFolders([]string{"vendor"}),
		WithSkipFiles([]string{"go.sum"}),
	)
	assert.Equal(t, Verdict{Skip: true, Reason: ReasonSkipFolder}, m.CheckDir("vendor"))
	assert.Equal(t, Verdict{Skip: true, Reason: ReasonSkipFile}, m.CheckFile("go.sum", "go.sum"))
	assert.Equal(t, Verdict{}, m.CheckFile("go.mod", "go.mod"))
}

func TestNilMatcher(t *testing.T) {
	var m *Matcher
	assert.True(t, m.ShouldDescend("node_modules"))
	assert.True(t, m.ShouldInclude("x", "x"))
}

func TestNewFromRules(t *testing.T) {
	m, err := NewFromRules(t.TempDir(), Rules{
		SkipFolders: []string{"node_modules"},
		SkipFiles:   []string{"package-lock.json"},
	}, nil)
	require.NoError(t, err)
	assert.False(t, m.ShouldDescend("node_modules"))
	assert.False(t, m.ShouldInclude("web/package-lock.json", "package-lock.json"))
	assert.True(t, m.ShouldInclude("web/index.ts", "index.ts"))
}

func TestCheckFile_Extensions(t *testing.T) {
	m := newMatcher(t, WithExtensions([]string{"go", ".MD", " "}))

	assert.True(t, m.ShouldInclude("main.go", "main.go"))
	assert.True(t, m.ShouldInclude("docs/README.md", "README.md"))
	assert.True(t, m.ShouldInclude("docs/NOTES.Md", "NOTES.Md"))
	assert.Equal(t, ReasonExtension, m.CheckFile("web/app.ts", "app.ts").Reason)
	assert.Equal(t, ReasonExtension, m.CheckFile("Makefile", "Makefile").Reason)
	assert.True(t, m.ShouldDescend("web"))
}

func TestCheckFile_ExcludeFiles(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out", "combined.txt")
	m, err := New(root, WithExcludeFiles([]string{out, out + ".lock", "", filepath.Join(t.TempDir(), "elsewhere.txt")}))
	require.NoError(t, err)

	assert.Equal(t, ReasonOutputFile, m.CheckFile("out/combined.txt", "combined.txt").Reason)
	assert.Equal(t, ReasonOutputFile, m.CheckFile("out/combined.txt.lock", "combined.txt.lock").Reason)
	assert.True(t, m.ShouldInclude("combined.txt", "combined.txt"))
	assert.True(t, m.ShouldInclude("src/out/combined.txt", "combined.txt"))
}
