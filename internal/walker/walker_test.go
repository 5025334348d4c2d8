package walker

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bethropolis/dir-bundler/internal/ignore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files (relative slash paths) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func collect(seq func(func(Entry) bool)) []string {
	var out []string
	for e := range seq {
		p := e.Path
		if e.IsDir {
			p += "/"
		}
		out = append(out, p)
	}
	return out
}

func newWalker(t *testing.T, root string, opts ...ignore.Option) *Walker {
	t.Helper()
	m, err := ignore.New(root, opts...)
	require.NoError(t, err)
	w, err := New(root, m)
	require.NoError(t, err)
	return w
}

func TestNew_RootNotFound(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestNew_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"f.txt": "x"})

	_, err := New(filepath.Join(root, "f.txt"), nil)
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestFiles_ParentBeforeChildren(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"z.txt":       "",
		"a/x.txt":     "",
		"a/b/deep.go": "",
		"a/y.txt":     "",
		"c/y.txt":     "",
	})
	w := newWalker(t, root)

	assert.Equal(t, []string{
		"z.txt",
		"a/x.txt",
		"a/y.txt",
		"a/b/deep.go",
		"c/y.txt",
	}, collect(w.Files()))
}

func TestAll_IncludesDirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/x.txt": "",
		"b/y.txt": "",
	})
	w := newWalker(t, root)

	assert.Equal(t, []string{"/", "a/", "a/x.txt", "b/", "b/y.txt"}, collect(w.All()))

	var depths []int
	for e := range w.All() {
		depths = append(depths, e.Depth)
	}
	assert.Equal(t, []int{0, 1, 2, 1, 2}, depths)
}

func TestFiles_SkipFolderPrunesSubtree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app/page.tsx":                  "",
		"node_modules/react/index.js":   "",
		"web/node_modules/x/package.js": "",
		"components/ui/button.tsx":      "",
		"components/ui/forms/input.tsx": "",
		"components/Sidebar.tsx":        "",
	})
	w := newWalker(t, root, ignore.WithSkipFolders([]string{"node_modules", "components/ui"}))

	got := collect(w.All())
	for _, p := range got {
		assert.NotContains(t, p, "node_modules")
		assert.NotContains(t, p, "components/ui")
	}
	assert.Contains(t, got, "components/Sidebar.tsx")
	assert.Contains(t, got, "app/page.tsx")

	var prunedDirs []string
	for _, s := range w.Skipped() {
		if s.IsDir {
			prunedDirs = append(prunedDirs, s.Path)
		}
	}
	assert.ElementsMatch(t, []string{"node_modules", "web/node_modules", "components/ui"}, prunedDirs)
}

func TestFiles_SkipFilesEverywhere(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json":     "",
		"a/package.json":   "",
		"a/b/package.json": "",
		"a/index.ts":       "",
	})
	w := newWalker(t, root, ignore.WithSkipFiles([]string{"package.json"}))

	assert.Equal(t, []string{"a/index.ts"}, collect(w.Files()))
	assert.Len(t, w.Skipped(), 3)
}

func TestFiles_Restartable(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a/x.txt": "", "b/y.txt": "", "skip.me": ""})
	w := newWalker(t, root, ignore.WithSkipFiles([]string{"skip.me"}))

	first := collect(w.Files())
	second := collect(w.Files())
	assert.Equal(t, first, second)
	assert.Len(t, w.Skipped(), 1)
}

func TestFiles_EarlyStop(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "", "b.txt": "", "c.txt": ""})
	w := newWalker(t, root)

	var seen []string
	for e := range w.Files() {
		seen = append(seen, e.Path)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a.txt", "b.txt"}, seen)
}

func TestWithMaxDepth(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"top.txt":      "",
		"a/mid.txt":    "",
		"a/b/deep.txt": "",
	})
	m, err := ignore.New(root)
	require.NoError(t, err)
	w, err := New(root, m, WithMaxDepth(1))
	require.NoError(t, err)

	assert.Equal(t, []string{"/", "top.txt", "a/"}, collect(w.All()))
	assert.Equal(t, []SkippedItem{{Path: "a", Reason: ReasonSkippedMaxDepth, IsDir: true}}, w.Skipped())
}

func TestWithProgress(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "", "b/c.txt": ""})
	m, err := ignore.New(root)
	require.NoError(t, err)

	var updates []ProgressStats
	w, err := New(root, m, WithProgress(func(s ProgressStats) { updates = append(updates, s) }))
	require.NoError(t, err)
	for range w.Files() {
	}

	require.Len(t, updates, 2)
	assert.Equal(t, "b/c.txt", updates[1].CurrentFilePath)
	assert.Equal(t, int64(2), updates[1].YieldedFiles)
}

func TestFiles_UnreadableDirectoryIsTracked(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	root := t.TempDir()
	writeTree(t, root, map[string]string{"ok.txt": "", "locked/secret.txt": ""})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	w := newWalker(t, root)
	assert.Equal(t, []string{"ok.txt"}, collect(w.Files()))

	skipped := w.Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, ReasonSkippedPermError, skipped[0].Reason)
}

func TestList_VerbatimOrder(t *testing.T) {
	paths := []string{"lib/utils.ts", "app/page.tsx", "./missing\\file.ts"}
	var got []Entry
	for e := range List("/project", paths) {
		got = append(got, e)
	}

	require.Len(t, got, 3)
	assert.Equal(t, "lib/utils.ts", got[0].Path)
	assert.Equal(t, "app/page.tsx", got[1].Path)
	assert.Equal(t, "missing/file.ts", got[2].Path)
	assert.Equal(t, 2, got[0].Depth)
	assert.True(t, strings.HasSuffix(filepath.ToSlash(got[0].AbsPath), "/project/lib/utils.ts"))
	assert.False(t, got[0].IsDir)
}
