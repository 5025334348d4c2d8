package setup

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/dir-bundler/internal/config"
	"github.com/bethropolis/dir-bundler/internal/router"
	"github.com/bethropolis/dir-bundler/internal/utils"
	"github.com/bethropolis/dir-bundler/internal/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noInfo(string, ...interface{}) {}

func tree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range []string{"a/x.txt", "node_modules/m/index.js", "b/y.txt"} {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(rel), 0o644))
	}
	return root
}

func paths(seq func(func(walker.Entry) bool)) []string {
	var out []string
	for e := range seq {
		out = append(out, e.Path)
	}
	return out
}

func TestConfigurePipeline_Walk(t *testing.T) {
	cfg := config.Default()
	cfg.Root = tree(t)
	cfg.Outputs = []string{"one.txt", "two.txt"}
	cfg.Strategy.Type = "round-robin"

	p, err := ConfigurePipeline(cfg, utils.NoopLogger{}, noInfo, nil)
	require.NoError(t, err)
	require.NotNil(t, p.Walker)
	assert.Equal(t, []string{"a/x.txt", "b/y.txt"}, paths(p.Entries))
	assert.Equal(t, router.KindRoundRobin, p.Router.Strategy().Kind())
	assert.Equal(t, 2, p.Router.SinkCount())
}

func TestConfigurePipeline_ExplicitList(t *testing.T) {
	cfg := config.Default()
	cfg.Root = filepath.Join(t.TempDir(), "does-not-need-to-exist")
	cfg.Paths = []string{"z.ts", "a.ts"}

	p, err := ConfigurePipeline(cfg, utils.NoopLogger{}, noInfo, nil)
	require.NoError(t, err)
	assert.Nil(t, p.Walker)
	assert.Equal(t, []string{"z.ts", "a.ts"}, paths(p.Entries))
}

func TestConfigurePipeline_MissingRoot(t *testing.T) {
	cfg := config.Default()
	cfg.Root = filepath.Join(t.TempDir(), "missing")

	_, err := ConfigurePipeline(cfg, utils.NoopLogger{}, noInfo, nil)
	assert.ErrorIs(t, err, walker.ErrPathNotFound)
}

func TestConfigureWalker_Progress(t *testing.T) {
	cfg := config.Default()
	cfg.Root = tree(t)
	cfg.ShowProgress = true

	var out bytes.Buffer
	w, err := ConfigureWalker(cfg, utils.NoopLogger{}, noInfo, &out)
	require.NoError(t, err)
	for range w.Files() {
	}
	assert.Contains(t, out.String(), "\rProcessing: b/y.txt")
}
