package walker

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func keys(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key)
	}
	sort.Strings(out)
	return out
}

func TestWalkCollectsFilesRecursively(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.html":        "<html></html>",
		"css/style.css":     "body{}",
		"js/app.js":         "void 0",
		"img/logo/logo.png": "png",
	})

	w, err := New(root, nil)
	require.NoError(t, err)

	entries, err := w.Walk()
	require.NoError(t, err)

	assert.Equal(t, []string{"css/style.css", "img/logo/logo.png", "index.html", "js/app.js"}, keys(entries))
	for _, e := range entries {
		assert.True(t, filepath.IsAbs(e.Path), "entry path must be absolute: %s", e.Path)
		assert.Greater(t, e.Size, int64(0))
	}
}

func TestWalkIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.html":  "a",
		"b/c.css": "c",
	})

	w, err := New(root, nil)
	require.NoError(t, err)

	first, err := w.Walk()
	require.NoError(t, err)
	second, err := w.Walk()
	require.NoError(t, err)

	assert.Equal(t, keys(first), keys(second))
}

func TestWalkExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.html":    "x",
		"notes.tmp":     "x",
		"drafts/a.html": "x",
		"drafts/b.css":  "x",
		"css/style.css": "x",
	})

	w, err := New(root, []string{"*.tmp", "drafts/"})
	require.NoError(t, err)

	entries, err := w.Walk()
	require.NoError(t, err)

	assert.Equal(t, []string{"css/style.css", "index.html"}, keys(entries))
}

func TestWalkExcludeGlob(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/one.map":   "x",
		"b/c/two.map": "x",
		"index.html":  "x",
	})

	w, err := New(root, []string{"**/*.map"})
	require.NoError(t, err)

	entries, err := w.Walk()
	require.NoError(t, err)

	assert.Equal(t, []string{"index.html"}, keys(entries))
}

func TestNewMissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestNewRootIsFile(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "file.txt")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))

	_, err := New(p, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrInvalid))
}

func TestWalkUnreadableDirAborts(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"ok.html":       "x",
		"locked/a.html": "x",
	})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	w, err := New(root, nil)
	require.NoError(t, err)

	_, err = w.Walk()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrPermission))
}
