package mimetable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBuiltin(t *testing.T) {
	table := Builtin()

	tests := []struct {
		key  string
		want string
	}{
		{"index.html", "text/html"},
		{"assets/style.css", "text/css"},
		{"app.js", "application/javascript"},
		{"data/spins.json", "application/json"},
		{"favicon.ico", "image/x-icon"},
		{"fonts/body.woff2", "font/woff2"},
		{"logo.svg", "image/svg+xml"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.Resolve(tt.key), "key %q", tt.key)
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	table := Builtin()

	assert.Equal(t, table.Resolve("index.html"), table.Resolve("INDEX.HTML"))
	assert.Equal(t, "text/html", table.Resolve("page.Html"))
	assert.Equal(t, "image/jpeg", table.Resolve("photo.JPG"))
}

func TestResolveFallback(t *testing.T) {
	table := Builtin()

	tests := []struct {
		name string
		key  string
	}{
		{"no extension", "Makefile"},
		{"trailing dot", "notes."},
		{"unknown extension", "archive.xyz"},
		{"dot only in directory", "dir.v2/file"},
		{"empty key", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, DefaultType, table.Resolve(tt.key))
		})
	}
}

func TestResolveCustomFallback(t *testing.T) {
	table := New(map[string]string{"html": "text/html"}, "text/plain")

	assert.Equal(t, "text/plain", table.Resolve("unknown.bin"))
	assert.Equal(t, "text/html", table.Resolve("a.html"))
	assert.Equal(t, "text/plain", table.Fallback())
}

func TestWithFallback(t *testing.T) {
	table := Builtin().WithFallback("text/plain")

	assert.Equal(t, "text/plain", table.Resolve("unknown.bin"))
	assert.Equal(t, "text/html", table.Resolve("a.html"))
	assert.Same(t, table, table.WithFallback(""))
}

func TestNewNormalizesExtensions(t *testing.T) {
	table := New(map[string]string{".HTML": "text/html", "Css": "text/css"}, "")

	assert.Equal(t, "text/html", table.Resolve("a.html"))
	assert.Equal(t, "text/css", table.Resolve("a.css"))
}

func TestDetectPrefersTable(t *testing.T) {
	table := Builtin()

	dir := t.TempDir()
	p := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(p, []byte("not actually html"), 0o644))

	assert.Equal(t, "text/html", table.Detect("page.html", p))
}

func TestDetectSniffsUnknownExtension(t *testing.T) {
	table := Builtin()

	dir := t.TempDir()
	p := filepath.Join(dir, "page.unknown")
	require.NoError(t, os.WriteFile(p, []byte("<!DOCTYPE html><html><body>hi</body></html>"), 0o644))

	got := table.Detect("page.unknown", p)
	assert.Contains(t, got, "text/html")
}

func TestDetectFallsBackOnReadError(t *testing.T) {
	table := Builtin()

	assert.Equal(t, DefaultType, table.Detect("missing.unknown", filepath.Join(t.TempDir(), "missing.unknown")))
}
