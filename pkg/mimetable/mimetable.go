// Package mimetable maps file extensions to content types for published
// site assets. The table is built once and read-only afterwards.
package mimetable

import (
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultType is used when the extension is missing or unknown.
const DefaultType = "application/octet-stream"

// Table is an immutable extension → content-type mapping.
type Table struct {
	types    map[string]string
	fallback string
}

// New builds a Table from the given mapping. Extensions are stored without a
// leading dot and matched case-insensitively. An empty fallback selects
// DefaultType.
func New(types map[string]string, fallback string) *Table {
	if fallback == "" {
		fallback = DefaultType
	}
	normalized := make(map[string]string, len(types))
	for ext, contentType := range types {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if ext == "" || contentType == "" {
			continue
		}
		normalized[ext] = contentType
	}
	return &Table{types: normalized, fallback: fallback}
}

// Builtin returns the table used for the static site: the web asset types the
// deployment actually serves.
func Builtin() *Table {
	return New(builtinTypes, DefaultType)
}

// Resolve maps a key or file name to a content type. Keys without an
// extension, with an empty extension, or with an unknown extension resolve to
// the fallback. Resolution never fails.
func (t *Table) Resolve(key string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(key), "."))
	if ext == "" {
		return t.fallback
	}
	if contentType, ok := t.types[ext]; ok {
		return contentType
	}
	return t.fallback
}

// Detect resolves key against the table and, when the table misses, sniffs
// the content of the file at localPath. Sniffing failures fall back to the
// table's fallback; Detect never returns an empty content type.
func (t *Table) Detect(key, localPath string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(key), "."))
	if contentType, ok := t.types[ext]; ok && ext != "" {
		return contentType
	}
	mtype, err := mimetype.DetectFile(localPath)
	if err != nil {
		return t.fallback
	}
	return mtype.String()
}

// WithFallback returns a copy of the table using the given default type.
func (t *Table) WithFallback(fallback string) *Table {
	if fallback == "" {
		return t
	}
	return &Table{types: t.types, fallback: fallback}
}

// Fallback returns the configured default content type.
func (t *Table) Fallback() string {
	return t.fallback
}

var builtinTypes = map[string]string{
	"html":        "text/html",
	"htm":         "text/html",
	"css":         "text/css",
	"js":          "application/javascript",
	"mjs":         "application/javascript",
	"map":         "application/json",
	"json":        "application/json",
	"webmanifest": "application/manifest+json",
	"txt":         "text/plain",
	"md":          "text/markdown",
	"csv":         "text/csv",
	"xml":         "application/xml",
	"svg":         "image/svg+xml",
	"png":         "image/png",
	"jpg":         "image/jpeg",
	"jpeg":        "image/jpeg",
	"gif":         "image/gif",
	"webp":        "image/webp",
	"ico":         "image/x-icon",
	"woff":        "font/woff",
	"woff2":       "font/woff2",
	"ttf":         "font/ttf",
	"otf":         "font/otf",
	"eot":         "application/vnd.ms-fontobject",
	"pdf":         "application/pdf",
	"wasm":        "application/wasm",
}
