// Package walker enumerates the local files under a site root.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Entry is one regular file found under the root.
type Entry struct {
	Path string // absolute path
	Key  string // slash-separated path relative to root
	Size int64
}

// Walker walks a local tree with exclude pattern support.
type Walker struct {
	root     string
	excludes []string
}

// New validates the root and returns a walker. Errors keep their fs sentinel
// (fs.ErrNotExist for a missing root, fs.ErrInvalid for a non-directory) so
// callers can classify them.
func New(root string, excludes []string) (*Walker, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory: %w", absRoot, fs.ErrInvalid)
	}

	return &Walker{
		root:     absRoot,
		excludes: excludes,
	}, nil
}

// Walk returns all non-excluded regular files under the root. Entry order
// carries no meaning. An unreadable entry aborts the whole walk; a partial
// enumeration must never be published.
func (w *Walker) Walk() ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(w.root, path)
		if err != nil {
			return fmt.Errorf("get relative path: %w", err)
		}
		key := filepath.ToSlash(relPath)

		if w.isExcluded(key) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("get file info: %w", err)
		}

		entries = append(entries, Entry{
			Path: path,
			Key:  key,
			Size: info.Size(),
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	return entries, nil
}

// isExcluded checks whether a key matches any exclude pattern. Patterns with
// a trailing slash exclude a directory and everything under it.
func (w *Walker) isExcluded(key string) bool {
	for _, pattern := range w.excludes {
		if strings.HasSuffix(pattern, "/") {
			dirPattern := strings.TrimSuffix(pattern, "/")
			parts := strings.Split(key, "/")
			for i := 1; i <= len(parts); i++ {
				subPath := strings.Join(parts[:i], "/")
				if matched, _ := doublestar.Match(dirPattern, subPath); matched {
					return true
				}
			}
		} else {
			if matched, _ := doublestar.Match(pattern, key); matched {
				return true
			}
		}
	}
	return false
}
