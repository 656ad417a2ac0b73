// Package packager builds the refresh function's deployment archive from a
// staged build directory (application code plus vendored dependencies).
package packager

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// BuildZip archives every regular file under buildDir into zipPath. Entry
// names are slash-separated paths relative to buildDir, written in sorted
// order so the same tree packages identically.
func BuildZip(buildDir, zipPath string) error {
	info, err := os.Stat(buildDir)
	if err != nil {
		return fmt.Errorf("stat build dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("build dir %s is not a directory", buildDir)
	}

	var names []string
	err = filepath.WalkDir(buildDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(buildDir, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk build dir: %w", err)
	}
	if len(names) == 0 {
		return fmt.Errorf("build dir %s contains no files", buildDir)
	}
	sort.Strings(names)

	if err := os.MkdirAll(filepath.Dir(zipPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, name := range names {
		if err := addFile(zw, buildDir, name); err != nil {
			zw.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}

	return out.Close()
}

func addFile(zw *zip.Writer, buildDir, name string) error {
	src, err := os.Open(filepath.Join(buildDir, filepath.FromSlash(name)))
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer src.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("add %s: %w", name, err)
	}

	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
