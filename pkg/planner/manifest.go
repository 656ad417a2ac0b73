package planner

import (
	"errors"
	"io/fs"

	"github.com/wkncstats/sitesync/internal/walker"
	"github.com/wkncstats/sitesync/pkg/fingerprint"
	"github.com/wkncstats/sitesync/pkg/mimetable"
)

// ManifestOptions controls how the desired state is computed from a local
// tree.
type ManifestOptions struct {
	// Excludes are doublestar patterns matched against relative keys.
	Excludes []string

	// Table resolves content types. Nil selects mimetable.Builtin().
	Table *mimetable.Table

	// SniffUnknown reads file content to detect the type when the table
	// misses, instead of using the table's fallback.
	SniffUnknown bool
}

// BuildManifest walks the tree under root and derives the desired state:
// key, content type and fingerprint for every publishable file. Any failure
// aborts the whole batch; reconciling a partial desired state could publish
// a page that references missing assets.
func BuildManifest(root string, opts ManifestOptions) (Manifest, error) {
	table := opts.Table
	if table == nil {
		table = mimetable.Builtin()
	}

	w, err := walker.New(root, opts.Excludes)
	if err != nil {
		return nil, classifyWalkError(err)
	}

	entries, err := w.Walk()
	if err != nil {
		return nil, classifyWalkError(err)
	}

	assets := make([]Asset, 0, len(entries))
	for _, entry := range entries {
		fp, err := fingerprint.File(entry.Path)
		if err != nil {
			if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
				return nil, newError(ErrSourceRead, entry.Key, err)
			}
			return nil, newError(ErrFingerprint, entry.Key, err)
		}

		contentType := table.Resolve(entry.Key)
		if opts.SniffUnknown {
			contentType = table.Detect(entry.Key, entry.Path)
		}

		assets = append(assets, Asset{
			Key:         entry.Key,
			LocalPath:   entry.Path,
			Size:        entry.Size,
			ContentType: contentType,
			Fingerprint: fp,
		})
	}

	return NewManifest(assets...)
}

// classifyWalkError maps filesystem sentinels onto planner error kinds: a
// missing or non-directory root is the operator's mistake, an unreadable
// entry is a source read failure.
func classifyWalkError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrInvalid):
		return newError(ErrConfiguration, "", err)
	default:
		return newError(ErrSourceRead, "", err)
	}
}
