// Package fingerprint computes content fingerprints for change detection.
//
// The fingerprint is the MD5 of the content as lowercase hex, which is also
// the ETag S3 assigns to a non-multipart upload. Change detection against a
// listed bucket therefore needs no extra reads. MD5 is used for change
// detection only, not integrity.
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

const bufferSize = 64 * 1024

// File computes the fingerprint of the file at path.
func File(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return Reader(file)
}

// Reader computes the fingerprint of everything readable from r.
func Reader(r io.Reader) (string, error) {
	h := md5.New()
	buffer := make([]byte, bufferSize)

	for {
		n, err := r.Read(buffer)
		if n > 0 {
			if _, werr := h.Write(buffer[:n]); werr != nil {
				return "", fmt.Errorf("write to hash: %w", werr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read: %w", err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// FromETag converts an S3 ETag into a comparable fingerprint. Surrounding
// quotes are stripped. Multipart ETags (containing "-") are not content MD5s
// and map to "", which never matches a local fingerprint and so forces a
// re-upload.
func FromETag(etag string) string {
	etag = strings.Trim(etag, `"`)
	if strings.Contains(etag, "-") {
		return ""
	}
	return strings.ToLower(etag)
}

// TeeReader fingerprints content while it is being read.
type TeeReader struct {
	reader      io.Reader
	hash        hash.Hash
	fingerprint string
	done        bool
}

// NewTeeReader wraps r so the fingerprint is available after EOF.
func NewTeeReader(r io.Reader) *TeeReader {
	return &TeeReader{
		reader: r,
		hash:   md5.New(),
	}
}

// Read implements io.Reader.
func (t *TeeReader) Read(p []byte) (n int, err error) {
	n, err = t.reader.Read(p)
	if n > 0 {
		if _, werr := t.hash.Write(p[:n]); werr != nil {
			return n, werr
		}
	}
	if err == io.EOF {
		t.done = true
		t.fingerprint = hex.EncodeToString(t.hash.Sum(nil))
	}
	return n, err
}

// Fingerprint returns the computed fingerprint, valid only after EOF.
func (t *TeeReader) Fingerprint() (string, error) {
	if !t.done {
		return "", fmt.Errorf("fingerprint not yet calculated (read not complete)")
	}
	return t.fingerprint, nil
}
