package s3client

import (
	"fmt"
	"strings"
)

// ParseURI splits an s3://bucket/prefix URI into bucket and prefix.
func ParseURI(uri string) (bucket, prefix string, err error) {
	if !strings.HasPrefix(uri, "s3://") {
		return "", "", fmt.Errorf("URI must start with s3://")
	}

	rest := strings.TrimPrefix(uri, "s3://")
	parts := strings.SplitN(rest, "/", 2)

	bucket = parts[0]
	if len(parts) > 1 {
		prefix = strings.Trim(parts[1], "/")
	}

	if bucket == "" {
		return "", "", fmt.Errorf("bucket name cannot be empty")
	}

	return bucket, prefix, nil
}

// JoinKey prepends the namespace prefix to a relative key.
func JoinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return strings.TrimSuffix(prefix, "/") + "/" + key
}

// listPrefix returns the S3 listing prefix for a namespace prefix. S3 prefix
// matching is plain string comparison, so the trailing slash keeps sibling
// prefixes such as "sites/" out of a "site" listing.
func listPrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	return strings.TrimSuffix(prefix, "/") + "/"
}

// trimKeyPrefix strips the namespace prefix from an absolute object key so
// remote keys compare against local relative keys. ok is false for keys
// outside the namespace boundary, such as "site.bak/old.html" under prefix
// "site".
func trimKeyPrefix(key, prefix string) (rest string, ok bool) {
	if prefix == "" {
		return key, true
	}
	return strings.CutPrefix(key, listPrefix(prefix))
}
