package s3client

import (
	"context"
	"io"
	"time"
)

// ObjectMetadata describes one object currently present in the namespace.
type ObjectMetadata struct {
	Key         string
	Size        int64
	ModTime     time.Time
	Fingerprint string // MD5 hex from a non-multipart ETag; "" when not comparable
}

type ListObjectsRequest struct {
	Bucket string
	Prefix string
}

type PutObjectRequest struct {
	Bucket      string
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
}

type DeleteObjectRequest struct {
	Bucket string
	Key    string
}

// Client is the storage collaborator. The planner only lists; the executor
// puts and deletes.
type Client interface {
	ListObjects(ctx context.Context, req *ListObjectsRequest) ([]ObjectMetadata, error)
	PutObject(ctx context.Context, req *PutObjectRequest) error
	DeleteObject(ctx context.Context, req *DeleteObjectRequest) error
}
