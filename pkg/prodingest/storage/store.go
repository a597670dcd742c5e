// Package storage abstracts the object storage operations the pipeline
// needs and provides a MinIO/S3 implementation plus a filesystem store used
// in tests.
package storage

import (
	"context"
	"time"
)

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	// Key is the full object key.
	Key string
	// Created is the object's creation (last modified) timestamp.
	Created time.Time
}

// ObjectStore is the minimal object storage contract: idempotent bucket
// creation, prefix listing with properties, full-object download, and
// overwriting upload.
type ObjectStore interface {
	EnsureBucket(ctx context.Context, bucket string) error
	ListPrefix(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error
}
