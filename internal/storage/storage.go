package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"xflyve-service/internal/config"
)

// ErrNotFound is returned when a blob key does not exist in the store.
var ErrNotFound = errors.New("blob not found")

// Object describes a stored blob: the key used for later Open/Delete calls
// and the URL handed to clients.
type Object struct {
	Key string
	URL string
}

// Store is the blob store behind POD and work-diary uploads.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Object, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// NewFromConfig picks the backend declared in the storage config.
func NewFromConfig(cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "local":
		return NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL)
	case "s3":
		return NewS3Store(cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
