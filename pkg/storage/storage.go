package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/benj-n/miguafi/internal/config"
)

// Storage persists an uploaded file and returns a dereferenceable URL.
// The backend is selected once at startup, never at call time. Delete takes
// a URL previously returned by Store.
type Storage interface {
	Store(ctx context.Context, r io.Reader, size int64, filename, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// NewFromConfig builds the storage backend selected by configuration.
// A misconfigured backend is fatal here rather than at upload time.
func NewFromConfig(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Backend {
	case config.StorageBackendS3:
		if cfg.S3.AccessKey == "" || cfg.S3.SecretKey == "" || cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("s3 storage misconfigured: missing access key, secret key or bucket")
		}
		return NewMinIO(cfg.S3)
	case config.StorageBackendLocal, "":
		return NewLocal(cfg.LocalDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
