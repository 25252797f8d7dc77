package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPathPrefix is the URL prefix under which the router serves files
// written by LocalStorage.
const PublicPathPrefix = "/static/uploads"

// LocalStorage writes uploads to a directory on disk. URLs are paths under
// PublicPathPrefix and only resolve through this process.
type LocalStorage struct {
	baseDir string
}

// NewLocal creates a local storage backend rooted at baseDir
func NewLocal(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// BaseDir returns the directory uploads are written to
func (s *LocalStorage) BaseDir() string {
	return s.baseDir
}

// Store writes the file to disk and returns its public path
func (s *LocalStorage) Store(ctx context.Context, r io.Reader, size int64, filename, contentType string) (string, error) {
	ext := filepath.Ext(filename)
	key := uuid.New().String() + ext

	f, err := os.Create(filepath.Join(s.baseDir, key))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return PublicPathPrefix + "/" + key, nil
}

// Delete removes a file previously written by Store
func (s *LocalStorage) Delete(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, PublicPathPrefix+"/")
	if key == url || strings.Contains(key, "/") {
		return fmt.Errorf("not a local upload URL: %s", url)
	}
	return os.Remove(filepath.Join(s.baseDir, key))
}
