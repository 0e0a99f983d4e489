package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dfryer1193/gallery/gallery/domain"
	"github.com/google/uuid"
)

var _ domain.Storage = (*LocalDisk)(nil)

// LocalDisk stores blobs as flat files under a single directory and serves
// them through the application's own /uploads route.
type LocalDisk struct {
	dir     string
	baseURL string
}

// NewLocalDisk creates a local-disk storage rooted at dir. baseURL is the
// public address the server is reachable at; stored blobs are addressed as
// baseURL/uploads/<name>.
func NewLocalDisk(dir string, baseURL string) (*LocalDisk, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalDisk{
		dir:     abs,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Dir returns the directory blobs are written to.
func (l *LocalDisk) Dir() string {
	return l.dir
}

// Store writes the blob to disk under a fresh unique name.
func (l *LocalDisk) Store(ctx context.Context, fileName, contentType string, r io.Reader, size int64) (domain.StoredObject, error) {
	var zero domain.StoredObject

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	name := objectName(fileName)
	path := filepath.Join(l.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return zero, fmt.Errorf("failed to create file %s: %w", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return zero, fmt.Errorf("failed to write file %s: %w", name, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return zero, fmt.Errorf("failed to close file %s: %w", name, err)
	}

	return domain.StoredObject{
		URL:         l.baseURL + "/uploads/" + name,
		DeletionKey: name,
	}, nil
}

// Fetch re-reads a stored blob from disk.
func (l *LocalDisk) Fetch(ctx context.Context, deletionKey string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := l.pathFromKey(deletionKey)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", deletionKey, err)
	}

	return data, nil
}

// Remove unlinks a stored blob. A blob that is already gone is not an error.
func (l *LocalDisk) Remove(ctx context.Context, deletionKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := l.pathFromKey(deletionKey)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove blob %s: %w", deletionKey, err)
	}

	return nil
}

// pathFromKey resolves a deletion key to a path inside the upload
// directory, rejecting keys that would escape it.
func (l *LocalDisk) pathFromKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("deletion key is required")
	}
	if key != filepath.Base(key) {
		return "", fmt.Errorf("invalid deletion key %q", key)
	}
	return filepath.Join(l.dir, key), nil
}

// objectName builds a unique object name preserving the original extension.
func objectName(fileName string) string {
	return uuid.New().String() + strings.ToLower(filepath.Ext(fileName))
}
