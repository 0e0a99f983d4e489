package domain

import (
	"context"
	"io"
)

// StoredObject describes one blob persisted to the object store.
type StoredObject struct {
	// URL is the durable, publicly fetchable address of the blob.
	URL string
	// DeletionKey is the store-assigned key used to remove the blob later.
	DeletionKey string
}

// Storage is the byte-storage abstraction behind the upload pipeline.
// Implementations exist for the local filesystem and for S3-compatible
// object stores; the pipeline does not care which one it talks to.
type Storage interface {
	// Store persists the blob and returns its durable URL and deletion key.
	Store(ctx context.Context, fileName, contentType string, r io.Reader, size int64) (StoredObject, error)

	// Fetch re-reads the raw bytes of a previously stored blob.
	Fetch(ctx context.Context, deletionKey string) ([]byte, error)

	// Remove deletes a stored blob. Removing a blob that is already gone
	// is not an error.
	Remove(ctx context.Context, deletionKey string) error
}
