package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalDisk_StoreFetchRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalDisk(dir, "http://localhost:5000/")
	if err != nil {
		t.Fatalf("NewLocalDisk() error = %v", err)
	}

	ctx := context.Background()
	content := []byte("fake image bytes")

	stored, err := store.Store(ctx, "holiday.JPG", "image/jpeg", bytes.NewReader(content), int64(len(content)))
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	if !strings.HasPrefix(stored.URL, "http://localhost:5000/uploads/") {
		t.Errorf("URL = %q, want /uploads/ prefix", stored.URL)
	}
	if !strings.HasSuffix(stored.DeletionKey, ".jpg") {
		t.Errorf("DeletionKey = %q, want lowercased .jpg extension", stored.DeletionKey)
	}

	// Fetch returns the stored bytes
	data, err := store.Fetch(ctx, stored.DeletionKey)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("Fetch() = %q, want %q", data, content)
	}

	// Remove unlinks the file
	if err := store.Remove(ctx, stored.DeletionKey); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, stored.DeletionKey)); !os.IsNotExist(err) {
		t.Error("Blob file still exists after Remove()")
	}
}

func TestLocalDisk_RemoveMissing(t *testing.T) {
	store, err := NewLocalDisk(t.TempDir(), "http://localhost:5000")
	if err != nil {
		t.Fatalf("NewLocalDisk() error = %v", err)
	}

	// Removing a blob that is already gone is not an error
	if err := store.Remove(context.Background(), "never-stored.jpg"); err != nil {
		t.Errorf("Remove() error = %v, want nil for missing blob", err)
	}
}

func TestLocalDisk_RejectsPathTraversal(t *testing.T) {
	store, err := NewLocalDisk(t.TempDir(), "http://localhost:5000")
	if err != nil {
		t.Fatalf("NewLocalDisk() error = %v", err)
	}

	ctx := context.Background()

	if _, err := store.Fetch(ctx, "../etc/passwd"); err == nil {
		t.Error("Fetch() accepted a traversal key")
	}

	if err := store.Remove(ctx, "../somefile"); err == nil {
		t.Error("Remove() accepted a traversal key")
	}

	if _, err := store.Fetch(ctx, ""); err == nil {
		t.Error("Fetch() accepted an empty key")
	}
}

func TestLocalDisk_UniqueNames(t *testing.T) {
	store, err := NewLocalDisk(t.TempDir(), "http://localhost:5000")
	if err != nil {
		t.Fatalf("NewLocalDisk() error = %v", err)
	}

	ctx := context.Background()

	first, err := store.Store(ctx, "same.png", "image/png", strings.NewReader("one"), 3)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	second, err := store.Store(ctx, "same.png", "image/png", strings.NewReader("two"), 3)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	if first.DeletionKey == second.DeletionKey {
		t.Errorf("Two stores of the same file name share key %q", first.DeletionKey)
	}
}

func TestNewLocalDisk_RequiresDir(t *testing.T) {
	if _, err := NewLocalDisk("", "http://localhost:5000"); err == nil {
		t.Error("NewLocalDisk() accepted an empty directory")
	}
}
