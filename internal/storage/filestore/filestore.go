// Package filestore is the disk-backed blob store for uploaded
// documents. Files are stored under generated names; metadata lives in
// the database and references blobs by the opaque storage path this
// package returns.
package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore manages document blobs under a single data directory.
type FileStore struct {
	dataDir string
}

// SaveResult describes a stored blob.
type SaveResult struct {
	// StoragePath is the blob's opaque handle, relative to the data dir
	StoragePath string
	// Size is the number of bytes written
	Size int64
}

// New creates a FileStore, creating the data directory if needed.
func New(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", dataDir, err)
	}
	return &FileStore{dataDir: dataDir}, nil
}

// Save streams reader to disk under a generated name. The write goes to
// a temp file first, then fsync and an atomic rename; a failed write
// never leaves a partial blob behind.
func (fs *FileStore) Save(reader io.Reader, originalName string) (*SaveResult, error) {
	storageName := generateStorageName(originalName)
	fullPath := filepath.Join(fs.dataDir, storageName)
	tmpPath := fullPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	size, err := io.Copy(f, reader)
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("write blob: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("sync blob: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("close blob: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("rename blob: %w", err)
	}

	return &SaveResult{
		StoragePath: storageName,
		Size:        size,
	}, nil
}

// Open opens a blob for reading. The caller must close the file.
func (fs *FileStore) Open(storagePath string) (*os.File, error) {
	f, err := os.Open(filepath.Join(fs.dataDir, storagePath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob not found: %s", storagePath)
		}
		return nil, fmt.Errorf("open blob %s: %w", storagePath, err)
	}
	return f, nil
}

// Delete removes a blob. Deleting a missing blob is not an error.
func (fs *FileStore) Delete(storagePath string) error {
	err := os.Remove(filepath.Join(fs.dataDir, storagePath))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob %s: %w", storagePath, err)
	}
	return nil
}

// Exists reports whether a blob is present on disk.
func (fs *FileStore) Exists(storagePath string) bool {
	_, err := os.Stat(filepath.Join(fs.dataDir, storagePath))
	return err == nil
}

// generateStorageName builds a collision-free storage name keeping the
// original extension: {base}-{uuid}{ext}. The base is sanitized so a
// hostile original name cannot traverse outside the data dir.
func generateStorageName(originalName string) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	base = sanitize(base)
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s-%s%s", base, uuid.NewString(), ext)
}

// sanitize keeps letters, digits, dash, underscore and dot.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
