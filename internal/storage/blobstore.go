// Package storage persists attachment blobs on local disk and hands out
// durable public locators for them.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
)

// PublicPrefix is the URL namespace under which stored blobs are served.
// References that already point here are considered durable and are never
// rewritten by the import pipeline.
const PublicPrefix = "/files"

// LocalStore copies blobs into a single flat directory under
// collision-resistant names and serves them from PublicPrefix.
type LocalStore struct {
	blobDir string
}

// NewLocalStore creates a local blob store rooted at blobDir.
func NewLocalStore(blobDir string) (*LocalStore, error) {
	if err := os.MkdirAll(blobDir, 0755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &LocalStore{blobDir: blobDir}, nil
}

// StoreBlob copies the file at sourcePath into the store under a fresh
// ULID-based name that preserves originalName's extension, and returns the
// public locator for it. The source file is left untouched.
func (s *LocalStore) StoreBlob(sourcePath, originalName string) (string, error) {
	name := ulid.Make().String() + normalizeExtension(originalName)
	destPath := filepath.Join(s.blobDir, name)

	source, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer source.Close()

	// Write to a temp file in the same directory so the final rename is
	// atomic and a failed copy never leaves a half-written blob behind.
	tmpFile, err := os.CreateTemp(s.blobDir, "blob_tmp_")
	if err != nil {
		return "", fmt.Errorf("create temp blob: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath) // Clean up if we didn't rename
	}()

	if _, err := io.Copy(tmpFile, source); err != nil {
		return "", fmt.Errorf("copy blob: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("close temp blob: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return "", fmt.Errorf("finalize blob: %w", err)
	}

	return path.Join(PublicPrefix, name), nil
}

// BlobDir returns the directory blobs are stored in, for static serving.
func (s *LocalStore) BlobDir() string {
	return s.blobDir
}

// normalizeExtension returns a lowercased, filesystem-safe extension for
// the given name, or empty string if it has none.
func normalizeExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return ext
}
