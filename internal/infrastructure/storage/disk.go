// Package storage persists uploaded recipe photos on local disk and hands
// back the reference path the core stores on the recipe.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore writes uploads under a single directory. Filenames are prefixed
// with a fresh UUID so concurrent uploads of the same file never collide.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save streams the upload to disk and returns its public reference path.
func (s *DiskStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + "-" + filepath.Base(filename)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}

	return "/uploads/" + name, nil
}
