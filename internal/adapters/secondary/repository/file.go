// Package repository stores deck source files on disk.
package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/fredcamaral/deckmark/internal/domain/ports"
)

var (
	// ErrEmptyPath is returned when no deck path is given
	ErrEmptyPath = errors.New("deck path cannot be empty")

	// ErrNotRegularFile is returned when the deck path names a directory or device
	ErrNotRegularFile = errors.New("deck path is not a regular file")
)

// FileRepository reads and writes decks through a FileSystem
type FileRepository struct {
	fs ports.FileSystem
}

// NewFileRepository creates a repository on fs
func NewFileRepository(fs ports.FileSystem) *FileRepository {
	if fs == nil {
		fs = ports.NewRealFileSystem()
	}
	return &FileRepository{fs: fs}
}

// Load returns the raw content of the deck at path
func (r *FileRepository) Load(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := r.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("deck file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("checking deck file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}

	content, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck %s: %w", path, err)
	}

	return content, nil
}

// Save replaces the deck at path with content. The new content is written
// next to the target and renamed over it, keeping the original mode. The
// temporary file is removed when either step fails.
func (r *FileRepository) Save(ctx context.Context, path string, content []byte) error {
	if path == "" {
		return ErrEmptyPath
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	abs, err := r.fs.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving deck path: %w", err)
	}

	perm := os.FileMode(0644)
	if info, err := r.fs.Stat(abs); err == nil {
		if !info.Mode().IsRegular() {
			return fmt.Errorf("%w: %s", ErrNotRegularFile, path)
		}
		perm = info.Mode().Perm()
	}

	tmp := tempName(abs)
	if err := r.fs.WriteFile(tmp, content, perm); err != nil {
		_ = r.fs.Remove(tmp)
		return fmt.Errorf("writing deck %s: %w", path, err)
	}

	if err := r.fs.Rename(tmp, abs); err != nil {
		_ = r.fs.Remove(tmp)
		return fmt.Errorf("replacing deck %s: %w", path, err)
	}

	return nil
}

// tempName returns a hidden sibling of path, unique per save so concurrent
// saves never share a temporary file
func tempName(path string) string {
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
}

// Ensure FileRepository implements ports.DeckRepository
var _ ports.DeckRepository = (*FileRepository)(nil)
