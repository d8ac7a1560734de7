package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rgehrsitz/finfree/internal/config"
	"github.com/rgehrsitz/finfree/internal/domain"
)

// FileStore keeps the state in a YAML ledger file
type FileStore struct {
	Path   string
	parser *config.InputParser
}

// NewFileStore creates a store backed by the file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path, parser: config.NewInputParser()}
}

func (f *FileStore) Location() string {
	return f.Path
}

// Load reads and validates the ledger file
func (f *FileStore) Load(ctx context.Context) (*domain.AppState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(f.Path); errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f.parser.LoadFromFile(f.Path)
}

// Save writes the state to a temporary file next to Path and renames it into place,
// so readers never observe a partially written ledger.
func (f *FileStore) Save(ctx context.Context, state *domain.AppState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := f.parser.Marshal(state)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, filePerm(f.Path)); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, f.Path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.Path, err)
	}
	return nil
}

func (f *FileStore) Close() error {
	return nil
}

// filePerm keeps the mode of an existing ledger file
func filePerm(path string) fs.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o600
}
