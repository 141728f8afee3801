package watchlist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSONStore keeps the list in a single JSON file.
type JSONStore struct {
	path string
}

var _ Store = (*JSONStore)(nil)

// NewJSONStore returns a store backed by path. The file is created on first Save.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file.
func (s *JSONStore) Path() string { return s.path }

// Load reads the stored list. A missing file is an empty list.
func (s *JSONStore) Load(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("read watched: %w", err)
	}
	return decode(data)
}

// Save replaces the file contents via a temp file and rename.
func (s *JSONStore) Save(ctx context.Context, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encode(entries)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".watched-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write watched: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace watched: %w", err)
	}
	return nil
}

// Close is a no-op; the file is not held open.
func (s *JSONStore) Close() error { return nil }
