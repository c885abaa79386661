// Package storage persists serialized model artifacts on the local disk or
// in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

// FileStore keeps the artifact at a single path. Saves write a temporary
// file next to it and rename it into place.
type FileStore struct {
	path string
}

var _ ports.ModelStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) ([]byte, time.Time, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, time.Time{}, ports.ErrModelNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read model %s: %w", s.path, err)
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("stat model %s: %w", s.path, err)
	}
	return data, info.ModTime().UTC(), nil
}

func (s *FileStore) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp model: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp model: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace model: %w", err)
	}
	return nil
}
