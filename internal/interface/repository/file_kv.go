package repository

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"pilotbase-logbook/internal/domain/repository"

	"github.com/spf13/afero"
)

// FileKeyValueStore stores each key as a file under dir/namespace.
//
// Layout:
//
//	data_dir/
//	  pilotbase/
//	    savedFlights.blob
type FileKeyValueStore struct {
	mu  sync.RWMutex
	fs  afero.Fs
	dir string
}

// NewFileKeyValueStore creates the namespace directory on fs
func NewFileKeyValueStore(fs afero.Fs, dataDir, namespace string) (*FileKeyValueStore, error) {
	dir := filepath.Join(dataDir, namespace)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store dir %q: %w", dir, err)
	}
	return &FileKeyValueStore{fs: fs, dir: dir}, nil
}

func (s *FileKeyValueStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".blob")
}

func (s *FileKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, repository.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return data, nil
}

// Set writes to a temp file and renames it so a crash never leaves a
// half-written value behind.
func (s *FileKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	final := s.path(key)
	tmp := final + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	if err := s.fs.Rename(tmp, final); err != nil {
		s.fs.Remove(tmp)
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *FileKeyValueStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fs.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (s *FileKeyValueStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fs.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("clear %q: %w", s.dir, err)
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("clear %q: %w", s.dir, err)
	}
	return nil
}

func (s *FileKeyValueStore) Close() error {
	return nil
}
