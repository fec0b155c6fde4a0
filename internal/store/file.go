package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// currentRevision is the only revision id a FileStore knows.
const currentRevision = "current"

// FileStore keeps one JSON file per team in a directory.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(team string) (string, error) {
	key, err := teamKey(team)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *FileStore) Load(ctx context.Context, team string) ([]byte, error) {
	p, err := s.path(team)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return b, err
}

// Save writes through a temp file and rename so readers never see half a blob.
func (s *FileStore) Save(ctx context.Context, team string, blob []byte) error {
	p, err := s.path(team)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".state-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

func (s *FileStore) Delete(ctx context.Context, team string) error {
	p, err := s.path(team)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// History reports the current file as the single revision.
func (s *FileStore) History(ctx context.Context, team string, limit int) ([]Revision, error) {
	p, err := s.path(team)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fi, err := os.Stat(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	key, _ := teamKey(team)
	return []Revision{{ID: currentRevision, Team: key, CreatedAt: fi.ModTime().UTC(), Size: int(fi.Size())}}, nil
}

func (s *FileStore) Revision(ctx context.Context, team, id string) ([]byte, error) {
	if id != currentRevision {
		return nil, ErrNotFound
	}
	return s.Load(ctx, team)
}

func (s *FileStore) Close() error { return nil }
