package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"lessonloop/internal/models"
)

// FileStore keeps the serialized run list in one JSON file on disk.
// It is the default backend and the closest analog of the original
// single local-storage slot.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load() ([]models.ClassRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		// Missing file means nothing saved yet.
		return nil, nil
	}
	return decodeRuns(data), nil
}

func (s *FileStore) Save(runs []models.ClassRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := encodeRuns(runs)
	if err != nil {
		return fmt.Errorf("failed to encode runs: %w", err)
	}

	// Write to a temp file and rename so a crash mid-write cannot
	// leave a half-written slot behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
