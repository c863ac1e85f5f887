package storage

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ampliar/clinic-data-gateway/internal/core/ports/out"
)

// FileStorage keeps each key as one file under a directory. It is the durable
// client storage of the session: two small string entries, written on login,
// read at startup, removed on logout.
type FileStorage struct {
	dir    string
	mu     sync.Mutex
	logger out.LoggerPort
}

func NewFileStorage(dir string, logger out.LoggerPort) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	return &FileStorage{
		dir:    dir,
		logger: logger,
	}, nil
}

func (s *FileStorage) path(key string) string {
	// Keys are internal constants, but keep path traversal out anyway.
	return filepath.Join(s.dir, strings.ReplaceAll(key, string(os.PathSeparator), "_"))
}

func (s *FileStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}

	return string(data), true
}

func (s *FileStorage) Set(key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path(key), []byte(value), 0o600); err != nil {
		s.logger.Error("storage.set.failed", out.LogFields{
			"key":   key,
			"error": err.Error(),
		})
		return err
	}

	return nil
}

func (s *FileStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
