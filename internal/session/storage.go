package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Storage is the substrate the session record lives in. Operations are total:
// a missing key is ("", false), never an error. Two implementations exist:
// MemoryStorage for a single process and FileStorage for sessions shared by
// sibling processes (the cross-tab case).
type Storage interface {
	Get(key string) (string, bool)
	Set(key string, value string)
	Delete(key string)
}

type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStorage) Set(key string, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
}

func (s *MemoryStorage) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
}

// FileStorage keeps the session record in a small JSON file. Reads always go
// to disk so writes from sibling processes are visible immediately. The file
// is deliberately placed under a temp-style path and removed on Close: the
// session must not outlive its owning processes.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) (*FileStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return &FileStorage{path: path}, nil
}

func (s *FileStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.load()
	v, ok := values[key]
	return v, ok
}

func (s *FileStorage) Set(key string, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.load()
	values[key] = value
	s.save(values)
}

func (s *FileStorage) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.load()
	if _, ok := values[key]; !ok {
		return
	}
	delete(values, key)
	s.save(values)
}

// Close removes the backing file, ending the session for every process
// sharing it.
func (s *FileStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileStorage) load() map[string]string {
	values := map[string]string{}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return values
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return map[string]string{}
	}
	return values
}

func (s *FileStorage) save(values map[string]string) {
	raw, err := json.Marshal(values)
	if err != nil {
		return
	}
	// Best effort; storage operations are total by contract.
	_ = os.WriteFile(s.path, raw, 0o600)
}
