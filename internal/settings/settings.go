// Package settings is a small key-value persistence surface for
// client-local state such as the budget. Values are JSON-encoded; the file
// is read once at load and rewritten on every change.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound signals a key with no stored value.
var ErrNotFound = errors.New("setting not found")

// Store is get/set by key. Injected into the client so the backing medium
// can be swapped.
type Store interface {
	// Get unmarshals the value under key into out.
	Get(key string, out any) error
	// Set marshals value under key and persists immediately.
	Set(key string, value any) error
}

// FileStore keeps all settings in one JSON file.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]json.RawMessage
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		values: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.values); err != nil {
			return nil, fmt.Errorf("parse settings file: %w", err)
		}
	}
	return s, nil
}

func (s *FileStore) Get(key string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.values[key]
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode setting %q: %w", key, err)
	}
	return nil
}

func (s *FileStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %q: %w", key, err)
	}
	s.values[key] = raw

	return s.flushLocked()
}

func (s *FileStore) flushLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
