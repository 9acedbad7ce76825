package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// TokenStore is a persistent slot for the bearer token
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	Clear() error
}

const tokenKey = "token"

// FileTokenStore keeps the token in a small JSON key/value file, so a token
// survives restarts of the client process.
type FileTokenStore struct {
	path string
	mu   sync.Mutex
}

// NewFileTokenStore stores the token at path; parent directories are created on write
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Token returns the stored token or "" when none is stored
func (s *FileTokenStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.load()
	if err != nil {
		return "", err
	}
	return kv[tokenKey], nil
}

// SetToken replaces the stored token
func (s *FileTokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.load()
	if err != nil {
		return err
	}
	kv[tokenKey] = token
	return s.save(kv)
}

// Clear removes the stored token and keeps any other keys
func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kv, err := s.load()
	if err != nil {
		return err
	}
	delete(kv, tokenKey)
	return s.save(kv)
}

func (s *FileTokenStore) load() (map[string]string, error) {
	kv := map[string]string{}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return kv, nil
	}
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return kv, nil
	}
	if err := json.Unmarshal(b, &kv); err != nil {
		return nil, err
	}
	return kv, nil
}

func (s *FileTokenStore) save(kv map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	b, err := json.Marshal(kv)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}
