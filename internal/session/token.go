package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"
)

// TokenValidity mirrors the browser cookie's lifetime: one hour from
// issuance, not sliding.
const TokenValidity = time.Hour

// Store persists the session credential between portal invocations. It is
// the file-backed analog of the browser's user_token cookie: one token, one
// absolute expiry, last write wins.
type Store interface {
	// Set persists the token with the given absolute expiry.
	Set(token string, expiry time.Time) error
	// Get returns the token, or ok == false when none is stored or the
	// stored one has expired.
	Get() (token string, ok bool)
	// Clear removes the token. Clearing an empty store is a no-op.
	Clear() error
}

type storedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FileStore keeps the token in a single JSON file, created 0600.
type FileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

func (s *FileStore) Set(token string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(storedToken{Token: token, ExpiresAt: expiry})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		return "", false
	}
	if st.Token == "" || !s.now().Before(st.ExpiresAt) {
		return "", false
	}
	return st.Token, true
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore is an in-process Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu     sync.Mutex
	token  string
	expiry time.Time
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Set(token string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.expiry = token, expiry
	return nil
}

func (s *MemoryStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || !s.now().Before(s.expiry) {
		return "", false
	}
	return s.token, true
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.expiry = "", time.Time{}
	return nil
}
