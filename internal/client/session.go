package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pharmalytics/nexus-go/internal/model"
)

// Session holds the credentials of an authenticated user. Token and user are
// always saved and cleared together.
type Session struct {
	Token string          `json:"auth_token"`
	User  *model.UserInfo `json:"user,omitempty"`
}

// SessionStore persists a session across client instances.
type SessionStore interface {
	// Load returns the stored session. A missing session is an empty
	// session, not an error.
	Load() (Session, error)
	Save(Session) error
	// Clear removes the stored session. Clearing an absent session is a no-op.
	Clear() error
}

// FileSessionStore persists the session as a JSON file on disk.
type FileSessionStore struct {
	path string
}

// NewFileSessionStore creates a session store backed by the given file path.
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

// DefaultSessionPath returns the per-user session file location.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pharmalytics-nexus", "session.json"), nil
}

// Load reads the stored session, returning an empty session when none exists.
func (s *FileSessionStore) Load() (Session, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Save writes the session to disk, creating the parent directory if needed.
func (s *FileSessionStore) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// Clear removes the session file. Removing an absent file is not an error.
func (s *FileSessionStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemorySessionStore keeps the session in memory only. Useful for tests and
// short-lived tooling that should not touch the filesystem.
type MemorySessionStore struct {
	mu   sync.Mutex
	sess Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (s *MemorySessionStore) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess, nil
}

func (s *MemorySessionStore) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess
	return nil
}

func (s *MemorySessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = Session{}
	return nil
}
