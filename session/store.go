package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"rama-crm/logging"
	"rama-crm/models"
	"rama-crm/utils"
)

// Store holds the signed-in user and bearer token. It is created once at
// start-up and handed to every component that needs it. Only the login and
// logout flows write to it.
type Store struct {
	mu    sync.RWMutex
	path  string
	user  *models.User
	token string
}

type persisted struct {
	User      *models.User `json:"user"`
	AuthToken string       `json:"authToken"`
}

// Open restores the session persisted at path. A missing file yields an
// empty session; an empty path keeps the session in memory only.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		logging.Logger.Warnf("Event ID: SESSION_CORRUPT, Description: Discarding unreadable session file %s: %v", path, err)
		return s, nil
	}
	s.user = p.User
	s.token = p.AuthToken
	return s, nil
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Role is the role of the signed-in user, or "" without a session.
func (s *Store) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Role
}

// Authenticated reports whether a usable token is present.
func (s *Store) Authenticated(now time.Time) bool {
	token := s.Token()
	return token != "" && !utils.TokenExpired(token, now)
}

func (s *Store) Set(user models.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.token = token
	return s.persistLocked()
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	if s.path == "" {
		return nil
	}
	data, err := json.Marshal(persisted{User: s.user, AuthToken: s.token})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}
