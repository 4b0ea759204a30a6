// Package credentials persists the session token, its expiration and the
// cached profile across process restarts. The session controller is the
// only writer; the request pipeline reads the token value only.
package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/catalogctl/internal/catalog"
)

// Credentials is the persisted session material.
type Credentials struct {
	Token     string           `yaml:"token,omitempty"`
	ExpiresAt int64            `yaml:"expires_at,omitempty"` // epoch seconds
	Profile   *catalog.Profile `yaml:"profile,omitempty"`
}

// Store is a synchronous file-backed credential holder.
type Store struct {
	path string

	mu    sync.Mutex
	creds Credentials
}

// DefaultPath returns the default credentials file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "catalogctl", "credentials.yml")
}

// Open loads the store at path, tolerating a missing file.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s.creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}
	return s, nil
}

// Save persists creds atomically (tmp + rename) with owner-only permissions.
func (s *Store) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating credentials dir: %w", err)
	}
	raw, err := yaml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, raw, 0600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing credentials: %w", err)
	}
	s.creds = creds
	return nil
}

// Clear wipes every field and removes the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = Credentials{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing credentials: %w", err)
	}
	return nil
}

// Token returns the stored token value, or "". Implements the pipeline's
// token source.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.Token
}

// Profile returns the cached profile, or nil.
func (s *Store) Profile() *catalog.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds.Profile
}

// HasToken reports whether a token value is stored.
func (s *Store) HasToken() bool {
	return s.Token() != ""
}

// Expired reports whether the stored token has passed its expiration.
// A store without a token is expired by definition.
func (s *Store) Expired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds.Token == "" {
		return true
	}
	return s.creds.ExpiresAt > 0 && now.Unix() >= s.creds.ExpiresAt
}
