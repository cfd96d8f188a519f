package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Store persists the session as JSON on disk so a restart does not
// force re-login. The JSON keys (token, userId, userEmail) are stable;
// older session files keep working across releases.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	if path == "" {
		path = DefaultSessionPath()
	}
	return &Store{Path: path}
}

func DefaultSessionPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "docme", "session.json")
	}
	return filepath.Join(base, "docme", "session.json")
}

// Load returns the stored session, or nil when none exists.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	if !sess.Valid() {
		return nil, nil
	}
	return &sess, nil
}

// Save writes the session with user-only permissions.
func (s *Store) Save(sess *Session) error {
	if !sess.Valid() {
		return errors.New("refusing to save a session without a token")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o600)
}

// Clear removes the session file. Clearing an absent session is not an
// error.
func (s *Store) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
