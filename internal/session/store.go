package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go-recruitart-client/internal/models"
)

// Store persists the token pair as a small JSON file. It is read once at
// startup, written on every successful credential flow and removed on
// logout or when resolution rejects the persisted token.
type Store struct {
	path string
}

// storedTokens is the on-disk shape, keyed the way the backend names the
// pair.
type storedTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted tokens, or zero tokens when none are stored.
func (s *Store) Load() (models.Tokens, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Tokens{}, nil
		}
		return models.Tokens{}, fmt.Errorf("failed to read token store: %w", err)
	}

	var st storedTokens
	if err := json.Unmarshal(data, &st); err != nil {
		return models.Tokens{}, fmt.Errorf("failed to parse token store: %w", err)
	}
	return models.Tokens{Access: st.AccessToken, Refresh: st.RefreshToken}, nil
}

func (s *Store) Save(t models.Tokens) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create token store directory: %w", err)
	}
	data, err := json.MarshalIndent(storedTokens{AccessToken: t.Access, RefreshToken: t.Refresh}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}
	// 0600: bearer credentials
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token store: %w", err)
	}
	return nil
}

// Clear removes the stored tokens. Missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear token store: %w", err)
	}
	return nil
}
