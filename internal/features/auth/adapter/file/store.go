package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"amadeus-cli/internal/features/auth/domain"
)

// Store persists a single token record as a JSON file.
// Each refresh overwrites the record wholesale.
type Store struct {
	path string
}

// NewStore creates a file-backed token store at the given path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the cached token. A missing or unparseable file means
// "no cache" and returns (nil, nil).
func (s *Store) Load() (*domain.CachedToken, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token cache: %w", err)
	}

	var token domain.CachedToken
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, nil
	}

	if token.AccessToken == "" {
		return nil, nil
	}

	return &token, nil
}

// Save writes the token record, creating the state directory on demand
func (s *Store) Save(token domain.CachedToken) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}

	return nil
}
