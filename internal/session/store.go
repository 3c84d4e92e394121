package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrTokenNotFound is returned when no token is persisted.
var ErrTokenNotFound = errors.New("token not found")

// TokenStore persists the bearer token across process restarts. The
// token is the only state this package persists; absence means logged
// out.
type TokenStore interface {
	// Save persists the token, replacing any previous one.
	Save(token string) error

	// Load returns the persisted token, or ErrTokenNotFound.
	Load() (string, error)

	// Clear removes the persisted token. Clearing an empty store is
	// not an error.
	Clear() error
}

const tokenFileName = "auth_token"

// FileTokenStore keeps the token in a single file on the local
// filesystem.
type FileTokenStore struct {
	baseDir string
}

// NewFileTokenStore creates a token store rooted at baseDir.
// If baseDir is empty, uses ~/.hayctl/
func NewFileTokenStore(baseDir string) (*FileTokenStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".hayctl")
	}

	// Create directory with 0700 permissions
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	log.Debug().Str("baseDir", baseDir).Msg("token store initialized")

	return &FileTokenStore{baseDir: baseDir}, nil
}

// Save writes the token atomically via a temp file and rename.
func (s *FileTokenStore) Save(token string) error {
	tokenPath := filepath.Join(s.baseDir, tokenFileName)
	tempPath := tokenPath + ".tmp"

	if err := os.WriteFile(tempPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}

	if err := os.Rename(tempPath, tokenPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

// Load reads the persisted token.
func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, tokenFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrTokenNotFound
	}

	return token, nil
}

// Clear removes the token file.
func (s *FileTokenStore) Clear() error {
	err := os.Remove(filepath.Join(s.baseDir, tokenFileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// MemoryTokenStore is an in-memory TokenStore for tests and embedded
// use.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

// NewMemoryTokenStore creates an empty in-memory store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Save stores the token.
func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.set = true
	return nil
}

// Load returns the stored token, or ErrTokenNotFound.
func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set || s.token == "" {
		return "", ErrTokenNotFound
	}
	return s.token, nil
}

// Clear removes the stored token.
func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.set = false
	return nil
}
