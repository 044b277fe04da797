package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// tokenFile is the on-disk layout
type tokenFile struct {
	Token   string    `yaml:"token"`
	SavedAt time.Time `yaml:"saved_at"`
}

// FileStore keeps the token in a YAML file readable only by the owner
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore creates a store backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// Load returns the saved token or ErrNoToken
func (s *FileStore) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}

	var f tokenFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return "", fmt.Errorf("parsing token file: %w", err)
	}
	if f.Token == "" {
		return "", ErrNoToken
	}
	return f.Token, nil
}

// Save writes the token, creating parent directories as needed
func (s *FileStore) Save(ctx context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}

	data, err := yaml.Marshal(tokenFile{Token: token, SavedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("encoding token file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing token file: %w", err)
	}
	return nil
}

// Clear removes the token file; a missing file is not an error
func (s *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
