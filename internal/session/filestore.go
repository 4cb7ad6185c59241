package session

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileStore persists the session token in a yaml file under the user's
// config directory.
type FileStore struct {
	path string
}

type tokenFile struct {
	Token string `yaml:"token"`
}

// NewFileStore creates a file-backed token store at the given path. An empty
// path uses ~/.config/forumhub/session.yaml.
func NewFileStore(path string) *FileStore {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		path = filepath.Join(home, ".config", "forumhub", "session.yaml")
	}
	return &FileStore{path: path}
}

// LoadToken reads the stored token. A missing file means no session.
func (s *FileStore) LoadToken() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	var f tokenFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return "", err
	}
	return f.Token, nil
}

// SaveToken writes the token, creating the directory if needed. The file is
// owner-readable only.
func (s *FileStore) SaveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(tokenFile{Token: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// ClearToken removes the stored token. A missing file is not an error.
func (s *FileStore) ClearToken() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
