package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"inventory-service/pkg/config"
)

// localStore is the local-filesystem driver. Assets live under root and are
// served by the frontend's static file handler under baseURL.
type localStore struct {
	root    string // directory files are written to
	baseURL string // public URL prefix for returned paths
}

func newLocalStore(cfg *config.StorageConfig) *localStore {
	root := cfg.LocalDir
	if !filepath.IsAbs(root) {
		cwd, _ := os.Getwd()
		root = filepath.Join(cwd, root)
	}
	return &localStore{
		root:    root,
		baseURL: strings.TrimRight(cfg.PublicURL, "/"),
	}
}

func (s *localStore) Put(name string, content []byte) (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("storage/local: mkdir: %w", err)
	}
	full := filepath.Join(s.root, name)
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return "", fmt.Errorf("storage/local: write %s: %w", name, err)
	}
	return s.baseURL + "/" + name, nil
}

func (s *localStore) Delete(path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage/local: %s does not exist", path)
		}
		return fmt.Errorf("storage/local: delete %s: %w", path, err)
	}
	return nil
}

func (s *localStore) Exists(path string) bool {
	full, err := s.resolve(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(full)
	return err == nil
}

// resolve maps a public path back to a file under root, rejecting anything
// that escapes the upload directory.
func (s *localStore) resolve(path string) (string, error) {
	name := strings.TrimPrefix(path, s.baseURL)
	name = strings.TrimPrefix(name, "/")
	clean := filepath.Clean(name)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("storage/local: invalid path %q", path)
	}
	return filepath.Join(s.root, clean), nil
}
