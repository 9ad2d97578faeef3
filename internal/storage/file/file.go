// Package file stores values as files under the user's config directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/and161185/atns-client/internal/errs"
)

// DefaultDir returns $XDG_CONFIG_HOME/atns or ~/.config/atns.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "atns")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "atns")
}

var reKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Store keeps one <key>.json file per key.
type Store struct{ dir string }

// New returns a file store rooted at dir (DefaultDir when empty).
func New(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{dir: dir}
}

// Dir is the directory the store writes to.
func (s *Store) Dir() string { return s.dir }

// Path returns the file backing key.
func (s *Store) Path(key string) string { return filepath.Join(s.dir, key+".json") }

// Get reads the file for key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	if !reKey.MatchString(key) {
		return nil, fmt.Errorf("bad key %q", key)
	}
	b, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.ErrNotFound
	}
	return b, err
}

// Put writes the file for key via temp file + rename so readers never see a partial blob.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	if !reKey.MatchString(key) {
		return fmt.Errorf("bad key %q", key)
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path(key))
}
