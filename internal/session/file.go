package session

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/seaquill/ferrylink/internal/errs"
	"github.com/seaquill/ferrylink/internal/model"
)

// File persists the session as a JSON file under the user config dir.
type File struct {
	path string
}

var _ Store = (*File)(nil)

// NewFile creates a file-backed store at path. Empty path places the file in
// DefaultDir.
func NewFile(path string) *File {
	if path == "" {
		path = filepath.Join(DefaultDir(), "session.json")
	}
	return &File{path: path}
}

// DefaultDir resolves the per-user configuration directory.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "ferrylink")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ferrylink")
}

func (f *File) Get(context.Context) (*model.Session, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	var s model.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	if s.BearerToken() == "" {
		return nil, errs.ErrNoSession
	}
	return &s, nil
}

func (f *File) Set(_ context.Context, s *model.Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	// Write-then-rename so a crash never leaves a truncated session behind.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *File) Clear(context.Context) error {
	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
