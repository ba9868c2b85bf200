package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nikbrunner/bookit/internal/model"
)

// Storage defines the interface for persisting bookmarks.
type Storage interface {
	Load() (*model.Collection, error)
	Save(c *model.Collection) error
}

var _ Storage = (*YAMLStorage)(nil)

// YAMLStorage implements Storage using a single YAML file.
type YAMLStorage struct {
	path string
}

// NewYAMLStorage creates a new YAMLStorage with the given file path.
func NewYAMLStorage(path string) *YAMLStorage {
	return &YAMLStorage{path: path}
}

// Load reads and validates the collection.
func (s *YAMLStorage) Load() (*model.Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, model.Errorf(model.ErrNotFound, "No config found at '%s'.", s.path).Wrap(err)
	}

	c, err := Decode(data)
	if err != nil {
		return nil, model.Errorf(model.ErrParse, "Cannot parse config at '%s': %v.", s.path, err).Wrap(err)
	}

	return c, nil
}

// Save replaces the file with the serialized collection. The content is
// written to a temporary file next to the target and renamed over it, so
// the file holds either the old or the new collection. Symlinks are
// followed and the existing file mode is kept.
func (s *YAMLStorage) Save(c *model.Collection) error {
	data, err := Encode(c)
	if err != nil {
		return model.Errorf(model.ErrIO, "Cannot encode config for '%s': %v.", s.path, err).Wrap(err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return model.Errorf(model.ErrIO, "Cannot write config at '%s': %v.", s.path, err).Wrap(err)
	}
	return nil
}

// Create writes a new empty store. It fails if anything exists at the path.
// Creates the directory if it doesn't exist.
func (s *YAMLStorage) Create() error {
	if _, err := os.Lstat(s.path); err == nil {
		return model.Errorf(model.ErrAlreadyExists, "Configuration file already exists at '%s'.", s.path)
	}

	data, err := Encode(model.NewCollection())
	if err != nil {
		return model.Errorf(model.ErrIO, "Cannot encode config for '%s': %v.", s.path, err).Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return model.Errorf(model.ErrIO, "Cannot create directory for '%s': %v.", s.path, err).Wrap(err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return model.Errorf(model.ErrAlreadyExists, "Configuration file already exists at '%s'.", s.path).Wrap(err)
		}
		return model.Errorf(model.ErrIO, "Cannot create config at '%s': %v.", s.path, err).Wrap(err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return model.Errorf(model.ErrIO, "Cannot write config at '%s': %v.", s.path, err).Wrap(err)
	}
	if err := f.Close(); err != nil {
		return model.Errorf(model.ErrIO, "Cannot write config at '%s': %v.", s.path, err).Wrap(err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	target := path
	var mode fs.FileMode = 0644

	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := filepath.Join(dir, "."+filepath.Base(target)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, mode); err != nil {
		os.Remove(tmp)
		return err
	}
	// WriteFile is subject to the umask.
	if err := os.Chmod(tmp, mode); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// ExpandPath expands a leading "~" to the home directory and makes the
// result absolute.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(homeDir, path[1:])
	}
	return filepath.Abs(path)
}

// DefaultConfigPath is the store path used when none is given.
const DefaultConfigPath = "~/.bookit"
