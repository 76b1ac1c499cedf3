package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/spf13/afero"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// File stores each key as <dir>/<key>.json on an afero filesystem.
type File struct {
	fs  afero.Afero
	dir string
	mu  sync.Mutex
}

// NewFile creates a file backend rooted at dir, creating the directory if needed.
func NewFile(fs afero.Fs, dir string) (*File, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	api := afero.Afero{Fs: fs}
	if err := api.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &File{fs: api, dir: dir}, nil
}

// Path returns the file that holds key.
func (f *File) Path(key string) string {
	return filepath.Join(f.dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

// Get implements Backend.
func (f *File) Get(key string) ([]byte, error) {
	data, err := f.fs.ReadFile(f.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return data, nil
}

// Set writes the value atomically through a temporary file and rename.
func (f *File) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.Path(key)
	tmpPath := path + ".tmp"
	if err := f.fs.WriteFile(tmpPath, value, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write temporary file: %v", ErrUnavailable, err)
	}

	if err := f.fs.Rename(tmpPath, path); err != nil {
		_ = f.fs.Remove(tmpPath)
		return fmt.Errorf("%w: failed to rename temporary file: %v", ErrUnavailable, err)
	}
	return nil
}
