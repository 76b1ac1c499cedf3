package preference

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/alexisbeaulieu97/sablier/internal/logger"
	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

// File follows a small text file holding "light" or "dark", the format
// desktop portal hooks and dotfile scripts typically write.
type File struct {
	*broadcaster

	fs   afero.Fs
	path string
	log  *logger.Logger
}

// NewFile reads path once and returns the source. A missing or unreadable
// file leaves the preference unknown until a valid value appears.
func NewFile(fs afero.Fs, path string, log *logger.Logger) *File {
	if log == nil {
		log = logger.Nop()
	}
	f := &File{
		broadcaster: newBroadcaster(),
		fs:          fs,
		path:        filepath.Clean(path),
		log:         log.With("preference_file", path),
	}
	f.Reload()
	return f
}

// Reload re-reads the file and publishes its value. It reports whether the
// preference changed.
func (f *File) Reload() bool {
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		f.log.Debug("preference file not readable")
		return false
	}

	// gsettings writes "prefer-dark".
	raw := strings.TrimPrefix(strings.TrimSpace(string(data)), "prefer-")
	scheme, err := theme.ParseResolvedScheme(raw)
	if err != nil {
		f.log.WarnErr(err, "preference file ignored")
		return false
	}
	return f.publish(scheme)
}

// Start watches the file's directory and reloads on every write, create or
// rename that touches the file. It blocks until ctx is cancelled or the
// watcher fails to start.
func (f *File) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create preference watcher: %w", err)
	}
	defer watcher.Close()

	// Editors and portal hooks often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(f.path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != f.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				f.Reload()
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			f.log.WarnErr(werr, "preference watcher error")
		}
	}
}
