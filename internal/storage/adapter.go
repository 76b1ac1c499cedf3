package storage

import (
	"errors"
	"fmt"

	"github.com/samber/mo"

	"github.com/alexisbeaulieu97/sablier/internal/logger"
	"github.com/alexisbeaulieu97/sablier/internal/theme"
	sablierrors "github.com/alexisbeaulieu97/sablier/pkg/errors"
)

// Adapter reads and writes one serialized theme per key on a Backend. It never
// panics and never returns an error from Load or Save; Read exposes the
// reason a load failed for callers that want to report it.
type Adapter struct {
	backend  Backend
	defaults theme.Theme
	log      *logger.Logger
}

// AdapterOption customizes an Adapter.
type AdapterOption func(*Adapter)

// WithDefaults sets the theme used to fill families missing from stored data.
func WithDefaults(t theme.Theme) AdapterOption {
	return func(a *Adapter) {
		a.defaults = t.Clone()
	}
}

// WithLogger routes adapter diagnostics to log.
func WithLogger(log *logger.Logger) AdapterOption {
	return func(a *Adapter) {
		a.log = log
	}
}

// NewAdapter wraps backend. A nil backend behaves as Unavailable.
func NewAdapter(backend Backend, opts ...AdapterOption) *Adapter {
	if backend == nil {
		backend = Unavailable{}
	}
	a := &Adapter{backend: backend, defaults: theme.Light(), log: logger.Nop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Read loads and validates the theme stored under key. The error is a
// PersistenceError wrapping ErrNotFound or ErrUnavailable, or a ParseError or
// ValidationError for data that cannot be trusted. Corrupt data is left in
// place.
func (a *Adapter) Read(key string) (t theme.Theme, err error) {
	defer func() {
		if r := recover(); r != nil {
			t = theme.Theme{}
			err = sablierrors.NewPersistenceError(key, "load", fmt.Errorf("%w: %v", ErrUnavailable, r))
		}
	}()

	data, err := a.backend.Get(key)
	if err != nil {
		return theme.Theme{}, sablierrors.NewPersistenceError(key, "load", err)
	}

	decoded, err := theme.Decode(data, a.defaults)
	if err != nil {
		var parseErr *sablierrors.ParseError
		if errors.As(err, &parseErr) && parseErr.Path == "" {
			parseErr.Path = key
		}
		return theme.Theme{}, err
	}
	return decoded, nil
}

// Load returns the theme stored under key, or None when it is missing,
// unreadable or invalid.
func (a *Adapter) Load(key string) mo.Option[theme.Theme] {
	t, err := a.Read(key)
	if err != nil {
		if !IsNotFound(err) {
			a.log.With("storage_key", key).WarnErr(err, "stored theme ignored")
		}
		return mo.None[theme.Theme]()
	}
	return mo.Some(t)
}

// Save stores t under key and reports whether it was written.
func (a *Adapter) Save(key string, t theme.Theme) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			a.log.With("storage_key", key).WarnErr(fmt.Errorf("%v", r), "theme storage panicked")
			ok = false
		}
	}()

	data, err := theme.Encode(t)
	if err != nil {
		a.log.With("storage_key", key).WarnErr(err, "theme not serializable")
		return false
	}
	if err := a.backend.Set(key, data); err != nil {
		a.log.With("storage_key", key).WarnErr(sablierrors.NewPersistenceError(key, "save", err), "theme not persisted")
		return false
	}
	return true
}

// IsNotFound reports whether err means nothing was stored under the key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable reports whether err means the backend could not be reached.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
