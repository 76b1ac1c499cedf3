// Package resolver owns the current theme: it restores it from storage,
// resolves the rendered scheme from the forced, explicit and system inputs,
// persists changes and drives every projector.
package resolver

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/sablier/internal/cssvars"
	"github.com/alexisbeaulieu97/sablier/internal/logger"
	"github.com/alexisbeaulieu97/sablier/internal/preference"
	"github.com/alexisbeaulieu97/sablier/internal/storage"
	"github.com/alexisbeaulieu97/sablier/internal/theme"
	sablierrors "github.com/alexisbeaulieu97/sablier/pkg/errors"
)

// Resolver is safe for concurrent use. Operations are serialized; listeners
// run after the operation that triggered them has released the lock.
type Resolver struct {
	mu sync.Mutex

	cfg        Config
	store      Store
	projectors []cssvars.Projector
	observer   preference.Observer
	log        *logger.Logger
	schedule   Scheduler

	started     bool
	resolved    bool
	current     theme.Theme
	system      theme.ResolvedScheme
	systemKnown bool
	unobserve   func()
	closed      bool

	listenersMu sync.Mutex
	nextID      int
	listeners   map[int]func(Event)
}

// New validates cfg and builds an uninitialized Resolver. Call Initialize to
// restore the stored theme and start following the host preference.
func New(cfg Config, opts ...Option) (*Resolver, error) {
	if err := theme.Validator().Struct(cfg); err != nil {
		return nil, configError(err)
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	if cfg.DefaultTheme.ColorScheme == "" && cfg.DefaultTheme.Colors.IsZero() {
		cfg.DefaultTheme = theme.Light()
	} else if err := theme.Validate(cfg.DefaultTheme); err != nil {
		return nil, fmt.Errorf("default theme: %w", err)
	}
	cfg.DefaultTheme = cfg.DefaultTheme.Clone()

	r := &Resolver{
		cfg:       cfg,
		log:       logger.Nop(),
		schedule:  NextTick,
		current:   cfg.DefaultTheme.Clone(),
		listeners: make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.store == nil {
		r.store = storage.NewAdapter(storage.NewMemory(), storage.WithDefaults(cfg.DefaultTheme), storage.WithLogger(r.log))
	}
	if len(r.projectors) == 0 {
		r.projectors = []cssvars.Projector{cssvars.Noop{}}
	}
	r.log = r.log.WithFields(map[string]any{"component": "resolver", "storage_key": cfg.StorageKey})
	return r, nil
}

func configError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return sablierrors.NewValidationError(fe.Field(), fmt.Sprintf("invalid value %q", fe.Value()), err)
	}
	return sablierrors.NewValidationError("", err.Error(), err)
}

// Initialize restores the stored theme, subscribes to the host preference and
// projects the result. Missing or invalid stored data falls back to the
// default theme. Initialize does not persist. Later calls return the current
// theme without doing anything else.
func (r *Resolver) Initialize() theme.Theme {
	r.mu.Lock()
	if r.started {
		current := r.current.Clone()
		r.mu.Unlock()
		return current
	}
	r.started = true

	if !r.resolved {
		r.current = r.restore()
		r.resolved = true
	}

	if r.observer != nil && !r.closed {
		r.unobserve = r.observer.Subscribe(r.systemChanged)
		if value, ok := r.observer.Current(); ok && value.Valid() {
			r.system, r.systemKnown = value, true
		}
	}

	r.projectLocked()
	event := r.eventLocked(EventInitialized)
	r.mu.Unlock()

	r.emit(event)
	return event.Theme.Clone()
}

func (r *Resolver) restore() theme.Theme {
	stored, err := r.store.Read(r.cfg.StorageKey)
	switch {
	case err == nil:
		r.log.With("scheme", string(stored.ColorScheme)).Debug("theme restored")
		return stored.Clone()
	case storage.IsNotFound(err):
		r.log.Debug("no stored theme, using default")
	case storage.IsUnavailable(err):
		r.log.WarnErr(err, "theme storage unavailable, using default")
	default:
		r.log.WarnErr(err, "stored theme ignored, using default")
	}
	return r.cfg.DefaultTheme.Clone()
}

// SetTheme replaces the current theme, persists it and projects it. It is a
// no-op while a theme is forced or when t fails validation.
func (r *Resolver) SetTheme(t theme.Theme) {
	next := t.Clone()
	r.update("set", func(theme.Theme, theme.ResolvedScheme) theme.Theme { return next })
}

// CustomizeTheme merges p into the current theme and applies the result as
// SetTheme would.
func (r *Resolver) CustomizeTheme(p theme.Partial) {
	r.update("customize", func(current theme.Theme, _ theme.ResolvedScheme) theme.Theme {
		return current.Merge(p)
	})
}

// Toggle switches to the canonical dark theme when the explicit scheme
// currently renders light, and to the canonical light theme otherwise.
func (r *Resolver) Toggle() {
	r.update("toggle", func(_ theme.Theme, scheme theme.ResolvedScheme) theme.Theme {
		if scheme == theme.ResolvedLight {
			return theme.Dark()
		}
		return theme.Light()
	})
}

// SetColorScheme applies the canonical theme for scheme.
func (r *Resolver) SetColorScheme(scheme theme.ColorScheme) {
	r.update("set_scheme", func(theme.Theme, theme.ResolvedScheme) theme.Theme {
		return theme.ForScheme(scheme)
	})
}

// update computes the next theme from the current one under the lock. next
// receives the scheme the current theme renders ignoring any forced value.
func (r *Resolver) update(op string, next func(current theme.Theme, scheme theme.ResolvedScheme) theme.Theme) {
	r.mu.Lock()
	if r.cfg.ForcedTheme != "" {
		r.mu.Unlock()
		r.log.With("op", op).Debug("theme change ignored while forced")
		return
	}

	candidate := next(r.current.Clone(), r.colorSchemeLocked())
	if err := theme.Validate(candidate); err != nil {
		r.mu.Unlock()
		r.log.With("op", op).WarnErr(err, "theme change rejected")
		return
	}

	guard := r.cfg.DisableTransitionOnChange
	if guard {
		r.suspendLocked()
	}

	r.current = candidate
	r.resolved = true
	if !r.store.Save(r.cfg.StorageKey, r.current) {
		r.log.With("op", op).Warn("theme applied without persisting")
	}
	r.projectLocked()
	event := r.eventLocked(EventThemeChanged)
	r.mu.Unlock()

	if guard {
		r.schedule(r.resumeTransitions)
	}
	r.emit(event)
}

// Reproject writes the current theme to every projector again without
// persisting it or notifying listeners.
func (r *Resolver) Reproject() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projectLocked()
}

func (r *Resolver) systemChanged(value theme.ResolvedScheme) {
	if !value.Valid() {
		return
	}

	r.mu.Lock()
	if r.closed || (r.systemKnown && r.system == value) {
		r.mu.Unlock()
		return
	}
	r.system, r.systemKnown = value, true
	if r.cfg.ForcedTheme == "" && r.current.ColorScheme == theme.SchemeSystem {
		r.projectLocked()
	}
	event := r.eventLocked(EventSystemChanged)
	r.mu.Unlock()

	r.log.With("system", string(value)).Debug("system preference changed")
	r.emit(event)
}

func (r *Resolver) projectLocked() {
	resolved := r.resolvedLocked()
	for _, p := range r.projectors {
		if err := p.Apply(r.current, resolved); err != nil {
			r.logProjection(err, "theme not projected")
		}
	}
}

func (r *Resolver) suspendLocked() {
	for _, p := range r.projectors {
		if err := p.SuspendTransitions(); err != nil {
			r.logProjection(err, "transitions not suspended")
		}
	}
}

func (r *Resolver) resumeTransitions() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.projectors {
		if err := p.ResumeTransitions(); err != nil {
			r.logProjection(err, "transitions not resumed")
		}
	}
}

func (r *Resolver) logProjection(err error, msg string) {
	if errors.Is(err, cssvars.ErrNoDocument) {
		r.log.Debug(msg + ": no document")
		return
	}
	r.log.WarnErr(err, msg)
}

func (r *Resolver) resolvedLocked() theme.ResolvedScheme {
	if r.cfg.ForcedTheme != "" {
		return r.cfg.ForcedTheme
	}
	return r.colorSchemeLocked()
}

func (r *Resolver) colorSchemeLocked() theme.ResolvedScheme {
	system := theme.ResolvedScheme("")
	if r.systemKnown {
		system = r.system
	}
	return theme.Resolve(r.current.ColorScheme, system)
}

// Close stops following the host preference. The resolver keeps serving
// reads and explicit changes. Close is idempotent.
func (r *Resolver) Close() {
	r.mu.Lock()
	unobserve := r.unobserve
	r.unobserve = nil
	r.closed = true
	r.mu.Unlock()

	if unobserve != nil {
		unobserve()
	}
}
