package resolver

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

// EventKind tells listeners what changed.
type EventKind string

const (
	// EventInitialized follows the first Initialize.
	EventInitialized EventKind = "initialized"
	// EventThemeChanged follows every applied SetTheme, CustomizeTheme,
	// Toggle or SetColorScheme.
	EventThemeChanged EventKind = "theme_changed"
	// EventSystemChanged follows a change of the host preference. The theme
	// itself is unchanged and nothing is persisted.
	EventSystemChanged EventKind = "system_changed"
)

// Event is a snapshot taken when the change was applied.
type Event struct {
	Kind     EventKind
	Theme    theme.Theme
	Resolved theme.ResolvedScheme
	System   theme.ResolvedScheme
}

// State is a consistent view of everything the resolver exposes.
type State struct {
	Theme       theme.Theme
	Resolved    theme.ResolvedScheme
	ColorScheme theme.ResolvedScheme
	System      theme.ResolvedScheme
	SystemKnown bool
	Forced      theme.ResolvedScheme
	Themes      []string
}

func (r *Resolver) eventLocked(kind EventKind) Event {
	return Event{
		Kind:     kind,
		Theme:    r.current.Clone(),
		Resolved: r.resolvedLocked(),
		System:   r.system,
	}
}

// Subscribe registers listener for every later event and returns a function
// that removes it. Listeners run in subscription order on the goroutine that
// made the change.
func (r *Resolver) Subscribe(listener func(Event)) func() {
	if listener == nil {
		return func() {}
	}

	r.listenersMu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = listener
	r.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.listenersMu.Lock()
			delete(r.listeners, id)
			r.listenersMu.Unlock()
		})
	}
}

func (r *Resolver) emit(event Event) {
	r.listenersMu.Lock()
	listeners := make([]func(Event), 0, len(r.listeners))
	for id := 0; id < r.nextID; id++ {
		if l, ok := r.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	r.listenersMu.Unlock()

	for _, l := range listeners {
		l(Event{Kind: event.Kind, Theme: event.Theme.Clone(), Resolved: event.Resolved, System: event.System})
	}
}

// Snapshot returns every exposed value read under a single lock.
func (r *Resolver) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return State{
		Theme:       r.current.Clone(),
		Resolved:    r.resolvedLocked(),
		ColorScheme: r.colorSchemeLocked(),
		System:      r.system,
		SystemKnown: r.systemKnown,
		Forced:      r.cfg.ForcedTheme,
		Themes:      theme.Schemes(),
	}
}

// Theme returns a copy of the current theme.
func (r *Resolver) Theme() theme.Theme {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.Clone()
}

// ResolvedTheme returns the rendered scheme: the forced one when set,
// otherwise the explicit scheme with system resolved against the host.
func (r *Resolver) ResolvedTheme() theme.ResolvedScheme {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolvedLocked()
}

// ColorScheme returns the scheme the current theme renders, ignoring any
// forced value.
func (r *Resolver) ColorScheme() theme.ResolvedScheme {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.colorSchemeLocked()
}

// SystemTheme returns the last reported host preference.
func (r *Resolver) SystemTheme() (theme.ResolvedScheme, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.system, r.systemKnown
}

// Themes lists the selectable schemes.
func (r *Resolver) Themes() []string {
	return theme.Schemes()
}

// Forced returns the pinned scheme, or "" when nothing is forced.
func (r *Resolver) Forced() theme.ResolvedScheme {
	return r.cfg.ForcedTheme
}

// IsDarkMode reports whether the rendered scheme is dark.
func (r *Resolver) IsDarkMode() bool {
	return r.ResolvedTheme() == theme.ResolvedDark
}

// StorageKey returns the slot the resolver persists to.
func (r *Resolver) StorageKey() string {
	return r.cfg.StorageKey
}

// Initialized reports whether the resolver has left the uninitialized state,
// either through Initialize or an explicit change.
func (r *Resolver) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved
}

type contextKey struct{}

// WithResolver returns a context that carries r.
func WithResolver(ctx context.Context, r *Resolver) context.Context {
	return context.WithValue(ctx, contextKey{}, r)
}

// FromContext returns the resolver carried by ctx. It panics when ctx holds
// no resolver or the resolver was never initialized; reaching for the theme
// outside a configured scope is a programming error.
func FromContext(ctx context.Context) *Resolver {
	r, _ := ctx.Value(contextKey{}).(*Resolver)
	if r == nil {
		panic("resolver: no resolver in context")
	}
	if !r.Initialized() {
		panic("resolver: resolver in context is not initialized")
	}
	return r
}
