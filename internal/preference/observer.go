// Package preference reports the host's light/dark preference and notifies
// subscribers when it flips.
package preference

import (
	"sync"

	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

// Observer reports the current host preference and notifies on change.
// Subscribers receive at most one call per actual change, in the order the
// changes were observed.
type Observer interface {
	Current() (theme.ResolvedScheme, bool)
	Subscribe(listener func(theme.ResolvedScheme)) (unsubscribe func())
}

// broadcaster holds the last observed value and fans changes out to listeners.
type broadcaster struct {
	mu        sync.Mutex
	deliverMu sync.Mutex
	current   theme.ResolvedScheme
	known     bool
	nextID    int
	listeners map[int]func(theme.ResolvedScheme)
}

func newBroadcaster() *broadcaster {
	return &broadcaster{listeners: make(map[int]func(theme.ResolvedScheme))}
}

// Current implements Observer.
func (b *broadcaster) Current() (theme.ResolvedScheme, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.known
}

// Subscribe implements Observer.
func (b *broadcaster) Subscribe(listener func(theme.ResolvedScheme)) func() {
	if listener == nil {
		return func() {}
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = listener
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// publish records value and notifies listeners if it differs from the last
// one. It reports whether a change was delivered.
func (b *broadcaster) publish(value theme.ResolvedScheme) bool {
	if !value.Valid() {
		return false
	}

	// deliverMu keeps concurrent publishers from interleaving deliveries.
	b.deliverMu.Lock()
	defer b.deliverMu.Unlock()

	b.mu.Lock()
	if b.known && b.current == value {
		b.mu.Unlock()
		return false
	}
	b.current = value
	b.known = true
	listeners := make([]func(theme.ResolvedScheme), 0, len(b.listeners))
	for id := 0; id < b.nextID; id++ {
		if l, ok := b.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	b.mu.Unlock()

	for _, l := range listeners {
		l(value)
	}
	return true
}

// Manual is an Observer driven by the embedding application, for example from
// a client hint header or a settings toggle.
type Manual struct {
	*broadcaster
}

// NewManual returns a Manual observer with no value reported yet.
func NewManual() *Manual {
	return &Manual{broadcaster: newBroadcaster()}
}

// Set reports a new preference. Repeating the current value is a no-op.
func (m *Manual) Set(value theme.ResolvedScheme) bool {
	return m.publish(value)
}

// Static is an Observer whose value never changes.
type Static struct {
	value theme.ResolvedScheme
}

// NewStatic returns an observer fixed at value.
func NewStatic(value theme.ResolvedScheme) Static {
	return Static{value: value}
}

// Current implements Observer.
func (s Static) Current() (theme.ResolvedScheme, bool) {
	return s.value, s.value.Valid()
}

// Subscribe implements Observer. The listener is never called.
func (Static) Subscribe(func(theme.ResolvedScheme)) func() {
	return func() {}
}
