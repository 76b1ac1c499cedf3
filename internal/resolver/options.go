package resolver

import (
	"time"

	"github.com/alexisbeaulieu97/sablier/internal/cssvars"
	"github.com/alexisbeaulieu97/sablier/internal/logger"
	"github.com/alexisbeaulieu97/sablier/internal/preference"
	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

// DefaultStorageKey is the key themes are persisted under unless configured
// otherwise.
const DefaultStorageKey = "sablier-ui-theme"

// Config holds the embedder-supplied settings of a Resolver.
type Config struct {
	// DefaultTheme is used when nothing valid is stored. Zero means
	// theme.Light().
	DefaultTheme theme.Theme `validate:"-"`
	// StorageKey names the persisted slot. Empty means DefaultStorageKey.
	StorageKey string `validate:"omitempty,max=128"`
	// ForcedTheme pins the rendered scheme when set. SetTheme and friends
	// become no-ops.
	ForcedTheme theme.ResolvedScheme `validate:"resolved_scheme"`
	// DisableTransitionOnChange suspends transitions around every change.
	DisableTransitionOnChange bool
}

// Store persists themes. *storage.Adapter satisfies it.
type Store interface {
	Read(key string) (theme.Theme, error)
	Save(key string, t theme.Theme) bool
}

// Scheduler runs fn later, after the current change has been rendered.
type Scheduler func(fn func())

// NextTick schedules fn on a fresh goroutine as soon as possible.
func NextTick(fn func()) {
	time.AfterFunc(0, fn)
}

// Option customizes a Resolver at construction.
type Option func(*Resolver)

// WithStore sets the persistence store.
func WithStore(store Store) Option {
	return func(r *Resolver) {
		if store != nil {
			r.store = store
		}
	}
}

// WithProjector adds a projection target. It may be given more than once;
// projectors run in the order added.
func WithProjector(p cssvars.Projector) Option {
	return func(r *Resolver) {
		if p != nil {
			r.projectors = append(r.projectors, p)
		}
	}
}

// WithObserver sets the host preference source.
func WithObserver(o preference.Observer) Option {
	return func(r *Resolver) {
		r.observer = o
	}
}

// WithLogger routes resolver diagnostics to log.
func WithLogger(log *logger.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// WithScheduler replaces NextTick for the transition guard cleanup.
func WithScheduler(s Scheduler) Option {
	return func(r *Resolver) {
		if s != nil {
			r.schedule = s
		}
	}
}
