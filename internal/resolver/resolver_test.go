package resolver

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/sablier/internal/cssvars"
	"github.com/alexisbeaulieu97/sablier/internal/logger"
	"github.com/alexisbeaulieu97/sablier/internal/preference"
	"github.com/alexisbeaulieu97/sablier/internal/storage"
	"github.com/alexisbeaulieu97/sablier/internal/theme"
	sablierrors "github.com/alexisbeaulieu97/sablier/pkg/errors"
)

// queue is a Scheduler that holds callbacks until flushed.
type queue struct {
	mu    sync.Mutex
	tasks []func()
}

func (q *queue) schedule(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, fn)
}

func (q *queue) flush() {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}
}

type fixture struct {
	resolver *Resolver
	backend  *storage.Memory
	doc      *cssvars.Document
	observer *preference.Manual
	ticks    *queue
	logs     *bytes.Buffer
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	f := &fixture{
		backend:  storage.NewMemory(),
		doc:      cssvars.NewDocument(),
		observer: preference.NewManual(),
		ticks:    &queue{},
		logs:     &bytes.Buffer{},
	}
	f.resolver = f.build(t, cfg)
	return f
}

func (f *fixture) build(t *testing.T, cfg Config) *Resolver {
	t.Helper()
	log, err := logger.New(logger.Options{Level: "debug", Writer: f.logs})
	require.NoError(t, err)

	r, err := New(cfg,
		WithStore(storage.NewAdapter(f.backend, storage.WithLogger(log))),
		WithProjector(cssvars.NewDocumentProjector(f.doc)),
		WithObserver(f.observer),
		WithLogger(log),
		WithScheduler(f.ticks.schedule),
	)
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r
}

func (f *fixture) marker() string {
	v, _ := f.doc.Attribute(cssvars.ThemeAttribute)
	return v
}

func (f *fixture) property(name string) string {
	v, _ := f.doc.Property(name)
	return v
}

func token(c theme.Colors, key string) string {
	v, _ := c.Token(key)
	return v
}

func TestInitializeWithoutStoredThemeUsesDefault(t *testing.T) {
	f := newFixture(t, Config{})

	got := f.resolver.Initialize()

	assert.Equal(t, theme.Light(), got)
	assert.Equal(t, theme.ResolvedLight, f.resolver.ResolvedTheme())
	assert.Equal(t, "light", f.marker())
	assert.Equal(t, token(theme.LightColors(), "background"), f.property("--background"))

	_, err := f.backend.Get(DefaultStorageKey)
	assert.ErrorIs(t, err, storage.ErrNotFound, "initialize must not persist")
}

func TestInitializeIsIdempotent(t *testing.T) {
	f := newFixture(t, Config{})
	events := 0
	f.resolver.Subscribe(func(Event) { events++ })

	first := f.resolver.Initialize()
	second := f.resolver.Initialize()

	assert.Equal(t, first, second)
	assert.Equal(t, 1, events)
}

func TestRoundTripPersistence(t *testing.T) {
	partial := theme.System()
	partial.Colors = theme.NewColors(map[string]string{"primary": "#ff0000"}, nil)
	partial.Breakpoints = theme.Scale{"sm": "600px"}

	for _, th := range []theme.Theme{theme.Light(), theme.Dark(), theme.System(), partial} {
		f := newFixture(t, Config{})
		f.resolver.Initialize()
		f.resolver.SetTheme(th)

		restored := f.build(t, Config{})
		assert.Equal(t, th, restored.Initialize())
	}
}

func TestResolvedIsNeverSystem(t *testing.T) {
	for _, forced := range []theme.ResolvedScheme{"", theme.ResolvedLight, theme.ResolvedDark} {
		for _, host := range []theme.ResolvedScheme{"", theme.ResolvedLight, theme.ResolvedDark} {
			for _, scheme := range []theme.ColorScheme{theme.SchemeLight, theme.SchemeDark, theme.SchemeSystem} {
				f := newFixture(t, Config{ForcedTheme: forced, DefaultTheme: theme.ForScheme(scheme)})
				if host != "" {
					f.observer.Set(host)
				}
				f.resolver.Initialize()

				resolved := f.resolver.ResolvedTheme()
				assert.True(t, resolved.Valid(), "forced=%q host=%q scheme=%q", forced, host, scheme)
				assert.Equal(t, string(resolved), f.marker())
				assert.True(t, f.resolver.ColorScheme().Valid())
			}
		}
	}
}

func TestSystemWithUnknownHostResolvesLight(t *testing.T) {
	f := newFixture(t, Config{DefaultTheme: theme.System()})
	f.resolver.Initialize()

	_, known := f.resolver.SystemTheme()
	assert.False(t, known)
	assert.Equal(t, theme.ResolvedLight, f.resolver.ResolvedTheme())
}

func TestSetThemeIsIdempotent(t *testing.T) {
	f := newFixture(t, Config{})
	f.resolver.Initialize()

	f.resolver.SetTheme(theme.Dark())
	props := f.doc.Properties()
	stored, _ := f.backend.Get(DefaultStorageKey)

	f.resolver.SetTheme(theme.Dark())
	storedAgain, _ := f.backend.Get(DefaultStorageKey)

	assert.Equal(t, props, f.doc.Properties())
	assert.Equal(t, "dark", f.marker())
	assert.Equal(t, stored, storedAgain)
	assert.Equal(t, theme.Dark(), f.resolver.Theme())
}

func TestForcedThemeIsInvariant(t *testing.T) {
	f := newFixture(t, Config{ForcedTheme: theme.ResolvedDark})
	f.resolver.Initialize()

	f.resolver.SetTheme(theme.Light())
	f.resolver.Toggle()
	f.resolver.SetColorScheme(theme.SchemeSystem)
	f.resolver.CustomizeTheme(theme.ColorOverride("primary", "#ff0000"))
	f.observer.Set(theme.ResolvedLight)

	assert.Equal(t, theme.ResolvedDark, f.resolver.ResolvedTheme())
	assert.Equal(t, theme.ResolvedDark, f.resolver.Forced())
	assert.True(t, f.resolver.IsDarkMode())
	assert.Equal(t, "dark", f.marker())
	assert.Equal(t, token(theme.LightColors(), "background"), f.property("--background"), "the stored colors are projected as they are")
	assert.Equal(t, theme.Light(), f.resolver.Theme(), "explicit theme is kept untouched")

	_, err := f.backend.Get(DefaultStorageKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Contains(t, f.logs.String(), "theme change ignored while forced")
}

func TestProjectedKeySetsMatchAcrossSchemes(t *testing.T) {
	f := newFixture(t, Config{})
	f.resolver.Initialize()
	light := f.doc.Properties()

	f.resolver.SetTheme(theme.Dark())
	dark := f.doc.Properties()

	require.Len(t, dark, len(light))
	for name := range light {
		assert.Contains(t, dark, name)
	}
}

func TestCorruptStorageRecovers(t *testing.T) {
	f := newFixture(t, Config{})
	require.NoError(t, f.backend.Set(DefaultStorageKey, []byte("{not json")))

	got := f.resolver.Initialize()

	assert.Equal(t, theme.Light(), got)
	assert.Equal(t, "light", f.marker())
	assert.Contains(t, f.logs.String(), "stored theme ignored")

	raw, err := f.backend.Get(DefaultStorageKey)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(raw))
}

func TestSystemPreferencePropagates(t *testing.T) {
	f := newFixture(t, Config{})
	f.observer.Set(theme.ResolvedLight)
	f.resolver.Initialize()
	f.resolver.SetColorScheme(theme.SchemeSystem)
	stored, _ := f.backend.Get(DefaultStorageKey)

	var events []Event
	f.resolver.Subscribe(func(e Event) { events = append(events, e) })

	f.observer.Set(theme.ResolvedDark)

	assert.Equal(t, theme.ResolvedDark, f.resolver.ResolvedTheme())
	assert.Equal(t, "dark", f.marker())
	assert.Equal(t, token(theme.System().Colors, "background"), f.property("--background"))
	require.Len(t, events, 1)
	assert.Equal(t, EventSystemChanged, events[0].Kind)
	assert.Equal(t, theme.ResolvedDark, events[0].Resolved)
	assert.Equal(t, theme.SchemeSystem, events[0].Theme.ColorScheme)

	storedAfter, _ := f.backend.Get(DefaultStorageKey)
	assert.Equal(t, stored, storedAfter, "system changes are not persisted")

	f.observer.Set(theme.ResolvedLight)
	assert.Equal(t, "light", f.marker())
	assert.Equal(t, token(theme.System().Colors, "background"), f.property("--background"))
}

func TestCustomizedThemeIsProjectedUnderAnyScheme(t *testing.T) {
	red := theme.ColorOverride("primary", "#ff0000")

	tests := []struct {
		name   string
		cfg    Config
		host   theme.ResolvedScheme
		apply  func(r *Resolver)
		marker string
	}{
		{
			name: "system on a dark host",
			host: theme.ResolvedDark,
			apply: func(r *Resolver) {
				r.SetColorScheme(theme.SchemeSystem)
				r.CustomizeTheme(red)
			},
			marker: "dark",
		},
		{
			name:   "dark theme on a light host",
			host:   theme.ResolvedLight,
			apply:  func(r *Resolver) { r.SetTheme(theme.Dark().Merge(red)) },
			marker: "dark",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.cfg)
			f.observer.Set(tt.host)
			f.resolver.Initialize()
			tt.apply(f.resolver)

			assert.Equal(t, tt.marker, f.marker())
			assert.Equal(t, "#ff0000", f.property("--primary"))
			assert.Equal(t, token(f.resolver.Theme().Colors, "background"), f.property("--background"))
		})
	}
}

func TestForcedSchemeProjectsStoredCustomization(t *testing.T) {
	f := newFixture(t, Config{})
	f.resolver.Initialize()
	customized := theme.Light().Merge(theme.ColorOverride("primary", "#ff0000"))
	f.resolver.SetTheme(customized)

	forced := f.build(t, Config{ForcedTheme: theme.ResolvedDark})
	assert.Equal(t, customized, forced.Initialize())

	assert.Equal(t, "dark", f.marker())
	assert.Equal(t, "#ff0000", f.property("--primary"))
}

func TestProjectionDropsPropertiesMissingFromNextTheme(t *testing.T) {
	f := newFixture(t, Config{})
	f.resolver.Initialize()
	require.Contains(t, f.doc.Properties(), "--background")

	minimal := theme.Light()
	minimal.Colors = theme.NewColors(map[string]string{"primary": "#ff0000"}, nil)
	f.resolver.SetTheme(minimal)

	assert.Equal(t, map[string]string{"--primary": "#ff0000"}, f.doc.Properties())
}

func TestSystemChangeWithExplicitSchemeKeepsProjection(t *testing.T) {
	f := newFixture(t, Config{DefaultTheme: theme.Light()})
	f.resolver.Initialize()

	var events []Event
	f.resolver.Subscribe(func(e Event) { events = append(events, e) })
	f.observer.Set(theme.ResolvedDark)

	assert.Equal(t, theme.ResolvedLight, f.resolver.ResolvedTheme())
	assert.Equal(t, "light", f.marker())
	system, known := f.resolver.SystemTheme()
	assert.True(t, known)
	assert.Equal(t, theme.ResolvedDark, system)
	require.Len(t, events, 1)
	assert.Equal(t, EventSystemChanged, events[0].Kind)
}

func TestCustomizeSingleColor(t *testing.T) {
	f := newFixture(t, Config{})
	f.resolver.Initialize()
	before := f.doc.Properties()

	f.resolver.CustomizeTheme(theme.ColorOverride("primary", "#ff0000"))
	after := f.doc.Properties()

	assert.Equal(t, "#ff0000", after["--primary"])
	for name, value := range before {
		if name == "--primary" {
			continue
		}
		assert.Equal(t, value, after[name], name)
	}
	assert.Equal(t, "#ff0000", token(f.resolver.Theme().Colors, "primary"))
}

func TestInvalidThemeIsRejected(t *testing.T) {
	f := newFixture(t, Config{})
	f.resolver.Initialize()

	f.resolver.CustomizeTheme(theme.ColorOverride("primary", "red; } body { display: none"))

	assert.Equal(t, theme.Light(), f.resolver.Theme())
	assert.Equal(t, token(theme.LightColors(), "primary"), f.property("--primary"))
	assert.Contains(t, f.logs.String(), "theme change rejected")
}

func TestTransitionGuardClearsOnNextTick(t *testing.T) {
	f := newFixture(t, Config{DisableTransitionOnChange: true})
	f.resolver.Initialize()
	assert.False(t, f.doc.HasClass(cssvars.TransitionGuardClass))

	f.resolver.SetTheme(theme.Dark())
	assert.True(t, f.doc.HasClass(cssvars.TransitionGuardClass))

	f.ticks.flush()
	assert.False(t, f.doc.HasClass(cssvars.TransitionGuardClass))
}

func TestTransitionGuardDisabledByDefault(t *testing.T) {
	f := newFixture(t, Config{})
	f.resolver.Initialize()
	f.resolver.SetTheme(theme.Dark())

	assert.False(t, f.doc.HasClass(cssvars.TransitionGuardClass))
	assert.Empty(t, f.ticks.tasks)
}

func TestToggle(t *testing.T) {
	f := newFixture(t, Config{})
	f.resolver.Initialize()

	f.resolver.Toggle()
	assert.Equal(t, theme.Dark(), f.resolver.Theme())
	f.resolver.Toggle()
	assert.Equal(t, theme.Light(), f.resolver.Theme())

	f.observer.Set(theme.ResolvedDark)
	f.resolver.SetColorScheme(theme.SchemeSystem)
	require.True(t, f.resolver.IsDarkMode())
	f.resolver.Toggle()
	assert.Equal(t, theme.Light(), f.resolver.Theme())
}

func TestSetThemeBeforeInitialize(t *testing.T) {
	f := newFixture(t, Config{})
	assert.False(t, f.resolver.Initialized())

	f.resolver.SetTheme(theme.Dark())
	assert.True(t, f.resolver.Initialized())

	assert.Equal(t, theme.Dark(), f.resolver.Initialize())
	assert.Equal(t, "dark", f.marker())
}

func TestListenersReceiveSnapshots(t *testing.T) {
	f := newFixture(t, Config{})
	f.resolver.Initialize()

	var got []Event
	unsubscribe := f.resolver.Subscribe(func(e Event) {
		got = append(got, e)
		e.Theme.Spacing["4"] = "999rem"
	})

	f.resolver.SetTheme(theme.Dark())
	unsubscribe()
	f.resolver.SetTheme(theme.Light())

	require.Len(t, got, 1)
	assert.Equal(t, EventThemeChanged, got[0].Kind)
	assert.Equal(t, theme.ResolvedDark, got[0].Resolved)
	assert.Equal(t, "1rem", f.resolver.Theme().Spacing["4"])
}

func TestListenersMayCallBack(t *testing.T) {
	f := newFixture(t, Config{})
	f.resolver.Initialize()

	var seen theme.ResolvedScheme
	f.resolver.Subscribe(func(e Event) {
		seen = f.resolver.ResolvedTheme()
	})

	f.resolver.SetTheme(theme.Dark())
	assert.Equal(t, theme.ResolvedDark, seen)
}

func TestCloseStopsFollowingHost(t *testing.T) {
	f := newFixture(t, Config{DefaultTheme: theme.System()})
	f.resolver.Initialize()

	f.resolver.Close()
	f.resolver.Close()
	f.observer.Set(theme.ResolvedDark)

	assert.Equal(t, theme.ResolvedLight, f.resolver.ResolvedTheme())
}

func TestSnapshot(t *testing.T) {
	f := newFixture(t, Config{ForcedTheme: theme.ResolvedLight, DefaultTheme: theme.Dark()})
	f.observer.Set(theme.ResolvedDark)
	f.resolver.Initialize()

	state := f.resolver.Snapshot()
	assert.Equal(t, theme.ResolvedLight, state.Resolved)
	assert.Equal(t, theme.ResolvedDark, state.ColorScheme)
	assert.Equal(t, theme.ResolvedDark, state.System)
	assert.True(t, state.SystemKnown)
	assert.Equal(t, theme.ResolvedLight, state.Forced)
	assert.Equal(t, []string{"light", "dark", "system"}, state.Themes)
	assert.Equal(t, []string{"light", "dark", "system"}, f.resolver.Themes())
}

func TestConcurrentChanges(t *testing.T) {
	f := newFixture(t, Config{})
	f.resolver.Initialize()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				f.resolver.SetTheme(theme.Dark())
			} else {
				f.resolver.Toggle()
			}
			_ = f.resolver.Snapshot()
		}(i)
	}
	wg.Wait()

	resolved := f.resolver.ResolvedTheme()
	assert.Equal(t, string(resolved), f.marker())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{ForcedTheme: theme.ResolvedScheme("system")})
	var validationErr *sablierrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "ForcedTheme", validationErr.Field)

	broken := theme.Light()
	broken.Spacing = nil
	_, err = New(Config{DefaultTheme: broken})
	require.ErrorAs(t, err, &validationErr)
}

func TestNewDefaults(t *testing.T) {
	r, err := New(Config{})
	require.NoError(t, err)

	assert.Equal(t, DefaultStorageKey, r.StorageKey())
	assert.Equal(t, theme.Light(), r.Initialize())
	r.SetTheme(theme.Dark())
	assert.Equal(t, theme.ResolvedDark, r.ResolvedTheme())
}

func TestFromContext(t *testing.T) {
	assert.Panics(t, func() { FromContext(context.Background()) })

	r, err := New(Config{})
	require.NoError(t, err)
	ctx := WithResolver(context.Background(), r)
	assert.Panics(t, func() { FromContext(ctx) })

	r.Initialize()
	assert.Same(t, r, FromContext(ctx))
}

func TestUnavailableStorageStillApplies(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Writer: buf})
	require.NoError(t, err)

	doc := cssvars.NewDocument()
	r, err := New(Config{}, WithStore(storage.NewAdapter(nil)), WithProjector(cssvars.NewDocumentProjector(doc)), WithLogger(log))
	require.NoError(t, err)

	r.Initialize()
	r.SetTheme(theme.Dark())

	marker, _ := doc.Attribute(cssvars.ThemeAttribute)
	assert.Equal(t, "dark", marker)
	assert.Contains(t, buf.String(), "theme applied without persisting")
}

func TestMissingDocumentIsTolerated(t *testing.T) {
	r, err := New(Config{}, WithProjector(cssvars.NewDocumentProjector(nil)))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		r.Initialize()
		r.SetTheme(theme.Dark())
	})
	assert.Equal(t, theme.ResolvedDark, r.ResolvedTheme())
}
