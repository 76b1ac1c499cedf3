package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/sablier/internal/config"
	"github.com/alexisbeaulieu97/sablier/internal/cssvars"
	"github.com/alexisbeaulieu97/sablier/internal/logger"
	"github.com/alexisbeaulieu97/sablier/internal/preference"
	"github.com/alexisbeaulieu97/sablier/internal/resolver"
	"github.com/alexisbeaulieu97/sablier/internal/storage"
	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

// AppContext bundles the services a command needs, built from configuration.
type AppContext struct {
	Config   *config.Config
	Log      *logger.Logger
	Fs       afero.Fs
	Store    *storage.Adapter
	Resolver *resolver.Resolver
	// Document receives the projected color properties.
	Document *cssvars.Document

	observer preference.Observer
	closers  []func() error
}

type appOptions struct {
	projector cssvars.Projector
}

type appOption func(*appOptions)

// withProjector adds a projector next to the document.
func withProjector(p cssvars.Projector) appOption {
	return func(opts *appOptions) {
		opts.projector = p
	}
}

func newAppContext(cmd *cobra.Command, flags *rootFlags, opts ...appOption) (*AppContext, error) {
	options := &appOptions{}
	for _, opt := range opts {
		opt(options)
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, newCommandError(cmd.Name(), "loading configuration", err, "Check sablier.yaml and SABLIER_ environment variables.")
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}

	log, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return nil, newCommandError(cmd.Name(), "creating logger", err, "Use one of trace, debug, info, warn or error for log.level.")
	}
	log = log.With("command", cmd.Name())

	app := &AppContext{
		Config:   cfg,
		Log:      log,
		Fs:       afero.NewOsFs(),
		Document: cssvars.NewDocument(),
	}

	backend, err := app.openBackend()
	if err != nil {
		return nil, newCommandError(cmd.Name(), "opening theme storage", err, "Check storage.driver and storage.path.")
	}
	app.Store = storage.NewAdapter(backend,
		storage.WithDefaults(theme.ForScheme(theme.ColorScheme(cfg.Theme.Default))),
		storage.WithLogger(log),
	)

	app.observer = app.newObserver()

	resolverOpts := []resolver.Option{
		resolver.WithStore(app.Store),
		resolver.WithProjector(cssvars.NewDocumentProjector(app.Document)),
		resolver.WithLogger(log),
	}
	if app.observer != nil {
		resolverOpts = append(resolverOpts, resolver.WithObserver(app.observer))
	}
	if options.projector != nil {
		resolverOpts = append(resolverOpts, resolver.WithProjector(options.projector))
	}

	r, err := resolver.New(resolver.Config{
		DefaultTheme:              theme.ForScheme(theme.ColorScheme(cfg.Theme.Default)),
		StorageKey:                cfg.Storage.Key,
		ForcedTheme:               theme.ResolvedScheme(cfg.Theme.Forced),
		DisableTransitionOnChange: cfg.Theme.DisableTransitionOnChange,
	}, resolverOpts...)
	if err != nil {
		_ = app.Close()
		return nil, newCommandError(cmd.Name(), "creating resolver", err, "Check the theme section of sablier.yaml.")
	}
	app.Resolver = r
	app.closers = append(app.closers, func() error {
		r.Close()
		return nil
	})
	r.Initialize()

	return app, nil
}

func newLogger(out io.Writer, cfg config.LogConfig) (*logger.Logger, error) {
	human := cfg.Format == config.FormatConsole
	if cfg.Format == config.FormatAuto {
		human = isTerminal(out)
	}
	return logger.New(logger.Options{
		Level:         cfg.Level,
		HumanReadable: human,
		Writer:        out,
		CorrelationID: logger.NewCorrelationID(),
	})
}

func isTerminal(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func (a *AppContext) openBackend() (storage.Backend, error) {
	cfg := a.Config.Storage
	switch cfg.Driver {
	case config.DriverFile:
		return storage.NewFile(a.Fs, cfg.Path)
	case config.DriverSQLite:
		db, err := storage.OpenSQLite(cfg.Path, a.Log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return db, nil
	case config.DriverMemory:
		return storage.NewMemory(), nil
	case config.DriverNone:
		return storage.Unavailable{}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func (a *AppContext) newObserver() preference.Observer {
	cfg := a.Config.Preference
	switch cfg.Source {
	case config.SourceTerminal:
		return preference.NewTerminal(
			preference.WithPollInterval(cfg.PollInterval),
			preference.WithTerminalLogger(a.Log),
		)
	case config.SourceFile:
		return preference.NewFile(a.Fs, cfg.File, a.Log)
	default:
		return nil
	}
}

// Watch follows the host preference until ctx is done. One-shot commands
// never call it; the value read at startup is enough for them.
func (a *AppContext) Watch(ctx context.Context) {
	switch source := a.observer.(type) {
	case *preference.Terminal:
		go source.Start(ctx)
	case *preference.File:
		go func() {
			if err := source.Start(ctx); err != nil {
				a.Log.WarnErr(err, "preference file not watched")
			}
		}()
	}
}

// Close releases the resolver and the storage backend.
func (a *AppContext) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
