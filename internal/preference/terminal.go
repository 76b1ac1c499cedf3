package preference

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/sablier/internal/logger"
	"github.com/alexisbeaulieu97/sablier/internal/theme"
)

// EnvOverride names the environment variable that pins the terminal
// preference to light or dark regardless of what the terminal reports.
const EnvOverride = "SABLIER_COLOR_SCHEME"

// DefaultPollInterval is how often Terminal re-queries the background color.
const DefaultPollInterval = 5 * time.Second

// Terminal derives the preference from the terminal background color.
type Terminal struct {
	*broadcaster

	interval time.Duration
	detect   func() bool
	lookup   func(string) (string, bool)
	log      *logger.Logger
}

// TerminalOption customizes a Terminal source.
type TerminalOption func(*Terminal)

// WithPollInterval sets how often the terminal is queried. Non-positive
// values keep the default.
func WithPollInterval(d time.Duration) TerminalOption {
	return func(t *Terminal) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithDetector replaces the background probe. It reports true for a dark
// background.
func WithDetector(detect func() bool) TerminalOption {
	return func(t *Terminal) {
		if detect != nil {
			t.detect = detect
		}
	}
}

// WithEnvLookup replaces os.LookupEnv for the override variable.
func WithEnvLookup(lookup func(string) (string, bool)) TerminalOption {
	return func(t *Terminal) {
		if lookup != nil {
			t.lookup = lookup
		}
	}
}

// WithTerminalLogger routes probe diagnostics to log.
func WithTerminalLogger(log *logger.Logger) TerminalOption {
	return func(t *Terminal) {
		t.log = log
	}
}

// NewTerminal builds a terminal source and takes an initial reading so
// Current reports a value before Start is called.
func NewTerminal(opts ...TerminalOption) *Terminal {
	t := &Terminal{
		broadcaster: newBroadcaster(),
		interval:    DefaultPollInterval,
		detect:      lipgloss.HasDarkBackground,
		lookup:      os.LookupEnv,
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.Poll()
	return t
}

// Poll takes one reading and publishes it. It reports whether the value
// changed.
func (t *Terminal) Poll() bool {
	return t.publish(t.read())
}

func (t *Terminal) read() theme.ResolvedScheme {
	if raw, ok := t.lookup(EnvOverride); ok && raw != "" {
		scheme, err := theme.ParseResolvedScheme(raw)
		if err == nil {
			return scheme
		}
		t.log.With("env", EnvOverride).WarnErr(err, "color scheme override ignored")
	}
	if t.detect() {
		return theme.ResolvedDark
	}
	return theme.ResolvedLight
}

// Start polls until ctx is cancelled. It blocks; run it in a goroutine.
func (t *Terminal) Start(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if t.Poll() {
				current, _ := t.Current()
				t.log.With("scheme", string(current)).Debug("terminal preference changed")
			}
		}
	}
}
