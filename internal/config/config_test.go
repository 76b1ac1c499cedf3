package config

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/sablier/internal/theme"
	sablierrors "github.com/alexisbeaulieu97/sablier/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, "sablier-ui-theme", cfg.Storage.Key)
	assert.NotEmpty(t, cfg.Storage.Path)
	assert.Equal(t, "light", cfg.Theme.Default)
	assert.Empty(t, cfg.Theme.Forced)
	assert.Equal(t, SourceTerminal, cfg.Preference.Source)
	assert.Equal(t, 5*time.Second, cfg.Preference.PollInterval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, FormatAuto, cfg.Log.Format)
	assert.Equal(t, "127.0.0.1:7420", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoadFsWithoutFile(t *testing.T) {
	cfg, err := LoadFs(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFsReadsYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `
storage:
  driver: sqlite
  path: /var/lib/sablier/theme.db
  key: app-theme
theme:
  default: dark
  forced: light
  disable_transition_on_change: true
preference:
  source: file
  file: /etc/sablier/scheme
  poll_interval: 2s
log:
  level: debug
  format: json
server:
  addr: 0.0.0.0:8080
  shutdown_timeout: 3s
`
	require.NoError(t, afero.WriteFile(fs, "/etc/sablier.yaml", []byte(content), 0o644))

	cfg, err := LoadFs(fs, "/etc/sablier.yaml")
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/var/lib/sablier/theme.db", cfg.Storage.Path)
	assert.Equal(t, "app-theme", cfg.Storage.Key)
	assert.Equal(t, "dark", cfg.Theme.Default)
	assert.Equal(t, "light", cfg.Theme.Forced)
	assert.True(t, cfg.Theme.DisableTransitionOnChange)
	assert.Equal(t, SourceFile, cfg.Preference.Source)
	assert.Equal(t, "/etc/sablier/scheme", cfg.Preference.File)
	assert.Equal(t, 2*time.Second, cfg.Preference.PollInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, FormatJSON, cfg.Log.Format)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadFsEnvironmentOverridesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/sablier.yaml", []byte("storage:\n  driver: file\n  path: /tmp/themes\n"), 0o644))
	t.Setenv("SABLIER_STORAGE_DRIVER", "memory")
	t.Setenv("SABLIER_LOG_LEVEL", "warn")

	cfg, err := LoadFs(fs, "/sablier.yaml")
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFsMissingExplicitFile(t *testing.T) {
	_, err := LoadFs(afero.NewMemMapFs(), "/nope/sablier.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestValidateReportsConfigKey(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"unknown driver", func(c *Config) { c.Storage.Driver = "redis" }, "storage.driver"},
		{"file driver needs path", func(c *Config) { c.Storage.Path = "" }, "storage.path"},
		{"unknown default", func(c *Config) { c.Theme.Default = "sepia" }, "theme.default"},
		{"forced system", func(c *Config) { c.Theme.Forced = "system" }, "theme.forced"},
		{"file source needs file", func(c *Config) { c.Preference.Source = SourceFile }, "preference.file"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad addr", func(c *Config) { c.Server.Addr = "localhost" }, "server.addr"},
		{"zero shutdown", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "server.shutdown_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.edit(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verr *sablierrors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestMemoryDriverNeedsNoPath(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = DriverMemory
	cfg.Storage.Path = ""
	assert.NoError(t, cfg.Validate())
}

func TestLoadFsRejectsInvalidFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/sablier.yaml", []byte("theme:\n  default: sepia\n"), 0o644))

	_, err := LoadFs(fs, "/sablier.yaml")
	require.Error(t, err)

	var verr *sablierrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "theme.default", verr.Field)
}

func TestParseOverridesYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `
colorScheme: dark
colors:
  primary: "#ff0000"
  sidebar:
    border: "#334155"
fonts:
  weight:
    bold: 700
`
	require.NoError(t, afero.WriteFile(fs, "/custom.yaml", []byte(content), 0o644))

	p, err := ParseOverrides(fs, "/custom.yaml")
	require.NoError(t, err)

	require.NotNil(t, p.ColorScheme)
	assert.Equal(t, theme.SchemeDark, *p.ColorScheme)

	require.NotNil(t, p.Colors)
	primary, ok := p.Colors.Lookup("primary")
	require.True(t, ok)
	assert.Equal(t, "#ff0000", primary)
	border, ok := p.Colors.Lookup("sidebar-border")
	require.True(t, ok)
	assert.Equal(t, "#334155", border)

	require.NotNil(t, p.Fonts)
	assert.Equal(t, "700", p.Fonts.Weight["bold"])
}

func TestParseOverridesJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/custom.json", []byte(`{"colors":{"accent":"#00ff00"}}`), 0o644))

	p, err := ParseOverrides(fs, "/custom.json")
	require.NoError(t, err)
	assert.Nil(t, p.ColorScheme)
	require.NotNil(t, p.Colors)
	accent, _ := p.Colors.Token("accent")
	assert.Equal(t, "#00ff00", accent)
}

func TestParseOverridesEmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/empty.yaml", nil, 0o644))

	p, err := ParseOverrides(fs, "/empty.yaml")
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
}

func TestParseOverridesReportsLine(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/broken.yaml", []byte("colors:\n  accent: \"#fff\"\n  primary: a: b\n"), 0o644))

	_, err := ParseOverrides(fs, "/broken.yaml")
	require.Error(t, err)

	var perr *sablierrors.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "/broken.yaml", perr.Path)
	assert.Greater(t, perr.Line, 0)
}

func TestParseOverridesUnknownScheme(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/custom.yaml", []byte("colorScheme: sepia\n"), 0o644))

	_, err := ParseOverrides(fs, "/custom.yaml")
	var verr *sablierrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "colorScheme", verr.Field)
}

func TestParseOverridesMissingFile(t *testing.T) {
	_, err := ParseOverrides(afero.NewMemMapFs(), "/missing.yaml")
	var perr *sablierrors.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "/missing.yaml", perr.Path)
}

func TestExtractLine(t *testing.T) {
	assert.Equal(t, 0, extractLine(nil))
	assert.Equal(t, 7, extractLine(errors.New("yaml: line 7: mapping values are not allowed")))
	assert.Equal(t, 0, extractLine(errors.New("something else")))
}
