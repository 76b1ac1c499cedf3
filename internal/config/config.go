// Package config loads sablier settings from a YAML file, SABLIER_ environment
// variables and defaults, in increasing order of precedence: defaults, file,
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// SABLIER_STORAGE_DRIVER.
const EnvPrefix = "SABLIER"

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
	DriverNone   = "none"
)

// Preference sources.
const (
	SourceTerminal = "terminal"
	SourceFile     = "file"
	SourceNone     = "none"
)

// Log formats. FormatAuto picks console output on a terminal.
const (
	FormatAuto    = "auto"
	FormatJSON    = "json"
	FormatConsole = "console"
)

const (
	defaultStorageKey      = "sablier-ui-theme"
	defaultPollInterval    = 5 * time.Second
	defaultServerAddr      = "127.0.0.1:7420"
	defaultShutdownTimeout = 10 * time.Second
)

// EnvKeyReplacer maps nested keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Config holds all configuration for the application.
type Config struct {
	Storage    StorageConfig    `mapstructure:"storage"`
	Theme      ThemeConfig      `mapstructure:"theme"`
	Preference PreferenceConfig `mapstructure:"preference"`
	Log        LogConfig        `mapstructure:"log"`
	Server     ServerConfig     `mapstructure:"server"`
}

// StorageConfig selects where the theme is persisted.
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=file sqlite memory none"`
	// Path is a directory for the file driver and a database file for sqlite.
	Path string `mapstructure:"path" validate:"required_if=Driver file,required_if=Driver sqlite"`
	Key  string `mapstructure:"key" validate:"required,max=128"`
}

// ThemeConfig mirrors the resolver settings.
type ThemeConfig struct {
	Default                   string `mapstructure:"default" validate:"oneof=light dark system"`
	Forced                    string `mapstructure:"forced" validate:"omitempty,oneof=light dark"`
	DisableTransitionOnChange bool   `mapstructure:"disable_transition_on_change"`
}

// PreferenceConfig selects the host preference source.
type PreferenceConfig struct {
	Source       string        `mapstructure:"source" validate:"oneof=terminal file none"`
	File         string        `mapstructure:"file" validate:"required_if=Source file"`
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"gte=0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=auto json console"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// Load reads configuration from the OS filesystem. See LoadFs.
func Load(configPath string) (*Config, error) {
	return LoadFs(afero.NewOsFs(), configPath)
}

// LoadFs reads configuration from fs. An explicit configPath must exist;
// otherwise sablier.yaml is looked up in the working directory and the user
// config directory, and a missing file is not an error.
func LoadFs(fs afero.Fs, configPath string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)

	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("sablier")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(userConfigDir(), "sablier"))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config: defaults do not decode: %v", err))
	}
	return &cfg
}

// SetDefaults registers a default for every key so environment variables are
// picked up for all of them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.path", filepath.Join(userConfigDir(), "sablier"))
	v.SetDefault("storage.key", defaultStorageKey)

	v.SetDefault("theme.default", "light")
	v.SetDefault("theme.forced", "")
	v.SetDefault("theme.disable_transition_on_change", false)

	v.SetDefault("preference.source", SourceTerminal)
	v.SetDefault("preference.file", "")
	v.SetDefault("preference.poll_interval", defaultPollInterval)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", FormatAuto)

	v.SetDefault("server.addr", defaultServerAddr)
	v.SetDefault("server.shutdown_timeout", defaultShutdownTimeout)
}

func userConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".config"
	}
	return dir
}
