// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"

	"github.com/jmylchreest/legible/internal/accessibility"
	"github.com/jmylchreest/legible/internal/palette"
)

// Environment variables read by WithEnvConfig.
const (
	EnvLogLevel     = "LEGIBLE_LOG_LEVEL"
	EnvConfig       = "LEGIBLE_CONFIG"
	EnvRemoteURL    = "LEGIBLE_REMOTE_URL"
	EnvAddr         = "LEGIBLE_ADDR"
	EnvLevel        = "LEGIBLE_LEVEL"
	EnvLang         = "LEGIBLE_LANG"
	EnvInitTimeout  = "LEGIBLE_INIT_TIMEOUT"
	EnvPollInterval = "LEGIBLE_POLL_INTERVAL"
)

// DefaultAddr is the listen address for the HTTP bridge.
const DefaultAddr = "127.0.0.1:8787"

// Config holds runtime settings.
type Config struct {
	// LogLevel is an hclog level name (trace, debug, info, warn, error).
	LogLevel string

	// PalettesPath is a JSON palette document. Empty uses the built-in defaults.
	PalettesPath string

	// RemoteURL fetches the palette document over HTTP(S). Takes precedence over PalettesPath.
	RemoteURL string

	Addr string

	Level accessibility.Level

	Lang string

	// InitTimeout and PollInterval bound palette store initialisation.
	InitTimeout  time.Duration
	PollInterval time.Duration
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:     "warn",
		Addr:         DefaultAddr,
		Level:        accessibility.LevelAA,
		InitTimeout:  palette.DefaultInitTimeout,
		PollInterval: palette.DefaultPollInterval,
	}
}

// HCLogLevel returns LogLevel as an hclog level, defaulting to warn.
func (c Config) HCLogLevel() hclog.Level {
	if l := hclog.LevelFromString(c.LogLevel); l != hclog.NoLevel {
		return l
	}
	return hclog.Warn
}

// Builder provides a fluent interface for constructing a Config.
type Builder struct {
	config   Config
	useEnv   bool
	dotEnvs  []string
	loadDots bool
}

// NewBuilder creates a builder starting from Default.
func NewBuilder() *Builder {
	return &Builder{config: Default()}
}

// WithConfig replaces the base configuration.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithEnvConfig applies LEGIBLE_* environment variables on Build.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithDotEnv loads .env files into the environment before reading it.
// With no arguments it loads ./.env. Missing files are ignored.
func (b *Builder) WithDotEnv(files ...string) *Builder {
	b.loadDots = true
	b.dotEnvs = files
	return b
}

// Build constructs the Config. Only malformed values are errors.
func (b *Builder) Build() (Config, error) {
	config := b.config

	if b.loadDots {
		_ = godotenv.Load(b.dotEnvs...)
	}

	if !b.useEnv {
		return config, nil
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		config.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvConfig); v != "" {
		config.PalettesPath = v
	}
	if v := os.Getenv(EnvRemoteURL); v != "" {
		config.RemoteURL = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		config.Addr = v
	}
	if v := os.Getenv(EnvLang); v != "" {
		config.Lang = v
	}
	if v := os.Getenv(EnvLevel); v != "" {
		level, err := accessibility.ParseLevel(v)
		if err != nil {
			return config, fmt.Errorf("%s: %w", EnvLevel, err)
		}
		config.Level = level
	}

	var err error
	if config.InitTimeout, err = durationFromEnv(EnvInitTimeout, config.InitTimeout); err != nil {
		return config, err
	}
	if config.PollInterval, err = durationFromEnv(EnvPollInterval, config.PollInterval); err != nil {
		return config, err
	}

	return config, nil
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return fallback, fmt.Errorf("%s: must be positive, got %s", key, v)
	}
	return d, nil
}
