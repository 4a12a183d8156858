// Package config loads epslint settings from defaults, epslint.yaml, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"epslint/internal/lint"
)

// FileName is the configuration file looked up from the working directory
// upwards.
const FileName = "epslint.yaml"

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: EPSLINT_LINTS__DENY=all.
const EnvPrefix = "EPSLINT_"

const maxUpwardSearchLevels = 10

// Flag names with special handling when layering flags over the file.
const (
	FlagAllow   = "allow"
	FlagWarn    = "warn"
	FlagDeny    = "deny"
	FlagNoCache = "no-cache"
	FlagConfig  = "config"
)

// ErrUnknownLint is returned when configuration names a lint or group that
// is not registered.
var ErrUnknownLint = lint.ErrUnknownLint

// ErrInvalid marks a configuration value outside its allowed set.
var ErrInvalid = errors.New("invalid configuration")

//go:embed default.yaml
var defaultTemplate []byte

// Template returns the commented configuration written by `epslint init`.
func Template() []byte {
	return slices.Clone(defaultTemplate)
}

// Lints holds lint or group names per level.
type Lints struct {
	Allow []string `koanf:"allow"`
	Warn  []string `koanf:"warn"`
	Deny  []string `koanf:"deny"`
}

// Config is the merged configuration.
type Config struct {
	Format         string   `koanf:"format"`
	Color          string   `koanf:"color"`
	UI             string   `koanf:"ui"`
	Jobs           int      `koanf:"jobs"`
	MaxDiagnostics int      `koanf:"max_diagnostics"`
	Cache          bool     `koanf:"cache"`
	CacheDir       string   `koanf:"cache_dir"`
	LogLevel       string   `koanf:"log_level"`
	Exclude        []string `koanf:"exclude"`
	Lints          Lints    `koanf:"lints"`

	// File is the configuration file that was loaded, empty when none.
	File string `koanf:"-"`
	// Root is the directory of File, or the start directory without one.
	Root string `koanf:"-"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Format:         "pretty",
		Color:          "auto",
		UI:             "auto",
		MaxDiagnostics: 500,
		Cache:          true,
		LogLevel:       "warn",
	}
}

func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"format":          d.Format,
		"color":           d.Color,
		"ui":              d.UI,
		"jobs":            d.Jobs,
		"max_diagnostics": d.MaxDiagnostics,
		"cache":           d.Cache,
		"cache_dir":       d.CacheDir,
		"log_level":       d.LogLevel,
		"exclude":         []string{},
	}
}

// LoadOptions tells Load where to look.
type LoadOptions struct {
	// Dir starts the upward search for FileName. Empty means the working
	// directory.
	Dir string
	// File is an explicit configuration path; it must exist.
	File string
	// Flags are layered last. Only flags the user changed are applied.
	Flags *pflag.FlagSet
	// NoEnv skips EPSLINT_* variables.
	NoEnv bool
}

// Load merges every layer and validates the result. Lint names are checked
// separately by Check, since they need a registry.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	start := opts.Dir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("working directory: %w", err)
		}
		start = wd
	}
	start, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}

	path := opts.File
	if path == "" && opts.Flags != nil {
		if f := opts.Flags.Lookup(FlagConfig); f != nil && f.Changed {
			path = f.Value.String()
		}
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
	} else {
		path = Find(start)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if !opts.NoEnv {
		if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, fmt.Errorf("failed to load env vars: %w", err)
		}
	}

	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, flagKey(opts.Flags)), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if opts.Flags != nil {
		cfg.Lints.Allow = append(cfg.Lints.Allow, changedSlice(opts.Flags, FlagAllow)...)
		cfg.Lints.Warn = append(cfg.Lints.Warn, changedSlice(opts.Flags, FlagWarn)...)
		cfg.Lints.Deny = append(cfg.Lints.Deny, changedSlice(opts.Flags, FlagDeny)...)
	}
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		cfg.File = abs
		cfg.Root = filepath.Dir(abs)
	} else {
		cfg.Root = start
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps EPSLINT_LINTS__DENY to lints.deny and splits list values on
// commas.
func envKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	switch key {
	case "exclude", "lints.allow", "lints.warn", "lints.deny":
		return key, splitList(value)
	}
	return key, value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func flagKey(flags *pflag.FlagSet) func(f *pflag.Flag) (string, any) {
	return func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		switch f.Name {
		case FlagAllow, FlagWarn, FlagDeny, FlagConfig:
			// Level lists append after unmarshal instead of replacing.
			return "", nil
		case FlagNoCache:
			v, _ := flags.GetBool(FlagNoCache)
			return "cache", !v
		}
		return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
	}
}

func changedSlice(flags *pflag.FlagSet, name string) []string {
	f := flags.Lookup(name)
	if f == nil || !f.Changed {
		return nil
	}
	v, err := flags.GetStringSlice(name)
	if err != nil {
		return nil
	}
	return v
}

// Find walks up from dir looking for FileName and returns its path, or ""
// when none is found within the search limit.
func Find(dir string) string {
	current := dir
	for range maxUpwardSearchLevels {
		candidate := filepath.Join(current, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return ""
}

var (
	formats   = []string{"pretty", "short", "json", "sarif"}
	colors    = []string{"auto", "always", "never"}
	uiModes   = []string{"auto", "on", "off"}
	logLevels = []string{"debug", "info", "warn", "error"}
)

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	check := func(key, value string, allowed []string) error {
		if slices.Contains(allowed, value) {
			return nil
		}
		return fmt.Errorf("%w: %s %q (expected %s)", ErrInvalid, key, value, strings.Join(allowed, "|"))
	}
	if err := check("format", c.Format, formats); err != nil {
		return err
	}
	if err := check("color", c.Color, colors); err != nil {
		return err
	}
	if err := check("ui", c.UI, uiModes); err != nil {
		return err
	}
	if err := check("log_level", c.LogLevel, logLevels); err != nil {
		return err
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must be >= 0, got %d", ErrInvalid, c.Jobs)
	}
	if c.MaxDiagnostics < 0 {
		return fmt.Errorf("%w: max_diagnostics must be >= 0, got %d", ErrInvalid, c.MaxDiagnostics)
	}
	return nil
}

// LevelConfig returns the lint lists in the form the registry resolves.
func (c *Config) LevelConfig() lint.LevelConfig {
	return lint.LevelConfig{
		Allow: slices.Clone(c.Lints.Allow),
		Warn:  slices.Clone(c.Lints.Warn),
		Deny:  slices.Clone(c.Lints.Deny),
	}
}

// Check resolves every lint name against reg.
func (c *Config) Check(reg *lint.Registry) error {
	if _, err := reg.Overrides(c.LevelConfig()); err != nil {
		if c.File != "" {
			return fmt.Errorf("%s: %w", c.File, err)
		}
		return err
	}
	return nil
}

// SlogLevel maps log_level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// CachePath returns the cache directory, or "" when caching is off. A
// relative cache_dir is resolved against Root.
func (c *Config) CachePath(fallback string) string {
	if !c.Cache {
		return ""
	}
	dir := c.CacheDir
	if dir == "" {
		return fallback
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.Root, dir)
	}
	return dir
}
