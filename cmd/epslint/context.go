package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"epslint/internal/config"
	"epslint/internal/driver"
	"epslint/internal/lint"
	"epslint/internal/lints"
)

// lintFlags marks commands whose own flags (format, jobs, -A/-W/-D, ...)
// feed the configuration. Other commands only layer the global flags.
const lintFlags = "lint-flags"

// app is what prepare hands to every command through the context.
type app struct {
	cfg *config.Config
	log *slog.Logger
	reg *lint.Registry
}

type appKey struct{}

func prepare(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "help", "completion", "__complete":
		return nil
	}
	if cmd.Annotations[skipConfig] == "true" {
		return nil
	}

	flags := cmd.Root().PersistentFlags()
	if cmd.Annotations[lintFlags] == "true" {
		flags = cmd.Flags()
	}
	cfg, err := config.Load(config.LoadOptions{Flags: flags})
	if err != nil {
		return err
	}
	reg := lints.Registry()
	if err := cfg.Check(reg); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	if cfg.File != "" {
		logger.Debug("loaded config", "file", cfg.File)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, appKey{}, &app{cfg: cfg, log: logger, reg: reg}))
	return nil
}

// appFrom returns the prepared app, or defaults when the command skipped
// configuration.
func appFrom(ctx context.Context) *app {
	if a, ok := ctx.Value(appKey{}).(*app); ok {
		return a
	}
	cfg := config.Default()
	return &app{cfg: &cfg, log: slog.New(slog.DiscardHandler), reg: lints.Registry()}
}

// driverOptions turns the configuration into driver options, opening the
// result cache when enabled. A cache that cannot be opened is logged and
// skipped.
func (a *app) driverOptions() driver.Options {
	opts := driver.Options{
		Registry:       a.reg,
		Levels:         a.cfg.LevelConfig(),
		MaxDiagnostics: a.cfg.MaxDiagnostics,
		Jobs:           a.cfg.Jobs,
		Exclude:        a.cfg.Exclude,
		Logger:         a.log,
	}
	if a.cfg.Cache {
		cache, err := driver.OpenCache(a.cfg.CachePath(""))
		if err != nil {
			a.log.Warn("result cache disabled", "err", err)
		} else {
			opts.Cache = cache
		}
	}
	return opts
}

// useColor resolves the color setting for output written to f.
func (a *app) useColor(f *os.File) bool {
	switch a.cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(f)
}

// addLintFlags registers the flags shared by check, fix and watch. Their
// names match configuration keys with dashes for underscores.
func addLintFlags(cmd *cobra.Command) {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[lintFlags] = "true"
	f := cmd.Flags()
	f.StringSliceP(config.FlagAllow, "A", nil, "set lints or groups to allow")
	f.StringSliceP(config.FlagWarn, "W", nil, "set lints or groups to warn")
	f.StringSliceP(config.FlagDeny, "D", nil, "set lints or groups to deny")
	f.IntP("jobs", "j", 0, "max parallel workers (0=one per CPU)")
	f.StringSlice("exclude", nil, "glob patterns of paths to skip")
	f.Bool(config.FlagNoCache, false, "do not read or write the result cache")
	f.String("cache-dir", "", "result cache directory")
}
