package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"epslint/internal/driver"
	"epslint/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var ro renderOpts
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch [flags] [dir]",
		Short: "Re-lint a directory whenever its .rs files change",
		Long: `Lint dir (default: the current directory) once, then again after every
burst of changes to .rs files below it. Unchanged files come from the result
cache. Stop with Ctrl+C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runWatch(cmd, dir, ro, debounce)
		},
	}
	addLintFlags(cmd)
	addRenderFlags(cmd, &ro)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before re-linting")
	return cmd
}

func runWatch(cmd *cobra.Command, dir string, ro renderOpts, debounce time.Duration) error {
	st, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("watch: %s is not a directory", dir)
	}

	a := appFrom(cmd.Context())
	ro.format = a.cfg.Format
	ro.color = a.useColor(os.Stdout)
	opts := a.driverOptions()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	run := func(ctx context.Context, changed []string) error {
		if len(changed) > 0 {
			fmt.Fprintf(errOut, "\n[%s] %d file(s) changed, re-linting %s\n", time.Now().Format(time.TimeOnly), len(changed), dir)
		}
		res, err := driver.LintDir(ctx, dir, opts)
		if res == nil {
			return err
		}
		if _, rerr := report(out, errOut, a, res, ro); rerr != nil {
			return rerr
		}
		if err == nil && res.Bag().Len() == 0 {
			fmt.Fprintf(errOut, "epslint: %s clean\n", plural(len(res.Files), "file"))
		}
		return err
	}

	ctx := cmd.Context()
	if err := run(ctx, nil); err != nil {
		return err
	}
	return watch.Watch(ctx, dir, watch.Options{
		Debounce: debounce,
		Exclude:  a.cfg.Exclude,
		Logger:   a.log,
		Ready: func() {
			fmt.Fprintf(errOut, "watching %s for changes\n", dir)
		},
	}, run)
}
