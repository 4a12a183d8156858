package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"epslint/internal/driver"
)

type checkOptions struct {
	render    renderOpts
	timings   bool
	stdinName string
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [flags] [path...]",
		Short: "Lint .rs files or directories",
		Long: `Lint the given files and directories (default: the current directory).
Directories are walked for *.rs files, skipping paths matched by exclude.
Use "-" to read one file from standard input.

The exit status is 1 when any error diagnostic is reported, which happens
for denied lints and for syntax errors.`,
		Example: `  epslint check src
  epslint check -D suspicious -W float_equality_without_abs --format short .
  cat lib.rs | epslint check -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}
	addLintFlags(cmd)
	addRenderFlags(cmd, &opts.render)
	cmd.Flags().BoolVar(&opts.timings, "timings", false, "print phase timings on stderr")
	cmd.Flags().StringVar(&opts.stdinName, "stdin-filename", "stdin.rs", "file name reported for input read from -")
	return cmd
}

func addRenderFlags(cmd *cobra.Command, ro *renderOpts) {
	cmd.Flags().String("format", "", "output format (pretty|short|json|sarif)")
	cmd.Flags().String("ui", "", "progress display for directories (auto|on|off)")
	cmd.Flags().BoolVar(&ro.suggest, "suggest", false, "show every fix with its id")
	cmd.Flags().BoolVar(&ro.preview, "preview", false, "show the source after each fix")
	cmd.Flags().BoolVar(&ro.fullPath, "fullpath", false, "print absolute file paths")
}

func runCheck(cmd *cobra.Command, args []string, opts *checkOptions) error {
	a := appFrom(cmd.Context())
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	res, runErr := lintTargets(cmd.Context(), cmd.InOrStdin(), a, paths, a.driverOptions(), opts.stdinName)
	if res == nil {
		return runErr
	}

	ro := opts.render
	ro.format = a.cfg.Format
	ro.color = a.useColor(os.Stdout)
	ro.args = os.Args[1:]
	failed, err := report(cmd.OutOrStdout(), cmd.ErrOrStderr(), a, res, ro)
	if err != nil {
		return err
	}
	if opts.timings && res.Timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
	}
	if runErr != nil {
		return runErr
	}
	if failed {
		return errFindings
	}
	return nil
}

// lintTargets runs the driver on paths, reading standard input for "-" and
// showing live progress for directory runs when the ui setting allows it.
func lintTargets(ctx context.Context, stdin io.Reader, a *app, paths []string, opts driver.Options, stdinName string) (*driver.Result, error) {
	if slices.Contains(paths, "-") {
		if len(paths) != 1 {
			return nil, fmt.Errorf(`"-" cannot be combined with other paths`)
		}
		content, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return driver.LintSource(ctx, stdinName, content, opts)
	}
	if hasDir(paths) && shouldUseTUI(a.cfg.UI) {
		return lintWithUI(ctx, os.Stderr, "epslint check", paths, opts)
	}
	return driver.LintPaths(ctx, paths, opts)
}

func hasDir(paths []string) bool {
	for _, p := range paths {
		if st, err := os.Stat(p); err == nil && st.IsDir() {
			return true
		}
	}
	return false
}

// report renders a finished run and tells whether it must fail the command.
func report(out, errOut io.Writer, a *app, res *driver.Result, ro renderOpts) (bool, error) {
	bag := res.Bag()
	if err := renderBag(out, bag, res.FileSet, a.reg, ro); err != nil {
		return false, err
	}
	loadErrs := res.Errs()
	reportLoadErrors(errOut, loadErrs)
	if ro.format == "pretty" {
		dropped := 0
		for _, f := range res.Files {
			if f.Bag != nil {
				dropped += f.Bag.Dropped()
			}
		}
		summary(errOut, bag, len(res.Files), dropped, a.useColor(os.Stderr))
	}
	return bag.HasErrors() || len(loadErrs) > 0, nil
}
