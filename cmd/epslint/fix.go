package main

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"epslint/internal/driver"
	"epslint/internal/fix"
	"epslint/internal/source"
)

type fixOptions struct {
	all            bool
	once           bool
	id             string
	maybeIncorrect bool
	dryRun         bool
}

func newFixCmd() *cobra.Command {
	opts := &fixOptions{}
	cmd := &cobra.Command{
		Use:   "fix [flags] [path...]",
		Short: "Apply suggested fixes to files or directories",
		Long: `Lint the given paths and apply their suggestions.

The suggestions of float_equality_without_abs are MaybeIncorrect: they change
behaviour for negative differences, which is usually the bug being fixed.
Bulk modes apply them only with --maybe-incorrect; --id applies any fix.`,
		Example: `  epslint fix --all --maybe-incorrect src
  epslint check --suggest src/lib.rs   # lists fix ids
  epslint fix --id LNT3001-1-42-0 src/lib.rs
  epslint fix --all --maybe-incorrect --dry-run src/lib.rs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, opts)
		},
	}
	addLintFlags(cmd)
	cmd.Flags().BoolVar(&opts.all, "all", false, "apply every selectable fix")
	cmd.Flags().BoolVar(&opts.once, "once", false, "apply the first selectable fix (default)")
	cmd.Flags().StringVar(&opts.id, "id", "", "apply the fix with this identifier")
	cmd.Flags().BoolVar(&opts.maybeIncorrect, "maybe-incorrect", false, "let --all and --once pick MaybeIncorrect fixes")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the rewritten files instead of writing them")
	return cmd
}

func (o *fixOptions) applyOptions() (fix.ApplyOptions, error) {
	if o.id != "" && (o.all || o.once) {
		return fix.ApplyOptions{}, fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if o.all && o.once {
		return fix.ApplyOptions{}, fmt.Errorf("--all and --once are mutually exclusive")
	}
	mode := fix.ApplyModeOnce
	if o.id != "" {
		mode = fix.ApplyModeID
	} else if o.all {
		mode = fix.ApplyModeAll
	}
	return fix.ApplyOptions{
		Mode:                  mode,
		TargetID:              o.id,
		IncludeMaybeIncorrect: o.maybeIncorrect,
	}, nil
}

func runFix(cmd *cobra.Command, args []string, opts *fixOptions) error {
	applyOpts, err := opts.applyOptions()
	if err != nil {
		return err
	}
	a := appFrom(cmd.Context())
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	res, err := driver.LintPaths(cmd.Context(), paths, a.driverOptions())
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	reportLoadErrors(cmd.ErrOrStderr(), res.Errs())
	diagnostics := res.Bag().Pointers()

	out := cmd.OutOrStdout()
	if opts.dryRun {
		buffers, applied, renderErr := fix.Render(res.FileSet, diagnostics, applyOpts)
		if err := printRendered(out, res.FileSet, buffers); err != nil {
			return err
		}
		return handleApplyResult(cmd.ErrOrStderr(), applied, renderErr)
	}
	applied, applyErr := fix.Apply(res.FileSet, diagnostics, applyOpts)
	if err := handleApplyResult(out, applied, applyErr); err != nil {
		return err
	}
	if len(res.Errs()) > 0 {
		return errFindings
	}
	return nil
}

func printRendered(w io.Writer, fs *source.FileSet, buffers map[source.FileID][]byte) error {
	ids := make([]source.FileID, 0, len(buffers))
	for id := range buffers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if _, err := fmt.Fprintf(w, "== %s ==\n%s", fs.Get(id).FormatPath("relative", fs.BaseDir()), buffers[id]); err != nil {
			return err
		}
	}
	return nil
}

func handleApplyResult(w io.Writer, res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		fmt.Fprintf(w, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(w, "  %s [%s] at %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability)
		}
	}

	if len(res.FileChanges) > 0 {
		fmt.Fprintln(w, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(w, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(w, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(w, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(w, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(w, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}
	if len(res.Applied) == 0 {
		fmt.Fprintln(w, "No fixes applied.")
	}
	return nil
}
