package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"epslint/internal/config"
	"epslint/internal/prof"
	"epslint/internal/version"
)

// errFindings makes the process exit with status 1 without printing an
// error: the diagnostics were already rendered.
var errFindings = errors.New("error diagnostics reported")

// skipConfig marks commands that must run without loading epslint.yaml.
const skipConfig = "skip-config"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "epslint",
		Short: "Find float comparisons against EPSILON that forget .abs()",
		Long: `epslint checks Rust sources for comparisons such as (a - b) < f32::EPSILON,
which hold for any negative difference, and suggests (a - b).abs() instead.

Settings come from epslint.yaml (searched upwards from the working directory),
EPSLINT_* environment variables and flags, in increasing order of precedence.`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: prepare,
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	root.PersistentFlags().String(config.FlagConfig, "", "config file (default: nearest "+config.FileName+")")
	root.PersistentFlags().String("color", "", "colorize output (auto|always|never)")
	root.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	root.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics kept per file")

	root.AddCommand(
		newCheckCmd(),
		newFixCmd(),
		newLintsCmd(),
		newExplainCmd(),
		newWatchCmd(),
		newInitCmd(),
		newVersionCmd(),
		newDumpCmd(),
	)
	return root
}

// withProfiling adds the profiler flags to root and starts the requested
// profilers before any command runs. The returned function stops them.
func withProfiling(root *cobra.Command) func() error {
	var opts prof.Options
	root.PersistentFlags().StringVar(&opts.CPU, "cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().StringVar(&opts.Mem, "mem-profile", "", "write a heap profile to file on exit")
	root.PersistentFlags().StringVar(&opts.Trace, "runtime-trace", "", "write a Go runtime trace to file")

	var session *prof.Session
	next := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		s, err := prof.Start(opts)
		if err != nil {
			return err
		}
		session = s
		return next(cmd, args)
	}
	return func() error { return session.Stop() }
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := newRootCmd()
	stopProfiling := withProfiling(root)
	err := root.ExecuteContext(ctx)
	if perr := stopProfiling(); perr != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", perr)
	}
	stop()
	if err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
