package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"epslint/internal/lint"
)

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <lint>",
		Short: "Print the documentation of a lint",
		Long:  "Print what a lint detects, why it matters, its known problems and an example.\nThe name may carry a clippy:: or epslint:: prefix.",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			var names []string
			for _, l := range lint.Builtin().Lints {
				names = append(names, l.Name)
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			name := strings.TrimPrefix(strings.TrimPrefix(args[0], "clippy::"), "epslint::")
			l, ok := a.reg.Catalog().Describe(name)
			if !ok {
				return fmt.Errorf("%w %q (run `epslint lints` for the list)", lint.ErrUnknownLint, args[0])
			}
			writeExplain(cmd.OutOrStdout(), l, a.useColor(os.Stdout))
			return nil
		},
	}
}

func writeExplain(w io.Writer, l *lint.Lint, useColor bool) {
	heading := color.New(color.Bold, color.FgCyan)
	if useColor {
		heading.EnableColor()
	} else {
		heading.DisableColor()
	}

	fmt.Fprintf(w, "%s\n", heading.Sprint(l.Name))
	fmt.Fprintf(w, "group: %s, default level: %s, code: %s, applicability: %s", l.Group, l.DefaultLevel, l.Code.ID(), l.Applicability)
	if l.Since != "" {
		fmt.Fprintf(w, ", since %s", l.Since)
	}
	fmt.Fprintln(w)

	sections := []struct {
		title, body string
		code        bool
	}{
		{"What it does", l.WhatItDoes, false},
		{"Why is this bad?", l.WhyBad, false},
		{"Known problems", l.KnownProblems, false},
		{"Example", l.Example, true},
		{"Use instead", l.UseInstead, true},
	}
	for _, s := range sections {
		body := strings.TrimSpace(s.body)
		if body == "" {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", heading.Sprint("### "+s.title))
		if s.code {
			fmt.Fprintf(w, "```rust\n%s\n```\n", body)
		} else {
			fmt.Fprintln(w, body)
		}
	}
	fmt.Fprintf(w, "\nSilence it with #[allow(%s)] or `-A %s`.\n", l.ToolName(), l.Name)
}
