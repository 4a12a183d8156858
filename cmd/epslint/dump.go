package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"epslint/internal/diag"
	"epslint/internal/diagfmt"
	"epslint/internal/driver"
	"epslint/internal/source"
)

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the tokens or syntax tree of a file",
		Long:  "Debugging views of the front end. Syntax errors go to stderr.",
	}

	var tokFormat string
	tokens := &cobra.Command{
		Use:   "tokens [flags] file.rs",
		Short: "Print the tokens of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			res, err := driver.Tokenize(args[0], a.cfg.MaxDiagnostics)
			if err != nil {
				return fmt.Errorf("tokenization failed: %w", err)
			}
			printFrontEndDiagnostics(cmd.ErrOrStderr(), a, res.Bag, res.FileSet)
			switch tokFormat {
			case "pretty":
				return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), res.Tokens, res.FileSet)
			case "json":
				return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), res.Tokens)
			default:
				return fmt.Errorf("unknown format: %s", tokFormat)
			}
		},
	}
	tokens.Flags().StringVar(&tokFormat, "format", "pretty", "output format (pretty|json)")

	tree := &cobra.Command{
		Use:   "ast file.rs",
		Short: "Print the syntax tree of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			res, err := driver.Parse(args[0], a.cfg.MaxDiagnostics)
			if err != nil {
				return fmt.Errorf("parse failed: %w", err)
			}
			printFrontEndDiagnostics(cmd.ErrOrStderr(), a, res.Bag, res.FileSet)
			return diagfmt.FormatASTPretty(cmd.OutOrStdout(), res.Builder, res.FileID, res.FileSet)
		},
	}

	cmd.AddCommand(tokens, tree)
	return cmd
}

func printFrontEndDiagnostics(w io.Writer, a *app, bag *diag.Bag, fs *source.FileSet) {
	if bag.Len() == 0 {
		return
	}
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:     a.useColor(os.Stderr),
		Context:   2,
		ShowNotes: true,
	})
}
