package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"epslint/internal/lint"
)

type lintRow struct {
	Name          string `json:"name"`
	Group         string `json:"group"`
	Default       string `json:"default_level"`
	Effective     string `json:"level"`
	Applicability string `json:"applicability"`
	Description   string `json:"description"`
}

func newLintsCmd() *cobra.Command {
	var format, group string
	cmd := &cobra.Command{
		Use:   "lints",
		Short: "List the available lints and their levels",
		Long: `List every lint with its group, default level and the level after
configuration and -A/-W/-D flags are applied. Source attributes may still
change the level inside a file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd.Context())
			rows, err := lintRows(a.reg, a.cfg.LevelConfig(), group)
			if err != nil {
				return err
			}
			switch format {
			case "table":
				renderLintTable(cmd.OutOrStdout(), rows)
				return nil
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			default:
				return fmt.Errorf("unsupported format %q (must be table or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "output format (table|json)")
	cmd.Flags().StringVarP(&group, "group", "g", "", "only list lints of this group")
	return cmd
}

func lintRows(reg *lint.Registry, levels lint.LevelConfig, group string) ([]lintRow, error) {
	overrides, err := reg.Overrides(levels)
	if err != nil {
		return nil, err
	}
	var rows []lintRow
	for _, p := range reg.All() {
		l := p.Lint()
		if group != "" && l.Group != group {
			continue
		}
		effective := l.DefaultLevel
		if lvl, ok := overrides[l.Name]; ok {
			effective = lvl
		}
		rows = append(rows, lintRow{
			Name:          l.Name,
			Group:         l.Group,
			Default:       l.DefaultLevel.String(),
			Effective:     effective.String(),
			Applicability: l.Applicability.String(),
			Description:   l.Description,
		})
	}
	return rows, nil
}

func renderLintTable(w io.Writer, rows []lintRow) {
	title := cases.Title(language.English)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"Lint", "Group", "Default", "Level", "Fix", "Description"})
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.Name,
			title.String(strings.ReplaceAll(r.Group, "_", " ")),
			r.Default,
			r.Effective,
			r.Applicability,
			r.Description,
		})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d lint(s)", len(rows))})
	t.Render()
}
