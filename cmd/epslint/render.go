package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"epslint/internal/diag"
	"epslint/internal/diagfmt"
	"epslint/internal/lint"
	"epslint/internal/source"
	"epslint/internal/version"
)

// renderOpts are the rendering switches of check and watch.
type renderOpts struct {
	format   string
	color    bool
	suggest  bool
	preview  bool
	fullPath bool
	args     []string
}

func (o renderOpts) pathMode() diagfmt.PathMode {
	if o.fullPath {
		return diagfmt.PathModeAbsolute
	}
	return diagfmt.PathModeAuto
}

// renderBag writes bag in the chosen format.
func renderBag(w io.Writer, bag *diag.Bag, fs *source.FileSet, reg *lint.Registry, opts renderOpts) error {
	switch opts.format {
	case "pretty":
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:       opts.color,
			Context:     0,
			PathMode:    opts.pathMode(),
			ShowNotes:   true,
			ShowFixes:   opts.suggest || opts.preview,
			ShowPreview: opts.preview,
		})
		return nil
	case "short":
		return diagfmt.Short(w, bag, fs, opts.suggest)
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         opts.pathMode(),
			IncludeNotes:     true,
			IncludeFixes:     true,
			IncludePreviews:  opts.preview,
		})
	case "sarif":
		return diagfmt.Sarif(w, bag, fs, sarifMeta(reg, opts.args))
	default:
		return fmt.Errorf("unknown format: %s", opts.format)
	}
}

func sarifMeta(reg *lint.Registry, args []string) diagfmt.SarifRunMeta {
	meta := diagfmt.SarifRunMeta{
		ToolName:       "epslint",
		ToolVersion:    version.Version,
		InformationURI: "https://rust-lang.github.io/rust-clippy/master/index.html",
		InvocationArgs: append([]string{"epslint"}, args...),
	}
	for _, p := range reg.All() {
		l := p.Lint()
		meta.Rules = append(meta.Rules, diagfmt.SarifRule{
			ID:               l.Name,
			Name:             l.ToolName(),
			ShortDescription: l.Description,
			FullDescription:  l.WhatItDoes,
			Help:             l.UseInstead,
			DefaultLevel:     sarifLevel(l.DefaultLevel),
		})
	}
	return meta
}

func sarifLevel(l lint.Level) string {
	switch l {
	case lint.Deny:
		return "error"
	case lint.Warn:
		return "warning"
	default:
		return "none"
	}
}

// summary prints the rustc-style closing line on stderr.
func summary(w io.Writer, bag *diag.Bag, files, dropped int, useColor bool) {
	errs, warns := bag.Counts()
	if errs == 0 && warns == 0 {
		return
	}
	var parts []string
	if warns > 0 {
		parts = append(parts, plural(warns, "warning"))
	}
	if errs > 0 {
		parts = append(parts, plural(errs, "error"))
	}
	line := fmt.Sprintf("epslint: %s emitted in %s", joinAnd(parts), plural(files, "file"))
	if dropped > 0 {
		line += fmt.Sprintf(" (%d more not shown)", dropped)
	}
	bold := color.New(color.Bold)
	if useColor {
		bold.EnableColor()
	} else {
		bold.DisableColor()
	}
	fmt.Fprintln(w, bold.Sprint(line))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func joinAnd(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return parts[0] + " and " + parts[1]
	}
}

// reportLoadErrors prints files that could not be read.
func reportLoadErrors(w io.Writer, errs []error) {
	for _, err := range errs {
		fmt.Fprintf(w, "error: %v\n", err)
	}
}
