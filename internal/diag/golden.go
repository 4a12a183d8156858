package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"epslint/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation suitable for fixture files. Paths are reduced to base names so
// fixtures do not depend on the checkout location.
func FormatGoldenDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return formatDiagnostics(diags, fs, includeNotes, "basename")
}

// FormatShortDiagnostics renders diagnostics one per line for CLI short output,
// with paths relative to the file set base directory.
func FormatShortDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return formatDiagnostics(diags, fs, includeNotes, "relative")
}

func formatDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool, pathMode string) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	groups := make([][]goldenDiagnostic, 0, len(diags))
	for _, d := range diags {
		if g := renderDiagnostic(d, fs, includeNotes, pathMode); len(g) > 0 {
			groups = append(groups, g)
		}
	}

	// notes and help lines stay right after their diagnostic
	sort.SliceStable(groups, func(i, j int) bool {
		di, dj := groups[i][0], groups[j][0]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		for _, d := range g {
			lines = append(lines, fmt.Sprintf("%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message))
		}
	}
	return strings.Join(lines, "\n")
}

func renderDiagnostic(d *Diagnostic, fs *source.FileSet, includeNotes bool, pathMode string) []goldenDiagnostic {
	if d == nil {
		return nil
	}
	loc, ok := resolveSpan(fs, d.Primary, pathMode)
	if !ok {
		return nil
	}
	var out []goldenDiagnostic
	msg := sanitizeMessage(d.Message)
	if d.Lint != "" {
		msg += " [" + d.Lint + "]"
	}
	out = append(out, goldenDiagnostic{
		Severity: d.Severity.Label(),
		Code:     d.Code.ID(),
		Path:     loc.Path,
		Line:     loc.Line,
		Column:   loc.Column,
		Message:  msg,
	})

	if !includeNotes {
		return out
	}
	for _, note := range d.Notes {
		nloc, nok := resolveSpan(fs, note.Span, pathMode)
		if !nok {
			continue
		}
		out = append(out, goldenDiagnostic{
			Severity: "note",
			Code:     d.Code.ID(),
			Path:     nloc.Path,
			Line:     nloc.Line,
			Column:   nloc.Column,
			Message:  sanitizeMessage(note.Msg),
		})
	}
	for _, fix := range d.Fixes {
		if fix == nil || len(fix.Edits) == 0 {
			continue
		}
		edit := fix.Edits[0]
		floc, fok := resolveSpan(fs, edit.Span, pathMode)
		if !fok {
			continue
		}
		out = append(out, goldenDiagnostic{
			Severity: "help",
			Code:     d.Code.ID(),
			Path:     floc.Path,
			Line:     floc.Line,
			Column:   floc.Column,
			Message:  fmt.Sprintf("%s: `%s` (%s)", sanitizeMessage(fix.Title), edit.NewText, fix.Applicability),
		})
	}
	return out
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(fs *source.FileSet, span source.Span, pathMode string) (resolvedSpan, bool) {
	file := fs.Get(span.File)
	if file == nil {
		return resolvedSpan{}, false
	}
	start, _ := fs.Resolve(span)
	return resolvedSpan{
		Path:   normalizePath(file.FormatPath(pathMode, fs.BaseDir())),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
