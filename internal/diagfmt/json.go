package diagfmt

import (
	"encoding/json"
	"io"
	"slices"
	"strings"

	"epslint/internal/diag"
	"epslint/internal/source"
)

// LocationJSON is a span inside a file.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type FixEditJSON struct {
	Location LocationJSON `json:"location"`
	NewText  string       `json:"new_text"`
	OldText  string       `json:"old_text,omitempty"`
}

type FixJSON struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title"`
	Kind          string        `json:"kind"`
	Applicability string        `json:"applicability"`
	IsPreferred   bool          `json:"is_preferred,omitempty"`
	Edits         []FixEditJSON `json:"edits,omitempty"`
	BeforeLines   []string      `json:"before_lines,omitempty"`
	AfterLines    []string      `json:"after_lines,omitempty"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Lint     string       `json:"lint,omitempty"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput is the root object of the JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Dropped     int              `json:"dropped,omitempty"`
}

func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(fs, span.File, pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions && fs.Get(span.File) != nil {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// sortedFixes orders preferred fixes first, then by applicability, kind, title and ID.
func sortedFixes(fixes []*diag.Fix) []*diag.Fix {
	out := make([]*diag.Fix, 0, len(fixes))
	for _, f := range fixes {
		if f != nil {
			out = append(out, f)
		}
	}
	slices.SortStableFunc(out, func(fi, fj *diag.Fix) int {
		if fi.IsPreferred != fj.IsPreferred {
			if fi.IsPreferred {
				return -1
			}
			return 1
		}
		if fi.Applicability != fj.Applicability {
			return int(fi.Applicability) - int(fj.Applicability)
		}
		if fi.Kind != fj.Kind {
			return int(fi.Kind) - int(fj.Kind)
		}
		if c := strings.Compare(fi.Title, fj.Title); c != 0 {
			return c
		}
		return strings.Compare(fi.ID, fj.ID)
	})
	return out
}

// BuildDiagnosticsOutput builds the JSON document without serializing it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	errs, warns := bag.Counts()
	output := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(items)),
		Errors:      errs,
		Warnings:    warns,
		Dropped:     bag.Dropped(),
	}

	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Lint:     d.Lint,
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts.PathMode, opts.IncludePositions),
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(note.Span, fs, opts.PathMode, opts.IncludePositions),
				})
			}
		}
		if opts.IncludeFixes {
			for _, f := range sortedFixes(d.Fixes) {
				fj := FixJSON{
					ID:            f.ID,
					Title:         f.Title,
					Kind:          f.Kind.String(),
					Applicability: f.Applicability.String(),
					IsPreferred:   f.IsPreferred,
				}
				for _, edit := range f.Edits {
					fj.Edits = append(fj.Edits, FixEditJSON{
						Location: makeLocation(edit.Span, fs, opts.PathMode, opts.IncludePositions),
						NewText:  edit.NewText,
						OldText:  edit.OldText,
					})
				}
				if opts.IncludePreviews {
					if preview, err := buildFixPreview(fs, f); err == nil {
						fj.BeforeLines = preview.before
						fj.AfterLines = preview.after
					}
				}
				dj.Fixes = append(dj.Fixes, fj)
			}
		}
		output.Diagnostics = append(output.Diagnostics, dj)
	}
	output.Count = len(output.Diagnostics)
	return output
}

// JSON writes diagnostics as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
