package diag

import (
	"epslint/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	// Lint is the name of the lint that produced the diagnostic; empty for
	// lexer and parser errors.
	Lint    string
	Message string
	Primary source.Span
	Notes   []Note
	Fixes   []*Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithFix appends a quick fix with unspecified applicability.
func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fixes = append(d.Fixes, &Fix{
		Title:         title,
		Kind:          FixKindQuickFix,
		Applicability: Unspecified,
		Edits:         edits,
	})
	return d
}

func (d Diagnostic) WithFixSuggestion(fix *Fix) Diagnostic {
	if fix == nil {
		return d
	}
	d.Fixes = append(d.Fixes, fix)
	return d
}
