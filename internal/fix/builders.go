package fix

import (
	"epslint/internal/diag"
	"epslint/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.Applicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// Preferred marks fix as preferred suggestion.
func Preferred() Option {
	return func(f *diag.Fix) {
		f.IsPreferred = true
	}
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

func applyOptions(f *diag.Fix, opts []Option) *diag.Fix {
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// InsertText creates fix that inserts text at an empty span.
func InsertText(title string, at source.Span, text string, opts ...Option) *diag.Fix {
	fix := &diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.MachineApplicable,
		Edits: []diag.TextEdit{{
			Span:    source.Span{File: at.File, Start: at.Start, End: at.Start},
			NewText: text,
		}},
	}
	return applyOptions(fix, opts)
}

// ReplaceSpan replaces text covered by span with newText. A non-empty expect
// guards the edit against stale sources.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) *diag.Fix {
	fix := &diag.Fix{
		Title:         title,
		Kind:          diag.FixKindQuickFix,
		Applicability: diag.MachineApplicable,
		Edits: []diag.TextEdit{{
			Span:    span,
			NewText: newText,
			OldText: expect,
		}},
	}
	return applyOptions(fix, opts)
}
