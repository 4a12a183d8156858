package lint

import (
	"epslint/internal/ast"
	"epslint/internal/diag"
	"epslint/internal/source"
)

// Context is what a pass sees while checking one expression.
type Context struct {
	Files *source.FileSet
	AST   *ast.Builder
	Exprs *ast.Exprs

	fn       ast.ItemID
	lint     *Lint
	spec     LevelSpec
	reporter diag.Reporter
}

// Fn is the innermost fn enclosing the expression.
func (cx *Context) Fn() ast.ItemID { return cx.fn }

// Level is the effective level of the running lint.
func (cx *Context) Level() Level { return cx.spec.Level }

// Snippet returns the source text under sp, or fallback when sp cannot be resolved.
func (cx *Context) Snippet(sp source.Span, fallback string) string {
	if cx.Files == nil {
		return fallback
	}
	if text, ok := cx.Files.Snippet(sp); ok {
		return text
	}
	return fallback
}

// Report starts a diagnostic for the running lint at its effective level.
// The caller adds fixes and calls Emit.
func (cx *Context) Report(primary source.Span, msg string) *diag.ReportBuilder {
	b := diag.NewReportBuilder(cx.reporter, cx.spec.Level.Severity(), cx.lint.Code, primary, msg).
		WithLint(cx.lint.Name)
	note, spanned := cx.spec.Note(cx.lint)
	if spanned {
		b.WithNote(cx.spec.Span, note)
	} else {
		b.WithNote(primary, note)
	}
	return b
}
