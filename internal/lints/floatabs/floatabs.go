// Package floatabs implements float_equality_without_abs, which flags
// `(a - b) < f32::EPSILON` comparisons that are missing `.abs()`.
package floatabs

import (
	"slices"
	"strings"

	"epslint/internal/ast"
	"epslint/internal/diag"
	"epslint/internal/fix"
	"epslint/internal/lint"
	"epslint/internal/source"
)

// Name is the lint name used in attributes and configuration.
const Name = "float_equality_without_abs"

const (
	message     = "float equality check without `.abs()`"
	fixLabel    = "add `.abs()`"
	placeholder = "(...)"
)

var epsilonPaths = [][]string{
	{"f32", "EPSILON"},
	{"f64", "EPSILON"},
}

// Snippeter maps a span to the source text under it.
type Snippeter interface {
	Snippet(sp source.Span) (string, bool)
}

// Finding is one flagged comparison and its suggested rewrite.
type Finding struct {
	// Span covers the whole comparison.
	Span    source.Span
	Message string
	Label   string
	// Replacement replaces the difference operand at ReplaceSpan.
	Replacement   string
	ReplaceSpan   source.Span
	OldText       string
	Applicability diag.Applicability
}

// Match recognises `diff < eps` and `eps > diff` where diff, with any
// parentheses peeled, is a subtraction. It does not look at eps.
func Match(exprs *ast.Exprs, id ast.ExprID) (diff, eps ast.ExprID, ok bool) {
	cmp, ok := exprs.Binary(id)
	if !ok {
		return ast.NoExprID, ast.NoExprID, false
	}
	switch cmp.Op {
	case ast.ExprBinaryLess:
		diff, eps = cmp.Left, cmp.Right
	case ast.ExprBinaryGreater:
		diff, eps = cmp.Right, cmp.Left
	default:
		return ast.NoExprID, ast.NoExprID, false
	}
	sub, ok := exprs.Binary(exprs.Unparen(diff))
	if !ok || sub.Op != ast.ExprBinarySub {
		return ast.NoExprID, ast.NoExprID, false
	}
	return diff, eps, true
}

// IsEpsilon reports whether id, with any parentheses peeled, is exactly the
// path f32::EPSILON or f64::EPSILON.
func IsEpsilon(b *ast.Builder, id ast.ExprID) bool {
	segs, ok := b.PathSegments(b.Exprs.Unparen(id))
	if !ok {
		return false
	}
	for _, want := range epsilonPaths {
		if slices.Equal(segs, want) {
			return true
		}
	}
	return false
}

// Suggest wraps text in `.abs()`. Text starting with '(' only gets the
// method appended.
func Suggest(text string) string {
	if strings.HasPrefix(text, "(") {
		return text + ".abs()"
	}
	return "(" + text + ").abs()"
}

// Check runs the whole lint on one expression. snippets may be nil, in which
// case the replacement is built from a placeholder.
func Check(b *ast.Builder, id ast.ExprID, snippets Snippeter) (Finding, bool) {
	diff, eps, ok := Match(b.Exprs, id)
	if !ok || !IsEpsilon(b, eps) {
		return Finding{}, false
	}

	diffSpan := b.Exprs.Get(diff).Span
	text, found := placeholder, false
	if snippets != nil {
		if s, ok := snippets.Snippet(diffSpan); ok {
			text, found = s, true
		}
	}
	f := Finding{
		Span:          b.Exprs.Get(id).Span,
		Message:       message,
		Label:         fixLabel,
		Replacement:   Suggest(text),
		ReplaceSpan:   diffSpan,
		Applicability: diag.MaybeIncorrect,
	}
	if found {
		f.OldText = text
	}
	return f, true
}

// Fix is the diagnostic fix for f.
func (f Finding) Fix() *diag.Fix {
	return fix.ReplaceSpan(f.Label, f.ReplaceSpan, f.Replacement, f.OldText,
		fix.WithApplicability(f.Applicability),
		fix.Preferred(),
	)
}

// Pass is the lint.ExprPass for float_equality_without_abs.
type Pass struct {
	meta *lint.Lint
}

func New() *Pass {
	return &Pass{meta: lint.MustDescribe(Name)}
}

func (p *Pass) Lint() *lint.Lint { return p.meta }

func (p *Pass) CheckExpr(cx *lint.Context, id ast.ExprID) {
	var snippets Snippeter
	if cx.Files != nil {
		snippets = cx.Files
	}
	f, ok := Check(cx.AST, id, snippets)
	if !ok {
		return
	}
	cx.Report(f.Span, f.Message).WithFixSuggestion(f.Fix()).Emit()
}
