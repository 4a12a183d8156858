package lint_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epslint/internal/ast"
	"epslint/internal/diag"
	"epslint/internal/lexer"
	"epslint/internal/lint"
	"epslint/internal/lints"
	"epslint/internal/parser"
	"epslint/internal/source"
)

func run(t *testing.T, src string, overrides lint.Overrides) (*source.FileSet, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(src))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}

	b := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	res := parser.ParseFile(lx, b, parser.Options{Reporter: rep})
	require.Zero(t, bag.Len(), "syntax errors")

	runner := lint.NewRunner(lints.Registry(), overrides)
	runner.RunFile(lint.Unit{Files: fs, AST: b, File: res.File}, rep)
	bag.Sort()
	return fs, bag.Items()
}

func TestRunnerDefaultLevel(t *testing.T) {
	fs, diags := run(t, `
fn main() {
    let _ = (a - b) < f32::EPSILON;
}`, nil)
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, diag.SevError, d.Severity, "correctness lints deny by default")
	assert.Equal(t, diag.LntFloatEqualityWithoutAbs, d.Code)
	assert.Equal(t, "float_equality_without_abs", d.Lint)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "`#[deny(clippy::float_equality_without_abs)]` on by default", d.Notes[0].Msg)

	text, _ := fs.Snippet(d.Primary)
	assert.Equal(t, "(a - b) < f32::EPSILON", text)
}

func TestRunnerAttributeLevels(t *testing.T) {
	src := `#![warn(clippy::float_equality_without_abs)]

fn warned(a: f32, b: f32) -> bool {
    (a - b) < f32::EPSILON
}

#[allow(clippy::float_equality_without_abs)]
fn allowed(a: f32, b: f32) -> bool {
    (a - b) < f32::EPSILON
}

#[allow(clippy::correctness)]
fn outer() {
    #[deny(clippy::float_equality_without_abs)]
    fn inner(a: f64, b: f64) -> bool {
        a - b < f64::EPSILON
    }
    let _ = f64::EPSILON > x - y;
}
`
	fs, diags := run(t, src, nil)
	require.Len(t, diags, 2)

	start, _ := fs.Resolve(diags[0].Primary)
	assert.Equal(t, uint32(4), start.Line)
	assert.Equal(t, diag.SevWarning, diags[0].Severity)
	require.Len(t, diags[0].Notes, 1)
	assert.Equal(t, "the lint level is defined here", diags[0].Notes[0].Msg)
	note, _ := fs.Snippet(diags[0].Notes[0].Span)
	assert.Equal(t, "clippy::float_equality_without_abs", note)
	noteStart, _ := fs.Resolve(diags[0].Notes[0].Span)
	assert.Equal(t, uint32(1), noteStart.Line)

	start, _ = fs.Resolve(diags[1].Primary)
	assert.Equal(t, uint32(16), start.Line, "only the inner fn re-enables the lint")
	assert.Equal(t, diag.SevError, diags[1].Severity)
}

func TestRunnerOverrides(t *testing.T) {
	src := "fn f() { let _ = (a - b) < f32::EPSILON; }"

	_, diags := run(t, src, lint.Overrides{"float_equality_without_abs": lint.Allow})
	assert.Empty(t, diags)

	_, diags = run(t, src, lint.Overrides{"float_equality_without_abs": lint.Warn})
	require.Len(t, diags, 1)
	assert.Equal(t, diag.SevWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Notes[0].Msg, "by configuration")

	// source attributes beat configuration
	_, diags = run(t, "#![deny(clippy::all)]\n"+src, lint.Overrides{"float_equality_without_abs": lint.Allow})
	require.Len(t, diags, 1)
	assert.Equal(t, diag.SevError, diags[0].Severity)
}

func TestRunnerUnknownLints(t *testing.T) {
	_, diags := run(t, `#![allow(dead_code, clippy::needless_return, rustdoc::broken_intra_doc_links)]
#![warn(epslint::no_such_lint)]
fn f() {}
`, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.LntUnknownLint, diags[0].Code)
	assert.Equal(t, diag.SevWarning, diags[0].Severity)
	assert.True(t, strings.Contains(diags[0].Message, "epslint::no_such_lint"))
}

func TestRunnerFix(t *testing.T) {
	_, diags := run(t, "fn f() { let _ = a - b < f32::EPSILON; }", nil)
	require.Len(t, diags, 1)
	require.Len(t, diags[0].Fixes, 1)

	fix := diags[0].Fixes[0]
	assert.Equal(t, "add `.abs()`", fix.Title)
	assert.Equal(t, diag.MaybeIncorrect, fix.Applicability)
	require.Len(t, fix.Edits, 1)
	assert.Equal(t, "(a - b).abs()", fix.Edits[0].NewText)
	assert.Equal(t, "a - b", fix.Edits[0].OldText)
}
