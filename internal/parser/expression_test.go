package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epslint/internal/ast"
	"epslint/internal/diag"
)

func TestExpressionShapes(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"(a - b) < f32::EPSILON", "(< (group (- a b)) f32::EPSILON)"},
		{"a - b < f32::EPSILON", "(< (- a b) f32::EPSILON)"},
		{"f32::EPSILON > (a - b)", "(> f32::EPSILON (group (- a b)))"},
		{"a - b.abs() < f32::EPSILON", "(< (- a (.abs b)) f32::EPSILON)"},
		{"(a - b).abs() < f32::EPSILON", "(< (.abs (group (- a b))) f32::EPSILON)"},
		{"(a as f64 - b as f64) < f64::EPSILON", "(< (group (- (as a f64) (as b f64))) f64::EPSILON)"},
		{"-a as f64", "(as (neg a) f64)"},
		{"a * b as f32", "(* a (as b f32))"},
		{"a + b * c - d", "(- (+ a (* b c)) d)"},
		{"a || b && c == d", "(|| a (&& b (== c d)))"},
		{"x = y = 1", "(= x (= y 1))"},
		{"&mut v[0]", "(refmut (index v 0))"},
		{"f(x)?.0", "(field (try (call f x)) 0)"},
		{"v.iter().map::<f32>(g)", "(.map (.iter v) g)"},
		{"(1, 2.5f32)", "(tuple 1 2.5f32)"},
		{"()", "(tuple)"},
		{"assert!(x - y < f64::EPSILON, \"msg\")", "(assert! (< (- x y) f64::EPSILON) \"msg\")"},
		{"vec![0.0; n]", "(vec! 0.0 n)"},
		{"std::f64::consts::PI", "std::f64::consts::PI"},
		{"1 << 2 & 3", "(& (<< 1 2) 3)"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			p := parseSrc(t, "fn f() { let _ = "+tt.expr+"; }")
			require.Zero(t, p.bag.Len(), diagnosticsSummary(p.bag))
			assert.Equal(t, tt.want, p.dump(p.letValue(t, 0)))
		})
	}
}

func TestGroupSpanIncludesParens(t *testing.T) {
	p := parseSrc(t, "fn f() { let _ = (a - b) < f32::EPSILON; }")
	cmp, ok := p.b.Exprs.Binary(p.letValue(t, 0))
	require.True(t, ok)

	assert.Equal(t, "(a - b) < f32::EPSILON", p.text(p.letValue(t, 0)))
	assert.Equal(t, "(a - b)", p.text(cmp.Left))
	assert.Equal(t, "a - b", p.text(p.b.Exprs.Unparen(cmp.Left)))
}

func TestCastSpanCoversType(t *testing.T) {
	p := parseSrc(t, "fn f() { let _ = a as f64 - b as f64; }")
	sub, ok := p.b.Exprs.Binary(p.letValue(t, 0))
	require.True(t, ok)
	assert.Equal(t, "a as f64", p.text(sub.Left))
	assert.Equal(t, "b as f64", p.text(sub.Right))
}

func TestBlockTailAndIf(t *testing.T) {
	p := parseSrc(t, `
fn f(a: f32, b: f32) -> bool {
    if a > b { return false; } else if a < b { g() } else { h() }
    a == b
}`)
	require.Zero(t, p.bag.Len(), diagnosticsSummary(p.bag))

	body := p.firstFnBody(t)
	require.Len(t, body.Stmts, 1)
	assert.True(t, body.Tail.IsValid())
	assert.Equal(t, "(== a b)", p.dump(body.Tail))

	es, ok := p.b.Stmts.Expr(body.Stmts[0])
	require.True(t, ok)
	ifData, ok := p.b.Exprs.If(es.Expr)
	require.True(t, ok)
	kind, _ := p.b.Exprs.Kind(ifData.Else)
	assert.Equal(t, ast.ExprIf, kind)
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"missing semicolon", "fn f() { let x = 1 }", diag.SynExpectSemicolon},
		{"missing expression", "fn f() { let x = ; }", diag.SynExpectExpression},
		{"unclosed brace", "fn f() { let x = 1;", diag.SynUnclosedDelimiter},
		{"unclosed paren", "fn f() { g(1, 2 }", diag.SynUnexpectedToken},
		{"stray token", "let x = 1;", diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseSrc(t, tt.src)
			require.NotZero(t, p.bag.Len())
			assert.Equal(t, tt.code, p.bag.Items()[0].Code, diagnosticsSummary(p.bag))
		})
	}
}

func TestRecoveryKeepsLaterItems(t *testing.T) {
	p := parseSrc(t, `
fn broken() { let x = ; let y = 2; }
fn ok() { let _ = a - b < f32::EPSILON; }
`)
	require.Equal(t, 1, p.bag.Len(), diagnosticsSummary(p.bag))
	f := p.b.Files.Get(p.file)
	require.Len(t, f.Items, 2)

	fn, _ := p.b.Items.Fn(f.Items[0])
	body, _ := p.b.Exprs.Block(fn.Body)
	assert.Len(t, body.Stmts, 1, "the let after the broken one survives")
}

func TestMissingSemicolonFix(t *testing.T) {
	p := parseSrc(t, "fn f() {\n    let x = 1\n    g()\n}")
	require.Equal(t, 1, p.bag.Len(), diagnosticsSummary(p.bag))

	d := p.bag.Items()[0]
	assert.Equal(t, diag.SynExpectSemicolon, d.Code)
	require.Len(t, d.Fixes, 1)
	fix := d.Fixes[0]
	assert.Equal(t, diag.MachineApplicable, fix.Applicability)
	assert.Equal(t, ";", fix.Edits[0].NewText)

	start, _ := p.fs.Resolve(fix.Edits[0].Span)
	assert.Equal(t, uint32(2), start.Line)
	assert.Equal(t, uint32(14), start.Col, "right after the initializer")
}

func TestChainedComparison(t *testing.T) {
	for _, src := range []string{
		"fn f() -> bool { a - b < f32::EPSILON < c }",
		"fn f() -> bool { a == b != c }",
		"fn f() -> bool { x && a < b >= c }",
	} {
		p := parseSrc(t, src)
		require.NotZero(t, p.bag.Len(), src)
		d := p.bag.Items()[0]
		assert.Equal(t, diag.SynUnexpectedToken, d.Code, src)
		assert.Equal(t, "comparison operators cannot be chained", d.Message, src)
	}

	p := parseSrc(t, "fn f() { let _ = (a < b) == c; let _ = a < b && c < d; }")
	assert.Zero(t, p.bag.Len(), diagnosticsSummary(p.bag))
	assert.Equal(t, "(== (group (< a b)) c)", p.dump(p.letValue(t, 0)))
}

func TestUnsupportedItemsAreSkipped(t *testing.T) {
	p := parseSrc(t, `use std::f32::{self, EPSILON};
#[derive(Debug)]
pub struct P { x: f32, y: [f32; 2] }
struct Unit;
struct Pair(f32, f32);
pub(crate) enum E { A { v: f32 }, B }
const TOL: f32 = 1e-6;
static ORIGIN: P = P { x: 0.0, y: [0.0; 2] };
impl P {
    fn near(&self, o: &P) -> bool { self.x - o.x < f32::EPSILON }
}
unsafe impl Send for P {}
extern crate core;
extern "C" { fn ext(); }
macro_rules! m { () => {}; }
lazy_static! { static ref Z: f32 = 0.0; }
thread_local!(static T: f32 = 0.0);
pub(crate) const fn half(a: f32) -> f32 { a / 2.0 }
unsafe fn f(a: f32, b: f32) -> bool { a - b < f32::EPSILON }
`)
	assert.Zero(t, p.bag.Len(), diagnosticsSummary(p.bag))
	f := p.b.Files.Get(p.file)
	require.Len(t, f.Items, 2, "only the fn items are kept")
	half, _ := p.b.Items.Fn(f.Items[0])
	assert.Equal(t, "half", p.b.Name(half.Name))
	assert.True(t, half.Pub)
	unsafeFn, _ := p.b.Items.Fn(f.Items[1])
	assert.Equal(t, "f", p.b.Name(unsafeFn.Name))
}

func TestLocalItemsAreSkipped(t *testing.T) {
	p := parseSrc(t, `fn f(a: f32) -> bool {
    use std::f32::EPSILON;
    const TOL: f32 = 1e-6;
    struct Local { v: f32 }
    let d = a - 1.0;
    d < EPSILON
}`)
	assert.Zero(t, p.bag.Len(), diagnosticsSummary(p.bag))
	body := p.firstFnBody(t)
	assert.Len(t, body.Stmts, 1)
	assert.True(t, body.Tail.IsValid())
}

func TestSkippedItemErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unclosed struct", "struct S { x: f32,", diag.SynUnclosedDelimiter},
		{"stray closer", "struct S) fn f() {}", diag.SynUnexpectedToken},
		{"stray identifier", "garbage fn f() {}", diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseSrc(t, tt.src)
			require.Equal(t, 1, p.bag.Len(), diagnosticsSummary(p.bag))
			assert.Equal(t, tt.code, p.bag.Items()[0].Code)
			assert.Equal(t, diag.SevError, p.bag.Items()[0].Severity)
		})
	}

	p := parseSrc(t, "garbage fn f() {}")
	assert.Len(t, p.b.Files.Get(p.file).Items, 1, "the fn after the stray identifier survives")
}
