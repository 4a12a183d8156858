package parser

import (
	"fmt"
	"strings"
	"testing"

	"epslint/internal/ast"
	"epslint/internal/diag"
	"epslint/internal/lexer"
	"epslint/internal/source"
)

type parsed struct {
	fs   *source.FileSet
	b    *ast.Builder
	file ast.FileID
	bag  *diag.Bag
}

func parseSrc(t *testing.T, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(src))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	res := ParseFile(lx, b, Options{Reporter: rep})
	return parsed{fs: fs, b: b, file: res.File, bag: bag}
}

func diagnosticsSummary(bag *diag.Bag) string {
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// firstFnBody returns the block of the first fn.
func (p parsed) firstFnBody(t *testing.T) *ast.ExprBlockData {
	t.Helper()
	f := p.b.Files.Get(p.file)
	if len(f.Items) == 0 {
		t.Fatalf("no items parsed: %s", diagnosticsSummary(p.bag))
	}
	fn, ok := p.b.Items.Fn(f.Items[0])
	if !ok {
		t.Fatalf("first item is not a fn")
	}
	body, ok := p.b.Exprs.Block(fn.Body)
	if !ok {
		t.Fatalf("fn body is not a block")
	}
	return body
}

// letValue returns the initializer of the i-th statement, which must be a let.
func (p parsed) letValue(t *testing.T, i int) ast.ExprID {
	t.Helper()
	body := p.firstFnBody(t)
	if i >= len(body.Stmts) {
		t.Fatalf("want stmt %d, have %d", i, len(body.Stmts))
	}
	let, ok := p.b.Stmts.Let(body.Stmts[i])
	if !ok {
		t.Fatalf("stmt %d is not a let", i)
	}
	return let.Value
}

func (p parsed) text(id ast.ExprID) string {
	s, _ := p.fs.Snippet(p.b.Exprs.Get(id).Span)
	return s
}

// dump renders an expression as an s-expression.
func (p parsed) dump(id ast.ExprID) string {
	e := p.b.Exprs
	expr := e.Get(id)
	if expr == nil {
		return "<nil>"
	}
	switch expr.Kind {
	case ast.ExprPath:
		segs, _ := p.b.PathSegments(id)
		return strings.Join(segs, "::")
	case ast.ExprLit:
		d, _ := e.Literal(id)
		return p.b.Name(d.Value)
	case ast.ExprBinary:
		d, _ := e.Binary(id)
		return fmt.Sprintf("(%s %s %s)", d.Op, p.dump(d.Left), p.dump(d.Right))
	case ast.ExprUnary:
		d, _ := e.Unary(id)
		ops := map[ast.ExprUnaryOp]string{
			ast.ExprUnaryNeg: "neg", ast.ExprUnaryNot: "not", ast.ExprUnaryRef: "ref",
			ast.ExprUnaryRefMut: "refmut", ast.ExprUnaryDeref: "deref", ast.ExprUnaryTry: "try",
		}
		return fmt.Sprintf("(%s %s)", ops[d.Op], p.dump(d.Operand))
	case ast.ExprGroup:
		d, _ := e.Group(id)
		return fmt.Sprintf("(group %s)", p.dump(d.Inner))
	case ast.ExprCall:
		d, _ := e.Call(id)
		return fmt.Sprintf("(call %s%s)", p.dump(d.Target), p.dumpList(d.Args))
	case ast.ExprMethodCall:
		d, _ := e.MethodCall(id)
		return fmt.Sprintf("(.%s %s%s)", p.b.Name(d.Method), p.dump(d.Receiver), p.dumpList(d.Args))
	case ast.ExprField:
		d, _ := e.Field(id)
		return fmt.Sprintf("(field %s %s)", p.dump(d.Target), p.b.Name(d.Field))
	case ast.ExprIndex:
		d, _ := e.Index(id)
		return fmt.Sprintf("(index %s %s)", p.dump(d.Target), p.dump(d.Index))
	case ast.ExprCast:
		d, _ := e.Cast(id)
		return fmt.Sprintf("(as %s %s)", p.dump(d.Value), d.Type.Text)
	case ast.ExprMacro:
		d, _ := e.Macro(id)
		return fmt.Sprintf("(%s!%s)", p.b.Name(d.Name), p.dumpList(d.Args))
	case ast.ExprTuple:
		d, _ := e.Tuple(id)
		return fmt.Sprintf("(tuple%s)", p.dumpList(d.Elements))
	case ast.ExprReturn:
		d, _ := e.Return(id)
		return fmt.Sprintf("(return %s)", p.dump(d.Value))
	default:
		return "(" + strings.ToLower(expr.Kind.String()) + ")"
	}
}

func (p parsed) dumpList(ids []ast.ExprID) string {
	var b strings.Builder
	for _, id := range ids {
		b.WriteByte(' ')
		b.WriteString(p.dump(id))
	}
	return b.String()
}
