package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"epslint/internal/ast"
	"epslint/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(label string, children ...*treeNode) *treeNode {
	c := &treeNode{label: label, children: children}
	n.children = append(n.children, c)
	return c
}

// FormatASTPretty writes the syntax tree of fileID as an indented tree:
//
//	src/lib.rs (span: 1:1-5:2)
//	└─ Fn eq (span: 1:1-5:2)
//	   ├─ Param a: f32
//	   └─ Block (span: 1:24-5:2)
func FormatASTPretty(w io.Writer, b *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	file := b.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("ast file %d not found", fileID)
	}
	tb := treeBuilder{b: b, fs: fs}
	header := "File"
	if fs != nil {
		if f := fs.Get(file.Span.File); f != nil {
			header = f.FormatPath("auto", fs.BaseDir())
		}
	}
	root := &treeNode{label: fmt.Sprintf("%s (span: %s)", header, tb.span(file.Span))}
	for _, a := range file.Attrs {
		root.add(formatAttr(a))
	}
	for _, id := range file.Items {
		root.children = append(root.children, tb.item(id))
	}

	var sb strings.Builder
	sb.WriteString(root.label)
	sb.WriteByte('\n')
	writeTree(&sb, root.children, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTree(sb *strings.Builder, nodes []*treeNode, prefix string) {
	for i, n := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix + branch + n.label + "\n")
		writeTree(sb, n.children, prefix+next)
	}
}

func formatAttr(a ast.Attr) string {
	open := "#["
	if a.Inner {
		open = "#!["
	}
	paths := make([]string, len(a.Args))
	for i, arg := range a.Args {
		paths[i] = arg.Path
	}
	if a.Opaque {
		return "Attr " + open + a.Name + "(..)]"
	}
	if len(paths) == 0 {
		return "Attr " + open + a.Name + "]"
	}
	return "Attr " + open + a.Name + "(" + strings.Join(paths, ", ") + ")]"
}

type treeBuilder struct {
	b  *ast.Builder
	fs *source.FileSet
}

func (tb treeBuilder) span(sp source.Span) string {
	if tb.fs != nil && tb.fs.Get(sp.File) != nil {
		start, end := tb.fs.Resolve(sp)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", sp.Start, sp.End)
}

func (tb treeBuilder) item(id ast.ItemID) *treeNode {
	fn, ok := tb.b.Items.Fn(id)
	if !ok {
		return &treeNode{label: "Item <nil>"}
	}
	label := "Fn " + tb.b.Name(fn.Name)
	if fn.Pub {
		label = "pub " + label
	}
	if fn.Result.Text != "" {
		label += " -> " + fn.Result.Text
	}
	node := &treeNode{label: fmt.Sprintf("%s (span: %s)", label, tb.span(tb.b.Items.Get(id).Span))}
	for _, a := range fn.Attrs {
		node.add(formatAttr(a))
	}
	for _, p := range fn.Params {
		node.add(fmt.Sprintf("Param %s: %s", tb.b.Name(p.Name), p.Type.Text))
	}
	if fn.Body.IsValid() {
		node.children = append(node.children, tb.expr(fn.Body))
	}
	return node
}

func (tb treeBuilder) stmt(id ast.StmtID) *treeNode {
	st := tb.b.Stmts.Get(id)
	if st == nil {
		return &treeNode{label: "Stmt <nil>"}
	}
	switch st.Kind {
	case ast.StmtLet:
		let, _ := tb.b.Stmts.Let(id)
		label := "Let "
		if let.Mut {
			label += "mut "
		}
		label += tb.b.Name(let.Name)
		if let.Type.Text != "" {
			label += ": " + let.Type.Text
		}
		node := &treeNode{label: fmt.Sprintf("%s (span: %s)", label, tb.span(st.Span))}
		if let.Value.IsValid() {
			node.children = append(node.children, tb.expr(let.Value))
		}
		return node
	case ast.StmtExpr:
		es, _ := tb.b.Stmts.Expr(id)
		label := "ExprStmt"
		if es.Semi {
			label += ";"
		}
		return &treeNode{label: label, children: []*treeNode{tb.expr(es.Expr)}}
	case ast.StmtItem:
		it, _ := tb.b.Stmts.Item(id)
		return tb.item(it.Item)
	}
	return &treeNode{label: "Stmt ?"}
}

var unaryOpText = map[ast.ExprUnaryOp]string{
	ast.ExprUnaryNeg:    "-",
	ast.ExprUnaryNot:    "!",
	ast.ExprUnaryRef:    "&",
	ast.ExprUnaryRefMut: "&mut",
	ast.ExprUnaryDeref:  "*",
	ast.ExprUnaryTry:    "?",
}

func (tb treeBuilder) exprs(ids []ast.ExprID) []*treeNode {
	out := make([]*treeNode, 0, len(ids))
	for _, id := range ids {
		out = append(out, tb.expr(id))
	}
	return out
}

func (tb treeBuilder) expr(id ast.ExprID) *treeNode {
	e := tb.b.Exprs.Get(id)
	if e == nil {
		return &treeNode{label: "Expr <nil>"}
	}
	node := &treeNode{}
	detail := ""
	xs := tb.b.Exprs
	switch e.Kind {
	case ast.ExprPath:
		segs, _ := tb.b.PathSegments(id)
		detail = strings.Join(segs, "::")
	case ast.ExprLit:
		lit, _ := xs.Literal(id)
		detail = tb.b.Name(lit.Value)
	case ast.ExprBinary:
		bin, _ := xs.Binary(id)
		detail = bin.Op.String()
		node.children = tb.exprs([]ast.ExprID{bin.Left, bin.Right})
	case ast.ExprUnary:
		un, _ := xs.Unary(id)
		detail = unaryOpText[un.Op]
		node.children = tb.exprs([]ast.ExprID{un.Operand})
	case ast.ExprGroup:
		g, _ := xs.Group(id)
		node.children = tb.exprs([]ast.ExprID{g.Inner})
	case ast.ExprCall:
		c, _ := xs.Call(id)
		node.children = tb.exprs(append([]ast.ExprID{c.Target}, c.Args...))
	case ast.ExprMethodCall:
		mc, _ := xs.MethodCall(id)
		detail = "." + tb.b.Name(mc.Method)
		node.children = tb.exprs(append([]ast.ExprID{mc.Receiver}, mc.Args...))
	case ast.ExprField:
		f, _ := xs.Field(id)
		detail = "." + tb.b.Name(f.Field)
		node.children = tb.exprs([]ast.ExprID{f.Target})
	case ast.ExprIndex:
		ix, _ := xs.Index(id)
		node.children = tb.exprs([]ast.ExprID{ix.Target, ix.Index})
	case ast.ExprCast:
		c, _ := xs.Cast(id)
		detail = "as " + c.Type.Text
		node.children = tb.exprs([]ast.ExprID{c.Value})
	case ast.ExprMacro:
		m, _ := xs.Macro(id)
		detail = tb.b.Name(m.Name) + "!"
		node.children = tb.exprs(m.Args)
	case ast.ExprBlock:
		blk, _ := xs.Block(id)
		for _, s := range blk.Stmts {
			node.children = append(node.children, tb.stmt(s))
		}
		if blk.Tail.IsValid() {
			node.add("Tail", tb.expr(blk.Tail))
		}
	case ast.ExprIf:
		ifx, _ := xs.If(id)
		node.add("Cond", tb.expr(ifx.Cond))
		node.add("Then", tb.expr(ifx.Then))
		if ifx.Else.IsValid() {
			node.add("Else", tb.expr(ifx.Else))
		}
	case ast.ExprReturn:
		r, _ := xs.Return(id)
		if r.Value.IsValid() {
			node.children = tb.exprs([]ast.ExprID{r.Value})
		}
	case ast.ExprTuple:
		t, _ := xs.Tuple(id)
		node.children = tb.exprs(t.Elements)
	}
	node.label = e.Kind.String()
	if detail != "" {
		node.label += " " + detail
	}
	node.label += " (span: " + tb.span(e.Span) + ")"
	return node
}
