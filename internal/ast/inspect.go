package ast

// Visitor is called for every expression in pre-order, source order, together
// with the innermost enclosing fn. Returning false skips the children of expr.
type Visitor func(fn ItemID, expr ExprID) bool

// Inspect walks every expression of file.
func Inspect(b *Builder, file FileID, visit Visitor) {
	f := b.Files.Get(file)
	if f == nil {
		return
	}
	w := walker{b: b, visit: visit}
	for _, item := range f.Items {
		w.item(NoItemID, item)
	}
}

// InspectExpr walks root and its subexpressions with fn as the enclosing fn.
func InspectExpr(b *Builder, fn ItemID, root ExprID, visit Visitor) {
	w := walker{b: b, visit: visit}
	w.expr(fn, root)
}

type walker struct {
	b     *Builder
	visit Visitor
	enter func(fn, parent ItemID)
}

func (w *walker) item(parent, id ItemID) {
	fn, ok := w.b.Items.Fn(id)
	if !ok {
		return
	}
	if w.enter != nil {
		w.enter(id, parent)
	}
	w.expr(id, fn.Body)
}

func (w *walker) stmt(fn ItemID, id StmtID) {
	stmts := w.b.Stmts
	switch s := stmts.Get(id); {
	case s == nil:
	case s.Kind == StmtLet:
		let, _ := stmts.Let(id)
		w.expr(fn, let.Value)
	case s.Kind == StmtExpr:
		es, _ := stmts.Expr(id)
		w.expr(fn, es.Expr)
	case s.Kind == StmtItem:
		it, _ := stmts.Item(id)
		w.item(fn, it.Item)
	}
}

func (w *walker) exprs(fn ItemID, ids []ExprID) {
	for _, id := range ids {
		w.expr(fn, id)
	}
}

func (w *walker) expr(fn ItemID, id ExprID) {
	if !id.IsValid() {
		return
	}
	e := w.b.Exprs
	expr := e.Get(id)
	if expr == nil || !w.visit(fn, id) {
		return
	}

	switch expr.Kind {
	case ExprBinary:
		d, _ := e.Binary(id)
		w.expr(fn, d.Left)
		w.expr(fn, d.Right)
	case ExprUnary:
		d, _ := e.Unary(id)
		w.expr(fn, d.Operand)
	case ExprGroup:
		d, _ := e.Group(id)
		w.expr(fn, d.Inner)
	case ExprCall:
		d, _ := e.Call(id)
		w.expr(fn, d.Target)
		w.exprs(fn, d.Args)
	case ExprMethodCall:
		d, _ := e.MethodCall(id)
		w.expr(fn, d.Receiver)
		w.exprs(fn, d.Args)
	case ExprField:
		d, _ := e.Field(id)
		w.expr(fn, d.Target)
	case ExprIndex:
		d, _ := e.Index(id)
		w.expr(fn, d.Target)
		w.expr(fn, d.Index)
	case ExprCast:
		d, _ := e.Cast(id)
		w.expr(fn, d.Value)
	case ExprMacro:
		d, _ := e.Macro(id)
		w.exprs(fn, d.Args)
	case ExprBlock:
		d, _ := e.Block(id)
		for _, st := range d.Stmts {
			w.stmt(fn, st)
		}
		w.expr(fn, d.Tail)
	case ExprIf:
		d, _ := e.If(id)
		w.expr(fn, d.Cond)
		w.expr(fn, d.Then)
		w.expr(fn, d.Else)
	case ExprReturn:
		d, _ := e.Return(id)
		w.expr(fn, d.Value)
	case ExprTuple:
		d, _ := e.Tuple(id)
		w.exprs(fn, d.Elements)
	}
}

// Unparen peels any number of enclosing parentheses.
func (e *Exprs) Unparen(id ExprID) ExprID {
	for {
		g, ok := e.Group(id)
		if !ok {
			return id
		}
		id = g.Inner
	}
}
