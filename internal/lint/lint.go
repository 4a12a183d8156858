package lint

import "epslint/internal/ast"

// ExprPass is a lint that looks at expressions one node at a time.
// CheckExpr is called for every expression in pre-order and must not keep
// state between calls; a pass may run on several files concurrently.
type ExprPass interface {
	Lint() *Lint
	CheckExpr(cx *Context, id ast.ExprID)
}
