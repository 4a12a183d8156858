package ast

import (
	"epslint/internal/source"
)

type StmtKind uint8

const (
	// StmtLet is let [mut] pattern [: Type] [= value];
	StmtLet StmtKind = iota
	// StmtExpr is an expression statement, with or without a trailing semicolon.
	StmtExpr
	// StmtItem is an item nested in a block, such as an inner fn.
	StmtItem
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtLetData struct {
	Name     source.StringID // binding name; "_" for the wildcard pattern
	NameSpan source.Span
	Mut      bool
	Type     TypeRef // zero when omitted
	Value    ExprID  // NoExprID when uninitialised
}

type StmtExprData struct {
	Expr ExprID
	Semi bool
}

type StmtItemData struct {
	Item ItemID
}

type Stmts struct {
	Arena *Arena[Stmt]
	Lets  *Arena[StmtLetData]
	Exprs *Arena[StmtExprData]
	Items *Arena[StmtItemData]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena: NewArena[Stmt](capHint),
		Lets:  NewArena[StmtLetData](capHint),
		Exprs: NewArena[StmtExprData](capHint),
		Items: NewArena[StmtItemData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewLet(span source.Span, data StmtLetData) StmtID {
	return s.new(StmtLet, span, PayloadID(s.Lets.Allocate(data)))
}

func (s *Stmts) Let(id StmtID) (*StmtLetData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID, semi bool) StmtID {
	return s.new(StmtExpr, span, PayloadID(s.Exprs.Allocate(StmtExprData{Expr: expr, Semi: semi})))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewItem(span source.Span, item ItemID) StmtID {
	return s.new(StmtItem, span, PayloadID(s.Items.Allocate(StmtItemData{Item: item})))
}

func (s *Stmts) Item(id StmtID) (*StmtItemData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtItem {
		return nil, false
	}
	return s.Items.Get(uint32(stmt.Payload)), true
}
