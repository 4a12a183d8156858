package parser

import (
	"epslint/internal/ast"
	"epslint/internal/token"
)

// parseBlockExpr parses { stmt* tail? }.
func (p *Parser) parseBlockExpr() (ast.ExprID, bool) {
	open := p.advance() // '{'
	var stmts []ast.StmtID
	tail := ast.NoExprID

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if tail.IsValid() {
			// a tail followed by more input was a statement after all
			sp := p.arenas.Exprs.Get(tail).Span
			stmts = append(stmts, p.arenas.Stmts.NewExpr(sp, tail, false))
			tail = ast.NoExprID
		}
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		st, expr, ok := p.parseStmt()
		switch {
		case !ok:
			p.resyncStmt()
		case expr.IsValid():
			tail = expr
		case st.IsValid():
			stmts = append(stmts, st)
		}
	}

	end, ok := p.expectClose(token.RBrace, open.Span)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewBlock(open.Span.Cover(end.Span), stmts, tail), true
}

// localItem reports whether tok starts an item declared inside a block.
// `union` is also a common identifier there, so it is left to expressions.
func localItem(tok token.Token) bool {
	return tok.Kind == token.Ident && skippedItems[tok.Text] && tok.Text != "union"
}

// parseStmt returns either a statement or, for an expression directly
// followed by '}', that expression as the block tail.
func (p *Parser) parseStmt() (ast.StmtID, ast.ExprID, bool) {
	attrs := p.parseAttrs()

	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.KwLet:
		st, ok := p.parseLetStmt()
		return st, ast.NoExprID, ok
	case tok.Kind == token.KwFn || tok.Kind == token.KwPub || localItem(tok):
		item, ok := p.parseItem(outerAttrs(attrs))
		if !ok || item == ast.NoItemID {
			return ast.NoStmtID, ast.NoExprID, ok
		}
		sp := p.arenas.Items.Get(item).Span
		return p.arenas.Stmts.NewItem(sp, item), ast.NoExprID, true
	}

	blockLike := p.atOr(token.KwIf, token.LBrace)
	var expr ast.ExprID
	var ok bool
	if blockLike {
		expr, ok = p.parsePrimaryExpr()
	} else {
		expr, ok = p.parseExpr()
	}
	if !ok {
		return ast.NoStmtID, ast.NoExprID, false
	}
	sp := p.arenas.Exprs.Get(expr).Span

	switch {
	case p.at(token.Semicolon):
		semi := p.advance()
		return p.arenas.Stmts.NewExpr(sp.Cover(semi.Span), expr, true), ast.NoExprID, true
	case p.at(token.RBrace):
		return ast.NoStmtID, expr, true
	case blockLike || p.isBraceMacro(expr):
		return p.arenas.Stmts.NewExpr(sp, expr, false), ast.NoExprID, true
	default:
		p.missingSemicolon(sp, "expected `;`")
		return p.arenas.Stmts.NewExpr(sp, expr, false), ast.NoExprID, true
	}
}

func (p *Parser) isBraceMacro(id ast.ExprID) bool {
	e := p.arenas.Exprs.Get(id)
	if e == nil || e.Kind != ast.ExprMacro {
		return false
	}
	return p.lx.Slice(e.Span)[e.Span.Len()-1] == '}'
}

// parseLetStmt parses let [mut] name [: Type] [= value];
func (p *Parser) parseLetStmt() (ast.StmtID, bool) {
	kw := p.advance()
	data := ast.StmtLetData{}
	if p.at(token.KwMut) {
		p.advance()
		data.Mut = true
	}
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	data.Name, data.NameSpan = name, nameSpan

	if p.at(token.Colon) {
		p.advance()
		if data.Type, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}
	if p.at(token.Assign) {
		p.advance()
		if data.Value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.at(token.Semicolon) {
		p.missingSemicolon(p.lastSpan, "expected `;` after let statement")
		return ast.NoStmtID, false
	}
	semi := p.advance()
	return p.arenas.Stmts.NewLet(kw.Span.Cover(semi.Span), data), true
}

// resyncStmt skips the rest of a broken statement, stopping after ';' or
// before '}' and the next let or fn.
func (p *Parser) resyncStmt() {
	if p.at(token.Semicolon) {
		p.advance()
		return
	}
	if !p.atOr(token.RBrace, token.EOF, token.KwLet, token.KwFn) {
		p.advance()
	}
	p.resyncUntil(token.Semicolon, token.RBrace, token.KwFn, token.KwLet)
	if p.at(token.Semicolon) {
		p.advance()
	}
}
