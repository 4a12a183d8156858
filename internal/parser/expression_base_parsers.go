package parser

import (
	"epslint/internal/ast"
	"epslint/internal/diag"
	"epslint/internal/source"
	"epslint/internal/token"
)

// parsePrimaryExpr parses literals, paths, macros, parenthesised and block-like expressions.
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident, token.Underscore:
		return p.parsePathOrMacro()
	case token.IntLit, token.FloatLit, token.StringLit, token.CharLit, token.KwTrue, token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, literalKind(tok.Kind), p.arenas.Strings.Intern(tok.Text)), true
	case token.LParen:
		return p.parseParenExpr()
	case token.LBrace:
		return p.parseBlockExpr()
	case token.KwIf:
		return p.parseIfExpr()
	case token.KwReturn:
		p.advance()
		value := ast.NoExprID
		if p.exprStart() {
			v, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			value = v
		}
		span := tok.Span
		if value.IsValid() {
			span = span.Cover(p.arenas.Exprs.Get(value).Span)
		}
		return p.arenas.Exprs.NewReturn(span, value), true
	default:
		p.errExpectExpr()
		return ast.NoExprID, false
	}
}

func literalKind(k token.Kind) ast.ExprLitKind {
	switch k {
	case token.FloatLit:
		return ast.ExprLitFloat
	case token.StringLit:
		return ast.ExprLitString
	case token.CharLit:
		return ast.ExprLitChar
	case token.KwTrue:
		return ast.ExprLitTrue
	case token.KwFalse:
		return ast.ExprLitFalse
	default:
		return ast.ExprLitInt
	}
}

// parsePathOrMacro parses a::b::c, skipping turbofish generics, and name!(args).
func (p *Parser) parsePathOrMacro() (ast.ExprID, bool) {
	first := p.advance()
	segments := []source.StringID{p.arenas.Strings.Intern(first.Text)}
	span := first.Span

	for p.at(token.ColonColon) {
		p.advance()
		if p.at(token.Lt) {
			gen, ok := p.skipGenerics()
			if !ok {
				return ast.NoExprID, false
			}
			span = span.Cover(gen)
			continue
		}
		id, sp, ok := p.parseIdent()
		if !ok {
			return ast.NoExprID, false
		}
		segments = append(segments, id)
		span = span.Cover(sp)
	}

	if p.at(token.Bang) && len(segments) == 1 {
		return p.parseMacroArgs(segments[0], span)
	}
	return p.arenas.Exprs.NewPath(span, segments), true
}

var closers = map[token.Kind]token.Kind{
	token.LParen:   token.RParen,
	token.LBracket: token.RBracket,
	token.LBrace:   token.RBrace,
}

// parseMacroArgs parses the delimited argument list after name!.
// Arguments are expressions separated by ',' or ';'.
func (p *Parser) parseMacroArgs(name source.StringID, nameSpan source.Span) (ast.ExprID, bool) {
	p.advance() // '!'
	open := p.lx.Peek()
	closer, ok := closers[open.Kind]
	if !ok {
		p.err(diag.SynUnexpectedToken, "expected one of `(`, `[` or `{` after macro name, found "+describe(open))
		return ast.NoExprID, false
	}
	p.advance()

	var args []ast.ExprID
	for !p.at(closer) && !p.at(token.EOF) {
		arg, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		args = append(args, arg)
		if !p.atOr(token.Comma, token.Semicolon) {
			break
		}
		p.advance()
	}
	end, ok := p.expectClose(closer, open.Span)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewMacro(nameSpan.Cover(end.Span), name, args), true
}

// parseParenExpr parses (), (e), (e,) and (a, b, ...).
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	open := p.advance()
	if p.at(token.RParen) {
		end := p.advance()
		return p.arenas.Exprs.NewTuple(open.Span.Cover(end.Span), nil), true
	}

	first, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if p.at(token.RParen) {
		end := p.advance()
		return p.arenas.Exprs.NewGroup(open.Span.Cover(end.Span), first), true
	}

	elems := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if p.at(token.RParen) {
			break
		}
		e, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, e)
	}
	end, ok := p.expectClose(token.RParen, open.Span)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewTuple(open.Span.Cover(end.Span), elems), true
}

// parseIfExpr parses if cond { } [else if ... | else { }].
func (p *Parser) parseIfExpr() (ast.ExprID, bool) {
	kw := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected `{` after if condition, found "+describe(p.lx.Peek()))
		return ast.NoExprID, false
	}
	then, ok := p.parseBlockExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := kw.Span.Cover(p.arenas.Exprs.Get(then).Span)

	els := ast.NoExprID
	if p.at(token.KwElse) {
		p.advance()
		switch {
		case p.at(token.KwIf):
			els, ok = p.parseIfExpr()
		case p.at(token.LBrace):
			els, ok = p.parseBlockExpr()
		default:
			p.err(diag.SynUnexpectedToken, "expected `if` or `{` after else, found "+describe(p.lx.Peek()))
			ok = false
		}
		if !ok {
			return ast.NoExprID, false
		}
		span = span.Cover(p.arenas.Exprs.Get(els).Span)
	}
	return p.arenas.Exprs.NewIf(span, cond, then, els), true
}

// skipGenerics consumes a balanced <...> list and returns its span.
func (p *Parser) skipGenerics() (source.Span, bool) {
	open := p.advance() // '<'
	depth := 1
	span := open.Span
	for depth > 0 {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			p.report(diag.SynUnclosedDelimiter, diag.SevError, p.diagnosticSpan(), "unclosed generic argument list",
				[]diag.Note{{Span: open.Span, Msg: "opened here"}})
			return span, false
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.Shr:
			depth -= 2
		}
		span = span.Cover(p.advance().Span)
	}
	return span, true
}
