package parser

import (
	"epslint/internal/ast"
	"epslint/internal/diag"
	"epslint/internal/source"
	"epslint/internal/token"
)

// parsePostfixExpr parses a primary expression followed by any number of
// .method(args), .field, (args), [index] and ? suffixes.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.lx.Peek()
		start := p.arenas.Exprs.Get(expr).Span
		switch tok.Kind {
		case token.Dot:
			p.advance()
			expr, ok = p.parseDotSuffix(expr, start)
		case token.LParen:
			var args []ast.ExprID
			var end source.Span
			args, end, ok = p.parseCallArgs()
			if ok {
				expr = p.arenas.Exprs.NewCall(start.Cover(end), expr, args)
			}
		case token.LBracket:
			open := p.advance()
			var index ast.ExprID
			index, ok = p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			var end token.Token
			end, ok = p.expectClose(token.RBracket, open.Span)
			if ok {
				expr = p.arenas.Exprs.NewIndex(start.Cover(end.Span), expr, index)
			}
		case token.Question:
			p.advance()
			expr = p.arenas.Exprs.NewUnary(start.Cover(tok.Span), ast.ExprUnaryTry, expr)
		default:
			return expr, true
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
}

// parseDotSuffix handles what follows '.': a method call, a named field or a tuple index.
func (p *Parser) parseDotSuffix(target ast.ExprID, start source.Span) (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewField(start.Cover(tok.Span), target, p.arenas.Strings.Intern(tok.Text)), true
	case token.Ident:
	default:
		p.err(diag.SynUnexpectedToken, "expected field or method name after `.`, found "+describe(tok))
		return ast.NoExprID, false
	}

	name, nameSpan, _ := p.parseIdent()
	end := nameSpan
	if p.at(token.ColonColon) {
		p.advance()
		if !p.at(token.Lt) {
			p.err(diag.SynUnexpectedToken, "expected `<` after `::`, found "+describe(p.lx.Peek()))
			return ast.NoExprID, false
		}
		if _, ok := p.skipGenerics(); !ok {
			return ast.NoExprID, false
		}
		if !p.at(token.LParen) {
			p.err(diag.SynUnexpectedToken, "expected `(` after method generics, found "+describe(p.lx.Peek()))
			return ast.NoExprID, false
		}
	}
	if !p.at(token.LParen) {
		return p.arenas.Exprs.NewField(start.Cover(end), target, name), true
	}
	args, callEnd, ok := p.parseCallArgs()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewMethodCall(start.Cover(callEnd), target, name, args), true
}

// parseCallArgs parses (a, b, ...) and returns the span of ')'.
func (p *Parser) parseCallArgs() ([]ast.ExprID, source.Span, bool) {
	open := p.advance()
	var args []ast.ExprID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg, ok := p.parseExpr()
		if !ok {
			return nil, source.Span{}, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	end, ok := p.expectClose(token.RParen, open.Span)
	if !ok {
		return nil, source.Span{}, false
	}
	return args, end.Span, true
}
