package parser

import (
	"epslint/internal/ast"
	"epslint/internal/diag"
	"epslint/internal/token"
)

// parseExpr is the entry point for expressions.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr is the Pratt loop. `as` sits in the table above `* / %`
// and takes a type on its right. Comparisons are non-associative.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	compared := false
	for {
		tok := p.lx.Peek()
		prec, rightAssoc := binaryPrec(tok.Kind)
		if prec < 0 || prec < minPrec {
			break
		}
		if prec == precComparison {
			if compared {
				p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "comparison operators cannot be chained",
					[]diag.Note{{Span: p.arenas.Exprs.Get(left).Span, Msg: "split the comparison with `&&`"}})
				return ast.NoExprID, false
			}
			compared = true
		} else {
			compared = false
		}
		opTok := p.advance()

		if opTok.Kind == token.KwAs {
			typ, ok := p.parseType()
			if !ok {
				return ast.NoExprID, false
			}
			span := p.arenas.Exprs.Get(left).Span.Cover(typ.Span)
			left = p.arenas.Exprs.NewCast(span, left, typ)
			continue
		}

		nextMinPrec := prec + 1
		if rightAssoc {
			nextMinPrec = prec
		}
		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return ast.NoExprID, false
		}

		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, binaryOps[opTok.Kind], left, right)
	}

	return left, true
}

// parseUnaryExpr handles prefix - ! & &mut * and binds tighter than `as`.
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	var op ast.ExprUnaryOp
	switch tok.Kind {
	case token.Minus:
		op = ast.ExprUnaryNeg
	case token.Bang:
		op = ast.ExprUnaryNot
	case token.Star:
		op = ast.ExprUnaryDeref
	case token.Amp:
		op = ast.ExprUnaryRef
	case token.AndAnd:
		// && in prefix position is a double reference
		p.advance()
		inner, ok := p.parseRefOperand(tok)
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(tok.Span.Cover(p.arenas.Exprs.Get(inner).Span), ast.ExprUnaryRef, inner), true
	default:
		return p.parsePostfixExpr()
	}

	p.advance()
	if op == ast.ExprUnaryRef {
		operand, ok := p.parseRefOperand(tok)
		if !ok {
			return ast.NoExprID, false
		}
		return operand, true
	}

	operand, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := tok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
	return p.arenas.Exprs.NewUnary(span, op, operand), true
}

// parseRefOperand parses what follows '&': an optional mut and the operand.
func (p *Parser) parseRefOperand(amp token.Token) (ast.ExprID, bool) {
	op := ast.ExprUnaryRef
	if p.at(token.KwMut) {
		p.advance()
		op = ast.ExprUnaryRefMut
	}
	operand, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := amp.Span.Cover(p.arenas.Exprs.Get(operand).Span)
	return p.arenas.Exprs.NewUnary(span, op, operand), true
}

// exprStart reports whether the next token can begin an expression.
func (p *Parser) exprStart() bool {
	switch p.lx.Peek().Kind {
	case token.Ident, token.IntLit, token.FloatLit, token.StringLit, token.CharLit,
		token.KwTrue, token.KwFalse, token.LParen, token.LBrace, token.LBracket,
		token.KwIf, token.KwReturn, token.Minus, token.Bang, token.Star, token.Amp, token.AndAnd,
		token.Underscore:
		return true
	}
	return false
}

func (p *Parser) errExpectExpr() {
	p.err(diag.SynExpectExpression, "expected expression, found "+describe(p.lx.Peek()))
}
