package parser

import (
	"epslint/internal/ast"
	"epslint/internal/diag"
	"epslint/internal/source"
	"epslint/internal/token"
)

// parseType consumes a type and returns it as written. Supported shapes:
// paths with generics, &T, &mut T, *const T, (A, B), [T] and [T; N].
func (p *Parser) parseType() (ast.TypeRef, bool) {
	span, ok := p.skipType()
	if !ok {
		return ast.TypeRef{}, false
	}
	return ast.TypeRef{Span: span, Text: p.lx.Slice(span)}, true
}

func (p *Parser) skipType() (source.Span, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Amp, token.AndAnd:
		p.advance()
		if p.at(token.KwMut) {
			p.advance()
		}
		inner, ok := p.skipType()
		return tok.Span.Cover(inner), ok

	case token.Star:
		p.advance()
		if p.at(token.KwMut) || (p.at(token.Ident) && p.lx.Peek().Text == "const") {
			p.advance()
		}
		inner, ok := p.skipType()
		return tok.Span.Cover(inner), ok

	case token.LParen:
		open := p.advance()
		for !p.at(token.RParen) && !p.at(token.EOF) {
			if _, ok := p.skipType(); !ok {
				return open.Span, false
			}
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		end, ok := p.expectClose(token.RParen, open.Span)
		return open.Span.Cover(end.Span), ok

	case token.LBracket:
		open := p.advance()
		if _, ok := p.skipType(); !ok {
			return open.Span, false
		}
		if p.at(token.Semicolon) {
			p.advance()
			if _, ok := p.parseExpr(); !ok {
				return open.Span, false
			}
		}
		end, ok := p.expectClose(token.RBracket, open.Span)
		return open.Span.Cover(end.Span), ok

	case token.Ident, token.Underscore:
		span := p.advance().Span
		for {
			switch {
			case p.at(token.ColonColon):
				p.advance()
				id := p.lx.Peek()
				if id.Kind != token.Ident {
					p.err(diag.SynUnexpectedToken, "expected identifier in type path, found "+describe(id))
					return span, false
				}
				span = span.Cover(p.advance().Span)
			case p.at(token.Lt):
				gen, ok := p.skipGenerics()
				span = span.Cover(gen)
				if !ok {
					return span, false
				}
			default:
				return span, true
			}
		}

	default:
		p.err(diag.SynUnexpectedToken, "expected type, found "+describe(tok))
		return tok.Span, false
	}
}
