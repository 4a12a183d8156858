package parser

import (
	"epslint/internal/ast"
	"epslint/internal/diag"
	"epslint/internal/source"
	"epslint/internal/token"
)

// parseFnItem parses fn name(params) [-> Type] { body }. start covers any
// visibility and qualifiers parseItem already consumed.
func (p *Parser) parseFnItem(attrs []ast.Attr, start source.Span, pub bool) (ast.ItemID, bool) {
	fn := ast.FnItem{Attrs: attrs, Pub: pub}

	if _, ok := p.expect(token.KwFn, diag.SynUnexpectedToken, "expected `fn`"); !ok {
		return ast.NoItemID, false
	}
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	fn.Name, fn.NameSpan = name, nameSpan

	if p.at(token.Lt) {
		if _, ok := p.skipGenerics(); !ok {
			return ast.NoItemID, false
		}
	}

	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected `(` after function name")
	if !ok {
		return ast.NoItemID, false
	}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param, ok := p.parseFnParam()
		if !ok {
			return ast.NoItemID, false
		}
		fn.Params = append(fn.Params, param)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expectClose(token.RParen, open.Span); !ok {
		return ast.NoItemID, false
	}

	if p.at(token.Arrow) {
		p.advance()
		if fn.Result, ok = p.parseType(); !ok {
			return ast.NoItemID, false
		}
	}

	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected `{` to start function body, found "+describe(p.lx.Peek()))
		return ast.NoItemID, false
	}
	if fn.Body, ok = p.parseBlockExpr(); !ok {
		return ast.NoItemID, false
	}

	span := start.Cover(p.arenas.Exprs.Get(fn.Body).Span)
	return p.arenas.Items.NewFn(span, fn), true
}

// parseFnParam parses [mut] name: Type, self, &self and &mut self.
func (p *Parser) parseFnParam() (ast.FnParam, bool) {
	start := p.lx.Peek()

	if p.atOr(token.Amp, token.AndAnd) {
		p.advance()
		if p.at(token.KwMut) {
			p.advance()
		}
		self := p.lx.Peek()
		if self.Kind != token.Ident || self.Text != "self" {
			p.err(diag.SynUnexpectedToken, "expected `self` after `&`, found "+describe(self))
			return ast.FnParam{}, false
		}
		p.advance()
		sp := start.Span.Cover(self.Span)
		return ast.FnParam{
			Name: p.arenas.Strings.Intern("self"),
			Type: ast.TypeRef{Span: sp, Text: p.lx.Slice(sp)},
			Span: sp,
		}, true
	}

	if p.at(token.KwMut) {
		p.advance()
	}
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.FnParam{}, false
	}
	if p.arenas.Name(name) == "self" && !p.at(token.Colon) {
		return ast.FnParam{Name: name, Span: start.Span.Cover(nameSpan)}, true
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected `:` after parameter name"); !ok {
		return ast.FnParam{}, false
	}
	typ, ok := p.parseType()
	if !ok {
		return ast.FnParam{}, false
	}
	return ast.FnParam{Name: name, Type: typ, Span: start.Span.Cover(typ.Span)}, true
}
