package parser

import (
	"strings"

	"epslint/internal/ast"
	"epslint/internal/diag"
	"epslint/internal/source"
	"epslint/internal/token"
)

// parseAttrs parses a run of #[...] and #![...] attributes.
func (p *Parser) parseAttrs() []ast.Attr {
	var attrs []ast.Attr
	for p.at(token.Hash) {
		attr, ok := p.parseAttr()
		if ok {
			attrs = append(attrs, attr)
		}
	}
	return attrs
}

func outerAttrs(attrs []ast.Attr) []ast.Attr {
	var out []ast.Attr
	for _, a := range attrs {
		if !a.Inner {
			out = append(out, a)
		}
	}
	return out
}

func (p *Parser) parseAttr() (ast.Attr, bool) {
	hash := p.advance()
	attr := ast.Attr{}
	if p.at(token.Bang) {
		p.advance()
		attr.Inner = true
	}
	open, ok := p.expect(token.LBracket, diag.SynUnexpectedToken, "expected `[` after `#`")
	if !ok {
		return attr, false
	}

	name, _, ok := p.parseAttrPath()
	if !ok {
		p.skipTo(token.RBracket)
		if p.at(token.RBracket) {
			p.advance()
		}
		return attr, false
	}
	attr.Name = name

	switch {
	case p.at(token.LParen):
		attr.Args, attr.Opaque = p.parseAttrArgs()
	case p.at(token.Assign):
		attr.Opaque = true
		p.skipTo(token.RBracket)
	}
	end, ok := p.expectClose(token.RBracket, open.Span)
	if !ok {
		return attr, false
	}
	attr.Span = hash.Span.Cover(end.Span)

	if attr.IsLintLevel() && (attr.Opaque || len(attr.Args) == 0) {
		p.report(diag.SynBadAttribute, diag.SevWarning, attr.Span,
			"malformed `"+attr.Name+"` attribute: expected a list of lint names", nil)
	}
	return attr, true
}

// parseAttrPath parses a::b::c and returns it joined with "::".
func (p *Parser) parseAttrPath() (string, source.Span, bool) {
	tok := p.lx.Peek()
	if tok.Kind != token.Ident {
		p.err(diag.SynUnexpectedToken, "expected attribute name, found "+describe(tok))
		return "", tok.Span, false
	}
	p.advance()
	parts := []string{tok.Text}
	span := tok.Span
	for p.at(token.ColonColon) {
		p.advance()
		seg := p.lx.Peek()
		if seg.Kind != token.Ident {
			p.err(diag.SynUnexpectedToken, "expected identifier after `::`, found "+describe(seg))
			return "", span, false
		}
		p.advance()
		parts = append(parts, seg.Text)
		span = span.Cover(seg.Span)
	}
	return strings.Join(parts, "::"), span, true
}

// parseAttrArgs parses (path, path, ...). Any other shape is skipped and
// reported as opaque.
func (p *Parser) parseAttrArgs() ([]ast.AttrArg, bool) {
	p.advance() // '('
	var args []ast.AttrArg
	for !p.at(token.RParen) {
		if !p.at(token.Ident) {
			p.skipBalanced(token.RParen)
			return nil, true
		}
		path, span, ok := p.parseAttrPath()
		if !ok || !p.atOr(token.Comma, token.RParen) {
			p.skipBalanced(token.RParen)
			return nil, true
		}
		args = append(args, ast.AttrArg{Path: path, Span: span})
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.advance() // ')'
	return args, false
}

// skipBalanced consumes tokens up to and including the closer at depth zero.
func (p *Parser) skipBalanced(closer token.Kind) {
	depth := 0
	for !p.at(token.EOF) {
		tok := p.advance()
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth == 0 && tok.Kind == closer {
				return
			}
			depth--
		}
	}
}

// skipTo advances until k is next, without consuming it.
func (p *Parser) skipTo(k token.Kind) {
	for !p.at(k) && !p.at(token.EOF) {
		p.advance()
	}
}
