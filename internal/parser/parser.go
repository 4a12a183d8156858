package parser

import (
	"slices"

	"epslint/internal/ast"
	"epslint/internal/diag"
	"epslint/internal/lexer"
	"epslint/internal/source"
	"epslint/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   ast.FileID
	Errors uint
}

// Parser holds the state for one file.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	lastSpan source.Span // span of the last consumed token
}

// ParseFile parses every item of the lexer's file into arenas.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(lx.EmptySpan()),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()
	return Result{
		File:   p.file,
		Errors: p.opts.CurrentErrors,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems is the top-level loop: inner attributes first, then items until EOF.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	file := p.arenas.Files.Get(p.file)

	for {
		attrs := p.parseAttrs()
		var outer []ast.Attr
		for _, a := range attrs {
			if a.Inner {
				file.Attrs = append(file.Attrs, a)
			} else {
				outer = append(outer, a)
			}
		}
		if p.at(token.EOF) {
			break
		}
		itemID, ok := p.parseItem(outer)
		if !ok {
			p.resyncTop()
			continue
		}
		if itemID != ast.NoItemID {
			p.arenas.PushItem(p.file, itemID)
		}
	}
	file.Span = startSpan.Cover(p.lastSpan)
}

// fnQualifiers may precede `fn`; each of them also starts other items.
var fnQualifiers = map[string]bool{"const": true, "async": true, "unsafe": true, "extern": true}

// skippedItems start items that are consumed without being modelled.
var skippedItems = map[string]bool{
	"struct": true, "enum": true, "union": true, "use": true, "impl": true, "mod": true,
	"trait": true, "type": true, "static": true, "macro_rules": true,
}

// parseItem dispatches on the first tokens of an item. Only fn items are
// modelled; other items are skipped and yield NoItemID with ok set.
func (p *Parser) parseItem(attrs []ast.Attr) (ast.ItemID, bool) {
	start := p.lx.Peek().Span
	pub := false
	if p.at(token.KwPub) {
		p.advance()
		pub = true
		if p.at(token.LParen) {
			p.advance()
			p.skipBalanced(token.RParen)
		}
	}

	qualified := false
	for p.at(token.Ident) && fnQualifiers[p.lx.Peek().Text] {
		kw := p.advance()
		qualified = true
		if kw.Text == "extern" && p.at(token.StringLit) {
			p.advance()
		}
	}

	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.KwFn:
		return p.parseFnItem(attrs, start, pub)
	case qualified || tok.Kind == token.Ident && skippedItems[tok.Text]:
		return ast.NoItemID, p.skipItem()
	case tok.Kind == token.Ident && !pub:
		// top-level macro invocation: name! { ... } or name!(...);
		p.advance()
		if p.at(token.Bang) {
			return ast.NoItemID, p.skipItem()
		}
		p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "expected item, found "+describe(tok), nil)
		p.resyncUntil(token.KwFn, token.KwPub, token.Hash)
		return ast.NoItemID, true
	default:
		p.err(diag.SynUnexpectedToken, "expected item, found "+describe(tok))
		return ast.NoItemID, false
	}
}

// skipItem consumes the rest of an unmodelled item: through a `;` at depth
// zero, or through the `}` that closes its outermost brace plus a `;` right
// after it. Running into EOF inside a delimiter is an error.
func (p *Parser) skipItem() bool {
	var open []source.Span
	for !p.at(token.EOF) {
		tok := p.advance()
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			open = append(open, tok.Span)
		case token.RParen, token.RBracket, token.RBrace:
			if len(open) == 0 {
				p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "unexpected closing delimiter "+describe(tok), nil)
				return true
			}
			open = open[:len(open)-1]
			if len(open) == 0 && tok.Kind == token.RBrace {
				if p.at(token.Semicolon) {
					p.advance()
				}
				return true
			}
		case token.Semicolon:
			if len(open) == 0 {
				return true
			}
		}
	}
	if len(open) > 0 {
		p.report(diag.SynUnclosedDelimiter, diag.SevError, p.diagnosticSpan(), "unclosed delimiter",
			[]diag.Note{{Span: open[len(open)-1], Msg: "unclosed delimiter opened here"}})
	}
	return true
}

// resyncTop skips to the next item starter after a top-level error.
func (p *Parser) resyncTop() {
	p.advance()
	p.resyncUntil(token.KwFn, token.KwPub, token.Hash)
}

func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(kinds...) {
		p.advance()
	}
}

// parseIdent expects an identifier and interns it.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.atOr(token.Ident, token.Underscore) {
		tok := p.advance()
		return p.arenas.Strings.Intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynUnexpectedToken, "expected identifier, found "+describe(p.lx.Peek()))
	return source.NoStringID, source.Span{}, false
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return "identifier `" + tok.Text + "`"
	default:
		return "`" + tok.Text + "`"
	}
}
