package parser

import (
	"epslint/internal/diag"
	"epslint/internal/fix"
	"epslint/internal/source"
	"epslint/internal/token"
)

// advance consumes the next token and records its span.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagnosticSpan points at the next token, or just past the last one at EOF.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect consumes k or reports code and returns false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	p.report(code, diag.SevError, sp, msg+", found "+describe(p.lx.Peek()), nil)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// expectClose consumes the closing delimiter matching open.
func (p *Parser) expectClose(k token.Kind, open source.Span) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	if p.at(token.EOF) {
		p.report(diag.SynUnclosedDelimiter, diag.SevError, sp, "unclosed delimiter",
			[]diag.Note{{Span: open, Msg: "unclosed delimiter opened here"}})
	} else {
		p.report(diag.SynUnexpectedToken, diag.SevError, sp, "expected `"+k.String()+"`, found "+describe(p.lx.Peek()),
			[]diag.Note{{Span: open, Msg: "to match this delimiter"}})
	}
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// err reports an error at the current token.
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.diagnosticSpan(), msg, nil)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note, fixes ...*diag.Fix) bool {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil || p.opts.Enough() {
		return false
	}
	b := diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg)
	for _, n := range notes {
		b.WithNote(n.Span, n.Msg)
	}
	for _, f := range fixes {
		b.WithFixSuggestion(f)
	}
	b.Emit()
	return true
}

// missingSemicolon reports a missing ';' after sp with a fix inserting it.
func (p *Parser) missingSemicolon(sp source.Span, msg string) {
	at := p.afterSpan(sp)
	p.report(diag.SynExpectSemicolon, diag.SevError, at, msg+", found "+describe(p.lx.Peek()), nil,
		fix.InsertText("insert `;`", at, ";"))
}

// afterSpan is the empty span right after sp, where a missing token belongs.
func (p *Parser) afterSpan(sp source.Span) source.Span {
	return source.Span{File: sp.File, Start: sp.End, End: sp.End}
}
