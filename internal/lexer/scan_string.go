package lexer

import (
	"epslint/internal/diag"
	"epslint/internal/token"
)

// scanString scans "..." with backslash escapes. Strings may span lines.
// Escapes are not validated here.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '"' {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		}
		if b == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanChar scans 'x' or '\n'. Anything else starting with a quote, such as a
// lifetime, is an unknown character.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	if lx.cursor.Peek() == '\\' {
		lx.cursor.Bump()
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\'' && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
	} else {
		lx.bumpRune()
	}
	if lx.cursor.Eat('\'') {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp)}
	}
	lx.cursor.Reset(start)
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character '''")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
