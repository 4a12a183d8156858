package lexer

import (
	"epslint/internal/diag"
	"epslint/internal/token"
)

var numberSuffixes = map[string]token.Kind{
	"i8": token.IntLit, "i16": token.IntLit, "i32": token.IntLit, "i64": token.IntLit, "i128": token.IntLit, "isize": token.IntLit,
	"u8": token.IntLit, "u16": token.IntLit, "u32": token.IntLit, "u64": token.IntLit, "u128": token.IntLit, "usize": token.IntLit,
	"f32": token.FloatLit, "f64": token.FloatLit,
}

// scanNumber handles 0, 1_000, 0b1010, 0o17, 0xff, 1.5, 1., 1e-7, 2.5E+3 and a
// type suffix (1u8, 1e-7f32). "1.." and "1.foo" leave the dot alone.
// Malformed literals are reported and returned as Invalid tokens.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		if _, b1, ok := lx.cursor.Peek2(); ok {
			var digit func(byte) bool
			switch b1 {
			case 'b', 'B':
				digit = func(b byte) bool { return b == '0' || b == '1' }
			case 'o', 'O':
				digit = func(b byte) bool { return b >= '0' && b <= '7' }
			case 'x', 'X':
				digit = isHex
			}
			if digit != nil {
				lx.cursor.Bump()
				lx.cursor.Bump()
				n := 0
				for b := lx.cursor.Peek(); digit(b) || b == '_'; b = lx.cursor.Peek() {
					if b != '_' {
						n++
					}
					lx.cursor.Bump()
				}
				if n == 0 {
					return lx.badNumber(start, "missing digits after integer base prefix")
				}
				return lx.finishNumber(start, token.IntLit)
			}
		}
	}

	lx.eatDecDigits()

	// fraction: a dot not followed by another dot or an identifier
	if lx.cursor.Peek() == '.' {
		_, b1, ok := lx.cursor.Peek2()
		if !ok || (b1 != '.' && !isIdentStartByte(b1) && b1 < utf8RuneSelf) {
			lx.cursor.Bump()
			kind = token.FloatLit
			lx.eatDecDigits()
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		if lx.exponentFollows() {
			kind = token.FloatLit
			lx.cursor.Bump()
			if s := lx.cursor.Peek(); s == '+' || s == '-' {
				lx.cursor.Bump()
			}
			if !isDec(lx.cursor.Peek()) {
				return lx.badNumber(start, "expected digit after exponent")
			}
			lx.eatDecDigits()
		}
	}

	return lx.finishNumber(start, kind)
}

// exponentFollows looks past 'e' for a digit or a sign plus digit.
func (lx *Lexer) exponentFollows() bool {
	b1 := lx.peekAt(1)
	if b1 == '+' || b1 == '-' {
		return isDec(lx.peekAt(2))
	}
	return isDec(b1)
}

func (lx *Lexer) eatDecDigits() {
	for b := lx.cursor.Peek(); isDec(b) || b == '_'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
}

// finishNumber consumes an optional type suffix and emits the literal.
func (lx *Lexer) finishNumber(start Mark, kind token.Kind) token.Token {
	if isIdentStartByte(lx.cursor.Peek()) {
		sufStart := lx.cursor.Off
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		suffix := string(lx.file.Content[sufStart:lx.cursor.Off])
		sk, ok := numberSuffixes[suffix]
		if !ok {
			return lx.badNumber(start, "invalid suffix `"+suffix+"` for number literal")
		}
		if sk == token.FloatLit {
			kind = token.FloatLit
		} else if kind == token.FloatLit {
			return lx.badNumber(start, "integer suffix `"+suffix+"` on float literal")
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
