package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epslint/internal/diag"
	"epslint/internal/lexer"
	"epslint/internal/source"
	"epslint/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte(input))
	bag := diag.NewBag(0)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		if t.Kind != token.EOF {
			out = append(out, t.Kind)
		}
	}
	return out
}

func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, bag := makeTestLexer(input)
	toks := lx.All()
	assert.Equal(t, expected, kinds(toks), "input %q", input)
	assert.Zero(t, bag.Len(), "unexpected diagnostics for %q: %v", input, bag.Items())
	return toks
}

func TestEpsilonComparison(t *testing.T) {
	toks := expectTokens(t, "(a - b) < f32::EPSILON",
		token.LParen, token.Ident, token.Minus, token.Ident, token.RParen,
		token.Lt, token.Ident, token.ColonColon, token.Ident)

	assert.Equal(t, "EPSILON", toks[8].Text)
	assert.Equal(t, source.Span{Start: 15, End: 22}, toks[8].Span)
}

func TestMethodCallAndCast(t *testing.T) {
	expectTokens(t, "(a as f64 - b.abs())",
		token.LParen, token.Ident, token.KwAs, token.Ident, token.Minus,
		token.Ident, token.Dot, token.Ident, token.LParen, token.RParen, token.RParen)
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"0", token.IntLit},
		{"1_000", token.IntLit},
		{"0xff", token.IntLit},
		{"0b1010u8", token.IntLit},
		{"7usize", token.IntLit},
		{"1.5", token.FloatLit},
		{"1.", token.FloatLit},
		{"1e-7", token.FloatLit},
		{"2.5E+3", token.FloatLit},
		{"1e-7f32", token.FloatLit},
		{"3f64", token.FloatLit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := expectTokens(t, tt.input, tt.kind)
			assert.Equal(t, tt.input, toks[0].Text)
		})
	}
}

func TestNumberFollowedByDot(t *testing.T) {
	expectTokens(t, "1..2", token.IntLit, token.DotDot, token.IntLit)
	expectTokens(t, "1.max(2)", token.IntLit, token.Dot, token.Ident, token.LParen, token.IntLit, token.RParen)
	expectTokens(t, "1.0.abs()", token.FloatLit, token.Dot, token.Ident, token.LParen, token.RParen)
}

func TestBadNumbers(t *testing.T) {
	for _, input := range []string{"1e", "0x", "12abc", "1.5u8"} {
		t.Run(input, func(t *testing.T) {
			lx, bag := makeTestLexer(input)
			toks := lx.All()
			require.Equal(t, token.Invalid, toks[0].Kind)
			require.Equal(t, 1, bag.Len())
			assert.Equal(t, diag.LexBadNumber, bag.Items()[0].Code)
		})
	}
}

func TestOperators(t *testing.T) {
	expectTokens(t, "+ - * / % = == != < <= > >= << >> & | ^ && || ! ? : :: ; , . .. -> => # _",
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Assign, token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.Shl, token.Shr, token.Amp, token.Pipe, token.Caret, token.AndAnd, token.OrOr,
		token.Bang, token.Question, token.Colon, token.ColonColon, token.Semicolon,
		token.Comma, token.Dot, token.DotDot, token.Arrow, token.FatArrow, token.Hash, token.Underscore)
}

func TestKeywordsAndIdents(t *testing.T) {
	toks := expectTokens(t, "pub fn main() { let mut _x = true; return; }",
		token.KwPub, token.KwFn, token.Ident, token.LParen, token.RParen, token.LBrace,
		token.KwLet, token.KwMut, token.Ident, token.Assign, token.KwTrue, token.Semicolon,
		token.KwReturn, token.Semicolon, token.RBrace)
	assert.Equal(t, "_x", toks[8].Text)
}

func TestStringsAndChars(t *testing.T) {
	toks := expectTokens(t, `"a \"b\"" 'c' '\n'`, token.StringLit, token.CharLit, token.CharLit)
	assert.Equal(t, `"a \"b\""`, toks[0].Text)
}

func TestTrivia(t *testing.T) {
	lx, bag := makeTestLexer("// line\n/* outer /* inner */ */\n  /// doc\nfn")
	tok := lx.Next()
	require.Equal(t, token.KwFn, tok.Kind)
	assert.Zero(t, bag.Len())

	var tk []token.TriviaKind
	for _, tr := range tok.Leading {
		tk = append(tk, tr.Kind)
	}
	assert.Equal(t, []token.TriviaKind{
		token.TriviaLineComment, token.TriviaNewline,
		token.TriviaBlockComment, token.TriviaNewline,
		token.TriviaSpace, token.TriviaDocLine, token.TriviaNewline,
	}, tk)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{"$", diag.LexUnknownChar},
		{"\"open", diag.LexUnterminatedString},
		{"/* open", diag.LexUnterminatedBlockComment},
		{"'a", diag.LexUnknownChar},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, bag := makeTestLexer(tt.input)
			lx.All()
			require.NotZero(t, bag.Len())
			assert.Equal(t, tt.code, bag.Items()[0].Code)
			assert.Equal(t, diag.SevError, bag.Items()[0].Severity)
		})
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	assert.Equal(t, "a", lx.Peek().Text)
	assert.Equal(t, "a", lx.Next().Text)
	assert.Equal(t, "b", lx.Next().Text)
	assert.Equal(t, token.EOF, lx.Next().Kind)
	assert.Equal(t, token.EOF, lx.Next().Kind)
}
