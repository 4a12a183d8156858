package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"epslint/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"fn":     token.KwFn,
		"let":    token.KwLet,
		"as":     token.KwAs,
		"return": token.KwReturn,
		"true":   token.KwTrue,
	}
	for lexeme, want := range cases {
		got, ok := token.LookupKeyword(lexeme)
		assert.True(t, ok, lexeme)
		assert.Equal(t, want, got, lexeme)
	}

	for _, s := range []string{"Fn", "LET", "f32", "EPSILON", "abs", "const"} {
		_, ok := token.LookupKeyword(s)
		assert.False(t, ok, s)
	}
}

func TestTokenClasses(t *testing.T) {
	tok := func(k token.Kind) token.Token { return token.Token{Kind: k} }

	for _, k := range []token.Kind{token.IntLit, token.FloatLit, token.StringLit, token.KwFalse} {
		assert.True(t, tok(k).IsLiteral(), k.String())
	}
	assert.False(t, tok(token.Ident).IsLiteral())

	for _, k := range []token.Kind{token.Plus, token.ColonColon, token.Hash, token.Underscore} {
		assert.True(t, tok(k).IsPunctOrOp(), k.String())
	}
	assert.False(t, tok(token.KwAs).IsPunctOrOp())
	assert.True(t, tok(token.KwAs).IsKeyword())
	assert.False(t, tok(token.Ident).IsKeyword())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "::", token.ColonColon.String())
	assert.Equal(t, "as", token.KwAs.String())
	assert.Equal(t, "EOF", token.EOF.String())
}
