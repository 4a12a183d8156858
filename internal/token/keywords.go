package token

var keywords = map[string]Kind{
	"fn":     KwFn,
	"let":    KwLet,
	"mut":    KwMut,
	"pub":    KwPub,
	"as":     KwAs,
	"return": KwReturn,
	"if":     KwIf,
	"else":   KwElse,
	"true":   KwTrue,
	"false":  KwFalse,
}

// LookupKeyword reports whether ident is a keyword and returns its kind.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
