package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	KwFn     // fn
	KwLet    // let
	KwMut    // mut
	KwPub    // pub
	KwAs     // as
	KwReturn // return
	KwIf     // if
	KwElse   // else
	KwTrue   // true
	KwFalse  // false

	// IntLit represents an integer literal, possibly suffixed (1_000u32).
	IntLit
	// FloatLit represents a float literal, possibly suffixed (1e-7f32).
	FloatLit
	// StringLit represents a double-quoted string literal.
	StringLit
	// CharLit represents a single-quoted character literal.
	CharLit

	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Assign     // =
	EqEq       // ==
	Bang       // !
	BangEq     // !=
	Lt         // <
	LtEq       // <=
	Gt         // >
	GtEq       // >=
	Shl        // <<
	Shr        // >>
	Amp        // &
	Pipe       // |
	Caret      // ^
	AndAnd     // &&
	OrOr       // ||
	Question   // ?
	Colon      // :
	ColonColon // ::
	Semicolon  // ;
	Comma      // ,
	Dot        // .
	DotDot     // ..
	Arrow      // ->
	FatArrow   // =>
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]
	Hash       // #
	Underscore // _
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	KwFn:       "fn",
	KwLet:      "let",
	KwMut:      "mut",
	KwPub:      "pub",
	KwAs:       "as",
	KwReturn:   "return",
	KwIf:       "if",
	KwElse:     "else",
	KwTrue:     "true",
	KwFalse:    "false",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	StringLit:  "StringLit",
	CharLit:    "CharLit",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Assign:     "=",
	EqEq:       "==",
	Bang:       "!",
	BangEq:     "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	Shl:        "<<",
	Shr:        ">>",
	Amp:        "&",
	Pipe:       "|",
	Caret:      "^",
	AndAnd:     "&&",
	OrOr:       "||",
	Question:   "?",
	Colon:      ":",
	ColonColon: "::",
	Semicolon:  ";",
	Comma:      ",",
	Dot:        ".",
	DotDot:     "..",
	Arrow:      "->",
	FatArrow:   "=>",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Hash:       "#",
	Underscore: "_",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
