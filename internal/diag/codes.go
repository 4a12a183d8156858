package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Syntax
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectExpression  Code = 2002
	SynExpectSemicolon   Code = 2003
	SynUnclosedDelimiter Code = 2004
	SynBadAttribute      Code = 2005

	// Lints. Each registered lint owns one code in this range.
	LntInfo                    Code = 3000
	LntFloatEqualityWithoutAbs Code = 3001
	LntUnknownLint             Code = 3900
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectExpression:         "Expected expression",
	SynExpectSemicolon:          "Expected semicolon",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynBadAttribute:             "Malformed lint attribute",
	LntInfo:                     "Lint information",
	LntFloatEqualityWithoutAbs:  "Float equality check without abs",
	LntUnknownLint:              "Unknown lint name",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LNT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
