package parser

import (
	"epslint/internal/ast"
	"epslint/internal/token"
)

// Binary precedence; higher binds tighter.
const (
	precAssignment     = 1 // =
	precLogicalOr      = 2 // ||
	precLogicalAnd     = 3 // &&
	precComparison     = 4 // == != < <= > >=
	precBitwiseOr      = 5 // |
	precBitwiseXor     = 6 // ^
	precBitwiseAnd     = 7 // &
	precShift          = 8 // << >>
	precAdditive       = 9 // + -
	precMultiplicative = 10
	precCast           = 11 // as
)

// binaryPrec returns the precedence of kind and whether it is right-associative.
// -1 means kind is not a binary operator.
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign:
		return precAssignment, true
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false
	case token.Shl, token.Shr:
		return precShift, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	case token.KwAs:
		return precCast, false
	default:
		return -1, false
	}
}

var binaryOps = map[token.Kind]ast.ExprBinaryOp{
	token.Plus:    ast.ExprBinaryAdd,
	token.Minus:   ast.ExprBinarySub,
	token.Star:    ast.ExprBinaryMul,
	token.Slash:   ast.ExprBinaryDiv,
	token.Percent: ast.ExprBinaryMod,
	token.Amp:     ast.ExprBinaryBitAnd,
	token.Pipe:    ast.ExprBinaryBitOr,
	token.Caret:   ast.ExprBinaryBitXor,
	token.Shl:     ast.ExprBinaryShiftLeft,
	token.Shr:     ast.ExprBinaryShiftRight,
	token.AndAnd:  ast.ExprBinaryLogicalAnd,
	token.OrOr:    ast.ExprBinaryLogicalOr,
	token.EqEq:    ast.ExprBinaryEq,
	token.BangEq:  ast.ExprBinaryNotEq,
	token.Lt:      ast.ExprBinaryLess,
	token.LtEq:    ast.ExprBinaryLessEq,
	token.Gt:      ast.ExprBinaryGreater,
	token.GtEq:    ast.ExprBinaryGreaterEq,
	token.Assign:  ast.ExprBinaryAssign,
}
