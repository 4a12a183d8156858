package ast

import (
	"epslint/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprPath is a possibly qualified name: x, f32::EPSILON, std::f64::consts::PI.
	ExprPath ExprKind = iota
	ExprLit
	ExprBinary
	ExprUnary
	// ExprGroup is a parenthesised expression. Its span includes the parentheses.
	ExprGroup
	ExprCall
	// ExprMethodCall is receiver.method(args).
	ExprMethodCall
	ExprField
	ExprIndex
	ExprCast
	// ExprMacro is a call-like macro invocation name!(args).
	ExprMacro
	ExprBlock
	ExprIf
	ExprReturn
	ExprTuple
)

var exprKindNames = [...]string{
	ExprPath:       "Path",
	ExprLit:        "Lit",
	ExprBinary:     "Binary",
	ExprUnary:      "Unary",
	ExprGroup:      "Group",
	ExprCall:       "Call",
	ExprMethodCall: "MethodCall",
	ExprField:      "Field",
	ExprIndex:      "Index",
	ExprCast:       "Cast",
	ExprMacro:      "Macro",
	ExprBlock:      "Block",
	ExprIf:         "If",
	ExprReturn:     "Return",
	ExprTuple:      "Tuple",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod

	ExprBinaryBitAnd
	ExprBinaryBitOr
	ExprBinaryBitXor
	ExprBinaryShiftLeft
	ExprBinaryShiftRight

	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr

	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq

	ExprBinaryAssign
)

var binaryOpText = [...]string{
	ExprBinaryAdd:        "+",
	ExprBinarySub:        "-",
	ExprBinaryMul:        "*",
	ExprBinaryDiv:        "/",
	ExprBinaryMod:        "%",
	ExprBinaryBitAnd:     "&",
	ExprBinaryBitOr:      "|",
	ExprBinaryBitXor:     "^",
	ExprBinaryShiftLeft:  "<<",
	ExprBinaryShiftRight: ">>",
	ExprBinaryLogicalAnd: "&&",
	ExprBinaryLogicalOr:  "||",
	ExprBinaryEq:         "==",
	ExprBinaryNotEq:      "!=",
	ExprBinaryLess:       "<",
	ExprBinaryLessEq:     "<=",
	ExprBinaryGreater:    ">",
	ExprBinaryGreaterEq:  ">=",
	ExprBinaryAssign:     "=",
}

func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsComparison reports whether op is one of == != < <= > >=.
func (op ExprBinaryOp) IsComparison() bool {
	return op >= ExprBinaryEq && op <= ExprBinaryGreaterEq
}

// ExprUnaryOp enumerates prefix and postfix unary operators.
type ExprUnaryOp uint8

const (
	ExprUnaryNeg    ExprUnaryOp = iota // -x
	ExprUnaryNot                       // !x
	ExprUnaryRef                       // &x
	ExprUnaryRefMut                    // &mut x
	ExprUnaryDeref                     // *x
	ExprUnaryTry                       // x?
)

type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitFloat
	ExprLitString
	ExprLitChar
	ExprLitTrue
	ExprLitFalse
)

type ExprPathData struct {
	Segments []source.StringID
}

type ExprLiteralData struct {
	Kind  ExprLitKind
	Value source.StringID // raw source text
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprGroupData struct {
	Inner ExprID
}

type ExprCallData struct {
	Target ExprID
	Args   []ExprID
}

type ExprMethodCallData struct {
	Receiver ExprID
	Method   source.StringID
	Args     []ExprID
}

type ExprFieldData struct {
	Target ExprID
	Field  source.StringID // name or tuple index text
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

// TypeRef is an unresolved type as written in the source.
type TypeRef struct {
	Span source.Span
	Text string
}

type ExprCastData struct {
	Value ExprID
	Type  TypeRef
}

type ExprMacroData struct {
	Name source.StringID
	Args []ExprID
}

type ExprBlockData struct {
	Stmts []StmtID
	Tail  ExprID // NoExprID when the block ends with a statement
}

type ExprIfData struct {
	Cond ExprID
	Then ExprID // ExprBlock
	Else ExprID // ExprBlock, ExprIf or NoExprID
}

type ExprReturnData struct {
	Value ExprID // NoExprID for a bare return
}

type ExprTupleData struct {
	Elements []ExprID
}
