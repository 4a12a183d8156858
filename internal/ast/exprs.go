package ast

import (
	"epslint/internal/source"
)

// Exprs manages allocation of expressions. Each kind keeps its payload in its own arena.
type Exprs struct {
	Arena       *Arena[Expr]
	Paths       *Arena[ExprPathData]
	Literals    *Arena[ExprLiteralData]
	Binaries    *Arena[ExprBinaryData]
	Unaries     *Arena[ExprUnaryData]
	Groups      *Arena[ExprGroupData]
	Calls       *Arena[ExprCallData]
	MethodCalls *Arena[ExprMethodCallData]
	Fields      *Arena[ExprFieldData]
	Indices     *Arena[ExprIndexData]
	Casts       *Arena[ExprCastData]
	Macros      *Arena[ExprMacroData]
	Blocks      *Arena[ExprBlockData]
	Ifs         *Arena[ExprIfData]
	Returns     *Arena[ExprReturnData]
	Tuples      *Arena[ExprTupleData]
}

// NewExprs creates the arenas with capHint initial capacity (256 when zero).
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:       NewArena[Expr](capHint),
		Paths:       NewArena[ExprPathData](capHint),
		Literals:    NewArena[ExprLiteralData](capHint),
		Binaries:    NewArena[ExprBinaryData](capHint),
		Unaries:     NewArena[ExprUnaryData](capHint),
		Groups:      NewArena[ExprGroupData](capHint),
		Calls:       NewArena[ExprCallData](capHint),
		MethodCalls: NewArena[ExprMethodCallData](capHint),
		Fields:      NewArena[ExprFieldData](capHint),
		Indices:     NewArena[ExprIndexData](capHint),
		Casts:       NewArena[ExprCastData](capHint),
		Macros:      NewArena[ExprMacroData](capHint),
		Blocks:      NewArena[ExprBlockData](capHint),
		Ifs:         NewArena[ExprIfData](capHint),
		Returns:     NewArena[ExprReturnData](capHint),
		Tuples:      NewArena[ExprTupleData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Kind returns the kind of id and false when id is unknown.
func (e *Exprs) Kind(id ExprID) (ExprKind, bool) {
	expr := e.Get(id)
	if expr == nil {
		return 0, false
	}
	return expr.Kind, true
}

// NewPath creates a path expression.
func (e *Exprs) NewPath(span source.Span, segments []source.StringID) ExprID {
	payload := e.Paths.Allocate(ExprPathData{Segments: append([]source.StringID(nil), segments...)})
	return e.new(ExprPath, span, PayloadID(payload))
}

// Path returns the path data for id, or false when id is not a path expression.
func (e *Exprs) Path(id ExprID) (*ExprPathData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprPath {
		return nil, false
	}
	return e.Paths.Get(uint32(expr.Payload)), true
}

// NewLiteral creates a literal expression.
func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, value source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Kind: kind, Value: value})
	return e.new(ExprLit, span, PayloadID(payload))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns the binary data for id, or false when id is not a binary expression.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewUnary creates an unary expression.
func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

// Unary returns the unary data for id, or false when id is not an unary expression.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewGroup creates a parenthesised expression.
func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	payload := e.Groups.Allocate(ExprGroupData{Inner: inner})
	return e.new(ExprGroup, span, PayloadID(payload))
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprGroup {
		return nil, false
	}
	return e.Groups.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCall(span source.Span, target ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Target: target, Args: append([]ExprID(nil), args...)})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the call data for id, or false when id is not a call expression.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// NewMethodCall creates a method call expression.
func (e *Exprs) NewMethodCall(span source.Span, receiver ExprID, method source.StringID, args []ExprID) ExprID {
	payload := e.MethodCalls.Allocate(ExprMethodCallData{Receiver: receiver, Method: method, Args: append([]ExprID(nil), args...)})
	return e.new(ExprMethodCall, span, PayloadID(payload))
}

// MethodCall returns the method call data for id, or false when id is not a method call expression.
func (e *Exprs) MethodCall(id ExprID) (*ExprMethodCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMethodCall {
		return nil, false
	}
	return e.MethodCalls.Get(uint32(expr.Payload)), true
}

// NewField creates a field access expression.
func (e *Exprs) NewField(span source.Span, target ExprID, field source.StringID) ExprID {
	payload := e.Fields.Allocate(ExprFieldData{Target: target, Field: field})
	return e.new(ExprField, span, PayloadID(payload))
}

func (e *Exprs) Field(id ExprID) (*ExprFieldData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprField {
		return nil, false
	}
	return e.Fields.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Target: target, Index: index})
	return e.new(ExprIndex, span, PayloadID(payload))
}

// Index returns the index data for id, or false when id is not an index expression.
func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(expr.Payload)), true
}

// NewCast creates a cast expression.
func (e *Exprs) NewCast(span source.Span, value ExprID, typ TypeRef) ExprID {
	payload := e.Casts.Allocate(ExprCastData{Value: value, Type: typ})
	return e.new(ExprCast, span, PayloadID(payload))
}

// Cast returns the cast data for id, or false when id is not a cast expression.
func (e *Exprs) Cast(id ExprID) (*ExprCastData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCast {
		return nil, false
	}
	return e.Casts.Get(uint32(expr.Payload)), true
}

// NewMacro creates a macro invocation expression.
func (e *Exprs) NewMacro(span source.Span, name source.StringID, args []ExprID) ExprID {
	payload := e.Macros.Allocate(ExprMacroData{Name: name, Args: append([]ExprID(nil), args...)})
	return e.new(ExprMacro, span, PayloadID(payload))
}

func (e *Exprs) Macro(id ExprID) (*ExprMacroData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMacro {
		return nil, false
	}
	return e.Macros.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBlock(span source.Span, stmts []StmtID, tail ExprID) ExprID {
	payload := e.Blocks.Allocate(ExprBlockData{Stmts: append([]StmtID(nil), stmts...), Tail: tail})
	return e.new(ExprBlock, span, PayloadID(payload))
}

// Block returns the block data for id, or false when id is not a block expression.
func (e *Exprs) Block(id ExprID) (*ExprBlockData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBlock {
		return nil, false
	}
	return e.Blocks.Get(uint32(expr.Payload)), true
}

// NewIf creates an if expression.
func (e *Exprs) NewIf(span source.Span, cond, then, els ExprID) ExprID {
	payload := e.Ifs.Allocate(ExprIfData{Cond: cond, Then: then, Else: els})
	return e.new(ExprIf, span, PayloadID(payload))
}

// If returns the if data for id, or false when id is not an if expression.
func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIf {
		return nil, false
	}
	return e.Ifs.Get(uint32(expr.Payload)), true
}

// NewReturn creates a return expression.
func (e *Exprs) NewReturn(span source.Span, value ExprID) ExprID {
	payload := e.Returns.Allocate(ExprReturnData{Value: value})
	return e.new(ExprReturn, span, PayloadID(payload))
}

func (e *Exprs) Return(id ExprID) (*ExprReturnData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprReturn {
		return nil, false
	}
	return e.Returns.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewTuple(span source.Span, elems []ExprID) ExprID {
	payload := e.Tuples.Allocate(ExprTupleData{Elements: append([]ExprID(nil), elems...)})
	return e.new(ExprTuple, span, PayloadID(payload))
}

// Tuple returns the tuple data for id, or false when id is not a tuple expression.
func (e *Exprs) Tuple(id ExprID) (*ExprTupleData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTuple {
		return nil, false
	}
	return e.Tuples.Get(uint32(expr.Payload)), true
}
