package ast

import "github.com/circuitlang/circuitc/internal/srcloc"

// Builder accumulates Tokens for one Expression in postfix order. Tests and
// any future parser call Push*/Op in the exact sequence the operand-stack
// evaluator expects to consume them (spec §9).
type Builder struct {
	tokens []Token
	loc    srcloc.Location
}

// NewBuilder starts a builder stamping every emitted token with loc.
func NewBuilder(loc srcloc.Location) *Builder {
	return &Builder{loc: loc}
}

func (b *Builder) Build() Expression { return Expression{Tokens: append([]Token{}, b.tokens...)} }

func (b *Builder) PushBool(v bool) *Builder {
	b.tokens = append(b.tokens, Token{Kind: TokenPush, Location: b.loc, LiteralBool: v})
	return b
}

// PushInt appends a literal integer/field token. The decimal literal and
// the signed/bitLength/isField kind are copied onto the token unchanged; a
// bitLength of 0 leaves the width for the evaluator to infer.
func (b *Builder) PushInt(decimal string, signed bool, bitLength int, isField bool) *Builder {
	b.tokens = append(b.tokens, Token{
		Kind: TokenPush, Location: b.loc, LiteralInt: decimal,
		Signed: signed, BitLength: bitLength, IsField: isField,
	})
	return b
}

func (b *Builder) Load(identifier string) *Builder {
	b.tokens = append(b.tokens, Token{Kind: TokenLoad, Location: b.loc, Identifier: identifier})
	return b
}

func (b *Builder) Op(op Operator) *Builder {
	b.tokens = append(b.tokens, Token{Kind: TokenOperator, Location: b.loc, Operator: op})
	return b
}

// Member appends a `.` operator together with its field-name/tuple-index
// operand (spec §4.3: `.` is binary but its right operand is a bare
// identifier or integer literal, never a sub-expression).
func (b *Builder) Member(name string) *Builder {
	b.tokens = append(b.tokens, Token{Kind: TokenOperator, Location: b.loc, Operator: OpDot, Member: name})
	return b
}

func (b *Builder) Type(name string) *Builder {
	b.tokens = append(b.tokens, Token{Kind: TokenType, Location: b.loc, TypeName: name})
	return b
}

// ArrayLiteral appends an OpArrayLiteral operator consuming the n elements
// most recently pushed, in push order.
func (b *Builder) ArrayLiteral(n int) *Builder {
	b.tokens = append(b.tokens, Token{Kind: TokenOperator, Location: b.loc, Operator: OpArrayLiteral, Arity: n})
	return b
}

// TupleLiteral appends an OpTupleLiteral operator consuming the n elements
// most recently pushed, in push order.
func (b *Builder) TupleLiteral(n int) *Builder {
	b.tokens = append(b.tokens, Token{Kind: TokenOperator, Location: b.loc, Operator: OpTupleLiteral, Arity: n})
	return b
}

// StructLiteral appends an OpStructLiteral operator consuming
// len(fieldNames) elements most recently pushed, in push order, naming the
// struct typeName and pairing each popped value with its field name.
func (b *Builder) StructLiteral(typeName string, fieldNames []string) *Builder {
	b.tokens = append(b.tokens, Token{
		Kind: TokenOperator, Location: b.loc, Operator: OpStructLiteral,
		Arity: len(fieldNames), StructName: typeName, FieldNames: append([]string{}, fieldNames...),
	})
	return b
}

func (b *Builder) Path(segment string) *Builder {
	b.tokens = append(b.tokens, Token{Kind: TokenPath, Location: b.loc, Identifier: segment})
	return b
}
