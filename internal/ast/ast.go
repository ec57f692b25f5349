// Package ast is a deliberately thin program representation: a flat,
// already-postfix-ordered slice of Tokens per expression, plus a small
// Statement/Program wrapper. There is no lexer or parser here (spec.md
// Non-goals exclude surface syntax); programs are built directly, by a
// future parser or by tests, using the Builder below.
//
// Grounded on the `use parser::{...}` import surface at the top of
// original_source/interpreter/src/interpreter.rs (Expression is consumed
// element-by-element, never walked as a tree) and the teacher's
// internal/bytecode.Chunk flat-encoding style (Code []byte, Debug []DebugInfo
// in lockstep) — mirrored here as parallel Tokens/Locations slices instead
// of a recursive Expr interface, per spec.md §9's explicit mandate that the
// evaluator is "a flat operand-stack machine over the expression's already
// linearized (reverse Polish) form", not a tree-walker.
package ast

import "github.com/circuitlang/circuitc/internal/srcloc"

// TokenKind discriminates one step of a postfix expression.
type TokenKind int

const (
	TokenPush TokenKind = iota // push a literal value (bool/integer/field)
	TokenLoad                  // push the named identifier's current value/place
	TokenOperator
	TokenType    // push a type reference (for `as`, `::`)
	TokenPath    // push a bare path segment (for `::`)
	TokenArgList // argument-list marker; the evaluator rejects it as an unknown token kind
)

// Operator names every binary/unary/ternary-shaped operator of spec §4.3.
// Kept as a string rather than an int enum so trace logs and IR namespace
// names read directly off the token stream without a lookup table.
type Operator string

const (
	OpAssign         Operator = "="
	OpAdd            Operator = "+"
	OpSub            Operator = "-"
	OpMul            Operator = "*"
	OpDiv            Operator = "/"
	OpRem            Operator = "%"
	OpNeg            Operator = "neg"
	OpNot            Operator = "!"
	OpBitNot         Operator = "~"
	OpAnd            Operator = "&&"
	OpOr             Operator = "||"
	OpXor            Operator = "^^"
	OpEqual          Operator = "=="
	OpNotEqual       Operator = "!="
	OpLess           Operator = "<"
	OpLessEqual      Operator = "<="
	OpGreater        Operator = ">"
	OpGreaterEqual   Operator = ">="
	OpCast           Operator = "as"
	OpIndex          Operator = "[]"
	OpDot            Operator = "."
	OpPath           Operator = "::"
	OpRangeExclusive Operator = ".."
	OpRangeInclusive Operator = "..="

	// OpArrayLiteral builds an Array(T,n) value from the top Arity elements
	// of the operand stack, in the order they were pushed. There is no
	// surface syntax to parse (Non-goals retained) but array-valued
	// programs still need a postfix-constructible literal form.
	OpArrayLiteral Operator = "array"

	// OpTupleLiteral builds a Tuple from the top Arity elements of the
	// operand stack, mirroring OpArrayLiteral's arity convention.
	OpTupleLiteral Operator = "tuple"

	// OpStructLiteral builds a named Struct from the top Arity elements of
	// the operand stack; Token.StructName and Token.FieldNames carry the
	// type name and per-position field names (struct fields have names an
	// array/tuple's positional elements don't).
	OpStructLiteral Operator = "struct"
)

// Token is one step of a flattened, postfix-ordered expression.
type Token struct {
	Kind     TokenKind
	Location srcloc.Location

	// TokenPush
	LiteralBool bool
	LiteralInt  string // decimal semantic value; parsed by bignum.FromSemantic against an inferred/declared kind
	IsField     bool
	Signed      bool
	BitLength   int // 0 = infer

	// TokenLoad
	Identifier string

	// TokenOperator
	Operator Operator
	// field/tuple-index operand for Dot, carried as the literal string form
	Member string
	// Arity is OpArrayLiteral/OpTupleLiteral/OpStructLiteral's element count
	Arity int
	// StructName/FieldNames: OpStructLiteral's type name and per-position
	// field names, parallel to the Arity operands popped off the stack.
	StructName string
	FieldNames []string

	// TokenType: a type reference by name (resolved through scope) or an
	// inline primitive spelling (e.g. "u8", "field", "bool").
	TypeName string
}

// Expression is a flat sequence of Tokens in postfix (RPN) order, directly
// consumable by the evaluator's operand stack (spec §4.3/§9).
type Expression struct {
	Tokens []Token
}

// StatementKind discriminates a single program statement (spec §4.4).
type StatementKind int

const (
	StmtLet StatementKind = iota
	StmtRequire
	StmtFor
	StmtTypeDecl
	StmtStructDecl
	StmtEnumDecl
	StmtDebug
	StmtExpression
	StmtBlock
	StmtConditional
	StmtMatch
)

// MatchArm pairs a pattern expression with the statements run when it
// matches the scrutinee (spec §4.7 `match`: "for each branch, evaluates
// the pattern expression and emits equality; the first matching branch's
// right-hand expression becomes the result").
type MatchArm struct {
	Pattern Expression
	Body    []Statement
}

// Statement is one executable unit of a Program.
type Statement struct {
	Kind     StatementKind
	Location srcloc.Location

	// StmtLet
	LetName    string
	LetMutable bool
	LetType    string // "" = infer
	LetValue   Expression

	// StmtRequire / StmtDebug / StmtExpression
	Expr Expression

	// StmtFor
	ForVariable string
	ForStart    Expression
	ForEnd      Expression
	ForInclusive bool
	ForBody     []Statement

	// StmtTypeDecl
	TypeDeclName string
	TypeDeclExpr Expression // an expression evaluating to a TokenType

	// StmtStructDecl / StmtEnumDecl
	DeclName   string
	FieldNames []string
	FieldTypes []string  // StmtStructDecl: declared type name per field
	EnumValues []int64   // StmtEnumDecl: explicit discriminant per variant, parallel to FieldNames

	// StmtBlock
	Body []Statement

	// StmtConditional
	Condition Expression
	Then      []Statement
	Else      []Statement

	// StmtMatch
	MatchScrutinee Expression
	MatchArms      []MatchArm
}

// Binding names one public input or private witness a program declares
// before its statements (spec §6: `Program { inputs: [Binding],
// witnesses: [Binding], statements: [Statement] }`). This toolchain
// evaluates concretely rather than deferring witness assignment to a
// later proving phase (spec's Non-goals exclude actual proof generation),
// so every Binding carries the postfix expression it is bound to for the
// run, alongside its declared type.
type Binding struct {
	Name     string
	TypeName string
	Value    Expression
	Location srcloc.Location
}

// Program is the root unit the evaluator consumes: a flat list of top-level
// statements (spec §3 "a program is a sequence of statements"), plus the
// public inputs and private witnesses it declares (spec §6).
type Program struct {
	Inputs     []Binding
	Witnesses  []Binding
	Statements []Statement
}
