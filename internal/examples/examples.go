// Package examples holds a small, named catalog of Go-native programs
// built directly through internal/ast.Builder — there is no lexer or
// parser in this module (Non-goals retained), so `cmd/circuitc` and the
// end-to-end test scripts need some way to name a program without typing
// source text. Six entries mirror spec.md §8's testable scenarios (S1-S6);
// the others (conditional, conditional-mismatch, match, compound, binding)
// exercise further statement and expression forms.
//
// Grounded on zinc-tester/src/ordinar/project.rs's "one source, one
// expected outcome" scenario shape (SPEC_FULL.md §6.1) and the teacher's
// own cmd/sentra "init" template embedding (cmd/sentra/commands/build.go's
// mainContent constant) for the idea of shipping example source in Go
// string/builder form rather than loose files on disk.
package examples

import (
	"github.com/circuitlang/circuitc/internal/ast"
	"github.com/circuitlang/circuitc/internal/srcloc"
)

func loc(line int) srcloc.Location { return srcloc.Location{Line: line, Column: 1} }

// Catalog maps a program name (as named on the circuitc command line) to
// its builder.
var Catalog = map[string]func() ast.Program{
	"overflow":             Overflow,
	"division":             Division,
	"loop":                 Loop,
	"array":                Array,
	"shadowing":            Shadowing,
	"enum-mismatch":        EnumMismatch,
	"conditional":          Conditional,
	"conditional-mismatch": ConditionalMismatch,
	"match":                Match,
	"compound":             Compound,
	"binding":              Binding,
}

// Overflow is spec.md §8 S1: `let x: u8 = 200; let y: u8 = 100; let z = x + y;`
// — expected to fail with an overflow once `z` exceeds u8's range.
func Overflow() ast.Program {
	return ast.Program{Statements: []ast.Statement{
		{
			Kind: ast.StmtLet, Location: loc(1),
			LetName: "x", LetType: "u8",
			LetValue: ast.NewBuilder(loc(1)).PushInt("200", false, 8, false).Build(),
		},
		{
			Kind: ast.StmtLet, Location: loc(2),
			LetName: "y", LetType: "u8",
			LetValue: ast.NewBuilder(loc(2)).PushInt("100", false, 8, false).Build(),
		},
		{
			Kind: ast.StmtLet, Location: loc(3),
			LetName: "z",
			LetValue: ast.NewBuilder(loc(3)).Load("x").Load("y").Op(ast.OpAdd).Build(),
		},
	}}
}

// Division is spec.md §8 S2: `let x = 42; let y = 8; let z = x / y;
// require(z == 5, "floor");` — succeeds, `z` inferred u8.
func Division() ast.Program {
	return ast.Program{Statements: []ast.Statement{
		{
			Kind: ast.StmtLet, Location: loc(1),
			LetName: "x",
			LetValue: ast.NewBuilder(loc(1)).PushInt("42", false, 0, false).Build(),
		},
		{
			Kind: ast.StmtLet, Location: loc(2),
			LetName: "y",
			LetValue: ast.NewBuilder(loc(2)).PushInt("8", false, 0, false).Build(),
		},
		{
			Kind: ast.StmtLet, Location: loc(3),
			LetName: "z",
			LetValue: ast.NewBuilder(loc(3)).Load("x").Load("y").Op(ast.OpDiv).Build(),
		},
		{
			Kind: ast.StmtRequire, Location: loc(4),
			Expr: ast.NewBuilder(loc(4)).Load("z").PushInt("5", false, 0, false).Op(ast.OpEqual).Build(),
		},
	}}
}

// Loop is spec.md §8 S3: `for i in 0..3 { debug(i); }`.
func Loop() ast.Program {
	return ast.Program{Statements: []ast.Statement{
		{
			Kind: ast.StmtFor, Location: loc(1),
			ForVariable:  "i",
			ForStart:     ast.NewBuilder(loc(1)).PushInt("0", false, 8, false).Build(),
			ForEnd:       ast.NewBuilder(loc(1)).PushInt("3", false, 8, false).Build(),
			ForInclusive: false,
			ForBody: []ast.Statement{
				{Kind: ast.StmtDebug, Location: loc(1), Expr: ast.NewBuilder(loc(1)).Load("i").Build()},
			},
		},
	}}
}

// Array is spec.md §8 S4: `let a = [1,2,3]; let b = a[1];` — `b == 2`.
func Array() ast.Program {
	return ast.Program{Statements: []ast.Statement{
		{
			Kind: ast.StmtLet, Location: loc(1),
			LetName: "a",
			LetValue: ast.NewBuilder(loc(1)).
				PushInt("1", false, 8, false).
				PushInt("2", false, 8, false).
				PushInt("3", false, 8, false).
				ArrayLiteral(3).Build(),
		},
		{
			Kind: ast.StmtLet, Location: loc(2),
			LetName: "b",
			LetValue: ast.NewBuilder(loc(2)).Load("a").PushInt("1", false, 8, false).Op(ast.OpIndex).Build(),
		},
		{
			Kind: ast.StmtDebug, Location: loc(3),
			Expr: ast.NewBuilder(loc(3)).Load("b").Build(),
		},
	}}
}

// Shadowing is spec.md §8 S5: `let mut c = 0; { let c = 5; };
// require(c == 0, "outer");` — a shadowing warning fires for the inner
// `c`, and the outer binding is untouched by it.
func Shadowing() ast.Program {
	return ast.Program{Statements: []ast.Statement{
		{
			Kind: ast.StmtLet, Location: loc(1),
			LetName: "c", LetMutable: true,
			LetValue: ast.NewBuilder(loc(1)).PushInt("0", false, 8, false).Build(),
		},
		{
			Kind: ast.StmtBlock, Location: loc(2),
			Body: []ast.Statement{
				{
					Kind: ast.StmtLet, Location: loc(2),
					LetName:  "c",
					LetValue: ast.NewBuilder(loc(2)).PushInt("5", false, 8, false).Build(),
				},
			},
		},
		{
			Kind: ast.StmtRequire, Location: loc(3),
			Expr: ast.NewBuilder(loc(3)).Load("c").PushInt("0", false, 8, false).Op(ast.OpEqual).Build(),
		},
	}}
}

// EnumMismatch is spec.md §8 S6: `enum E { A = 1, B = 2 } let x = E::A + 1;`
// — adding an enum constant to an integer is a type error.
func EnumMismatch() ast.Program {
	return ast.Program{Statements: []ast.Statement{
		{
			Kind: ast.StmtEnumDecl, Location: loc(1),
			DeclName:   "E",
			FieldNames: []string{"A", "B"},
			EnumValues: []int64{1, 2},
		},
		{
			Kind: ast.StmtLet, Location: loc(2),
			LetName: "x",
			LetValue: ast.NewBuilder(loc(2)).
				Path("E").Path("A").Op(ast.OpPath).
				PushInt("1", false, 8, false).
				Op(ast.OpAdd).Build(),
		},
	}}
}

// Conditional exercises spec.md §4.4's `if`/`else` with agreeing branch
// types: `let x = 5; if x == 5 { debug(1); } else { debug(2); }` — the
// condition is true, so `1` prints and both branches evaluate to unit.
func Conditional() ast.Program {
	return ast.Program{Statements: []ast.Statement{
		{
			Kind: ast.StmtLet, Location: loc(1),
			LetName:  "x",
			LetValue: ast.NewBuilder(loc(1)).PushInt("5", false, 8, false).Build(),
		},
		{
			Kind: ast.StmtConditional, Location: loc(2),
			Condition: ast.NewBuilder(loc(2)).Load("x").PushInt("5", false, 8, false).Op(ast.OpEqual).Build(),
			Then: []ast.Statement{
				{Kind: ast.StmtDebug, Location: loc(3), Expr: ast.NewBuilder(loc(3)).PushInt("1", false, 8, false).Build()},
			},
			Else: []ast.Statement{
				{Kind: ast.StmtDebug, Location: loc(4), Expr: ast.NewBuilder(loc(4)).PushInt("2", false, 8, false).Build()},
			},
		},
	}}
}

// ConditionalMismatch exercises the ConditionalBranchTypeMismatch edge
// case of spec.md §4.4: one branch's trailing expression is a u8, the
// other's is a bool.
func ConditionalMismatch() ast.Program {
	return ast.Program{Statements: []ast.Statement{
		{
			Kind: ast.StmtConditional, Location: loc(1),
			Condition: ast.NewBuilder(loc(1)).PushBool(true).Build(),
			Then: []ast.Statement{
				{Kind: ast.StmtExpression, Location: loc(2), Expr: ast.NewBuilder(loc(2)).PushInt("1", false, 8, false).Build()},
			},
			Else: []ast.Statement{
				{Kind: ast.StmtExpression, Location: loc(3), Expr: ast.NewBuilder(loc(3)).PushBool(false).Build()},
			},
		},
	}}
}

// Match exercises spec.md §4.7: scrutinee `x = 2` against two arms, `1`
// and `2` — the second arm matches, so `200` is debugged.
func Match() ast.Program {
	return ast.Program{Statements: []ast.Statement{
		{
			Kind: ast.StmtLet, Location: loc(1),
			LetName:  "x",
			LetValue: ast.NewBuilder(loc(1)).PushInt("2", false, 8, false).Build(),
		},
		{
			Kind: ast.StmtMatch, Location: loc(2),
			MatchScrutinee: ast.NewBuilder(loc(2)).Load("x").Build(),
			MatchArms: []ast.MatchArm{
				{
					Pattern: ast.NewBuilder(loc(2)).PushInt("1", false, 8, false).Build(),
					Body: []ast.Statement{
						{Kind: ast.StmtDebug, Location: loc(2), Expr: ast.NewBuilder(loc(2)).PushInt("100", false, 8, false).Build()},
					},
				},
				{
					Pattern: ast.NewBuilder(loc(2)).PushInt("2", false, 8, false).Build(),
					Body: []ast.Statement{
						{Kind: ast.StmtDebug, Location: loc(2), Expr: ast.NewBuilder(loc(2)).PushInt("200", false, 8, false).Build()},
					},
				},
			},
		},
	}}
}

// Compound exercises the tuple/struct literal operators (spec.md §3.2):
// builds a `(u8, bool)` tuple and a `Point{x,y}` struct, then debugs the
// struct's `y` field and the tuple's index-0 field.
func Compound() ast.Program {
	return ast.Program{Statements: []ast.Statement{
		{
			Kind: ast.StmtStructDecl, Location: loc(1),
			DeclName:   "Point",
			FieldNames: []string{"x", "y"},
			FieldTypes: []string{"u8", "u8"},
		},
		{
			Kind: ast.StmtLet, Location: loc(2),
			LetName: "pair",
			LetValue: ast.NewBuilder(loc(2)).
				PushInt("1", false, 8, false).
				PushBool(true).
				TupleLiteral(2).Build(),
		},
		{
			Kind: ast.StmtLet, Location: loc(3),
			LetName: "point",
			LetValue: ast.NewBuilder(loc(3)).
				PushInt("3", false, 8, false).
				PushInt("4", false, 8, false).
				StructLiteral("Point", []string{"x", "y"}).Build(),
		},
		{
			Kind: ast.StmtDebug, Location: loc(4),
			Expr: ast.NewBuilder(loc(4)).Load("point").Member("y").Build(),
		},
		{
			Kind: ast.StmtDebug, Location: loc(5),
			Expr: ast.NewBuilder(loc(5)).Load("pair").Member("0").Build(),
		},
	}}
}

// Binding exercises spec.md §6's Program-level `inputs`/`witnesses`
// declarations: one public input `pub = 7`, one private witness
// `priv = 3`, and `sum = pub + priv` debugged as `10`.
func Binding() ast.Program {
	return ast.Program{
		Inputs: []ast.Binding{
			{
				Name: "pub", TypeName: "u8", Location: loc(1),
				Value: ast.NewBuilder(loc(1)).PushInt("7", false, 8, false).Build(),
			},
		},
		Witnesses: []ast.Binding{
			{
				Name: "priv", TypeName: "u8", Location: loc(2),
				Value: ast.NewBuilder(loc(2)).PushInt("3", false, 8, false).Build(),
			},
		},
		Statements: []ast.Statement{
			{
				Kind: ast.StmtLet, Location: loc(3),
				LetName:  "sum",
				LetValue: ast.NewBuilder(loc(3)).Load("pub").Load("priv").Op(ast.OpAdd).Build(),
			},
			{
				Kind: ast.StmtDebug, Location: loc(4),
				Expr: ast.NewBuilder(loc(4)).Load("sum").Build(),
			},
		},
	}
}
