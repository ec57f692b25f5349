package evaluator

import (
	"testing"

	"github.com/circuitlang/circuitc/internal/ast"
	"github.com/circuitlang/circuitc/internal/cerrors"
	"github.com/circuitlang/circuitc/internal/constraintsystem"
	"github.com/circuitlang/circuitc/internal/debugsink"
	"github.com/circuitlang/circuitc/internal/examples"
)

func run(t *testing.T, program ast.Program) (*Evaluator, *cerrors.CollectingSink, *debugsink.Collector, *cerrors.Error) {
	t.Helper()
	sys := constraintsystem.NewTestSystem()
	warn := &cerrors.CollectingSink{}
	dbg := &debugsink.Collector{}
	eval := New(sys, warn, dbg)
	err := eval.ExecuteProgram(program)
	return eval, warn, dbg, err
}

func TestOverflowScenarioFails(t *testing.T) {
	_, _, _, err := run(t, examples.Overflow())
	if err == nil || err.Kind != cerrors.KindOverflow {
		t.Fatalf("want Overflow, got %v", err)
	}
}

func TestDivisionScenarioSucceeds(t *testing.T) {
	_, _, _, err := run(t, examples.Division())
	if err != nil {
		t.Fatalf("Division: %v", err)
	}
}

func TestLoopScenarioDebugsEachIndex(t *testing.T) {
	_, _, dbg, err := run(t, examples.Loop())
	if err != nil {
		t.Fatalf("Loop: %v", err)
	}
	if len(dbg.Lines) != 3 {
		t.Fatalf("debug lines = %d, want 3", len(dbg.Lines))
	}
}

func TestArrayScenarioIndexesCorrectly(t *testing.T) {
	_, _, dbg, err := run(t, examples.Array())
	if err != nil {
		t.Fatalf("Array: %v", err)
	}
	if len(dbg.Lines) != 1 {
		t.Fatalf("debug lines = %d, want 1", len(dbg.Lines))
	}
	if got := dbg.Lines[0]; got == "" {
		t.Fatalf("debug line is empty")
	}
}

func TestShadowingScenarioWarnsAndOuterSurvives(t *testing.T) {
	_, warn, _, err := run(t, examples.Shadowing())
	if err != nil {
		t.Fatalf("Shadowing: %v", err)
	}
	if len(warn.Warnings) != 1 || warn.Warnings[0].Kind != cerrors.KindItemShadowing {
		t.Fatalf("want one ItemShadowing warning, got %v", warn.Warnings)
	}
}

func TestEnumMismatchScenarioFailsOnArithmetic(t *testing.T) {
	_, _, _, err := run(t, examples.EnumMismatch())
	if err == nil || err.Kind != cerrors.KindExpectedInteger {
		t.Fatalf("want ExpectedInteger, got %v", err)
	}
}

func TestArrayLiteralRejectsMixedTypes(t *testing.T) {
	sys := constraintsystem.NewTestSystem()
	eval := New(sys, cerrors.DiscardSink{}, debugsink.Discard{})
	badExpr := ast.NewBuilder(ast.Statement{}.Location).
		PushInt("1", false, 8, false).
		PushBool(true).
		ArrayLiteral(2).
		Build()
	if _, err := eval.EvalExpression(badExpr); err == nil {
		t.Fatal("expected error constructing an array literal from mismatched element types")
	}
}

func TestConditionalScenarioTakesTrueBranch(t *testing.T) {
	_, _, dbg, err := run(t, examples.Conditional())
	if err != nil {
		t.Fatalf("Conditional: %v", err)
	}
	if len(dbg.Lines) != 1 {
		t.Fatalf("debug lines = %d, want 1", len(dbg.Lines))
	}
}

func TestConditionalMismatchScenarioFails(t *testing.T) {
	_, _, _, err := run(t, examples.ConditionalMismatch())
	if err == nil || err.Kind != cerrors.KindConditionalBranchTypeMismatch {
		t.Fatalf("want ConditionalBranchTypeMismatch, got %v", err)
	}
}

// TestConditionalUntakenBranchLeavesNoTrace checks that the untaken
// branch's arithmetic never reaches the live constraint system or debug
// sink — only inferBlockValue's scratch system sees it.
func TestConditionalUntakenBranchLeavesNoTrace(t *testing.T) {
	program := ast.Program{Statements: []ast.Statement{
		{
			Kind: ast.StmtConditional,
			Condition: ast.NewBuilder(ast.Statement{}.Location).PushBool(true).Build(),
			Then: []ast.Statement{
				{Kind: ast.StmtExpression, Expr: ast.NewBuilder(ast.Statement{}.Location).PushInt("1", false, 8, false).Build()},
			},
			Else: []ast.Statement{
				{Kind: ast.StmtExpression, Expr: ast.NewBuilder(ast.Statement{}.Location).
					PushInt("2", false, 8, false).PushInt("3", false, 8, false).Op(ast.OpAdd).Build()},
			},
		},
	}}
	sys := constraintsystem.NewTestSystem()
	eval := New(sys, cerrors.DiscardSink{}, debugsink.Discard{})
	if err := eval.ExecuteProgram(program); err != nil {
		t.Fatalf("ExecuteProgram: %v", err)
	}
	for _, c := range sys.Constraints {
		if c.Op == "add" {
			t.Fatalf("live constraint system recorded an add gadget from the untaken branch: %+v", c)
		}
	}
}

func TestMatchScenarioTakesMatchingArm(t *testing.T) {
	_, _, dbg, err := run(t, examples.Match())
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(dbg.Lines) != 1 {
		t.Fatalf("debug lines = %d, want 1", len(dbg.Lines))
	}
}

func TestCompoundScenarioBuildsTupleAndStruct(t *testing.T) {
	_, _, dbg, err := run(t, examples.Compound())
	if err != nil {
		t.Fatalf("Compound: %v", err)
	}
	if len(dbg.Lines) != 2 {
		t.Fatalf("debug lines = %d, want 2", len(dbg.Lines))
	}
}

func TestBindingScenarioDeclaresInputAndWitness(t *testing.T) {
	_, _, dbg, err := run(t, examples.Binding())
	if err != nil {
		t.Fatalf("Binding: %v", err)
	}
	if len(dbg.Lines) != 1 {
		t.Fatalf("debug lines = %d, want 1", len(dbg.Lines))
	}
}
