// Package interpreter is the first of the two back ends (spec §5,
// component "interpreter"): it drives internal/evaluator against an
// in-memory constraintsystem.TestSystem, executing a program directly and
// returning its collected warnings and final constraint trace without
// emitting any external artifact; debug output goes to the writer the
// caller passes in.
//
// Grounded on original_source/interpreter/src/interpreter.rs /
// original_source/interpreter/src/lib.rs (the "run a program straight
// through" entry point) and the teacher's cmd/sentra "build and run
// in-process" command style.
package interpreter

import (
	"io"

	"github.com/circuitlang/circuitc/internal/ast"
	"github.com/circuitlang/circuitc/internal/cerrors"
	"github.com/circuitlang/circuitc/internal/constraintsystem"
	"github.com/circuitlang/circuitc/internal/debugsink"
	"github.com/circuitlang/circuitc/internal/evaluator"
)

// Result carries everything observable about a completed (or failed) run.
type Result struct {
	Warnings    []cerrors.Warning
	Constraints []constraintsystem.Constraint
	RunID       string
}

// Run executes program against a fresh TestSystem, writing any `debug`
// statement output to debugOut (pass io.Discard to suppress it).
func Run(program ast.Program, debugOut io.Writer) (Result, *cerrors.Error) {
	sys := constraintsystem.NewTestSystem()
	warnings := &cerrors.CollectingSink{}
	eval := evaluator.New(sys, warnings, debugsink.NewWriter(debugOut))

	if err := eval.ExecuteProgram(program); err != nil {
		return Result{Warnings: warnings.Warnings, Constraints: sys.Constraints, RunID: sys.RunID().String()}, err
	}
	return Result{
		Warnings:    warnings.Warnings,
		Constraints: sys.Constraints,
		RunID:       sys.RunID().String(),
	}, nil
}
