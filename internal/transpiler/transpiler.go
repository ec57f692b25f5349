// Package transpiler is the second back end (spec §5, component
// "transpiler"): it drives internal/evaluator against a
// constraintsystem.IRSystem, lowering a program into a textual LLVM IR
// module instead of evaluating it for its own sake.
//
// Grounded on original_source/transpiler/src/lib.rs /
// original_source/transpiler/src/transpiler.rs (a second entry point
// sharing the same interpreter core, lowering to a different output
// target) and the teacher's internal/compiler package, the closest
// analogue of "the same language, a different backend target" in the pack.
package transpiler

import (
	"fmt"
	"io"

	"github.com/circuitlang/circuitc/internal/ast"
	"github.com/circuitlang/circuitc/internal/cerrors"
	"github.com/circuitlang/circuitc/internal/constraintsystem"
	"github.com/circuitlang/circuitc/internal/debugsink"
	"github.com/circuitlang/circuitc/internal/evaluator"
)

// Result carries the lowered module alongside anything observed while
// lowering it.
type Result struct {
	Module   *constraintsystem.IRSystem
	Warnings []cerrors.Warning
}

// Transpile lowers program to an LLVM IR module. `debug` statements still
// execute (so type/bounds errors inside them still surface) but their
// rendered output is discarded — the transpiler's artifact is the module,
// not a debug transcript (spec §5: the transpiler "produces a
// constraint-system artifact, not a running result").
func Transpile(program ast.Program) (Result, *cerrors.Error) {
	sys := constraintsystem.NewIRSystem()
	defer sys.Finish()
	warnings := &cerrors.CollectingSink{}
	eval := evaluator.New(sys, warnings, debugsink.Discard{})

	if err := eval.ExecuteProgram(program); err != nil {
		return Result{Module: sys, Warnings: warnings.Warnings}, err
	}
	return Result{Module: sys, Warnings: warnings.Warnings}, nil
}

// WriteTo renders the lowered module's textual LLVM IR representation.
func (r Result) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprint(w, r.Module.Module.String())
	return int64(n), err
}
