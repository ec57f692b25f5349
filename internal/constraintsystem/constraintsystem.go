// Package constraintsystem is the facade component (spec §3.7, §4.6,
// component G) both back ends drive: allocate a value as an input,
// witness, or constant; enter/leave a namespace; emit one gadget per
// operator. Two implementations are provided — TestSystem, an in-memory
// recorder adequate to drive the interpreter and its tests, and IRSystem,
// which lowers every gadget to a textual LLVM IR module for the
// transpiler.
//
// Grounded on spec.md §4.6/§6 naming discipline and
// original_source/zinc-vm/src/gadgets/constrained/mod.rs's Constrained<T>
// (a value paired with the variable that constrains it), mirrored here by
// Allocation. The two-implementation split mirrors the teacher's own
// dual-mode execution (internal/vm executing bytecode directly vs.
// internal/compiler/llvm lowering it to a different target) even though no
// single teacher file does both; see internal/compiler for the closest
// teacher analogue of an alternate lowering target.
package constraintsystem

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/circuitlang/circuitc/internal/cerrors"
	"github.com/circuitlang/circuitc/internal/srcloc"
	"github.com/circuitlang/circuitc/internal/value"
)

// Var names one allocated constraint-system variable within the current
// namespace path.
type Var struct {
	ID        int
	Namespace string
}

func (v Var) String() string { return fmt.Sprintf("%s/v%d", v.Namespace, v.ID) }

// Allocation pairs an allocated Var with the value it is currently
// constrained to equal, mirroring original_source's Constrained<T>.
type Allocation struct {
	Var   Var
	Value value.Value
}

// Role distinguishes how a value entered the constraint system
// (spec §3.3: input / witness / constant).
type Role int

const (
	RoleInput Role = iota
	RoleWitness
	RoleConstant
	RoleBoolean
	RoleIntermediate
)

// System is the facade every back end drives. Namespace returns a function
// that leaves the namespace when called, so callers write
// `defer sys.Namespace("loop_0")()`.
type System interface {
	Namespace(name string) func()
	AllocateInput(name string, v value.Value) (Allocation, *cerrors.Error)
	AllocateWitness(name string, v value.Value) (Allocation, *cerrors.Error)
	AllocateConstant(name string, v value.Value) (Allocation, *cerrors.Error)
	AllocateBoolean(name string, b bool) (Allocation, *cerrors.Error)

	Add(a, b Allocation) (Allocation, *cerrors.Error)
	Sub(a, b Allocation) (Allocation, *cerrors.Error)
	Mul(a, b Allocation) (Allocation, *cerrors.Error)
	Div(a, b Allocation) (Allocation, *cerrors.Error)
	Rem(a, b Allocation) (Allocation, *cerrors.Error)
	Neg(a Allocation) (Allocation, *cerrors.Error)
	Not(a Allocation) (Allocation, *cerrors.Error)
	And(a, b Allocation) (Allocation, *cerrors.Error)
	Or(a, b Allocation) (Allocation, *cerrors.Error)
	Xor(a, b Allocation) (Allocation, *cerrors.Error)
	Eq(a, b Allocation) (Allocation, *cerrors.Error)
	Lt(a, b Allocation) (Allocation, *cerrors.Error)
	AssertEqual(a, b Allocation) *cerrors.Error

	// RunID identifies this system instance for log correlation
	// (spec §5: every evaluation run is independently traceable).
	RunID() uuid.UUID
}

func namespaceName(path []string) string {
	s := ""
	for i, p := range path {
		if i > 0 {
			s += "."
		}
		s += p
	}
	return s
}

// zeroLoc documents that constraint-system gadgets never see source
// Location; it is the evaluator's job to stamp one onto any returned
// *cerrors.Error via cerrors.Error.WithLocation.
func zeroLoc() srcloc.Location { return srcloc.Location{} }
