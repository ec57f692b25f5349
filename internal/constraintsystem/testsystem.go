package constraintsystem

import (
	"github.com/google/uuid"

	"github.com/circuitlang/circuitc/internal/bignum"
	"github.com/circuitlang/circuitc/internal/cerrors"
	"github.com/circuitlang/circuitc/internal/types"
	"github.com/circuitlang/circuitc/internal/value"
)

// Constraint is one recorded gadget application, kept only for tests and
// debug dumps — TestSystem never checks satisfiability, it trusts the
// operator implementations in internal/bignum the same way the
// interpreter back end does (spec §4.6: the interpreter does not prove).
type Constraint struct {
	Op        string
	Namespace string
	Inputs    []Var
	Output    Var
}

// TestSystem is an in-memory System sufficient to drive the interpreter
// and its own unit tests: every gadget allocates a fresh Var and records a
// Constraint, and arithmetic gadgets compute their output eagerly via
// internal/bignum rather than emitting a real R1CS row.
type TestSystem struct {
	runID       uuid.UUID
	nextVar     int
	namespace   []string
	Constraints []Constraint
	Allocations map[Var]Allocation
}

// NewTestSystem constructs an empty in-memory constraint system.
func NewTestSystem() *TestSystem {
	return &TestSystem{runID: uuid.New(), Allocations: map[Var]Allocation{}}
}

func (s *TestSystem) RunID() uuid.UUID { return s.runID }

func (s *TestSystem) Namespace(name string) func() {
	s.namespace = append(s.namespace, name)
	return func() {
		if len(s.namespace) > 0 {
			s.namespace = s.namespace[:len(s.namespace)-1]
		}
	}
}

func (s *TestSystem) alloc(v value.Value) Var {
	id := s.nextVar
	s.nextVar++
	va := Var{ID: id, Namespace: namespaceName(s.namespace)}
	s.Allocations[va] = Allocation{Var: va, Value: v}
	return va
}

func (s *TestSystem) AllocateInput(name string, v value.Value) (Allocation, *cerrors.Error) {
	return s.record("input:"+name, nil, v), nil
}

func (s *TestSystem) AllocateWitness(name string, v value.Value) (Allocation, *cerrors.Error) {
	return s.record("witness:"+name, nil, v), nil
}

func (s *TestSystem) AllocateConstant(name string, v value.Value) (Allocation, *cerrors.Error) {
	return s.record("constant:"+name, nil, v), nil
}

func (s *TestSystem) AllocateBoolean(name string, b bool) (Allocation, *cerrors.Error) {
	return s.record("boolean:"+name, nil, value.Bool(b)), nil
}

func (s *TestSystem) record(op string, inputs []Var, v value.Value) Allocation {
	out := s.alloc(v)
	s.Constraints = append(s.Constraints, Constraint{
		Op: op, Namespace: namespaceName(s.namespace), Inputs: inputs, Output: out,
	})
	return s.Allocations[out]
}

func (s *TestSystem) binaryIntGadget(op string, a, b Allocation, f func(bignum.Integer, bignum.Integer) (bignum.Integer, *cerrors.Error)) (Allocation, *cerrors.Error) {
	if a.Value.Type.Tag != types.TagInt || b.Value.Type.Tag != types.TagInt {
		return Allocation{}, cerrors.New(cerrors.KindExpectedInteger, zeroLoc(),
			op+" gadget requires two integer allocations", nil)
	}
	result, err := f(a.Value.Int, b.Value.Int)
	if err != nil {
		return Allocation{}, err
	}
	return s.record(op, []Var{a.Var, b.Var}, value.Integer(result)), nil
}

func (s *TestSystem) Add(a, b Allocation) (Allocation, *cerrors.Error) { return s.binaryIntGadget("add", a, b, bignum.Add) }
func (s *TestSystem) Sub(a, b Allocation) (Allocation, *cerrors.Error) { return s.binaryIntGadget("sub", a, b, bignum.Sub) }
func (s *TestSystem) Mul(a, b Allocation) (Allocation, *cerrors.Error) { return s.binaryIntGadget("mul", a, b, bignum.Mul) }
func (s *TestSystem) Div(a, b Allocation) (Allocation, *cerrors.Error) { return s.binaryIntGadget("div", a, b, bignum.Div) }
func (s *TestSystem) Rem(a, b Allocation) (Allocation, *cerrors.Error) { return s.binaryIntGadget("rem", a, b, bignum.Mod) }

func (s *TestSystem) Neg(a Allocation) (Allocation, *cerrors.Error) {
	if a.Value.Type.Tag != types.TagInt {
		return Allocation{}, cerrors.New(cerrors.KindExpectedInteger, zeroLoc(), "neg gadget requires an integer allocation", nil)
	}
	result, err := bignum.Neg(a.Value.Int)
	if err != nil {
		return Allocation{}, err
	}
	return s.record("neg", []Var{a.Var}, value.Integer(result)), nil
}

func (s *TestSystem) Not(a Allocation) (Allocation, *cerrors.Error) {
	if a.Value.Type.Tag == types.TagBool {
		return s.record("not", []Var{a.Var}, value.Bool(!a.Value.Bool)), nil
	}
	if a.Value.Type.Tag != types.TagInt {
		return Allocation{}, cerrors.New(cerrors.KindExpectedInteger, zeroLoc(), "not gadget requires a boolean or integer allocation", nil)
	}
	result, err := bignum.Not(a.Value.Int)
	if err != nil {
		return Allocation{}, err
	}
	return s.record("not", []Var{a.Var}, value.Integer(result)), nil
}

func (s *TestSystem) boolGadget(op string, a, b Allocation, f func(bool, bool) bool) (Allocation, *cerrors.Error) {
	if a.Value.Type.Tag != types.TagBool || b.Value.Type.Tag != types.TagBool {
		return Allocation{}, cerrors.New(cerrors.KindExpectedBoolean, zeroLoc(), op+" gadget requires two boolean allocations", nil)
	}
	return s.record(op, []Var{a.Var, b.Var}, value.Bool(f(a.Value.Bool, b.Value.Bool))), nil
}

func (s *TestSystem) And(a, b Allocation) (Allocation, *cerrors.Error) {
	return s.boolGadget("and", a, b, func(x, y bool) bool { return x && y })
}
func (s *TestSystem) Or(a, b Allocation) (Allocation, *cerrors.Error) {
	return s.boolGadget("or", a, b, func(x, y bool) bool { return x || y })
}
func (s *TestSystem) Xor(a, b Allocation) (Allocation, *cerrors.Error) {
	return s.boolGadget("xor", a, b, func(x, y bool) bool { return x != y })
}

func (s *TestSystem) Eq(a, b Allocation) (Allocation, *cerrors.Error) {
	if !types.Equal(a.Value.Type, b.Value.Type, nil) {
		return Allocation{}, cerrors.New(cerrors.KindTypesMismatch, zeroLoc(), "eq gadget requires matching operand types", nil)
	}
	return s.record("eq", []Var{a.Var, b.Var}, value.Bool(value.Equal(a.Value, b.Value))), nil
}

func (s *TestSystem) Lt(a, b Allocation) (Allocation, *cerrors.Error) {
	if a.Value.Type.Tag != types.TagInt || b.Value.Type.Tag != types.TagInt {
		return Allocation{}, cerrors.New(cerrors.KindExpectedInteger, zeroLoc(), "lt gadget requires two integer allocations", nil)
	}
	c, err := bignum.Cmp(a.Value.Int, b.Value.Int)
	if err != nil {
		return Allocation{}, err
	}
	return s.record("lt", []Var{a.Var, b.Var}, value.Bool(c < 0)), nil
}

// AssertEqual records an equality constraint without producing a new
// allocation, failing immediately if the two allocations already disagree
// (TestSystem has no deferred satisfiability check, spec §4.6's
// `require` maps straight onto this).
func (s *TestSystem) AssertEqual(a, b Allocation) *cerrors.Error {
	if !types.Equal(a.Value.Type, b.Value.Type, nil) || !value.Equal(a.Value, b.Value) {
		return cerrors.New(cerrors.KindRequireFailed, zeroLoc(),
			"constraint system assertion failed", map[string]any{
				"first": a.Value.String(), "second": b.Value.String(),
			})
	}
	s.Constraints = append(s.Constraints, Constraint{
		Op: "assert_eq", Namespace: namespaceName(s.namespace), Inputs: []Var{a.Var, b.Var},
	})
	return nil
}
