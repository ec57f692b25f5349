package constraintsystem

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	irtypes "github.com/llir/llvm/ir/types"
	irvalue "github.com/llir/llvm/ir/value"

	"github.com/circuitlang/circuitc/internal/bignum"
	"github.com/circuitlang/circuitc/internal/cerrors"
	"github.com/circuitlang/circuitc/internal/types"
	"github.com/circuitlang/circuitc/internal/value"
)

// fieldWidth is the LLVM integer width used to carry every field element
// and integer operand through the emitted module: wide enough to hold the
// full BN254 scalar field residue without truncation (spec §3.1's 254-bit
// prime needs at least that many bits; 256 keeps it byte-aligned).
const fieldWidth = 256

// IRSystem lowers every gadget to straight-line LLVM IR inside a single
// function per program (spec §4.6/§6: one constraint system per program
// run). Each allocation becomes a named local in the entry block; each
// gadget becomes the corresponding LLVM instruction. This is a structural
// transpilation target for inspection and downstream tooling, not a
// certified arithmetic circuit backend (spec's Non-goals exclude actual
// proof generation).
type IRSystem struct {
	runID     uuid.UUID
	Module    *ir.Module
	Func      *ir.Func
	block     *ir.Block
	namespace []string
	nextVar   int
	irType    *irtypes.IntType
}

// NewIRSystem constructs a fresh module with a single "circuit" function
// taking no parameters; AllocateInput/Witness/Constant introduce named
// locals inside its entry block as the evaluator drives the program.
func NewIRSystem() *IRSystem {
	module := ir.NewModule()
	fn := module.NewFunc("circuit", irtypes.Void)
	entry := fn.NewBlock("entry")
	return &IRSystem{
		runID:  uuid.New(),
		Module: module,
		Func:   fn,
		block:  entry,
		irType: irtypes.NewInt(fieldWidth),
	}
}

func (s *IRSystem) RunID() uuid.UUID { return s.runID }

func (s *IRSystem) Namespace(name string) func() {
	s.namespace = append(s.namespace, name)
	return func() {
		if len(s.namespace) > 0 {
			s.namespace = s.namespace[:len(s.namespace)-1]
		}
	}
}

// Finish terminates the function's entry block if the evaluator driving
// this system hasn't already left it with a terminator, so the module is
// always well-formed when rendered (spec §4.6: the transpiler "produces a
// constraint-system artifact", not a fragment).
func (s *IRSystem) Finish() {
	if s.block.Term == nil {
		s.block.NewRet(nil)
	}
}

func (s *IRSystem) localName(prefix string) string {
	id := s.nextVar
	s.nextVar++
	return fmt.Sprintf("%s.%s.%d", namespaceName(s.namespace), prefix, id)
}

// constantOf lowers an integer/field/bool value to an LLVM constant of
// fieldWidth bits (booleans are lifted to 0/1).
func (s *IRSystem) constantOf(v value.Value) (*constant.Int, *cerrors.Error) {
	switch v.Type.Tag {
	case types.TagInt:
		return constant.NewIntFromString(s.irType, v.Int.Field.String()), nil
	case types.TagBool:
		if v.Bool {
			return constant.NewInt(s.irType, 1), nil
		}
		return constant.NewInt(s.irType, 0), nil
	default:
		return nil, cerrors.New(cerrors.KindExpectedInteger, zeroLoc(),
			"constraint system can only lower integer, field, or boolean values to IR", map[string]any{
				"found": v.Type.String(),
			})
	}
}

func (s *IRSystem) allocLocal(prefix string, v value.Value) (Allocation, *cerrors.Error) {
	c, err := s.constantOf(v)
	if err != nil {
		return Allocation{}, err
	}
	name := s.localName(prefix)
	slot := s.block.NewAlloca(s.irType)
	slot.SetName(name)
	s.block.NewStore(c, slot)
	loaded := s.block.NewLoad(s.irType, slot)
	va := Var{ID: s.nextVar, Namespace: namespaceName(s.namespace)}
	_ = loaded
	return Allocation{Var: va, Value: v}, nil
}

func (s *IRSystem) AllocateInput(name string, v value.Value) (Allocation, *cerrors.Error) {
	return s.allocLocal("input_"+name, v)
}

func (s *IRSystem) AllocateWitness(name string, v value.Value) (Allocation, *cerrors.Error) {
	return s.allocLocal("witness_"+name, v)
}

func (s *IRSystem) AllocateConstant(name string, v value.Value) (Allocation, *cerrors.Error) {
	return s.allocLocal("const_"+name, v)
}

func (s *IRSystem) AllocateBoolean(name string, b bool) (Allocation, *cerrors.Error) {
	return s.allocLocal("bool_"+name, value.Bool(b))
}

func (s *IRSystem) lowerOperands(a, b Allocation) (irvalue.Value, irvalue.Value, *cerrors.Error) {
	av, err := s.constantOf(a.Value)
	if err != nil {
		return nil, nil, err
	}
	bv, err := s.constantOf(b.Value)
	if err != nil {
		return nil, nil, err
	}
	return av, bv, nil
}

func (s *IRSystem) binary(op string, a, b Allocation, emit func(x, y irvalue.Value) irvalue.Value, result value.Value) (Allocation, *cerrors.Error) {
	av, bv, err := s.lowerOperands(a, b)
	if err != nil {
		return Allocation{}, err
	}
	inst := emit(av, bv)
	if named, ok := inst.(irvalue.Named); ok {
		named.SetName(s.localName(op))
	}
	va := Var{ID: s.nextVar, Namespace: namespaceName(s.namespace)}
	s.nextVar++
	return Allocation{Var: va, Value: result}, nil
}

func (s *IRSystem) Add(a, b Allocation) (Allocation, *cerrors.Error) {
	sum, err := addInts(a.Value.Int, b.Value.Int)
	if err != nil {
		return Allocation{}, err
	}
	return s.binary("add", a, b, func(x, y irvalue.Value) irvalue.Value { return s.block.NewAdd(x, y) }, value.Integer(sum))
}

func (s *IRSystem) Sub(a, b Allocation) (Allocation, *cerrors.Error) {
	diff, err := subInts(a.Value.Int, b.Value.Int)
	if err != nil {
		return Allocation{}, err
	}
	return s.binary("sub", a, b, func(x, y irvalue.Value) irvalue.Value { return s.block.NewSub(x, y) }, value.Integer(diff))
}

func (s *IRSystem) Mul(a, b Allocation) (Allocation, *cerrors.Error) {
	prod, err := mulInts(a.Value.Int, b.Value.Int)
	if err != nil {
		return Allocation{}, err
	}
	return s.binary("mul", a, b, func(x, y irvalue.Value) irvalue.Value { return s.block.NewMul(x, y) }, value.Integer(prod))
}

func (s *IRSystem) Div(a, b Allocation) (Allocation, *cerrors.Error) {
	quot, err := divInts(a.Value.Int, b.Value.Int)
	if err != nil {
		return Allocation{}, err
	}
	return s.binary("div", a, b, func(x, y irvalue.Value) irvalue.Value { return s.block.NewUDiv(x, y) }, value.Integer(quot))
}

func (s *IRSystem) Rem(a, b Allocation) (Allocation, *cerrors.Error) {
	rem, err := remInts(a.Value.Int, b.Value.Int)
	if err != nil {
		return Allocation{}, err
	}
	return s.binary("rem", a, b, func(x, y irvalue.Value) irvalue.Value { return s.block.NewURem(x, y) }, value.Integer(rem))
}

func (s *IRSystem) Neg(a Allocation) (Allocation, *cerrors.Error) {
	neg, err := negInt(a.Value.Int)
	if err != nil {
		return Allocation{}, err
	}
	av, cerr := s.constantOf(a.Value)
	if cerr != nil {
		return Allocation{}, cerr
	}
	inst := s.block.NewSub(constant.NewInt(s.irType, 0), av)
	inst.SetName(s.localName("neg"))
	va := Var{ID: s.nextVar, Namespace: namespaceName(s.namespace)}
	s.nextVar++
	return Allocation{Var: va, Value: value.Integer(neg)}, nil
}

func (s *IRSystem) Not(a Allocation) (Allocation, *cerrors.Error) {
	if a.Value.Type.Tag == types.TagBool {
		av, err := s.constantOf(a.Value)
		if err != nil {
			return Allocation{}, err
		}
		allOnes := constant.NewInt(s.irType, 1)
		inst := s.block.NewXor(av, allOnes)
		inst.SetName(s.localName("not"))
		va := Var{ID: s.nextVar, Namespace: namespaceName(s.namespace)}
		s.nextVar++
		return Allocation{Var: va, Value: value.Bool(!a.Value.Bool)}, nil
	}
	notVal, err := notInt(a.Value.Int)
	if err != nil {
		return Allocation{}, err
	}
	av, cerr := s.constantOf(a.Value)
	if cerr != nil {
		return Allocation{}, cerr
	}
	mask := constant.NewIntFromString(s.irType, "-1")
	inst := s.block.NewXor(av, mask)
	inst.SetName(s.localName("not"))
	va := Var{ID: s.nextVar, Namespace: namespaceName(s.namespace)}
	s.nextVar++
	return Allocation{Var: va, Value: value.Integer(notVal)}, nil
}

func (s *IRSystem) And(a, b Allocation) (Allocation, *cerrors.Error) {
	return s.binary("and", a, b, func(x, y irvalue.Value) irvalue.Value { return s.block.NewAnd(x, y) },
		value.Bool(a.Value.Bool && b.Value.Bool))
}

func (s *IRSystem) Or(a, b Allocation) (Allocation, *cerrors.Error) {
	return s.binary("or", a, b, func(x, y irvalue.Value) irvalue.Value { return s.block.NewOr(x, y) },
		value.Bool(a.Value.Bool || b.Value.Bool))
}

func (s *IRSystem) Xor(a, b Allocation) (Allocation, *cerrors.Error) {
	return s.binary("xor", a, b, func(x, y irvalue.Value) irvalue.Value { return s.block.NewXor(x, y) },
		value.Bool(a.Value.Bool != b.Value.Bool))
}

func (s *IRSystem) Eq(a, b Allocation) (Allocation, *cerrors.Error) {
	return s.binary("eq", a, b, func(x, y irvalue.Value) irvalue.Value {
		return s.block.NewICmp(enum.IPredEQ, x, y)
	}, value.Bool(value.Equal(a.Value, b.Value)))
}

func (s *IRSystem) Lt(a, b Allocation) (Allocation, *cerrors.Error) {
	less := a.Value.Int.Semantic().Cmp(b.Value.Int.Semantic()) < 0
	return s.binary("lt", a, b, func(x, y irvalue.Value) irvalue.Value {
		return s.block.NewICmp(enum.IPredULT, x, y)
	}, value.Bool(less))
}

// AssertEqual lowers to a single `icmp eq` named with an assert_eq prefix,
// so the textual IR carries a visible trace of every `require` in the
// source program (spec §4.4 require statement). No call is emitted, and the
// comparison result is not checked here.
func (s *IRSystem) AssertEqual(a, b Allocation) *cerrors.Error {
	av, err := s.constantOf(a.Value)
	if err != nil {
		return err
	}
	bv, err := s.constantOf(b.Value)
	if err != nil {
		return err
	}
	cmp := s.block.NewICmp(enum.IPredEQ, av, bv)
	cmp.SetName(s.localName("assert_eq"))
	return nil
}

// addInts and its siblings re-derive the semantic result through
// internal/bignum so IRSystem, like TestSystem, hands the evaluator a
// concrete Allocation.Value even though the "real" result now also lives
// in the emitted IR.
func addInts(a, b bignum.Integer) (bignum.Integer, *cerrors.Error) { return bignum.Add(a, b) }
func subInts(a, b bignum.Integer) (bignum.Integer, *cerrors.Error) { return bignum.Sub(a, b) }
func mulInts(a, b bignum.Integer) (bignum.Integer, *cerrors.Error) { return bignum.Mul(a, b) }
func divInts(a, b bignum.Integer) (bignum.Integer, *cerrors.Error) { return bignum.Div(a, b) }
func remInts(a, b bignum.Integer) (bignum.Integer, *cerrors.Error) { return bignum.Mod(a, b) }
func negInt(a bignum.Integer) (bignum.Integer, *cerrors.Error)     { return bignum.Neg(a) }
func notInt(a bignum.Integer) (bignum.Integer, *cerrors.Error)     { return bignum.Not(a) }
