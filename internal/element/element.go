// Package element implements the operator-dispatch algebra at the heart of
// the expression engine (spec §3.4, §4.3, component E). An Element is
// whatever a single RPN evaluation step produces: a concrete Value, an
// assignable Place, a Type reference (the right side of `as` or `::`), or a
// dotted Path awaiting resolution. Every binary and unary operator is a method on this
// package, dispatching on the tag pair of its operands exactly as
// spec §4.3's table prescribes.
//
// Grounded on original_source/zinc-compiler/src/semantic/element/mod.rs's
// Element::{assign,add,sub,...} dispatch methods (one function per
// operator, matching on operand Element kind) and spec.md §4.3 directly.
// Kept as a flat tagged union rather than an interface hierarchy per
// spec §9's "avoid vtable proliferation" guidance.
package element

import (
	"strings"

	"github.com/circuitlang/circuitc/internal/bignum"
	"github.com/circuitlang/circuitc/internal/cerrors"
	"github.com/circuitlang/circuitc/internal/constraintsystem"
	"github.com/circuitlang/circuitc/internal/place"
	"github.com/circuitlang/circuitc/internal/srcloc"
	"github.com/circuitlang/circuitc/internal/types"
	"github.com/circuitlang/circuitc/internal/value"
)

// Kind discriminates the Element union.
type Kind int

const (
	KindValue Kind = iota
	KindPlace
	KindType
	KindPath
)

// Element is the sum type every RPN evaluation step consumes and produces.
// A KindValue element produced by an arithmetic/compare operator also
// carries the constraint-system Allocation the gadget returned, so the
// next operator in the chain can feed it straight back into another
// gadget instead of re-allocating a fresh constant for it.
type Element struct {
	Kind      Kind
	Value     value.Value
	Place     place.Place
	Type      types.Variant
	Path      []string
	Location  srcloc.Location
	Alloc     constraintsystem.Allocation
	Allocated bool
}

func FromValue(loc srcloc.Location, v value.Value) Element {
	return Element{Kind: KindValue, Value: v, Location: loc}
}

func FromPlace(loc srcloc.Location, p place.Place) Element {
	return Element{Kind: KindPlace, Place: p, Location: loc}
}

func FromType(loc srcloc.Location, t types.Variant) Element {
	return Element{Kind: KindType, Type: t, Location: loc}
}

func FromPath(loc srcloc.Location, segments []string) Element {
	return Element{Kind: KindPath, Path: segments, Location: loc}
}

// fromAllocation wraps a gadget's result Allocation as the Element an
// operator hands back to the evaluator's stack.
func fromAllocation(loc srcloc.Location, alloc constraintsystem.Allocation) Element {
	return Element{Kind: KindValue, Value: alloc.Value, Alloc: alloc, Allocated: true, Location: loc}
}

// allocate returns e's constraint-system allocation, lazily recording one
// as a constant via sys when e hasn't already been through a gadget (a
// freshly loaded place or a literal operand has no Allocation yet).
func (e Element) allocate(sys constraintsystem.System, name string) (constraintsystem.Allocation, *cerrors.Error) {
	if e.Allocated {
		return e.Alloc, nil
	}
	v, err := e.AsValue()
	if err != nil {
		return constraintsystem.Allocation{}, err
	}
	return sys.AllocateConstant(name, v)
}

// AsValue coerces e to a Value, dereferencing a Place's current value
// (spec §4.3: most operators implicitly read through a Place operand).
func (e Element) AsValue() (value.Value, *cerrors.Error) {
	switch e.Kind {
	case KindValue:
		return e.Value, nil
	case KindPlace:
		return e.Place.Current, nil
	default:
		return value.Value{}, cerrors.New(cerrors.KindFirstOperandExpectedEvaluable, e.Location,
			"expected a value or place, found "+e.describe(), nil)
	}
}

func (e Element) describe() string {
	switch e.Kind {
	case KindType:
		return "a type"
	case KindPath:
		return "a path"
	default:
		return "an element"
	}
}

// requireInteger extracts the Integer payload of e, failing with
// ExpectedInteger if e is not an integer-typed value.
func requireInteger(e Element) (bignum.Integer, *cerrors.Error) {
	v, err := e.AsValue()
	if err != nil {
		return bignum.Integer{}, err
	}
	if v.Type.Tag != types.TagInt {
		return bignum.Integer{}, cerrors.New(cerrors.KindExpectedInteger, e.Location,
			"expected an integer or field value, found "+v.Type.String(), nil)
	}
	return v.Int, nil
}

func stampLoc(err *cerrors.Error, loc srcloc.Location) *cerrors.Error {
	if err == nil || !err.Location.IsZero() {
		return err
	}
	return err.WithLocation(loc)
}

// --- assignment (spec §4.3 `=`) ---

// Assign evaluates `lhs = rhs`, requiring lhs to be a mutable Place and rhs
// to be evaluable. It returns the updated root value so the caller (scope)
// can write it back under the place's identifier.
func Assign(loc srcloc.Location, lhs, rhs Element) (place.Place, value.Value, *cerrors.Error) {
	if lhs.Kind != KindPlace {
		return place.Place{}, value.Value{}, cerrors.New(cerrors.KindAssignmentFirstOperandExpectedPlace, loc,
			"left side of `=` must be an assignable place", nil)
	}
	rv, err := rhs.AsValue()
	if err != nil {
		return place.Place{}, value.Value{}, stampLoc(err, loc)
	}
	return lhs.Place, rv, nil
}

// --- arithmetic (spec §4.3 `+ - * / %`) ---
//
// Every arithmetic/compare/unary operator below allocates its operands into
// sys (reusing an operand's existing Allocation when it already has one,
// lazily constant-allocating it otherwise) and calls the matching gadget,
// carrying the gadget's returned Allocation back through the Element so a
// chain of operators produces exactly one gadget call apiece (spec S2:
// "constraint sequence contains exactly one division gadget followed by
// one equality gadget").

type gadget func(a, b constraintsystem.Allocation) (constraintsystem.Allocation, *cerrors.Error)

func binaryGadget(sys constraintsystem.System, loc srcloc.Location, a, b Element, name string, g gadget) (Element, *cerrors.Error) {
	aa, err := a.allocate(sys, name+"_lhs")
	if err != nil {
		return Element{}, stampLoc(err, loc)
	}
	bb, err := b.allocate(sys, name+"_rhs")
	if err != nil {
		return Element{}, stampLoc(err, loc)
	}
	result, opErr := g(aa, bb)
	if opErr != nil {
		return Element{}, stampLoc(opErr, loc)
	}
	return fromAllocation(loc, result), nil
}

func unaryGadget(sys constraintsystem.System, loc srcloc.Location, a Element, name string, g func(constraintsystem.Allocation) (constraintsystem.Allocation, *cerrors.Error)) (Element, *cerrors.Error) {
	aa, err := a.allocate(sys, name)
	if err != nil {
		return Element{}, stampLoc(err, loc)
	}
	result, opErr := g(aa)
	if opErr != nil {
		return Element{}, stampLoc(opErr, loc)
	}
	return fromAllocation(loc, result), nil
}

func Add(sys constraintsystem.System, loc srcloc.Location, a, b Element) (Element, *cerrors.Error) {
	return binaryGadget(sys, loc, a, b, "add", sys.Add)
}
func Sub(sys constraintsystem.System, loc srcloc.Location, a, b Element) (Element, *cerrors.Error) {
	return binaryGadget(sys, loc, a, b, "sub", sys.Sub)
}
func Mul(sys constraintsystem.System, loc srcloc.Location, a, b Element) (Element, *cerrors.Error) {
	return binaryGadget(sys, loc, a, b, "mul", sys.Mul)
}
func Div(sys constraintsystem.System, loc srcloc.Location, a, b Element) (Element, *cerrors.Error) {
	return binaryGadget(sys, loc, a, b, "div", sys.Div)
}
func Rem(sys constraintsystem.System, loc srcloc.Location, a, b Element) (Element, *cerrors.Error) {
	return binaryGadget(sys, loc, a, b, "rem", sys.Rem)
}

// Neg implements unary `-` (spec §4.3).
func Neg(sys constraintsystem.System, loc srcloc.Location, a Element) (Element, *cerrors.Error) {
	return unaryGadget(sys, loc, a, "neg", sys.Neg)
}

// Not implements unary `!`, both bitwise on integers and logical on
// booleans (spec §4.3) — the System.Not gadget dispatches on the
// allocation's value type itself.
func Not(sys constraintsystem.System, loc srcloc.Location, a Element) (Element, *cerrors.Error) {
	return unaryGadget(sys, loc, a, "not", sys.Not)
}

// LogicalNot is Not's boolean case; kept as a distinct name at the call
// site (applyOperator) since `!` on a boolean and `!` on an integer read
// as different operators in spec §4.3's table, even though they share one
// gadget here.
func LogicalNot(sys constraintsystem.System, loc srcloc.Location, a Element) (Element, *cerrors.Error) {
	return Not(sys, loc, a)
}

// --- logical (spec §4.3 `&& || ^^`) ---

func And(sys constraintsystem.System, loc srcloc.Location, a, b Element) (Element, *cerrors.Error) {
	return binaryGadget(sys, loc, a, b, "and", sys.And)
}
func Or(sys constraintsystem.System, loc srcloc.Location, a, b Element) (Element, *cerrors.Error) {
	return binaryGadget(sys, loc, a, b, "or", sys.Or)
}
func Xor(sys constraintsystem.System, loc srcloc.Location, a, b Element) (Element, *cerrors.Error) {
	return binaryGadget(sys, loc, a, b, "xor", sys.Xor)
}

// --- equality (spec §4.3 `== !=`) ---

// Equal checks av/bv's types with resolve (so type aliases compare equal)
// before calling the Eq gadget, since the gadget's own type check has no
// resolver to follow aliases through.
func Equal(sys constraintsystem.System, loc srcloc.Location, a, b Element, resolve types.Resolver) (Element, *cerrors.Error) {
	av, err := a.AsValue()
	if err != nil {
		return Element{}, stampLoc(err, loc)
	}
	bv, err := b.AsValue()
	if err != nil {
		return Element{}, stampLoc(err, loc)
	}
	if !types.Equal(av.Type, bv.Type, resolve) {
		return Element{}, cerrors.New(cerrors.KindTypesMismatch, loc,
			"`==` requires operands of the same type", map[string]any{
				"first": av.Type.String(), "second": bv.Type.String(),
			})
	}
	return binaryGadget(sys, loc, a, b, "eq", sys.Eq)
}

func NotEqual(sys constraintsystem.System, loc srcloc.Location, a, b Element, resolve types.Resolver) (Element, *cerrors.Error) {
	eq, err := Equal(sys, loc, a, b, resolve)
	if err != nil {
		return Element{}, err
	}
	return unaryGadget(sys, loc, eq, "not_eq", sys.Not)
}

// --- ordering (spec §4.3 `< <= > >=`) ---
//
// System exposes only Lt and Eq as comparison gadgets; Greater is Lt with
// its operands swapped, LessEqual is Not(Greater) and GreaterEqual is
// Not(Less), the way original_source's
// zinc-vm gadgets/comparison module builds ge/le/gt off a single lt
// circuit rather than allocating four independent ones.

func Less(sys constraintsystem.System, loc srcloc.Location, a, b Element) (Element, *cerrors.Error) {
	return binaryGadget(sys, loc, a, b, "lt", sys.Lt)
}

func Greater(sys constraintsystem.System, loc srcloc.Location, a, b Element) (Element, *cerrors.Error) {
	return binaryGadget(sys, loc, b, a, "lt", sys.Lt)
}

func LessEqual(sys constraintsystem.System, loc srcloc.Location, a, b Element) (Element, *cerrors.Error) {
	gt, err := Greater(sys, loc, a, b)
	if err != nil {
		return Element{}, err
	}
	return unaryGadget(sys, loc, gt, "le", sys.Not)
}

func GreaterEqual(sys constraintsystem.System, loc srcloc.Location, a, b Element) (Element, *cerrors.Error) {
	lt, err := Less(sys, loc, a, b)
	if err != nil {
		return Element{}, err
	}
	return unaryGadget(sys, loc, lt, "ge", sys.Not)
}

// --- casting (spec §4.3 `as`) ---

// Cast evaluates `value as Type`. b must be a Type element.
func Cast(loc srcloc.Location, a, b Element) (Element, *cerrors.Error) {
	if b.Kind != KindType {
		return Element{}, cerrors.New(cerrors.KindSecondOperandExpectedEvaluable, loc,
			"right side of `as` must be a type", nil)
	}
	if b.Type.Tag != types.TagInt {
		return Element{}, cerrors.New(cerrors.KindCastingToInvalidType, loc,
			"`as` may only cast to an integer or field type", map[string]any{"to": b.Type.String()})
	}
	ai, err := requireInteger(a)
	if err != nil {
		return Element{}, stampLoc(err, loc)
	}
	result, opErr := bignum.Cast(ai, b.Type.Int)
	if opErr != nil {
		return Element{}, stampLoc(opErr, loc)
	}
	return FromValue(loc, value.Integer(result)), nil
}

// --- indexing (spec §4.3 `[]`) ---

// Index evaluates `a[b]`. a must be a Place or an array Value; b must be an
// unsigned integer.
func Index(loc srcloc.Location, a, b Element) (Element, *cerrors.Error) {
	bi, err := requireInteger(b)
	if err != nil {
		return Element{}, stampLoc(err, loc)
	}
	idx := int(bi.Semantic().Int64())

	if a.Kind == KindPlace {
		p, perr := a.Place.Index(loc, idx)
		if perr != nil {
			return Element{}, perr
		}
		return FromPlace(loc, p), nil
	}
	av, aerr := a.AsValue()
	if aerr != nil {
		return Element{}, stampLoc(aerr, loc)
	}
	if av.Type.Tag != types.TagArray {
		return Element{}, cerrors.New(cerrors.KindFirstOperandExpectedArray, loc,
			"`[]` requires an array operand, found "+av.Type.String(), nil)
	}
	if idx < 0 || idx >= len(av.Array) {
		return Element{}, cerrors.New(cerrors.KindIndexOperandTypes, loc,
			"index out of bounds", map[string]any{"index": idx, "length": len(av.Array)})
	}
	return FromValue(loc, av.Array[idx]), nil
}

// --- field/path access (spec §4.3 `. ::`) ---

// Dot evaluates `a.b`. When a is a Place, the result is a narrowed Place
// (so it may still be assigned to); when a is a plain struct/tuple Value,
// the result is the field's Value.
func Dot(loc srcloc.Location, a Element, fieldOrIndex string) (Element, *cerrors.Error) {
	if a.Kind == KindPlace {
		if n, ok := tupleIndex(fieldOrIndex); ok {
			np, err := a.Place.TupleIndex(loc, n)
			if err != nil {
				return Element{}, err
			}
			return FromPlace(loc, np), nil
		}
		p, err := a.Place.Field(loc, fieldOrIndex)
		if err != nil {
			return Element{}, err
		}
		return FromPlace(loc, p), nil
	}
	av, err := a.AsValue()
	if err != nil {
		return Element{}, stampLoc(err, loc)
	}
	if n, ok := tupleIndex(fieldOrIndex); ok {
		if av.Type.Tag != types.TagTuple || n < 0 || n >= len(av.Tuple) {
			return Element{}, cerrors.New(cerrors.KindFirstOperandExpectedTuple, loc,
				"`.`+index requires a tuple operand in range", nil)
		}
		return FromValue(loc, av.Tuple[n]), nil
	}
	if av.Type.Tag != types.TagStruct {
		return Element{}, cerrors.New(cerrors.KindFirstOperandExpectedStructure, loc,
			"`.` requires a structure operand, found "+av.Type.String(), nil)
	}
	for _, f := range av.Struct {
		if f.Name == fieldOrIndex {
			return FromValue(loc, f.Value), nil
		}
	}
	return Element{}, cerrors.New(cerrors.KindItemUndeclared, loc,
		"no field `"+fieldOrIndex+"` on this structure", nil)
}

func tupleIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n, true
}

// Path evaluates `a::b`, extending a dotted path (spec §4.3 `::`, used for
// enum-variant and module-member resolution). Both operands must be Path
// elements (or a bare identifier lifted by the caller into one).
func Path(loc srcloc.Location, a, b Element) (Element, *cerrors.Error) {
	if a.Kind != KindPath || b.Kind != KindPath || len(b.Path) != 1 {
		return Element{}, cerrors.New(cerrors.KindPathOperandTypes, loc,
			"`::` requires a path on the left and a single identifier on the right", nil)
	}
	return FromPath(loc, append(append([]string{}, a.Path...), b.Path[0])), nil
}

func (e Element) PathString() string {
	return strings.Join(e.Path, "::")
}

// --- ranges (spec §4.3 `.. ..=`) ---

// Range describes an integer range used by `for` loop bounds. EndInclusive
// marks `..=` vs `..`.
type Range struct {
	Start         bignum.Integer
	End           bignum.Integer
	EndInclusive  bool
}

func RangeExclusive(loc srcloc.Location, a, b Element) (Range, *cerrors.Error) {
	return buildRange(loc, a, b, false)
}

func RangeInclusive(loc srcloc.Location, a, b Element) (Range, *cerrors.Error) {
	return buildRange(loc, a, b, true)
}

func buildRange(loc srcloc.Location, a, b Element, inclusive bool) (Range, *cerrors.Error) {
	ai, err := requireInteger(a)
	if err != nil {
		return Range{}, stampLoc(err, loc)
	}
	bi, err := requireInteger(b)
	if err != nil {
		return Range{}, stampLoc(err, loc)
	}
	if err := sameRangeKind(ai, bi); err != nil {
		return Range{}, stampLoc(err, loc)
	}
	return Range{Start: ai, End: bi, EndInclusive: inclusive}, nil
}

func sameRangeKind(a, b bignum.Integer) *cerrors.Error {
	if !a.Kind.Equal(b.Kind) {
		return cerrors.New(cerrors.KindRangeOperand, srcloc.Location{},
			"range bounds must share a type", map[string]any{"first": a.Kind.String(), "second": b.Kind.String()})
	}
	return nil
}
