// Package place is the Place component (spec §3.3, component D): a typed,
// assignable storage location reached by following a chain of field/index
// descriptors from a root variable.
//
// Grounded on original_source/zinc-compiler/src/semantic/element/place.rs's
// mutability-check-before-assignment contract and the teacher's
// internal/vm/frame.go style of carrying a single owned value plus small
// descriptor metadata, rather than a parent-pointer tree.
package place

import (
	"strconv"
	"strings"

	"github.com/circuitlang/circuitc/internal/cerrors"
	"github.com/circuitlang/circuitc/internal/srcloc"
	"github.com/circuitlang/circuitc/internal/types"
	"github.com/circuitlang/circuitc/internal/value"
)

// DescriptorKind discriminates a single path step appended while indexing
// or projecting into a place (spec §3.3: ".field" or "[index]").
type DescriptorKind int

const (
	DescriptorField DescriptorKind = iota
	DescriptorIndex
)

// Descriptor is one path step. Only the field matching Kind is populated.
type Descriptor struct {
	Kind  DescriptorKind
	Field string
	Index int
}

func (d Descriptor) String() string {
	if d.Kind == DescriptorField {
		return "." + d.Field
	}
	return "[" + strconv.Itoa(d.Index) + "]"
}

// Place identifies an assignable storage location: the declared identifier
// it is rooted at, the current value reachable there, whether assignment is
// permitted, and the chain of descriptors applied since the root (spec
// §3.3). IsMutable is fixed at creation time, mirroring `let` vs `let mut`
// in the original language.
type Place struct {
	Identifier  string
	Type        types.Variant
	Current     value.Value
	IsMutable   bool
	Descriptors []Descriptor
}

// New constructs the root place for a freshly declared variable.
func New(identifier string, v value.Value, mutable bool) Place {
	return Place{Identifier: identifier, Type: v.Type, Current: v, IsMutable: mutable}
}

// Path renders the place's full access path, e.g. "x.a[2].b".
func (p Place) Path() string {
	var b strings.Builder
	b.WriteString(p.Identifier)
	for _, d := range p.Descriptors {
		b.WriteString(d.String())
	}
	return b.String()
}

// Field projects into a struct field, returning a new place whose Current
// is the field's value and whose descriptor chain is extended (spec §4.3
// `.` operator on a Place operand).
func (p Place) Field(loc srcloc.Location, name string) (Place, *cerrors.Error) {
	if p.Current.Type.Tag != types.TagStruct {
		return Place{}, cerrors.New(cerrors.KindFirstOperandExpectedStructure, loc,
			"`.` requires a structure operand", map[string]any{"found": p.Current.Type.String()})
	}
	for _, f := range p.Current.Struct {
		if f.Name == name {
			next := p
			next.Current = f.Value
			next.Type = f.Value.Type
			next.Descriptors = append(append([]Descriptor{}, p.Descriptors...), Descriptor{Kind: DescriptorField, Field: name})
			return next, nil
		}
	}
	return Place{}, cerrors.New(cerrors.KindItemUndeclared, loc,
		"no field `"+name+"` on this structure", map[string]any{"field": name})
}

// Index projects into an array element (spec §4.3 `[]` operator on a Place
// operand), bounds-checked against the array's declared size.
func (p Place) Index(loc srcloc.Location, i int) (Place, *cerrors.Error) {
	if p.Current.Type.Tag != types.TagArray {
		return Place{}, cerrors.New(cerrors.KindFirstOperandExpectedArray, loc,
			"`[]` requires an array operand", map[string]any{"found": p.Current.Type.String()})
	}
	if i < 0 || i >= len(p.Current.Array) {
		return Place{}, cerrors.New(cerrors.KindIndexOperandTypes, loc,
			"index out of bounds", map[string]any{"index": i, "length": len(p.Current.Array)})
	}
	next := p
	next.Current = p.Current.Array[i]
	next.Type = next.Current.Type
	next.Descriptors = append(append([]Descriptor{}, p.Descriptors...), Descriptor{Kind: DescriptorIndex, Index: i})
	return next, nil
}

// TupleIndex projects into a tuple element (spec §4.3 `.` operator with a
// numeric field on a tuple-typed Place operand).
func (p Place) TupleIndex(loc srcloc.Location, i int) (Place, *cerrors.Error) {
	if p.Current.Type.Tag != types.TagTuple {
		return Place{}, cerrors.New(cerrors.KindFirstOperandExpectedTuple, loc,
			"`.`+index requires a tuple operand", map[string]any{"found": p.Current.Type.String()})
	}
	if i < 0 || i >= len(p.Current.Tuple) {
		return Place{}, cerrors.New(cerrors.KindIndexOperandTypes, loc,
			"tuple index out of bounds", map[string]any{"index": i, "length": len(p.Current.Tuple)})
	}
	next := p
	next.Current = p.Current.Tuple[i]
	next.Type = next.Current.Type
	next.Descriptors = append(append([]Descriptor{}, p.Descriptors...), Descriptor{Kind: DescriptorIndex, Index: i})
	return next, nil
}

// Assign replaces the value at the leaf of the place's descriptor chain
// within root (the place's owner value as currently stored in scope),
// returning the updated root value. It fails if the place is not mutable
// (spec §4.3 AssignmentToImmutable) or if the new value's type does not
// match the leaf's declared type.
func Assign(root value.Value, p Place, newValue value.Value) (value.Value, *cerrors.Error) {
	if !p.IsMutable {
		return value.Value{}, cerrors.New(cerrors.KindAssignmentToImmutable, srcloc.Location{},
			"cannot assign to `"+p.Path()+"`: not declared mutable", map[string]any{"place": p.Path()})
	}
	if !types.Equal(newValue.Type, p.Type, nil) {
		return value.Value{}, cerrors.New(cerrors.KindAssignmentSecondOperandExpectedEvaluable, srcloc.Location{},
			"assigned value type does not match place type", map[string]any{
				"place": p.Path(), "expected": p.Type.String(), "found": newValue.Type.String(),
			})
	}
	return assignAt(root, p.Descriptors, newValue)
}

func assignAt(current value.Value, descriptors []Descriptor, newValue value.Value) (value.Value, *cerrors.Error) {
	if len(descriptors) == 0 {
		return newValue, nil
	}
	d := descriptors[0]
	switch d.Kind {
	case DescriptorField:
		fields := append([]value.FieldEntry{}, current.Struct...)
		for i, f := range fields {
			if f.Name == d.Field {
				updated, err := assignAt(f.Value, descriptors[1:], newValue)
				if err != nil {
					return value.Value{}, err
				}
				fields[i] = value.FieldEntry{Name: f.Name, Value: updated}
				return value.Struct(current.Type.Struct.Name, fields), nil
			}
		}
		return value.Value{}, cerrors.New(cerrors.KindItemUndeclared, srcloc.Location{},
			"no field `"+d.Field+"` on this structure", nil)
	case DescriptorIndex:
		if current.Type.Tag == types.TagTuple {
			if d.Index < 0 || d.Index >= len(current.Tuple) {
				return value.Value{}, cerrors.New(cerrors.KindIndexOperandTypes, srcloc.Location{},
					"tuple index out of bounds", nil)
			}
			elems := append([]value.Value{}, current.Tuple...)
			updated, err := assignAt(elems[d.Index], descriptors[1:], newValue)
			if err != nil {
				return value.Value{}, err
			}
			elems[d.Index] = updated
			return value.Tuple(elems), nil
		}
		if d.Index < 0 || d.Index >= len(current.Array) {
			return value.Value{}, cerrors.New(cerrors.KindIndexOperandTypes, srcloc.Location{},
				"index out of bounds", nil)
		}
		elems := append([]value.Value{}, current.Array...)
		updated, err := assignAt(elems[d.Index], descriptors[1:], newValue)
		if err != nil {
			return value.Value{}, err
		}
		elems[d.Index] = updated
		rebuilt, rebuildErr := value.Array(current.Type.Array.Element, elems)
		if rebuildErr != nil {
			return value.Value{}, cerrors.Wrap(cerrors.KindAssignmentSecondOperandExpectedEvaluable, srcloc.Location{},
				rebuildErr.Error(), rebuildErr)
		}
		return rebuilt, nil
	default:
		return value.Value{}, cerrors.New(cerrors.KindAssignmentFirstOperandExpectedPlace, srcloc.Location{},
			"unknown place descriptor", nil)
	}
}
