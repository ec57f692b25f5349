// Package value is the Value component (spec §3.1-3.2, component C): the
// tagged union of runtime-evaluable values produced by literals, operator
// results, and compound constructors. Values are immutable once produced
// (spec §3.5).
//
// Grounded on original_source/zinc-types/src/data/value/mod.rs (flat/JSON
// round-trip contract) and the teacher's internal/vm/value.go Value
// wrapper style (one exported type, constructors per kind).
package value

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/circuitlang/circuitc/internal/bignum"
	"github.com/circuitlang/circuitc/internal/types"
)

// FieldEntry is one named field of a Struct value, kept in declaration
// order.
type FieldEntry struct {
	Name  string
	Value Value
}

// Value is the runtime tagged union. Only the field matching Type.Tag is
// populated.
type Value struct {
	Type   types.Variant
	Bool   bool
	Int    bignum.Integer
	Array  []Value
	Tuple  []Value
	Struct []FieldEntry
	Map    []MapEntry

	// EnumVariant names the active variant for TagEnum values; Int carries
	// its discriminant so arithmetic/ordering on enum-typed operands fails
	// the same way any other non-integer operand would (spec §4.2).
	EnumVariant string
}

// MapEntry is one key/value pair of a Map(K,V) storage value.
type MapEntry struct {
	Key Value
	Val Value
}

func Unit() Value { return Value{Type: types.Unit()} }

func Bool(b bool) Value { return Value{Type: types.Bool(), Bool: b} }

func Integer(i bignum.Integer) Value { return Value{Type: types.Int(i.Kind), Int: i} }

// Array constructs an array value, validating the element count and that
// every element's type matches (spec §3.2 arrays are homogeneous).
func Array(elemType types.Variant, elems []Value) (Value, error) {
	for i, e := range elems {
		if !types.Equal(e.Type, elemType, nil) {
			return Value{}, fmt.Errorf("array element %d has type %s, expected %s", i, e.Type, elemType)
		}
	}
	return Value{Type: types.Array(elemType, len(elems)), Array: elems}, nil
}

func Tuple(elems []Value) Value {
	elemTypes := make([]types.Variant, len(elems))
	for i, e := range elems {
		elemTypes[i] = e.Type
	}
	return Value{Type: types.Tuple(elemTypes...), Tuple: elems}
}

func Struct(name string, fields []FieldEntry) Value {
	declared := make([]types.Field, len(fields))
	for i, f := range fields {
		declared[i] = types.Field{Name: f.Name, Type: f.Value.Type}
	}
	return Value{Type: types.Struct(name, declared), Struct: fields}
}

func Map(keyType, valType types.Variant, entries []MapEntry) Value {
	return Value{Type: types.Map(keyType, valType), Map: entries}
}

// Enum constructs an enumeration value naming one of t's declared
// variants; its discriminant is carried as an unsigned integer of t's
// minimal bit length (spec §4.2).
func Enum(t types.Variant, variantName string) (Value, error) {
	if t.Tag != types.TagEnum {
		return Value{}, fmt.Errorf("enum: type %s is not an enumeration", t)
	}
	for _, variant := range t.Enum.Variants {
		if variant.Name == variantName {
			discriminant, err := bignum.FromSemantic(big.NewInt(variant.Value), bignum.Unsigned(t.Enum.BitLength))
			if err != nil {
				return Value{}, err
			}
			return Value{Type: t, Int: discriminant, EnumVariant: variantName}, nil
		}
	}
	return Value{}, fmt.Errorf("enum: %s has no variant %q", t.Enum.Name, variantName)
}

// HasSameTypeAs implements the conditional/match branch-type-equality rule
// (spec §4.7: ConditionalBranchTypeMismatch).
func (v Value) HasSameTypeAs(other Value, resolve types.Resolver) bool {
	return types.Equal(v.Type, other.Type, resolve)
}

// Equal implements the `==`/`!=` primitive comparison (spec §4.3): both
// operands must already share a type (checked by the caller, component E).
func Equal(a, b Value) bool {
	if a.Type.Tag != b.Type.Tag {
		return false
	}
	switch a.Type.Tag {
	case types.TagUnit:
		return true
	case types.TagBool:
		return a.Bool == b.Bool
	case types.TagInt:
		return a.Int.Field.Cmp(b.Int.Field) == 0
	case types.TagEnum:
		return a.Type.Enum.Name == b.Type.Enum.Name && a.EnumVariant == b.EnumVariant
	case types.TagArray, types.TagTuple:
		left, right := a.elements(), b.elements()
		if len(left) != len(right) {
			return false
		}
		for i := range left {
			if !Equal(left[i], right[i]) {
				return false
			}
		}
		return true
	case types.TagStruct:
		if len(a.Struct) != len(b.Struct) {
			return false
		}
		for i := range a.Struct {
			if a.Struct[i].Name != b.Struct[i].Name || !Equal(a.Struct[i].Value, b.Struct[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (v Value) elements() []Value {
	if v.Type.Tag == types.TagArray {
		return v.Array
	}
	return v.Tuple
}

func (v Value) String() string {
	switch v.Type.Tag {
	case types.TagUnit:
		return "()"
	case types.TagBool:
		return fmt.Sprintf("%t", v.Bool)
	case types.TagInt:
		return v.Int.Semantic().String()
	case types.TagArray:
		return sliceString(v.Array, "[", "]")
	case types.TagTuple:
		return sliceString(v.Tuple, "(", ")")
	case types.TagStruct:
		parts := make([]string, len(v.Struct))
		for i, f := range v.Struct {
			parts[i] = f.Name + ": " + f.Value.String()
		}
		return v.Type.Struct.Name + " { " + strings.Join(parts, ", ") + " }"
	case types.TagMap:
		parts := make([]string, len(v.Map))
		for i, e := range v.Map {
			parts[i] = e.Key.String() + ": " + e.Val.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case types.TagEnum:
		return v.Type.Enum.Name + "::" + v.EnumVariant
	default:
		return "<invalid value>"
	}
}

func sliceString(vs []Value, open, close string) string {
	parts := make([]string, len(vs))
	for i, e := range vs {
		parts[i] = e.String()
	}
	return open + strings.Join(parts, ", ") + close
}
