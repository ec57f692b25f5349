// Package types is the type system of the expression engine (spec §3.2,
// §4.2, component B): a discriminated union of primitive/compound types,
// structural vs. nominal equality, and flat-layout sizing.
//
// Grounded on original_source/zinc-compiler/src/semantic/element/mod.rs's
// TypeVariant handling and spec.md §3.2/§4.2 directly.
package types

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/slices"

	"github.com/circuitlang/circuitc/internal/bignum"
)

// Tag discriminates the Variant union.
type Tag int

const (
	TagUnit Tag = iota
	TagBool
	TagInt
	TagArray
	TagTuple
	TagStruct
	TagEnum
	TagMap
	TagAlias
)

// Field is a Field name/Type pair used by both Tuple (unnamed, Name "")
// and Struct (named) layouts. Declaration order is semantically
// significant for flattening (spec §3.2).
type Field struct {
	Name string
	Type Variant
}

// EnumVariant is one (name, integer-literal) pair of a closed enumeration.
type EnumVariant struct {
	Name  string
	Value int64
}

// Variant is the type-system sum type. Only the fields relevant to Tag are
// populated; this mirrors the "native discriminated-union" guidance of
// spec §9 rather than an interface-per-kind hierarchy.
type Variant struct {
	Tag    Tag
	Int    bignum.Kind   // TagInt (IsField set within Kind selects `field`)
	Array  *ArrayType    // TagArray
	Tuple  []Variant     // TagTuple
	Struct *StructType   // TagStruct
	Enum   *EnumType     // TagEnum
	Map    *MapType      // TagMap
	Alias  string        // TagAlias
}

type ArrayType struct {
	Element Variant
	Size    int
}

type StructType struct {
	Name   string
	Fields []Field
}

type EnumType struct {
	Name      string
	Variants  []EnumVariant
	BitLength int
}

type MapType struct {
	Key   Variant
	Value Variant
}

func Unit() Variant                       { return Variant{Tag: TagUnit} }
func Bool() Variant                       { return Variant{Tag: TagBool} }
func Int(kind bignum.Kind) Variant        { return Variant{Tag: TagInt, Int: kind} }
func FieldType() Variant                  { return Variant{Tag: TagInt, Int: bignum.Field} }
func Array(elem Variant, n int) Variant   { return Variant{Tag: TagArray, Array: &ArrayType{Element: elem, Size: n}} }
func Tuple(elems ...Variant) Variant      { return Variant{Tag: TagTuple, Tuple: elems} }
func Struct(name string, fields []Field) Variant {
	return Variant{Tag: TagStruct, Struct: &StructType{Name: name, Fields: fields}}
}
func Enum(name string, variants []EnumVariant) Variant {
	bl := minimalEnumBitLength(variants)
	return Variant{Tag: TagEnum, Enum: &EnumType{Name: name, Variants: variants, BitLength: bl}}
}
func Map(key, value Variant) Variant { return Variant{Tag: TagMap, Map: &MapType{Key: key, Value: value}} }
func Alias(name string) Variant      { return Variant{Tag: TagAlias, Alias: name} }

func minimalEnumBitLength(variants []EnumVariant) int {
	for b := 8; b <= bignum.MaxBitLength; b += 8 {
		max := int64(1) << uint(b-1)
		fits := true
		for _, v := range variants {
			if v.Value < 0 || v.Value >= max*2 {
				fits = false
				break
			}
		}
		if fits {
			return b
		}
	}
	return bignum.MaxBitLength
}

// Resolver looks an Alias name up through the scope, mirroring
// Scope.resolve_type in spec §4.5. It is the only hook this package needs
// into internal/scope, avoiding an import cycle.
type Resolver func(name string) (Variant, bool)

// Resolve follows an Alias chain to its underlying Variant.
func Resolve(v Variant, resolve Resolver) Variant {
	for v.Tag == TagAlias {
		resolved, ok := resolve(v.Alias)
		if !ok {
			return v
		}
		v = resolved
	}
	return v
}

// Equal implements spec §3.2's type-equality rule: structural for
// tuples/arrays, nominal (by declared name) for structures/enumerations.
// Aliases are resolved through resolve before comparison.
func Equal(a, b Variant, resolve Resolver) bool {
	a = Resolve(a, resolve)
	b = Resolve(b, resolve)
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagUnit, TagBool:
		return true
	case TagInt:
		return a.Int.Equal(b.Int)
	case TagArray:
		return a.Array.Size == b.Array.Size && Equal(a.Array.Element, b.Array.Element, resolve)
	case TagTuple:
		if len(a.Tuple) != len(b.Tuple) {
			return false
		}
		for i := range a.Tuple {
			if !Equal(a.Tuple[i], b.Tuple[i], resolve) {
				return false
			}
		}
		return true
	case TagStruct:
		return a.Struct.Name == b.Struct.Name
	case TagEnum:
		return a.Enum.Name == b.Enum.Name
	case TagMap:
		return Equal(a.Map.Key, b.Map.Key, resolve) && Equal(a.Map.Value, b.Map.Value, resolve)
	default:
		return false
	}
}

// Size returns the number of flat field-elements the type occupies
// (spec §4.2): unit=0; scalar=1; array(T,n)=n·size(T); tuple/structure=Σ
// size(field); enumeration=1; map=0 (opaque storage handle).
func Size(v Variant) int {
	switch v.Tag {
	case TagUnit, TagMap:
		return 0
	case TagBool, TagInt:
		return 1
	case TagArray:
		return v.Array.Size * Size(v.Array.Element)
	case TagTuple:
		total := 0
		for _, t := range v.Tuple {
			total += Size(t)
		}
		return total
	case TagStruct:
		total := 0
		for _, f := range v.Struct.Fields {
			total += Size(f.Type)
		}
		return total
	case TagEnum:
		return 1
	default:
		return 0
	}
}

// FieldElementBytes is the assumed on-the-wire width of one flat field
// element, used only for human-readable footprint reporting.
const FieldElementBytes = 32

// FootprintBytes reports the flat layout's size in bytes, for trace
// logging and diagnostics (never part of the constraint semantics).
func FootprintBytes(v Variant) uint64 {
	return uint64(Size(v)) * FieldElementBytes
}

// EnumVariantValue looks a variant up by name, returning ok=false if it
// does not exist (error taxonomy: caller raises the specific
// EnumerationVariantNotExists-style failure with a Location).
func EnumVariantValue(e *EnumType, name string) (int64, bool) {
	idx := slices.IndexFunc(e.Variants, func(v EnumVariant) bool { return v.Name == name })
	if idx < 0 {
		return 0, false
	}
	return e.Variants[idx].Value, true
}

func (v Variant) String() string {
	switch v.Tag {
	case TagUnit:
		return "()"
	case TagBool:
		return "bool"
	case TagInt:
		return v.Int.String()
	case TagArray:
		return fmt.Sprintf("[%s; %d]", v.Array.Element, v.Array.Size)
	case TagTuple:
		parts := make([]string, len(v.Tuple))
		for i, t := range v.Tuple {
			parts[i] = t.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case TagStruct:
		return "struct " + v.Struct.Name
	case TagEnum:
		return "enum " + v.Enum.Name
	case TagMap:
		return fmt.Sprintf("map[%s]%s", v.Map.Key, v.Map.Value)
	case TagAlias:
		return v.Alias
	default:
		return "<unknown type>"
	}
}

// DescribeFootprint renders a type together with its human-readable flat
// layout footprint, e.g. "[u8; 64] (2.0 kB)".
func DescribeFootprint(v Variant) string {
	return fmt.Sprintf("%s (%s)", v, humanize.Bytes(FootprintBytes(v)))
}
