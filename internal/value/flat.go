package value

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/circuitlang/circuitc/internal/bignum"
	"github.com/circuitlang/circuitc/internal/types"
)

// ToFlat serializes v into its flat field-element representation (spec §8
// round-trip law: Value::from_flat(T, v.into_flat()) == v). Map values have
// no flat representation (they are storage-only) and are skipped, matching
// their zero-size layout (spec §4.2).
func (v Value) ToFlat() []*big.Int {
	switch v.Type.Tag {
	case types.TagUnit, types.TagMap:
		return nil
	case types.TagBool:
		if v.Bool {
			return []*big.Int{big.NewInt(1)}
		}
		return []*big.Int{big.NewInt(0)}
	case types.TagInt, types.TagEnum:
		return []*big.Int{new(big.Int).Set(v.Int.Field)}
	case types.TagArray:
		return flattenAll(v.Array)
	case types.TagTuple:
		return flattenAll(v.Tuple)
	case types.TagStruct:
		flat := make([]*big.Int, 0, types.Size(v.Type))
		for _, f := range v.Struct {
			flat = append(flat, f.Value.ToFlat()...)
		}
		return flat
	default:
		return nil
	}
}

func flattenAll(vs []Value) []*big.Int {
	flat := make([]*big.Int, 0, len(vs))
	for _, e := range vs {
		flat = append(flat, e.ToFlat()...)
	}
	return flat
}

// FromFlat reconstructs a Value of type t from its flat representation,
// consuming exactly types.Size(t) elements.
func FromFlat(t types.Variant, flat []*big.Int) (Value, error) {
	v, rest, err := fromFlat(t, flat)
	if err != nil {
		return Value{}, err
	}
	if len(rest) != 0 {
		return Value{}, fmt.Errorf("from_flat: %d unconsumed elements for type %s", len(rest), t)
	}
	return v, nil
}

func fromFlat(t types.Variant, flat []*big.Int) (Value, []*big.Int, error) {
	switch t.Tag {
	case types.TagUnit, types.TagMap:
		return Value{Type: t}, flat, nil
	case types.TagBool:
		if len(flat) < 1 {
			return Value{}, nil, fmt.Errorf("from_flat: not enough elements for bool")
		}
		return Bool(flat[0].Sign() != 0), flat[1:], nil
	case types.TagInt:
		if len(flat) < 1 {
			return Value{}, nil, fmt.Errorf("from_flat: not enough elements for %s", t)
		}
		integer := bignum.Integer{Kind: t.Int, Field: new(big.Int).Set(flat[0])}
		return Integer(integer), flat[1:], nil
	case types.TagEnum:
		if len(flat) < 1 {
			return Value{}, nil, fmt.Errorf("from_flat: not enough elements for %s", t)
		}
		for _, variant := range t.Enum.Variants {
			if big.NewInt(variant.Value).Cmp(flat[0]) == 0 {
				v, err := Enum(t, variant.Name)
				return v, flat[1:], err
			}
		}
		return Value{}, nil, fmt.Errorf("from_flat: %s has no variant with discriminant %s", t.Enum.Name, flat[0])
	case types.TagArray:
		elems := make([]Value, t.Array.Size)
		rest := flat
		for i := range elems {
			var err error
			elems[i], rest, err = fromFlat(t.Array.Element, rest)
			if err != nil {
				return Value{}, nil, err
			}
		}
		result, err := Array(t.Array.Element, elems)
		return result, rest, err
	case types.TagTuple:
		elems := make([]Value, len(t.Tuple))
		rest := flat
		for i, et := range t.Tuple {
			var err error
			elems[i], rest, err = fromFlat(et, rest)
			if err != nil {
				return Value{}, nil, err
			}
		}
		return Tuple(elems), rest, nil
	case types.TagStruct:
		fields := make([]FieldEntry, len(t.Struct.Fields))
		rest := flat
		for i, f := range t.Struct.Fields {
			var err error
			var fv Value
			fv, rest, err = fromFlat(f.Type, rest)
			if err != nil {
				return Value{}, nil, err
			}
			fields[i] = FieldEntry{Name: f.Name, Value: fv}
		}
		return Struct(t.Struct.Name, fields), rest, nil
	default:
		return Value{}, nil, fmt.Errorf("from_flat: unsupported type %s", t)
	}
}

// ToJSON renders v as a json.RawMessage-compatible any, suitable for
// template/witness files. Unit round-trips through JSON null (spec §8).
func (v Value) ToJSON() (any, error) {
	switch v.Type.Tag {
	case types.TagUnit:
		return nil, nil
	case types.TagBool:
		return v.Bool, nil
	case types.TagInt:
		return v.Int.Semantic().String(), nil
	case types.TagEnum:
		return v.EnumVariant, nil
	case types.TagArray:
		return jsonSlice(v.Array)
	case types.TagTuple:
		return jsonSlice(v.Tuple)
	case types.TagStruct:
		obj := make(map[string]any, len(v.Struct))
		for _, f := range v.Struct {
			rendered, err := f.Value.ToJSON()
			if err != nil {
				return nil, err
			}
			obj[f.Name] = rendered
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("to_json: unsupported type %s", v.Type)
	}
}

func jsonSlice(vs []Value) ([]any, error) {
	out := make([]any, len(vs))
	for i, e := range vs {
		rendered, err := e.ToJSON()
		if err != nil {
			return nil, err
		}
		out[i] = rendered
	}
	return out, nil
}

// FromJSON reconstructs a Value of type t from a decoded JSON document
// (spec §8: except that unit-typed entries round-trip through JSON null).
func FromJSON(t types.Variant, doc any) (Value, error) {
	switch t.Tag {
	case types.TagUnit:
		if doc != nil {
			return Value{}, fmt.Errorf("from_json: expected null for unit, got %v", doc)
		}
		return Unit(), nil
	case types.TagBool:
		b, ok := doc.(bool)
		if !ok {
			return Value{}, fmt.Errorf("from_json: expected bool, got %T", doc)
		}
		return Bool(b), nil
	case types.TagInt:
		s, ok := doc.(string)
		if !ok {
			if n, isNum := doc.(json.Number); isNum {
				s = n.String()
			} else {
				return Value{}, fmt.Errorf("from_json: expected numeric string, got %T", doc)
			}
		}
		semantic, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return Value{}, fmt.Errorf("from_json: invalid integer literal %q", s)
		}
		integer, err := bignum.FromSemantic(semantic, t.Int)
		if err != nil {
			return Value{}, err
		}
		return Integer(integer), nil
	case types.TagEnum:
		name, ok := doc.(string)
		if !ok {
			return Value{}, fmt.Errorf("from_json: expected variant name string for enum %s, got %T", t.Enum.Name, doc)
		}
		return Enum(t, name)
	case types.TagArray:
		items, ok := doc.([]any)
		if !ok || len(items) != t.Array.Size {
			return Value{}, fmt.Errorf("from_json: expected array of length %d", t.Array.Size)
		}
		elems := make([]Value, len(items))
		for i, item := range items {
			v, err := FromJSON(t.Array.Element, item)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Array(t.Array.Element, elems)
	case types.TagTuple:
		items, ok := doc.([]any)
		if !ok || len(items) != len(t.Tuple) {
			return Value{}, fmt.Errorf("from_json: expected tuple of length %d", len(t.Tuple))
		}
		elems := make([]Value, len(items))
		for i, item := range items {
			v, err := FromJSON(t.Tuple[i], item)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Tuple(elems), nil
	case types.TagStruct:
		obj, ok := doc.(map[string]any)
		if !ok {
			return Value{}, fmt.Errorf("from_json: expected object for struct %s", t.Struct.Name)
		}
		fields := make([]FieldEntry, len(t.Struct.Fields))
		for i, f := range t.Struct.Fields {
			raw, present := obj[f.Name]
			if !present {
				return Value{}, fmt.Errorf("from_json: missing field %q", f.Name)
			}
			v, err := FromJSON(f.Type, raw)
			if err != nil {
				return Value{}, err
			}
			fields[i] = FieldEntry{Name: f.Name, Value: v}
		}
		return Struct(t.Struct.Name, fields), nil
	default:
		return Value{}, fmt.Errorf("from_json: unsupported type %s", t)
	}
}
