package evaluator

import (
	"math/big"

	"github.com/circuitlang/circuitc/internal/ast"
	"github.com/circuitlang/circuitc/internal/bignum"
	"github.com/circuitlang/circuitc/internal/cerrors"
	"github.com/circuitlang/circuitc/internal/element"
	"github.com/circuitlang/circuitc/internal/place"
	"github.com/circuitlang/circuitc/internal/scope"
	"github.com/circuitlang/circuitc/internal/srcloc"
	"github.com/circuitlang/circuitc/internal/types"
	"github.com/circuitlang/circuitc/internal/value"
)

// EvalExpression drives the operand stack over expr.Tokens in order,
// consuming exactly as many elements as each operator's arity requires —
// the evaluator never looks ahead or recurses into sub-expressions,
// because the token stream is already in postfix order (spec §9).
func (e *Evaluator) EvalExpression(expr ast.Expression) (element.Element, *cerrors.Error) {
	var stack []element.Element
	push := func(el element.Element) { stack = append(stack, el) }
	var lastLoc srcloc.Location

	for _, tok := range expr.Tokens {
		lastLoc = tok.Location
		switch tok.Kind {
		case ast.TokenPush:
			el, err := e.evalLiteral(tok)
			if err != nil {
				return element.Element{}, err
			}
			push(el)

		case ast.TokenLoad:
			el, err := e.evalLoad(tok)
			if err != nil {
				return element.Element{}, err
			}
			push(el)

		case ast.TokenType:
			t, ok := e.lookupTypeName(tok.TypeName)
			if !ok {
				return element.Element{}, cerrors.New(cerrors.KindLetInvalidType, tok.Location,
					"unknown type `"+tok.TypeName+"`", map[string]any{"type": tok.TypeName})
			}
			push(element.FromType(tok.Location, t))

		case ast.TokenPath:
			push(element.FromPath(tok.Location, []string{tok.Identifier}))

		case ast.TokenOperator:
			result, err := e.applyOperator(tok, &stack)
			if err != nil {
				return element.Element{}, err
			}
			push(result)

		default:
			return element.Element{}, cerrors.New(cerrors.KindLiteralCannotBeEvaluated, tok.Location,
				"unknown token kind in expression", nil)
		}
	}

	if len(stack) != 1 {
		return element.Element{}, cerrors.New(cerrors.KindLiteralCannotBeEvaluated, lastLoc,
			"expression did not reduce to exactly one value", map[string]any{"remaining": len(stack)})
	}
	return stack[0], nil
}

func (e *Evaluator) evalLiteral(tok ast.Token) (element.Element, *cerrors.Error) {
	if tok.LiteralInt == "" {
		return element.FromValue(tok.Location, value.Bool(tok.LiteralBool)), nil
	}
	semantic, ok := new(big.Int).SetString(tok.LiteralInt, 10)
	if !ok {
		return element.Element{}, cerrors.New(cerrors.KindLiteralCannotBeEvaluated, tok.Location,
			"invalid integer literal `"+tok.LiteralInt+"`", nil)
	}
	var kind bignum.Kind
	switch {
	case tok.IsField:
		kind = bignum.Field
	case tok.BitLength == 0:
		inferred, err := bignum.InferMinimalBitLength([]*big.Int{semantic}, tok.Signed)
		if err != nil {
			return element.Element{}, err.WithLocation(tok.Location)
		}
		kind = bignum.Kind{Signed: tok.Signed || semantic.Sign() < 0, BitLength: inferred}
	case tok.Signed:
		kind = bignum.Signed(tok.BitLength)
	default:
		kind = bignum.Unsigned(tok.BitLength)
	}
	i, err := bignum.FromSemantic(semantic, kind)
	if err != nil {
		return element.Element{}, err.WithLocation(tok.Location)
	}
	return element.FromValue(tok.Location, value.Integer(i)), nil
}

func (e *Evaluator) evalLoad(tok ast.Token) (element.Element, *cerrors.Error) {
	item, err := e.Scope.GetItem(tok.Location, tok.Identifier)
	if err != nil {
		return element.Element{}, err
	}
	if item.Kind == scope.ItemType {
		return element.FromType(tok.Location, item.Type), nil
	}
	p := place.New(tok.Identifier, item.Value, item.IsMutable)
	return element.FromPlace(tok.Location, p), nil
}

// applyOperator pops as many operands off *stack as tok.Operator needs and
// returns the resulting element, writing through to scope for `=`.
func (e *Evaluator) applyOperator(tok ast.Token, stack *[]element.Element) (element.Element, *cerrors.Error) {
	pop1 := func() element.Element {
		s := *stack
		n := len(s) - 1
		top := s[n]
		*stack = s[:n]
		return top
	}
	// Binary operators pop right-then-left (original_source's
	// get_binary_operands convention), then evaluate left-op-right.
	popBinary := func() (left, right element.Element) {
		right = pop1()
		left = pop1()
		return
	}

	loc := tok.Location
	switch tok.Operator {
	case ast.OpAssign:
		left, right := popBinary()
		p, v, err := element.Assign(loc, left, right)
		if err != nil {
			return element.Element{}, err
		}
		root, rerr := e.Scope.GetValue(loc, p.Identifier)
		if rerr != nil {
			return element.Element{}, rerr
		}
		updatedRoot, perr := place.Assign(root, p, v)
		if perr != nil {
			return element.Element{}, perr.WithLocation(loc)
		}
		if uerr := e.Scope.UpdateValue(loc, p.Identifier, updatedRoot); uerr != nil {
			return element.Element{}, uerr
		}
		return element.FromValue(loc, value.Unit()), nil

	case ast.OpAdd:
		l, r := popBinary()
		return element.Add(e.System, loc, l, r)
	case ast.OpSub:
		l, r := popBinary()
		return element.Sub(e.System, loc, l, r)
	case ast.OpMul:
		l, r := popBinary()
		return element.Mul(e.System, loc, l, r)
	case ast.OpDiv:
		l, r := popBinary()
		return element.Div(e.System, loc, l, r)
	case ast.OpRem:
		l, r := popBinary()
		return element.Rem(e.System, loc, l, r)
	case ast.OpNeg:
		return element.Neg(e.System, loc, pop1())
	case ast.OpNot:
		a := pop1()
		v, err := a.AsValue()
		if err != nil {
			return element.Element{}, err
		}
		if v.Type.Tag == types.TagBool {
			return element.LogicalNot(e.System, loc, a)
		}
		return element.Not(e.System, loc, a)
	case ast.OpBitNot:
		return element.Not(e.System, loc, pop1())
	case ast.OpAnd:
		l, r := popBinary()
		return element.And(e.System, loc, l, r)
	case ast.OpOr:
		l, r := popBinary()
		return element.Or(e.System, loc, l, r)
	case ast.OpXor:
		l, r := popBinary()
		return element.Xor(e.System, loc, l, r)
	case ast.OpEqual:
		l, r := popBinary()
		return element.Equal(e.System, loc, l, r, e.resolver())
	case ast.OpNotEqual:
		l, r := popBinary()
		return element.NotEqual(e.System, loc, l, r, e.resolver())
	case ast.OpLess:
		l, r := popBinary()
		return element.Less(e.System, loc, l, r)
	case ast.OpLessEqual:
		l, r := popBinary()
		return element.LessEqual(e.System, loc, l, r)
	case ast.OpGreater:
		l, r := popBinary()
		return element.Greater(e.System, loc, l, r)
	case ast.OpGreaterEqual:
		l, r := popBinary()
		return element.GreaterEqual(e.System, loc, l, r)
	case ast.OpCast:
		l, r := popBinary()
		return element.Cast(loc, l, r)
	case ast.OpIndex:
		l, r := popBinary()
		return element.Index(loc, l, r)
	case ast.OpDot:
		a := pop1()
		return element.Dot(loc, a, tok.Member)
	case ast.OpPath:
		l, r := popBinary()
		joined, err := element.Path(loc, l, r)
		if err != nil {
			return element.Element{}, err
		}
		return e.resolvePath(loc, joined), nil
	case ast.OpArrayLiteral:
		n := tok.Arity
		s := *stack
		if len(s) < n {
			return element.Element{}, cerrors.New(cerrors.KindFirstOperandExpectedArray, loc,
				"not enough operands for array literal", map[string]any{"arity": n, "available": len(s)})
		}
		items := s[len(s)-n:]
		*stack = s[:len(s)-n]
		elems := make([]value.Value, n)
		var elemType types.Variant
		for i, el := range items {
			v, verr := el.AsValue()
			if verr != nil {
				return element.Element{}, verr
			}
			elems[i] = v
			if i == 0 {
				elemType = v.Type
			}
		}
		arr, aerr := value.Array(elemType, elems)
		if aerr != nil {
			return element.Element{}, cerrors.Wrap(cerrors.KindFirstOperandExpectedArray, loc, aerr.Error(), aerr)
		}
		return element.FromValue(loc, arr), nil

	case ast.OpTupleLiteral:
		items, perr := popN(stack, tok.Arity, loc)
		if perr != nil {
			return element.Element{}, perr
		}
		elems := make([]value.Value, len(items))
		for i, el := range items {
			v, verr := el.AsValue()
			if verr != nil {
				return element.Element{}, verr
			}
			elems[i] = v
		}
		return element.FromValue(loc, value.Tuple(elems)), nil

	case ast.OpStructLiteral:
		items, perr := popN(stack, tok.Arity, loc)
		if perr != nil {
			return element.Element{}, perr
		}
		fields := make([]value.FieldEntry, len(items))
		for i, el := range items {
			v, verr := el.AsValue()
			if verr != nil {
				return element.Element{}, verr
			}
			fields[i] = value.FieldEntry{Name: tok.FieldNames[i], Value: v}
		}
		return element.FromValue(loc, value.Struct(tok.StructName, fields)), nil

	default:
		return element.Element{}, cerrors.New(cerrors.KindLiteralCannotBeEvaluated, loc,
			"operator not supported in a general expression context: "+string(tok.Operator), nil)
	}
}

// popN pops the top n elements off *stack, in push order, for the arity
// literal operators (OpArrayLiteral/OpTupleLiteral/OpStructLiteral).
func popN(stack *[]element.Element, n int, loc srcloc.Location) ([]element.Element, *cerrors.Error) {
	s := *stack
	if len(s) < n {
		return nil, cerrors.New(cerrors.KindLiteralCannotBeEvaluated, loc,
			"not enough operands for literal", map[string]any{"arity": n, "available": len(s)})
	}
	items := append([]element.Element{}, s[len(s)-n:]...)
	*stack = s[:len(s)-n]
	return items, nil
}

// resolvePath collapses a two-segment Type::Variant path into the
// enumeration's constant Value (spec §4.3 `::`'s enum-member-resolution
// role); any path that doesn't name a declared enum variant is returned
// unresolved, for a module-member lookup a future embedder might add.
func (e *Evaluator) resolvePath(loc srcloc.Location, p element.Element) element.Element {
	if p.Kind != element.KindPath || len(p.Path) != 2 {
		return p
	}
	t, ok := e.lookupTypeName(p.Path[0])
	if !ok || t.Tag != types.TagEnum {
		return p
	}
	v, err := value.Enum(t, p.Path[1])
	if err != nil {
		return p
	}
	return element.FromValue(loc, v)
}

// primitiveType parses the inline spellings the surface syntax would use
// for scalar types ("bool", "field", "u8".."u248", "i8".."i248"), the only
// types nameable without going through a `type`/`struct`/`enum`
// declaration first.
func primitiveType(name string) (types.Variant, bool) {
	switch name {
	case "bool":
		return types.Bool(), true
	case "field":
		return types.FieldType(), true
	}
	if len(name) < 2 {
		return types.Variant{}, false
	}
	signed := name[0] == 'i'
	if !signed && name[0] != 'u' {
		return types.Variant{}, false
	}
	bits := 0
	for _, r := range name[1:] {
		if r < '0' || r > '9' {
			return types.Variant{}, false
		}
		bits = bits*10 + int(r-'0')
	}
	if bits < 1 || bits > bignum.MaxBitLength {
		return types.Variant{}, false
	}
	return types.Int(bignum.Kind{Signed: signed, BitLength: bits}), true
}
