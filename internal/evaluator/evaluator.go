// Package evaluator is the RPN operand-stack evaluator (spec §4.4, §9,
// component H): it walks a flat ast.Program, executing each Statement and,
// for every Expression, pushing and popping element.Elements off an
// explicit stack in exactly the order its Tokens were flattened — never by
// recursing over a parsed tree. This mirrors spec §9's mandate directly and
// is the one place every other component (scope, element, place,
// constraintsystem) gets wired together.
//
// Grounded on original_source/interpreter/src/interpreter.rs almost
// line-for-line for control flow: statement dispatch, get_binary_operands
// popping right-then-left, and next_temp_namespace's loop-index-extended
// naming scheme.
package evaluator

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/circuitlang/circuitc/internal/ast"
	"github.com/circuitlang/circuitc/internal/bignum"
	"github.com/circuitlang/circuitc/internal/cerrors"
	"github.com/circuitlang/circuitc/internal/constraintsystem"
	"github.com/circuitlang/circuitc/internal/debugsink"
	"github.com/circuitlang/circuitc/internal/element"
	"github.com/circuitlang/circuitc/internal/place"
	"github.com/circuitlang/circuitc/internal/scope"
	"github.com/circuitlang/circuitc/internal/srcloc"
	"github.com/circuitlang/circuitc/internal/types"
	"github.com/circuitlang/circuitc/internal/value"
)

// Evaluator drives one program run against one constraint system. Exactly
// one Evaluator exists per run (spec §5), so it carries its own
// correlation ID for log/trace lines rather than relying on a global.
type Evaluator struct {
	ID     uuid.UUID
	Scope  *scope.Arena
	System constraintsystem.System
	Debug  debugsink.Sink

	typeEnv map[string]types.Variant

	tempCounter int
	loopIndices []int64
}

// New constructs an evaluator over a fresh root scope. warn receives
// shadowing diagnostics (spec §4.5); pass cerrors.DiscardSink{} to ignore
// them.
func New(sys constraintsystem.System, warn cerrors.WarningSink, dbg debugsink.Sink) *Evaluator {
	return &Evaluator{
		ID:      uuid.New(),
		Scope:   scope.New(warn),
		System:  sys,
		Debug:   dbg,
		typeEnv: map[string]types.Variant{},
	}
}

func (e *Evaluator) resolver() types.Resolver {
	return func(name string) (types.Variant, bool) {
		if t, ok := e.typeEnv[name]; ok {
			return t, true
		}
		return e.Scope.ResolveType(name)
	}
}

// NextTempNamespace returns the next deterministic temp identifier, in the
// form temp_{N:06}, extended with the current loop nesting's index values
// when this call happens inside one or more `for` bodies (spec §6's
// observable namespace contract: "temp_{N:06}", loop-extended).
func (e *Evaluator) NextTempNamespace() string {
	base := fmt.Sprintf("temp_%06d", e.tempCounter)
	e.tempCounter++
	if len(e.loopIndices) == 0 {
		return base
	}
	parts := make([]string, len(e.loopIndices))
	for i, v := range e.loopIndices {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return base + "_" + strings.Join(parts, "_")
}

// ExecuteProgram declares every public input and private witness binding
// into the root scope and the constraint system (spec §6's
// `Program { inputs, witnesses, statements }`), then runs every top-level
// statement in order.
func (e *Evaluator) ExecuteProgram(p ast.Program) *cerrors.Error {
	for _, b := range p.Inputs {
		if err := e.declareBinding(b, true); err != nil {
			return err
		}
	}
	for _, b := range p.Witnesses {
		if err := e.declareBinding(b, false); err != nil {
			return err
		}
	}
	for _, stmt := range p.Statements {
		if err := e.ExecuteStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// declareBinding evaluates one Binding's value, checks it against its
// declared type, allocates it into the constraint system as an input or a
// witness, and declares it into the root scope under its name.
func (e *Evaluator) declareBinding(b ast.Binding, isInput bool) *cerrors.Error {
	el, err := e.EvalExpression(b.Value)
	if err != nil {
		return err
	}
	v, err := el.AsValue()
	if err != nil {
		return err
	}
	declared, ok := e.lookupTypeName(b.TypeName)
	if !ok {
		return cerrors.New(cerrors.KindLetInvalidType, b.Location,
			"unknown type `"+b.TypeName+"` in binding", map[string]any{"type": b.TypeName})
	}
	if !types.Equal(v.Type, declared, e.resolver()) {
		return cerrors.New(cerrors.KindLetInvalidType, b.Location,
			"binding value does not match declared type", map[string]any{
				"declared": declared.String(), "found": v.Type.String(),
			})
	}
	if isInput {
		if _, allocErr := e.System.AllocateInput(b.Name, v); allocErr != nil {
			return allocErr.WithLocation(b.Location)
		}
		return e.Scope.DeclareInput(b.Location, b.Name, v)
	}
	if _, allocErr := e.System.AllocateWitness(b.Name, v); allocErr != nil {
		return allocErr.WithLocation(b.Location)
	}
	return e.Scope.DeclareWitness(b.Location, b.Name, v)
}

// ExecuteStatement dispatches one statement (spec §4.4).
func (e *Evaluator) ExecuteStatement(s ast.Statement) *cerrors.Error {
	switch s.Kind {
	case ast.StmtLet:
		return e.execLet(s)
	case ast.StmtRequire:
		return e.execRequire(s)
	case ast.StmtFor:
		return e.execFor(s)
	case ast.StmtTypeDecl:
		return e.execTypeDecl(s)
	case ast.StmtStructDecl:
		return e.execStructDecl(s)
	case ast.StmtEnumDecl:
		return e.execEnumDecl(s)
	case ast.StmtDebug:
		return e.execDebug(s)
	case ast.StmtExpression:
		_, err := e.EvalExpression(s.Expr)
		return err
	case ast.StmtBlock:
		_, err := e.execBlock(s.Body)
		return err
	case ast.StmtConditional:
		_, err := e.execConditional(s)
		return err
	case ast.StmtMatch:
		_, err := e.execMatch(s)
		return err
	default:
		return cerrors.New(cerrors.KindLiteralCannotBeEvaluated, s.Location,
			"unknown statement kind", nil)
	}
}

// execBlock runs body in a fresh child scope and returns the value of its
// trailing expression statement, or Unit if body is empty or its last
// statement isn't an expression (spec §4.4: "blocks return their trailing
// expression's value or Unit").
func (e *Evaluator) execBlock(body []ast.Statement) (value.Value, *cerrors.Error) {
	e.Scope.PushChild()
	defer e.Scope.Pop()
	result := value.Unit()
	for i, stmt := range body {
		if i == len(body)-1 && stmt.Kind == ast.StmtExpression {
			el, err := e.EvalExpression(stmt.Expr)
			if err != nil {
				return value.Value{}, err
			}
			v, err := el.AsValue()
			if err != nil {
				return value.Value{}, err
			}
			result = v
			continue
		}
		if err := e.ExecuteStatement(stmt); err != nil {
			return value.Value{}, err
		}
	}
	return result, nil
}

// inferBlockValue type-checks an untaken branch's trailing value without
// polluting the real constraint trace or debug output: it runs body
// against a scratch TestSystem and a discarding debug sink, swapped in for
// the duration of the call, so a branch that would allocate gadgets or
// print debug lines if actually taken leaves no trace on this run.
func (e *Evaluator) inferBlockValue(body []ast.Statement) (value.Value, *cerrors.Error) {
	savedSystem, savedDebug := e.System, e.Debug
	e.System = constraintsystem.NewTestSystem()
	e.Debug = debugsink.Discard{}
	defer func() { e.System, e.Debug = savedSystem, savedDebug }()
	return e.execBlock(body)
}

// execLet implements `let`/`let mut` with spec's implicit-casting
// convenience: if LetType names an integer/field kind and the evaluated
// value is itself an integer of a different kind, it is cast rather than
// rejected outright (Open Question decision, see DESIGN.md).
func (e *Evaluator) execLet(s ast.Statement) *cerrors.Error {
	el, err := e.EvalExpression(s.LetValue)
	if err != nil {
		return err
	}
	v, err := el.AsValue()
	if err != nil {
		return err
	}
	if s.LetType != "" {
		declared, ok := e.lookupTypeName(s.LetType)
		if !ok {
			return cerrors.New(cerrors.KindLetInvalidType, s.Location,
				"unknown type `"+s.LetType+"` in `let`", map[string]any{"type": s.LetType})
		}
		if v.Type.Tag == types.TagInt && declared.Tag == types.TagInt && !v.Type.Int.Equal(declared.Int) {
			casted, castErr := bignum.Cast(v.Int, declared.Int)
			if castErr != nil {
				return castErr.WithLocation(s.Location)
			}
			v = value.Integer(casted)
		} else if !types.Equal(v.Type, declared, e.resolver()) {
			return cerrors.New(cerrors.KindLetInvalidType, s.Location,
				"value does not match declared type", map[string]any{
					"declared": declared.String(), "found": v.Type.String(),
				})
		}
	}
	return e.Scope.DeclareVariable(s.Location, s.LetName, v, s.LetMutable)
}

func (e *Evaluator) execRequire(s ast.Statement) *cerrors.Error {
	el, err := e.EvalExpression(s.Expr)
	if err != nil {
		return err
	}
	v, err := el.AsValue()
	if err != nil {
		return err
	}
	if v.Type.Tag != types.TagBool {
		return cerrors.New(cerrors.KindRequireExpectedBoolean, s.Location,
			"`require` expects a boolean condition, found "+v.Type.String(), nil)
	}
	if !v.Bool {
		return cerrors.New(cerrors.KindRequireFailed, s.Location, "require failed", nil)
	}
	pop := e.System.Namespace(e.NextTempNamespace())
	defer pop()
	truth, allocErr := e.System.AllocateBoolean("require", true)
	if allocErr != nil {
		return allocErr.WithLocation(s.Location)
	}
	observed, allocErr := e.System.AllocateBoolean("require_observed", v.Bool)
	if allocErr != nil {
		return allocErr.WithLocation(s.Location)
	}
	if assertErr := e.System.AssertEqual(truth, observed); assertErr != nil {
		return assertErr.WithLocation(s.Location)
	}
	return nil
}

func (e *Evaluator) execFor(s ast.Statement) *cerrors.Error {
	startEl, err := e.EvalExpression(s.ForStart)
	if err != nil {
		return err
	}
	endEl, err := e.EvalExpression(s.ForEnd)
	if err != nil {
		return err
	}
	rng, rerr := rangeOf(s.Location, startEl, endEl, s.ForInclusive)
	if rerr != nil {
		return rerr
	}
	start := rng.Start.Semantic().Int64()
	end := rng.End.Semantic().Int64()
	if s.ForInclusive {
		end++
	}
	kind := rng.Start.Kind
	for i := start; i < end; i++ {
		e.loopIndices = append(e.loopIndices, i)
		e.Scope.PushChild()
		loopVal, ferr := bignum.FromSemantic(big.NewInt(i), kind)
		if ferr != nil {
			e.Scope.Pop()
			e.loopIndices = e.loopIndices[:len(e.loopIndices)-1]
			return ferr.WithLocation(s.Location)
		}
		if derr := e.Scope.DeclareVariable(s.Location, s.ForVariable, value.Integer(loopVal), false); derr != nil {
			e.Scope.Pop()
			e.loopIndices = e.loopIndices[:len(e.loopIndices)-1]
			return derr
		}
		for _, stmt := range s.ForBody {
			if serr := e.ExecuteStatement(stmt); serr != nil {
				e.Scope.Pop()
				e.loopIndices = e.loopIndices[:len(e.loopIndices)-1]
				return serr
			}
		}
		e.Scope.Pop()
		e.loopIndices = e.loopIndices[:len(e.loopIndices)-1]
	}
	return nil
}

func rangeOf(loc srcloc.Location, startEl, endEl element.Element, inclusive bool) (element.Range, *cerrors.Error) {
	if inclusive {
		return element.RangeInclusive(loc, startEl, endEl)
	}
	return element.RangeExclusive(loc, startEl, endEl)
}

func (e *Evaluator) execTypeDecl(s ast.Statement) *cerrors.Error {
	if err := e.Scope.BeginResolution(s.Location, s.TypeDeclName); err != nil {
		return err
	}
	defer e.Scope.EndResolution(s.TypeDeclName)
	el, err := e.EvalExpression(s.TypeDeclExpr)
	if err != nil {
		return err
	}
	if el.Kind != element.KindType {
		return cerrors.New(cerrors.KindLetInvalidType, s.Location,
			"`type` declaration must evaluate to a type", nil)
	}
	e.typeEnv[s.TypeDeclName] = el.Type
	return e.Scope.DeclareType(s.Location, s.TypeDeclName, el.Type)
}

func (e *Evaluator) execStructDecl(s ast.Statement) *cerrors.Error {
	fields := make([]types.Field, len(s.FieldNames))
	for i, name := range s.FieldNames {
		t, ok := e.lookupTypeName(s.FieldTypes[i])
		if !ok {
			return cerrors.New(cerrors.KindLetInvalidType, s.Location,
				"unknown field type `"+s.FieldTypes[i]+"`", nil)
		}
		fields[i] = types.Field{Name: name, Type: t}
	}
	t := types.Struct(s.DeclName, fields)
	e.typeEnv[s.DeclName] = t
	return e.Scope.DeclareType(s.Location, s.DeclName, t)
}

func (e *Evaluator) execEnumDecl(s ast.Statement) *cerrors.Error {
	variants := make([]types.EnumVariant, len(s.FieldNames))
	for i, name := range s.FieldNames {
		variants[i] = types.EnumVariant{Name: name, Value: s.EnumValues[i]}
	}
	t := types.Enum(s.DeclName, variants)
	e.typeEnv[s.DeclName] = t
	return e.Scope.DeclareType(s.Location, s.DeclName, t)
}

func (e *Evaluator) execDebug(s ast.Statement) *cerrors.Error {
	el, err := e.EvalExpression(s.Expr)
	if err != nil {
		return err
	}
	v, err := el.AsValue()
	if err != nil {
		return err
	}
	e.Debug.Print(s.Location, v)
	return nil
}

// execConditional evaluates the condition, then both branches must agree
// on their result type (spec §4.4: "both branches must produce values of
// equal type — if they differ, fail ConditionalBranchTypeMismatch"). Only
// the taken branch actually runs against the live constraint system and
// debug sink; the other is evaluated through inferBlockValue purely to
// check its type.
func (e *Evaluator) execConditional(s ast.Statement) (value.Value, *cerrors.Error) {
	el, err := e.EvalExpression(s.Condition)
	if err != nil {
		return value.Value{}, err
	}
	v, err := el.AsValue()
	if err != nil {
		return value.Value{}, err
	}
	if v.Type.Tag != types.TagBool {
		return value.Value{}, cerrors.New(cerrors.KindConditionalExpectedBoolean, s.Location,
			"`if` condition must be boolean, found "+v.Type.String(), nil)
	}

	taken, other := s.Then, s.Else
	if !v.Bool {
		taken, other = s.Else, s.Then
	}
	takenVal, err := e.execBlock(taken)
	if err != nil {
		return value.Value{}, err
	}
	otherVal, err := e.inferBlockValue(other)
	if err != nil {
		return value.Value{}, err
	}
	if !takenVal.HasSameTypeAs(otherVal, e.resolver()) {
		return value.Value{}, cerrors.New(cerrors.KindConditionalBranchTypeMismatch, s.Location,
			"`if` branches must produce the same type", map[string]any{
				"then": takenVal.Type.String(), "else": otherVal.Type.String(),
			})
	}
	return takenVal, nil
}

// execMatch evaluates the scrutinee once, then each arm's pattern in turn;
// the first arm whose pattern equals the scrutinee runs and its value is
// the match's result (spec §4.7). If no arm matches, the result is Unit.
func (e *Evaluator) execMatch(s ast.Statement) (value.Value, *cerrors.Error) {
	scrutinee, err := e.EvalExpression(s.MatchScrutinee)
	if err != nil {
		return value.Value{}, err
	}
	for _, arm := range s.MatchArms {
		pattern, err := e.EvalExpression(arm.Pattern)
		if err != nil {
			return value.Value{}, err
		}
		eq, err := element.Equal(e.System, s.Location, scrutinee, pattern, e.resolver())
		if err != nil {
			return value.Value{}, err
		}
		matched, err := eq.AsValue()
		if err != nil {
			return value.Value{}, err
		}
		if matched.Bool {
			return e.execBlock(arm.Body)
		}
	}
	return value.Unit(), nil
}

func (e *Evaluator) lookupTypeName(name string) (types.Variant, bool) {
	if t, ok := primitiveType(name); ok {
		return t, true
	}
	if t, ok := e.typeEnv[name]; ok {
		return t, true
	}
	return e.Scope.ResolveType(name)
}

