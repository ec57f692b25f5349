// Package cerrors is the single owner of the toolchain's error taxonomy
// (spec §7). Every package in the expression engine returns *cerrors.Error
// rather than a bare error, so the variant name stays part of the stable
// API surface and every failure carries a source Location.
package cerrors

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/circuitlang/circuitc/internal/srcloc"
)

// Kind is a stable, documented error variant name (spec §7). It is never
// reformatted or translated; tests and embedders match on it directly.
type Kind string

const (
	// Scope errors.
	KindItemRedeclared     Kind = "ItemRedeclared"
	KindItemUndeclared     Kind = "ItemUndeclared"
	KindItemShadowing      Kind = "ItemShadowing" // warning, never fatal
	KindReferenceLoop      Kind = "ReferenceLoop"
	KindExpectedNamespace  Kind = "ExpectedNamespace"
	KindContractRedeclared Kind = "ContractRedeclared"

	// Element/operator errors.
	KindAssignmentToImmutable                  Kind = "AssignmentToImmutable"
	KindAssignmentFirstOperandExpectedPlace     Kind = "AssignmentFirstOperandExpectedPlace"
	KindAssignmentSecondOperandExpectedEvaluable Kind = "AssignmentSecondOperandExpectedEvaluable"
	KindFirstOperandExpectedEvaluable           Kind = "FirstOperandExpectedEvaluable"
	KindSecondOperandExpectedEvaluable          Kind = "SecondOperandExpectedEvaluable"
	KindExpectedBoolean                        Kind = "ExpectedBoolean"
	KindFirstExpectedPrimitive                  Kind = "FirstExpectedPrimitive"
	KindSecondExpectedPrimitive                 Kind = "SecondExpectedPrimitive"
	KindExpectedInteger                         Kind = "ExpectedInteger"
	KindIndexOperandTypes                       Kind = "IndexOperandTypes"
	KindDotOperandTypes                         Kind = "DotOperandTypes"
	KindPathOperandTypes                        Kind = "PathOperandTypes"
	KindRangeOperand                            Kind = "RangeOperand"
	KindFirstOperandExpectedArray                Kind = "FirstOperandExpectedArray"
	KindFirstOperandExpectedTuple                 Kind = "FirstOperandExpectedTuple"
	KindFirstOperandExpectedStructure              Kind = "FirstOperandExpectedStructure"
	KindFirstOperandExpectedPath                   Kind = "FirstOperandExpectedPath"

	// Type/Integer errors.
	KindTypesMismatch          Kind = "TypesMismatch"
	KindCastingToInvalidType   Kind = "CastingToInvalidType"
	KindOverflow               Kind = "Overflow"
	KindZeroDivision           Kind = "ZeroDivision"
	KindZeroRemainder          Kind = "ZeroRemainder"
	KindForbiddenFieldDivision Kind = "ForbiddenFieldDivision"
	KindForbiddenFieldRemainder Kind = "ForbiddenFieldRemainder"
	KindForbiddenFieldBitwise  Kind = "ForbiddenFieldBitwise"
	KindForbiddenFieldNegation Kind = "ForbiddenFieldNegation"
	KindIntegerTooLarge        Kind = "IntegerTooLarge"

	// Evaluator errors.
	KindRequireFailed                 Kind = "RequireFailed"
	KindRequireExpectedBoolean        Kind = "RequireExpectedBoolean"
	KindConditionalExpectedBoolean    Kind = "ConditionalExpectedBoolean"
	KindConditionalBranchTypeMismatch Kind = "ConditionalBranchTypeMismatch"
	KindLoopWhileExpectedBoolean      Kind = "LoopWhileExpectedBoolean"
	KindLetInvalidType                Kind = "LetInvalidType"
	KindLiteralCannotBeEvaluated      Kind = "LiteralCannotBeEvaluated"
	KindBitlengthInference            Kind = "BitlengthInference"
)

// Error is the single error type returned throughout the expression engine.
type Error struct {
	Kind     Kind
	Location srcloc.Location
	Message  string
	Data     map[string]any
	cause    error
}

// New constructs an Error with no underlying cause.
func New(kind Kind, loc srcloc.Location, message string, data map[string]any) *Error {
	return &Error{Kind: kind, Location: loc, Message: message, Data: data}
}

// Wrap constructs an Error around a lower-level cause (e.g. a math/big
// parse failure), preserving it for errors.Is/errors.As and keeping a
// stack trace via github.com/pkg/errors.
func Wrap(kind Kind, loc srcloc.Location, message string, cause error) *Error {
	return &Error{Kind: kind, Location: loc, Message: message, cause: errors.WithStack(cause)}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s at %s", e.Kind, e.Location)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Location, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Cause returns the root cause of the error, unwrapping pkg/errors frames.
func (e *Error) Cause() error {
	if e.cause == nil {
		return nil
	}
	return errors.Cause(e.cause)
}

// Is reports whether target is a *Error with the same Kind, supporting
// errors.Is(err, cerrors.Of(KindOverflow)).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	if other.Message == "" && other.Data == nil && other.cause == nil {
		return e.Kind == other.Kind
	}
	return e == other
}

// Of builds a sentinel usable with errors.Is to match on Kind alone.
func Of(kind Kind) *Error { return &Error{Kind: kind} }

// WithLocation returns a copy of e stamped with loc. Lower layers (e.g.
// internal/bignum) that have no Location of their own construct errors
// with a zero Location and let their caller attach the real one once an
// AST node is in scope.
func (e *Error) WithLocation(loc srcloc.Location) *Error {
	clone := *e
	clone.Location = loc
	return &clone
}

// WithData returns a copy of e with Data merged in.
func (e *Error) WithData(data map[string]any) *Error {
	clone := *e
	merged := make(map[string]any, len(clone.Data)+len(data))
	for k, v := range clone.Data {
		merged[k] = v
	}
	for k, v := range data {
		merged[k] = v
	}
	clone.Data = merged
	return &clone
}

// Warning is a non-fatal diagnostic (spec §7: "warnings ... do not abort").
type Warning struct {
	Kind     Kind
	Location srcloc.Location
	Message  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at %s: %s", w.Kind, w.Location, w.Message)
}

// WarningSink receives shadowing and other non-fatal diagnostics as they
// occur, mirroring the teacher's DebugHook side-channel style
// (internal/vm/vm.go) instead of returning them alongside the happy path.
type WarningSink interface {
	Warn(Warning)
}

// CollectingSink accumulates warnings in order, for tests and for CLI
// pretty-printing at the end of a run.
type CollectingSink struct {
	Warnings []Warning
}

func (s *CollectingSink) Warn(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// DiscardSink drops every warning; usable when a caller truly does not
// care about shadowing diagnostics.
type DiscardSink struct{}

func (DiscardSink) Warn(Warning) {}
