package scope

import (
	"math/big"
	"testing"

	"github.com/circuitlang/circuitc/internal/bignum"
	"github.com/circuitlang/circuitc/internal/cerrors"
	"github.com/circuitlang/circuitc/internal/srcloc"
	"github.com/circuitlang/circuitc/internal/value"
)

func u8(n int64) value.Value {
	i, err := bignum.FromSemantic(big.NewInt(n), bignum.Unsigned(8))
	if err != nil {
		panic(err)
	}
	return value.Integer(i)
}

func TestDeclareAndGet(t *testing.T) {
	a := New(nil)
	if err := a.DeclareVariable(srcloc.Location{}, "x", u8(1), false); err != nil {
		t.Fatalf("DeclareVariable: %v", err)
	}
	got, err := a.GetValue(srcloc.Location{}, "x")
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if !value.Equal(got, u8(1)) {
		t.Errorf("GetValue = %s, want 1", got)
	}
}

func TestRedeclarationFails(t *testing.T) {
	a := New(nil)
	a.DeclareVariable(srcloc.Location{}, "x", u8(1), false)
	if err := a.DeclareVariable(srcloc.Location{}, "x", u8(2), false); err == nil || err.Kind != cerrors.KindItemRedeclared {
		t.Fatalf("want ItemRedeclared, got %v", err)
	}
}

func TestShadowingWarns(t *testing.T) {
	sink := &cerrors.CollectingSink{}
	a := New(sink)
	a.DeclareVariable(srcloc.Location{}, "x", u8(1), false)
	a.PushChild()
	if err := a.DeclareVariable(srcloc.Location{}, "x", u8(2), false); err != nil {
		t.Fatalf("DeclareVariable: %v", err)
	}
	if len(sink.Warnings) != 1 || sink.Warnings[0].Kind != cerrors.KindItemShadowing {
		t.Fatalf("expected one ItemShadowing warning, got %v", sink.Warnings)
	}
}

func TestPopRestoresOuterBinding(t *testing.T) {
	a := New(nil)
	a.DeclareVariable(srcloc.Location{}, "x", u8(1), false)
	a.PushChild()
	a.DeclareVariable(srcloc.Location{}, "x", u8(2), false)
	a.Pop()
	got, err := a.GetValue(srcloc.Location{}, "x")
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if !value.Equal(got, u8(1)) {
		t.Errorf("GetValue after Pop = %s, want outer binding 1", got)
	}
}

func TestUpdateValueWritesOwningFrame(t *testing.T) {
	a := New(nil)
	a.DeclareVariable(srcloc.Location{}, "c", u8(0), true)
	a.PushChild()
	if err := a.UpdateValue(srcloc.Location{}, "c", u8(5)); err != nil {
		t.Fatalf("UpdateValue: %v", err)
	}
	a.Pop()
	got, err := a.GetValue(srcloc.Location{}, "c")
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if !value.Equal(got, u8(5)) {
		t.Errorf("GetValue after nested UpdateValue = %s, want 5", got)
	}
}

func TestUpdateValueRejectsImmutable(t *testing.T) {
	a := New(nil)
	a.DeclareVariable(srcloc.Location{}, "x", u8(1), false)
	if err := a.UpdateValue(srcloc.Location{}, "x", u8(2)); err == nil || err.Kind != cerrors.KindAssignmentToImmutable {
		t.Fatalf("want AssignmentToImmutable, got %v", err)
	}
}

func TestGetItemUndeclared(t *testing.T) {
	a := New(nil)
	if _, err := a.GetItem(srcloc.Location{}, "ghost"); err == nil || err.Kind != cerrors.KindItemUndeclared {
		t.Fatalf("want ItemUndeclared, got %v", err)
	}
}

func TestBeginResolutionDetectsLoop(t *testing.T) {
	a := New(nil)
	if err := a.BeginResolution(srcloc.Location{}, "A"); err != nil {
		t.Fatalf("BeginResolution: %v", err)
	}
	defer a.EndResolution("A")
	if err := a.BeginResolution(srcloc.Location{}, "A"); err == nil || err.Kind != cerrors.KindReferenceLoop {
		t.Fatalf("want ReferenceLoop, got %v", err)
	}
}

func TestResolveType(t *testing.T) {
	a := New(nil)
	if err := a.DeclareType(srcloc.Location{}, "Age", u8(0).Type); err != nil {
		t.Fatalf("DeclareType: %v", err)
	}
	resolved, ok := a.ResolveType("Age")
	if !ok {
		t.Fatal("ResolveType: not found")
	}
	if resolved.Tag != u8(0).Type.Tag {
		t.Errorf("resolved tag = %v, want %v", resolved.Tag, u8(0).Type.Tag)
	}
}
