// Package scope is the Scope component (spec §3.6, §4.5, component F): a
// stack of lexical frames holding variables, types, and constants, with
// shadowing warnings and reference-loop detection for the lazy resolution
// of type aliases and constant expressions.
//
// Grounded on spec.md §4.5, original_source/zinc-compiler/src/semantic/scope/tests.rs
// (the shadowing/redeclaration matrix this package's tests mirror), and the
// teacher's ScopeFrame{locals map[string]Value; parent *ScopeFrame} chain in
// internal/vm/vm.go — kept as the literal shape of one frame, but frames are
// held in an arena of integer handles rather than raw pointers, so Pop can
// never leave a dangling child reference (spec §9's scope-arena guidance).
package scope

import (
	"golang.org/x/exp/slices"

	"github.com/circuitlang/circuitc/internal/cerrors"
	"github.com/circuitlang/circuitc/internal/srcloc"
	"github.com/circuitlang/circuitc/internal/types"
	"github.com/circuitlang/circuitc/internal/value"
)

// ItemKind discriminates what was declared under a name.
type ItemKind int

const (
	ItemVariable ItemKind = iota
	ItemConstant
	ItemType
	ItemInput
	ItemWitness
)

// Item is one declaration held by a frame.
type Item struct {
	Kind      ItemKind
	Value     value.Value
	Type      types.Variant
	IsMutable bool
}

type frame struct {
	parent  int // -1 for the root frame
	items   map[string]Item
}

// Handle is an opaque reference to a frame, stable across Push/Pop cycles
// (spec §9: "use integer handles into an arena, not Rc<RefCell<>>-style
// shared ownership", avoiding the Rust original's reference-counted cells).
type Handle int

// Arena owns every frame ever created in a program run. Frames are never
// freed individually; Pop only detaches the current handle, it does not
// invalidate the arena slot, so a Place captured from a now-popped frame
// remains safely inspectable (never mutated again, matching spec §3.5's
// immutable-value discipline).
type Arena struct {
	frames  []frame
	current Handle
	active  []string // resolution-in-progress stack, for ReferenceLoop detection
	warn    cerrors.WarningSink
}

// New constructs an arena with a single root frame and the given warning
// sink (use cerrors.DiscardSink{} to ignore shadowing diagnostics).
func New(warn cerrors.WarningSink) *Arena {
	if warn == nil {
		warn = cerrors.DiscardSink{}
	}
	a := &Arena{warn: warn}
	a.frames = append(a.frames, frame{parent: -1, items: map[string]Item{}})
	a.current = 0
	return a
}

// Current returns the handle of the active frame.
func (a *Arena) Current() Handle { return a.current }

// PushChild creates a new frame whose parent is the currently active frame
// and makes it active, returning its handle (spec §4.5 block scoping).
func (a *Arena) PushChild() Handle {
	h := Handle(len(a.frames))
	a.frames = append(a.frames, frame{parent: int(a.current), items: map[string]Item{}})
	a.current = h
	return h
}

// Pop makes the current frame's parent active. Calling Pop on the root
// frame is a no-op (mirrors the teacher's vm.go guard against popping past
// the global frame).
func (a *Arena) Pop() {
	p := a.frames[a.current].parent
	if p < 0 {
		return
	}
	a.current = Handle(p)
}

func (a *Arena) declare(loc srcloc.Location, name string, kind ItemKind, item Item) *cerrors.Error {
	f := &a.frames[a.current]
	if _, redeclared := f.items[name]; redeclared {
		return cerrors.New(cerrors.KindItemRedeclared, loc,
			"`"+name+"` is already declared in this scope", map[string]any{"name": name})
	}
	if _, shadowed := a.lookupFrom(int(a.current), name, true); shadowed {
		a.warn.Warn(cerrors.Warning{Kind: cerrors.KindItemShadowing, Location: loc,
			Message: "`" + name + "` shadows a declaration from an enclosing scope"})
	}
	f.items[name] = item
	return nil
}

// DeclareVariable introduces a `let` binding.
func (a *Arena) DeclareVariable(loc srcloc.Location, name string, v value.Value, mutable bool) *cerrors.Error {
	return a.declare(loc, name, ItemVariable, Item{Kind: ItemVariable, Value: v, Type: v.Type, IsMutable: mutable})
}

// DeclareConstant introduces a `const` binding (never mutable).
func (a *Arena) DeclareConstant(loc srcloc.Location, name string, v value.Value) *cerrors.Error {
	return a.declare(loc, name, ItemConstant, Item{Kind: ItemConstant, Value: v, Type: v.Type})
}

// DeclareType introduces a named `type`/`struct`/`enum` alias.
func (a *Arena) DeclareType(loc srcloc.Location, name string, t types.Variant) *cerrors.Error {
	return a.declare(loc, name, ItemType, Item{Kind: ItemType, Type: t})
}

// DeclareInput introduces a circuit input (always immutable, per spec §3.3).
func (a *Arena) DeclareInput(loc srcloc.Location, name string, v value.Value) *cerrors.Error {
	return a.declare(loc, name, ItemInput, Item{Kind: ItemInput, Value: v, Type: v.Type})
}

// DeclareWitness introduces a witness value (always immutable).
func (a *Arena) DeclareWitness(loc srcloc.Location, name string, v value.Value) *cerrors.Error {
	return a.declare(loc, name, ItemWitness, Item{Kind: ItemWitness, Value: v, Type: v.Type})
}

// GetItem resolves name starting from the current frame up through its
// ancestors (spec §4.5 lexical lookup), failing with ItemUndeclared if no
// frame declares it.
func (a *Arena) GetItem(loc srcloc.Location, name string) (Item, *cerrors.Error) {
	item, ok := a.lookupFrom(int(a.current), name, false)
	if !ok {
		return Item{}, cerrors.New(cerrors.KindItemUndeclared, loc,
			"`"+name+"` is not declared in this scope", map[string]any{"name": name})
	}
	return item, nil
}

func (a *Arena) lookupFrom(h int, name string, skipCurrent bool) (Item, bool) {
	for h >= 0 {
		if !skipCurrent || h != int(a.current) {
			if item, ok := a.frames[h].items[name]; ok {
				return item, true
			}
		}
		skipCurrent = false
		h = a.frames[h].parent
	}
	return Item{}, false
}

// GetValue is a convenience wrapper for the common case of reading a
// variable/constant/input/witness's current value.
func (a *Arena) GetValue(loc srcloc.Location, name string) (value.Value, *cerrors.Error) {
	item, err := a.GetItem(loc, name)
	if err != nil {
		return value.Value{}, err
	}
	return item.Value, nil
}

// UpdateValue overwrites the current value of an already-declared variable,
// searching from the current frame upward and writing into whichever frame
// owns the name (so mutation through a nested block affects the outer
// binding, per spec §4.5).
func (a *Arena) UpdateValue(loc srcloc.Location, name string, v value.Value) *cerrors.Error {
	h := int(a.current)
	for h >= 0 {
		if item, ok := a.frames[h].items[name]; ok {
			if !item.IsMutable {
				return cerrors.New(cerrors.KindAssignmentToImmutable, loc,
					"cannot assign to `"+name+"`: not declared mutable", map[string]any{"name": name})
			}
			item.Value = v
			a.frames[h].items[name] = item
			return nil
		}
		h = a.frames[h].parent
	}
	return cerrors.New(cerrors.KindItemUndeclared, loc,
		"`"+name+"` is not declared in this scope", map[string]any{"name": name})
}

// ResolveType implements types.Resolver against this arena, for
// types.Resolve / types.Equal callers that need to follow Alias chains.
func (a *Arena) ResolveType(name string) (types.Variant, bool) {
	item, ok := a.lookupFrom(int(a.current), name, false)
	if !ok || item.Kind != ItemType {
		return types.Variant{}, false
	}
	return item.Type, true
}

// BeginResolution pushes name onto the in-progress resolution stack,
// failing with ReferenceLoop if it is already being resolved (spec §4.5:
// type aliases and constants may reference each other but not cyclically).
func (a *Arena) BeginResolution(loc srcloc.Location, name string) *cerrors.Error {
	if slices.Contains(a.active, name) {
		return cerrors.New(cerrors.KindReferenceLoop, loc,
			"`"+name+"` is involved in a reference loop", map[string]any{
				"name": name, "chain": append([]string{}, a.active...),
			})
	}
	a.active = append(a.active, name)
	return nil
}

// EndResolution pops name off the in-progress resolution stack. Callers
// must pair every successful BeginResolution with exactly one EndResolution,
// typically via defer.
func (a *Arena) EndResolution(name string) {
	for i := len(a.active) - 1; i >= 0; i-- {
		if a.active[i] == name {
			a.active = append(a.active[:i], a.active[i+1:]...)
			return
		}
	}
}
