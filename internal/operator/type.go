package operator

import (
	"fmt"
	"strings"

	"github.com/dshills/wmcore/internal/event"
)

// Flag holds operator type capabilities.
type Flag uint16

const (
	// FlagRegister puts finished instances into the redo register.
	FlagRegister Flag = 1 << iota
	// FlagUndo pushes an undo step when an instance finishes.
	FlagUndo
	// FlagBlocking grabs the cursor while the instance runs modal.
	FlagBlocking
	// FlagMacro marks a type built by NewMacro.
	FlagMacro
	// FlagInternal hides the type from search and menus.
	FlagInternal
	// FlagLockBypass allows invocation while the interface is locked.
	FlagLockBypass
	// FlagUndoGrouped coalesces undo steps with the previous one of the
	// same type.
	FlagUndoGrouped
)

// String renders the set flags.
func (f Flag) String() string {
	var parts []string
	names := []struct {
		flag Flag
		name string
	}{
		{FlagRegister, "REGISTER"},
		{FlagUndo, "UNDO"},
		{FlagBlocking, "BLOCKING"},
		{FlagMacro, "MACRO"},
		{FlagInternal, "INTERNAL"},
		{FlagLockBypass, "LOCK_BYPASS"},
		{FlagUndoGrouped, "UNDO_GROUPED"},
	}
	for _, n := range names {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Callback signatures.
type (
	PollFunc   func(ctx Context) bool
	InvokeFunc func(ctx Context, op *Operator, ev *event.Event) Result
	ExecFunc   func(ctx Context, op *Operator) Result
	ModalFunc  func(ctx Context, op *Operator, ev *event.Event) Result
	CancelFunc func(ctx Context, op *Operator)
	CheckFunc  func(ctx Context, op *Operator) bool
)

// MacroStep is one child of a macro type.
type MacroStep struct {
	TypeID string
	Props  Properties
}

// Type describes an operator. Every callback is optional.
type Type struct {
	// ID is the unique "group.name" identifier key-maps bind to.
	ID          string
	Name        string
	Description string
	Flag        Flag
	Props       []PropDef
	// ModalKeymap names the key-map translating events while modal.
	ModalKeymap string

	Poll   PollFunc
	Invoke InvokeFunc
	Exec   ExecFunc
	Modal  ModalFunc
	Cancel CancelFunc
	Check  CheckFunc

	// Steps lists the children of a macro type.
	Steps []MacroStep
}

func (t *Type) HasPoll() bool   { return t.Poll != nil }
func (t *Type) HasInvoke() bool { return t.Invoke != nil }
func (t *Type) HasExec() bool   { return t.Exec != nil }
func (t *Type) HasModal() bool  { return t.Modal != nil }
func (t *Type) HasCancel() bool { return t.Cancel != nil }
func (t *Type) HasCheck() bool  { return t.Check != nil }

// IsMacro reports whether t was built by NewMacro.
func (t *Type) IsMacro() bool { return t.Flag&FlagMacro != 0 }

// Is reports whether every flag in f is set on t.
func (t *Type) Is(f Flag) bool { return t.Flag&f == f }

// Prop returns the definition of a property.
func (t *Type) Prop(name string) (PropDef, bool) {
	for _, p := range t.Props {
		if p.Name == name {
			return p, true
		}
	}
	return PropDef{}, false
}

// Validate checks that t is well formed.
func (t *Type) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: nil type", ErrInvalidType)
	}
	group, name, ok := strings.Cut(t.ID, ".")
	if !ok || group == "" || name == "" || strings.ContainsAny(t.ID, " \t") {
		return fmt.Errorf("%w: id %q must look like group.name", ErrInvalidType, t.ID)
	}
	if t.IsMacro() && len(t.Steps) == 0 {
		return fmt.Errorf("%w: macro %q has no steps", ErrInvalidType, t.ID)
	}
	seen := make(map[string]bool, len(t.Props))
	for _, p := range t.Props {
		if p.Name == "" || seen[p.Name] {
			return fmt.Errorf("%w: %q has empty or duplicate property %q", ErrInvalidType, t.ID, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// NewMacro returns a macro type running steps in order.
func NewMacro(id, name string, flag Flag, steps ...MacroStep) *Type {
	return &Type{
		ID:     id,
		Name:   name,
		Flag:   flag | FlagMacro,
		Steps:  steps,
		Invoke: macroInvoke,
		Exec:   macroExec,
		Modal:  macroModal,
		Cancel: macroCancel,
	}
}
