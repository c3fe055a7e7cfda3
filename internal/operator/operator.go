package operator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/wmcore/internal/report"
)

// InstanceFlag holds per-instance state.
type InstanceFlag uint8

const (
	// IsInvoke is set when the instance was started with an event.
	IsInvoke InstanceFlag = 1 << iota
	// IsRepeat is set while the instance is replayed by repeat/redo.
	IsRepeat
	// IsRepeatLast is set while the instance is replayed by repeat-last.
	IsRepeatLast
)

// Operator is a live operator instance.
type Operator struct {
	ID      uuid.UUID
	Type    *Type
	Props   Properties
	Reports *report.List
	Flag    InstanceFlag

	// CustomData is private state of modal operators.
	CustomData any

	// Macro holds the child instances of a macro, in order.
	Macro []*Operator
	// Parent is the macro a child belongs to.
	Parent *Operator
	// Active is the macro child currently running modal.
	Active *Operator

	macro         *macroData
	callerReports bool
}

func newOperator(t *Type, props Properties, reports *report.List) *Operator {
	op := &Operator{
		ID:      uuid.New(),
		Type:    t,
		Props:   props.Clone(),
		Reports: reports,
	}
	if reports == nil {
		op.Reports = report.NewList()
	} else {
		op.callerReports = true
	}
	return op
}

// CallerOwnsReports reports whether the report list was supplied by the
// caller, which then takes care of showing it.
func (op *Operator) CallerOwnsReports() bool {
	return op.callerReports
}

// Root returns the macro owning op, or op itself.
func (op *Operator) Root() *Operator {
	if op.Parent != nil {
		return op.Parent
	}
	return op
}

// Prop returns the value of a property, falling back to its declared
// default.
func (op *Operator) Prop(name string) (any, bool) {
	if v, ok := op.Props[name]; ok {
		return v, true
	}
	if def, ok := op.Type.Prop(name); ok && def.Default != nil {
		return def.Default, true
	}
	return nil, false
}

// PropString returns a string property or its default.
func (op *Operator) PropString(name string) string {
	v, _ := op.Prop(name)
	s, _ := v.(string)
	return s
}

// PropInt returns an integer property or its default.
func (op *Operator) PropInt(name string) int {
	v, _ := op.Prop(name)
	return Properties{name: v}.GetInt(name, 0)
}

// PropFloat returns a float property or its default.
func (op *Operator) PropFloat(name string) float64 {
	v, _ := op.Prop(name)
	return Properties{name: v}.GetFloat(name, 0)
}

// PropBool returns a boolean property or its default.
func (op *Operator) PropBool(name string) bool {
	v, _ := op.Prop(name)
	b, _ := v.(bool)
	return b
}

// MissingRequired returns the first required property that is not set.
func (op *Operator) MissingRequired() (string, bool) {
	for _, p := range op.Type.Props {
		if p.Required && !op.Props.IsSet(p.Name) {
			return p.Name, true
		}
	}
	return "", false
}

// String renders the instance as a call, e.g. `wm.save(path="a.txt")`.
func (op *Operator) String() string {
	return fmt.Sprintf("%s(%s)", op.Type.ID, op.Props.Format())
}
