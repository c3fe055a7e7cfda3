package operator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/wmcore/internal/report"
)

// Registry holds operator types and the properties of their last
// successful run.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Type
	last  map[string]Properties
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]*Type),
		last:  make(map[string]Properties),
	}
}

// Register adds a type.
func (r *Registry) Register(t *Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[t.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateType, t.ID)
	}
	r.types[t.ID] = t
	return nil
}

// MustRegister adds a type and panics on error. Meant for built-in types
// registered at startup.
func (r *Registry) MustRegister(types ...*Type) {
	for _, t := range types {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
}

// Unregister removes a type and its remembered properties.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.types, id)
	delete(r.last, id)
}

// Find looks a type up by ID.
func (r *Registry) Find(id string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[id]
	return t, ok
}

// Types returns all registered types sorted by ID.
func (r *Registry) Types() []*Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Type, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Poll reports whether t can run in ctx. A macro polls every child type
// first.
func (r *Registry) Poll(ctx Context, t *Type) bool {
	for _, step := range t.Steps {
		child, ok := r.Find(step.TypeID)
		if !ok || !r.Poll(ctx, child) {
			return false
		}
	}
	if t.HasPoll() {
		return t.Poll(ctx)
	}
	return true
}

// Create makes a new instance of t. A nil reports list gets a fresh one
// owned by the instance. Macro children are created from the macro steps;
// a Properties value stored under a child's type ID overrides that step's
// properties.
func (r *Registry) Create(t *Type, props Properties, reports *report.List) (*Operator, error) {
	op := newOperator(t, props, reports)
	for _, step := range t.Steps {
		ct, ok := r.Find(step.TypeID)
		if !ok {
			return nil, fmt.Errorf("%w: %s (macro %s)", ErrUnknownType, step.TypeID, t.ID)
		}
		childProps := step.Props.Clone()
		if sub, ok := props[ct.ID].(Properties); ok {
			for k, v := range sub {
				childProps[k] = v
			}
			delete(op.Props, ct.ID)
		}
		child := newOperator(ct, childProps, nil)
		child.Parent = op
		op.Macro = append(op.Macro, child)
	}
	return op, nil
}

// StoreLast remembers op's properties for the next invocation of its type.
// Macro children are stored as nested bags under their type IDs.
func (r *Registry) StoreLast(op *Operator) {
	stored := saveable(op.Type, op.Props)
	for _, child := range op.Macro {
		stored[child.Type.ID] = saveable(child.Type, child.Props)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.last[op.Type.ID] = stored
}

// InitFromLast fills properties op does not set from the last stored run.
func (r *Registry) InitFromLast(op *Operator) bool {
	r.mu.RLock()
	last, ok := r.last[op.Type.ID]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	changed := fillUnset(op, last)
	for _, child := range op.Macro {
		if sub, ok := last[child.Type.ID].(Properties); ok {
			if fillUnset(child, sub) {
				changed = true
			}
		}
	}
	return changed
}

// LastProperties returns a copy of the stored properties of a type.
func (r *Registry) LastProperties(id string) (Properties, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.last[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

func saveable(t *Type, props Properties) Properties {
	out := make(Properties, len(props))
	for k, v := range props {
		if def, ok := t.Prop(k); ok && def.SkipSave {
			continue
		}
		out[k] = v
	}
	return out
}

func fillUnset(op *Operator, from Properties) bool {
	changed := false
	for k, v := range from {
		if _, nested := v.(Properties); nested {
			continue
		}
		if def, ok := op.Type.Prop(k); ok && def.SkipSave {
			continue
		}
		if !op.Props.IsSet(k) {
			op.Props[k] = v
			changed = true
		}
	}
	return changed
}
