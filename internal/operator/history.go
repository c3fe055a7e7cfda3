package operator

// DefaultHistorySize is the number of registered operators kept for redo.
const DefaultHistorySize = 32

// History is the redo register: finished instances in completion order.
// Only types with FlagRegister count against the cap; once the cap is
// exceeded every older entry is evicted.
type History struct {
	max int
	ops []*Operator
}

// NewHistory creates a register keeping max registered operators.
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistorySize
	}
	return &History{max: max}
}

// SetMax changes the cap. It applies on the next Add.
func (h *History) SetMax(max int) {
	if max > 0 {
		h.max = max
	}
}

// Add appends op and returns the instances evicted to honor the cap.
func (h *History) Add(op *Operator) []*Operator {
	h.ops = append(h.ops, op)

	count := 0
	cut := -1
	for i := len(h.ops) - 1; i >= 0; i-- {
		if h.ops[i].Type.Flag&FlagRegister != 0 {
			count++
		}
		if count > h.max {
			cut = i
			break
		}
	}
	if cut < 0 {
		return nil
	}
	evicted := make([]*Operator, cut+1)
	copy(evicted, h.ops[:cut+1])
	h.ops = append([]*Operator(nil), h.ops[cut+1:]...)
	return evicted
}

// Remove drops op from the register.
func (h *History) Remove(op *Operator) bool {
	for i, cur := range h.ops {
		if cur == op {
			h.ops = append(h.ops[:i], h.ops[i+1:]...)
			return true
		}
	}
	return false
}

// Last returns the most recently registered instance.
func (h *History) Last() *Operator {
	if len(h.ops) == 0 {
		return nil
	}
	return h.ops[len(h.ops)-1]
}

// LastRedo returns the newest instance that is both registered and
// undoable, the one a redo panel would adjust.
func (h *History) LastRedo() *Operator {
	for i := len(h.ops) - 1; i >= 0; i-- {
		if h.ops[i].Type.Is(FlagRegister | FlagUndo) {
			return h.ops[i]
		}
	}
	return nil
}

// Ops returns the register in completion order.
func (h *History) Ops() []*Operator {
	out := make([]*Operator, len(h.ops))
	copy(out, h.ops)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.ops)
}

// Clear empties the register.
func (h *History) Clear() {
	h.ops = nil
}
