package event

import "time"

// CustomData is the payload some event types carry. The set of variants is
// closed: TimerData, DragData, NDOFMotionData, FileSelectData and XRAction.
type CustomData interface {
	customData()
}

// TimerRef identifies the timer that fired. The window manager's timer type
// implements it.
type TimerRef interface {
	Step() time.Duration
}

// TimerData is attached to timer events.
type TimerData struct {
	Timer    TimerRef
	Delta    time.Duration
	Duration time.Duration
}

// Drag is one item being dragged.
type Drag struct {
	Kind    string
	Name    string
	Payload any
}

// DragData is attached to EvtDrop events.
type DragData struct {
	Drags []*Drag
}

// Remove takes d out of the list and reports whether it was present.
func (dd *DragData) Remove(d *Drag) bool {
	for i, cur := range dd.Drags {
		if cur == d {
			dd.Drags = append(dd.Drags[:i], dd.Drags[i+1:]...)
			return true
		}
	}
	return false
}

// NDOFProgress is the phase of an NDOF motion gesture.
type NDOFProgress uint8

const (
	NDOFResting NDOFProgress = iota
	NDOFStarting
	NDOFInProgress
	NDOFFinishing
)

// NDOFMotionData is attached to NDOFMotion events.
type NDOFMotionData struct {
	Translation [3]float32
	Rotation    [3]float32
	Dt          float32
	Progress    NDOFProgress
}

// FileSelectAction is the request carried by an EvtFileSelect event.
type FileSelectAction uint8

const (
	FileSelectFullOpen FileSelectAction = iota + 1
	FileSelectExec
	FileSelectCancel
	FileSelectExternalCancel
)

// String returns the action name.
func (a FileSelectAction) String() string {
	switch a {
	case FileSelectFullOpen:
		return "FULL_OPEN"
	case FileSelectExec:
		return "EXEC"
	case FileSelectCancel:
		return "CANCEL"
	case FileSelectExternalCancel:
		return "EXTERNAL_CANCEL"
	default:
		return "UNKNOWN"
	}
}

// FileSelectData routes a file browser result back to the parked operator.
// Operator is compared by identity.
type FileSelectData struct {
	Operator any
	Action   FileSelectAction
}

// XRAction is an opaque XR controller action payload.
type XRAction struct {
	Name string
	Data any
}

func (*TimerData) customData()      {}
func (*DragData) customData()       {}
func (*NDOFMotionData) customData() {}
func (*FileSelectData) customData() {}
func (*XRAction) customData()       {}
