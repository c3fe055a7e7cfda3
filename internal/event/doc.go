// Package event defines the normalized input event model shared by the
// window manager, key-maps and operators.
//
// An Event is created by the window manager's platform translation step and
// appended to a window queue. Its Type identifies the physical input (mouse
// button, key, timer, NDOF axis or a synthetic type such as EvtDrop) and its
// Value the transition (press, release, click, click-drag, double-click).
//
// # Event State
//
// Every window keeps a State holding the last raw type/value, the modifier
// set, the active key-modifier and the previous press baseline. State is the
// only place where click, drag and double-click are derived from a stream of
// press/release pairs:
//
//   - UpdateAndClickSet copies the incoming event into the state, detects a
//     double-click and records the press baseline.
//   - DragTest compares the cursor against the press baseline using the
//     threshold for the kind of device that pressed.
//
// Custom data is owned by the event and never copied into State.
//
// # Coordinates
//
// Window coordinates grow right and up, so drag directions follow the
// compass: a positive Y delta points north.
package event
