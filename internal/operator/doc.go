// Package operator defines operator types, instances and the result
// vocabulary of the operator lifecycle.
//
// An operator Type is a capability struct: every callback is optional and
// the Has* methods replace nil checks. The window manager drives instances
// through poll, invoke or exec, modal and cancel, and interprets the Result
// bitflags they return.
//
// # Results
//
// Results combine. Some combinations carry their own meaning:
//
//   - Finished|PassThrough: handled, but later handlers may still see the
//     event.
//   - PassThrough|RunningModal: the operator stays modal while the event
//     keeps propagating to the next priority level.
//
// # Macros
//
// A macro Type runs child operators in order as one undoable action. Once a
// child finishes, the macro reports Finished even if a later child cancels.
// Key-maps rely on partial success reading as success.
package operator
