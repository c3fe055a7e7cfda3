// Package notifier implements the deferred "something changed" signal.
//
// A notifier type is a 32-bit field split into four bytes:
//
//	category | data | subtype | action
//	0xFF000000 0x00FF0000 0x0000FF00 0x000000FF
//
// Listeners mask by category to cheaply skip irrelevant notes. The Queue is a
// set: adding a note whose type and reference equal a queued note is a no-op.
// Notes are drained once per main-loop pass.
package notifier
