// Package handler defines the handler records attached to windows, areas
// and regions, and the ordered lists holding them.
//
// A Handler is one of Keymap, Op, UI, Dropbox or GizmoHandler. Every variant
// embeds a Head carrying the flags and optional poll shared by all kinds.
// Lists are iterated by the window manager from front to back; a handler
// removed while the list is being dispatched is skipped for the rest of
// that pass, and one flagged FlagDoFree is dropped after its own call
// returns.
package handler
