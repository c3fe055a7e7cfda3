// Package ghost is the platform layer feeding the window manager.
//
// A Source produces RawEvents: key and button transitions, cursor motion,
// wheel and trackpad deltas, NDOF input and window state changes. Raw
// events carry platform key codes; ConvertKey maps them to event types and
// returns event.UnknownKey for codes it does not know, so such keys still
// reach key-maps.
//
// TerminalSource reads a tcell screen. Terminals report no key releases
// and no standalone modifier presses, so the source synthesizes them: a key
// arrives as press then release, bracketed by presses and releases of the
// modifiers it was reported with.
package ghost
