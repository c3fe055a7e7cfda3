package event

import "strings"

// Modifier is the set of held modifier keys.
type Modifier uint8

// ModNone indicates no modifiers.
const ModNone Modifier = 0

const (
	// ModShift indicates either Shift key.
	ModShift Modifier = 1 << iota
	// ModCtrl indicates either Control key.
	ModCtrl
	// ModAlt indicates either Alt key.
	ModAlt
	// ModOSKey indicates the OS key (Cmd on macOS, Win on Windows).
	ModOSKey
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// Set returns m with mod added when on is true and removed otherwise.
func (m Modifier) Set(mod Modifier, on bool) Modifier {
	if on {
		return m | mod
	}
	return m &^ mod
}

// String returns a human-readable representation like "Ctrl+Shift".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModOSKey) {
		parts = append(parts, "OSKey")
	}
	return strings.Join(parts, "+")
}
