// Package keymap matches events against key-map items.
//
// A key-map is a named, ordered list of items, each binding an input
// pattern to an operator. Items are tested top to bottom and the first
// match wins within one key-map. Matching is a pure predicate with no side
// effects, so it can be called freely when building shortcut hints.
//
// Modal key-maps bind patterns to integer values instead of operators. A
// modal operator receives the translated EvtModalMap event produced by
// ModalTranslate.
//
// Key-maps are grouped in a Config, which keeps user overrides next to the
// built-in definitions, and can be saved and loaded as TOML or YAML.
package keymap
