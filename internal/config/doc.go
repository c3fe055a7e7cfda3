// Package config holds user preferences for the window manager.
//
// Preferences are read in layers: built-in defaults, then a TOML file,
// then WMCORE_* environment variables. The result is validated before use.
// A Watcher reports changes to the preference and key-map files so a
// running application can reload them.
//
// Example file:
//
//	[input]
//	drag_threshold_mouse = 3
//	drag_threshold_tablet = 10
//	drag_threshold = 30
//	double_click_ms = 350
//	emulate_three_button_mouse = false
//	emulate_three_button_modifier = "alt"
//
//	[undo]
//	steps = 32
//	operator_register_max = 32
//
//	[keymap]
//	user_file = "~/.config/wmcore/keymap.toml"
package config
