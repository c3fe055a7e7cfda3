package config

import (
	"errors"
	"strings"
	"time"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/keymap"
	"github.com/dshills/wmcore/internal/logging"
)

// Prefs are the user preferences.
type Prefs struct {
	Input     InputPrefs     `toml:"input"`
	Undo      UndoPrefs      `toml:"undo"`
	Interface InterfacePrefs `toml:"interface"`
	Keymap    KeymapPrefs    `toml:"keymap"`
	Log       LogPrefs       `toml:"log"`
}

// InputPrefs tune event classification.
type InputPrefs struct {
	DragThresholdMouse  int `toml:"drag_threshold_mouse"`
	DragThresholdTablet int `toml:"drag_threshold_tablet"`
	// DragThreshold applies to keyboard and other presses.
	DragThreshold int `toml:"drag_threshold"`
	DoubleClickMS int `toml:"double_click_ms"`

	EmulateThreeButtonMouse bool `toml:"emulate_three_button_mouse"`
	// EmulateThreeButtonModifier is "alt" or "oskey".
	EmulateThreeButtonModifier string `toml:"emulate_three_button_modifier"`
	EmulateNumpad              bool   `toml:"emulate_numpad"`
	InvertZoomWheel            bool   `toml:"invert_zoom_wheel"`
}

// UndoPrefs size the undo stack and operator register.
type UndoPrefs struct {
	Steps               int `toml:"steps"`
	OperatorRegisterMax int `toml:"operator_register_max"`
}

// InterfacePrefs tune interface timers.
type InterfacePrefs struct {
	// ReportBannerMS is how long a report banner stays up.
	ReportBannerMS int `toml:"report_banner_ms"`
	// TimerStepMS is the main loop's idle sleep.
	TimerStepMS int `toml:"timer_step_ms"`
}

// KeymapPrefs locate the user key-map file.
type KeymapPrefs struct {
	UserFile string `toml:"user_file"`
}

// LogPrefs configure logging.
type LogPrefs struct {
	Level string `toml:"level"`
}

// Default returns the stock preferences.
func Default() *Prefs {
	th := event.DefaultThresholds()
	return &Prefs{
		Input: InputPrefs{
			DragThresholdMouse:         th.Mouse,
			DragThresholdTablet:        th.Tablet,
			DragThreshold:              th.Other,
			DoubleClickMS:              int(th.DoubleClick / time.Millisecond),
			EmulateThreeButtonModifier: "alt",
		},
		Undo: UndoPrefs{
			Steps:               32,
			OperatorRegisterMax: 32,
		},
		Interface: InterfacePrefs{
			ReportBannerMS: 3000,
			TimerStepMS:    5,
		},
		Log: LogPrefs{Level: "info"},
	}
}

// Clone returns a copy of p.
func (p *Prefs) Clone() *Prefs {
	c := *p
	return &c
}

// Validate checks every field and joins all problems.
func (p *Prefs) Validate() error {
	var errs []error
	check := func(ok bool, field string, value any, msg string) {
		if !ok {
			errs = append(errs, &ValidationError{Field: field, Value: value, Message: msg})
		}
	}
	in := p.Input
	check(in.DragThresholdMouse >= 1 && in.DragThresholdMouse <= 255, "input.drag_threshold_mouse", in.DragThresholdMouse, "must be 1-255")
	check(in.DragThresholdTablet >= 1 && in.DragThresholdTablet <= 255, "input.drag_threshold_tablet", in.DragThresholdTablet, "must be 1-255")
	check(in.DragThreshold >= 1 && in.DragThreshold <= 255, "input.drag_threshold", in.DragThreshold, "must be 1-255")
	check(in.DoubleClickMS >= 1 && in.DoubleClickMS <= 1000, "input.double_click_ms", in.DoubleClickMS, "must be 1-1000")
	mod := strings.ToLower(in.EmulateThreeButtonModifier)
	check(mod == "alt" || mod == "oskey", "input.emulate_three_button_modifier", in.EmulateThreeButtonModifier, `must be "alt" or "oskey"`)
	check(p.Undo.Steps >= 0 && p.Undo.Steps <= 256, "undo.steps", p.Undo.Steps, "must be 0-256")
	check(p.Undo.OperatorRegisterMax >= 1, "undo.operator_register_max", p.Undo.OperatorRegisterMax, "must be positive")
	check(p.Interface.ReportBannerMS >= 0, "interface.report_banner_ms", p.Interface.ReportBannerMS, "must not be negative")
	check(p.Interface.TimerStepMS >= 1, "interface.timer_step_ms", p.Interface.TimerStepMS, "must be positive")
	return errors.Join(errs...)
}

// Thresholds returns the click and drag tunables.
func (p *Prefs) Thresholds() event.Thresholds {
	return event.Thresholds{
		Mouse:       p.Input.DragThresholdMouse,
		Tablet:      p.Input.DragThresholdTablet,
		Other:       p.Input.DragThreshold,
		DoubleClick: time.Duration(p.Input.DoubleClickMS) * time.Millisecond,
	}
}

// MatchPrefs returns the key-map matching options.
func (p *Prefs) MatchPrefs() keymap.MatchPrefs {
	return keymap.MatchPrefs{InvertZoomWheel: p.Input.InvertZoomWheel}
}

// EmulateModifier returns the modifier that turns a left click into a
// middle click when three-button emulation is on.
func (p *Prefs) EmulateModifier() event.Modifier {
	if strings.EqualFold(p.Input.EmulateThreeButtonModifier, "oskey") {
		return event.ModOSKey
	}
	return event.ModAlt
}

// ReportBannerTime returns how long report banners stay up.
func (p *Prefs) ReportBannerTime() time.Duration {
	return time.Duration(p.Interface.ReportBannerMS) * time.Millisecond
}

// TimerStep returns the main loop's idle sleep.
func (p *Prefs) TimerStep() time.Duration {
	return time.Duration(p.Interface.TimerStepMS) * time.Millisecond
}

// LogLevel returns the configured log level.
func (p *Prefs) LogLevel() logging.Level {
	return logging.ParseLevel(p.Log.Level)
}
