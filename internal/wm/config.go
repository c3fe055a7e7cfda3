package wm

import (
	"time"

	"github.com/dshills/wmcore/internal/config"
	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/keymap"
	"github.com/dshills/wmcore/internal/operator"
	"github.com/dshills/wmcore/internal/undo"
)

// Config holds window manager options.
type Config struct {
	// Thresholds drive click, drag and double-click detection.
	Thresholds event.Thresholds

	// Match holds the preferences key-map matching depends on.
	Match keymap.MatchPrefs

	// EmulateThreeButton turns EmulateModifier+left button into the middle
	// button.
	EmulateThreeButton bool
	EmulateModifier    event.Modifier

	// EmulateNumpad maps the top row digits onto the numeric keypad.
	EmulateNumpad bool

	// UndoSteps limits the undo stack.
	UndoSteps int

	// RegisterMax limits the redo register.
	RegisterMax int

	// ReportBannerTime is how long the newest report stays in the banner.
	ReportBannerTime time.Duration

	// RecoverFromPanic turns operator callback panics into cancellations.
	RecoverFromPanic bool
}

// DefaultConfig returns a configuration with the stock preferences.
func DefaultConfig() Config {
	return Config{
		Thresholds:       event.DefaultThresholds(),
		EmulateModifier:  event.ModAlt,
		UndoSteps:        undo.DefaultSteps,
		RegisterMax:      operator.DefaultHistorySize,
		ReportBannerTime: 3 * time.Second,
		RecoverFromPanic: true,
	}
}

// ConfigFromPrefs builds a configuration from user preferences.
func ConfigFromPrefs(p *config.Prefs) Config {
	cfg := DefaultConfig()
	if p == nil {
		return cfg
	}
	cfg.Thresholds = p.Thresholds()
	cfg.Match = p.MatchPrefs()
	cfg.EmulateThreeButton = p.Input.EmulateThreeButtonMouse
	cfg.EmulateModifier = p.EmulateModifier()
	cfg.EmulateNumpad = p.Input.EmulateNumpad
	cfg.UndoSteps = p.Undo.Steps
	cfg.RegisterMax = p.Undo.OperatorRegisterMax
	cfg.ReportBannerTime = p.ReportBannerTime()
	return cfg
}

// WithThresholds returns a copy of the config with thresholds set.
func (c Config) WithThresholds(th event.Thresholds) Config {
	c.Thresholds = th
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}
