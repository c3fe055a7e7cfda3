package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "WMCORE_"

// Load reads preferences from path on top of the defaults, applies
// environment overrides and validates the result. A missing file is not
// an error.
func Load(path string) (*Prefs, error) {
	p := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := p.UnmarshalTOML(path, data); err != nil {
				return nil, err
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	if err := p.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// UnmarshalTOML decodes data into p. Unknown keys are rejected so typos
// surface instead of silently keeping defaults.
func (p *Prefs) UnmarshalTOML(source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			perr.Message = "unknown keys: " + strings.TrimSpace(serr.String())
		}
		return perr
	}
	return nil
}

// Save writes p to path as TOML.
func (p *Prefs) Save(path string) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// LookupFunc reads an environment variable.
type LookupFunc func(key string) (string, bool)

type envSetter func(p *Prefs, value string) error

func intSetter(field func(p *Prefs) *int) envSetter {
	return func(p *Prefs, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		*field(p) = n
		return nil
	}
}

func boolSetter(field func(p *Prefs) *bool) envSetter {
	return func(p *Prefs, value string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		*field(p) = b
		return nil
	}
}

func stringSetter(field func(p *Prefs) *string) envSetter {
	return func(p *Prefs, value string) error {
		*field(p) = value
		return nil
	}
}

// envMapping maps environment variable suffixes to preference fields.
var envMapping = map[string]envSetter{
	"LOG_LEVEL":             stringSetter(func(p *Prefs) *string { return &p.Log.Level }),
	"KEYMAP_FILE":           stringSetter(func(p *Prefs) *string { return &p.Keymap.UserFile }),
	"DRAG_THRESHOLD_MOUSE":  intSetter(func(p *Prefs) *int { return &p.Input.DragThresholdMouse }),
	"DRAG_THRESHOLD_TABLET": intSetter(func(p *Prefs) *int { return &p.Input.DragThresholdTablet }),
	"DRAG_THRESHOLD":        intSetter(func(p *Prefs) *int { return &p.Input.DragThreshold }),
	"DOUBLE_CLICK_MS":       intSetter(func(p *Prefs) *int { return &p.Input.DoubleClickMS }),
	"EMULATE_3BUTTON":       boolSetter(func(p *Prefs) *bool { return &p.Input.EmulateThreeButtonMouse }),
	"EMULATE_3BUTTON_MOD":   stringSetter(func(p *Prefs) *string { return &p.Input.EmulateThreeButtonModifier }),
	"EMULATE_NUMPAD":        boolSetter(func(p *Prefs) *bool { return &p.Input.EmulateNumpad }),
	"INVERT_ZOOM_WHEEL":     boolSetter(func(p *Prefs) *bool { return &p.Input.InvertZoomWheel }),
	"UNDO_STEPS":            intSetter(func(p *Prefs) *int { return &p.Undo.Steps }),
	"OPERATOR_REGISTER_MAX": intSetter(func(p *Prefs) *int { return &p.Undo.OperatorRegisterMax }),
	"REPORT_BANNER_MS":      intSetter(func(p *Prefs) *int { return &p.Interface.ReportBannerMS }),
	"TIMER_STEP_MS":         intSetter(func(p *Prefs) *int { return &p.Interface.TimerStepMS }),
}

// EnvNames returns the supported environment variables.
func EnvNames() []string {
	names := make([]string, 0, len(envMapping))
	for suffix := range envMapping {
		names = append(names, EnvPrefix+suffix)
	}
	return names
}

// ApplyEnv overrides fields from WMCORE_* variables.
func (p *Prefs) ApplyEnv(lookup LookupFunc) error {
	for suffix, set := range envMapping {
		value, ok := lookup(EnvPrefix + suffix)
		if !ok {
			continue
		}
		if err := set(p, value); err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidValue, EnvPrefix, suffix, value, err)
		}
	}
	return nil
}
