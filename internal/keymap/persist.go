package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/operator"
)

// fileConfig is the on-disk layout shared by the TOML and YAML codecs.
type fileConfig struct {
	Keymaps []fileKeymap `toml:"keymap" yaml:"keymaps"`
}

type fileKeymap struct {
	Name       string     `toml:"name" yaml:"name"`
	SpaceType  string     `toml:"space_type,omitempty" yaml:"space_type,omitempty"`
	RegionType string     `toml:"region_type,omitempty" yaml:"region_type,omitempty"`
	Modal      bool       `toml:"modal,omitempty" yaml:"modal,omitempty"`
	Items      []fileItem `toml:"item" yaml:"items"`
}

type fileItem struct {
	Type        string         `toml:"type" yaml:"type"`
	Value       string         `toml:"value" yaml:"value"`
	Shift       string         `toml:"shift,omitempty" yaml:"shift,omitempty"`
	Ctrl        string         `toml:"ctrl,omitempty" yaml:"ctrl,omitempty"`
	Alt         string         `toml:"alt,omitempty" yaml:"alt,omitempty"`
	OSKey       string         `toml:"oskey,omitempty" yaml:"oskey,omitempty"`
	KeyModifier string         `toml:"key_modifier,omitempty" yaml:"key_modifier,omitempty"`
	Direction   string         `toml:"direction,omitempty" yaml:"direction,omitempty"`
	Inactive    bool           `toml:"inactive,omitempty" yaml:"inactive,omitempty"`
	RepeatIgn   bool           `toml:"repeat_ignore,omitempty" yaml:"repeat_ignore,omitempty"`
	Operator    string         `toml:"operator,omitempty" yaml:"operator,omitempty"`
	Props       map[string]any `toml:"props,omitempty" yaml:"props,omitempty"`
	ModalValue  string         `toml:"modal_value,omitempty" yaml:"modal_value,omitempty"`
}

// MarshalTOML encodes key-maps as TOML.
func MarshalTOML(kms []*Keymap) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(toFile(kms)); err != nil {
		return nil, fmt.Errorf("encoding keymaps: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalTOML decodes key-maps from TOML. Modal values are resolved
// against base, which may be nil.
func UnmarshalTOML(data []byte, base *Config) ([]*Keymap, error) {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, &ParseError{Source: "<toml>", Message: err.Error(), Err: err}
	}
	return fromFile(fc, base)
}

// MarshalYAML encodes key-maps as YAML.
func MarshalYAML(kms []*Keymap) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toFile(kms)); err != nil {
		return nil, fmt.Errorf("encoding keymaps: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding keymaps: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes key-maps from YAML.
func UnmarshalYAML(data []byte, base *Config) ([]*Keymap, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, &ParseError{Source: "<yaml>", Message: err.Error(), Err: err}
	}
	return fromFile(fc, base)
}

// Save writes key-maps to path. The format follows the extension: .toml,
// .yaml or .yml.
func Save(path string, kms []*Keymap) error {
	var data []byte
	var err error
	switch format(path) {
	case "toml":
		data, err = MarshalTOML(kms)
	case "yaml":
		data, err = MarshalYAML(kms)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing keymap file: %w", err)
	}
	return nil
}

// Load reads key-maps from path.
func Load(path string, base *Config) ([]*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap file: %w", err)
	}

	var kms []*Keymap
	switch format(path) {
	case "toml":
		kms, err = UnmarshalTOML(data, base)
	case "yaml":
		kms, err = UnmarshalYAML(data, base)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	var pe *ParseError
	if errors.As(err, &pe) && strings.HasPrefix(pe.Source, "<") {
		pe.Source = path
	}
	return kms, err
}

// SaveUser writes the user overrides of c to path.
func (c *Config) SaveUser(path string) error {
	return Save(path, c.UserKeymaps())
}

// LoadUser replaces the user overrides of c with the key-maps in path.
func (c *Config) LoadUser(path string) error {
	kms, err := Load(path, c)
	if err != nil {
		return err
	}
	return c.ApplyUser(kms)
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}

func toFile(kms []*Keymap) fileConfig {
	fc := fileConfig{Keymaps: make([]fileKeymap, 0, len(kms))}
	for _, km := range kms {
		fk := fileKeymap{
			Name:       km.Name,
			SpaceType:  km.SpaceType,
			RegionType: km.RegionType,
			Modal:      km.Modal,
			Items:      make([]fileItem, 0, len(km.Items)),
		}
		for _, it := range km.Items {
			fi := fileItem{
				Type:      it.Type.String(),
				Value:     it.Value.String(),
				Shift:     modField(it.Shift),
				Ctrl:      modField(it.Ctrl),
				Alt:       modField(it.Alt),
				OSKey:     modField(it.OSKey),
				Inactive:  it.Flag&ItemInactive != 0,
				RepeatIgn: it.Flag&ItemRepeatIgnore != 0,
				Operator:  it.Operator,
			}
			if it.KeyModifier != event.TypeNone {
				fi.KeyModifier = it.KeyModifier.String()
			}
			if it.Direction > event.DirectionNone {
				fi.Direction = it.Direction.String()
			}
			if len(it.Props) > 0 {
				fi.Props = map[string]any(it.Props)
			}
			if km.Modal {
				if id, ok := km.ModalValueID(it.PropValue); ok {
					fi.ModalValue = id
				} else {
					fi.ModalValue = fmt.Sprint(it.PropValue)
				}
			}
			fk.Items = append(fk.Items, fi)
		}
		fc.Keymaps = append(fc.Keymaps, fk)
	}
	return fc
}

func modField(s ModState) string {
	if s == ModOff {
		return ""
	}
	return s.String()
}

func fromFile(fc fileConfig, base *Config) ([]*Keymap, error) {
	out := make([]*Keymap, 0, len(fc.Keymaps))
	for _, fk := range fc.Keymaps {
		km := New(fk.Name, fk.SpaceType, fk.RegionType)
		km.Modal = fk.Modal
		if base != nil {
			if b, ok := base.Find(fk.Name); ok {
				km.ModalValues = append([]ModalValue(nil), b.ModalValues...)
			}
		}
		for i, fi := range fk.Items {
			it, err := itemFromFile(km, fi)
			if err != nil {
				return nil, &ParseError{
					Source:  fmt.Sprintf("%s item %d", fk.Name, i+1),
					Token:   fi.Type,
					Message: err.Error(),
					Err:     err,
				}
			}
			km.Add(it)
		}
		out = append(out, km)
	}
	return out, nil
}

func itemFromFile(km *Keymap, fi fileItem) (*Item, error) {
	typ, ok := event.ParseType(fi.Type)
	if !ok {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidItem, fi.Type)
	}
	val := event.Press
	if fi.Value != "" {
		if val, ok = event.ParseValue(fi.Value); !ok {
			return nil, fmt.Errorf("%w: unknown value %q", ErrInvalidItem, fi.Value)
		}
	}
	it := NewItem(typ, val, fi.Operator, normalizeProps(fi.Props))

	for _, m := range []struct {
		field string
		slot  *ModState
	}{
		{fi.Shift, &it.Shift},
		{fi.Ctrl, &it.Ctrl},
		{fi.Alt, &it.Alt},
		{fi.OSKey, &it.OSKey},
	} {
		s, ok := parseModState(strings.ToLower(m.field))
		if !ok {
			return nil, fmt.Errorf("%w: modifier state %q", ErrInvalidItem, m.field)
		}
		*m.slot = s
	}

	if fi.KeyModifier != "" {
		if it.KeyModifier, ok = event.ParseType(fi.KeyModifier); !ok {
			return nil, fmt.Errorf("%w: unknown key-modifier %q", ErrInvalidItem, fi.KeyModifier)
		}
	}
	if fi.Direction != "" {
		if it.Direction, ok = event.ParseDirection(fi.Direction); !ok {
			return nil, fmt.Errorf("%w: unknown direction %q", ErrInvalidItem, fi.Direction)
		}
	}
	if fi.Inactive {
		it.Flag |= ItemInactive
	}
	if fi.RepeatIgn {
		it.Flag |= ItemRepeatIgnore
	}

	if km.Modal && fi.ModalValue != "" {
		if v, ok := km.ModalValueByID(fi.ModalValue); ok {
			it.PropValue = v.Value
		} else if _, err := fmt.Sscan(fi.ModalValue, &it.PropValue); err != nil {
			return nil, fmt.Errorf("%w: unknown modal value %q", ErrInvalidItem, fi.ModalValue)
		}
	}
	return it, nil
}

// normalizeProps turns decoded nested tables into Properties so macro
// child overrides survive a round trip.
func normalizeProps(m map[string]any) operator.Properties {
	if len(m) == 0 {
		return nil
	}
	out := make(operator.Properties, len(m))
	for k, v := range m {
		switch nested := v.(type) {
		case map[string]any:
			out[k] = normalizeProps(nested)
		case operator.Properties:
			out[k] = normalizeProps(nested)
		default:
			out[k] = v
		}
	}
	return out
}
