package operator

import (
	"fmt"
	"sort"
	"strings"
)

// Properties is an operator's property bag.
type Properties map[string]any

// PropDef declares one property of an operator type.
type PropDef struct {
	Name        string
	Description string
	Default     any
	// Required properties must be set before the operator runs.
	Required bool
	// SkipSave properties are never remembered between invocations.
	SkipSave bool
}

// Clone returns a copy of p. Values are copied shallowly.
func (p Properties) Clone() Properties {
	if p == nil {
		return Properties{}
	}
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// IsSet reports whether name has a value.
func (p Properties) IsSet(name string) bool {
	_, ok := p[name]
	return ok
}

// Clear removes all values.
func (p Properties) Clear() {
	for k := range p {
		delete(p, k)
	}
}

// GetString returns the value as a string, or def.
func (p Properties) GetString(name, def string) string {
	if v, ok := p[name].(string); ok {
		return v
	}
	return def
}

// GetBool returns the value as a bool, or def.
func (p Properties) GetBool(name string, def bool) bool {
	if v, ok := p[name].(bool); ok {
		return v
	}
	return def
}

// GetInt returns the value as an int, or def. Integral floats and int64
// values decoded from config files are accepted.
func (p Properties) GetInt(name string, def int) int {
	switch v := p[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// GetFloat returns the value as a float64, or def.
func (p Properties) GetFloat(name string, def float64) float64 {
	switch v := p[name].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

// Format renders the bag as name=value pairs in sorted order.
func (p Properties) Format() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		if s, ok := p[k].(string); ok {
			parts[i] = fmt.Sprintf("%s=%q", k, s)
		} else {
			parts[i] = fmt.Sprintf("%s=%v", k, p[k])
		}
	}
	return strings.Join(parts, ", ")
}
