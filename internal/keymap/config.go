package keymap

import (
	"fmt"
	"sort"
	"sync"
)

// Config holds the built-in key-maps and the user's overrides of them.
// Lookups through Active prefer the user version.
type Config struct {
	mu sync.RWMutex

	keymaps map[string]*Keymap
	user    map[string]*Keymap
}

// NewConfig creates an empty configuration.
func NewConfig() *Config {
	return &Config{
		keymaps: make(map[string]*Keymap),
		user:    make(map[string]*Keymap),
	}
}

// Register adds a built-in key-map, replacing one with the same name.
func (c *Config) Register(km *Keymap) error {
	if km == nil || km.Name == "" {
		return fmt.Errorf("%w: key-map needs a name", ErrInvalidItem)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keymaps[km.Name] = km
	return nil
}

// Ensure returns the built-in key-map name, creating it when missing.
func (c *Config) Ensure(name, spaceType, regionType string) *Keymap {
	c.mu.Lock()
	defer c.mu.Unlock()
	if km, ok := c.keymaps[name]; ok {
		return km
	}
	km := New(name, spaceType, regionType)
	c.keymaps[name] = km
	return km
}

// EnsureModal returns the built-in modal key-map name, creating it with
// values when missing.
func (c *Config) EnsureModal(name string, values ...ModalValue) *Keymap {
	c.mu.Lock()
	defer c.mu.Unlock()
	if km, ok := c.keymaps[name]; ok {
		return km
	}
	km := NewModal(name, values...)
	c.keymaps[name] = km
	return km
}

// Unregister removes a key-map and its user override.
func (c *Config) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.keymaps, name)
	delete(c.user, name)
}

// Find returns the built-in key-map name.
func (c *Config) Find(name string) (*Keymap, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	km, ok := c.keymaps[name]
	return km, ok
}

// Active returns the key-map used for matching: the user override when
// one exists, otherwise the built-in one. Nil when name is unknown.
func (c *Config) Active(name string) *Keymap {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if km, ok := c.user[name]; ok {
		return km
	}
	return c.keymaps[name]
}

// SetUser installs km as the user override of the key-map with the same
// name. Callbacks missing from km are taken from the built-in key-map.
func (c *Config) SetUser(km *Keymap) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	base, ok := c.keymaps[km.Name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKeymap, km.Name)
	}
	user := km.Clone()
	user.UserModified = true
	if user.Poll == nil {
		user.Poll = base.Poll
	}
	if user.PollModalItem == nil {
		user.PollModalItem = base.PollModalItem
	}
	if user.Modal && len(user.ModalValues) == 0 {
		user.ModalValues = append([]ModalValue(nil), base.ModalValues...)
	}
	if user.SpaceType == "" {
		user.SpaceType = base.SpaceType
	}
	if user.RegionType == "" {
		user.RegionType = base.RegionType
	}
	for _, it := range user.Items {
		if it.ID > user.nextID {
			user.nextID = it.ID
		}
	}
	c.user[km.Name] = user
	return nil
}

// ResetUser drops the user override of name.
func (c *Config) ResetUser(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.user, name)
}

// ApplyUser replaces every user override with kms. Key-maps without a
// built-in counterpart are skipped and reported in the returned error.
func (c *Config) ApplyUser(kms []*Keymap) error {
	c.mu.Lock()
	c.user = make(map[string]*Keymap, len(kms))
	c.mu.Unlock()

	var unknown []string
	for _, km := range kms {
		if err := c.SetUser(km); err != nil {
			unknown = append(unknown, km.Name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %v", ErrUnknownKeymap, unknown)
	}
	return nil
}

// UserKeymaps returns the user overrides sorted by name.
func (c *Config) UserKeymaps() []*Keymap {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeymaps(c.user)
}

// Keymaps returns the active version of every key-map sorted by name.
func (c *Config) Keymaps() []*Keymap {
	c.mu.RLock()
	defer c.mu.RUnlock()
	active := make(map[string]*Keymap, len(c.keymaps))
	for name, km := range c.keymaps {
		active[name] = km
	}
	for name, km := range c.user {
		active[name] = km
	}
	return sortedKeymaps(active)
}

// FindOperator returns the first active key-map item bound to opID.
func (c *Config) FindOperator(opID string) (*Keymap, *Item) {
	for _, km := range c.Keymaps() {
		if km.Modal {
			continue
		}
		if it := km.FindOperator(opID); it != nil {
			return km, it
		}
	}
	return nil, nil
}

func sortedKeymaps(m map[string]*Keymap) []*Keymap {
	out := make([]*Keymap, 0, len(m))
	for _, km := range m {
		out = append(out, km)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
