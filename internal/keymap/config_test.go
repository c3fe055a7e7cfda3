package keymap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/operator"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	c := NewConfig()
	win := c.Ensure("Window", "", "")
	if _, err := win.AddSpec("ctrl+S", "wm.save", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := win.AddSpec("ctrl+shift+S", "wm.save", operator.Properties{"copy": true}); err != nil {
		t.Fatal(err)
	}
	view := c.Ensure("3D View", "VIEW_3D", "WINDOW")
	if _, err := view.AddSpec("any+LEFTMOUSE click_drag", "view3d.select_box", operator.Properties{
		"mode":        "SET",
		"mesh.select": operator.Properties{"extend": true},
	}); err != nil {
		t.Fatal(err)
	}
	view.Add(NewItem(event.WheelInMouse, event.Press, "view3d.zoom", operator.Properties{"delta": 1}).AnyModifier())

	modal := c.EnsureModal("Transform Modal",
		ModalValue{Value: modalConfirm, ID: "CONFIRM"},
		ModalValue{Value: modalCancel, ID: "CANCEL"},
	)
	if _, err := modal.AddModalSpec("any+RET", "CONFIRM"); err != nil {
		t.Fatal(err)
	}
	if _, err := modal.AddModalSpec("any+ESC", "CANCEL"); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestConfigUserOverride(t *testing.T) {
	c := testConfig(t)
	base, _ := c.Find("Window")
	base.Poll = func(operator.Context) bool { return true }

	user := New("Window", "", "")
	if _, err := user.AddSpec("oskey+S", "wm.save", nil); err != nil {
		t.Fatal(err)
	}
	if err := c.SetUser(user); err != nil {
		t.Fatalf("SetUser() error = %v", err)
	}

	active := c.Active("Window")
	if !active.UserModified || len(active.Items) != 1 {
		t.Fatalf("Active() = %+v, want the user key-map", active)
	}
	if active.Poll == nil {
		t.Error("poll not inherited from the built-in key-map")
	}
	if _, it := c.FindOperator("wm.save"); it == nil || it.OSKey != ModOn {
		t.Errorf("FindOperator() = %v, want the user binding", it)
	}

	c.ResetUser("Window")
	if c.Active("Window") != base {
		t.Error("ResetUser() did not restore the built-in key-map")
	}

	if err := c.SetUser(New("Nope", "", "")); !errors.Is(err, ErrUnknownKeymap) {
		t.Errorf("SetUser(unknown) error = %v, want ErrUnknownKeymap", err)
	}
	if c.Active("Nope") != nil {
		t.Error("Active(unknown) != nil")
	}
}

func TestPersistRoundTrip(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			c := testConfig(t)
			path := filepath.Join(t.TempDir(), "keymap"+ext)
			if err := Save(path, c.Keymaps()); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			kms, err := Load(path, c)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(kms) != 3 {
				t.Fatalf("loaded %d key-maps, want 3", len(kms))
			}

			byName := make(map[string]*Keymap)
			for _, km := range kms {
				byName[km.Name] = km
			}
			for _, want := range c.Keymaps() {
				got := byName[want.Name]
				if got == nil {
					t.Fatalf("key-map %q missing", want.Name)
				}
				if got.SpaceType != want.SpaceType || got.RegionType != want.RegionType || got.Modal != want.Modal {
					t.Errorf("%q header = %+v", want.Name, got)
				}
				if len(got.Items) != len(want.Items) {
					t.Fatalf("%q has %d items, want %d", want.Name, len(got.Items), len(want.Items))
				}
				for i := range want.Items {
					g, w := got.Items[i], want.Items[i]
					if g.String() != w.String() || g.Operator != w.Operator || g.PropValue != w.PropValue {
						t.Errorf("%q item %d = %q %s %d, want %q %s %d",
							want.Name, i, g, g.Operator, g.PropValue, w, w.Operator, w.PropValue)
					}
				}
			}

			sel := byName["3D View"].Items[0]
			if sel.Props.GetString("mode", "") != "SET" {
				t.Errorf("props = %v", sel.Props)
			}
			nested, ok := sel.Props["mesh.select"].(operator.Properties)
			if !ok || !nested.GetBool("extend", false) {
				t.Errorf("nested props = %#v", sel.Props["mesh.select"])
			}
			if got := byName["3D View"].Items[1].Props.GetInt("delta", 0); got != 1 {
				t.Errorf("delta = %d, want 1", got)
			}
		})
	}
}

func TestLoadUser(t *testing.T) {
	c := testConfig(t)
	path := filepath.Join(t.TempDir(), "user.toml")
	data := `
[[keymap]]
name = "Window"

  [[keymap.item]]
  type = "S"
  value = "PRESS"
  ctrl = "on"
  alt = "any"
  operator = "wm.save"

[[keymap]]
name = "Transform Modal"
modal = true

  [[keymap.item]]
  type = "SPACE"
  value = "PRESS"
  modal_value = "CONFIRM"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := c.LoadUser(path); err != nil {
		t.Fatalf("LoadUser() error = %v", err)
	}

	win := c.Active("Window")
	if !win.UserModified || len(win.Items) != 1 {
		t.Fatalf("Window = %+v", win)
	}
	ev := &event.Event{Type: event.KeyS, Value: event.Press, Modifier: event.ModCtrl | event.ModAlt}
	if win.Lookup(ev, MatchPrefs{}) == nil {
		t.Error("user item did not match ctrl+alt+S")
	}

	modal := c.Active("Transform Modal")
	got := ModalTranslate(modal, nil, &event.Event{Type: event.SpaceKey, Value: event.Press}, MatchPrefs{})
	if got.Type != event.EvtModalMap || got.ModalValue != modalConfirm {
		t.Errorf("modal translate = %s %d", got.Type, got.ModalValue)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if err := Save(filepath.Join(dir, "keymap.json"), nil); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Save(.json) error = %v, want ErrUnknownFormat", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	os.WriteFile(bad, []byte("[[keymap]]\nname = \"W\"\n[[keymap.item]]\ntype = \"NOT_A_KEY\"\n"), 0o644)
	_, err := Load(bad, nil)
	var pe *ParseError
	if !errors.As(err, &pe) || !errors.Is(err, ErrInvalidItem) {
		t.Errorf("Load(bad) error = %v, want *ParseError wrapping ErrInvalidItem", err)
	}

	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("keymaps: [\n"), 0o644)
	if _, err := Load(broken, nil); !errors.As(err, &pe) || pe.Source != broken {
		t.Errorf("Load(broken) error = %v, want *ParseError for %s", err, broken)
	}
}
