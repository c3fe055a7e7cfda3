package script

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/logging"
	"github.com/dshills/wmcore/internal/notifier"
	"github.com/dshills/wmcore/internal/operator"
	"github.com/dshills/wmcore/internal/report"
)

type testArea string

func (a testArea) AreaType() string { return string(a) }

type testContext struct {
	notes  []notifier.Type
	calls  []string
	locked bool
}

func (c *testContext) Window() operator.Window { return nil }
func (c *testContext) Area() operator.Area     { return testArea("VIEW_3D") }
func (c *testContext) Region() operator.Region { return nil }
func (c *testContext) Logger() *logging.Logger { return logging.Null() }
func (c *testContext) AddNotifier(typ notifier.Type, ref any) {
	c.notes = append(c.notes, typ)
}
func (c *testContext) AddModalHandler(*operator.Operator) {}
func (c *testContext) AddFileSelect(*operator.Operator)   {}
func (c *testContext) AddTimer(event.Type, time.Duration) event.TimerRef {
	return nil
}
func (c *testContext) RemoveTimer(event.TimerRef) {}
func (c *testContext) Call(id string, props operator.Properties) operator.Result {
	c.calls = append(c.calls, id)
	return operator.Finished
}
func (c *testContext) InterfaceLocked() bool { return c.locked }

func loadOne(t *testing.T, e *Engine, src string) *operator.Type {
	t.Helper()
	types, err := e.LoadString("test", src)
	if err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if len(types) != 1 {
		t.Fatalf("registered %d types, want 1", len(types))
	}
	return types[0]
}

func instance(t *testing.T, typ *operator.Type, props operator.Properties) *operator.Operator {
	t.Helper()
	reg := operator.NewRegistry()
	reg.MustRegister(typ)
	op, err := reg.Create(typ, props, nil)
	if err != nil {
		t.Fatal(err)
	}
	return op
}

const counterScript = `
wm.register_operator{
    id = "script.counter",
    name = "Counter",
    flags = {"REGISTER", "UNDO"},
    props = {
        {name = "step", default = 1},
        {name = "label", skip_save = true},
    },
    poll = function(ctx)
        return ctx.area == "VIEW_3D" and not ctx.locked
    end,
    exec = function(op)
        op.props.total = op.props.step * 2
        op:report("INFO", "counted " .. op.props.total)
        wm.notify("SCENE", 3)
        if wm.call("ed.undo_push") ~= "FINISHED" then
            return "CANCELLED"
        end
        return "FINISHED"
    end,
}
`

func TestScriptExec(t *testing.T) {
	e := New()
	defer e.Close()

	typ := loadOne(t, e, counterScript)
	if typ.ID != "script.counter" || !typ.Is(operator.FlagRegister|operator.FlagUndo) {
		t.Fatalf("type = %s flags %s", typ.ID, typ.Flag)
	}
	if def, ok := typ.Prop("label"); !ok || !def.SkipSave {
		t.Error("label property not declared skip-save")
	}

	ctx := &testContext{}
	if !typ.Poll(ctx) {
		t.Error("Poll() = false")
	}
	ctx.locked = true
	if typ.Poll(ctx) {
		t.Error("Poll() = true while locked")
	}
	ctx.locked = false

	op := instance(t, typ, operator.Properties{"step": 3})
	if got := typ.Exec(ctx, op); got != operator.Finished {
		t.Fatalf("Exec() = %s, want FINISHED", got)
	}
	if got := op.Props.GetInt("total", 0); got != 6 {
		t.Errorf("total = %d, want 6", got)
	}
	if last, ok := op.Reports.Last(); !ok || last.Message != "counted 6" || last.Severity != report.Info {
		t.Errorf("last report = %+v", last)
	}
	if len(ctx.notes) != 1 || ctx.notes[0] != notifier.NCScene|notifier.NDFrame {
		t.Errorf("notes = %v, want SCENE|FRAME", ctx.notes)
	}
	if len(ctx.calls) != 1 || ctx.calls[0] != "ed.undo_push" {
		t.Errorf("calls = %v", ctx.calls)
	}
}

func TestScriptDefaultsStayUnset(t *testing.T) {
	e := New()
	defer e.Close()
	typ := loadOne(t, e, counterScript)
	op := instance(t, typ, nil)

	typ.Exec(&testContext{}, op)
	if op.Props.IsSet("step") {
		t.Error("default step was written into the instance")
	}
	if op.Props.GetInt("total", 0) != 2 {
		t.Errorf("total = %v, want 2", op.Props["total"])
	}
}

func TestScriptModal(t *testing.T) {
	e := New()
	defer e.Close()
	typ := loadOne(t, e, `
wm.register_operator{
    id = "script.grab",
    invoke = function(op, event)
        op.props.start_x = event.x
        return "RUNNING_MODAL"
    end,
    modal = function(op, event)
        if event.type == "RET" then
            op.props.dx = event.x - op.props.start_x
            return "FINISHED"
        elseif event.type == "ESC" then
            return "CANCELLED"
        end
        return {"RUNNING_MODAL", "PASS_THROUGH"}
    end,
}
`)
	ctx := &testContext{}
	op := instance(t, typ, nil)

	if got := typ.Invoke(ctx, op, &event.Event{Type: event.KeyG, Value: event.Press, XY: event.Point{X: 10, Y: 5}}); got != operator.RunningModal {
		t.Fatalf("Invoke() = %s", got)
	}
	if got := typ.Modal(ctx, op, &event.Event{Type: event.MouseMove, XY: event.Point{X: 30}}); got != operator.RunningModal|operator.PassThrough {
		t.Errorf("Modal(move) = %s", got)
	}
	if got := typ.Modal(ctx, op, &event.Event{Type: event.ReturnKey, Value: event.Press, XY: event.Point{X: 42}}); got != operator.Finished {
		t.Errorf("Modal(return) = %s", got)
	}
	if got := op.Props.GetInt("dx", 0); got != 32 {
		t.Errorf("dx = %d, want 32", got)
	}
}

func TestScriptFailuresCancel(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"runtime error", `error("boom")`, "boom"},
		{"unknown result", `return "DONE"`, "unknown result"},
		{"nil result", `return nil`, "want a result name"},
		{"empty set", `return {}`, "empty result set"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			defer e.Close()
			typ := loadOne(t, e, `wm.register_operator{id = "script.fail", exec = function(op) `+tt.body+` end}`)
			op := instance(t, typ, nil)

			if got := typ.Exec(&testContext{}, op); got != operator.Cancelled {
				t.Fatalf("Exec() = %s, want CANCELLED", got)
			}
			last, ok := op.Reports.Last()
			if !ok || last.Severity != report.Error || !strings.Contains(last.Message, tt.want) {
				t.Errorf("last report = %+v, want error containing %q", last, tt.want)
			}
		})
	}
}

func TestScriptTimeout(t *testing.T) {
	e := New(WithTimeout(50 * time.Millisecond))
	defer e.Close()
	typ := loadOne(t, e, `wm.register_operator{id = "script.spin", exec = function(op) while true do end end}`)

	start := time.Now()
	if got := typ.Exec(&testContext{}, instance(t, typ, nil)); got != operator.Cancelled {
		t.Errorf("Exec() = %s, want CANCELLED", got)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("timeout did not stop the loop")
	}
}

func TestScriptLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `wm.register_operator{`},
		{"bad id", `wm.register_operator{id = "noseparator"}`},
		{"bad flag", `wm.register_operator{id = "script.x", flags = {"FAST"}}`},
		{"notify at load", `wm.notify("SCENE")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			defer e.Close()
			if _, err := e.LoadString(tt.name, tt.src); !errors.Is(err, ErrScript) {
				t.Errorf("LoadString() error = %v, want ErrScript", err)
			}
		})
	}
}

func TestScriptSandbox(t *testing.T) {
	e := New()
	defer e.Close()
	_, err := e.LoadString("sandbox", `
assert(os == nil, "os")
assert(io == nil, "io")
assert(dofile == nil and loadfile == nil and load == nil, "loaders")
assert(require == nil, "require")
assert(string.upper("a") == "A")
`)
	if err != nil {
		t.Errorf("sandbox check failed: %v", err)
	}

	e.Close()
	if _, err := e.LoadString("closed", ""); !errors.Is(err, ErrClosed) {
		t.Errorf("LoadString() after Close error = %v, want ErrClosed", err)
	}
}
