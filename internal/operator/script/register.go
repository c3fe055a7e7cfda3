package script

import (
	"fmt"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/operator"
	"github.com/dshills/wmcore/internal/report"
)

var flagNames = map[string]operator.Flag{
	"REGISTER":     operator.FlagRegister,
	"UNDO":         operator.FlagUndo,
	"BLOCKING":     operator.FlagBlocking,
	"INTERNAL":     operator.FlagInternal,
	"LOCK_BYPASS":  operator.FlagLockBypass,
	"UNDO_GROUPED": operator.FlagUndoGrouped,
}

var severityNames = map[string]report.Severity{
	"DEBUG":    report.Debug,
	"INFO":     report.Info,
	"OPERATOR": report.Operator,
	"PROPERTY": report.Property,
	"WARNING":  report.Warning,
	"ERROR":    report.Error,
}

// wm.register_operator(def)
func (e *Engine) luaRegisterOperator(L *lua.LState) int {
	def := L.CheckTable(1)

	t := &operator.Type{
		ID:          luaString(def, "id"),
		Name:        luaString(def, "name"),
		Description: luaString(def, "description"),
		ModalKeymap: luaString(def, "modal_keymap"),
	}
	if t.Name == "" {
		t.Name = t.ID
	}

	if flags, ok := def.RawGetString("flags").(*lua.LTable); ok {
		var bad string
		flags.ForEach(func(_, v lua.LValue) {
			f, ok := flagNames[strings.ToUpper(lua.LVAsString(v))]
			if !ok {
				bad = lua.LVAsString(v)
			}
			t.Flag |= f
		})
		if bad != "" {
			L.ArgError(1, fmt.Sprintf("unknown flag %q", bad))
		}
	}

	if props, ok := def.RawGetString("props").(*lua.LTable); ok {
		t.Props = propDefs(props)
	}

	if fn := luaFunc(def, "poll"); fn != nil {
		t.Poll = func(ctx operator.Context) bool {
			ret, err := e.call(ctx, nil, fn, e.contextTable(ctx))
			if err != nil {
				e.log.Error("%s poll: %v", t.ID, err)
				return false
			}
			return lua.LVAsBool(ret)
		}
	}
	if fn := luaFunc(def, "invoke"); fn != nil {
		t.Invoke = func(ctx operator.Context, op *operator.Operator, ev *event.Event) operator.Result {
			return e.callResult(ctx, op, fn, ev)
		}
	}
	if fn := luaFunc(def, "exec"); fn != nil {
		t.Exec = func(ctx operator.Context, op *operator.Operator) operator.Result {
			return e.callResult(ctx, op, fn, nil)
		}
	}
	if fn := luaFunc(def, "modal"); fn != nil {
		t.Modal = func(ctx operator.Context, op *operator.Operator, ev *event.Event) operator.Result {
			return e.callResult(ctx, op, fn, ev)
		}
	}
	if fn := luaFunc(def, "cancel"); fn != nil {
		t.Cancel = func(ctx operator.Context, op *operator.Operator) {
			tbl := e.opTable(op)
			if _, err := e.call(ctx, op, fn, tbl); err != nil {
				e.log.Error("%s cancel: %v", t.ID, err)
			}
			e.syncProps(op, tbl)
		}
	}
	if fn := luaFunc(def, "check"); fn != nil {
		t.Check = func(ctx operator.Context, op *operator.Operator) bool {
			tbl := e.opTable(op)
			ret, err := e.call(ctx, op, fn, tbl)
			if err != nil {
				e.log.Error("%s check: %v", t.ID, err)
				return false
			}
			e.syncProps(op, tbl)
			return lua.LVAsBool(ret)
		}
	}

	if err := t.Validate(); err != nil {
		L.ArgError(1, err.Error())
	}
	e.pending = append(e.pending, t)
	return 0
}

// propDefs reads either a list of {name=..., default=...} tables or a map
// of name = default.
func propDefs(tbl *lua.LTable) []operator.PropDef {
	var defs []operator.PropDef
	tbl.ForEach(func(k, v lua.LValue) {
		if entry, ok := v.(*lua.LTable); ok && k.Type() == lua.LTNumber {
			defs = append(defs, operator.PropDef{
				Name:        luaString(entry, "name"),
				Description: luaString(entry, "description"),
				Default:     toGoValue(entry.RawGetString("default")),
				Required:    lua.LVAsBool(entry.RawGetString("required")),
				SkipSave:    lua.LVAsBool(entry.RawGetString("skip_save")),
			})
			return
		}
		defs = append(defs, operator.PropDef{Name: lua.LVAsString(k), Default: toGoValue(v)})
	})
	sort.SliceStable(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

func luaString(tbl *lua.LTable, key string) string {
	return lua.LVAsString(tbl.RawGetString(key))
}

func luaFunc(tbl *lua.LTable, key string) *lua.LFunction {
	fn, _ := tbl.RawGetString(key).(*lua.LFunction)
	return fn
}
