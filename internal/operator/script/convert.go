package script

import (
	"fmt"
	"reflect"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/operator"
)

// opTable builds the table a callback receives as op. op.props starts
// with the set properties and the declared defaults.
func (e *Engine) opTable(op *operator.Operator) *lua.LTable {
	L := e.L
	tbl := L.NewTable()
	tbl.RawSetString("id", lua.LString(op.Type.ID))
	tbl.RawSetString("name", lua.LString(op.Type.Name))

	props := L.NewTable()
	for _, def := range op.Type.Props {
		if def.Default != nil {
			props.RawSetString(def.Name, toLuaValue(L, def.Default))
		}
	}
	for k, v := range op.Props {
		props.RawSetString(k, toLuaValue(L, v))
	}
	tbl.RawSetString("props", props)

	tbl.RawSetString("report", L.NewFunction(func(L *lua.LState) int {
		sev, ok := severityNames[strings.ToUpper(L.CheckString(2))]
		if !ok {
			L.ArgError(2, "unknown report severity")
		}
		op.Reports.Add(sev, L.CheckString(3))
		return 0
	}))
	return tbl
}

// syncProps copies op.props back. Values equal to what the callback was
// given for an unset property stay unset, so defaults are not frozen into
// the instance.
func (e *Engine) syncProps(op *operator.Operator, tbl *lua.LTable) {
	props, ok := tbl.RawGetString("props").(*lua.LTable)
	if !ok {
		return
	}

	seen := make(map[string]bool)
	props.ForEach(func(k, v lua.LValue) {
		name := lua.LVAsString(k)
		seen[name] = true
		val := toGoValue(v)
		if !op.Props.IsSet(name) {
			if def, ok := op.Type.Prop(name); ok && def.Default != nil &&
				reflect.DeepEqual(val, toGoValue(toLuaValue(e.L, def.Default))) {
				return
			}
		}
		if m, ok := val.(map[string]any); ok {
			val = operator.Properties(m)
		}
		if op.Props == nil {
			op.Props = make(operator.Properties)
		}
		op.Props[name] = val
	})
	for name := range op.Props {
		if !seen[name] {
			delete(op.Props, name)
		}
	}
}

func (e *Engine) contextTable(ctx operator.Context) *lua.LTable {
	tbl := e.L.NewTable()
	if area := ctx.Area(); area != nil {
		tbl.RawSetString("area", lua.LString(area.AreaType()))
	}
	if region := ctx.Region(); region != nil {
		tbl.RawSetString("region", lua.LString(region.RegionType()))
	}
	tbl.RawSetString("locked", lua.LBool(ctx.InterfaceLocked()))
	return tbl
}

func (e *Engine) eventTable(ev *event.Event) *lua.LTable {
	tbl := e.L.NewTable()
	tbl.RawSetString("type", lua.LString(ev.Type.String()))
	tbl.RawSetString("value", lua.LString(ev.Value.String()))
	tbl.RawSetString("x", lua.LNumber(ev.XY.X))
	tbl.RawSetString("y", lua.LNumber(ev.XY.Y))
	tbl.RawSetString("mx", lua.LNumber(ev.MVal.X))
	tbl.RawSetString("my", lua.LNumber(ev.MVal.Y))
	tbl.RawSetString("shift", lua.LBool(ev.Modifier.Has(event.ModShift)))
	tbl.RawSetString("ctrl", lua.LBool(ev.Modifier.Has(event.ModCtrl)))
	tbl.RawSetString("alt", lua.LBool(ev.Modifier.Has(event.ModAlt)))
	tbl.RawSetString("oskey", lua.LBool(ev.Modifier.Has(event.ModOSKey)))
	tbl.RawSetString("is_repeat", lua.LBool(ev.IsRepeat()))
	tbl.RawSetString("pressure", lua.LNumber(ev.Tablet.Pressure))
	if ev.UTF8 != "" {
		tbl.RawSetString("utf8", lua.LString(ev.UTF8))
	}
	if ev.Type == event.EvtModalMap {
		tbl.RawSetString("modal_value", lua.LNumber(ev.ModalValue))
	}
	return tbl
}

// toGoValue converts a Lua value. Whole numbers become int64, arrays
// become []any and other tables map[string]any.
func toGoValue(lv lua.LValue) any {
	return toGoVisited(lv, make(map[*lua.LTable]bool))
}

func toGoVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	if n := t.MaxN(); n > 0 {
		count := 0
		t.ForEach(func(_, _ lua.LValue) { count++ })
		if count == n {
			arr := make([]any, n)
			for i := 1; i <= n; i++ {
				arr[i-1] = toGoVisited(t.RawGetInt(i), visited)
			}
			return arr
		}
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		key := lua.LVAsString(k)
		if key == "" {
			key = k.String()
		}
		m[key] = toGoVisited(v, visited)
	})
	return m
}

// toLuaValue converts a property value.
func toLuaValue(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int32:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float32:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []any:
		t := L.NewTable()
		for i, item := range val {
			t.RawSetInt(i+1, toLuaValue(L, item))
		}
		return t
	case []string:
		t := L.NewTable()
		for i, item := range val {
			t.RawSetInt(i+1, lua.LString(item))
		}
		return t
	case operator.Properties:
		return mapToTable(L, val)
	case map[string]any:
		return mapToTable(L, val)
	case lua.LValue:
		return val
	default:
		return lua.LString(fmt.Sprint(val))
	}
}

func mapToTable(L *lua.LState, m map[string]any) *lua.LTable {
	t := L.NewTable()
	for k, v := range m {
		t.RawSetString(k, toLuaValue(L, v))
	}
	return t
}
