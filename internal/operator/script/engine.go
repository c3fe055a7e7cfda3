package script

import (
	"context"
	"errors"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/logging"
	"github.com/dshills/wmcore/internal/notifier"
	"github.com/dshills/wmcore/internal/operator"
	"github.com/dshills/wmcore/internal/report"
)

// DefaultTimeout bounds a single callback.
const DefaultTimeout = 2 * time.Second

var (
	// ErrScript wraps errors raised while loading a script.
	ErrScript = errors.New("script: load failed")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("script: engine closed")
)

// frame is the operator context of a running callback.
type frame struct {
	ctx operator.Context
	op  *operator.Operator
}

// Engine owns one Lua state and the operator types defined in it.
type Engine struct {
	L   *lua.LState
	log *logging.Logger

	timeout time.Duration
	frames  []frame
	pending []*operator.Type
	closed  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the per-callback execution limit.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the logger for script errors and wm.log.
func WithLogger(log *logging.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New creates a sandboxed engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:     logging.Null(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(e.L)
	lua.OpenTable(e.L)
	lua.OpenString(e.L)
	lua.OpenMath(e.L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		e.L.SetGlobal(name, lua.LNil)
	}

	e.L.SetGlobal("wm", e.L.SetFuncs(e.L.NewTable(), map[string]lua.LGFunction{
		"register_operator": e.luaRegisterOperator,
		"notify":            e.luaNotify,
		"call":              e.luaCall,
		"locked":            e.luaLocked,
		"log":               e.luaLog,
	}))
	return e
}

// Close releases the Lua state.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.L.Close()
	e.closed = true
}

// LoadString runs src and returns the operator types it registered.
func (e *Engine) LoadString(name, src string) ([]*operator.Type, error) {
	return e.load(name, func() error { return e.L.DoString(src) })
}

// LoadFile runs the script at path and returns the types it registered.
func (e *Engine) LoadFile(path string) ([]*operator.Type, error) {
	return e.load(path, func() error { return e.L.DoFile(path) })
}

func (e *Engine) load(name string, run func() error) ([]*operator.Type, error) {
	if e.closed {
		return nil, ErrClosed
	}
	e.pending = nil
	if err := e.protect(run); err != nil {
		e.pending = nil
		return nil, fmt.Errorf("%w: %s: %v", ErrScript, name, err)
	}
	types := e.pending
	e.pending = nil
	e.log.Debug("loaded %d operator types from %s", len(types), name)
	return types, nil
}

// protect runs fn under the callback timeout with panic recovery.
func (e *Engine) protect(fn func() error) (err error) {
	prev := e.L.Context()
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	e.L.SetContext(ctx)
	defer func() {
		if prev != nil {
			e.L.SetContext(prev)
		} else {
			e.L.RemoveContext()
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// call runs fn with args inside a frame for ctx/op and returns its first
// result.
func (e *Engine) call(ctx operator.Context, op *operator.Operator, fn *lua.LFunction, args ...lua.LValue) (lua.LValue, error) {
	if e.closed {
		return lua.LNil, ErrClosed
	}
	e.frames = append(e.frames, frame{ctx: ctx, op: op})
	defer func() { e.frames = e.frames[:len(e.frames)-1] }()

	ret := lua.LValue(lua.LNil)
	err := e.protect(func() error {
		if err := e.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
			return err
		}
		ret = e.L.Get(-1)
		e.L.Pop(1)
		return nil
	})
	return ret, err
}

// callResult runs an operator callback and turns its return value into a
// result. Failures cancel the operator with an error report.
func (e *Engine) callResult(ctx operator.Context, op *operator.Operator, fn *lua.LFunction, ev *event.Event) operator.Result {
	args := []lua.LValue{e.opTable(op)}
	if ev != nil {
		args = append(args, e.eventTable(ev))
	}
	ret, err := e.call(ctx, op, fn, args...)
	e.syncProps(op, args[0].(*lua.LTable))
	if err == nil {
		var r operator.Result
		if r, err = parseResult(ret); err == nil {
			return r
		}
	}
	e.log.Error("%s: %v", op.Type.ID, err)
	op.Reports.Addf(report.Error, "%s: %v", op.Type.ID, err)
	return operator.Cancelled
}

func (e *Engine) current(L *lua.LState, fn string) frame {
	if len(e.frames) == 0 {
		L.RaiseError("wm.%s called outside an operator callback", fn)
	}
	return e.frames[len(e.frames)-1]
}

// wm.notify(category [, data [, action]])
func (e *Engine) luaNotify(L *lua.LState) int {
	f := e.current(L, "notify")
	var typ notifier.Type
	switch v := L.CheckAny(1).(type) {
	case lua.LString:
		cat, ok := notifier.ParseCategory(string(v))
		if !ok {
			L.ArgError(1, "unknown notifier category "+string(v))
		}
		typ = cat
	case lua.LNumber:
		typ = notifier.Type(uint32(v)) & notifier.MaskCategory
		if typ == 0 {
			typ = notifier.Type(uint32(v)<<24) & notifier.MaskCategory
		}
	default:
		L.ArgError(1, "category must be a name or number")
	}
	typ |= notifier.Type(L.OptInt(2, 0)<<16) & notifier.MaskData
	typ |= notifier.Type(L.OptInt(3, 0)) & notifier.MaskAction
	f.ctx.AddNotifier(typ, nil)
	return 0
}

// wm.call(id [, props]) -> result names
func (e *Engine) luaCall(L *lua.LState) int {
	f := e.current(L, "call")
	id := L.CheckString(1)
	var props operator.Properties
	if tbl := L.OptTable(2, nil); tbl != nil {
		if m, ok := toGoValue(tbl).(map[string]any); ok {
			props = operator.Properties(m)
		}
	}
	L.Push(lua.LString(f.ctx.Call(id, props).String()))
	return 1
}

// wm.locked() -> bool
func (e *Engine) luaLocked(L *lua.LState) int {
	f := e.current(L, "locked")
	L.Push(lua.LBool(f.ctx.InterfaceLocked()))
	return 1
}

// wm.log(msg)
func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("%s", L.CheckString(1))
	return 0
}

var resultNames = map[string]operator.Result{
	"RUNNING_MODAL": operator.RunningModal,
	"CANCELLED":     operator.Cancelled,
	"FINISHED":      operator.Finished,
	"PASS_THROUGH":  operator.PassThrough,
	"HANDLED":       operator.Handled,
	"INTERFACE":     operator.Interface,
}

func parseResult(v lua.LValue) (operator.Result, error) {
	switch rv := v.(type) {
	case lua.LString:
		r, ok := resultNames[string(rv)]
		if !ok {
			return 0, fmt.Errorf("unknown result %q", string(rv))
		}
		return r, nil
	case *lua.LTable:
		var r operator.Result
		var err error
		rv.ForEach(func(_, item lua.LValue) {
			if err != nil {
				return
			}
			var part operator.Result
			part, err = parseResult(item)
			r |= part
		})
		if err == nil && r == 0 {
			err = errors.New("empty result set")
		}
		return r, err
	default:
		return 0, fmt.Errorf("callback returned %s, want a result name", v.Type())
	}
}
