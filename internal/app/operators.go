package app

import (
	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/keymap"
	"github.com/dshills/wmcore/internal/notifier"
	"github.com/dshills/wmcore/internal/operator"
	"github.com/dshills/wmcore/internal/report"
	"github.com/dshills/wmcore/internal/wm"
)

// Built-in key-map names.
const (
	KeymapWindow = "Window"
	KeymapScreen = "Screen"
)

// Built-in operator IDs.
const (
	OpQuit          = "wm.quit"
	OpKeyconfigSave = "wm.keyconfig_save"
	OpUndo          = "ed.undo"
	OpRedo          = "ed.redo"
	OpRepeatLast    = "screen.repeat_last"
	OpRedoLast      = "screen.redo_last"
)

// registerDefaultKeymaps fills in the stock bindings. Terminals cannot
// report Ctrl+Shift+Z apart from Ctrl+Z, so redo also sits on Ctrl+Y.
func registerDefaultKeymaps(c *keymap.Config) {
	win := c.Ensure(KeymapWindow, "", "")
	win.Add(keymap.NewItem(event.KeyQ, event.Press, OpQuit, nil).SetModifiers(event.ModCtrl))
	win.Add(keymap.NewItem(event.KeyS, event.Press, OpKeyconfigSave, nil).SetModifiers(event.ModCtrl | event.ModAlt))

	scr := c.Ensure(KeymapScreen, "", "")
	scr.Add(keymap.NewItem(event.KeyZ, event.Press, OpUndo, nil).SetModifiers(event.ModCtrl))
	scr.Add(keymap.NewItem(event.KeyZ, event.Press, OpRedo, nil).SetModifiers(event.ModCtrl | event.ModShift))
	scr.Add(keymap.NewItem(event.KeyY, event.Press, OpRedo, nil).SetModifiers(event.ModCtrl))
	scr.Add(keymap.NewItem(event.KeyR, event.Press, OpRepeatLast, nil).SetModifiers(event.ModShift))
	scr.Add(keymap.NewItem(event.F9Key, event.Press, OpRedoLast, nil))
}

// builtinOperators returns the operator types every session has. They
// reach the window manager through app, so they must only run once
// bootstrap created it.
func (app *Application) builtinOperators() []*operator.Type {
	return []*operator.Type{
		{
			ID:          OpQuit,
			Name:        "Quit",
			Description: "Leave the application",
			Flag:        operator.FlagLockBypass,
			Exec: func(_ operator.Context, _ *operator.Operator) operator.Result {
				app.manager.RequestQuit()
				return operator.Finished
			},
		},
		{
			ID:          OpUndo,
			Name:        "Undo",
			Description: "Undo the last step",
			Poll: func(operator.Context) bool {
				return app.manager.UndoStack().CanUndo()
			},
			Exec: func(ctx operator.Context, op *operator.Operator) operator.Result {
				name, err := app.manager.UndoStack().Undo()
				if err != nil {
					op.Reports.Addf(report.Error, "Undo failed: %v", err)
					return operator.Cancelled
				}
				op.Reports.Addf(report.Info, "Undone to %q", name)
				ctx.AddNotifier(notifier.NCWM|notifier.NDUndo, nil)
				return operator.Finished
			},
		},
		{
			ID:          OpRedo,
			Name:        "Redo",
			Description: "Redo the last undone step",
			Poll: func(operator.Context) bool {
				return app.manager.UndoStack().CanRedo()
			},
			Exec: func(ctx operator.Context, op *operator.Operator) operator.Result {
				name, err := app.manager.UndoStack().Redo()
				if err != nil {
					op.Reports.Addf(report.Error, "Redo failed: %v", err)
					return operator.Cancelled
				}
				op.Reports.Addf(report.Info, "Redone %q", name)
				ctx.AddNotifier(notifier.NCWM|notifier.NDUndo, nil)
				return operator.Finished
			},
		},
		{
			ID:          OpRepeatLast,
			Name:        "Repeat Last",
			Description: "Run the last registered operator again",
			Poll: func(operator.Context) bool {
				return app.manager.History().Last() != nil
			},
			Exec: func(ctx operator.Context, op *operator.Operator) operator.Result {
				return app.rerun(ctx, op, func(win *wm.Window) (operator.Result, error) {
					return app.manager.OperatorRepeatLast(win)
				})
			},
		},
		{
			ID:          OpRedoLast,
			Name:        "Redo Last",
			Description: "Undo the last redoable operator and run it again",
			Poll: func(operator.Context) bool {
				return app.manager.OperatorLastRedo() != nil
			},
			Exec: func(ctx operator.Context, op *operator.Operator) operator.Result {
				return app.rerun(ctx, op, func(win *wm.Window) (operator.Result, error) {
					return app.manager.OperatorRedoLast(win, nil)
				})
			},
		},
		{
			ID:          OpKeyconfigSave,
			Name:        "Save Key-Maps",
			Description: "Write the user key-maps to disk",
			Flag:        operator.FlagLockBypass,
			Props: []operator.PropDef{
				{Name: "filepath", Description: "Target file, .toml or .yaml", SkipSave: true},
			},
			Exec: func(_ operator.Context, op *operator.Operator) operator.Result {
				path := op.PropString("filepath")
				if path == "" {
					path = app.keymapPath()
				}
				if path == "" {
					op.Reports.Add(report.ErrorInvalidInput, "No key-map file configured")
					return operator.Cancelled
				}
				if err := app.manager.Keymaps().SaveUser(path); err != nil {
					op.Reports.Addf(report.Error, "Saving key-maps: %v", err)
					return operator.Cancelled
				}
				op.Reports.Addf(report.Info, "Key-maps saved to %s", path)
				return operator.Finished
			},
		},
	}
}

// rerun runs fn in the context's window and folds its outcome into op's
// result. The rerun operator already did its own bookkeeping.
func (app *Application) rerun(ctx operator.Context, op *operator.Operator, fn func(win *wm.Window) (operator.Result, error)) operator.Result {
	win, ok := ctx.Window().(*wm.Window)
	if !ok || win == nil {
		return operator.Cancelled
	}
	r, err := fn(win)
	if err != nil {
		op.Reports.Addf(report.Warning, "%v", err)
		return operator.Cancelled
	}
	if r.Has(operator.Finished) {
		return operator.Finished
	}
	return operator.Cancelled
}
