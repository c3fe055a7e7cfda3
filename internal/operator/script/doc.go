// Package script defines operator types in Lua.
//
// A script registers types through wm.register_operator:
//
//	wm.register_operator{
//	    id = "script.nudge",
//	    name = "Nudge",
//	    flags = {"REGISTER", "UNDO"},
//	    props = {{name = "step", default = 1}},
//	    poll = function(ctx) return not ctx.locked end,
//	    exec = function(op)
//	        op:report("INFO", "nudged by " .. op.props.step)
//	        wm.notify("SCENE", 3)
//	        return "FINISHED"
//	    end,
//	}
//
// Callbacks return a result name or a list of names ("FINISHED",
// {"RUNNING_MODAL", "PASS_THROUGH"}). A Lua error or a malformed result
// cancels the operator and adds an error report.
//
// The state only opens the base, table, string and math libraries. An
// Engine is bound to the goroutine running the window manager.
package script
