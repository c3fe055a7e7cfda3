package app

import (
	"context"
	"time"

	"github.com/dshills/wmcore/internal/ghost"
	"github.com/dshills/wmcore/internal/logging"
)

// inputBuffer is how many raw batches the pump may run ahead.
const inputBuffer = 64

// Run pumps the platform source, timers, window events and notifiers
// until ctx is done, the source closes, Shutdown is called or an operator
// requests quit. Resources are released before Run returns.
func (app *Application) Run(ctx context.Context) error {
	if app.shutdown.Load() {
		return ErrShutDown
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.stop()

	log := app.log.WithComponent(logging.CategoryApp)
	input := make(chan []ghost.RawEvent, inputBuffer)
	go app.pump(app.source, input)

	step := app.prefs.TimerStep()
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	log.Info("main loop started")
	app.pass()
	for !app.manager.QuitRequested() {
		select {
		case <-ctx.Done():
			log.Info("main loop cancelled: %v", ctx.Err())
			return nil

		case <-app.done:
			return nil

		case raws, ok := <-input:
			if !ok {
				log.Info("input source closed")
				return nil
			}
			for _, raw := range raws {
				app.manager.AddGhostEvent(app.window, raw)
			}
			app.metrics.RecordInput(len(raws))

		case path := <-app.reload:
			app.reloadFile(path)
			app.metrics.RecordReload()
			if s := app.prefs.TimerStep(); s != step {
				step = s
				ticker.Reset(step)
			}

		case <-ticker.C:
		}
		app.pass()
	}
	log.Info("quit requested")
	return nil
}

// pass runs one timers, events, notifiers cycle.
func (app *Application) pass() {
	start := time.Now()
	app.manager.ProcessTimers(start)
	app.manager.ProcessEvents()
	app.manager.ProcessNotifiers()
	app.metrics.RecordPass(time.Since(start))
}

// pump forwards source batches until the source closes or the
// application stops. Poll blocks, so it runs on its own goroutine; the
// window manager is only touched from Run.
func (app *Application) pump(src ghost.Source, out chan<- []ghost.RawEvent) {
	defer close(out)
	for {
		raws, ok := src.Poll()
		if !ok {
			return
		}
		if len(raws) == 0 {
			continue
		}
		select {
		case out <- raws:
		case <-app.done:
			return
		}
	}
}

// stop ends a Run: the pump is released and resources are closed.
func (app *Application) stop() {
	if app.shutdown.CompareAndSwap(false, true) {
		close(app.done)
	}
	app.running.Store(false)
	app.close()
	app.log.WithComponent(logging.CategoryApp).Debug("main loop stopped: %s", app.metrics.Snapshot())
}
