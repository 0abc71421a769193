package app

import (
	"context"

	"github.com/dshills/autotype/internal/renderer/backend"
)

// pollEvents forwards backend events until stop is closed. PollEvent
// blocks, so the caller shuts the backend down to release it.
func (app *Application) pollEvents(b backend.Backend, events chan<- backend.Event, stop <-chan struct{}) {
	for {
		ev := b.PollEvent()
		if ev.Type == backend.EventNone {
			select {
			case <-stop:
				return
			default:
				continue
			}
		}

		select {
		case events <- ev:
		case <-stop:
			return
		}
	}
}

// eventLoop handles input and drives caret blinking until the application
// is asked to stop.
func (app *Application) eventLoop(ctx context.Context, b backend.Backend, events <-chan backend.Event) {
	ticker := app.opts.Clock.NewTicker(app.opts.BlinkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-app.done:
			return

		case ev := <-events:
			app.metrics.RecordEvent()
			if app.handleEvent(b, ev) {
				app.log.Debug("quit requested")
				return
			}

		case <-ticker.Chan():
			app.tickBlink()
		}
	}
}

// handleEvent processes one backend event. It returns true when the user
// asked to quit.
func (app *Application) handleEvent(b backend.Backend, ev backend.Event) bool {
	switch ev.Type {
	case backend.EventKey:
		return isQuitKey(ev)

	case backend.EventResize:
		app.metrics.RecordResize()
		b.Clear()
		app.repaint()
	}
	return false
}

func isQuitKey(ev backend.Event) bool {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return true
	case backend.KeyRune:
		return ev.Rune == 'q' || ev.Rune == 'Q'
	default:
		return false
	}
}

// tickBlink advances every caret blink.
func (app *Application) tickBlink() {
	now := app.opts.Clock.Now()

	app.mu.Lock()
	defer app.mu.Unlock()

	for _, w := range app.widgets {
		if w.surface != nil && w.surface.Tick(now) {
			app.metrics.RecordBlink()
		}
	}
}

// repaint redraws every widget.
func (app *Application) repaint() {
	app.mu.Lock()
	defer app.mu.Unlock()

	for _, w := range app.widgets {
		if w.surface != nil {
			w.surface.Repaint()
		}
	}
}
