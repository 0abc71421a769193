// Package app runs autotype widgets. It builds one animator per configured
// widget, paints them into a terminal backend or a plain writer, and owns
// the lifecycle: startup, input handling, live reconfiguration and
// shutdown.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dshills/autotype/internal/config"
	"github.com/dshills/autotype/internal/logging"
	"github.com/dshills/autotype/internal/renderer"
	"github.com/dshills/autotype/internal/renderer/backend"
	"github.com/dshills/autotype/internal/renderer/style"
)

// DefaultBlinkInterval is how often caret blink state is sampled.
const DefaultBlinkInterval = 250 * time.Millisecond

// Options configures the application.
type Options struct {
	// Stdout receives plain mode output. Defaults to os.Stdout.
	Stdout io.Writer

	// LineMode writes each plain mode update on its own line instead of
	// rewriting the current line.
	LineMode bool

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *logging.Logger

	// Clock drives animation and blinking. Defaults to the real clock.
	Clock clockwork.Clock

	// Styles holds shared style rules. Defaults to style.Global().
	Styles *style.Registry

	// BlinkInterval is the caret blink sampling period.
	BlinkInterval time.Duration
}

// Application coordinates widgets, the render target and input.
type Application struct {
	mu sync.Mutex

	cfg     *config.Config
	opts    Options
	log     *logging.Logger
	metrics *Metrics

	backend backend.Backend
	writer  *renderer.WriterSurface
	widgets []*widget

	running  atomic.Bool
	runCtx   context.Context
	done     chan struct{}
	doneOnce sync.Once
}

// New creates an application for cfg. The configuration must validate
// and define at least one widget.
func New(cfg *config.Config, opts Options) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if len(cfg.Widgets) == 0 {
		return nil, ErrNoWidgets
	}

	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Styles == nil {
		opts.Styles = style.Global()
	}
	if opts.BlinkInterval <= 0 {
		opts.BlinkInterval = DefaultBlinkInterval
	}

	return &Application{
		cfg:     cfg.Clone(),
		opts:    opts,
		log:     opts.Logger.WithComponent("app"),
		metrics: NewMetrics(),
		done:    make(chan struct{}),
	}, nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run starts the widgets and blocks until ctx is canceled, Shutdown is
// called or the user quits. Styled mode paints into the backend; plain
// mode writes the first widget to Options.Stdout.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.metrics.Reset()
	defer app.logSummary()

	mode, _ := app.config().RenderMode()
	if mode == renderer.ModePlain {
		return app.runPlain(ctx)
	}
	return app.runStyled(ctx)
}

func (app *Application) logSummary() {
	snap := app.metrics.Snapshot()
	app.log.Info("stopped after %s: %d renders (%.1f/s), %d reloads",
		snap.Uptime.Round(time.Millisecond), snap.Renders, snap.RendersPerSecond(), snap.Reloads)
}

func (app *Application) runPlain(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.mu.Lock()
	app.writer = renderer.NewWriterSurface(app.opts.Stdout, app.opts.LineMode)
	app.runCtx = ctx
	err := app.startWidgetsLocked()
	app.mu.Unlock()
	if err != nil {
		return err
	}

	app.log.Info("running in plain mode")
	app.wait(ctx)

	app.mu.Lock()
	app.stopWidgetsLocked()
	app.writer.Finish()
	werr := app.writer.Err()
	app.writer = nil
	app.runCtx = nil
	app.mu.Unlock()

	return werr
}

func (app *Application) runStyled(ctx context.Context) error {
	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()

	if b == nil {
		return &InitError{Component: "backend", Err: ErrNoBackend}
	}
	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	b.HideCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.mu.Lock()
	app.runCtx = ctx
	err := app.startWidgetsLocked()
	count := len(app.widgets)
	app.mu.Unlock()
	if err != nil {
		b.Shutdown()
		return err
	}

	app.log.Info("running %d widget(s) in styled mode", count)

	var wg sync.WaitGroup
	events := make(chan backend.Event, 16)
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.pollEvents(b, events, stop)
	}()

	app.eventLoop(ctx, b, events)
	close(stop)

	app.mu.Lock()
	app.stopWidgetsLocked()
	app.runCtx = nil
	app.mu.Unlock()

	b.Shutdown()
	wg.Wait()
	return nil
}

// wait blocks until ctx is canceled or Shutdown is called.
func (app *Application) wait(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-app.done:
	}
}

// Shutdown stops the application. Safe to call more than once and from
// any goroutine.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() {
		close(app.done)
	})
}

// Reload replaces the configuration. Running widgets are stopped, so no
// stale frame is painted, their screen regions are blanked, and new
// widgets are built from cfg. A running application cannot switch render
// mode; such a reload returns ErrModeChange and changes nothing.
func (app *Application) Reload(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(cfg.Widgets) == 0 {
		return ErrNoWidgets
	}
	mode, _ := cfg.RenderMode()

	app.mu.Lock()
	defer app.mu.Unlock()

	running := app.runCtx != nil && app.runCtx.Err() == nil
	if running {
		if current := app.activeModeLocked(); mode != current {
			return fmt.Errorf("%w: running %s, requested %s", ErrModeChange, current, mode)
		}
	}

	app.cfg = cfg.Clone()
	app.metrics.RecordReload()

	if !running {
		return nil
	}

	old := app.widgets
	app.stopWidgetsLocked()
	for _, w := range old {
		if w.surface != nil {
			w.surface.Clear()
		}
	}
	if err := app.startWidgetsLocked(); err != nil {
		return err
	}
	app.metrics.RecordRestart()
	app.log.Info("configuration applied, %d widget(s) restarted", len(app.widgets))
	return nil
}

// activeModeLocked returns the mode of the current run.
func (app *Application) activeModeLocked() renderer.Mode {
	if app.writer != nil {
		return renderer.ModePlain
	}
	return renderer.ModeStyled
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns a copy of the current configuration.
func (app *Application) Config() *config.Config {
	return app.config().Clone()
}

func (app *Application) config() *config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.cfg
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// WidgetCount returns the number of running widgets.
func (app *Application) WidgetCount() int {
	app.mu.Lock()
	defer app.mu.Unlock()
	return len(app.widgets)
}
