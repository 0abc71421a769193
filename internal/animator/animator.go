// Package animator drives the typewriter animation.
//
// A Machine holds the typing/backspacing state and produces one Step at a
// time. An Animator runs a Machine against a clock: it performs a step,
// hands any visible change to its Renderer, and waits the step's delay on a
// single timer before stepping again. Stopping the animator cancels that
// timer, so nothing is rendered after Stop returns.
package animator

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/dshills/autotype/internal/logging"
)

// Renderer receives the visible text on every change.
type Renderer interface {
	Render(text string)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(text string)

// Render calls f(text).
func (f RendererFunc) Render(text string) { f(text) }

// Option configures an Animator.
type Option func(*Animator)

// WithClock sets the clock used for scheduling.
func WithClock(c clockwork.Clock) Option {
	return func(a *Animator) {
		if c != nil {
			a.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *Animator) {
		if l != nil {
			a.log = l
		}
	}
}

// WithID sets the animator identifier used in logs.
func WithID(id string) Option {
	return func(a *Animator) {
		if id != "" {
			a.id = id
		}
	}
}

// Animator runs the typewriter loop for one render target.
type Animator struct {
	id       string
	cfg      Config
	renderer Renderer
	clock    clockwork.Clock
	log      *logging.Logger

	mu      sync.Mutex
	machine *Machine

	renders atomic.Uint64

	runMu   sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates an animator. Negative delays in cfg are clamped to zero.
func New(cfg Config, r Renderer, opts ...Option) *Animator {
	a := &Animator{
		id:       uuid.New().String(),
		renderer: r,
		clock:    clockwork.NewRealClock(),
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	cfg, clamped := cfg.Normalize()
	a.cfg = cfg
	a.machine = NewMachine(cfg)
	a.log = a.log.WithComponent("animator").WithField("id", a.id)

	if len(clamped) > 0 {
		a.log.Warn("negative delays clamped to zero: %v", clamped)
	}

	return a
}

// ID returns the animator identifier.
func (a *Animator) ID() string {
	return a.id
}

// Config returns the normalized configuration.
func (a *Animator) Config() Config {
	return a.cfg
}

// State returns a snapshot of the animation state.
func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.machine.State()
}

// Renders returns the number of render calls made so far.
func (a *Animator) Renders() uint64 {
	return a.renders.Load()
}

// Run drives the animation until ctx is canceled.
// With no strings configured it returns immediately without rendering or
// scheduling anything.
func (a *Animator) Run(ctx context.Context) error {
	a.mu.Lock()
	empty := a.machine.Empty()
	a.mu.Unlock()

	if empty {
		a.log.Debug("no strings configured, nothing to animate")
		return nil
	}

	a.log.Debug("animation started with %d strings", len(a.cfg.Strings))

	for {
		if ctx.Err() != nil {
			return nil
		}

		a.mu.Lock()
		step, _ := a.machine.Next()
		a.mu.Unlock()

		if step.Render {
			a.renderer.Render(step.Text)
			a.renders.Add(1)
		}

		timer := a.clock.NewTimer(step.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			a.log.Debug("animation stopped")
			return nil
		case <-timer.Chan():
		}
	}
}

// Start runs the animation on its own goroutine.
func (a *Animator) Start(ctx context.Context) error {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	if a.activeLocked() {
		return ErrAlreadyRunning
	}
	if a.cancel != nil {
		a.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan struct{})
	a.running = true

	go func(done chan struct{}) {
		defer close(done)
		_ = a.Run(ctx)
	}(a.done)

	return nil
}

// Stop cancels the pending step and waits for the loop to exit.
// No render happens after Stop returns. Stop is a no-op if not started.
func (a *Animator) Stop() {
	a.runMu.Lock()
	if !a.running {
		a.runMu.Unlock()
		return
	}
	cancel, done := a.cancel, a.done
	a.running = false
	a.runMu.Unlock()

	cancel()
	<-done
}

// Done returns a channel closed when the loop started by Start exits.
// It returns nil if the animator was never started.
func (a *Animator) Done() <-chan struct{} {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	return a.done
}

// Running returns true while the loop started by Start is active. It is
// false once Stop is called or the loop exits on its own, e.g. because
// there is nothing to animate or the context was canceled.
func (a *Animator) Running() bool {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	return a.activeLocked()
}

func (a *Animator) activeLocked() bool {
	if !a.running {
		return false
	}
	select {
	case <-a.done:
		return false
	default:
		return true
	}
}
