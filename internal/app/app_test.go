package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dshills/autotype/internal/config"
	"github.com/dshills/autotype/internal/renderer/backend"
	"github.com/dshills/autotype/internal/renderer/style"
)

// fastWidget types immediately and then holds the full text.
func fastWidget(row int, strs ...string) config.Widget {
	w := config.NewWidget(strs...)
	w.Caret = config.Ptr("|")
	w.TypingSpeed = config.Ptr(1)
	w.PauseAfterTyping = config.Ptr(60_000)
	w.EnableBlinking = config.Ptr(false)
	w.Row = row
	return w
}

func testConfig(widgets ...config.Widget) *config.Config {
	cfg := config.Default()
	cfg.Widgets = widgets
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config, opts Options) *Application {
	t.Helper()
	if opts.Styles == nil {
		opts.Styles = style.NewRegistry()
	}
	app, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return app
}

// runApp runs app in the background and returns a function that waits for
// Run to return.
func runApp(t *testing.T, app *Application, ctx context.Context) func() error {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- app.Run(ctx) }()
	return func() error {
		select {
		case err := <-errc:
			return err
		case <-time.After(2 * time.Second):
			t.Fatal("Run() did not return")
			return nil
		}
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestNewErrors(t *testing.T) {
	if _, err := New(testConfig(), Options{}); !errors.Is(err, ErrNoWidgets) {
		t.Errorf("New() with no widgets error = %v, want ErrNoWidgets", err)
	}

	cfg := testConfig(config.NewWidget("x"))
	cfg.Render.Mode = "fancy"
	_, err := New(cfg, Options{})
	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Component != "config" {
		t.Errorf("New() with invalid config error = %v, want config InitError", err)
	}
	if !errors.Is(err, config.ErrInvalidMode) {
		t.Errorf("error should wrap ErrInvalidMode, got %v", err)
	}
}

func TestStyledRequiresBackend(t *testing.T) {
	app := newTestApp(t, testConfig(fastWidget(0, "x")), Options{})

	err := app.Run(context.Background())
	if !errors.Is(err, ErrNoBackend) {
		t.Errorf("Run() error = %v, want ErrNoBackend", err)
	}
	if app.IsRunning() {
		t.Error("IsRunning() should be false after Run fails")
	}
}

func TestStyledWidgets(t *testing.T) {
	b := backend.NewNullBackend(40, 5)
	app := newTestApp(t, testConfig(fastWidget(0, "Hello"), fastWidget(2, "World")), Options{})
	if err := app.SetBackend(b); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wait := runApp(t, app, ctx)

	waitFor(t, "both widgets typed", func() bool {
		return b.Row(0) == "Hello|" && b.Row(2) == "World|"
	})
	if app.WidgetCount() != 2 {
		t.Errorf("WidgetCount() = %d, want 2", app.WidgetCount())
	}
	if b.CursorVisible() {
		t.Error("terminal cursor should stay hidden")
	}

	cancel()
	if err := wait(); err != nil {
		t.Errorf("Run() error = %v", err)
	}
	if app.WidgetCount() != 0 {
		t.Error("widgets should be stopped after Run returns")
	}
	if got := app.Metrics().Snapshot().Renders; got < 10 {
		t.Errorf("Renders = %d, want at least 10", got)
	}
}

func TestWidgetPosition(t *testing.T) {
	b := backend.NewNullBackend(40, 5)
	w := fastWidget(1, "abcdef")
	w.Col = 3
	w.Width = 4
	app := newTestApp(t, testConfig(w), Options{})
	_ = app.SetBackend(b)

	ctx, cancel := context.WithCancel(context.Background())
	wait := runApp(t, app, ctx)

	waitFor(t, "clipped widget", func() bool { return b.Row(1) == "   abcd" })

	cancel()
	_ = wait()
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   backend.Event
	}{
		{"q", backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'q'}},
		{"escape", backend.Event{Type: backend.EventKey, Key: backend.KeyEscape}},
		{"ctrl-c", backend.Event{Type: backend.EventKey, Key: backend.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := backend.NewNullBackend(20, 2)
			app := newTestApp(t, testConfig(fastWidget(0, "x")), Options{})
			_ = app.SetBackend(b)

			wait := runApp(t, app, context.Background())
			waitFor(t, "widget typed", func() bool { return b.Row(0) == "x|" })

			b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'a'})
			b.PostEvent(tt.ev)

			if err := wait(); err != nil {
				t.Errorf("Run() error = %v", err)
			}
			if got := app.Metrics().Snapshot().Events; got != 2 {
				t.Errorf("Events = %d, want 2", got)
			}
		})
	}
}

func TestResizeRepaints(t *testing.T) {
	b := backend.NewNullBackend(20, 2)
	app := newTestApp(t, testConfig(fastWidget(1, "resize")), Options{})
	_ = app.SetBackend(b)

	ctx, cancel := context.WithCancel(context.Background())
	wait := runApp(t, app, ctx)
	waitFor(t, "widget typed", func() bool { return b.Row(1) == "resize|" })

	b.Resize(30, 3)

	waitFor(t, "resize counted", func() bool { return app.Metrics().Snapshot().Resizes == 1 })
	waitFor(t, "repaint after resize", func() bool { return b.Row(1) == "resize|" })

	cancel()
	_ = wait()
}

func TestBlinkingCaret(t *testing.T) {
	b := backend.NewNullBackend(20, 1)
	w := fastWidget(0, "Hi")
	w.EnableBlinking = config.Ptr(true)
	app := newTestApp(t, testConfig(w), Options{BlinkInterval: 10 * time.Millisecond})
	_ = app.SetBackend(b)

	ctx, cancel := context.WithCancel(context.Background())
	wait := runApp(t, app, ctx)

	waitFor(t, "caret shown", func() bool { return b.Row(0) == "Hi|" })
	waitFor(t, "caret hidden", func() bool { return b.Row(0) == "Hi" })
	waitFor(t, "caret shown again", func() bool { return b.Row(0) == "Hi|" })

	if app.Metrics().Snapshot().Blinks < 2 {
		t.Errorf("Blinks = %d, want at least 2", app.Metrics().Snapshot().Blinks)
	}

	cancel()
	_ = wait()
}

func TestShutdown(t *testing.T) {
	b := backend.NewNullBackend(20, 2)
	app := newTestApp(t, testConfig(fastWidget(0, "x")), Options{})
	_ = app.SetBackend(b)

	wait := runApp(t, app, context.Background())
	waitFor(t, "running", app.IsRunning)

	if err := app.SetBackend(b); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("SetBackend() while running error = %v, want ErrAlreadyRunning", err)
	}
	if err := app.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() error = %v, want ErrAlreadyRunning", err)
	}

	app.Shutdown()
	app.Shutdown()

	if err := wait(); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestReload(t *testing.T) {
	b := backend.NewNullBackend(20, 3)
	app := newTestApp(t, testConfig(fastWidget(0, "before")), Options{})
	_ = app.SetBackend(b)

	ctx, cancel := context.WithCancel(context.Background())
	wait := runApp(t, app, ctx)
	waitFor(t, "first config", func() bool { return b.Row(0) == "before|" })

	if err := app.Reload(testConfig(fastWidget(1, "after"), fastWidget(2, "two"))); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	waitFor(t, "reloaded widgets", func() bool {
		return b.Row(1) == "after|" && b.Row(2) == "two|"
	})
	if got := b.Row(0); got != "" {
		t.Errorf("Row(0) = %q, want old widget cleared", got)
	}
	snap := app.Metrics().Snapshot()
	if snap.Reloads != 1 || snap.Restarts != 1 {
		t.Errorf("Reloads = %d, Restarts = %d; want 1, 1", snap.Reloads, snap.Restarts)
	}

	cancel()
	_ = wait()
}

func TestReloadRejectsInvalid(t *testing.T) {
	app := newTestApp(t, testConfig(fastWidget(0, "x")), Options{})

	if err := app.Reload(testConfig()); !errors.Is(err, ErrNoWidgets) {
		t.Errorf("Reload() error = %v, want ErrNoWidgets", err)
	}

	bad := testConfig(fastWidget(0, "x"))
	bad.Render.CaretColor = "nope"
	if err := app.Reload(bad); !errors.Is(err, config.ErrInvalidColor) {
		t.Errorf("Reload() error = %v, want ErrInvalidColor", err)
	}
}

func TestReloadWhileStopped(t *testing.T) {
	app := newTestApp(t, testConfig(fastWidget(0, "x")), Options{})

	if err := app.Reload(testConfig(fastWidget(0, "y"))); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := app.Config().Widgets[0].Strings[0]; got != "y" {
		t.Errorf("Config() strings = %q, want %q", got, "y")
	}
	if app.WidgetCount() != 0 {
		t.Error("Reload should not start widgets when stopped")
	}
}

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestPlainMode(t *testing.T) {
	var out syncBuffer
	cfg := testConfig(fastWidget(0, "Hey"), fastWidget(1, "ignored"))
	cfg.Render.Mode = "plain"
	app := newTestApp(t, cfg, Options{Stdout: &out, LineMode: true})

	ctx, cancel := context.WithCancel(context.Background())
	wait := runApp(t, app, ctx)

	waitFor(t, "plain output", func() bool { return strings.Contains(out.String(), "Hey|\n") })
	if app.WidgetCount() != 1 {
		t.Errorf("WidgetCount() = %d, want 1 in plain mode", app.WidgetCount())
	}

	cancel()
	if err := wait(); err != nil {
		t.Errorf("Run() error = %v", err)
	}

	want := "H|\nHe|\nHey|\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPlainModeOverwrite(t *testing.T) {
	var out syncBuffer
	cfg := testConfig(fastWidget(0, "ab"))
	cfg.Render.Mode = "plain"
	app := newTestApp(t, cfg, Options{Stdout: &out})

	ctx, cancel := context.WithCancel(context.Background())
	wait := runApp(t, app, ctx)
	waitFor(t, "plain output", func() bool { return strings.Contains(out.String(), "ab|") })
	cancel()
	_ = wait()

	if got := out.String(); !strings.HasSuffix(got, "ab|\n") || !strings.Contains(got, "\r\x1b[2K") {
		t.Errorf("output = %q, want in-place updates ending with a newline", got)
	}
}

func TestReloadModeChange(t *testing.T) {
	b := backend.NewNullBackend(20, 2)
	app := newTestApp(t, testConfig(fastWidget(0, "before")), Options{})
	_ = app.SetBackend(b)

	ctx, cancel := context.WithCancel(context.Background())
	wait := runApp(t, app, ctx)
	waitFor(t, "first config", func() bool { return b.Row(0) == "before|" })

	plain := testConfig(fastWidget(0, "after"))
	plain.Render.Mode = "plain"
	if err := app.Reload(plain); !errors.Is(err, ErrModeChange) {
		t.Fatalf("Reload() error = %v, want ErrModeChange", err)
	}
	if got := app.Config().Render.Mode; got != "styled" {
		t.Errorf("Config().Render.Mode = %q, want unchanged", got)
	}
	if got := app.Metrics().Snapshot().Reloads; got != 0 {
		t.Errorf("Reloads = %d, want 0 for a rejected reload", got)
	}
	if got := b.Row(0); got != "before|" {
		t.Errorf("Row(0) = %q, want the running widget untouched", got)
	}

	cancel()
	_ = wait()

	if err := app.Reload(plain); err != nil {
		t.Errorf("Reload() after Run returned error = %v", err)
	}
	if got := app.Config().Render.Mode; got != "plain" {
		t.Errorf("Config().Render.Mode = %q, want plain for the next run", got)
	}
}

func TestRunResetsMetrics(t *testing.T) {
	b := backend.NewNullBackend(20, 2)
	app := newTestApp(t, testConfig(fastWidget(0, "x")), Options{})
	_ = app.SetBackend(b)

	app.Metrics().RecordReload()
	app.Metrics().RecordEvent()

	ctx, cancel := context.WithCancel(context.Background())
	wait := runApp(t, app, ctx)
	waitFor(t, "widget typed", func() bool { return b.Row(0) == "x|" })
	cancel()
	_ = wait()

	snap := app.Metrics().Snapshot()
	if snap.Reloads != 0 || snap.Events != 0 {
		t.Errorf("Reloads = %d, Events = %d; want counters reset by Run", snap.Reloads, snap.Events)
	}
	if snap.Renders != 1 {
		t.Errorf("Renders = %d, want 1", snap.Renders)
	}
}
