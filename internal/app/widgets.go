package app

import (
	"github.com/dshills/autotype/internal/animator"
	"github.com/dshills/autotype/internal/renderer"
)

// widget is one running animation and, in styled mode, its screen region.
type widget struct {
	index   int
	anim    *animator.Animator
	surface *renderer.ScreenSurface
}

// startWidgetsLocked builds widgets from the current configuration and
// starts them. On failure every widget already started is stopped.
func (app *Application) startWidgetsLocked() error {
	widgets := app.buildWidgetsLocked()

	for i, w := range widgets {
		if err := w.anim.Start(app.runCtx); err != nil {
			for _, started := range widgets[:i] {
				started.anim.Stop()
			}
			return &WidgetError{Index: w.index, Err: err}
		}
	}

	app.widgets = widgets
	return nil
}

// stopWidgetsLocked stops every widget. No widget renders after it returns.
func (app *Application) stopWidgetsLocked() {
	for _, w := range app.widgets {
		w.anim.Stop()
	}
	app.widgets = nil
}

// buildWidgetsLocked creates the widgets for the active render target.
// Plain mode animates only the first widget; a single line has room for
// one.
func (app *Application) buildWidgetsLocked() []*widget {
	cfg := app.cfg
	textStyle, _ := cfg.TextStyle()
	caretStyle, _ := cfg.CaretStyle()

	if app.writer != nil {
		anim := cfg.Widgets[0].Animation()
		r := renderer.New(app.writer, renderer.Options{
			Mode:   renderer.ModePlain,
			Caret:  anim.Caret,
			Styles: app.opts.Styles,
		})
		return []*widget{app.newWidget(0, anim, r, nil)}
	}

	widgets := make([]*widget, 0, len(cfg.Widgets))
	for i, wc := range cfg.Widgets {
		anim := wc.Animation()
		surface := renderer.NewScreenSurface(app.backend, renderer.ScreenOptions{
			X:          wc.Col,
			Y:          wc.Row,
			Width:      wc.Width,
			TextStyle:  textStyle,
			CaretStyle: caretStyle,
			Styles:     app.opts.Styles,
			Clock:      app.opts.Clock,
		})
		r := renderer.New(surface, renderer.Options{
			Mode:   renderer.ModeStyled,
			Caret:  anim.Caret,
			Blink:  anim.BlinkEnabled,
			Styles: app.opts.Styles,
		})
		widgets = append(widgets, app.newWidget(i, anim, r, surface))
	}
	return widgets
}

func (app *Application) newWidget(index int, cfg animator.Config, r *renderer.Renderer, surface *renderer.ScreenSurface) *widget {
	counted := animator.RendererFunc(func(text string) {
		r.Render(text)
		app.metrics.RecordRender()
	})

	return &widget{
		index: index,
		anim: animator.New(cfg, counted,
			animator.WithClock(app.opts.Clock),
			animator.WithLogger(app.opts.Logger.WithField("widget", index)),
		),
		surface: surface,
	}
}
