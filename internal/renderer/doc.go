// Package renderer paints the typewriter's visible text into a surface.
//
// The renderer is responsible for:
//   - Composing the visible substring and the caret
//   - Plain output (one literal string) or styled output (text node plus a
//     caret node that may carry the blink class)
//   - Registering the shared blink rule once per process
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│            Renderer (paint)             │
//	├─────────────────────────────────────────┤
//	│        Surface (text / children)        │
//	├──────────────┬──────────────┬───────────┤
//	│ ScreenSurface│ WriterSurface│  Memory   │
//	│  (backend)   │  (io.Writer) │ (tests)   │
//	└──────────────┴──────────────┴───────────┘
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	surface := renderer.NewScreenSurface(term, renderer.ScreenOptions{Y: 2})
//	r := renderer.New(surface, renderer.Options{Mode: renderer.ModeStyled, Caret: "|", Blink: true})
//	r.Render("Hel")
package renderer
