package renderer

import (
	"fmt"
	"strings"

	"github.com/dshills/autotype/internal/renderer/style"
)

// Mode selects how text is painted.
type Mode uint8

const (
	// ModePlain writes text and caret as one literal string.
	ModePlain Mode = iota
	// ModeStyled writes a text node and a separate caret node.
	ModeStyled
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeStyled:
		return "styled"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name. Unknown names return ModeStyled, the
// default, along with an error.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain", "text":
		return ModePlain, nil
	case "", "styled":
		return ModeStyled, nil
	default:
		return ModeStyled, fmt.Errorf("unknown render mode %q", s)
	}
}

// Options configures a Renderer.
type Options struct {
	// Mode selects plain or styled painting.
	Mode Mode

	// Caret is the glyph painted after the text. Empty disables the caret
	// node in styled mode.
	Caret string

	// Blink attaches the blink class to the caret in styled mode.
	Blink bool

	// Styles is where the blink rule is registered.
	// Defaults to style.Global().
	Styles *style.Registry
}

// DefaultOptions returns styled rendering with a blinking "|" caret.
func DefaultOptions() Options {
	return Options{
		Mode:  ModeStyled,
		Caret: "|",
		Blink: true,
	}
}

// Renderer paints visible text into a surface.
type Renderer struct {
	surface Surface
	opts    Options
}

// New creates a renderer for surface. In styled mode with blinking
// enabled it ensures the blink rule is registered.
func New(surface Surface, opts Options) *Renderer {
	if opts.Styles == nil {
		opts.Styles = style.Global()
	}
	if opts.Mode == ModeStyled && opts.Blink {
		opts.Styles.Ensure(style.BlinkRule)
	}
	return &Renderer{
		surface: surface,
		opts:    opts,
	}
}

// Options returns the renderer options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Surface returns the render target.
func (r *Renderer) Surface() Surface {
	return r.surface
}

// Render paints text followed by the caret.
func (r *Renderer) Render(text string) {
	if r.opts.Mode == ModePlain {
		r.surface.SetText(text + r.opts.Caret)
		return
	}
	r.surface.ReplaceChildren(r.Compose(text)...)
}

// Compose returns the styled nodes for text.
func (r *Renderer) Compose(text string) []Node {
	nodes := []Node{TextNode(text)}
	if r.opts.Caret == "" {
		return nodes
	}
	if r.opts.Blink {
		return append(nodes, CaretNode(r.opts.Caret, style.BlinkClass))
	}
	return append(nodes, CaretNode(r.opts.Caret))
}
