package renderer

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dshills/autotype/internal/renderer/backend"
	"github.com/dshills/autotype/internal/renderer/core"
	"github.com/dshills/autotype/internal/renderer/cursor"
	"github.com/dshills/autotype/internal/renderer/style"
)

// ScreenOptions configures a ScreenSurface.
type ScreenOptions struct {
	// X and Y are the column and row of the first cell.
	X, Y int

	// Width limits the region. Zero extends it to the right edge.
	Width int

	// TextStyle is applied to text nodes and SetText content.
	TextStyle core.Style

	// CaretStyle is applied to caret nodes.
	CaretStyle core.Style

	// Styles resolves caret classes to blink rules.
	// Defaults to style.Global().
	Styles *style.Registry

	// Clock is the time source for blink animation.
	Clock clockwork.Clock
}

// ScreenSurface is a one-row region of a terminal backend.
// It is safe for concurrent use; several surfaces may share a backend.
type ScreenSurface struct {
	mu      sync.Mutex
	backend backend.Backend
	opts    ScreenOptions

	cells       []core.Cell
	caretStart  int
	caretEnd    int
	blinker     *cursor.Blinker
	drawn       int
	initialized bool
}

// NewScreenSurface creates a surface on b.
func NewScreenSurface(b backend.Backend, opts ScreenOptions) *ScreenSurface {
	if opts.Styles == nil {
		opts.Styles = style.Global()
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &ScreenSurface{backend: b, opts: opts}
}

// SetText paints text as a single run of cells.
func (s *ScreenSurface) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cells = core.CellsFromString(text, s.opts.TextStyle)
	s.caretStart, s.caretEnd = 0, 0
	s.blinkLocked(nil)
	s.paintLocked()
	s.backend.Show()
}

// ReplaceChildren paints nodes left to right. A caret carrying a class
// with a registered rule blinks according to that rule, starting a fresh
// cycle on every call.
func (s *ScreenSurface) ReplaceChildren(nodes ...Node) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cells = s.cells[:0]
	s.caretStart, s.caretEnd = 0, 0
	var blink *style.Rule

	for _, n := range nodes {
		switch n.Kind {
		case NodeCaret:
			s.caretStart = len(s.cells)
			s.cells = append(s.cells, core.CellsFromString(n.Text, s.opts.CaretStyle)...)
			s.caretEnd = len(s.cells)
			for _, class := range n.Classes {
				if rule, ok := s.opts.Styles.Lookup(class); ok {
					blink = &rule
					break
				}
			}
		default:
			s.cells = append(s.cells, core.CellsFromString(n.Text, s.opts.TextStyle)...)
		}
	}

	s.blinkLocked(blink)
	s.paintLocked()
	s.backend.Show()
}

// blinkLocked restarts the caret blink under rule, or turns blinking off
// when rule is nil.
func (s *ScreenSurface) blinkLocked(rule *style.Rule) {
	now := s.opts.Clock.Now()
	switch {
	case rule == nil:
		if s.blinker != nil {
			s.blinker.SetEnabled(false, now)
		}
	case s.blinker == nil || s.blinker.Rule().Name != rule.Name:
		s.blinker = cursor.NewBlinker(*rule, true, now)
	case !s.blinker.Enabled():
		s.blinker.SetEnabled(true, now)
	default:
		s.blinker.Reset(now)
	}
}

// Tick advances the caret blink. It repaints and returns true when the
// caret visibility changed.
func (s *ScreenSurface) Tick(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blinker == nil || !s.blinker.Update(now) {
		return false
	}
	s.paintLocked()
	s.backend.Show()
	return true
}

// Repaint redraws the last content, e.g. after the screen was cleared.
func (s *ScreenSurface) Repaint() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	s.paintLocked()
	s.backend.Show()
}

// Clear blanks the region and forgets the painted content. Repaint does
// nothing until the next update.
func (s *ScreenSurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r := s.boundsLocked(); !r.IsEmpty() {
		s.backend.Fill(r, core.EmptyCell())
	}
	s.cells = nil
	s.caretStart, s.caretEnd = 0, 0
	s.blinker = nil
	s.drawn = 0
	s.initialized = false
	s.backend.Show()
}

// Bounds returns the screen region the surface may paint.
func (s *ScreenSurface) Bounds() core.ScreenRect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundsLocked()
}

func (s *ScreenSurface) boundsLocked() core.ScreenRect {
	return core.RectFromSize(s.opts.Y, s.opts.X, 1, s.limit())
}

// CaretVisible reports whether the caret is currently drawn.
func (s *ScreenSurface) CaretVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.caretEnd == s.caretStart {
		return false
	}
	return s.blinker == nil || s.blinker.IsVisible()
}

// Text returns the content last painted, including a hidden caret.
func (s *ScreenSurface) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.StringFromCells(s.cells)
}

func (s *ScreenSurface) limit() int {
	if s.opts.Width > 0 {
		return s.opts.Width
	}
	w, _ := s.backend.Size()
	return max(0, w-s.opts.X)
}

// paintLocked draws the cells and blanks whatever the previous paint left
// beyond them.
func (s *ScreenSurface) paintLocked() {
	s.initialized = true
	limit := s.limit()
	hideCaret := s.blinker != nil && !s.blinker.IsVisible()
	blank := core.EmptyCell()

	col := 0
	for i, cell := range s.cells {
		if cell.IsContinuation() {
			col++
			continue
		}
		if col+cell.Width > limit {
			break
		}
		if hideCaret && i >= s.caretStart && i < s.caretEnd {
			for j := 0; j < cell.Width; j++ {
				s.backend.SetCell(s.opts.X+col+j, s.opts.Y, blank)
			}
		} else {
			s.backend.SetCell(s.opts.X+col, s.opts.Y, cell)
		}
		col++
	}

	for x := col; x < s.drawn && x < limit; x++ {
		s.backend.SetCell(s.opts.X+x, s.opts.Y, blank)
	}
	s.drawn = col
}
