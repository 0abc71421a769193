package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/autotype/internal/renderer/core"
)

// Terminal is a Backend drawing to the controlling terminal through tcell.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewTerminal creates a terminal backend. The screen is not touched until
// Init is called.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// Init takes over the terminal and clears it.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.Clear()
	return nil
}

// Shutdown restores the terminal. A blocked PollEvent returns EventNone.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetContent(x, y, cell.Rune, cell.Combining, tcellStyle(cell.Style))
}

// Fill paints cell over rect, clipped to the screen.
func (t *Terminal) Fill(rect core.ScreenRect, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := tcellStyle(cell.Style)
	w, h := t.screen.Size()
	for y := max(rect.Top, 0); y < min(rect.Bottom, h); y++ {
		for x := max(rect.Left, 0); x < min(rect.Right, w); x++ {
			t.screen.SetContent(x, y, cell.Rune, cell.Combining, st)
		}
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.HideCursor()
}

// PollEvent blocks without holding the lock so drawing can continue.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventNone}
	}
	return translateEvent(ev)
}

var tcellAttrs = []struct {
	attr core.Attribute
	set  func(tcell.Style, bool) tcell.Style
}{
	{core.AttrBold, tcell.Style.Bold},
	{core.AttrDim, tcell.Style.Dim},
	{core.AttrItalic, tcell.Style.Italic},
	{core.AttrUnderline, func(st tcell.Style, on bool) tcell.Style { return st.Underline(on) }},
	{core.AttrBlink, tcell.Style.Blink},
	{core.AttrReverse, tcell.Style.Reverse},
	{core.AttrStrikethrough, tcell.Style.StrikeThrough},
}

func tcellStyle(s core.Style) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(tcellColor(s.Foreground)).
		Background(tcellColor(s.Background))
	for _, a := range tcellAttrs {
		if s.Attributes.Has(a.attr) {
			st = a.set(st, true)
		}
	}
	return st
}

func tcellColor(c core.Color) tcell.Color {
	switch {
	case c.IsDefault():
		return tcell.ColorDefault
	case c.Indexed:
		return tcell.PaletteColor(int(c.R))
	default:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
}

// translateEvent maps the tcell events the widget cares about. Anything
// else, mouse and paste included, becomes EventNone.
func translateEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: translateKey(e.Key()), Rune: e.Rune()}
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}
	default:
		return Event{Type: EventNone}
	}
}

func translateKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyCtrlC:
		return KeyCtrlC
	default:
		return KeyOther
	}
}
