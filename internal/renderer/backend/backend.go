// Package backend provides terminal backend abstraction for the renderer.
package backend

import (
	"sync"

	"github.com/dshills/autotype/internal/renderer/core"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune

	// Resize event fields
	Width, Height int
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the widget reacts to.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyCtrlC
	KeyOther
)

// Backend defines the interface for terminal/display backends.
// Implementations handle actual drawing to the terminal or other display surfaces.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// Fill fills a rectangular region with the given cell, clipped to the
	// terminal.
	Fill(rect core.ScreenRect, cell core.Cell)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show synchronizes the internal buffer with the actual display.
	Show()

	// HideCursor hides the terminal cursor.
	HideCursor()

	// PollEvent waits for and returns the next terminal event.
	// After Shutdown it returns an EventNone event.
	PollEvent() Event
}

var (
	_ Backend = (*NullBackend)(nil)
	_ Backend = (*Terminal)(nil)
)

// NullBackend is an in-memory backend for testing.
// It is safe for concurrent use.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	cells         [][]core.Cell
	cursorVisible bool
	shows         int
	events        chan Event
	closed        chan struct{}
	closeOnce     sync.Once
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:         width,
		height:        height,
		cursorVisible: true,
		events:        make(chan Event, 100),
		closed:        make(chan struct{}),
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allocate()
	return nil
}

func (b *NullBackend) allocate() {
	b.cells = make([][]core.Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]core.Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = core.EmptyCell()
		}
	}
}

func (b *NullBackend) Shutdown() {
	b.closeOnce.Do(func() { close(b.closed) })
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height && b.cells != nil {
		b.cells[y][x] = cell
	}
}

// GetCell returns the cell at x, y, or an empty cell outside the screen.
func (b *NullBackend) GetCell(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height && b.cells != nil {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

func (b *NullBackend) Fill(rect core.ScreenRect, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cells == nil {
		return
	}
	for y := max(rect.Top, 0); y < min(rect.Bottom, b.height); y++ {
		for x := max(rect.Left, 0); x < min(rect.Right, b.width); x++ {
			b.cells[y][x] = cell
		}
	}
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	empty := core.EmptyCell()
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = empty
		}
	}
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shows++
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
}

func (b *NullBackend) PollEvent() Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.closed:
		return Event{Type: EventNone}
	}
}

// PostEvent queues a synthetic event for PollEvent.
func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// Row returns the text of row y for testing, with trailing blanks trimmed.
func (b *NullBackend) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height || b.cells == nil {
		return ""
	}
	s := core.StringFromCells(b.cells[y])
	end := len(s)
	for end > 0 && s[end-1] == ' ' {
		end--
	}
	return s[:end]
}

// ShowCount returns how many times Show was called.
func (b *NullBackend) ShowCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// CursorVisible returns whether the terminal cursor is shown.
func (b *NullBackend) CursorVisible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorVisible
}

// Resize simulates a terminal resize for testing.
// The resize is also queued as an event.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.allocate()
	b.mu.Unlock()

	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
