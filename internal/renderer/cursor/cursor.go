// Package cursor tracks caret blink state for styled rendering.
package cursor

import (
	"sync"
	"time"

	"github.com/dshills/autotype/internal/renderer/style"
)

// Blinker drives the visibility of a blinking caret from a style rule.
// The blink cycle restarts whenever the caret is repainted, so a caret is
// always visible right after a keystroke.
type Blinker struct {
	mu sync.RWMutex

	rule    style.Rule
	enabled bool

	// Blink state
	epoch   time.Time
	visible bool
}

// NewBlinker creates a blinker for rule. A disabled blinker is always visible.
func NewBlinker(rule style.Rule, enabled bool, now time.Time) *Blinker {
	return &Blinker{
		rule:    rule,
		enabled: enabled,
		epoch:   now,
		visible: true,
	}
}

// Rule returns the rule driving the blinker.
func (b *Blinker) Rule() style.Rule {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rule
}

// Enabled returns whether blinking is active.
func (b *Blinker) Enabled() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.enabled
}

// SetEnabled turns blinking on or off. Turning it off makes the caret
// visible.
func (b *Blinker) SetEnabled(enabled bool, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = enabled
	b.epoch = now
	b.visible = true
}

// Reset restarts the blink cycle in the visible state.
func (b *Blinker) Reset(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.epoch = now
	b.visible = true
}

// Update advances the blink animation.
// Returns true if the caret visibility changed.
func (b *Blinker) Update(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := true
	if b.enabled {
		next = b.rule.VisibleAt(now.Sub(b.epoch))
	}
	if next == b.visible {
		return false
	}
	b.visible = next
	return true
}

// IsVisible returns whether the caret should be drawn.
func (b *Blinker) IsVisible() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.visible
}
