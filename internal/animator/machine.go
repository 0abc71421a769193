package animator

import (
	"time"

	"github.com/rivo/uniseg"
)

// Phase is the direction the visible text is moving in.
type Phase uint8

const (
	// PhaseTyping reveals one character per step.
	PhaseTyping Phase = iota
	// PhaseBackspacing erases one character per step.
	PhaseBackspacing
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseTyping:
		return "typing"
	case PhaseBackspacing:
		return "backspacing"
	default:
		return "unknown"
	}
}

// State is the mutable position of the animation.
type State struct {
	// StringIndex is the index of the string being animated.
	StringIndex int
	// CharIndex is the number of characters currently visible.
	CharIndex int
	// Phase is the active phase.
	Phase Phase
}

// Step is the outcome of advancing the machine once.
type Step struct {
	// Text is the visible substring. Only meaningful when Render is set.
	Text string
	// Render reports whether the step changed the visible text.
	Render bool
	// Delay is how long to wait before the next step.
	Delay time.Duration
}

// text is a string split into grapheme cluster boundaries.
// ends[i] is the byte offset just past the (i+1)th cluster.
type text struct {
	s    string
	ends []int
}

func segment(s string) text {
	t := text{s: s}
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		_, to := g.Positions()
		t.ends = append(t.ends, to)
	}
	return t
}

func (t text) len() int { return len(t.ends) }

func (t text) prefix(n int) string {
	if n <= 0 {
		return ""
	}
	return t.s[:t.ends[n-1]]
}

// Machine is the typing/backspacing state machine.
// It is not safe for concurrent use; Animator serializes access.
type Machine struct {
	cfg   Config
	texts []text
	state State
}

// NewMachine creates a machine in the initial state (typing, first string,
// nothing visible).
func NewMachine(cfg Config) *Machine {
	m := &Machine{cfg: cfg}
	for _, s := range cfg.Strings {
		m.texts = append(m.texts, segment(s))
	}
	return m
}

// Empty returns true if there is nothing to animate.
func (m *Machine) Empty() bool {
	return len(m.texts) == 0
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Current returns the string at the current index.
func (m *Machine) Current() string {
	if m.Empty() {
		return ""
	}
	return m.texts[m.state.StringIndex].s
}

// Visible returns the currently visible substring.
func (m *Machine) Visible() string {
	if m.Empty() {
		return ""
	}
	return m.texts[m.state.StringIndex].prefix(m.state.CharIndex)
}

// Next advances the machine by one step.
// It returns false, leaving the state untouched, when there are no strings.
func (m *Machine) Next() (Step, bool) {
	if m.Empty() {
		return Step{}, false
	}

	cur := m.texts[m.state.StringIndex]

	switch m.state.Phase {
	case PhaseTyping:
		if m.state.CharIndex < cur.len() {
			m.state.CharIndex++
			return Step{
				Text:   cur.prefix(m.state.CharIndex),
				Render: true,
				Delay:  m.cfg.TypingDelay,
			}, true
		}
		m.state.Phase = PhaseBackspacing
		return Step{Delay: m.cfg.PauseAfterTyping}, true

	default:
		if m.state.CharIndex > 0 {
			m.state.CharIndex--
			return Step{
				Text:   cur.prefix(m.state.CharIndex),
				Render: true,
				Delay:  m.cfg.BackspaceDelay,
			}, true
		}
		m.state.Phase = PhaseTyping
		m.state.StringIndex = (m.state.StringIndex + 1) % len(m.texts)
		return Step{Delay: m.cfg.PauseAfterBackspace}, true
	}
}
