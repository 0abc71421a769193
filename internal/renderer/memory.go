package renderer

import "sync"

// Snapshot is the observable state of a MemorySurface.
type Snapshot struct {
	// Text is the literal content set by SetText. Empty when the surface
	// holds children.
	Text string
	// Children is the node composition set by ReplaceChildren.
	Children []Node
}

// Visible returns what the surface displays.
func (s Snapshot) Visible() string {
	if len(s.Children) > 0 {
		return Flatten(s.Children)
	}
	return s.Text
}

// Equals returns true if two snapshots are identical.
func (s Snapshot) Equals(other Snapshot) bool {
	if s.Text != other.Text || len(s.Children) != len(other.Children) {
		return false
	}
	for i := range s.Children {
		if !s.Children[i].Equals(other.Children[i]) {
			return false
		}
	}
	return true
}

// MemorySurface is an in-memory Surface for tests.
// It records every update and is safe for concurrent use.
type MemorySurface struct {
	mu      sync.Mutex
	current Snapshot
	history []Snapshot
}

// NewMemorySurface creates an empty memory surface.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{}
}

// SetText replaces the content with text.
func (m *MemorySurface) SetText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Snapshot{Text: text}
	m.history = append(m.history, m.current)
}

// ReplaceChildren replaces the content with nodes.
func (m *MemorySurface) ReplaceChildren(nodes ...Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	children := make([]Node, len(nodes))
	for i, n := range nodes {
		n.Classes = append([]string(nil), n.Classes...)
		children[i] = n
	}
	m.current = Snapshot{Children: children}
	m.history = append(m.history, m.current)
}

// Snapshot returns the current state.
func (m *MemorySurface) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Visible returns the currently displayed text.
func (m *MemorySurface) Visible() string {
	return m.Snapshot().Visible()
}

// History returns the displayed text after every update, in order.
func (m *MemorySurface) History() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.history))
	for i, s := range m.history {
		out[i] = s.Visible()
	}
	return out
}

// Updates returns the number of updates received.
func (m *MemorySurface) Updates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history)
}
