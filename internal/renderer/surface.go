package renderer

import (
	"slices"
	"strings"
)

// NodeKind identifies the role of a child node.
type NodeKind uint8

const (
	// NodeText is plain visible text.
	NodeText NodeKind = iota
	// NodeCaret is the caret element.
	NodeCaret
)

// String returns the node kind name.
func (k NodeKind) String() string {
	switch k {
	case NodeText:
		return "text"
	case NodeCaret:
		return "caret"
	default:
		return "unknown"
	}
}

// Node is one child of a styled composition.
type Node struct {
	Kind    NodeKind
	Text    string
	Classes []string
}

// TextNode returns a text node.
func TextNode(text string) Node {
	return Node{Kind: NodeText, Text: text}
}

// CaretNode returns a caret node with the given classes.
func CaretNode(glyph string, classes ...string) Node {
	return Node{Kind: NodeCaret, Text: glyph, Classes: classes}
}

// HasClass returns true if the node carries class.
func (n Node) HasClass(class string) bool {
	return slices.Contains(n.Classes, class)
}

// Equals returns true if two nodes are identical.
func (n Node) Equals(other Node) bool {
	return n.Kind == other.Kind &&
		n.Text == other.Text &&
		slices.Equal(n.Classes, other.Classes)
}

// Flatten returns the concatenated text of nodes.
func Flatten(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(n.Text)
	}
	return b.String()
}

// Surface is the render target. The renderer owns its content but not its
// lifecycle.
type Surface interface {
	// SetText replaces the surface content with a literal string.
	SetText(text string)

	// ReplaceChildren removes all content and appends nodes in order.
	ReplaceChildren(nodes ...Node)
}
