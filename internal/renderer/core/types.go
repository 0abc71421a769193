// Package core provides the shared cell, style and color types used by the
// renderer and its backends.
// This package breaks import cycles between renderer and backend.
package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone          Attribute = 0
	AttrBold          Attribute = 1 << iota
	AttrDim                     // Faint/dim text
	AttrItalic                  // Italic text
	AttrUnderline               // Underlined text
	AttrBlink                   // Terminal-driven blink (rarely supported)
	AttrReverse                 // Reverse video (swap fg/bg)
	AttrStrikethrough           // Strikethrough text
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Color represents a color value.
// Supports true color (RGB) and terminal palette colors.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	Indexed bool
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack   = Color{R: 0, G: 0, B: 0}
	ColorWhite   = Color{R: 255, G: 255, B: 255}
	ColorRed     = Color{R: 255, G: 0, B: 0}
	ColorGreen   = Color{R: 0, G: 255, B: 0}
	ColorBlue    = Color{R: 0, G: 0, B: 255}
	ColorYellow  = Color{R: 255, G: 255, B: 0}
	ColorCyan    = Color{R: 0, G: 255, B: 255}
	ColorMagenta = Color{R: 255, G: 0, B: 255}
	ColorGray    = Color{R: 128, G: 128, B: 128}
)

var namedColors = map[string]Color{
	"default": ColorDefault,
	"black":   ColorBlack,
	"white":   ColorWhite,
	"red":     ColorRed,
	"green":   ColorGreen,
	"blue":    ColorBlue,
	"yellow":  ColorYellow,
	"cyan":    ColorCyan,
	"magenta": ColorMagenta,
	"gray":    ColorGray,
	"grey":    ColorGray,
}

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex creates a color from a hex string ("#rgb" or "#rrggbb",
// leading '#' optional).
func ColorFromHex(hex string) (Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return ColorFromRGB(r, g, b), nil
}

// ParseColor parses a color name or hex string. The empty string is the
// default color.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ColorDefault, nil
	}
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	return ColorFromHex(s)
}

// IsDefault returns true if this is the default/transparent color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default != other.Default {
		return false
	}
	if c.Default {
		return true
	}
	if c.Indexed != other.Indexed {
		return false
	}
	if c.Indexed {
		return c.R == other.R
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.IsDefault() {
		return "default"
	}
	if c.Indexed {
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Style represents the visual style of text.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{
		Foreground: ColorDefault,
		Background: ColorDefault,
		Attributes: AttrNone,
	}
}

// NewStyle creates a style with the given foreground color.
func NewStyle(fg Color) Style {
	return Style{
		Foreground: fg,
		Background: ColorDefault,
		Attributes: AttrNone,
	}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Bold returns a new style with bold attribute added.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.Attributes == other.Attributes
}

// Cell represents a single terminal cell.
type Cell struct {
	// Rune is the base character to display.
	// A value of 0 indicates a continuation cell (for wide characters).
	Rune rune

	// Combining holds combining runes that follow Rune in the same
	// grapheme cluster.
	Combining []rune

	// Width is the display width of this cell.
	Width int

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns an empty cell with default style.
func EmptyCell() Cell {
	return Cell{
		Rune:  ' ',
		Width: 1,
		Style: DefaultStyle(),
	}
}

// NewCell creates a cell with the given rune and default style.
func NewCell(r rune) Cell {
	return NewStyledCell(r, DefaultStyle())
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{
		Rune:  r,
		Width: StringWidth(string(r)),
		Style: style,
	}
}

// IsContinuation returns true if this is a continuation cell.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Rune == 0
}

// Text returns the grapheme cluster held by the cell.
func (c Cell) Text() string {
	if c.Rune == 0 {
		return ""
	}
	return string(c.Rune) + string(c.Combining)
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Rune == other.Rune &&
		slices.Equal(c.Combining, other.Combining) &&
		c.Width == other.Width &&
		c.Style.Equals(other.Style)
}

// ContinuationCell returns a continuation cell for wide characters.
func ContinuationCell() Cell {
	return Cell{
		Rune:  0,
		Width: 0,
		Style: DefaultStyle(),
	}
}

// StringWidth returns the display width of s in terminal columns.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}

// CellsFromString creates cells from a string, one per grapheme cluster,
// followed by continuation cells for wide clusters.
func CellsFromString(s string, style Style) []Cell {
	cells := make([]Cell, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		width := g.Width()
		if width <= 0 {
			// Zero width clusters (controls) are not drawable.
			continue
		}
		cell := Cell{
			Rune:  runes[0],
			Width: width,
			Style: style,
		}
		if len(runes) > 1 {
			cell.Combining = runes[1:]
		}
		cells = append(cells, cell)
		for i := 1; i < width; i++ {
			cells = append(cells, ContinuationCell())
		}
	}
	return cells
}

// StringFromCells converts cells back to a string.
func StringFromCells(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		if c.IsContinuation() {
			continue
		}
		b.WriteString(c.Text())
	}
	return b.String()
}

// ScreenRect represents a rectangular region on screen.
type ScreenRect struct {
	Top    int // First row (inclusive)
	Left   int // First column (inclusive)
	Bottom int // Last row (exclusive)
	Right  int // Last column (exclusive)
}

// RectFromSize creates a rectangle from position and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the width of the rectangle.
func (r ScreenRect) Width() int {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r ScreenRect) Height() int {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// IsEmpty returns true if the rectangle has no area.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}
