// Package layout describes the text layout collaborator consumed by
// textsel and provides Monospace, a small reference implementation.
//
// Positions are linear rune indices into the text. A line is a visual
// line: a paragraph may wrap onto several lines, and only the final
// line of a paragraph is its end of wrapping.
package layout

import "image/color"

// Location is a linear index resolved to a visual line and an index
// within that line.
type Location struct {
	Line int
	Char int
}

// CharBound is the horizontal extent of one character, relative to
// the start of its line. A line of n characters has n+1 bounds; the
// last one marks the end of the line and has zero width.
type CharBound struct {
	Left  float64
	Width float64
}

// Style is the per-character style that caret rendering borrows.
type Style struct {
	FontSize float64
	Fill     color.Color
	DeltaY   float64 // baseline shift
}

// Metrics are box-wide values of a layout.
type Metrics struct {
	Width  float64 // text box width
	Height float64 // text box height

	LineHeight       float64 // line-height multiplier
	FontSizeFraction float64 // descender share of the font size
	CharSpacing      float64 // one unit of character spacing, in pixels
	Justify          bool
}

// Layout is the read-only view of laid out text.
type Layout interface {
	Metrics() Metrics
	LineCount() int
	// LineLength returns the number of characters on line.
	LineLength(line int) int
	HeightOfLine(line int) float64
	LineWidth(line int) float64
	// LineLeftOffset is the alignment offset of line within the box.
	LineLeftOffset(line int) float64
	IsEndOfWrapping(line int) bool
	CharBounds(line int) []CharBound
	// Location resolves a linear index. Indices past the end resolve
	// to the end of the last line; negative indices resolve to line 0
	// with a negative Char.
	Location(index int) Location
	StyleAt(line, char int) Style
}
