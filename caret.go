package textsel

import (
	"image/color"

	"github.com/rjkroege/textsel/overlay"
)

// RenderCaret paints the caret at b onto ctx, which must already carry
// the overlay transform.
func (t *Text) RenderCaret(b Boundaries, ctx overlay.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.renderCaret(b, ctx)
}

// renderCaret sizes and colours the caret after the character before
// it: that is the glyph the next keystroke continues.
func (t *Text) renderCaret(b Boundaries, ctx overlay.Context) {
	l := t.layout
	m := l.Metrics()
	line, char := t.currentChar()
	style := l.StyleAt(line, char)

	width := t.cursorWidth / t.deviceScale()

	lh := m.LineHeight
	if lh == 0 {
		lh = 1
	}
	top := b.TopOffset +
		(1-m.FontSizeFraction)*l.HeightOfLine(line)/lh -
		style.FontSize*(1-m.FontSizeFraction)

	if t.composing {
		under := b
		t.renderSelection(&under, ctx)
	}

	fill := style.Fill
	if fill == nil {
		fill = t.cursorColor
	}
	alpha := t.cursor.Opacity()
	if t.pointerDown {
		alpha = 1
	}
	ctx.SetFill(fill)
	ctx.SetAlpha(alpha)
	ctx.FillRect(overlay.Rect{
		X: b.Left + b.LeftOffset - width/2,
		Y: top + b.Top + style.DeltaY,
		W: width,
		H: style.FontSize,
	})
}

// deviceScale is the factor between local and device pixels along x.
func (t *Text) deviceScale() float64 {
	zoom := 1.0
	if t.canvas != nil {
		zoom = t.canvas.Zoom()
	}
	s := t.placement.ScaleX * zoom
	if s == 0 {
		return 1
	}
	if s < 0 {
		return -s
	}
	return s
}

// currentChar locates the character preceding the caret.
func (t *Text) currentChar() (line, char int) {
	loc := t.layout.Location(t.selectionStart)
	if loc.Char > 0 {
		return loc.Line, loc.Char - 1
	}
	return loc.Line, 0
}

// CurrentCharFontSize returns the font size of the character before
// the caret.
func (t *Text) CurrentCharFontSize() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.layout.StyleAt(t.currentChar()).FontSize
}

// CurrentCharColor returns the fill of the character before the
// caret, or the cursor colour when it has none.
func (t *Text) CurrentCharColor() color.Color {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c := t.layout.StyleAt(t.currentChar()).Fill; c != nil {
		return c
	}
	return t.cursorColor
}
