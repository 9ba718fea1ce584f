package textsel

import (
	"github.com/rjkroege/textsel/layout"
	"github.com/rjkroege/textsel/overlay"
)

// EmptyLineWidth is the highlight width given to a fully selected line
// whose measured width is zero, so that selected blank lines remain
// visible.
// TODO(rjk): derive this from the font metrics of the line instead of
// a fixed pixel count.
const EmptyLineWidth = 5

// RenderSelection paints the selection highlight, or the composition
// underline while composing, onto ctx. It advances b.TopOffset past
// every line it covers.
func (t *Text) RenderSelection(b *Boundaries, ctx overlay.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.renderSelection(b, ctx)
}

func (t *Text) renderSelection(b *Boundaries, ctx overlay.Context) {
	l := t.layout
	m := l.Metrics()

	start, end := t.selectionStart, t.selectionEnd
	if t.composing {
		start, end = t.compositionStart, t.compositionEnd
	}
	s, e := l.Location(start), l.Location(end)
	startChar, endChar := s.Char, e.Char
	if startChar < 0 {
		startChar = 0
	}
	if endChar < 0 {
		endChar = 0
	}

	for i := s.Line; i <= e.Line; i++ {
		lineOffset := l.LineLeftOffset(i)
		lineHeight := l.HeightOfLine(i)
		realLineHeight := lineHeight

		var boxStart, boxEnd float64
		if i == s.Line {
			boxStart = leftOf(l, s.Line, startChar)
		}
		switch {
		case i < e.Line:
			if m.Justify && !l.IsEndOfWrapping(i) {
				boxEnd = m.Width
			} else if boxEnd = l.LineWidth(i); boxEnd == 0 {
				boxEnd = EmptyLineWidth
			}
		case endChar == 0:
			boxEnd = leftOf(l, e.Line, 0)
		default:
			cb, _ := bound(l, e.Line, endChar-1)
			boxEnd = cb.Left + cb.Width - m.CharSpacing
		}

		if m.LineHeight > 0 && (m.LineHeight < 1 || (i == e.Line && m.LineHeight > 1)) {
			lineHeight /= m.LineHeight
		}

		if t.composing {
			ctx.SetFill(t.compositionColor)
			ctx.FillRect(overlay.Rect{
				X: b.Left + lineOffset + boxStart,
				Y: b.Top + b.TopOffset + lineHeight,
				W: boxEnd - boxStart,
				H: 1,
			})
		} else {
			ctx.SetFill(t.selectionColor)
			ctx.FillRect(overlay.Rect{
				X: b.Left + lineOffset + boxStart,
				Y: b.Top + b.TopOffset,
				W: boxEnd - boxStart,
				H: lineHeight,
			})
		}
		b.TopOffset += realLineHeight
	}
}

// leftOf is the left edge of a character; a missing bound counts as 0.
func leftOf(l layout.Layout, line, char int) float64 {
	b, _ := bound(l, line, char)
	return b.Left
}
