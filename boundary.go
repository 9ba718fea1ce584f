package textsel

import "github.com/rjkroege/textsel/layout"

// Boundaries locate a caret position. Left and Top are the top-left
// corner of the text box relative to the object origin; LeftOffset and
// TopOffset are the position within the box.
type Boundaries struct {
	Left, Top             float64
	LeftOffset, TopOffset float64
}

// boundaryCache holds the offsets of the first position resolved in
// the current render pass.
type boundaryCache struct {
	valid     bool
	top, left float64
}

func (c *boundaryCache) invalidate() { *c = boundaryCache{} }

// InvalidateBoundaries drops the cached caret offsets. Render calls it
// at the start of every pass; call it directly after changing layout
// outside a render.
func (t *Text) InvalidateBoundaries() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cache.invalidate()
}

// CursorBoundaries resolves the selection start.
func (t *Text) CursorBoundaries() Boundaries {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resolveBoundary(t.selectionStart)
}

// ResolveBoundary resolves position to pixel offsets. Within one
// render pass the first resolved offsets are reused for every later
// call, whatever the position.
func (t *Text) ResolveBoundary(position int) Boundaries {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resolveBoundary(position)
}

func (t *Text) resolveBoundary(position int) Boundaries {
	m := t.layout.Metrics()
	left, top := t.boundaryOffsets(position)
	return Boundaries{
		Left:       -m.Width / 2,
		Top:        -m.Height / 2,
		LeftOffset: left,
		TopOffset:  top,
	}
}

func (t *Text) boundaryOffsets(position int) (left, top float64) {
	if t.cache.valid {
		return t.cache.left, t.cache.top
	}

	l := t.layout
	loc := l.Location(position)
	for i := 0; i < loc.Line; i++ {
		top += l.HeightOfLine(i)
	}

	raw := 0.0
	if b, ok := bound(l, loc.Line, loc.Char); ok {
		raw = b.Left
	}
	if cs := l.Metrics().CharSpacing; cs != 0 && loc.Char == l.LineLength(loc.Line) {
		raw -= cs
	}
	if raw < 0 {
		raw = 0
	}
	left = l.LineLeftOffset(loc.Line) + raw

	t.cache = boundaryCache{valid: true, top: top, left: left}
	return left, top
}

// bound returns the character bound at (line, char), if the layout
// has one.
func bound(l layout.Layout, line, char int) (layout.CharBound, bool) {
	bs := l.CharBounds(line)
	if char < 0 || char >= len(bs) {
		return layout.CharBound{}, false
	}
	return bs[char], true
}
