package overlay

import (
	"image/color"

	"golang.org/x/image/math/f64"
)

// ClearMargin pads the cleared text box so that sub-pixel edges left
// by the previous frame are removed too.
const ClearMargin = 4

// Rect is a rectangle in the local (pre-transform) coordinate space.
// Negative sizes are permitted and describe the same area as their
// normalised form.
type Rect struct {
	X, Y, W, H float64
}

// Canon returns r with non-negative width and height.
func (r Rect) Canon() Rect {
	if r.W < 0 {
		r.X, r.W = r.X+r.W, -r.W
	}
	if r.H < 0 {
		r.Y, r.H = r.Y+r.H, -r.H
	}
	return r
}

// Empty reports whether r covers no area.
func (r Rect) Empty() bool { return r.W == 0 || r.H == 0 }

// Context is a transformable 2D drawing context in the style of an
// HTML canvas: state (transform, fill, alpha) is saved and restored
// as a stack and rectangles are given in local coordinates.
type Context interface {
	Save()
	Restore()
	// Transform post-multiplies the current transform by m.
	Transform(m f64.Aff3)
	ClearRect(r Rect)
	SetFill(c color.Color)
	SetAlpha(a float64)
	FillRect(r Rect)
}

// State is one entry of a Stack.
type State struct {
	Matrix f64.Aff3
	Fill   color.Color
	Alpha  float64
}

// Stack implements the state half of Context. Backends embed it and
// supply ClearRect and FillRect.
type Stack struct {
	cur   State
	saved []State
	init  bool
}

func (s *Stack) lazyinit() {
	if !s.init {
		s.cur = State{Matrix: Identity, Fill: color.Black, Alpha: 1}
		s.init = true
	}
}

func (s *Stack) Save() {
	s.lazyinit()
	s.saved = append(s.saved, s.cur)
}

// Restore pops the most recently saved state. An unbalanced Restore
// is ignored, as a canvas does.
func (s *Stack) Restore() {
	s.lazyinit()
	if len(s.saved) == 0 {
		return
	}
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

func (s *Stack) Transform(m f64.Aff3) {
	s.lazyinit()
	s.cur.Matrix = Mul(s.cur.Matrix, m)
}

func (s *Stack) SetFill(c color.Color) {
	s.lazyinit()
	s.cur.Fill = c
}

// SetAlpha sets the global alpha, clamped to [0, 1].
func (s *Stack) SetAlpha(a float64) {
	s.lazyinit()
	switch {
	case a < 0:
		a = 0
	case a > 1:
		a = 1
	}
	s.cur.Alpha = a
}

// Current returns the active state.
func (s *Stack) Current() State {
	s.lazyinit()
	return s.cur
}

// Depth returns the number of saved states.
func (s *Stack) Depth() int { return len(s.saved) }

// Clear opens a bracket on ctx: it saves the state, applies m and
// clears the width x height text box centred on the local origin,
// padded by ClearMargin. Unless skipRestore is set the state is
// restored immediately; otherwise the caller owns the matching
// Restore.
func Clear(ctx Context, m f64.Aff3, width, height float64, skipRestore bool) {
	ctx.Save()
	ctx.Transform(m)
	w, h := width+ClearMargin, height+ClearMargin
	ctx.ClearRect(Rect{X: -w / 2, Y: -h / 2, W: w, H: h})
	if !skipRestore {
		ctx.Restore()
	}
}

// WithOverlay clears the text box under m and runs fn inside the same
// Save/Restore bracket.
func WithOverlay(ctx Context, m f64.Aff3, width, height float64, fn func(Context)) {
	Clear(ctx, m, width, height, true)
	defer ctx.Restore()
	fn(ctx)
}

// premultiply returns c with its alpha scaled by a.
func premultiply(c color.Color, a float64) color.RGBA64 {
	if c == nil {
		c = color.Transparent
	}
	r, g, b, al := c.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * a),
		G: uint16(float64(g) * a),
		B: uint16(float64(b) * a),
		A: uint16(float64(al) * a),
	}
}
