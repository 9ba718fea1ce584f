package overlay

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrices are f64.Aff3 values laid out row-major as
//
//	x' = m[0]*x + m[1]*y + m[2]
//	y' = m[3]*x + m[4]*y + m[5]

// Identity is the identity transform.
var Identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// Mul returns the transform that applies n and then m.
func Mul(m, n f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		m[0]*n[0] + m[1]*n[3],
		m[0]*n[1] + m[1]*n[4],
		m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3],
		m[3]*n[1] + m[4]*n[4],
		m[3]*n[2] + m[4]*n[5] + m[5],
	}
}

func Translate(tx, ty float64) f64.Aff3 { return f64.Aff3{1, 0, tx, 0, 1, ty} }

func Scale(sx, sy float64) f64.Aff3 { return f64.Aff3{sx, 0, 0, 0, sy, 0} }

// Rotate returns a rotation by rad radians, clockwise in a y-down
// coordinate system.
func Rotate(rad float64) f64.Aff3 {
	s, c := math.Sincos(rad)
	return f64.Aff3{c, -s, 0, s, c, 0}
}

// Apply maps the point (x, y) through m.
func Apply(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Corners returns the four corners of r mapped through m, in drawing
// order.
func Corners(m f64.Aff3, r Rect) [4]f64.Vec2 {
	var q [4]f64.Vec2
	pts := [4][2]float64{
		{r.X, r.Y},
		{r.X + r.W, r.Y},
		{r.X + r.W, r.Y + r.H},
		{r.X, r.Y + r.H},
	}
	for i, p := range pts {
		x, y := Apply(m, p[0], p[1])
		q[i] = f64.Vec2{x, y}
	}
	return q
}

// Bounds returns the axis-aligned device bounding box of r under m,
// as min and max corners.
func Bounds(m f64.Aff3, r Rect) (min, max f64.Vec2) {
	q := Corners(m, r)
	min, max = q[0], q[0]
	for _, p := range q[1:] {
		min[0] = math.Min(min[0], p[0])
		min[1] = math.Min(min[1], p[1])
		max[0] = math.Max(max[0], p[0])
		max[1] = math.Max(max[1], p[1])
	}
	return min, max
}
