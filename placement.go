package textsel

import (
	"math"

	"github.com/rjkroege/textsel/overlay"
	"golang.org/x/image/math/f64"
)

// Placement is the object transform: the text box is centred on
// (X, Y), scaled, then rotated by Angle degrees.
type Placement struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Angle          float64
}

// DefaultPlacement is an unscaled object at the canvas origin.
var DefaultPlacement = Placement{ScaleX: 1, ScaleY: 1}

// Matrix returns the object transform.
func (p Placement) Matrix() f64.Aff3 {
	m := overlay.Translate(p.X, p.Y)
	if p.Angle != 0 {
		m = overlay.Mul(m, overlay.Rotate(p.Angle*math.Pi/180))
	}
	return overlay.Mul(m, overlay.Scale(p.ScaleX, p.ScaleY))
}
