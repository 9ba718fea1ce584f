package overlay

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// RasterContext is a Context that paints into an in-memory RGBA
// image. Rectangles are rasterised with anti-aliasing after the full
// affine transform, so rotated and skewed objects are drawn exactly.
type RasterContext struct {
	Stack
	dst *image.RGBA
	z   vector.Rasterizer
}

var _ Context = (*RasterContext)(nil)

// NewRasterContext returns a RasterContext drawing into dst.
func NewRasterContext(dst *image.RGBA) *RasterContext {
	return &RasterContext{dst: dst}
}

// Image returns the destination image.
func (c *RasterContext) Image() *image.RGBA { return c.dst }

// ClearRect erases the covered pixels. Partly covered pixels at the
// edges of a transformed rectangle keep the uncovered share of their
// colour.
func (c *RasterContext) ClearRect(r Rect) {
	box, mask, ok := c.coverage(r)
	switch {
	case !ok:
	case mask == nil:
		xdraw.Draw(c.dst, box, image.Transparent, image.Point{}, xdraw.Src)
	default:
		c.erase(box, mask)
	}
}

// FillRect composites the current fill at the current alpha over the
// covered pixels.
func (c *RasterContext) FillRect(r Rect) {
	st := c.Current()
	if st.Alpha == 0 {
		return
	}
	box, mask, ok := c.coverage(r)
	if !ok {
		return
	}
	src := image.NewUniform(premultiply(st.Fill, st.Alpha))
	if mask == nil {
		xdraw.Draw(c.dst, box, src, image.Point{}, xdraw.Over)
		return
	}
	xdraw.DrawMask(c.dst, box, src, image.Point{}, mask, box.Min, xdraw.Over)
}

// coverage returns the device box of r under the current transform,
// clipped to the destination, and an anti-aliased coverage mask over
// that box. The mask is nil when r covers whole pixels of box exactly.
func (c *RasterContext) coverage(r Rect) (image.Rectangle, *image.Alpha, bool) {
	r = r.Canon()
	if r.Empty() {
		return image.Rectangle{}, nil, false
	}
	m := c.Current().Matrix
	lo, hi := Bounds(m, r)
	box := image.Rect(
		int(math.Floor(lo[0])), int(math.Floor(lo[1])),
		int(math.Ceil(hi[0])), int(math.Ceil(hi[1])),
	).Intersect(c.dst.Bounds())
	if box.Empty() {
		return image.Rectangle{}, nil, false
	}

	// Axis-aligned whole-pixel rectangles need no coverage mask.
	if m[1] == 0 && m[3] == 0 && isIntegral(lo[0], lo[1], hi[0], hi[1]) {
		return box, nil, true
	}

	mask := image.NewAlpha(box)
	c.z.Reset(box.Dx(), box.Dy())
	c.z.DrawOp = xdraw.Src
	q := Corners(m, r)
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	c.z.MoveTo(float32(q[0][0]-ox), float32(q[0][1]-oy))
	for _, p := range q[1:] {
		c.z.LineTo(float32(p[0]-ox), float32(p[1]-oy))
	}
	c.z.ClosePath()
	c.z.Draw(mask, box, image.Opaque, image.Point{})
	return box, mask, true
}

// erase scales every premultiplied pixel in box by one minus its
// coverage, the destination-out operator.
func (c *RasterContext) erase(box image.Rectangle, mask *image.Alpha) {
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			a := uint32(mask.AlphaAt(x, y).A)
			if a == 0 {
				continue
			}
			keep := 0xff - a
			i := c.dst.PixOffset(x, y)
			for j := 0; j < 4; j++ {
				c.dst.Pix[i+j] = uint8((uint32(c.dst.Pix[i+j])*keep + 0x7f) / 0xff)
			}
		}
	}
}

func isIntegral(xs ...float64) bool {
	for _, x := range xs {
		if x != math.Trunc(x) {
			return false
		}
	}
	return true
}
