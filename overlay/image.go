package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/rjkroege/textsel/draw"
)

// ImageContext is a Context that paints onto a draw.Image. Plan 9
// draw only composites axis-aligned rectangles, so each rectangle is
// filled over the device bounding box of its transformed corners.
//
// Colour images are allocated on demand and cached per colour. The
// first allocation failure is kept and reported by Err; drawing
// continues with the remaining operations.
type ImageContext struct {
	Stack
	dst        draw.Image
	background draw.Image
	colours    map[draw.Color]draw.Image
	err        error
}

var _ Context = (*ImageContext)(nil)

// NewImageContext returns a context drawing onto dst. ClearRect
// repaints with background, or with the display's white image when
// background is nil.
func NewImageContext(dst, background draw.Image) *ImageContext {
	if background == nil {
		background = dst.Display().White()
	}
	return &ImageContext{
		dst:        dst,
		background: background,
		colours:    make(map[draw.Color]draw.Image),
	}
}

// Err returns the first error encountered while allocating colours.
func (c *ImageContext) Err() error { return c.err }

// Free releases the cached colour images.
func (c *ImageContext) Free() {
	for k, i := range c.colours {
		i.Free()
		delete(c.colours, k)
	}
}

func (c *ImageContext) ClearRect(r Rect) {
	if dr, ok := c.deviceRect(r); ok {
		c.dst.Draw(dr, c.background, nil, image.Point{})
	}
}

func (c *ImageContext) FillRect(r Rect) {
	st := c.Current()
	if st.Alpha == 0 {
		return
	}
	dr, ok := c.deviceRect(r)
	if !ok {
		return
	}
	src, err := c.colour(ToDrawColor(st.Fill, st.Alpha))
	if err != nil {
		if c.err == nil {
			c.err = err
		}
		return
	}
	c.dst.Draw(dr, src, nil, image.Point{})
}

// deviceRect rounds the transformed bounds of r outwards to whole
// pixels, clipped to the destination.
func (c *ImageContext) deviceRect(r Rect) (image.Rectangle, bool) {
	r = r.Canon()
	if r.Empty() {
		return image.Rectangle{}, false
	}
	lo, hi := Bounds(c.Current().Matrix, r)
	dr := image.Rect(
		int(math.Floor(lo[0])), int(math.Floor(lo[1])),
		int(math.Ceil(hi[0])), int(math.Ceil(hi[1])),
	).Intersect(c.dst.R())
	return dr, !dr.Empty()
}

func (c *ImageContext) colour(dc draw.Color) (draw.Image, error) {
	if i, ok := c.colours[dc]; ok {
		return i, nil
	}
	i, err := c.dst.Display().AllocImage(image.Rect(0, 0, 1, 1), draw.RGBA32, true, dc)
	if err != nil {
		return nil, fmt.Errorf("overlay: can't allocate colour %#08x: %w", uint32(dc), err)
	}
	c.colours[dc] = i
	return i, nil
}

// ToDrawColor converts c, scaled by the global alpha a, to a
// premultiplied draw.Color.
func ToDrawColor(c color.Color, a float64) draw.Color {
	if c == nil {
		return draw.Transparent
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	rgb := draw.Color(uint32(n.R)<<24 | uint32(n.G)<<16 | uint32(n.B)<<8 | 0xFF)
	return draw.WithAlpha(rgb, uint8(float64(n.A)*a+0.5))
}
