package draw

import "image"

// Display is the subset of a 9fans draw display that the overlay
// backends need. Tests substitute textseltest.NewDisplay.
type Display interface {
	ScreenImage() Image
	White() Image
	Black() Image
	Opaque() Image
	Transparent() Image

	AllocImage(r image.Rectangle, pix Pix, repl bool, val Color) (Image, error)
	Flush() error
}

type Image interface {
	Display() Display
	Pix() Pix
	R() image.Rectangle

	Draw(r image.Rectangle, src, mask Image, p1 image.Point)
	Free() error
}

// displayImpl implements the Display interface.
type displayImpl struct {
	*drawDisplay
}

var _ = Display((*displayImpl)(nil))

func (d *displayImpl) ScreenImage() Image { return &imageImpl{d.drawDisplay.ScreenImage} }
func (d *displayImpl) White() Image       { return &imageImpl{d.drawDisplay.White} }
func (d *displayImpl) Black() Image       { return &imageImpl{d.drawDisplay.Black} }
func (d *displayImpl) Opaque() Image      { return &imageImpl{d.drawDisplay.Opaque} }
func (d *displayImpl) Transparent() Image { return &imageImpl{d.drawDisplay.Transparent} }

func (d *displayImpl) AllocImage(r image.Rectangle, pix Pix, repl bool, val Color) (Image, error) {
	i, err := d.drawDisplay.AllocImage(r, pix, repl, val)
	if err != nil {
		return nil, err
	}
	return &imageImpl{i}, nil
}

// imageImpl implements the Image interface.
type imageImpl struct {
	*drawImage
}

var _ = Image((*imageImpl)(nil))

func (dst *imageImpl) Display() Display   { return &displayImpl{dst.drawImage.Display} }
func (dst *imageImpl) Pix() Pix           { return dst.drawImage.Pix }
func (dst *imageImpl) R() image.Rectangle { return dst.drawImage.R }

func (dst *imageImpl) Draw(r image.Rectangle, src, mask Image, p1 image.Point) {
	dst.drawImage.Draw(r, toDrawImage(src), toDrawImage(mask), p1)
}

func toDrawImage(i Image) *drawImage {
	if i == nil {
		return nil
	}
	return i.(*imageImpl).drawImage
}

// WithAlpha premultiplies the RGBA colour c by alpha. Imported from a
// newer version of 9fans.draw.
func WithAlpha(c Color, alpha uint8) Color {
	r := uint32(c >> 24)
	g := uint32(c>>16) & 0xFF
	b := uint32(c>>8) & 0xFF
	r = (r * uint32(alpha)) / 255
	g = (g * uint32(alpha)) / 255
	b = (b * uint32(alpha)) / 255
	return Color(r<<24 | g<<16 | b<<8 | uint32(alpha))
}
