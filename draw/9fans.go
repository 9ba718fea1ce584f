package draw

import (
	draw "9fans.net/go/draw"
)

const (
	Black       = draw.Black
	Notacolor   = draw.Notacolor
	Opaque      = draw.Opaque
	Transparent = draw.Transparent
	White       = draw.White
)

// Pix constants for pixel formats. Colour images with alpha are
// allocated as RGBA32.
var (
	RGBA32 = draw.RGBA32
	RGB24  = draw.RGB24
)

type (
	Color       = draw.Color
	drawDisplay = draw.Display
	drawImage   = draw.Image
	Pix         = draw.Pix
)

// NewDisplay connects to the draw device and wraps the result in the
// Display interface.
func NewDisplay(errch chan<- error, fontname, label, winsize string) (Display, error) {
	d, err := draw.Init(errch, fontname, label, winsize)
	if err != nil {
		return nil, err
	}
	return &displayImpl{d}, nil
}
