// Package textseltest contains utility functions that help with
// testing textsel: a mock draw.Display that records draw operations,
// a recording overlay.Context and a manually advanced blink scheduler.
package textseltest

import (
	"fmt"
	"image"
	"sync"

	"github.com/rjkroege/textsel/draw"
)

var _ = draw.Display((*mockDisplay)(nil))

// GettableDrawOps display implementations can provide a list of the
// executed draw ops.
type GettableDrawOps interface {
	DrawOps() []string
	Clear()
}

// mockDisplay implements draw.Display.
type mockDisplay struct {
	mu          sync.Mutex
	drawops     []string
	screenimage draw.Image
	allocs      int

	// failalloc makes AllocImage fail once allocs reaches it; zero
	// disables the failure.
	failalloc int
}

// NewDisplay returns a mock draw.Display whose screen image covers r.
func NewDisplay(r image.Rectangle) draw.Display {
	md := &mockDisplay{}
	md.screenimage = newimageimpl(md, "screen", draw.Notacolor, r)
	return md
}

// NewFailingDisplay is like NewDisplay but its n-th AllocImage call
// (counting from 1) and all later ones fail.
func NewFailingDisplay(r image.Rectangle, n int) draw.Display {
	md := NewDisplay(r).(*mockDisplay)
	md.failalloc = n
	return md
}

func (d *mockDisplay) ScreenImage() draw.Image { return d.screenimage }

func (d *mockDisplay) White() draw.Image {
	return newimageimpl(d, "white", draw.White, image.Rectangle{})
}
func (d *mockDisplay) Black() draw.Image {
	return newimageimpl(d, "black", draw.Black, image.Rectangle{})
}
func (d *mockDisplay) Opaque() draw.Image {
	return newimageimpl(d, "opaque", draw.Opaque, image.Rectangle{})
}
func (d *mockDisplay) Transparent() draw.Image {
	return newimageimpl(d, "transparent", draw.Transparent, image.Rectangle{})
}

func (d *mockDisplay) AllocImage(r image.Rectangle, pix draw.Pix, repl bool, val draw.Color) (draw.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.allocs++
	if d.failalloc > 0 && d.allocs >= d.failalloc {
		return nil, fmt.Errorf("mock AllocImage %d refused", d.allocs)
	}
	return &mockImage{
		d:    d,
		r:    r,
		c:    val,
		repl: repl,
	}, nil
}

// Flush records "flush" among the draw ops.
func (d *mockDisplay) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drawops = append(d.drawops, "flush")
	return nil
}

func (d *mockDisplay) DrawOps() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.drawops...)
}

func (d *mockDisplay) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drawops = nil
}

var _ = draw.Image((*mockImage)(nil))

// mockImage implements draw.Image.
type mockImage struct {
	r    image.Rectangle
	d    *mockDisplay
	n    string
	c    draw.Color
	repl bool
}

// newimageimpl creates a new mockImage. Use Notacolor for the
// situation where the name of the image takes precedence.
func newimageimpl(d *mockDisplay, name string, c draw.Color, r image.Rectangle) draw.Image {
	return &mockImage{
		r: r,
		d: d,
		c: c,
		n: name,
	}
}

func (i *mockImage) Display() draw.Display { return i.d }
func (i *mockImage) Pix() draw.Pix         { return draw.RGBA32 }
func (i *mockImage) R() image.Rectangle    { return i.r }
func (i *mockImage) Free() error           { return nil }

// Draw records "<dst> <- fill <rect> src: <name>" or, for a mask,
// "<dst> <- draw <rect> src: <name> mask: <name>".
func (i *mockImage) Draw(r image.Rectangle, src, mask draw.Image, p1 image.Point) {
	op := fmt.Sprintf("%s <- fill %v src: %s", i.N(), r, name(src))
	if mask != nil {
		op = fmt.Sprintf("%s <- draw %v src: %s mask: %s p1: %v", i.N(), r, name(src), name(mask), p1)
	}
	i.d.mu.Lock()
	defer i.d.mu.Unlock()
	i.d.drawops = append(i.d.drawops, op)
}

func name(i draw.Image) string {
	if mi, ok := i.(*mockImage); ok {
		return mi.N()
	}
	return "nil"
}

// N returns a nicename for the image colour.
func (i *mockImage) N() string {
	nm := i.n
	if i.c != draw.Notacolor && nm == "" {
		nm = fmt.Sprintf("%08x", uint32(i.c))
	}
	if i.repl {
		nm += ",tiled"
	}
	return nm
}
