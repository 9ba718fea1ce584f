package overlay_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rjkroege/textsel/overlay"
	"github.com/rjkroege/textsel/textseltest"
)

var red = color.NRGBA{R: 0xff, A: 0xff}

func TestImageContext(t *testing.T) {
	d := textseltest.NewDisplay(image.Rect(0, 0, 100, 100))
	c := overlay.NewImageContext(d.ScreenImage(), nil)

	overlay.WithOverlay(c, overlay.Translate(10, 10), 6, 6, func(ctx overlay.Context) {
		ctx.SetFill(red)
		ctx.FillRect(overlay.Rect{W: 5, H: 5})
		ctx.SetAlpha(0.5)
		ctx.FillRect(overlay.Rect{X: 0.5, Y: 0.5, W: 1, H: 1})
		ctx.SetAlpha(0)
		ctx.FillRect(overlay.Rect{W: 5, H: 5})
	})
	c.FillRect(overlay.Rect{X: 98, Y: 98, W: 10, H: 10})
	c.FillRect(overlay.Rect{X: 200, Y: 200, W: 10, H: 10})

	want := []string{
		"screen <- fill (5,5)-(15,15) src: white",
		"screen <- fill (10,10)-(15,15) src: ff0000ff,tiled",
		"screen <- fill (10,10)-(12,12) src: 80000080,tiled",
		"screen <- fill (98,98)-(100,100) src: 000000ff,tiled",
	}
	if diff := cmp.Diff(want, d.(textseltest.GettableDrawOps).DrawOps()); diff != "" {
		t.Errorf("draw ops mismatch (-want +got):\n%s", diff)
	}
	if err := c.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
	c.Free()
}

func TestImageContextBackground(t *testing.T) {
	d := textseltest.NewDisplay(image.Rect(0, 0, 100, 100))
	c := overlay.NewImageContext(d.ScreenImage(), d.Black())
	c.ClearRect(overlay.Rect{X: 1, Y: 1, W: 2, H: 2})
	want := []string{"screen <- fill (1,1)-(3,3) src: black"}
	if diff := cmp.Diff(want, d.(textseltest.GettableDrawOps).DrawOps()); diff != "" {
		t.Errorf("draw ops mismatch (-want +got):\n%s", diff)
	}
}

func TestImageContextAllocFailure(t *testing.T) {
	d := textseltest.NewFailingDisplay(image.Rect(0, 0, 100, 100), 2)
	c := overlay.NewImageContext(d.ScreenImage(), nil)

	c.SetFill(red)
	c.FillRect(overlay.Rect{W: 1, H: 1})
	c.SetFill(color.White)
	c.FillRect(overlay.Rect{W: 1, H: 1})
	c.SetFill(red)
	c.FillRect(overlay.Rect{X: 1, W: 1, H: 1})

	if c.Err() == nil {
		t.Fatal("Err() = nil after a failed allocation")
	}
	want := []string{
		"screen <- fill (0,0)-(1,1) src: ff0000ff,tiled",
		"screen <- fill (1,0)-(2,1) src: ff0000ff,tiled",
	}
	if diff := cmp.Diff(want, d.(textseltest.GettableDrawOps).DrawOps()); diff != "" {
		t.Errorf("draw ops mismatch (-want +got):\n%s", diff)
	}
}
