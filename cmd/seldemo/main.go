package main

// seldemo lays out some text, selects part of it and writes one
// overlay frame (the caret or the selection highlight) as a PNG.

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/rjkroege/textsel"
	"github.com/rjkroege/textsel/draw"
	"github.com/rjkroege/textsel/layout"
	"github.com/rjkroege/textsel/overlay"
	"go.uber.org/zap"
	"golang.org/x/image/math/f64"
)

var (
	text        = flag.String("text", "The quick brown fox\njumps over the lazy dog", "text to lay out")
	width       = flag.Float64("width", 0, "wrap width in pixels; 0 disables wrapping")
	fontsize    = flag.Float64("fontsize", layout.DefaultFontSize, "font size in pixels")
	align       = flag.String("align", "left", "one of left, center, right or justify")
	start       = flag.Int("start", 4, "selection start")
	end         = flag.Int("end", 15, "selection end")
	composition = flag.Bool("composition", false, "draw the selection as a composition underline")
	zoom        = flag.Float64("zoom", 1, "canvas zoom")
	angle       = flag.Float64("angle", 0, "object rotation in degrees")
	colour      = flag.String("selection", "", "selection colour, e.g. #1177ff or rgba(17,119,255,0.3)")
	out         = flag.String("o", "selection.png", "output PNG")
	window      = flag.Bool("window", false, "draw in a devdraw window instead of writing a PNG")
	hold        = flag.Duration("hold", 5*time.Second, "how long to keep the window open")
	debug       = flag.Bool("d", false, "set for verbose debugging")
)

// canvas is a textsel.Canvas over a single overlay with the object
// centred in bounds.
type canvas struct {
	ctx    overlay.Context
	bounds image.Rectangle
	zoom   float64
	log    *zap.Logger
}

func (c *canvas) Overlay() overlay.Context { return c.ctx }

func (c *canvas) ViewportTransform() f64.Aff3 {
	b := c.bounds
	return overlay.Mul(
		overlay.Translate(float64(b.Min.X+b.Max.X)/2, float64(b.Min.Y+b.Max.Y)/2),
		overlay.Scale(c.zoom, c.zoom),
	)
}

func (c *canvas) Zoom() float64 { return c.zoom }

func (c *canvas) Fire(event string, t *textsel.Text) {
	start, end := t.Selection()
	c.log.Debug("event", zap.String("name", event), zap.Int("start", start), zap.Int("end", end))
}

// flushingContext flushes the display each time an overlay bracket
// closes, so blink frames drawn on timer goroutines reach the window.
type flushingContext struct {
	*overlay.ImageContext
	display draw.Display
	log     *zap.Logger
}

func (c *flushingContext) Restore() {
	c.ImageContext.Restore()
	if c.Depth() > 0 {
		return
	}
	if err := c.display.Flush(); err != nil {
		c.log.Warn("can't flush display", zap.Error(err))
	}
}

func parseAlign(s string) (layout.Align, error) {
	switch s {
	case "left":
		return layout.AlignLeft, nil
	case "center":
		return layout.AlignCenter, nil
	case "right":
		return layout.AlignRight, nil
	case "justify":
		return layout.AlignJustify, nil
	}
	return 0, fmt.Errorf("unknown alignment %q", s)
}

func main() {
	flag.Parse()

	logger := zap.NewNop()
	if *debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("can't make logger: %v", err)
		}
		logger = l
	}
	defer logger.Sync()

	a, err := parseAlign(*align)
	if err != nil {
		log.Fatal(err)
	}
	l := layout.NewMonospace(*text, layout.Config{FontSize: *fontsize, Width: *width, Align: a})
	m := l.Metrics()

	// Leave room for any rotation of the box.
	side := int((m.Width+m.Height) * *zoom) + 2*overlay.ClearMargin
	c := &canvas{zoom: *zoom, log: logger}

	var (
		raster  *overlay.RasterContext
		ic      *overlay.ImageContext
		display draw.Display
		errch   chan error
	)
	if *window {
		errch = make(chan error, 1)
		display, err = draw.NewDisplay(errch, "", "seldemo", fmt.Sprintf("%dx%d", side, side))
		if err != nil {
			log.Fatalf("can't open display: %v", err)
		}
		screen := display.ScreenImage()
		ic = overlay.NewImageContext(screen, nil)
		defer ic.Free()
		c.ctx, c.bounds = &flushingContext{ImageContext: ic, display: display, log: logger}, screen.R()
	} else {
		raster = overlay.NewRasterContext(image.NewRGBA(image.Rect(0, 0, side, side)))
		c.ctx, c.bounds = raster, raster.Image().Bounds()
	}

	opts := []textsel.Option{
		textsel.WithCanvas(c),
		textsel.WithLogger(logger),
		textsel.WithPlacement(textsel.Placement{ScaleX: 1, ScaleY: 1, Angle: *angle}),
	}
	if *colour != "" {
		sc, err := overlay.ParseColor(*colour)
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, textsel.WithSelectionColor(sc))
	}
	t := textsel.New(*text, l, opts...)

	t.EnterEditing()
	t.SetSelectionStart(*start)
	t.SetSelectionEnd(*end)
	if *composition {
		t.SetComposition(*start, *end)
	}
	t.Render()
	defer t.ExitEditing()

	if *window {
		if err := ic.Err(); err != nil {
			log.Fatalf("can't draw overlay: %v", err)
		}
		select {
		case err := <-errch:
			log.Fatalf("display: %v", err)
		case <-time.After(*hold):
		}
		return
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("can't create %s: %v", *out, err)
	}
	if err := png.Encode(f, raster.Image()); err != nil {
		f.Close()
		log.Fatalf("can't encode %s: %v", *out, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("can't close %s: %v", *out, err)
	}
	logger.Info("wrote overlay frame", zap.String("file", *out), zap.Int("size", side))
}
