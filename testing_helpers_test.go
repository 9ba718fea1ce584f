package textsel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rjkroege/textsel/layout"
	"github.com/rjkroege/textsel/overlay"
	"github.com/rjkroege/textsel/textseltest"
	"golang.org/x/image/math/f64"
)

// Code needed to help write tests.

var approx = cmpopts.EquateApprox(0, 1e-9)

// testCanvas is a Canvas and Notifier backed by a Recorder.
type testCanvas struct {
	rec    *textseltest.Recorder
	vpt    f64.Aff3
	zoom   float64
	events []string
}

func newTestCanvas() *testCanvas {
	return &testCanvas{rec: &textseltest.Recorder{}, vpt: overlay.Identity, zoom: 1}
}

func (c *testCanvas) Overlay() overlay.Context {
	if c.rec == nil {
		return nil
	}
	return c.rec
}
func (c *testCanvas) ViewportTransform() f64.Aff3 { return c.vpt }
func (c *testCanvas) Zoom() float64               { return c.zoom }
func (c *testCanvas) Fire(ev string, _ *Text)     { c.events = append(c.events, ev) }

// grid is the 10x10 cell monospace configuration most tests use.
func grid() layout.Config {
	return layout.Config{FontSize: 10, CellWidth: 10}
}

// editingText returns a Text in editing mode on a fresh canvas, with
// a manual blink scheduler.
func editingText(t *testing.T, s string, l layout.Layout, opts ...Option) (*Text, *testCanvas, *textseltest.Scheduler) {
	t.Helper()
	c := newTestCanvas()
	sched := &textseltest.Scheduler{}
	opts = append([]Option{WithCanvas(c), WithScheduler(sched)}, opts...)
	txt := New(s, l, opts...)
	txt.EnterEditing()
	c.rec.Reset()
	return txt, c, sched
}

func diffRects(t *testing.T, want []overlay.Rect, fills []textseltest.Op) {
	t.Helper()
	got := make([]overlay.Rect, len(fills))
	for i, f := range fills {
		got[i] = f.Rect
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("filled rects mismatch (-want +got):\n%s", diff)
	}
}

// fakeLayout is a hand-built layout.Layout for cases Monospace can't
// produce.
type fakeLayout struct {
	metrics layout.Metrics
	heights []float64
	widths  []float64
	ends    []bool
	bounds  [][]layout.CharBound
	lengths []int
	offsets []float64
	locs    map[int]layout.Location
	style   layout.Style
}

var _ layout.Layout = (*fakeLayout)(nil)

func (f *fakeLayout) Metrics() layout.Metrics    { return f.metrics }
func (f *fakeLayout) LineCount() int             { return len(f.heights) }
func (f *fakeLayout) LineLength(i int) int       { return f.lengths[i] }
func (f *fakeLayout) HeightOfLine(i int) float64 { return f.heights[i] }
func (f *fakeLayout) LineWidth(i int) float64    { return f.widths[i] }
func (f *fakeLayout) IsEndOfWrapping(i int) bool { return f.ends[i] }
func (f *fakeLayout) CharBounds(i int) []layout.CharBound {
	if i >= len(f.bounds) {
		return nil
	}
	return f.bounds[i]
}
func (f *fakeLayout) LineLeftOffset(i int) float64 {
	if i >= len(f.offsets) {
		return 0
	}
	return f.offsets[i]
}
func (f *fakeLayout) Location(index int) layout.Location  { return f.locs[index] }
func (f *fakeLayout) StyleAt(line, char int) layout.Style { return f.style }
