// Package textsel implements the interactive selection and caret
// rendering of an editable text object placed on a 2D canvas.
//
// A Text owns a selection range over its string. On every render pass
// it resolves the range to pixel geometry through a layout.Layout and
// paints either a blinking caret or the selection highlight onto the
// canvas overlay, so the primary scene never needs repainting at blink
// frequency.
package textsel

import (
	"image/color"
	"sync"
	"time"

	"github.com/rjkroege/textsel/blink"
	"github.com/rjkroege/textsel/layout"
	"github.com/rjkroege/textsel/overlay"
	"go.uber.org/zap"
	"golang.org/x/image/math/f64"
)

// Event names. Observers on a Canvas receive them prefixed with
// "text:".
const (
	EventSelectionChanged = "selection:changed"
	EventEditingEntered   = "editing:entered"
	EventEditingExited    = "editing:exited"
)

// Canvas is the drawing surface hosting a Text.
type Canvas interface {
	// Overlay returns the secondary context that caret and selection
	// are drawn on. A nil Overlay disables drawing.
	Overlay() overlay.Context
	ViewportTransform() f64.Aff3
	Zoom() float64
}

// Notifier is implemented by canvases that want to observe the events
// of the texts they host.
type Notifier interface {
	Fire(event string, target *Text)
}

// Text is an editable text object with selection state.
type Text struct {
	mu sync.Mutex

	text   []rune
	layout layout.Layout
	canvas Canvas

	selectionStart int
	selectionEnd   int

	// Live input-method range, used instead of the selection while
	// composing.
	composing        bool
	compositionStart int
	compositionEnd   int

	editable    bool
	editing     bool
	pointerDown bool

	placement        Placement
	cursorWidth      float64
	cursorColor      color.Color
	selectionColor   color.Color
	compositionColor color.Color

	cursorDelay    time.Duration
	cursorDuration time.Duration
	scheduler      blink.Scheduler

	cache  boundaryCache
	cursor *blink.Controller

	listeners map[string][]func(*Text)
	inputSync func(start, end int)
	log       *zap.Logger
}

// New returns a Text showing s as laid out by l.
func New(s string, l layout.Layout, opts ...Option) *Text {
	t := &Text{
		text:             []rune(s),
		layout:           l,
		editable:         true,
		placement:        DefaultPlacement,
		cursorWidth:      DefaultCursorWidth,
		cursorColor:      DefaultCursorColor,
		selectionColor:   DefaultSelectionColor,
		compositionColor: DefaultCompositionColor,
		listeners:        make(map[string][]func(*Text)),
		log:              zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.cursor = blink.New(blink.Config{
		Delay:     t.cursorDelay,
		Duration:  t.cursorDuration,
		Scheduler: t.scheduler,
		OnChange:  t.onBlink,
		Logger:    t.log,
	})
	return t
}

// String returns the text.
func (t *Text) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.text)
}

// Len returns the length of the text in characters.
func (t *Text) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.text)
}

// SetText replaces the text and its layout. The selection is left as
// is; callers moving text around own the range.
func (t *Text) SetText(s string, l layout.Layout) {
	t.mu.Lock()
	t.text = []rune(s)
	t.mu.Unlock()
	t.SetLayout(l)
}

// SetLayout installs a new layout for the current text. While editing
// the caret restarts its blink delay and the stale overlay is cleared.
func (t *Text) SetLayout(l layout.Layout) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.layout = l
	t.cache.invalidate()
	if t.editing {
		t.cursor.Start(false)
		t.clearOverlay()
	}
}

// Layout returns the current layout.
func (t *Text) Layout() layout.Layout {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.layout
}

// SetCanvas attaches t to c; nil detaches it.
func (t *Text) SetCanvas(c Canvas) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.canvas = c
}

// SetPlacement positions the object on the canvas.
func (t *Text) SetPlacement(p Placement) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.placement = p
}

// On registers fn to be called when event fires on t.
func (t *Text) On(event string, fn func(*Text)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners[event] = append(t.listeners[event], fn)
}

// fire notifies local listeners and then the canvas. It must be
// called without t.mu held.
func (t *Text) fire(event string) {
	t.mu.Lock()
	fns := append([]func(*Text){}, t.listeners[event]...)
	canvas := t.canvas
	t.mu.Unlock()

	for _, fn := range fns {
		fn(t)
	}
	if n, ok := canvas.(Notifier); ok {
		n.Fire("text:"+event, t)
	}
}
