package textsel

import (
	"image/color"
	"time"

	"github.com/rjkroege/textsel/blink"
	"github.com/rjkroege/textsel/overlay"
	"go.uber.org/zap"
)

const (
	// DefaultCursorWidth is the caret width in device pixels.
	DefaultCursorWidth = 2
	DefaultCursorDelay = blink.DefaultDelay
	// DefaultCursorDuration is the length of a caret fade-in.
	DefaultCursorDuration = blink.DefaultDuration
)

var (
	DefaultCursorColor      color.Color = overlay.MustParseColor("#333")
	DefaultSelectionColor   color.Color = overlay.MustParseColor("rgba(17,119,255,0.3)")
	DefaultCompositionColor color.Color = color.Black
)

// Option is a functional option for configuring a Text.
type Option func(*Text)

// WithCanvas attaches the Text to a canvas.
func WithCanvas(c Canvas) Option {
	return func(t *Text) {
		t.canvas = c
	}
}

// WithPlacement sets the position, scale and rotation on the canvas.
func WithPlacement(p Placement) Option {
	return func(t *Text) {
		t.placement = p
	}
}

// WithEditable controls whether EnterEditing has any effect.
func WithEditable(editable bool) Option {
	return func(t *Text) {
		t.editable = editable
	}
}

// WithCursorWidth sets the caret width in device pixels.
func WithCursorWidth(w float64) Option {
	return func(t *Text) {
		t.cursorWidth = w
	}
}

// WithCursorColor sets the caret colour used when the preceding
// character has no fill of its own.
func WithCursorColor(c color.Color) Option {
	return func(t *Text) {
		t.cursorColor = c
	}
}

// WithSelectionColor sets the selection highlight colour.
func WithSelectionColor(c color.Color) Option {
	return func(t *Text) {
		t.selectionColor = c
	}
}

// WithCompositionColor sets the colour of the composition underline.
func WithCompositionColor(c color.Color) Option {
	return func(t *Text) {
		t.compositionColor = c
	}
}

// WithCursorDelay sets how long the caret stays solid after a
// selection change before it starts blinking.
func WithCursorDelay(d time.Duration) Option {
	return func(t *Text) {
		t.cursorDelay = d
	}
}

// WithCursorDuration sets the length of a caret fade-in.
func WithCursorDuration(d time.Duration) Option {
	return func(t *Text) {
		t.cursorDuration = d
	}
}

// WithScheduler replaces the wall-clock scheduler of the caret blink.
func WithScheduler(s blink.Scheduler) Option {
	return func(t *Text) {
		t.scheduler = s
	}
}

// WithInputSync registers the hook that keeps a bound text input (for
// example a hidden IME field) in step with the selection.
func WithInputSync(fn func(start, end int)) Option {
	return func(t *Text) {
		t.inputSync = fn
	}
}

// WithLogger sets the logger for debug events.
func WithLogger(l *zap.Logger) Option {
	return func(t *Text) {
		t.log = l.Named("textsel")
	}
}
