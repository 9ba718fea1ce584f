package textsel

import (
	"github.com/rjkroege/textsel/overlay"
	"go.uber.org/zap"
	"golang.org/x/image/math/f64"
)

// Render starts a render pass: it clears the overlay, drops the
// cached caret offsets and paints the caret or the selection. It does
// nothing unless t is being edited on a canvas.
func (t *Text) Render() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.editing || t.canvas == nil {
		return
	}
	t.clearOverlay()
	t.cache.invalidate()
	t.renderCursorOrSelection()
}

// RenderCursorOrSelection repaints the caret or the selection without
// starting a new pass, reusing the offsets cached by the last Render.
// The caret blink uses it for every animation frame.
func (t *Text) RenderCursorOrSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.renderCursorOrSelection()
}

func (t *Text) renderCursorOrSelection() {
	if !t.editing || t.canvas == nil {
		return
	}
	ctx := t.canvas.Overlay()
	if ctx == nil {
		return
	}
	b := t.resolveBoundary(t.selectionStart)
	m := t.layout.Metrics()
	overlay.WithOverlay(ctx, t.overlayTransform(), m.Width, m.Height, func(ctx overlay.Context) {
		if t.selectionStart == t.selectionEnd {
			t.renderCaret(b, ctx)
		} else {
			t.renderSelection(&b, ctx)
		}
	})
}

// overlayTransform composes the viewport with the object transform,
// the same transform the text itself is painted with.
func (t *Text) overlayTransform() f64.Aff3 {
	return overlay.Mul(t.canvas.ViewportTransform(), t.placement.Matrix())
}

// clearOverlay erases the text box from the overlay. It only acts
// while editing.
func (t *Text) clearOverlay() {
	if !t.editing {
		return
	}
	t.eraseOverlay()
}

func (t *Text) eraseOverlay() {
	if t.canvas == nil {
		return
	}
	ctx := t.canvas.Overlay()
	if ctx == nil {
		return
	}
	m := t.layout.Metrics()
	overlay.Clear(ctx, t.overlayTransform(), m.Width, m.Height, false)
}

// onBlink redraws the caret for a blink frame. Frames arriving after
// editing ended, or while a range is selected, are dropped.
func (t *Text) onBlink() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.editing || t.selectionStart != t.selectionEnd {
		return
	}
	t.renderCursorOrSelection()
}

// IsEditing reports whether t is in editing mode.
func (t *Text) IsEditing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.editing
}

// EnterEditing switches t into editing mode and starts the caret, held
// solid if the pointer is already down. It does nothing when t is not
// editable or already editing.
func (t *Text) EnterEditing() {
	t.mu.Lock()
	if t.editing || !t.editable {
		t.mu.Unlock()
		return
	}
	t.editing = true
	t.cursor.Start(false)
	if t.pointerDown {
		t.cursor.SetPointerDown(true)
	}
	t.mu.Unlock()

	t.log.Debug("editing entered")
	t.fire(EventEditingEntered)
}

// ExitEditing leaves editing mode, cancels the caret animation and
// erases the overlay.
func (t *Text) ExitEditing() {
	t.mu.Lock()
	if !t.editing {
		t.mu.Unlock()
		return
	}
	t.editing = false
	t.pointerDown = false
	t.composing = false
	aborted := t.cursor.Stop()
	if aborted {
		t.eraseOverlay()
	}
	t.mu.Unlock()

	t.log.Debug("editing exited", zap.Bool("aborted", aborted))
	t.fire(EventEditingExited)
}

// SetPointerDown records whether the pointer button is held over t.
// While held the caret is drawn solid and the blink clock is paused.
func (t *Text) SetPointerDown(down bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pointerDown = down
	if t.editing {
		t.cursor.SetPointerDown(down)
	}
}

// CaretState returns the caret opacity and whether it is currently
// forced solid by a held pointer.
func (t *Text) CaretState() (opacity float64, suppressed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pointerDown {
		return 1, true
	}
	return t.cursor.Opacity(), false
}
