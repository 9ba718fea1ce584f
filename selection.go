package textsel

import "go.uber.org/zap"

// Selection returns the selection range. Equal values denote a caret.
func (t *Text) Selection() (start, end int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selectionStart, t.selectionEnd
}

func (t *Text) SelectionStart() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selectionStart
}

func (t *Text) SelectionEnd() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selectionEnd
}

// SetSelectionStart moves the start of the selection. Negative
// indices clamp to 0. The range is not reordered: keeping start <= end
// is the caller's job.
func (t *Text) SetSelectionStart(index int) {
	if index < 0 {
		index = 0
	}
	t.updateAndFire(&t.selectionStart, index)
}

// SetSelectionEnd moves the end of the selection, clamped to
// [0, Len()].
func (t *Text) SetSelectionEnd(index int) {
	t.mu.Lock()
	if n := len(t.text); index > n {
		index = n
	}
	t.mu.Unlock()
	if index < 0 {
		index = 0
	}
	t.updateAndFire(&t.selectionEnd, index)
}

// updateAndFire stores index in *field. A change is announced before
// the store, so listeners still observe the previous range.
func (t *Text) updateAndFire(field *int, index int) {
	t.mu.Lock()
	changed := *field != index
	t.mu.Unlock()

	if changed {
		t.fire(EventSelectionChanged)

		t.mu.Lock()
		*field = index
		if t.editing {
			t.cursor.Restart()
		}
		start, end := t.selectionStart, t.selectionEnd
		t.mu.Unlock()
		t.log.Debug("selection changed", zap.Int("start", start), zap.Int("end", end))
	}
	t.syncInput()
}

func (t *Text) syncInput() {
	t.mu.Lock()
	fn := t.inputSync
	start, end := t.selectionStart, t.selectionEnd
	t.mu.Unlock()
	if fn != nil {
		fn(start, end)
	}
}

// SetComposition enters composition mode with the input method's live
// range [start, end], clamped to the text.
func (t *Text) SetComposition(start, end int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.composing = true
	t.compositionStart = t.clamp(start)
	t.compositionEnd = t.clamp(end)
}

// EndComposition leaves composition mode.
func (t *Text) EndComposition() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.composing = false
	t.compositionStart, t.compositionEnd = 0, 0
}

// InComposition reports whether an input method composition is active.
func (t *Text) InComposition() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.composing
}

func (t *Text) clamp(i int) int {
	switch {
	case i < 0:
		return 0
	case i > len(t.text):
		return len(t.text)
	}
	return i
}
