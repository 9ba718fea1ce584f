// Package overlay provides the secondary drawing layer used to paint
// the caret and the selection highlight of an editable text object.
//
// The overlay is kept transform-aligned with the primary scene: every
// caret or selection repaint happens inside a single Save/Restore
// bracket that applies the viewport transform composed with the
// object's own transform, clears the text box (padded by ClearMargin)
// and then draws. The primary content layer never has to be repainted
// at blink frequency.
//
// Two backends are provided. RasterContext draws into an in-memory
// *image.RGBA and touches only the pixels a transformed rectangle
// covers. ImageContext draws onto a 9fans draw.Image and, as Plan 9
// draw composites axis-aligned rectangles only, covers the device
// bounding box of a rotated rectangle.
package overlay
