package cellgrid

import (
	"image"

	"github.com/bennyboer/cellgrid/draw"
)

// Cursor handling. Hovering near a resizable boundary shows a resize
// cursor; an external SetCursor suppresses that hover feedback until
// ResetCursor is called.

var colResizeCursor = draw.Cursor{
	Point: image.Point{-7, -7},
	Clr: [32]byte{0x00, 0x00, 0x01, 0x80, 0x01, 0x80, 0x01, 0x80,
		0x09, 0x90, 0x19, 0x98, 0x39, 0x9C, 0x79, 0x9E,
		0x79, 0x9E, 0x39, 0x9C, 0x19, 0x98, 0x09, 0x90,
		0x01, 0x80, 0x01, 0x80, 0x01, 0x80, 0x00, 0x00},
	Set: [32]byte{0x00, 0x00, 0x00, 0x00, 0x01, 0x80, 0x01, 0x80,
		0x01, 0x80, 0x11, 0x88, 0x31, 0x8C, 0x71, 0x8E,
		0x31, 0x8C, 0x11, 0x88, 0x01, 0x80, 0x01, 0x80,
		0x01, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
}

var rowResizeCursor = draw.Cursor{
	Point: image.Point{-7, -7},
	Clr: [32]byte{0x01, 0x80, 0x03, 0xC0, 0x07, 0xE0, 0x0F, 0xF0,
		0x01, 0x80, 0x01, 0x80, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0x01, 0x80, 0x01, 0x80,
		0x0F, 0xF0, 0x07, 0xE0, 0x03, 0xC0, 0x01, 0x80},
	Set: [32]byte{0x00, 0x00, 0x01, 0x80, 0x03, 0xC0, 0x07, 0xE0,
		0x01, 0x80, 0x00, 0x00, 0x7F, 0xFE, 0xFF, 0xFF,
		0x7F, 0xFE, 0x00, 0x00, 0x01, 0x80, 0x07, 0xE0,
		0x03, 0xC0, 0x01, 0x80, 0x00, 0x00, 0x00, 0x00},
}

// SetCursor installs an external cursor override. Hover-driven cursor
// changes are suppressed until ResetCursor.
func (e *Engine) SetCursor(c *draw.Cursor) {
	e.cursorOverride = true
	e.display.SetCursor(c)
}

// ResetCursor removes the external override and restores the default
// cursor.
func (e *Engine) ResetCursor() {
	e.cursorOverride = false
	e.display.SetCursor(nil)
}

// updateHoverCursor switches to a resize cursor near a resizable
// boundary, respecting an external override.
func (e *Engine) updateHoverCursor(pt image.Point) {
	if e.cursorOverride || e.display == nil {
		return
	}
	var want *draw.Cursor
	if rd, ok := e.hitResizeBoundary(pt); ok {
		if rd.vertical {
			want = &colResizeCursor
		} else {
			want = &rowResizeCursor
		}
	}
	if want == e.hoverCursor {
		return
	}
	e.hoverCursor = want
	e.display.SetCursor(want)
}
