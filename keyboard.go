package cellgrid

import "github.com/bennyboer/cellgrid/draw"

// Keyboard handling is independent of the drag state: arrows move or
// extend the primary selection, Tab and Enter advance it, Ctrl+A
// selects the whole grid and Ctrl+C copies. Control chords arrive as
// control runes the way the draw keyboard delivers them.

const (
	keyCtrlA = '\x01'
	keyCtrlC = '\x03'
)

// KeyDown feeds one key press. The renderer of the focused cell sees
// it first and may prevent the engine's own handling.
func (e *Engine) KeyDown(ev *KeyEvent) {
	if cell, ok := e.focusedCell(); ok {
		e.dispatchKey(cell, ev, true)
		if ev.Prevented() {
			return
		}
	}

	switch ev.Rune {
	case draw.KeyLeft:
		e.moveOrExtend(0, -1, ev.Shift, false)
	case draw.KeyRight:
		e.moveOrExtend(0, 1, ev.Shift, false)
	case draw.KeyUp:
		e.moveOrExtend(-1, 0, ev.Shift, false)
	case draw.KeyDown:
		e.moveOrExtend(1, 0, ev.Shift, false)
	case draw.KeyHome:
		e.moveOrExtend(0, -1, ev.Shift, true)
	case draw.KeyEnd:
		e.moveOrExtend(0, 1, ev.Shift, true)
	case '\t':
		e.moveOrExtend(0, 1, false, false)
	case '\n', '\r':
		e.moveOrExtend(1, 0, false, false)
	case keyCtrlA:
		e.selectAll()
	case keyCtrlC:
		e.CopySelection()
	}
}

// KeyUp feeds one key release; it is only dispatched to the focused
// cell's renderer.
func (e *Engine) KeyUp(ev *KeyEvent) {
	if cell, ok := e.focusedCell(); ok {
		e.dispatchKey(cell, ev, false)
	}
}

func (e *Engine) moveOrExtend(dr, dc int, extend, jump bool) {
	if e.sel == nil {
		return
	}
	if extend {
		e.sel.ExtendBy(dr, dc, jump)
	} else {
		e.sel.MoveBy(dr, dc, jump)
	}
	if p, ok := e.sel.Primary(); ok {
		e.scroll.scrollToCell(p.Anchor.Row, p.Anchor.Col, e.scrollView(), e.fixed)
	}
	e.updateCellFocus()
	e.Render()
}

func (e *Engine) selectAll() {
	rows, cols := e.src.RowCount(), e.src.ColCount()
	if rows == 0 || cols == 0 {
		return
	}
	anchor := CellAddress{}
	if p, ok := e.sel.Primary(); ok {
		anchor = p.Anchor
	}
	e.sel.Set(Selection{
		Range:  CellRange{0, 0, rows - 1, cols - 1},
		Anchor: anchor,
	})
	e.updateCellFocus()
	e.Render()
}

// focusedCell is the primary selection's anchor as a renderer-facing
// cell, when it is visible this frame.
func (e *Engine) focusedCell() (Cell, bool) {
	if e.sel == nil || e.lastCtx == nil {
		return Cell{}, false
	}
	p, ok := e.sel.Primary()
	if !ok {
		return Cell{}, false
	}
	for _, area := range e.lastCtx.Areas {
		if area == nil {
			continue
		}
		for _, cells := range area.CellsByRenderer {
			for _, c := range cells {
				if c.Merge.Contains(p.Anchor.Row, p.Anchor.Col) {
					return c, true
				}
			}
		}
	}
	return Cell{}, false
}

func (e *Engine) dispatchKey(cell Cell, ev *KeyEvent, down bool) {
	r, ok := e.renderers[e.src.RendererName(cell.Row, cell.Col)]
	if !ok {
		return
	}
	er, ok := r.(EventfulRenderer)
	if !ok {
		return
	}
	l := er.Listeners()
	if l == nil {
		return
	}
	if down && l.KeyDown != nil {
		l.KeyDown(cell, ev)
	}
	if !down && l.KeyUp != nil {
		l.KeyUp(cell, ev)
	}
}
