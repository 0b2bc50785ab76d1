package cellgrid

import (
	"image"
	"time"
)

// Interaction routing. Exactly one drag context is active at a time;
// a primary-button press claims one of scrollbar, copy-handle, resize,
// pan or selection, in that order. Keyboard handling is independent of
// the drag state and always permitted.

// dragContext is the common shape of an in-progress pointer gesture.
// A drag is dropped by nil-ing the engine's drag field; there is no
// separate cancellation token.
type dragContext interface {
	update(e *Engine, ev *MouseEvent)
	end(e *Engine, ev *MouseEvent)
}

// DragInProgress reports whether any drag context is active. The
// embedder uses it to disable the platform's native text selection
// while a gesture runs.
func (e *Engine) DragInProgress() bool { return e.drag != nil }

// HandleMouse feeds one raw mouse state change, deriving press,
// move and release transitions from the previous button state. Wheel
// bits scroll directly (throttled, trailing) and never start a drag.
func (e *Engine) HandleMouse(pt image.Point, buttons int, msec uint32) {
	if buttons&(ButtonScrollUp|ButtonScrollDown) != 0 {
		e.handleWheel(pt, buttons)
		return
	}
	ev := &MouseEvent{Point: pt, Buttons: buttons, Msec: msec}
	switch {
	case buttons&Button1 != 0 && e.prevButtons&Button1 == 0:
		e.MouseDown(ev)
	case buttons&Button1 == 0 && e.prevButtons&Button1 != 0:
		e.MouseUp(ev)
	default:
		e.MouseMove(ev)
	}
	e.prevButtons = buttons
}

func (e *Engine) handleWheel(pt image.Point, buttons int) {
	step := e.opt.wheelRows * e.defaultRowHeight()
	dy := 0
	if buttons&ButtonScrollUp != 0 {
		dy = -step
	}
	if buttons&ButtonScrollDown != 0 {
		dy = step
	}
	e.wheel.call(e.now(), func() {
		if e.scroll.scrollBy(0, dy, e.scrollView(), e.fixed) {
			e.Render()
		}
	})
}

// MouseDown starts a drag context for a primary-button press.
func (e *Engine) MouseDown(ev *MouseEvent) {
	if e.drag != nil || ev.Buttons&Button1 == 0 {
		return
	}
	e.stopInertia()
	ctx := e.lastCtx
	if ctx == nil {
		return
	}

	if sb, horizontal, ok := ctx.hitScrollbar(ev.Point); ok {
		e.drag = newScrollbarDrag(sb, horizontal, ev.Point)
		return
	}
	if handle, ok := e.hitCopyHandle(ctx, ev.Point); ok {
		e.drag = &copyHandleDrag{base: handle}
		return
	}
	if rd, ok := e.hitResizeBoundary(ev.Point); ok {
		e.drag = rd
		return
	}

	// The cell renderer sees the press first and may keep it.
	if cell, ok := ctx.CellAt(ev.Point); ok {
		e.dispatchMouse(cell, ev, listenerMouseDown)
		if ev.Prevented() {
			return
		}
	}

	if e.spaceHeld {
		e.drag = &viewportPanDrag{start: ev.Point, startOffset: e.scroll.offset}
		return
	}
	e.startSelectionDrag(ev)
}

// MouseMove updates the active drag, or handles hover feedback when
// idle.
func (e *Engine) MouseMove(ev *MouseEvent) {
	if e.drag != nil {
		e.drag.update(e, ev)
		e.updateAutoScroll(ev.Point)
		return
	}
	e.updateHover(ev)
}

// MouseUp ends the active drag.
func (e *Engine) MouseUp(ev *MouseEvent) {
	if cell, ok := e.cellUnder(ev.Point); ok {
		e.dispatchMouse(cell, ev, listenerMouseUp)
	}
	if e.drag == nil {
		return
	}
	e.stopAutoScroll()
	d := e.drag
	e.drag = nil
	d.end(e, ev)
}

// SetPanModifier switches primary-button drags between selection and
// viewport panning, e.g. while space is held.
func (e *Engine) SetPanModifier(active bool) { e.spaceHeld = active }

type listenerKind int

const (
	listenerMouseDown listenerKind = iota
	listenerMouseMove
	listenerMouseOut
	listenerMouseUp
)

func (e *Engine) dispatchMouse(cell Cell, ev *MouseEvent, kind listenerKind) {
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
	var f func(Cell, *MouseEvent)
	switch kind {
	case listenerMouseDown:
		f = l.MouseDown
	case listenerMouseMove:
		f = l.MouseMove
	case listenerMouseOut:
		f = l.MouseOut
	case listenerMouseUp:
		f = l.MouseUp
	}
	if f != nil {
		f(cell, ev)
	}
}

func (e *Engine) cellUnder(pt image.Point) (Cell, bool) {
	if e.lastCtx == nil {
		return Cell{}, false
	}
	return e.lastCtx.CellAt(pt)
}

// updateHover tracks the cell under the idle pointer for mouse-out
// dispatch and boundary cursor feedback.
func (e *Engine) updateHover(ev *MouseEvent) {
	cell, ok := e.cellUnder(ev.Point)
	if e.hover != nil && (!ok || cell.Address() != e.hover.Address()) {
		e.dispatchMouse(*e.hover, ev, listenerMouseOut)
		e.hover = nil
	}
	if ok {
		c := cell
		e.hover = &c
		e.dispatchMouse(cell, ev, listenerMouseMove)
	}
	e.updateHoverCursor(ev.Point)
}

// contentPoint maps a surface point to content coordinates, applying
// the scroll adjustment of the region the point falls into, and names
// that region.
func (e *Engine) contentPoint(pt image.Point) (image.Point, RegionKind) {
	rel := pt.Sub(e.viewRect.Min)
	x := unscalePx(rel.X, e.zoom)
	y := unscalePx(rel.Y, e.zoom)

	inLeft := x < e.fixed.Left.PixelSize
	inTop := y < e.fixed.Top.PixelSize
	if !inLeft {
		x += e.scroll.offset.X
	}
	if !inTop {
		y += e.scroll.offset.Y
	}
	switch {
	case inLeft && inTop:
		return image.Pt(x, y), RegionCorner
	case inTop:
		return image.Pt(x, y), RegionFrozenRows
	case inLeft:
		return image.Pt(x, y), RegionFrozenCols
	}
	return image.Pt(x, y), RegionBody
}

// cellAddrAt returns the grid cell containing the surface point,
// clamped to the grid.
func (e *Engine) cellAddrAt(pt image.Point) CellAddress {
	cpt, _ := e.contentPoint(pt)
	return CellAddress{Row: e.src.RowAt(cpt.Y), Col: e.src.ColAt(cpt.X)}
}

func (e *Engine) hitCopyHandle(ctx *RenderContext, pt image.Point) (CellRange, bool) {
	for _, sel := range ctx.Selections {
		if !sel.Primary || !sel.CopyHandle {
			continue
		}
		if pt.In(copyHandleRect(sel.Bounds, e.opt.copyHandleSize)) {
			primary, ok := e.sel.Primary()
			if !ok {
				return CellRange{}, false
			}
			return primary.Range, true
		}
	}
	return CellRange{}, false
}

// hitResizeBoundary finds a row or column boundary within the
// configured pixel threshold of the pointer. Only the first
// resizableRows/resizableCols lines may be resized.
func (e *Engine) hitResizeBoundary(pt image.Point) (*resizeDrag, bool) {
	cpt, _ := e.contentPoint(pt)
	thr := e.opt.resizeThreshold

	if col, ok := boundaryNear(cpt.X, e.src.ColAt(cpt.X), e.src.ColCount(), e.src.ColOffset, thr); ok && col < e.opt.resizableCols {
		return &resizeDrag{
			vertical: true,
			index:    col,
			startPos: pt.X,
			origSize: e.src.ColWidth(col),
		}, true
	}
	if row, ok := boundaryNear(cpt.Y, e.src.RowAt(cpt.Y), e.src.RowCount(), e.src.RowOffset, thr); ok && row < e.opt.resizableRows {
		return &resizeDrag{
			vertical: false,
			index:    row,
			startPos: pt.Y,
			origSize: e.src.RowHeight(row),
		}, true
	}
	return nil, false
}

// boundaryNear returns the index of the line whose trailing edge lies
// within thr of content coordinate v. i is the line containing v.
func boundaryNear(v, i, count int, offset func(int) int, thr int) (int, bool) {
	if count == 0 {
		return 0, false
	}
	if i > count-1 {
		i = count - 1
	}
	if d := offset(i+1) - v; d >= -thr && d <= thr {
		return i, true
	}
	if i > 0 && v-offset(i) <= thr {
		return i - 1, true
	}
	return 0, false
}

func (e *Engine) startSelectionDrag(ev *MouseEvent) {
	addr := e.cellAddrAt(ev.Point)
	rng := SingleCell(addr.Row, addr.Col)
	if m, ok := e.src.MergeAt(addr.Row, addr.Col); ok {
		rng = m
		addr = CellAddress{Row: m.StartRow, Col: m.StartCol}
	}
	e.sel.Set(Selection{Range: rng, Anchor: addr})
	e.drag = &selectionDrag{anchor: addr}
	e.updateCellFocus()
	e.Render()
}

func (e *Engine) now() time.Time {
	return e.opt.clock()
}
