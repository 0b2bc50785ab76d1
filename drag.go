package cellgrid

import "image"

// The drag context variants. Each carries only what is needed to turn
// the current pointer position into a delta from the gesture's start.

// scrollbarDrag tracks a grabbed scrollbar thumb. A press on the track
// outside the thumb centers the thumb on the pointer first.
type scrollbarDrag struct {
	horizontal bool
	grab       int // pointer offset into the thumb along the drag axis
	thumbLen   int
}

func newScrollbarDrag(sb *ScrollbarInfo, horizontal bool, pt image.Point) *scrollbarDrag {
	d := &scrollbarDrag{horizontal: horizontal}
	if horizontal {
		d.thumbLen = sb.Thumb.Dx()
		d.grab = pt.X - sb.Thumb.Min.X
	} else {
		d.thumbLen = sb.Thumb.Dy()
		d.grab = pt.Y - sb.Thumb.Min.Y
	}
	if d.grab < 0 || d.grab > d.thumbLen {
		d.grab = d.thumbLen / 2
	}
	return d
}

func (d *scrollbarDrag) update(e *Engine, ev *MouseEvent) {
	ctx := e.lastCtx
	if ctx == nil {
		return
	}
	var sb *ScrollbarInfo
	if d.horizontal {
		sb = ctx.Scrollbars.Horizontal
	} else {
		sb = ctx.Scrollbars.Vertical
	}
	if sb == nil {
		return
	}
	view := e.scrollView()
	max := e.scroll.maxOffset(view, e.fixed)
	var changed bool
	if d.horizontal {
		off := offsetForThumb(sb.Track, true, ev.Point.X-d.grab, d.thumbLen, max.X)
		changed = e.scroll.scrollTo(off, e.scroll.offset.Y, view, e.fixed)
	} else {
		off := offsetForThumb(sb.Track, false, ev.Point.Y-d.grab, d.thumbLen, max.Y)
		changed = e.scroll.scrollTo(e.scroll.offset.X, off, view, e.fixed)
	}
	if changed {
		e.Render()
	}
}

func (d *scrollbarDrag) end(e *Engine, ev *MouseEvent) {}

// viewportPanDrag scrolls the content opposite the pointer motion.
type viewportPanDrag struct {
	start       image.Point
	startOffset image.Point
}

func (d *viewportPanDrag) update(e *Engine, ev *MouseEvent) {
	dx := unscalePx(d.start.X-ev.Point.X, e.zoom)
	dy := unscalePx(d.start.Y-ev.Point.Y, e.zoom)
	if e.scroll.scrollTo(d.startOffset.X+dx, d.startOffset.Y+dy, e.scrollView(), e.fixed) {
		e.Render()
	}
}

func (d *viewportPanDrag) end(e *Engine, ev *MouseEvent) {}

// selectionDrag extends the primary selection from its anchor to the
// cell under the pointer.
type selectionDrag struct {
	anchor CellAddress
	last   CellAddress
}

func (d *selectionDrag) update(e *Engine, ev *MouseEvent) {
	target := e.cellAddrAt(ev.Point)
	if target == d.last {
		return
	}
	d.last = target
	e.sel.UpdatePrimaryRange(rangeBetween(d.anchor, target))
	e.Render()
}

// end commits the selection with gesture-ended semantics: the engine
// refocuses and scrolls the last target cell into view.
func (d *selectionDrag) end(e *Engine, ev *MouseEvent) {
	target := e.cellAddrAt(ev.Point)
	e.sel.UpdatePrimaryRange(rangeBetween(d.anchor, target))
	e.RequestFocus()
	if e.scroll.scrollToCell(target.Row, target.Col, e.scrollView(), e.fixed) {
		e.Render()
	}
	e.Render()
}

// copyHandleDrag grows the primary selection rectangularly from its
// base range toward the pointer, the fill-gesture affordance.
type copyHandleDrag struct {
	base CellRange
	last CellAddress
}

func (d *copyHandleDrag) update(e *Engine, ev *MouseEvent) {
	target := e.cellAddrAt(ev.Point)
	if target == d.last {
		return
	}
	d.last = target
	e.sel.UpdatePrimaryRange(extendRange(d.base, target))
	e.Render()
}

func (d *copyHandleDrag) end(e *Engine, ev *MouseEvent) {
	target := e.cellAddrAt(ev.Point)
	e.sel.UpdatePrimaryRange(extendRange(d.base, target))
	e.RequestFocus()
	e.Render()
}

// resizeDrag resizes one row or column. The size change is committed
// through the data source only when the gesture ends; while it runs a
// guide line tracks the pointer.
type resizeDrag struct {
	vertical bool // true: column resize, guide is a vertical line
	index    int
	startPos int // surface coordinate at press
	origSize int
}

func (d *resizeDrag) update(e *Engine, ev *MouseEvent) {
	pos := ev.Point.Y
	if d.vertical {
		pos = ev.Point.X
	}
	e.guide = &ResizeGuide{Vertical: d.vertical, Position: pos}
	e.Render()
}

func (d *resizeDrag) end(e *Engine, ev *MouseEvent) {
	pos := ev.Point.Y
	if d.vertical {
		pos = ev.Point.X
	}
	size := d.origSize + unscalePx(pos-d.startPos, e.zoom)
	if size < minResizeSize {
		size = minResizeSize
	}
	if d.vertical {
		e.src.SetColWidth(d.index, size)
	} else {
		e.src.SetRowHeight(d.index, size)
	}
	e.guide = nil
	e.refreshLayout()
	e.Render()
}

const minResizeSize = 4

// rangeBetween is the normalized range spanned by two cells.
func rangeBetween(a, b CellAddress) CellRange {
	return CellRange{
		StartRow: a.Row, StartCol: a.Col,
		EndRow: b.Row, EndCol: b.Col,
	}.Normalize()
}

// extendRange grows base to include the target cell without ever
// shrinking below the base range.
func extendRange(base CellRange, target CellAddress) CellRange {
	r := base
	if target.Row < r.StartRow {
		r.StartRow = target.Row
	}
	if target.Row > r.EndRow {
		r.EndRow = target.Row
	}
	if target.Col < r.StartCol {
		r.StartCol = target.Col
	}
	if target.Col > r.EndCol {
		r.EndCol = target.Col
	}
	return r
}
