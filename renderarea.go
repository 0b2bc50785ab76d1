package cellgrid

import "image"

// regionSpec describes how one region maps content coordinates onto
// the surface: which axes follow the scroll offset and which pixel
// bounds clip it.
type regionSpec struct {
	kind    RegionKind
	rng     CellRange
	bounds  image.Rectangle
	scrollX bool
	scrollY bool
}

// buildRenderContext assembles the per-frame snapshot: the four
// regions with their renderer-grouped cells, scrollbar geometry,
// selection geometry and border geometry. It also runs the
// end-of-frame bookkeeping that keeps renderer transient state and the
// per-cell cache coherent.
func (e *Engine) buildRenderContext() *RenderContext {
	ctx := &RenderContext{
		Focused:     e.focused,
		Viewport:    e.viewRect,
		ContentSize: e.scroll.contentSize(),
		Scroll:      e.scroll.offset,
		Zoom:        e.zoom,
		Fixed:       e.fixed,
		renderers:   e.renderers,
	}

	specs := e.regionSpecs()
	for _, spec := range specs {
		area := e.buildArea(spec)
		if area != nil {
			ctx.Areas[spec.kind] = area
		}
	}

	ctx.Scrollbars = e.scrollbarGeometry()
	ctx.Selections = e.selectionGeometry(ctx)
	ctx.Borders = e.borderGeometry(ctx)
	ctx.Guide = e.guide

	e.releaseDepartedRenderers(ctx)
	e.cache.sweep(func(addr CellAddress) bool {
		return cellVisible(ctx, e.src, addr)
	}, func(renderer string, addr CellAddress) {
		if r, ok := e.renderers[renderer]; ok {
			r.OnDisappear(addr)
		}
	})

	return ctx
}

// regionSpecs partitions the viewport into the corner, frozen-rows,
// frozen-columns and scrollable-body regions. Regions that collapse to
// zero pixels or zero cells are omitted. Ordering matters: a merged
// range crossing a freeze boundary is claimed by the first region
// containing its top-left corner.
func (e *Engine) regionSpecs() []regionSpec {
	fx := e.fixed
	vr := e.viewRect
	z := e.zoom

	leftPx := scalePx(fx.Left.PixelSize, z)
	topPx := scalePx(fx.Top.PixelSize, z)
	rightPx := scalePx(fx.Right.PixelSize, z)
	bottomPx := scalePx(fx.Bottom.PixelSize, z)

	// The scrollable band in content coordinates, inverse-mapped
	// through the source's offset lookup. RangeForRect includes the
	// row/column containing the rect's Max corner: a line whose
	// cumulative offset first exceeds the band extent is still
	// (partially) visible.
	view := e.scrollView()
	bodyRect := image.Rect(
		fx.Left.PixelSize+e.scroll.offset.X,
		fx.Top.PixelSize+e.scroll.offset.Y,
		fx.Left.PixelSize+e.scroll.offset.X+view.X,
		fx.Top.PixelSize+e.scroll.offset.Y+view.Y,
	)
	bodyRange := rangeForRect(e.src, bodyRect)
	bodyRange.StartRow = clamp(bodyRange.StartRow, fx.Top.Count, fx.Bottom.BoundaryIndex-1)
	bodyRange.EndRow = clamp(bodyRange.EndRow, bodyRange.StartRow, fx.Bottom.BoundaryIndex-1)
	bodyRange.StartCol = clamp(bodyRange.StartCol, fx.Left.Count, fx.Right.BoundaryIndex-1)
	bodyRange.EndCol = clamp(bodyRange.EndCol, bodyRange.StartCol, fx.Right.BoundaryIndex-1)

	var specs []regionSpec
	if fx.Top.Count > 0 && fx.Left.Count > 0 {
		specs = append(specs, regionSpec{
			kind:   RegionCorner,
			rng:    CellRange{0, 0, fx.Top.Count - 1, fx.Left.Count - 1},
			bounds: image.Rect(vr.Min.X, vr.Min.Y, vr.Min.X+leftPx, vr.Min.Y+topPx),
		})
	}
	if fx.Top.Count > 0 && e.fixed.ScrollableCols() > 0 {
		specs = append(specs, regionSpec{
			kind:    RegionFrozenRows,
			rng:     CellRange{0, bodyRange.StartCol, fx.Top.Count - 1, bodyRange.EndCol},
			bounds:  image.Rect(vr.Min.X+leftPx, vr.Min.Y, vr.Max.X-rightPx, vr.Min.Y+topPx),
			scrollX: true,
		})
	}
	if fx.Left.Count > 0 && e.fixed.ScrollableRows() > 0 {
		specs = append(specs, regionSpec{
			kind:    RegionFrozenCols,
			rng:     CellRange{bodyRange.StartRow, 0, bodyRange.EndRow, fx.Left.Count - 1},
			bounds:  image.Rect(vr.Min.X, vr.Min.Y+topPx, vr.Min.X+leftPx, vr.Max.Y-bottomPx),
			scrollY: true,
		})
	}
	if e.fixed.ScrollableRows() > 0 && e.fixed.ScrollableCols() > 0 {
		specs = append(specs, regionSpec{
			kind:    RegionBody,
			rng:     bodyRange,
			bounds:  image.Rect(vr.Min.X+leftPx, vr.Min.Y+topPx, vr.Max.X-rightPx, vr.Max.Y-bottomPx),
			scrollX: true,
			scrollY: true,
		})
	}
	return specs
}

// buildArea fetches the region's cells once and groups them by
// renderer name. Hidden rows and columns are skipped; each merged
// range is emitted once with bounds covering its full extent, which
// may reach outside the region's clip.
func (e *Engine) buildArea(spec regionSpec) *CellAreaRenderContext {
	if spec.bounds.Dx() <= 0 || spec.bounds.Dy() <= 0 {
		return nil
	}
	area := &CellAreaRenderContext{
		Kind:            spec.kind,
		Range:           spec.rng,
		Bounds:          spec.bounds,
		CellsByRenderer: make(map[string][]Cell),
	}
	for row := spec.rng.StartRow; row <= spec.rng.EndRow; row++ {
		if e.src.RowHidden(row) {
			continue
		}
		for col := spec.rng.StartCol; col <= spec.rng.EndCol; col++ {
			if e.src.ColHidden(col) {
				continue
			}
			cell, ok := e.makeCell(spec, row, col)
			if !ok {
				continue
			}
			name := e.src.RendererName(cell.Row, cell.Col)
			area.CellsByRenderer[name] = append(area.CellsByRenderer[name], cell)
		}
	}
	if len(area.CellsByRenderer) == 0 {
		return nil
	}
	return area
}

// makeCell builds the renderer-facing cell for (row, col) in the
// region, or reports false when the cell is covered by a merge emitted
// elsewhere this frame.
func (e *Engine) makeCell(spec regionSpec, row, col int) (Cell, bool) {
	merge, merged := e.src.MergeAt(row, col)
	if !merged {
		merge = SingleCell(row, col)
	} else {
		if e.seenMerges == nil {
			e.seenMerges = make(map[CellRange]bool)
		}
		if e.seenMerges[merge] {
			return Cell{}, false
		}
		e.seenMerges[merge] = true
		row, col = merge.StartRow, merge.StartCol
	}
	return Cell{
		Row:    row,
		Col:    col,
		Value:  e.src.CellValue(row, col),
		Bounds: e.cellBounds(spec, merge),
		Merge:  merge,
	}, true
}

// cellBounds maps a cell range's content rectangle onto the surface
// using the region's scroll behavior.
func (e *Engine) cellBounds(spec regionSpec, rng CellRange) image.Rectangle {
	x0 := e.src.ColOffset(rng.StartCol)
	y0 := e.src.RowOffset(rng.StartRow)
	x1 := e.src.ColOffset(rng.EndCol) + e.src.ColWidth(rng.EndCol)
	y1 := e.src.RowOffset(rng.EndRow) + e.src.RowHeight(rng.EndRow)
	if spec.scrollX {
		x0 -= e.scroll.offset.X
		x1 -= e.scroll.offset.X
	}
	if spec.scrollY {
		y0 -= e.scroll.offset.Y
		y1 -= e.scroll.offset.Y
	}
	vr := e.viewRect
	return image.Rect(
		vr.Min.X+scalePx(x0, e.zoom),
		vr.Min.Y+scalePx(y0, e.zoom),
		vr.Min.X+scalePx(x1, e.zoom),
		vr.Min.Y+scalePx(y1, e.zoom),
	)
}

// rangeForRect inverse-maps a content rectangle to the cells it
// touches, including the row and column containing the Max corner.
func rangeForRect(src DataSource, r image.Rectangle) CellRange {
	return CellRange{
		StartRow: src.RowAt(r.Min.Y),
		StartCol: src.ColAt(r.Min.X),
		EndRow:   src.RowAt(r.Max.Y),
		EndCol:   src.ColAt(r.Max.X),
	}
}

// cellVisible reports whether the cell's merged range still intersects
// any region of the frame. Cache entries of invisible cells are
// evicted.
func cellVisible(ctx *RenderContext, src DataSource, addr CellAddress) bool {
	rng, ok := src.MergeAt(addr.Row, addr.Col)
	if !ok {
		rng = SingleCell(addr.Row, addr.Col)
	}
	for _, area := range ctx.Areas {
		if area != nil && area.Range.Overlaps(rng) {
			return true
		}
	}
	return false
}

// releaseDepartedRenderers invokes the frame-state cleanup hook on
// renderers that drew cells last frame but none this frame.
func (e *Engine) releaseDepartedRenderers(ctx *RenderContext) {
	current := make(map[string]bool)
	for _, area := range ctx.Areas {
		if area == nil {
			continue
		}
		for name := range area.CellsByRenderer {
			current[name] = true
		}
	}
	for name := range e.prevRenderers {
		if current[name] {
			continue
		}
		if r, ok := e.renderers[name].(FrameCleanupRenderer); ok {
			r.CleanupFrameState()
		}
	}
	e.prevRenderers = current
	e.seenMerges = nil
}
