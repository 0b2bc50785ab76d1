package cellgrid

import "image"

// selectionGeometry converts the selection set into draw-ready
// rectangles. Ranges are clamped to the current grid bounds first so a
// grid shrink arriving before the matching selection update cannot
// produce out-of-bounds geometry. Each selection is bucketed into
// exactly one region by its start cell, consistent with how the
// render-area builder assigns freeze-crossing merges.
func (e *Engine) selectionGeometry(ctx *RenderContext) []SelectionRenderInfo {
	if e.sel == nil {
		return nil
	}
	sels := e.sel.Selections()
	if len(sels) == 0 {
		return nil
	}
	rows, cols := e.src.RowCount(), e.src.ColCount()
	if rows == 0 || cols == 0 {
		return nil
	}

	inset := scalePx(e.opt.selectionInset, e.zoom)
	out := make([]SelectionRenderInfo, 0, len(sels))
	for i, sel := range sels {
		rng := sel.Range.ClampTo(rows, cols)
		region := e.selectionRegion(rng)
		spec := e.specForKind(region)

		info := SelectionRenderInfo{
			Region: region,
			Bounds: e.cellBounds(spec, rng).Inset(inset),
			// The store keeps the primary in the last slot. Matching by
			// value would mark duplicates of the primary as primary too.
			Primary: i == len(sels)-1,
		}
		if info.Primary {
			anchor := CellAddress{
				Row: clamp(sel.Anchor.Row, rng.StartRow, rng.EndRow),
				Col: clamp(sel.Anchor.Col, rng.StartCol, rng.EndCol),
			}
			anchorRng := SingleCell(anchor.Row, anchor.Col)
			if m, ok := e.src.MergeAt(anchor.Row, anchor.Col); ok {
				anchorRng = m
			}
			info.Anchor = e.cellBounds(spec, anchorRng).Inset(inset).Intersect(info.Bounds)
			info.CopyHandle = len(sels) == 1
		}
		out = append(out, info)
	}
	return out
}

// selectionRegion buckets a range by testing only its start cell
// against the frozen counts.
func (e *Engine) selectionRegion(rng CellRange) RegionKind {
	inTop := rng.StartRow < e.fixed.Top.Count
	inLeft := rng.StartCol < e.fixed.Left.Count
	switch {
	case inTop && inLeft:
		return RegionCorner
	case inTop:
		return RegionFrozenRows
	case inLeft:
		return RegionFrozenCols
	}
	return RegionBody
}

// specForKind returns the coordinate transform of a region kind
// independent of whether the region produced visible cells this frame.
func (e *Engine) specForKind(kind RegionKind) regionSpec {
	return regionSpec{
		kind:    kind,
		scrollX: kind == RegionFrozenRows || kind == RegionBody,
		scrollY: kind == RegionFrozenCols || kind == RegionBody,
	}
}

// donutRects splits a selection fill into up to four rectangles that
// surround the anchor, so the anchor cell stays unfilled without a
// second fill color.
func donutRects(bounds, anchor image.Rectangle) []image.Rectangle {
	if anchor.Empty() || !anchor.Overlaps(bounds) {
		return []image.Rectangle{bounds}
	}
	anchor = anchor.Intersect(bounds)
	var out []image.Rectangle
	add := func(r image.Rectangle) {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	add(image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, anchor.Min.Y)) // above
	add(image.Rect(bounds.Min.X, anchor.Min.Y, anchor.Min.X, anchor.Max.Y)) // left
	add(image.Rect(anchor.Max.X, anchor.Min.Y, bounds.Max.X, anchor.Max.Y)) // right
	add(image.Rect(bounds.Min.X, anchor.Max.Y, bounds.Max.X, bounds.Max.Y)) // below
	return out
}

// copyHandleRect is the draggable affordance at the selection's
// bottom-right corner.
func copyHandleRect(bounds image.Rectangle, size int) image.Rectangle {
	return image.Rect(
		bounds.Max.X-size/2, bounds.Max.Y-size/2,
		bounds.Max.X+size-size/2, bounds.Max.Y+size-size/2,
	)
}
