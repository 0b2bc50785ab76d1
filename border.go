package cellgrid

// Border dominance. When two adjacent cells both define a border on
// their shared edge, one side wins: an explicitly defined side beats
// the grid default, then higher priority wins, then higher color
// density. The same comparison runs locally at cell corners to decide
// how far a drawn line reaches into a junction.

// colorDensity ranks a side's color as (R<<16 + G<<8 + B) × alpha.
func colorDensity(s *BorderSide) uint64 {
	c := uint32(s.Color)
	rgb := uint64(c >> 8) // R<<16 | G<<8 | B
	alpha := uint64(c & 0xFF)
	return rgb * alpha
}

// dominantSide picks the winning side of an edge shared by two cells.
// Either argument may be nil. The comparison is symmetric: swapping
// the arguments yields the same winner.
func dominantSide(a, b *BorderSide) *BorderSide {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.Default != b.Default:
		if b.Default {
			return a
		}
		return b
	case a.Priority != b.Priority:
		if a.Priority > b.Priority {
			return a
		}
		return b
	}
	da, db := colorDensity(a), colorDensity(b)
	if da >= db {
		return a
	}
	return b
}

// cornerInset decides how a drawn border meets a perpendicular border
// at a corner. When the perpendicular side dominates, the line yields
// and stops short of the junction; otherwise it extends across so the
// junction has no gap. The returned value is added to the line's
// extent toward the corner (negative shrinks it).
func cornerInset(own, perp *BorderSide) int {
	if perp == nil || perp.Width == 0 {
		return 0
	}
	if dominantSide(own, perp) == perp && own != perp {
		return -((perp.Width + 1) / 2)
	}
	return perp.Width / 2
}

// borderGeometry resolves the borders of every visible region into
// draw-ready BorderInfo records. Within a region block a cell draws
// its own top and left sides only on the block's first row and column;
// interior horizontal and vertical edges are owned by the upper cell's
// bottom and the left cell's right, with dominance deciding between
// the two adjacent definitions.
func (e *Engine) borderGeometry(ctx *RenderContext) []BorderInfo {
	if e.borders == nil {
		return nil
	}
	var out []BorderInfo
	for _, area := range ctx.Areas {
		if area == nil {
			continue
		}
		out = append(out, e.resolveAreaBorders(area)...)
	}
	return out
}

func (e *Engine) resolveAreaBorders(area *CellAreaRenderContext) []BorderInfo {
	rng := area.Range
	grid := e.borders.BordersForRange(rng)
	if len(grid) == 0 {
		return nil
	}

	at := func(row, col int) *CellBorder {
		r, c := row-rng.StartRow, col-rng.StartCol
		if r < 0 || r >= len(grid) || c < 0 || c >= len(grid[r]) {
			return nil
		}
		return &grid[r][c]
	}

	var out []BorderInfo
	for row := rng.StartRow; row <= rng.EndRow; row++ {
		if e.src.RowHidden(row) {
			continue
		}
		for col := rng.StartCol; col <= rng.EndCol; col++ {
			if e.src.ColHidden(col) {
				continue
			}
			cb := at(row, col)
			if cb == nil {
				continue
			}

			resolved := CellBorder{
				Right:  cb.Right,
				Bottom: cb.Bottom,
			}
			if right := at(row, col+1); right != nil {
				resolved.Right = dominantSide(cb.Right, right.Left)
			}
			if below := at(row+1, col); below != nil {
				resolved.Bottom = dominantSide(cb.Bottom, below.Top)
			}
			// Interior top/left edges belong to the neighbor's
			// bottom/right; only the block's first row and column draw
			// their own.
			if row == rng.StartRow {
				resolved.Top = cb.Top
			}
			if col == rng.StartCol {
				resolved.Left = cb.Left
			}
			if resolved.Top == nil && resolved.Left == nil && resolved.Right == nil && resolved.Bottom == nil {
				continue
			}

			info := BorderInfo{
				CellBounds: e.cellBounds(regionSpecFor(area), SingleCell(row, col)),
				Border:     resolved,
			}
			e.junctionInsets(&info, at, row, col, rng)
			out = append(out, info)
		}
	}
	return out
}

// junctionInsets computes the per-endpoint reach of each drawn side
// at the cell's four corners against the perpendicular sides meeting
// there.
func (e *Engine) junctionInsets(info *BorderInfo, at func(row, col int) *CellBorder, row, col int, rng CellRange) {
	// Perpendicular (vertical) sides at the cell's left and right
	// edges; these decide the horizontal lines' endpoint reach.
	var left, right *BorderSide
	if cb := at(row, col); cb != nil {
		left, right = cb.Left, cb.Right
	}
	if n := at(row, col-1); n != nil {
		left = dominantSide(left, n.Right)
	}
	if n := at(row, col+1); n != nil {
		right = dominantSide(right, n.Left)
	}

	var top, bottom *BorderSide
	if cb := at(row, col); cb != nil {
		top, bottom = cb.Top, cb.Bottom
	}
	if n := at(row-1, col); n != nil {
		top = dominantSide(top, n.Bottom)
	}
	if n := at(row+1, col); n != nil {
		bottom = dominantSide(bottom, n.Top)
	}

	if s := info.Border.Top; s != nil {
		info.TopInset = [2]int{cornerInset(s, left), cornerInset(s, right)}
	}
	if s := info.Border.Bottom; s != nil {
		info.BottomInset = [2]int{cornerInset(s, left), cornerInset(s, right)}
	}
	if s := info.Border.Left; s != nil {
		info.LeftInset = [2]int{cornerInset(s, top), cornerInset(s, bottom)}
	}
	if s := info.Border.Right; s != nil {
		info.RightInset = [2]int{cornerInset(s, top), cornerInset(s, bottom)}
	}
}

// regionSpecFor reconstructs the coordinate transform of an already
// built area so border and selection geometry share the cell-bounds
// math.
func regionSpecFor(area *CellAreaRenderContext) regionSpec {
	return regionSpec{
		kind:    area.Kind,
		rng:     area.Range,
		bounds:  area.Bounds,
		scrollX: area.Kind == RegionFrozenRows || area.Kind == RegionBody,
		scrollY: area.Kind == RegionFrozenCols || area.Kind == RegionBody,
	}
}
