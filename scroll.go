package cellgrid

import "image"

// scroller owns the scroll offset. All clamping is per axis: when the
// scrollable content fits inside the scrollable viewport on an axis,
// that axis is pinned to zero. Offsets are integer content pixels
// throughout; the fractional offsets of some grid implementations buy
// nothing on a pixel-addressed surface and break clamp idempotence.
type scroller struct {
	src    DataSource
	offset image.Point
}

// contentSize returns the total grid extent in content pixels.
func (s *scroller) contentSize() image.Point {
	return image.Pt(s.src.ColOffset(s.src.ColCount()), s.src.RowOffset(s.src.RowCount()))
}

// maxOffset returns the clamp limit per axis. view is the scrollable
// viewport extent, i.e. the surface viewport minus all frozen bands.
func (s *scroller) maxOffset(view image.Point, fx FixedAreas) image.Point {
	c := s.contentSize()
	mx := c.X - fx.Left.PixelSize - fx.Right.PixelSize - view.X
	my := c.Y - fx.Top.PixelSize - fx.Bottom.PixelSize - view.Y
	if mx < 0 {
		mx = 0
	}
	if my < 0 {
		my = 0
	}
	return image.Pt(mx, my)
}

// scrollTo moves the offset to (x, y), clamped. It reports whether the
// offset actually changed so callers can skip redundant repaints.
func (s *scroller) scrollTo(x, y int, view image.Point, fx FixedAreas) bool {
	max := s.maxOffset(view, fx)
	next := image.Pt(clamp(x, 0, max.X), clamp(y, 0, max.Y))
	if next == s.offset {
		return false
	}
	s.offset = next
	return true
}

// scrollBy moves the offset by a delta, clamped per axis.
func (s *scroller) scrollBy(dx, dy int, view image.Point, fx FixedAreas) bool {
	return s.scrollTo(s.offset.X+dx, s.offset.Y+dy, view, fx)
}

// reclamp re-applies the clamp after the content extent or viewport
// size changed underneath the current offset.
func (s *scroller) reclamp(view image.Point, fx FixedAreas) bool {
	return s.scrollTo(s.offset.X, s.offset.Y, view, fx)
}

// scrollToCell scrolls the minimum distance needed to bring the full
// bounds of (row, col) into the visible scrollable band. An axis is
// left alone when the cell lies inside a frozen band on that axis or
// is already fully visible.
func (s *scroller) scrollToCell(row, col int, view image.Point, fx FixedAreas) bool {
	row = clamp(row, 0, s.src.RowCount()-1)
	col = clamp(col, 0, s.src.ColCount()-1)

	changed := false
	if row >= fx.Top.Count && row < fx.Bottom.BoundaryIndex {
		y0 := s.src.RowOffset(row) - fx.Top.PixelSize
		y1 := y0 + s.src.RowHeight(row)
		if y0 < s.offset.Y {
			changed = s.scrollTo(s.offset.X, y0, view, fx) || changed
		} else if y1 > s.offset.Y+view.Y {
			changed = s.scrollTo(s.offset.X, y1-view.Y, view, fx) || changed
		}
	}
	if col >= fx.Left.Count && col < fx.Right.BoundaryIndex {
		x0 := s.src.ColOffset(col) - fx.Left.PixelSize
		x1 := x0 + s.src.ColWidth(col)
		if x0 < s.offset.X {
			changed = s.scrollTo(x0, s.offset.Y, view, fx) || changed
		} else if x1 > s.offset.X+view.X {
			changed = s.scrollTo(x1-view.X, s.offset.Y, view, fx) || changed
		}
	}
	return changed
}
