package grid

import (
	cellgrid "github.com/bennyboer/cellgrid"
)

// MemSelection is an in-memory selection store. The last selection in
// the ordered set is the primary one.
type MemSelection struct {
	src  cellgrid.DataSource
	sels []cellgrid.Selection
}

var _ cellgrid.SelectionStore = (*MemSelection)(nil)

// NewMemSelection creates an empty selection set over src; the source
// bounds clamp directional moves.
func NewMemSelection(src cellgrid.DataSource) *MemSelection {
	return &MemSelection{src: src}
}

func (s *MemSelection) Selections() []cellgrid.Selection {
	out := make([]cellgrid.Selection, len(s.sels))
	copy(out, s.sels)
	return out
}

func (s *MemSelection) Primary() (cellgrid.Selection, bool) {
	if len(s.sels) == 0 {
		return cellgrid.Selection{}, false
	}
	return s.sels[len(s.sels)-1], true
}

// Set replaces the whole set with one selection.
func (s *MemSelection) Set(sel cellgrid.Selection) {
	s.sels = s.sels[:0]
	s.sels = append(s.sels, normalize(sel))
}

// Add appends a selection, making it primary.
func (s *MemSelection) Add(sel cellgrid.Selection) {
	s.sels = append(s.sels, normalize(sel))
}

func (s *MemSelection) Clear() { s.sels = s.sels[:0] }

func (s *MemSelection) UpdatePrimaryRange(r cellgrid.CellRange) {
	if len(s.sels) == 0 {
		return
	}
	p := &s.sels[len(s.sels)-1]
	p.Range = r.Normalize()
	p.Anchor.Row = clamp(p.Anchor.Row, p.Range.StartRow, p.Range.EndRow)
	p.Anchor.Col = clamp(p.Anchor.Col, p.Range.StartCol, p.Range.EndCol)
}

// MoveBy collapses the primary selection to its anchor moved by
// (dr, dc), skipping hidden lines. With jump set the anchor goes to
// the grid edge in the step's direction.
func (s *MemSelection) MoveBy(dr, dc int, jump bool) {
	p, ok := s.Primary()
	if !ok {
		p = cellgrid.Selection{}
	}
	a := p.Anchor
	a.Row = s.step(a.Row, dr, jump, true)
	a.Col = s.step(a.Col, dc, jump, false)
	s.Set(cellgrid.Selection{Range: cellgrid.SingleCell(a.Row, a.Col), Anchor: a})
}

// ExtendBy grows the primary range by (dr, dc) on the corner opposite
// the anchor.
func (s *MemSelection) ExtendBy(dr, dc int, jump bool) {
	if len(s.sels) == 0 {
		s.MoveBy(dr, dc, jump)
		return
	}
	p := &s.sels[len(s.sels)-1]
	r := p.Range

	// The moving corner is the one the anchor is not on.
	moveRow := r.EndRow
	if p.Anchor.Row == r.EndRow && r.StartRow != r.EndRow {
		moveRow = r.StartRow
	} else if p.Anchor.Row == r.StartRow {
		moveRow = r.EndRow
	}
	moveCol := r.EndCol
	if p.Anchor.Col == r.EndCol && r.StartCol != r.EndCol {
		moveCol = r.StartCol
	} else if p.Anchor.Col == r.StartCol {
		moveCol = r.EndCol
	}

	moveRow = s.step(moveRow, dr, jump, true)
	moveCol = s.step(moveCol, dc, jump, false)
	p.Range = cellgrid.CellRange{
		StartRow: p.Anchor.Row, StartCol: p.Anchor.Col,
		EndRow: moveRow, EndCol: moveCol,
	}.Normalize()
}

// step advances an index by delta, skipping hidden lines, clamped to
// the axis. jump goes straight to the edge.
func (s *MemSelection) step(i, delta int, jump, row bool) int {
	count := s.src.ColCount()
	hidden := s.src.ColHidden
	if row {
		count = s.src.RowCount()
		hidden = s.src.RowHidden
	}
	if count == 0 {
		return 0
	}
	if delta == 0 {
		return clamp(i, 0, count-1)
	}
	dir := 1
	if delta < 0 {
		dir = -1
	}
	if jump {
		i = 0
		if dir > 0 {
			i = count - 1
		}
		for i-dir >= 0 && i-dir < count && hidden(i) {
			i -= dir
		}
		return clamp(i, 0, count-1)
	}
	for n := delta * dir; n > 0; n-- {
		next := i + dir
		for next >= 0 && next < count && hidden(next) {
			next += dir
		}
		if next < 0 || next >= count {
			break
		}
		i = next
	}
	return clamp(i, 0, count-1)
}

func normalize(sel cellgrid.Selection) cellgrid.Selection {
	sel.Range = sel.Range.Normalize()
	sel.Anchor.Row = clamp(sel.Anchor.Row, sel.Range.StartRow, sel.Range.EndRow)
	sel.Anchor.Col = clamp(sel.Anchor.Col, sel.Range.StartCol, sel.Range.EndCol)
	return sel
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
