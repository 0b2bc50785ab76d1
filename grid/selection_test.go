package grid

import (
	"testing"

	cellgrid "github.com/bennyboer/cellgrid"
)

func sel(r cellgrid.CellRange, ar, ac int) cellgrid.Selection {
	return cellgrid.Selection{Range: r, Anchor: cellgrid.CellAddress{Row: ar, Col: ac}}
}

func primaryRange(t *testing.T, s *MemSelection) cellgrid.CellRange {
	t.Helper()
	p, ok := s.Primary()
	if !ok {
		t.Fatal("no primary selection")
	}
	return p.Range
}

func TestSetNormalizesAndClampsAnchor(t *testing.T) {
	s := NewMemSelection(NewMemSource(10, 10, 30, 100, "test"))
	s.Set(sel(cellgrid.CellRange{StartRow: 4, StartCol: 4, EndRow: 2, EndCol: 2}, 9, 9))

	p, _ := s.Primary()
	if want := (cellgrid.CellRange{StartRow: 2, StartCol: 2, EndRow: 4, EndCol: 4}); p.Range != want {
		t.Errorf("range = %+v, want %+v", p.Range, want)
	}
	if want := (cellgrid.CellAddress{Row: 4, Col: 4}); p.Anchor != want {
		t.Errorf("anchor = %+v, want clamped to %+v", p.Anchor, want)
	}
}

func TestAddMakesPrimary(t *testing.T) {
	s := NewMemSelection(NewMemSource(10, 10, 30, 100, "test"))
	s.Set(sel(cellgrid.SingleCell(1, 1), 1, 1))
	s.Add(sel(cellgrid.SingleCell(5, 5), 5, 5))

	if got := len(s.Selections()); got != 2 {
		t.Fatalf("len(Selections) = %d, want 2", got)
	}
	if got := primaryRange(t, s); got != cellgrid.SingleCell(5, 5) {
		t.Errorf("primary = %+v, want the added selection", got)
	}

	// The returned slice is a copy.
	s.Selections()[0] = sel(cellgrid.SingleCell(9, 9), 9, 9)
	if got := s.Selections()[0].Range; got != cellgrid.SingleCell(1, 1) {
		t.Error("Selections exposed internal state")
	}
}

func TestMoveByCollapsesToAnchor(t *testing.T) {
	src := NewMemSource(10, 10, 30, 100, "test")
	s := NewMemSelection(src)
	s.Set(sel(cellgrid.CellRange{StartRow: 2, StartCol: 2, EndRow: 4, EndCol: 4}, 2, 2))

	s.MoveBy(1, 0, false)
	if got := primaryRange(t, s); got != cellgrid.SingleCell(3, 2) {
		t.Errorf("range = %+v, want collapsed to (3,2)", got)
	}
}

func TestMoveBySkipsHiddenLines(t *testing.T) {
	src := NewMemSource(10, 10, 30, 100, "test")
	src.SetRowsHidden(3, 1, true)
	s := NewMemSelection(src)
	s.Set(sel(cellgrid.SingleCell(2, 2), 2, 2))

	s.MoveBy(1, 0, false)
	if got := primaryRange(t, s); got != cellgrid.SingleCell(4, 2) {
		t.Errorf("range = %+v, want the hidden row skipped", got)
	}
}

func TestMoveByStopsAtTheEdge(t *testing.T) {
	src := NewMemSource(10, 10, 30, 100, "test")
	s := NewMemSelection(src)
	s.Set(sel(cellgrid.SingleCell(0, 1), 0, 1))

	s.MoveBy(-1, 0, false)
	if got := primaryRange(t, s); got != cellgrid.SingleCell(0, 1) {
		t.Errorf("range = %+v, want pinned at row 0", got)
	}
}

func TestMoveByJumpGoesToTheEdge(t *testing.T) {
	src := NewMemSource(10, 10, 30, 100, "test")
	src.SetRowsHidden(9, 1, true)
	s := NewMemSelection(src)
	s.Set(sel(cellgrid.SingleCell(2, 2), 2, 2))

	// Jump lands on the last visible row.
	s.MoveBy(1, 0, true)
	if got := primaryRange(t, s); got != cellgrid.SingleCell(8, 2) {
		t.Errorf("range = %+v, want (8,2)", got)
	}
}

func TestMoveByOnEmptySetStartsAtOrigin(t *testing.T) {
	s := NewMemSelection(NewMemSource(10, 10, 30, 100, "test"))
	s.MoveBy(0, 0, false)
	if got := primaryRange(t, s); got != cellgrid.SingleCell(0, 0) {
		t.Errorf("range = %+v, want (0,0)", got)
	}
}

func TestExtendByGrowsOppositeTheAnchor(t *testing.T) {
	src := NewMemSource(10, 10, 30, 100, "test")

	tests := []struct {
		name   string
		start  cellgrid.Selection
		dr, dc int
		want   cellgrid.CellRange
	}{
		{
			"anchor top-left grows down",
			sel(cellgrid.CellRange{StartRow: 2, StartCol: 2, EndRow: 4, EndCol: 4}, 2, 2),
			1, 0,
			cellgrid.CellRange{StartRow: 2, StartCol: 2, EndRow: 5, EndCol: 4},
		},
		{
			"anchor bottom-right shrinks from the top",
			sel(cellgrid.CellRange{StartRow: 2, StartCol: 2, EndRow: 4, EndCol: 4}, 4, 4),
			1, 0,
			cellgrid.CellRange{StartRow: 3, StartCol: 2, EndRow: 4, EndCol: 4},
		},
		{
			"single cell grows right",
			sel(cellgrid.SingleCell(3, 3), 3, 3),
			0, 1,
			cellgrid.CellRange{StartRow: 3, StartCol: 3, EndRow: 3, EndCol: 4},
		},
		{
			"crossing the anchor flips the range",
			sel(cellgrid.CellRange{StartRow: 3, StartCol: 3, EndRow: 4, EndCol: 3}, 3, 3),
			-2, 0,
			cellgrid.CellRange{StartRow: 2, StartCol: 3, EndRow: 3, EndCol: 3},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewMemSelection(src)
			s.Set(tc.start)
			s.ExtendBy(tc.dr, tc.dc, false)
			if got := primaryRange(t, s); got != tc.want {
				t.Errorf("range = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestExtendByOnEmptySetMoves(t *testing.T) {
	s := NewMemSelection(NewMemSource(10, 10, 30, 100, "test"))
	s.ExtendBy(1, 0, false)
	if got := primaryRange(t, s); got != cellgrid.SingleCell(1, 0) {
		t.Errorf("range = %+v, want a plain move", got)
	}
}

func TestUpdatePrimaryRangeReclampsAnchor(t *testing.T) {
	s := NewMemSelection(NewMemSource(10, 10, 30, 100, "test"))
	s.Set(sel(cellgrid.CellRange{StartRow: 2, StartCol: 2, EndRow: 6, EndCol: 6}, 5, 5))

	s.UpdatePrimaryRange(cellgrid.CellRange{StartRow: 2, StartCol: 2, EndRow: 3, EndCol: 3})
	p, _ := s.Primary()
	if want := (cellgrid.CellAddress{Row: 3, Col: 3}); p.Anchor != want {
		t.Errorf("anchor = %+v, want pulled inside the new range", p.Anchor)
	}
}
