package grid

import (
	"testing"

	cellgrid "github.com/bennyboer/cellgrid"
	"github.com/bennyboer/cellgrid/draw"
)

func TestDefaultFillsUnsetSides(t *testing.T) {
	def := cellgrid.BorderSide{Color: draw.Color(0xE0E0E0FF), Width: 1}
	b := NewMemBorders(&def)

	rows := b.BordersForRange(cellgrid.SingleCell(3, 3))
	cb := rows[0][0]
	for _, side := range []*cellgrid.BorderSide{cb.Top, cb.Left, cb.Right, cb.Bottom} {
		if side == nil {
			t.Fatal("default side missing")
		}
		if !side.Default {
			t.Error("default side not marked Default")
		}
		if side.Color != def.Color || side.Width != def.Width {
			t.Errorf("side = %+v, want the default's color and width", side)
		}
	}
	// The caller's struct is copied, not mutated.
	if def.Default {
		t.Error("NewMemBorders mutated the caller's default")
	}
}

func TestExplicitSideWinsOverDefault(t *testing.T) {
	b := NewMemBorders(&cellgrid.BorderSide{Color: draw.Color(0xE0E0E0FF), Width: 1})
	red := &cellgrid.BorderSide{Color: draw.Color(0xFF0000FF), Width: 2, Priority: 5}
	b.SetCellBorder(1, 1, cellgrid.CellBorder{Bottom: red})

	cb := b.BordersForRange(cellgrid.SingleCell(1, 1))[0][0]
	if cb.Bottom != red {
		t.Errorf("Bottom = %+v, want the explicit side", cb.Bottom)
	}
	if cb.Top == nil || !cb.Top.Default {
		t.Error("unset side did not fall back to the default")
	}
}

func TestNoDefaultLeavesSidesNil(t *testing.T) {
	b := NewMemBorders(nil)
	cb := b.BordersForRange(cellgrid.SingleCell(0, 0))[0][0]
	if cb.Top != nil || cb.Left != nil || cb.Right != nil || cb.Bottom != nil {
		t.Errorf("borders = %+v, want all nil without a default", cb)
	}
}

func TestBordersForRangeShape(t *testing.T) {
	b := NewMemBorders(nil)
	r := cellgrid.CellRange{StartRow: 4, StartCol: 5, EndRow: 2, EndCol: 3}

	rows := b.BordersForRange(r)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3 after normalizing", len(rows))
	}
	for i := range rows {
		if len(rows[i]) != 3 {
			t.Fatalf("cols = %d in row %d, want 3", len(rows[i]), i)
		}
	}
}
