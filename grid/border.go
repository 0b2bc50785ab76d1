package grid

import (
	cellgrid "github.com/bennyboer/cellgrid"
)

// MemBorders is an in-memory border store: per-cell side definitions
// over an optional grid-wide default applied to every edge.
type MemBorders struct {
	def   *cellgrid.BorderSide
	cells map[cellgrid.CellAddress]cellgrid.CellBorder
}

var _ cellgrid.BorderStore = (*MemBorders)(nil)

// NewMemBorders creates a border store. def, when non-nil, becomes the
// default side of every edge; it is marked Default so any explicit
// side dominates it.
func NewMemBorders(def *cellgrid.BorderSide) *MemBorders {
	if def != nil {
		d := *def
		d.Default = true
		def = &d
	}
	return &MemBorders{
		def:   def,
		cells: make(map[cellgrid.CellAddress]cellgrid.CellBorder),
	}
}

// SetCellBorder defines the sides of one cell. Nil sides fall back to
// the default.
func (b *MemBorders) SetCellBorder(row, col int, border cellgrid.CellBorder) {
	b.cells[cellgrid.CellAddress{Row: row, Col: col}] = border
}

func (b *MemBorders) BordersForRange(r cellgrid.CellRange) [][]cellgrid.CellBorder {
	r = r.Normalize()
	out := make([][]cellgrid.CellBorder, r.Rows())
	for i := range out {
		out[i] = make([]cellgrid.CellBorder, r.Cols())
		for j := range out[i] {
			cb, ok := b.cells[cellgrid.CellAddress{Row: r.StartRow + i, Col: r.StartCol + j}]
			if !ok {
				cb = cellgrid.CellBorder{}
			}
			if b.def != nil {
				if cb.Top == nil {
					cb.Top = b.def
				}
				if cb.Left == nil {
					cb.Left = b.def
				}
				if cb.Right == nil {
					cb.Right = b.def
				}
				if cb.Bottom == nil {
					cb.Bottom = b.def
				}
			}
			out[i][j] = cb
		}
	}
	return out
}
