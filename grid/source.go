// Package grid provides in-memory reference implementations of the
// engine's collaborator contracts: a content store, a selection store
// and a border store. They are complete enough to embed and are what
// the engine's own tests run against.
package grid

import (
	"sort"

	cellgrid "github.com/bennyboer/cellgrid"
)

type axis struct {
	sizes   []int
	hidden  []bool
	offsets []int // prefix sums, len = count+1; nil when stale
}

func newAxis(count, size int) *axis {
	a := &axis{
		sizes:  make([]int, count),
		hidden: make([]bool, count),
	}
	for i := range a.sizes {
		a.sizes[i] = size
	}
	return a
}

func (a *axis) count() int { return len(a.sizes) }

func (a *axis) size(i int) int {
	if i < 0 || i >= len(a.sizes) || a.hidden[i] {
		return 0
	}
	return a.sizes[i]
}

func (a *axis) offset(i int) int {
	a.build()
	if i < 0 {
		return 0
	}
	if i >= len(a.offsets) {
		i = len(a.offsets) - 1
	}
	return a.offsets[i]
}

// at returns the line containing coordinate v, clamped to the axis.
func (a *axis) at(v int) int {
	a.build()
	n := len(a.sizes)
	if n == 0 || v < 0 {
		return 0
	}
	i := sort.Search(n, func(i int) bool { return a.offsets[i+1] > v })
	if i >= n {
		return n - 1
	}
	return i
}

func (a *axis) build() {
	if a.offsets != nil {
		return
	}
	a.offsets = make([]int, len(a.sizes)+1)
	for i, s := range a.sizes {
		if a.hidden[i] {
			s = 0
		}
		a.offsets[i+1] = a.offsets[i] + s
	}
}

func (a *axis) invalidate() { a.offsets = nil }

// MemSource is an in-memory content store. The zero value is not
// usable; construct with NewMemSource.
type MemSource struct {
	rows *axis
	cols *axis

	values    map[cellgrid.CellAddress]interface{}
	renderers map[cellgrid.CellAddress]string
	defName   string
	merges    []cellgrid.CellRange

	observers map[cellgrid.GridObserver]struct{}
}

var _ cellgrid.DataSource = (*MemSource)(nil)

// NewMemSource creates a rows×cols store with uniform sizing. Every
// cell draws with defaultRenderer until overridden.
func NewMemSource(rows, cols, rowHeight, colWidth int, defaultRenderer string) *MemSource {
	return &MemSource{
		rows:      newAxis(rows, rowHeight),
		cols:      newAxis(cols, colWidth),
		values:    make(map[cellgrid.CellAddress]interface{}),
		renderers: make(map[cellgrid.CellAddress]string),
		defName:   defaultRenderer,
	}
}

func (s *MemSource) RowCount() int { return s.rows.count() }
func (s *MemSource) ColCount() int { return s.cols.count() }

func (s *MemSource) RowHeight(row int) int { return s.rows.size(row) }
func (s *MemSource) ColWidth(col int) int  { return s.cols.size(col) }

func (s *MemSource) RowHidden(row int) bool {
	return row >= 0 && row < s.rows.count() && s.rows.hidden[row]
}

func (s *MemSource) ColHidden(col int) bool {
	return col >= 0 && col < s.cols.count() && s.cols.hidden[col]
}

func (s *MemSource) SetRowHeight(row, height int) {
	if row < 0 || row >= s.rows.count() {
		return
	}
	s.rows.sizes[row] = height
	s.rows.invalidate()
}

func (s *MemSource) SetColWidth(col, width int) {
	if col < 0 || col >= s.cols.count() {
		return
	}
	s.cols.sizes[col] = width
	s.cols.invalidate()
}

func (s *MemSource) RowOffset(row int) int { return s.rows.offset(row) }
func (s *MemSource) ColOffset(col int) int { return s.cols.offset(col) }

func (s *MemSource) RowAt(y int) int { return s.rows.at(y) }
func (s *MemSource) ColAt(x int) int { return s.cols.at(x) }

func (s *MemSource) CellValue(row, col int) interface{} {
	return s.values[cellgrid.CellAddress{Row: row, Col: col}]
}

func (s *MemSource) SetCellValue(row, col int, v interface{}) {
	s.values[cellgrid.CellAddress{Row: row, Col: col}] = v
	s.notify(func(o cellgrid.GridObserver) { o.CellChanged(row, col) })
}

func (s *MemSource) RendererName(row, col int) string {
	if name, ok := s.renderers[cellgrid.CellAddress{Row: row, Col: col}]; ok {
		return name
	}
	return s.defName
}

// SetRendererName overrides the renderer for one cell.
func (s *MemSource) SetRendererName(row, col int, name string) {
	s.renderers[cellgrid.CellAddress{Row: row, Col: col}] = name
}

func (s *MemSource) MergeAt(row, col int) (cellgrid.CellRange, bool) {
	for _, m := range s.merges {
		if m.Contains(row, col) {
			return m, true
		}
	}
	return cellgrid.CellRange{}, false
}

// AddMerge registers a merged range. Overlapping merges are a caller
// error; the first registered range wins lookups.
func (s *MemSource) AddMerge(r cellgrid.CellRange) {
	s.merges = append(s.merges, r.Normalize())
}

func (s *MemSource) AddObserver(o cellgrid.GridObserver) {
	if s.observers == nil {
		s.observers = make(map[cellgrid.GridObserver]struct{})
	}
	s.observers[o] = struct{}{}
}

func (s *MemSource) RemoveObserver(o cellgrid.GridObserver) {
	delete(s.observers, o)
}

func (s *MemSource) notify(f func(cellgrid.GridObserver)) {
	for o := range s.observers {
		f(o)
	}
}

// DeleteRows removes count rows starting at start. Observers are
// notified before the mutation so caches can be evicted while the
// addresses are still meaningful.
func (s *MemSource) DeleteRows(start, count int) {
	start, count = clampSpan(start, count, s.rows.count())
	if count == 0 {
		return
	}
	s.notify(func(o cellgrid.GridObserver) { o.RowsDeleting(start, count) })
	s.rows.sizes = append(s.rows.sizes[:start], s.rows.sizes[start+count:]...)
	s.rows.hidden = append(s.rows.hidden[:start], s.rows.hidden[start+count:]...)
	s.rows.invalidate()
	s.remapCells(func(a cellgrid.CellAddress) (cellgrid.CellAddress, bool) {
		switch {
		case a.Row < start:
			return a, true
		case a.Row >= start+count:
			a.Row -= count
			return a, true
		}
		return a, false
	})
	s.remapMerges(func(m cellgrid.CellRange) (cellgrid.CellRange, bool) {
		switch {
		case m.EndRow < start:
			return m, true
		case m.StartRow >= start+count:
			m.StartRow -= count
			m.EndRow -= count
			return m, true
		}
		return m, false
	})
}

// DeleteCols removes count columns starting at start.
func (s *MemSource) DeleteCols(start, count int) {
	start, count = clampSpan(start, count, s.cols.count())
	if count == 0 {
		return
	}
	s.notify(func(o cellgrid.GridObserver) { o.ColsDeleting(start, count) })
	s.cols.sizes = append(s.cols.sizes[:start], s.cols.sizes[start+count:]...)
	s.cols.hidden = append(s.cols.hidden[:start], s.cols.hidden[start+count:]...)
	s.cols.invalidate()
	s.remapCells(func(a cellgrid.CellAddress) (cellgrid.CellAddress, bool) {
		switch {
		case a.Col < start:
			return a, true
		case a.Col >= start+count:
			a.Col -= count
			return a, true
		}
		return a, false
	})
	s.remapMerges(func(m cellgrid.CellRange) (cellgrid.CellRange, bool) {
		switch {
		case m.EndCol < start:
			return m, true
		case m.StartCol >= start+count:
			m.StartCol -= count
			m.EndCol -= count
			return m, true
		}
		return m, false
	})
}

// SetRowsHidden hides or shows a span of rows; observers hear about it
// after the fact.
func (s *MemSource) SetRowsHidden(start, count int, hidden bool) {
	start, count = clampSpan(start, count, s.rows.count())
	for i := start; i < start+count; i++ {
		s.rows.hidden[i] = hidden
	}
	s.rows.invalidate()
	if count > 0 {
		s.notify(func(o cellgrid.GridObserver) { o.RowsHidden(start, count) })
	}
}

func (s *MemSource) SetColsHidden(start, count int, hidden bool) {
	start, count = clampSpan(start, count, s.cols.count())
	for i := start; i < start+count; i++ {
		s.cols.hidden[i] = hidden
	}
	s.cols.invalidate()
	if count > 0 {
		s.notify(func(o cellgrid.GridObserver) { o.ColsHidden(start, count) })
	}
}

// remapCells rewrites cell addresses after a structural change; a
// false return drops the cell.
func (s *MemSource) remapCells(f func(cellgrid.CellAddress) (cellgrid.CellAddress, bool)) {
	values := make(map[cellgrid.CellAddress]interface{}, len(s.values))
	for a, v := range s.values {
		if na, keep := f(a); keep {
			values[na] = v
		}
	}
	s.values = values
	renderers := make(map[cellgrid.CellAddress]string, len(s.renderers))
	for a, name := range s.renderers {
		if na, keep := f(a); keep {
			renderers[na] = name
		}
	}
	s.renderers = renderers
}

// remapMerges rewrites merge ranges after a structural change; ranges
// intersecting the changed span are dropped.
func (s *MemSource) remapMerges(f func(cellgrid.CellRange) (cellgrid.CellRange, bool)) {
	merges := s.merges[:0]
	for _, m := range s.merges {
		if nm, keep := f(m); keep {
			merges = append(merges, nm)
		}
	}
	s.merges = merges
}

func clampSpan(start, count, total int) (int, int) {
	if start < 0 {
		count += start
		start = 0
	}
	if start+count > total {
		count = total - start
	}
	if count < 0 {
		count = 0
	}
	return start, count
}
