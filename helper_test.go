package cellgrid

import (
	"image"
	"testing"
	"time"

	"github.com/bennyboer/cellgrid/cellgridtest"
	"github.com/bennyboer/cellgrid/draw"
)

// stubSource is a DataSource with uniform sizing and sparse overrides,
// just enough to drive the engine in tests.
type stubSource struct {
	rows, cols int
	rowH, colW int

	rowHeights map[int]int
	colWidths  map[int]int
	hiddenRows map[int]bool
	hiddenCols map[int]bool
	values     map[CellAddress]interface{}
	byCell     map[CellAddress]string
	renderer   string
	merges     []CellRange

	observers []GridObserver
}

func newStubSource(rows, cols, rowH, colW int) *stubSource {
	return &stubSource{
		rows:       rows,
		cols:       cols,
		rowH:       rowH,
		colW:       colW,
		rowHeights: make(map[int]int),
		colWidths:  make(map[int]int),
		hiddenRows: make(map[int]bool),
		hiddenCols: make(map[int]bool),
		values:     make(map[CellAddress]interface{}),
		byCell:     make(map[CellAddress]string),
		renderer:   "test",
	}
}

func (s *stubSource) RowCount() int { return s.rows }
func (s *stubSource) ColCount() int { return s.cols }

func (s *stubSource) RowHeight(row int) int {
	if h, ok := s.rowHeights[row]; ok {
		return h
	}
	return s.rowH
}

func (s *stubSource) ColWidth(col int) int {
	if w, ok := s.colWidths[col]; ok {
		return w
	}
	return s.colW
}

func (s *stubSource) RowHidden(row int) bool { return s.hiddenRows[row] }
func (s *stubSource) ColHidden(col int) bool { return s.hiddenCols[col] }

func (s *stubSource) SetRowHeight(row, height int) { s.rowHeights[row] = height }
func (s *stubSource) SetColWidth(col, width int)   { s.colWidths[col] = width }

func (s *stubSource) RowOffset(row int) int {
	o := 0
	if row > s.rows {
		row = s.rows
	}
	for i := 0; i < row; i++ {
		if !s.hiddenRows[i] {
			o += s.RowHeight(i)
		}
	}
	return o
}

func (s *stubSource) ColOffset(col int) int {
	o := 0
	if col > s.cols {
		col = s.cols
	}
	for i := 0; i < col; i++ {
		if !s.hiddenCols[i] {
			o += s.ColWidth(i)
		}
	}
	return o
}

func (s *stubSource) RowAt(y int) int {
	o := 0
	for i := 0; i < s.rows; i++ {
		if s.hiddenRows[i] {
			continue
		}
		o += s.RowHeight(i)
		if o > y {
			return i
		}
	}
	if s.rows == 0 {
		return 0
	}
	return s.rows - 1
}

func (s *stubSource) ColAt(x int) int {
	o := 0
	for i := 0; i < s.cols; i++ {
		if s.hiddenCols[i] {
			continue
		}
		o += s.ColWidth(i)
		if o > x {
			return i
		}
	}
	if s.cols == 0 {
		return 0
	}
	return s.cols - 1
}

func (s *stubSource) CellValue(row, col int) interface{} {
	return s.values[CellAddress{Row: row, Col: col}]
}

func (s *stubSource) SetCellValue(row, col int, v interface{}) {
	s.values[CellAddress{Row: row, Col: col}] = v
	for _, o := range s.observers {
		o.CellChanged(row, col)
	}
}

func (s *stubSource) RendererName(row, col int) string {
	if name, ok := s.byCell[CellAddress{Row: row, Col: col}]; ok {
		return name
	}
	return s.renderer
}

func (s *stubSource) MergeAt(row, col int) (CellRange, bool) {
	for _, m := range s.merges {
		if m.Contains(row, col) {
			return m, true
		}
	}
	return CellRange{}, false
}

func (s *stubSource) AddObserver(o GridObserver) { s.observers = append(s.observers, o) }

func (s *stubSource) RemoveObserver(o GridObserver) {
	for i, reg := range s.observers {
		if reg == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// stubSelection is a minimal SelectionStore: a slice with the last
// element primary.
type stubSelection struct {
	sels []Selection
	src  DataSource
}

func (s *stubSelection) Selections() []Selection { return s.sels }

func (s *stubSelection) Primary() (Selection, bool) {
	if len(s.sels) == 0 {
		return Selection{}, false
	}
	return s.sels[len(s.sels)-1], true
}

func (s *stubSelection) Set(sel Selection) { s.sels = []Selection{sel} }
func (s *stubSelection) Add(sel Selection) { s.sels = append(s.sels, sel) }
func (s *stubSelection) Clear()            { s.sels = nil }

func (s *stubSelection) UpdatePrimaryRange(r CellRange) {
	if len(s.sels) == 0 {
		return
	}
	p := &s.sels[len(s.sels)-1]
	p.Range = r.Normalize()
	p.Anchor.Row = clamp(p.Anchor.Row, p.Range.StartRow, p.Range.EndRow)
	p.Anchor.Col = clamp(p.Anchor.Col, p.Range.StartCol, p.Range.EndCol)
}

func (s *stubSelection) MoveBy(dr, dc int, jump bool) {
	p, ok := s.Primary()
	if !ok {
		p = Selection{}
	}
	a := p.Anchor
	rows, cols := s.src.RowCount(), s.src.ColCount()
	if jump {
		if dr < 0 {
			a.Row = 0
		} else if dr > 0 {
			a.Row = rows - 1
		}
		if dc < 0 {
			a.Col = 0
		} else if dc > 0 {
			a.Col = cols - 1
		}
	} else {
		a.Row = clamp(a.Row+dr, 0, rows-1)
		a.Col = clamp(a.Col+dc, 0, cols-1)
	}
	s.Set(Selection{Range: SingleCell(a.Row, a.Col), Anchor: a})
}

func (s *stubSelection) ExtendBy(dr, dc int, jump bool) {
	p, ok := s.Primary()
	if !ok {
		return
	}
	r := p.Range
	rows, cols := s.src.RowCount(), s.src.ColCount()
	if p.Anchor.Row == r.StartRow {
		r.EndRow = clamp(r.EndRow+dr, 0, rows-1)
	} else {
		r.StartRow = clamp(r.StartRow+dr, 0, rows-1)
	}
	if p.Anchor.Col == r.StartCol {
		r.EndCol = clamp(r.EndCol+dc, 0, cols-1)
	} else {
		r.StartCol = clamp(r.StartCol+dc, 0, cols-1)
	}
	s.Set(Selection{Range: r.Normalize(), Anchor: p.Anchor})
}

// recordingRenderer counts its hook invocations and can forward events.
type recordingRenderer struct {
	name      string
	e         *Engine
	rendered  []CellAddress
	gone      []CellAddress
	before    int
	after     int
	cleanups  int
	listeners *CellEventListeners
}

func (r *recordingRenderer) Initialize(e *Engine) { r.e = e }
func (r *recordingRenderer) Name() string         { return r.name }

func (r *recordingRenderer) BeforeFrame(ctx *RenderContext) { r.before++ }
func (r *recordingRenderer) AfterFrame(ctx *RenderContext)  { r.after++ }

func (r *recordingRenderer) Render(target draw.Image, cell Cell, ctx *RenderContext) {
	r.rendered = append(r.rendered, cell.Address())
}

func (r *recordingRenderer) CopyValue(cell Cell) string {
	if cell.Value == nil {
		return ""
	}
	if s, ok := cell.Value.(string); ok {
		return s
	}
	return "?"
}

func (r *recordingRenderer) OnDisappear(addr CellAddress) { r.gone = append(r.gone, addr) }

func (r *recordingRenderer) PreferredSize(cell Cell) (image.Point, bool) {
	return image.Point{}, false
}

func (r *recordingRenderer) Listeners() *CellEventListeners { return r.listeners }

func (r *recordingRenderer) CleanupFrameState() { r.cleanups++ }

// fixture bundles an engine wired to the recording display and a
// manually stepped refresh source.
type fixture struct {
	e       *Engine
	src     *stubSource
	sel     *stubSelection
	display draw.Display
	refresh *cellgridtest.ManualRefresh
	rend    *recordingRenderer
}

func newFixture(t *testing.T, src *stubSource, opts ...OptionClosure) *fixture {
	t.Helper()
	display := cellgridtest.NewDisplay(image.Rect(0, 0, 500, 400))
	refresh := cellgridtest.NewManualRefresh(time.Unix(1000, 0))
	sel := &stubSelection{src: src}
	opts = append([]OptionClosure{OptClock(refresh.Now)}, opts...)
	e := New(display, src, sel, refresh, opts...)
	rend := &recordingRenderer{name: "test"}
	e.RegisterCellRenderer(rend)
	return &fixture{e: e, src: src, sel: sel, display: display, refresh: refresh, rend: rend}
}

// frame draws one frame so lastCtx exists.
func (f *fixture) frame(t *testing.T) *RenderContext {
	t.Helper()
	f.e.Render()
	f.refresh.Step(16 * time.Millisecond)
	ctx := f.e.LastRenderContext()
	if ctx == nil {
		t.Fatal("no render context after frame")
	}
	return ctx
}
