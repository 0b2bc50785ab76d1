// Package cellgrid renders a virtually-scrollable grid of cells onto a
// fixed-size drawing surface and translates pointer, touch and keyboard
// input into selection, scroll, resize and edit operations.
//
// The engine owns no cell data of its own. Row and column sizing, cell
// values, merged ranges, selections and border definitions live behind
// the DataSource, SelectionStore and BorderStore contracts; cells are
// painted through CellRenderer plugins registered by name.
package cellgrid

import (
	"image"

	"github.com/bennyboer/cellgrid/draw"
)

// CellAddress names a single cell by zero-based row and column.
type CellAddress struct {
	Row int
	Col int
}

// CellRange is an inclusive rectangular range of cells.
type CellRange struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

func SingleCell(row, col int) CellRange {
	return CellRange{StartRow: row, StartCol: col, EndRow: row, EndCol: col}
}

func (r CellRange) Contains(row, col int) bool {
	return row >= r.StartRow && row <= r.EndRow && col >= r.StartCol && col <= r.EndCol
}

func (r CellRange) Single() bool {
	return r.StartRow == r.EndRow && r.StartCol == r.EndCol
}

func (r CellRange) Rows() int { return r.EndRow - r.StartRow + 1 }
func (r CellRange) Cols() int { return r.EndCol - r.StartCol + 1 }

func (r CellRange) CellCount() int { return r.Rows() * r.Cols() }

// Normalize swaps the endpoints on each axis so that start ≤ end.
func (r CellRange) Normalize() CellRange {
	if r.StartRow > r.EndRow {
		r.StartRow, r.EndRow = r.EndRow, r.StartRow
	}
	if r.StartCol > r.EndCol {
		r.StartCol, r.EndCol = r.EndCol, r.StartCol
	}
	return r
}

// ClampTo confines the range to a rows×cols grid. The result always
// satisfies start ≤ end on both axes, even after the grid shrank
// underneath an existing selection.
func (r CellRange) ClampTo(rows, cols int) CellRange {
	r = r.Normalize()
	r.StartRow = clamp(r.StartRow, 0, rows-1)
	r.EndRow = clamp(r.EndRow, r.StartRow, rows-1)
	r.StartCol = clamp(r.StartCol, 0, cols-1)
	r.EndCol = clamp(r.EndCol, r.StartCol, cols-1)
	return r
}

// Overlaps reports whether r and o share at least one cell.
func (r CellRange) Overlaps(o CellRange) bool {
	return r.StartRow <= o.EndRow && o.StartRow <= r.EndRow &&
		r.StartCol <= o.EndCol && o.StartCol <= r.EndCol
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

// GridObserver implementations can register themselves with a
// DataSource so they are notified of structural mutations. The engine
// registers one to evict render-cache entries proactively.
type GridObserver interface {

	// RowsDeleting is delivered before rows [start, start+count) are removed.
	RowsDeleting(start, count int)

	// ColsDeleting is delivered before columns [start, start+count) are removed.
	ColsDeleting(start, count int)

	// RowsHidden is delivered after rows [start, start+count) changed hidden state.
	RowsHidden(start, count int)

	// ColsHidden is delivered after columns [start, start+count) changed hidden state.
	ColsHidden(start, count int)

	// CellChanged is delivered after the value of a single cell changed.
	CellChanged(row, col int)
}

// DataSource is the grid content store consumed by the engine. Hidden
// rows and columns contribute zero size; cumulative offsets are in
// unzoomed content pixels.
type DataSource interface {
	RowCount() int
	ColCount() int

	RowHeight(row int) int
	ColWidth(col int) int
	RowHidden(row int) bool
	ColHidden(col int) bool
	SetRowHeight(row, height int)
	SetColWidth(col, width int)

	// RowOffset returns the content y of the top edge of row. By
	// convention RowOffset(RowCount()) is the total content height.
	RowOffset(row int) int
	ColOffset(col int) int

	// RowAt returns the row containing content coordinate y, clamped
	// to the grid. ColAt is the column analogue.
	RowAt(y int) int
	ColAt(x int) int

	CellValue(row, col int) interface{}
	SetCellValue(row, col int, v interface{})

	// RendererName returns the name of the renderer that draws the cell.
	RendererName(row, col int) string

	// MergeAt returns the merged range covering the cell, if any.
	MergeAt(row, col int) (CellRange, bool)

	AddObserver(o GridObserver)
	RemoveObserver(o GridObserver)
}

// Selection is one rectangular selection plus the anchor cell the
// range was started or extended from. The anchor always lies inside
// the range.
type Selection struct {
	Range  CellRange
	Anchor CellAddress
}

// SelectionStore is the ordered selection set consumed by the engine.
// The last selection is the primary one.
type SelectionStore interface {
	Selections() []Selection
	Primary() (Selection, bool)

	Set(sel Selection)
	Add(sel Selection)
	Clear()

	// UpdatePrimaryRange replaces the primary selection's range while
	// keeping its anchor. Used for interim drag updates.
	UpdatePrimaryRange(r CellRange)

	// MoveBy collapses the primary selection to its anchor moved by
	// (dr, dc). With jump set, the move goes to the grid edge on the
	// dominant axis.
	MoveBy(dr, dc int, jump bool)

	// ExtendBy grows the primary selection range by (dr, dc) on the
	// corner opposite the anchor.
	ExtendBy(dr, dc int, jump bool)
}

// BorderSide is one resolved border definition for one edge of a cell.
type BorderSide struct {
	Color    draw.Color
	Width    int
	Priority int

	// Default marks a side that came from the grid-wide default rather
	// than an explicit per-cell definition. A non-default side always
	// dominates a default one.
	Default bool
}

// CellBorder carries the four sides of one cell. A nil side means the
// cell defines no border on that edge.
type CellBorder struct {
	Top    *BorderSide
	Left   *BorderSide
	Right  *BorderSide
	Bottom *BorderSide
}

// BorderStore resolves border definitions for a range of cells. The
// returned grid is indexed [row][col] relative to the range start.
type BorderStore interface {
	BordersForRange(r CellRange) [][]CellBorder
}

// Cell is one visible cell handed to a renderer. Bounds are surface
// pixels, already adjusted for the scroll behavior of the region the
// cell was assigned to. For a merged cell Bounds covers the full merge
// extent and Merge names the merged range; otherwise Merge is the
// single-cell range.
type Cell struct {
	Row    int
	Col    int
	Value  interface{}
	Bounds image.Rectangle
	Merge  CellRange
}

func (c Cell) Address() CellAddress { return CellAddress{Row: c.Row, Col: c.Col} }

// CellRenderer is the plugin contract for painting cells. Renderers
// are registered by name; a cell names its renderer through
// DataSource.RendererName.
type CellRenderer interface {

	// Initialize is called once at registration with the owning engine.
	Initialize(e *Engine)

	// Name must be unique across all registered renderers.
	Name() string

	// BeforeFrame and AfterFrame bracket all Render calls of one frame.
	BeforeFrame(ctx *RenderContext)
	AfterFrame(ctx *RenderContext)

	Render(target draw.Image, cell Cell, ctx *RenderContext)

	// CopyValue returns the cell's textual value for the copy path.
	CopyValue(cell Cell) string

	// OnDisappear is called when a cell this renderer drew left all
	// visible regions or was invalidated; the renderer must drop any
	// cache it holds for the cell.
	OnDisappear(addr CellAddress)

	// PreferredSize reports the cell's preferred pixel size, or false
	// when the renderer has no opinion.
	PreferredSize(cell Cell) (image.Point, bool)
}

// CellEventListeners is the optional per-renderer event bundle. Each
// listener may call PreventDefault on the event to suppress the
// engine's own handling for that cell. Nil listeners are skipped.
type CellEventListeners struct {
	MouseDown func(cell Cell, ev *MouseEvent)
	MouseMove func(cell Cell, ev *MouseEvent)
	MouseOut  func(cell Cell, ev *MouseEvent)
	MouseUp   func(cell Cell, ev *MouseEvent)
	KeyDown   func(cell Cell, ev *KeyEvent)
	KeyUp     func(cell Cell, ev *KeyEvent)
	Focus     func(cell Cell)
	Blur      func(cell Cell)
}

// EventfulRenderer is implemented by renderers that want input events.
type EventfulRenderer interface {
	CellRenderer
	Listeners() *CellEventListeners
}

// FrameCleanupRenderer is implemented by renderers that hold transient
// per-frame state beyond the per-cell cache. CleanupFrameState is
// called when the renderer drew cells in the previous frame but none
// in the current one.
type FrameCleanupRenderer interface {
	CellRenderer
	CleanupFrameState()
}

// Confirmer asks the embedder a yes/no question, for example before an
// oversized copy proceeds. The answer arrives on the returned channel;
// the engine treats a missing answer as a decline after a timeout.
type Confirmer interface {
	Confirm(message string) <-chan bool
}

// OverlayHandle is the embedder-side surface positioned by the overlay
// layout pass: a DOM node, native child window or custom-drawn layer.
type OverlayHandle interface {

	// SetPlacement moves the surface so that visible is the on-screen
	// rectangle and clip is the sub-rectangle of the surface's own
	// coordinate space that may show through. zoom > 1 scales the
	// surface contents.
	SetPlacement(visible image.Rectangle, clip image.Rectangle, zoom float64)

	SetHidden(hidden bool)

	// Focus transfers input focus to the surface.
	Focus()
}
