package renderers

import (
	"image"
	"strings"
	"testing"
	"time"

	"github.com/bennyboer/cellgrid"
	"github.com/bennyboer/cellgrid/cellgridtest"
	"github.com/bennyboer/cellgrid/draw"
	"github.com/bennyboer/cellgrid/grid"
)

type fixture struct {
	e       *cellgrid.Engine
	src     *grid.MemSource
	sel     *grid.MemSelection
	display draw.Display
	refresh *cellgridtest.ManualRefresh
}

func newFixture(t *testing.T, defaultRenderer string) *fixture {
	t.Helper()
	f := &fixture{
		src:     grid.NewMemSource(3, 3, 30, 100, defaultRenderer),
		display: cellgridtest.NewDisplay(image.Rect(0, 0, 500, 400)),
		refresh: cellgridtest.NewManualRefresh(time.Unix(1000, 0)),
	}
	f.sel = grid.NewMemSelection(f.src)
	f.e = cellgrid.New(f.display, f.src, f.sel, f.refresh, cellgrid.OptClock(f.refresh.Now))
	f.e.RegisterCellRenderer(NewText())
	f.e.RegisterCellRenderer(NewCheckbox())
	return f
}

func (f *fixture) frame() {
	f.e.Render()
	f.refresh.Step(16 * time.Millisecond)
}

func (f *fixture) hasOp(substr string) bool {
	for _, op := range f.display.(cellgridtest.GettableDrawOps).DrawOps() {
		if strings.Contains(op, substr) {
			return true
		}
	}
	return false
}

func TestTextRender(t *testing.T) {
	f := newFixture(t, "text")
	f.src.SetCellValue(1, 1, "hi")
	f.frame()

	// Cell (1,1) spans (100,30)-(200,60); 4px padding, 16px font.
	if !f.hasOp(`string "hi" at (104,37)`) {
		t.Errorf("text not drawn; ops:\n%s",
			strings.Join(f.display.(cellgridtest.GettableDrawOps).DrawOps(), "\n"))
	}
}

func TestTextTruncatesToTheCell(t *testing.T) {
	f := newFixture(t, "text")
	// 20 chars at 8px each overflow the 92px available width; 11 fit.
	f.src.SetCellValue(1, 1, "abcdefghijklmnopqrst")
	f.frame()

	if !f.hasOp(`string "abcdefghijk" at`) {
		t.Error("overflowing text was not truncated")
	}
}

func TestTextFormatsNonStringValues(t *testing.T) {
	f := newFixture(t, "text")
	f.src.SetCellValue(1, 1, 42)
	f.frame()

	if !f.hasOp(`string "42" at`) {
		t.Error("non-string value not rendered through fmt")
	}
}

func TestTextCachesMeasurement(t *testing.T) {
	f := newFixture(t, "text")
	f.src.SetCellValue(1, 1, "hi")
	f.frame()

	v, ok := f.e.CellCache(cellgrid.CellAddress{Row: 1, Col: 1})
	if !ok {
		t.Fatal("no cached measurement after a frame")
	}
	m, ok := v.(textMetrics)
	if !ok || m.text != "hi" || m.width != 16 {
		t.Errorf("cache = %+v, want {hi 16}", v)
	}

	// A value change evicts the slot; the next frame re-measures.
	f.src.SetCellValue(1, 1, "longer")
	f.frame()
	v, _ = f.e.CellCache(cellgrid.CellAddress{Row: 1, Col: 1})
	if m, ok := v.(textMetrics); !ok || m.text != "longer" {
		t.Errorf("cache = %+v after the value changed, want re-measured", v)
	}
}

func TestTextPreferredSize(t *testing.T) {
	f := newFixture(t, "text")
	f.src.SetCellValue(1, 1, "hi")
	f.frame()

	tr := f.e.Renderer("text").(*Text)
	cell := cellgrid.Cell{Row: 1, Col: 1, Value: "hi"}
	got, ok := tr.PreferredSize(cell)
	if !ok || got != image.Pt(24, 24) {
		t.Errorf("PreferredSize = %v, %v; want (24,24), true", got, ok)
	}
	if _, ok := tr.PreferredSize(cellgrid.Cell{Row: 0, Col: 0}); ok {
		t.Error("empty cell reported a preferred size")
	}
}

func TestCheckboxRender(t *testing.T) {
	f := newFixture(t, "checkbox")
	f.src.SetCellValue(1, 1, true)
	f.frame()

	// The 12px box centers in cell (1,1): (144,39)-(156,51).
	if !f.hasOp("border (144,39)-(156,51) thick 1") {
		t.Error("box outline not drawn")
	}
	if !f.hasOp("fill (146,41)-(154,49)") {
		t.Error("checked fill not drawn")
	}
}

func TestCheckboxToggleOnClick(t *testing.T) {
	f := newFixture(t, "checkbox")
	f.src.SetCellValue(1, 1, false)
	f.frame()

	// A click inside the box toggles and suppresses selection.
	f.e.HandleMouse(image.Pt(150, 45), cellgrid.Button1, 0)
	f.e.HandleMouse(image.Pt(150, 45), 0, 10)

	if got := f.src.CellValue(1, 1); got != true {
		t.Errorf("value = %v after click, want true", got)
	}
	if _, ok := f.sel.Primary(); ok {
		t.Error("toggle click also selected the cell")
	}
}

func TestCheckboxClickOutsideBoxSelects(t *testing.T) {
	f := newFixture(t, "checkbox")
	f.frame()

	f.e.HandleMouse(image.Pt(105, 33), cellgrid.Button1, 0)
	f.e.HandleMouse(image.Pt(105, 33), 0, 10)

	if got := f.src.CellValue(1, 1); got != nil {
		t.Errorf("value = %v, cell toggled from outside the box", got)
	}
	p, ok := f.sel.Primary()
	if !ok || p.Range != cellgrid.SingleCell(1, 1) {
		t.Errorf("selection = %+v, %v; want the clicked cell", p.Range, ok)
	}
}

func TestCopyValues(t *testing.T) {
	f := newFixture(t, "text")

	tr := f.e.Renderer("text")
	if got := tr.CopyValue(cellgrid.Cell{Value: 42}); got != "42" {
		t.Errorf(`text CopyValue(42) = %q, want "42"`, got)
	}
	cb := f.e.Renderer("checkbox")
	if got := cb.CopyValue(cellgrid.Cell{Value: true}); got != "true" {
		t.Errorf(`checkbox CopyValue(true) = %q, want "true"`, got)
	}
	if got := cb.CopyValue(cellgrid.Cell{}); got != "false" {
		t.Errorf(`checkbox CopyValue(nil) = %q, want "false"`, got)
	}
}
