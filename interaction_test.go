package cellgrid

import (
	"image"
	"testing"
	"time"
)

func TestBoundaryNear(t *testing.T) {
	src := newStubSource(10, 10, 30, 100)

	tests := []struct {
		name   string
		x      int
		want   int
		wantOK bool
	}{
		{"far from any boundary", 150, 0, false},
		{"just before a trailing edge", 197, 1, true},
		{"exactly on the edge", 200, 1, true},
		{"just past the edge snaps back", 203, 1, true},
		{"near zero has no previous line", 2, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := boundaryNear(tc.x, src.ColAt(tc.x), src.ColCount(), src.ColOffset, 4)
			if ok != tc.wantOK || (ok && got != tc.want) {
				t.Errorf("boundaryNear(%d) = %d, %v; want %d, %v", tc.x, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestRangeBetween(t *testing.T) {
	got := rangeBetween(CellAddress{Row: 5, Col: 7}, CellAddress{Row: 2, Col: 9})
	want := CellRange{StartRow: 2, StartCol: 7, EndRow: 5, EndCol: 9}
	if got != want {
		t.Errorf("rangeBetween = %+v, want %+v", got, want)
	}
}

func TestExtendRangeNeverShrinks(t *testing.T) {
	base := CellRange{StartRow: 2, StartCol: 2, EndRow: 4, EndCol: 4}

	tests := []struct {
		name   string
		target CellAddress
		want   CellRange
	}{
		{"inside keeps the base", CellAddress{Row: 3, Col: 3}, base},
		{"below grows down", CellAddress{Row: 8, Col: 3}, CellRange{StartRow: 2, StartCol: 2, EndRow: 8, EndCol: 4}},
		{"above-left grows both", CellAddress{Row: 0, Col: 0}, CellRange{StartRow: 0, StartCol: 0, EndRow: 4, EndCol: 4}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := extendRange(base, tc.target); got != tc.want {
				t.Errorf("extendRange = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestSelectionDragLifecycle(t *testing.T) {
	f := canonicalFixture(t)
	f.frame(t)

	// Press on cell (2,2): body starts at (100,30), cell (2,2) spans
	// surface (200,60)-(300,90).
	f.e.HandleMouse(image.Pt(250, 75), Button1, 0)
	if !f.e.DragInProgress() {
		t.Fatal("press did not start a drag")
	}
	p, _ := f.sel.Primary()
	if want := SingleCell(2, 2); p.Range != want {
		t.Fatalf("press selection = %+v, want %+v", p.Range, want)
	}

	// Drag to (4,4): surface (400,120)-(500,150).
	f.e.HandleMouse(image.Pt(450, 130), Button1, 10)
	p, _ = f.sel.Primary()
	want := CellRange{StartRow: 2, StartCol: 2, EndRow: 4, EndCol: 4}
	if p.Range != want {
		t.Fatalf("drag selection = %+v, want %+v", p.Range, want)
	}
	if p.Anchor != (CellAddress{Row: 2, Col: 2}) {
		t.Errorf("anchor moved during drag: %+v", p.Anchor)
	}

	// Release commits and focuses.
	f.e.HandleMouse(image.Pt(450, 130), 0, 20)
	if f.e.DragInProgress() {
		t.Error("drag survived release")
	}
	if !f.e.Focused() {
		t.Error("release did not focus the engine")
	}
}

// A second press while a drag runs must not start another one.
func TestSingleActiveDrag(t *testing.T) {
	f := canonicalFixture(t)
	f.frame(t)

	f.e.HandleMouse(image.Pt(250, 75), Button1, 0)
	first := f.e.drag
	f.e.MouseDown(&MouseEvent{Point: image.Pt(450, 130), Buttons: Button1})
	if f.e.drag != first {
		t.Error("second press replaced the active drag")
	}
}

func TestSelectionDragOnMergeSelectsWholeMerge(t *testing.T) {
	src := newStubSource(100, 100, 30, 100)
	merge := CellRange{StartRow: 2, StartCol: 2, EndRow: 3, EndCol: 3}
	src.merges = []CellRange{merge}
	f := newFixture(t, src, OptFrozen(1, 0, 1, 0))
	f.frame(t)

	// Press on (3,3), inside the merge.
	f.e.HandleMouse(image.Pt(350, 105), Button1, 0)
	p, _ := f.sel.Primary()
	if p.Range != merge {
		t.Errorf("selection = %+v, want the merge %+v", p.Range, merge)
	}
	if p.Anchor != (CellAddress{Row: 2, Col: 2}) {
		t.Errorf("anchor = %+v, want the merge origin", p.Anchor)
	}
}

func TestPanModifierDragsViewport(t *testing.T) {
	f := canonicalFixture(t)
	f.frame(t)

	f.e.SetPanModifier(true)
	f.e.HandleMouse(image.Pt(300, 200), Button1, 0)
	f.e.HandleMouse(image.Pt(250, 150), Button1, 10)
	if got := f.e.ScrollOffset(); got != image.Pt(50, 50) {
		t.Errorf("offset = %v, want (50,50)", got)
	}
	// Panning never touches the selection.
	if len(f.sel.sels) != 0 {
		t.Errorf("pan created a selection: %v", f.sel.sels)
	}
	f.e.HandleMouse(image.Pt(250, 150), 0, 20)
	f.e.SetPanModifier(false)
}

func TestResizeDragCommitsOnRelease(t *testing.T) {
	src := newStubSource(100, 100, 30, 100)
	f := newFixture(t, src, OptFrozen(1, 0, 1, 0), OptResizable(100, 100))
	f.frame(t)

	// Column 1's trailing edge is at content x=200, surface x=200.
	f.e.HandleMouse(image.Pt(200, 100), Button1, 0)
	rd, ok := f.e.drag.(*resizeDrag)
	if !ok {
		t.Fatalf("drag = %T, want *resizeDrag", f.e.drag)
	}
	if !rd.vertical || rd.index != 1 {
		t.Fatalf("resize drag = %+v, want vertical col 1", rd)
	}

	// While dragging only the guide moves; the source is untouched.
	f.e.HandleMouse(image.Pt(240, 100), Button1, 10)
	if f.src.ColWidth(1) != 100 {
		t.Fatal("width committed before release")
	}
	ctx := f.frame(t)
	if ctx.Guide == nil || !ctx.Guide.Vertical || ctx.Guide.Position != 240 {
		t.Fatalf("guide = %+v, want vertical at 240", ctx.Guide)
	}

	f.e.HandleMouse(image.Pt(240, 100), 0, 20)
	if got := f.src.ColWidth(1); got != 140 {
		t.Errorf("column width = %d, want 140", got)
	}
	if ctx := f.frame(t); ctx.Guide != nil {
		t.Error("guide survived the release")
	}
}

func TestResizeFloorsAtMinimum(t *testing.T) {
	src := newStubSource(100, 100, 30, 100)
	f := newFixture(t, src, OptFrozen(1, 0, 1, 0), OptResizable(100, 100))
	f.frame(t)

	f.e.HandleMouse(image.Pt(200, 100), Button1, 0)
	f.e.HandleMouse(image.Pt(20, 100), 0, 10)
	if got := f.src.ColWidth(1); got != minResizeSize {
		t.Errorf("column width = %d, want the floor %d", got, minResizeSize)
	}
}

func TestResizeRespectsResizableLimit(t *testing.T) {
	src := newStubSource(100, 100, 30, 100)
	f := newFixture(t, src, OptFrozen(1, 0, 1, 0), OptResizable(100, 2))
	f.frame(t)

	// Column 2's trailing edge is past the resizable limit; the press
	// falls through to selection.
	f.e.HandleMouse(image.Pt(300, 100), Button1, 0)
	if _, ok := f.e.drag.(*resizeDrag); ok {
		t.Fatal("resize drag started past the resizable limit")
	}
	if _, ok := f.e.drag.(*selectionDrag); !ok {
		t.Errorf("drag = %T, want *selectionDrag", f.e.drag)
	}
}

func TestScrollbarDrag(t *testing.T) {
	f := canonicalFixture(t)
	ctx := f.frame(t)

	sb := ctx.Scrollbars.Vertical
	if sb == nil {
		t.Fatal("no vertical scrollbar")
	}
	grab := image.Pt(sb.Thumb.Min.X+2, sb.Thumb.Min.Y+2)
	f.e.HandleMouse(grab, Button1, 0)
	if _, ok := f.e.drag.(*scrollbarDrag); !ok {
		t.Fatalf("drag = %T, want *scrollbarDrag", f.e.drag)
	}

	f.e.HandleMouse(grab.Add(image.Pt(0, 100)), Button1, 10)
	if f.e.ScrollOffset().Y == 0 {
		t.Error("thumb drag did not scroll")
	}
	f.e.HandleMouse(grab.Add(image.Pt(0, 100)), 0, 20)
}

func TestWheelScrollsByConfiguredRows(t *testing.T) {
	f := canonicalFixture(t)
	f.frame(t)

	f.e.HandleMouse(image.Pt(300, 200), ButtonScrollDown, 0)
	if want := 3 * 30; f.e.ScrollOffset().Y != want {
		t.Errorf("offset.Y = %d, want %d", f.e.ScrollOffset().Y, want)
	}
	if f.e.DragInProgress() {
		t.Error("wheel started a drag")
	}

	// Scrolling up from the top pins at zero.
	f.refresh.Run(16*time.Millisecond, 10)
	f.e.HandleMouse(image.Pt(300, 200), ButtonScrollUp, 0)
	f.refresh.Run(16*time.Millisecond, 10)
	f.e.HandleMouse(image.Pt(300, 200), ButtonScrollUp, 0)
	if got := f.e.ScrollOffset().Y; got != 0 {
		t.Errorf("offset.Y = %d, want 0", got)
	}
}

func TestRendererPreventDefaultStopsSelection(t *testing.T) {
	src := newStubSource(100, 100, 30, 100)
	f := newFixture(t, src, OptFrozen(1, 0, 1, 0))
	f.rend.listeners = &CellEventListeners{
		MouseDown: func(cell Cell, ev *MouseEvent) { ev.PreventDefault() },
	}
	f.frame(t)

	f.e.HandleMouse(image.Pt(250, 75), Button1, 0)
	if f.e.DragInProgress() {
		t.Error("prevented press still started a drag")
	}
	if len(f.sel.sels) != 0 {
		t.Error("prevented press still selected")
	}
}

func TestCopyHandleDragExtends(t *testing.T) {
	f := canonicalFixture(t)
	f.sel.Set(Selection{Range: SingleCell(2, 2), Anchor: CellAddress{Row: 2, Col: 2}})
	ctx := f.frame(t)

	handle := copyHandleRect(ctx.Selections[0].Bounds, f.e.opt.copyHandleSize)
	f.e.HandleMouse(handle.Min.Add(image.Pt(1, 1)), Button1, 0)
	if _, ok := f.e.drag.(*copyHandleDrag); !ok {
		t.Fatalf("drag = %T, want *copyHandleDrag", f.e.drag)
	}

	// Dragging down-right extends; the base range never shrinks.
	f.e.HandleMouse(image.Pt(450, 130), Button1, 10)
	p, _ := f.sel.Primary()
	want := CellRange{StartRow: 2, StartCol: 2, EndRow: 4, EndCol: 4}
	if p.Range != want {
		t.Fatalf("extended range = %+v, want %+v", p.Range, want)
	}
	f.e.HandleMouse(image.Pt(250, 75), Button1, 20)
	p, _ = f.sel.Primary()
	if p.Range != SingleCell(2, 2) {
		t.Errorf("shrunk back to %+v, want the base", p.Range)
	}
	f.e.HandleMouse(image.Pt(250, 75), 0, 30)
}

func TestHoverDispatchesMouseOut(t *testing.T) {
	f := canonicalFixture(t)
	var outs []CellAddress
	f.rend.listeners = &CellEventListeners{
		MouseOut: func(cell Cell, ev *MouseEvent) { outs = append(outs, cell.Address()) },
	}
	f.frame(t)

	f.e.HandleMouse(image.Pt(250, 75), 0, 0)  // over (2,2)
	f.e.HandleMouse(image.Pt(450, 130), 0, 1) // over (4,4)
	if len(outs) != 1 || outs[0] != (CellAddress{Row: 2, Col: 2}) {
		t.Errorf("mouse-out calls = %v, want [(2,2)]", outs)
	}
}
