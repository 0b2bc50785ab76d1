package cellgrid

import (
	"image"
	"log"

	"github.com/bennyboer/cellgrid/draw"
)

// Engine is the viewport rendering and interaction engine. One engine
// instance owns all mutable state (scroll offset, zoom, drag context,
// per-cell cache); everything runs on the single goroutine that feeds
// input events and refresh callbacks.
type Engine struct {
	display draw.Display
	screen  draw.Image

	src     DataSource
	sel     SelectionStore
	borders BorderStore

	opt options

	renderers     map[string]CellRenderer
	prevRenderers map[string]bool
	seenMerges    map[CellRange]bool

	viewRect image.Rectangle
	zoom     float64
	fixed    FixedAreas
	scroll   scroller
	cache    renderCache

	refresh      RefreshSource
	sched        frameScheduler
	wheel        throttle
	resizeNotify throttle

	drag    dragContext
	auto    *autoScroll
	inertia *animation
	guide   *ResizeGuide

	prevButtons int
	spaceHeld   bool
	hover       *Cell
	hoverCursor *draw.Cursor

	cursorOverride bool
	focused        bool
	focusAddr      *CellAddress
	closed         bool

	lastCtx *RenderContext

	overlays      []Overlay
	nextOverlayID OverlayID
	overlaysDirty bool

	observer *gridObserver

	colorCache map[draw.Color]draw.Image
	selFill    draw.Image
	font       draw.Font
}

const (
	// MinZoom and MaxZoom bound the zoom factor.
	MinZoom = 1.0
	MaxZoom = 5.0
)

// New creates an engine drawing on the display's screen image. src and
// sel are required collaborators; the border store and everything else
// arrive through options.
func New(display draw.Display, src DataSource, sel SelectionStore, refresh RefreshSource, opts ...OptionClosure) *Engine {
	e := &Engine{
		display:   display,
		src:       src,
		sel:       sel,
		refresh:   refresh,
		opt:       defaultOptions(),
		renderers: make(map[string]CellRenderer),
		zoom:      1.0,
	}
	e.screen = display.ScreenImage()
	e.viewRect = e.screen.R()
	e.scroll.src = src
	e.sched = frameScheduler{refresh: refresh, draw: e.paintFrame}
	e.wheel = throttle{interval: e.opt.throttleInterval, refresh: refresh}
	e.resizeNotify = throttle{interval: e.opt.throttleInterval, refresh: refresh}

	f, err := display.OpenFont("")
	if err != nil {
		log.Printf("cellgrid: default font unavailable: %v", err)
	}
	e.font = f

	e.Option(opts...)
	e.refreshLayout()

	e.observer = &gridObserver{e: e}
	src.AddObserver(e.observer)
	return e
}

// RegisterCellRenderer adds a renderer to the registry. A duplicate
// name is a fatal configuration error.
func (e *Engine) RegisterCellRenderer(r CellRenderer) {
	name := r.Name()
	if _, exists := e.renderers[name]; exists {
		log.Panicf("cellgrid: renderer %q registered twice", name)
	}
	e.renderers[name] = r
	r.Initialize(e)
}

// Renderer returns the registered renderer by name, nil when unknown.
func (e *Engine) Renderer(name string) CellRenderer { return e.renderers[name] }

// Render requests a repaint. Requests coalesce into one draw per
// refresh.
func (e *Engine) Render() {
	if e.closed {
		return
	}
	e.sched.request()
}

// Font returns the engine's default font, for renderers measuring
// text.
func (e *Engine) Font() draw.Font { return e.font }

// DataSource exposes the content store to renderers read-only.
func (e *Engine) DataSource() DataSource { return e.src }

// SelectionStore exposes the selection set to renderers read-only.
func (e *Engine) SelectionStore() SelectionStore { return e.sel }

// Viewport returns the current viewport rectangle in surface pixels.
func (e *Engine) Viewport() image.Rectangle { return e.viewRect }

// ViewportSize returns the viewport extent in surface pixels.
func (e *Engine) ViewportSize() image.Point { return e.viewRect.Size() }

// FixedAreas returns the current frozen-band partitioning.
func (e *Engine) FixedAreas() FixedAreas { return e.fixed }

// ScrollOffset returns the current scroll offset in content pixels.
func (e *Engine) ScrollOffset() image.Point { return e.scroll.offset }

// ScrollTo scrolls the minimum distance needed to reveal the cell and
// reports whether the offset changed.
func (e *Engine) ScrollTo(row, col int) bool {
	changed := e.scroll.scrollToCell(row, col, e.scrollView(), e.fixed)
	if changed {
		e.Render()
	}
	return changed
}

// ScrollToOffset scrolls to an absolute offset, clamped, and reports
// whether it changed.
func (e *Engine) ScrollToOffset(x, y int) bool {
	changed := e.scroll.scrollTo(x, y, e.scrollView(), e.fixed)
	if changed {
		e.Render()
	}
	return changed
}

// ScrollBy scrolls by a delta, clamped per axis.
func (e *Engine) ScrollBy(dx, dy int) {
	if e.scroll.scrollBy(dx, dy, e.scrollView(), e.fixed) {
		e.Render()
	}
}

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (e *Engine) SetZoom(z float64) {
	if z < MinZoom {
		z = MinZoom
	}
	if z > MaxZoom {
		z = MaxZoom
	}
	if z == e.zoom {
		return
	}
	e.zoom = z
	e.overlaysDirty = true
	e.refreshLayout()
	e.Render()
}

// Zoom returns the current zoom factor.
func (e *Engine) Zoom() float64 { return e.zoom }

// RequestFocus marks the engine focused. The embedder routes keyboard
// input accordingly.
func (e *Engine) RequestFocus() {
	if !e.focused {
		e.focused = true
		e.Render()
	}
	e.updateCellFocus()
}

// Blur drops focus.
func (e *Engine) Blur() {
	if e.focused {
		e.focused = false
		e.Render()
	}
	e.updateCellFocus()
}

// updateCellFocus dispatches the Focus and Blur cell listeners when
// the cell holding keyboard focus changes. While the engine is
// focused, cell focus follows the primary anchor, resolved to the
// top-left of its merge.
func (e *Engine) updateCellFocus() {
	var next *CellAddress
	if e.focused && e.sel != nil {
		if p, ok := e.sel.Primary(); ok {
			a := p.Anchor
			if m, ok := e.src.MergeAt(a.Row, a.Col); ok {
				a = CellAddress{Row: m.StartRow, Col: m.StartCol}
			}
			next = &a
		}
	}
	switch {
	case e.focusAddr == nil && next == nil:
		return
	case e.focusAddr != nil && next != nil && *e.focusAddr == *next:
		return
	}
	if e.focusAddr != nil {
		e.dispatchCellFocus(*e.focusAddr, false)
	}
	e.focusAddr = next
	if next != nil {
		e.dispatchCellFocus(*next, true)
	}
}

func (e *Engine) dispatchCellFocus(a CellAddress, gained bool) {
	r, ok := e.renderers[e.src.RendererName(a.Row, a.Col)]
	if !ok {
		return
	}
	er, ok := r.(EventfulRenderer)
	if !ok {
		return
	}
	l := er.Listeners()
	if l == nil {
		return
	}
	cell := Cell{
		Row:   a.Row,
		Col:   a.Col,
		Value: e.src.CellValue(a.Row, a.Col),
		Merge: SingleCell(a.Row, a.Col),
	}
	if m, ok := e.src.MergeAt(a.Row, a.Col); ok {
		cell.Merge = m
	}
	if gained && l.Focus != nil {
		l.Focus(cell)
	}
	if !gained && l.Blur != nil {
		l.Blur(cell)
	}
}

// Focused reports whether the engine holds focus.
func (e *Engine) Focused() bool { return e.focused }

// NotifyResize replaces the drawing target after the surface was
// resized. High-rate resize notifications are throttled with trailing
// semantics.
func (e *Engine) NotifyResize(screen draw.Image) {
	e.resizeNotify.call(e.now(), func() {
		e.screen = screen
		e.viewRect = screen.R()
		e.overlaysDirty = true
		e.refreshLayout()
		e.Render()
	})
}

// InvalidateCell force-evicts the cell's cache slot, e.g. after its
// value was edited outside the change-notification stream.
func (e *Engine) InvalidateCell(row, col int) {
	e.cache.invalidate(CellAddress{Row: row, Col: col}, e.evict)
	e.Render()
}

// CellCache reads the cell's render-cache slot.
func (e *Engine) CellCache(addr CellAddress) (interface{}, bool) {
	return e.cache.get(addr)
}

// SetCellCache stores an opaque value in the cell's render-cache slot
// on behalf of the named renderer.
func (e *Engine) SetCellCache(addr CellAddress, renderer string, v interface{}) {
	e.cache.put(addr, renderer, v)
}

// LastRenderContext returns the most recently committed frame
// snapshot, nil before the first draw.
func (e *Engine) LastRenderContext() *RenderContext { return e.lastCtx }

// Cleanup detaches the engine from its collaborators, stops pending
// animations and releases allocated images. The engine is unusable
// afterwards.
func (e *Engine) Cleanup() {
	if e.closed {
		return
	}
	e.closed = true
	e.stopAutoScroll()
	e.stopInertia()
	e.drag = nil
	e.focusAddr = nil
	e.src.RemoveObserver(e.observer)
	for _, img := range e.colorCache {
		img.Free()
	}
	e.colorCache = nil
	if e.selFill != nil {
		e.selFill.Free()
		e.selFill = nil
	}
	for i := range e.overlays {
		e.overlays[i].Handle.SetHidden(true)
	}
	e.overlays = nil
	e.lastCtx = nil
}

// refreshLayout recomputes the frozen-band partitioning and re-clamps
// the scroll offset after sizing, hidden state, frozen counts, zoom or
// the surface changed.
func (e *Engine) refreshLayout() {
	e.fixed = computeFixedAreas(e.src, e.opt.frozen)
	e.scroll.reclamp(e.scrollView(), e.fixed)
}

// viewContentSize is the viewport extent in content pixels under the
// current zoom.
func (e *Engine) viewContentSize() image.Point {
	return image.Pt(unscalePx(e.viewRect.Dx(), e.zoom), unscalePx(e.viewRect.Dy(), e.zoom))
}

// scrollView is the scrollable viewport extent: the viewport minus all
// frozen bands, clamped to zero.
func (e *Engine) scrollView() image.Point {
	v := e.viewContentSize()
	x := v.X - e.fixed.Left.PixelSize - e.fixed.Right.PixelSize
	y := v.Y - e.fixed.Top.PixelSize - e.fixed.Bottom.PixelSize
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return image.Pt(x, y)
}

func (e *Engine) defaultRowHeight() int {
	if n := e.src.RowCount(); n > 0 {
		for i := 0; i < n; i++ {
			if h := e.src.RowHeight(i); h > 0 {
				return h
			}
		}
	}
	return 20
}

func (e *Engine) evict(renderer string, addr CellAddress) {
	if r, ok := e.renderers[renderer]; ok {
		r.OnDisappear(addr)
	}
}

func unscalePx(v int, zoom float64) int {
	if zoom == 1.0 {
		return v
	}
	return int(float64(v) / zoom)
}

// gridObserver subscribes the engine to the content store's change
// notifications so cache entries are evicted proactively and the
// layout follows structural changes.
type gridObserver struct {
	e *Engine
}

func (o *gridObserver) RowsDeleting(start, count int) {
	o.e.cache.invalidateIf(func(a CellAddress) bool {
		return a.Row >= start
	}, o.e.evict)
	o.e.refreshLayout()
	o.e.Render()
}

func (o *gridObserver) ColsDeleting(start, count int) {
	o.e.cache.invalidateIf(func(a CellAddress) bool {
		return a.Col >= start
	}, o.e.evict)
	o.e.refreshLayout()
	o.e.Render()
}

func (o *gridObserver) RowsHidden(start, count int) {
	o.e.cache.invalidateIf(func(a CellAddress) bool {
		return a.Row >= start && a.Row < start+count
	}, o.e.evict)
	o.e.refreshLayout()
	o.e.Render()
}

func (o *gridObserver) ColsHidden(start, count int) {
	o.e.cache.invalidateIf(func(a CellAddress) bool {
		return a.Col >= start && a.Col < start+count
	}, o.e.evict)
	o.e.refreshLayout()
	o.e.Render()
}

func (o *gridObserver) CellChanged(row, col int) {
	o.e.cache.invalidate(CellAddress{Row: row, Col: col}, o.e.evict)
	o.e.Render()
}
