package cellgrid

import "image"

// RegionKind names the four disjoint screen regions a frame is
// partitioned into.
type RegionKind int

const (
	RegionCorner RegionKind = iota
	RegionFrozenRows
	RegionFrozenCols
	RegionBody
	numRegions
)

func (k RegionKind) String() string {
	switch k {
	case RegionCorner:
		return "corner"
	case RegionFrozenRows:
		return "frozen-rows"
	case RegionFrozenCols:
		return "frozen-cols"
	case RegionBody:
		return "body"
	}
	return "unknown"
}

// CellAreaRenderContext is one visible region: its cell range, its
// pixel bounds on the surface, and the region's cells grouped by the
// renderer that draws them. Merged cells appear once, under the region
// containing their top-left visible corner, with bounds covering the
// full merge extent.
type CellAreaRenderContext struct {
	Kind            RegionKind
	Range           CellRange
	Bounds          image.Rectangle
	CellsByRenderer map[string][]Cell
}

// ScrollbarInfo is the track and thumb geometry of one scrollbar in
// surface pixels.
type ScrollbarInfo struct {
	Track image.Rectangle
	Thumb image.Rectangle
}

// ScrollbarGeometry carries the bars actually shown this frame; a nil
// bar means the axis does not scroll.
type ScrollbarGeometry struct {
	Horizontal *ScrollbarInfo
	Vertical   *ScrollbarInfo
}

// SelectionRenderInfo is one selection prepared for drawing. Anchor is
// only meaningful on the primary selection; it is always contained in
// Bounds. The primary selection's fill is drawn as up to four
// rectangles around the anchor so the anchor cell stays unfilled.
type SelectionRenderInfo struct {
	Region     RegionKind
	Bounds     image.Rectangle
	Anchor     image.Rectangle
	Primary    bool
	CopyHandle bool
}

// BorderInfo is the resolved border of one visible cell.
type BorderInfo struct {
	CellBounds image.Rectangle
	Border     CellBorder

	// Per-edge endpoint insets where a perpendicular border of a
	// different width crosses, indexed like the edges: top, left,
	// right, bottom; each [2]int is {start, end}.
	TopInset    [2]int
	LeftInset   [2]int
	RightInset  [2]int
	BottomInset [2]int
}

// ResizeGuide is the guide line drawn during a row/column resize drag.
type ResizeGuide struct {
	Vertical bool
	Position int // surface x for a column guide, surface y for a row guide
}

// RenderContext is the immutable snapshot everything in one frame is
// drawn from. It is rebuilt wholesale each frame; renderers must not
// retain it across frames.
type RenderContext struct {
	Focused     bool
	Viewport    image.Rectangle // surface pixels
	ContentSize image.Point     // content pixels
	Scroll      image.Point
	Zoom        float64
	Fixed       FixedAreas

	Areas [numRegions]*CellAreaRenderContext // nil when the region is empty

	Scrollbars ScrollbarGeometry
	Selections []SelectionRenderInfo
	Borders    []BorderInfo
	Guide      *ResizeGuide

	renderers map[string]CellRenderer
}

// Renderer returns the registered renderer for name, panicking on an
// unknown name: a cell referencing an unregistered renderer is a
// configuration error the engine cannot recover from.
func (ctx *RenderContext) Renderer(name string) CellRenderer {
	r, ok := ctx.renderers[name]
	if !ok {
		panic("cellgrid: no renderer registered under " + name)
	}
	return r
}

// CellAt returns the visible cell under the surface point, searching
// the frozen regions before the body so cells under a frozen band
// cannot be hit through it.
func (ctx *RenderContext) CellAt(pt image.Point) (Cell, bool) {
	for _, area := range ctx.Areas {
		if area == nil || !pt.In(area.Bounds) {
			continue
		}
		for _, cells := range area.CellsByRenderer {
			for _, c := range cells {
				if pt.In(c.Bounds) {
					return c, true
				}
			}
		}
	}
	return Cell{}, false
}

// Scale converts a content length to surface pixels under the
// context's zoom.
func (ctx *RenderContext) Scale(v int) int {
	return scalePx(v, ctx.Zoom)
}

func scalePx(v int, zoom float64) int {
	if zoom == 1.0 {
		return v
	}
	return int(float64(v)*zoom + 0.5)
}
