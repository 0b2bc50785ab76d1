package cellgrid

import (
	"image"
	"log"
	"sort"
	"time"

	"github.com/bennyboer/cellgrid/draw"
)

// The draw pass. One frame paints, per region: background, selection
// fills, the renderer-grouped cells, then borders; selection strokes,
// the copy handle, the resize guide and the scrollbars go on top. The
// body is painted first and the corner last so frozen bands always
// cover body cells that reach under them.

const (
	colorGridLine   = draw.Color(0xDDDDDDFF)
	colorSelStroke  = draw.Color(0x2196F3FF)
	colorSelBlurred = draw.Color(0x9E9E9EFF)
	colorTrack      = draw.Color(0xF2F2F2FF)
	colorThumb      = draw.Color(0xBDBDBDFF)
	colorGuide      = draw.Color(0x616161FF)
)

var paintOrder = []RegionKind{RegionBody, RegionFrozenCols, RegionFrozenRows, RegionCorner}

// paintFrame builds a fresh render context and draws it; the previous
// frame's context is superseded wholesale. After a successful draw the
// overlays are re-synced against the new scroll and zoom state.
func (e *Engine) paintFrame(now time.Time) {
	if e.closed {
		return
	}
	ctx := e.buildRenderContext()
	e.drawContext(ctx)
	if err := e.display.Flush(); err != nil {
		log.Printf("cellgrid: display flush: %v", err)
	}
	prevScroll := image.Point{}
	if e.lastCtx != nil {
		prevScroll = e.lastCtx.Scroll
	}
	e.lastCtx = ctx
	if e.overlaysDirty || ctx.Scroll != prevScroll {
		e.layoutOverlays()
	}
}

func (e *Engine) drawContext(ctx *RenderContext) {
	e.screen.Draw(e.viewRect, e.display.White(), nil, image.ZP)

	names := ctx.rendererNames()
	for _, name := range names {
		ctx.Renderer(name).BeforeFrame(ctx)
	}
	for _, kind := range paintOrder {
		area := ctx.Areas[kind]
		if area == nil {
			continue
		}
		e.drawArea(ctx, area)
	}
	for _, name := range names {
		ctx.Renderer(name).AfterFrame(ctx)
	}

	e.drawBorders(ctx)
	e.drawSelectionStrokes(ctx)
	e.drawScrollbars(ctx)
	if ctx.Guide != nil {
		e.drawGuide(ctx.Guide)
	}
}

func (e *Engine) drawArea(ctx *RenderContext, area *CellAreaRenderContext) {
	e.screen.Draw(area.Bounds, e.display.White(), nil, image.ZP)

	// Selection fills go under the cells of their region. The primary
	// selection's fill is the donut around the anchor.
	for _, sel := range ctx.Selections {
		if sel.Region != area.Kind {
			continue
		}
		fill := e.selectionFill()
		if sel.Primary {
			for _, r := range donutRects(sel.Bounds, sel.Anchor) {
				e.screen.Draw(r.Intersect(area.Bounds), fill, nil, image.ZP)
			}
		} else {
			e.screen.Draw(sel.Bounds.Intersect(area.Bounds), fill, nil, image.ZP)
		}
	}

	names := make([]string, 0, len(area.CellsByRenderer))
	for name := range area.CellsByRenderer {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r := ctx.Renderer(name)
		for _, cell := range area.CellsByRenderer[name] {
			r.Render(e.screen, cell, ctx)
		}
	}
}

func (e *Engine) drawBorders(ctx *RenderContext) {
	for _, info := range ctx.Borders {
		b := info.CellBounds
		if s := info.Border.Top; s != nil {
			e.drawBorderLine(
				image.Pt(b.Min.X-info.TopInset[0], b.Min.Y),
				image.Pt(b.Max.X+info.TopInset[1], b.Min.Y), s)
		}
		if s := info.Border.Bottom; s != nil {
			e.drawBorderLine(
				image.Pt(b.Min.X-info.BottomInset[0], b.Max.Y),
				image.Pt(b.Max.X+info.BottomInset[1], b.Max.Y), s)
		}
		if s := info.Border.Left; s != nil {
			e.drawBorderLine(
				image.Pt(b.Min.X, b.Min.Y-info.LeftInset[0]),
				image.Pt(b.Min.X, b.Max.Y+info.LeftInset[1]), s)
		}
		if s := info.Border.Right; s != nil {
			e.drawBorderLine(
				image.Pt(b.Max.X, b.Min.Y-info.RightInset[0]),
				image.Pt(b.Max.X, b.Max.Y+info.RightInset[1]), s)
		}
	}
}

func (e *Engine) drawBorderLine(p0, p1 image.Point, s *BorderSide) {
	radius := 0
	if s.Width > 1 {
		radius = (s.Width - 1) / 2
	}
	e.screen.Line(p0, p1, 0, 0, radius, e.color(s.Color), image.ZP)
}

func (e *Engine) drawSelectionStrokes(ctx *RenderContext) {
	stroke := colorSelStroke
	if !ctx.Focused {
		stroke = colorSelBlurred
	}
	for _, sel := range ctx.Selections {
		width := 1
		if sel.Primary {
			width = 2
		}
		e.screen.Border(sel.Bounds, width, e.color(stroke), image.ZP)
		if sel.Primary && sel.CopyHandle {
			h := copyHandleRect(sel.Bounds, scalePx(e.opt.copyHandleSize, e.zoom))
			e.screen.Draw(h, e.color(stroke), nil, image.ZP)
			e.screen.Border(h, 1, e.display.White(), image.ZP)
		}
	}
}

func (e *Engine) drawScrollbars(ctx *RenderContext) {
	for _, sb := range []*ScrollbarInfo{ctx.Scrollbars.Vertical, ctx.Scrollbars.Horizontal} {
		if sb == nil {
			continue
		}
		e.screen.Draw(sb.Track, e.color(colorTrack), nil, image.ZP)
		e.screen.Draw(sb.Thumb, e.color(colorThumb), nil, image.ZP)
	}
}

func (e *Engine) drawGuide(g *ResizeGuide) {
	vr := e.viewRect
	if g.Vertical {
		e.screen.Line(image.Pt(g.Position, vr.Min.Y), image.Pt(g.Position, vr.Max.Y), 0, 0, 0, e.color(colorGuide), image.ZP)
	} else {
		e.screen.Line(image.Pt(vr.Min.X, g.Position), image.Pt(vr.Max.X, g.Position), 0, 0, 0, e.color(colorGuide), image.ZP)
	}
}

// Color returns a cached solid-color image, for renderers painting
// with the engine's display.
func (e *Engine) Color(c draw.Color) draw.Image { return e.color(c) }

// color returns a cached 1×1 replicated image for c.
func (e *Engine) color(c draw.Color) draw.Image {
	if img, ok := e.colorCache[c]; ok {
		return img
	}
	img, err := e.display.AllocImage(image.Rect(0, 0, 1, 1), e.screen.Pix(), true, c)
	if err != nil {
		log.Panicf("cellgrid: color alloc: %v", err)
	}
	if e.colorCache == nil {
		e.colorCache = make(map[draw.Color]draw.Image)
	}
	e.colorCache[c] = img
	return img
}

// selectionFill is the pale highlight mixed the way the draw library
// blends pale tones.
func (e *Engine) selectionFill() draw.Image {
	if e.selFill == nil {
		e.selFill = e.display.AllocImageMix(draw.Palebluegreen, draw.White)
	}
	return e.selFill
}

// rendererNames returns the sorted set of renderer names with cells in
// this frame.
func (ctx *RenderContext) rendererNames() []string {
	set := make(map[string]bool)
	for _, area := range ctx.Areas {
		if area == nil {
			continue
		}
		for name := range area.CellsByRenderer {
			set[name] = true
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
