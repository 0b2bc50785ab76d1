package cellgrid

import "image"

// Scrollbar geometry. Bars overlay the scrollable band: the vertical
// bar hugs the viewport's right edge below the frozen-rows band, the
// horizontal bar hugs the bottom edge right of the frozen-columns
// band. Thumb extent is proportional to the visible share of the
// scrollable content; an axis that cannot scroll has no bar.
func (e *Engine) scrollbarGeometry() ScrollbarGeometry {
	var g ScrollbarGeometry
	vr := e.viewRect
	w := e.opt.scrollbarWidth
	view := e.scrollView()
	max := e.scroll.maxOffset(view, e.fixed)
	topPx := scalePx(e.fixed.Top.PixelSize, e.zoom)
	leftPx := scalePx(e.fixed.Left.PixelSize, e.zoom)

	if max.Y > 0 {
		track := image.Rect(vr.Max.X-w, vr.Min.Y+topPx, vr.Max.X, vr.Max.Y)
		g.Vertical = &ScrollbarInfo{
			Track: track,
			Thumb: thumbRect(track, false, e.scroll.offset.Y, max.Y, scalePx(view.Y, e.zoom), e.opt.minThumbLen),
		}
	}
	if max.X > 0 {
		track := image.Rect(vr.Min.X+leftPx, vr.Max.Y-w, vr.Max.X, vr.Max.Y)
		g.Horizontal = &ScrollbarInfo{
			Track: track,
			Thumb: thumbRect(track, true, e.scroll.offset.X, max.X, scalePx(view.X, e.zoom), e.opt.minThumbLen),
		}
	}
	return g
}

// thumbRect positions the thumb inside the track. viewLen is the
// visible extent of the axis in surface pixels and max the scroll
// clamp limit.
func thumbRect(track image.Rectangle, horizontal bool, offset, max, viewLen, minLen int) image.Rectangle {
	trackLen := track.Dy()
	if horizontal {
		trackLen = track.Dx()
	}
	contentLen := viewLen + max
	thumbLen := trackLen
	if contentLen > 0 {
		thumbLen = trackLen * viewLen / contentLen
	}
	if thumbLen < minLen {
		thumbLen = minLen
	}
	if thumbLen > trackLen {
		thumbLen = trackLen
	}
	pos := 0
	if max > 0 {
		pos = (trackLen - thumbLen) * offset / max
	}
	if horizontal {
		return image.Rect(track.Min.X+pos, track.Min.Y, track.Min.X+pos+thumbLen, track.Max.Y)
	}
	return image.Rect(track.Min.X, track.Min.Y+pos, track.Max.X, track.Min.Y+pos+thumbLen)
}

// offsetForThumb inverts thumbRect: given a desired thumb position it
// returns the scroll offset that places it there.
func offsetForThumb(track image.Rectangle, horizontal bool, thumbMin, thumbLen, max int) int {
	trackLen := track.Dy()
	start := track.Min.Y
	if horizontal {
		trackLen = track.Dx()
		start = track.Min.X
	}
	span := trackLen - thumbLen
	if span <= 0 {
		return 0
	}
	return clamp((thumbMin-start)*max/span, 0, max)
}

// hitScrollbar reports the bar under pt, if any.
func (ctx *RenderContext) hitScrollbar(pt image.Point) (sb *ScrollbarInfo, horizontal, ok bool) {
	if v := ctx.Scrollbars.Vertical; v != nil && pt.In(v.Track) {
		return v, false, true
	}
	if h := ctx.Scrollbars.Horizontal; h != nil && pt.In(h.Track) {
		return h, true, true
	}
	return nil, false, false
}
