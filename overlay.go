package cellgrid

import "image"

// Overlays are non-cell UI (editors, dropdowns) hosted on positioned
// surfaces owned by the embedder. The engine only computes where they
// belong: screen placement is a pure function of the overlay's content
// bounds, the scroll offset, the frozen bands and the zoom factor. An
// overlay scrolled fully out of view is hidden, never destroyed.

// OverlayID names one registered overlay.
type OverlayID int

// Overlay pairs a host surface with its content-space bounds.
type Overlay struct {
	ID     OverlayID
	Handle OverlayHandle

	// ContentBounds is the overlay's rectangle in content pixels,
	// scrolled like a body cell.
	ContentBounds image.Rectangle
}

// AddOverlay registers an overlay and schedules its first layout.
// Focus transfer to the new surface is deferred by one frame so the
// host element exists in the embedder's layout tree first.
func (e *Engine) AddOverlay(h OverlayHandle, contentBounds image.Rectangle) OverlayID {
	e.nextOverlayID++
	id := e.nextOverlayID
	e.overlays = append(e.overlays, Overlay{ID: id, Handle: h, ContentBounds: contentBounds})
	e.overlaysDirty = true
	e.sched.afterNextFrame(h.Focus)
	e.Render()
	return id
}

// UpdateOverlay moves an overlay to new content bounds.
func (e *Engine) UpdateOverlay(id OverlayID, contentBounds image.Rectangle) bool {
	for i := range e.overlays {
		if e.overlays[i].ID == id {
			e.overlays[i].ContentBounds = contentBounds
			e.overlaysDirty = true
			e.Render()
			return true
		}
	}
	return false
}

// RemoveOverlay unregisters an overlay. The host surface is the
// embedder's to dispose.
func (e *Engine) RemoveOverlay(id OverlayID) bool {
	for i := range e.overlays {
		if e.overlays[i].ID == id {
			e.overlays = append(e.overlays[:i], e.overlays[i+1:]...)
			return true
		}
	}
	return false
}

// Overlays lists the registered overlays.
func (e *Engine) Overlays() []Overlay {
	out := make([]Overlay, len(e.overlays))
	copy(out, e.overlays)
	return out
}

// layoutOverlays repositions every overlay against the current scroll
// and zoom state. It runs after a completed draw whenever an overlay
// or the viewport moved.
func (e *Engine) layoutOverlays() {
	for i := range e.overlays {
		o := &e.overlays[i]
		visible, clip, ok := e.overlayPlacement(o.ContentBounds)
		if !ok {
			o.Handle.SetHidden(true)
			continue
		}
		o.Handle.SetHidden(false)
		o.Handle.SetPlacement(visible, clip, e.zoom)
	}
	e.overlaysDirty = false
}

// overlayPlacement maps content bounds to the on-screen visible
// rectangle and the clip within the overlay's own coordinate space.
// ok is false when nothing of the overlay is visible.
func (e *Engine) overlayPlacement(content image.Rectangle) (visible, clip image.Rectangle, ok bool) {
	// Overlays live in the scrollable band and are clipped by the
	// frozen-band boundaries.
	full := e.cellRectOnSurface(content)
	band := e.bodyBounds()
	visible = full.Intersect(band)
	if visible.Empty() {
		return image.Rectangle{}, image.Rectangle{}, false
	}
	// The clip is the visible part expressed in the overlay's own
	// (unzoomed) coordinates.
	clip = image.Rect(
		unscalePx(visible.Min.X-full.Min.X, e.zoom),
		unscalePx(visible.Min.Y-full.Min.Y, e.zoom),
		unscalePx(visible.Max.X-full.Min.X, e.zoom),
		unscalePx(visible.Max.Y-full.Min.Y, e.zoom),
	)
	return visible, clip, true
}

// cellRectOnSurface maps a content rectangle through the body region's
// transform (both axes scroll).
func (e *Engine) cellRectOnSurface(r image.Rectangle) image.Rectangle {
	vr := e.viewRect
	return image.Rect(
		vr.Min.X+scalePx(r.Min.X-e.scroll.offset.X, e.zoom),
		vr.Min.Y+scalePx(r.Min.Y-e.scroll.offset.Y, e.zoom),
		vr.Min.X+scalePx(r.Max.X-e.scroll.offset.X, e.zoom),
		vr.Min.Y+scalePx(r.Max.Y-e.scroll.offset.Y, e.zoom),
	)
}
