package cellgrid

import (
	"image"
	"time"
)

// Auto-scroll. While a selection or copy-handle drag holds the pointer
// outside the scrollable band, a self-rescheduling step scrolls toward
// the pointer with a speed proportional to how far outside it is, plus
// constant acceleration per second. The step stops when the computed
// delta reaches zero or the pointer re-enters the band.

const (
	autoScrollBase  = 0.02 // px/ms per px of overshoot
	autoScrollAccel = 0.5  // speed gain per second
)

type autoScroll struct {
	anim    *animation
	pointer image.Point
	speed   float64
	last    time.Time
}

// updateAutoScroll refreshes the auto-scroll sub-state from the
// current pointer position. Only selection-type drags auto-scroll.
func (e *Engine) updateAutoScroll(pt image.Point) {
	switch e.drag.(type) {
	case *selectionDrag, *copyHandleDrag:
	default:
		e.stopAutoScroll()
		return
	}

	band := e.bodyBounds()
	if pt.In(band) {
		e.stopAutoScroll()
		return
	}
	if e.auto == nil {
		a := &autoScroll{pointer: pt, speed: 1, last: e.now()}
		e.auto = a
		a.anim = e.startAnimation(func(now time.Time) bool {
			return e.autoScrollStep(now)
		})
		return
	}
	e.auto.pointer = pt
}

func (e *Engine) stopAutoScroll() {
	if e.auto == nil {
		return
	}
	e.auto.anim.Stop()
	e.auto = nil
}

// bodyBounds is the surface rectangle of the scrollable band.
func (e *Engine) bodyBounds() image.Rectangle {
	vr := e.viewRect
	return image.Rect(
		vr.Min.X+scalePx(e.fixed.Left.PixelSize, e.zoom),
		vr.Min.Y+scalePx(e.fixed.Top.PixelSize, e.zoom),
		vr.Max.X-scalePx(e.fixed.Right.PixelSize, e.zoom),
		vr.Max.Y-scalePx(e.fixed.Bottom.PixelSize, e.zoom),
	)
}

func (e *Engine) autoScrollStep(now time.Time) bool {
	a := e.auto
	if a == nil {
		return false
	}
	band := e.bodyBounds()
	over := overshoot(a.pointer, band)
	if over == (image.Point{}) {
		e.auto = nil
		return false
	}

	dt := float64(now.Sub(a.last).Milliseconds())
	if dt <= 0 {
		dt = 16
	}
	a.last = now
	a.speed += autoScrollAccel * dt / 1000

	dx := int(float64(over.X) * autoScrollBase * a.speed * dt)
	dy := int(float64(over.Y) * autoScrollBase * a.speed * dt)
	if dx == 0 && dy == 0 {
		e.auto = nil
		return false
	}
	if e.scroll.scrollBy(unscalePx(dx, e.zoom), unscalePx(dy, e.zoom), e.scrollView(), e.fixed) {
		// Keep the drag's selection pinned to the pointer while the
		// content slides underneath it.
		if d, ok := e.drag.(*selectionDrag); ok {
			target := e.cellAddrAt(clampPoint(a.pointer, band))
			d.last = target
			e.sel.UpdatePrimaryRange(rangeBetween(d.anchor, target))
		}
		if d, ok := e.drag.(*copyHandleDrag); ok {
			target := e.cellAddrAt(clampPoint(a.pointer, band))
			d.last = target
			e.sel.UpdatePrimaryRange(extendRange(d.base, target))
		}
		e.Render()
		return true
	}
	e.auto = nil
	return false
}

// overshoot is the signed distance of pt outside r, zero inside.
func overshoot(pt image.Point, r image.Rectangle) image.Point {
	var o image.Point
	if pt.X < r.Min.X {
		o.X = pt.X - r.Min.X
	} else if pt.X >= r.Max.X {
		o.X = pt.X - r.Max.X + 1
	}
	if pt.Y < r.Min.Y {
		o.Y = pt.Y - r.Min.Y
	} else if pt.Y >= r.Max.Y {
		o.Y = pt.Y - r.Max.Y + 1
	}
	return o
}

func clampPoint(pt image.Point, r image.Rectangle) image.Point {
	return image.Pt(clamp(pt.X, r.Min.X, r.Max.X-1), clamp(pt.Y, r.Min.Y, r.Max.Y-1))
}
