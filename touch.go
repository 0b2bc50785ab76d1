package cellgrid

import (
	"image"
	"math"
	"time"
)

// Touch gestures. A single finger pans the viewport and degrades to a
// tap-select when it never moved; a second finger turns the gesture
// into a pinch zoom. On release a fast pan continues with inertia
// until friction brings it to rest or new input interrupts it.

const (
	tapSlop          = 8    // max movement in surface px for a tap
	inertiaMinSpeed  = 0.05 // px/ms below which inertia stops
	inertiaFriction  = 0.95 // per-step velocity retention
	minInertiaLaunch = 0.3  // px/ms needed to launch inertia
)

// HandleTouch feeds one touch event. Touch gestures and mouse drags
// share the single-active-drag rule.
func (e *Engine) HandleTouch(ev *TouchEvent) {
	switch ev.Phase {
	case TouchBegin:
		e.touchBegin(ev)
	case TouchMove:
		e.touchMove(ev)
	case TouchEnd:
		e.touchEnd(ev)
	}
}

func (e *Engine) touchBegin(ev *TouchEvent) {
	e.stopInertia()
	switch {
	case len(ev.Points) >= 2:
		// A second finger upgrades an in-flight pan.
		e.drag = &touchZoom{
			startDist: dist(ev.Points[0], ev.Points[1]),
			startZoom: e.zoom,
		}
	case len(ev.Points) == 1:
		if e.drag != nil {
			return
		}
		e.drag = &touchPanDrag{
			start:       ev.Points[0],
			last:        ev.Points[0],
			lastMsec:    ev.Msec,
			startOffset: e.scroll.offset,
		}
	}
}

func (e *Engine) touchMove(ev *TouchEvent) {
	switch d := e.drag.(type) {
	case *touchPanDrag:
		if len(ev.Points) == 0 {
			return
		}
		d.move(e, ev.Points[0], ev.Msec)
	case *touchZoom:
		if len(ev.Points) < 2 {
			return
		}
		d.move(e, ev.Points[0], ev.Points[1])
	}
}

func (e *Engine) touchEnd(ev *TouchEvent) {
	switch d := e.drag.(type) {
	case *touchPanDrag:
		e.drag = nil
		d.finish(e)
	case *touchZoom:
		e.drag = nil
	}
}

// touchPanDrag pans with one finger, tracking velocity for the
// inertial follow-through.
type touchPanDrag struct {
	start       image.Point
	startOffset image.Point
	last        image.Point
	lastMsec    uint32
	moved       bool
	vx, vy      float64 // surface px per ms, smoothed
}

func (d *touchPanDrag) move(e *Engine, pt image.Point, msec uint32) {
	if !d.moved && abs(pt.X-d.start.X) <= tapSlop && abs(pt.Y-d.start.Y) <= tapSlop {
		return
	}
	d.moved = true

	if dt := float64(msec - d.lastMsec); dt > 0 {
		nvx := float64(d.last.X-pt.X) / dt
		nvy := float64(d.last.Y-pt.Y) / dt
		d.vx = 0.7*d.vx + 0.3*nvx
		d.vy = 0.7*d.vy + 0.3*nvy
	}
	d.last = pt
	d.lastMsec = msec

	dx := unscalePx(d.start.X-pt.X, e.zoom)
	dy := unscalePx(d.start.Y-pt.Y, e.zoom)
	if e.scroll.scrollTo(d.startOffset.X+dx, d.startOffset.Y+dy, e.scrollView(), e.fixed) {
		e.Render()
	}
}

// Touch gestures occupy the shared drag slot, so mouse samples that
// arrive mid-gesture route here like any other drag.
func (d *touchPanDrag) update(e *Engine, ev *MouseEvent) { d.move(e, ev.Point, ev.Msec) }
func (d *touchPanDrag) end(e *Engine, ev *MouseEvent)    { d.finish(e) }

// finish degrades to a tap-select when no movement happened, else
// launches inertia if the finger was still moving.
func (d *touchPanDrag) finish(e *Engine) {
	if !d.moved {
		a := e.cellAddrAt(d.start)
		rng := SingleCell(a.Row, a.Col)
		if m, ok := e.src.MergeAt(a.Row, a.Col); ok {
			rng = m
			a = CellAddress{Row: m.StartRow, Col: m.StartCol}
		}
		e.sel.Set(Selection{Range: rng, Anchor: a})
		e.RequestFocus()
		e.Render()
		return
	}
	if math.Hypot(d.vx, d.vy) < minInertiaLaunch {
		return
	}
	vx, vy := d.vx, d.vy
	last := e.now()
	e.inertia = e.startAnimation(func(now time.Time) bool {
		dt := float64(now.Sub(last).Milliseconds())
		last = now
		if dt <= 0 {
			return true
		}
		dx := int(vx * dt)
		dy := int(vy * dt)
		vx *= math.Pow(inertiaFriction, dt/16)
		vy *= math.Pow(inertiaFriction, dt/16)
		moved := e.scroll.scrollBy(unscalePx(dx, e.zoom), unscalePx(dy, e.zoom), e.scrollView(), e.fixed)
		if moved {
			e.Render()
		}
		return moved && math.Hypot(vx, vy) >= inertiaMinSpeed
	})
}

func (e *Engine) stopInertia() {
	if e.inertia != nil {
		e.inertia.Stop()
		e.inertia = nil
	}
}

// touchZoom scales the zoom factor by the pinch distance ratio.
type touchZoom struct {
	startDist float64
	startZoom float64
}

// A pinch only reacts to paired touch points. Mouse samples routed
// through the drag slot carry one point, so they are ignored.
func (d *touchZoom) update(e *Engine, ev *MouseEvent) {}
func (d *touchZoom) end(e *Engine, ev *MouseEvent)    {}

func (d *touchZoom) move(e *Engine, p0, p1 image.Point) {
	if d.startDist <= 0 {
		return
	}
	e.SetZoom(d.startZoom * dist(p0, p1) / d.startDist)
}

func dist(a, b image.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
