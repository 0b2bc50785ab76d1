package cellgrid

import "time"

// RefreshSource delivers display-refresh callbacks. The production
// source is driven by the embedder's event loop (one callback per
// refresh tick); tests substitute a manually stepped fake. Callbacks
// must be invoked on the same goroutine that feeds input events.
type RefreshSource interface {
	RequestFrame(f func(now time.Time))
}

// frameScheduler coalesces repaint requests: any number of requests
// between two refresh callbacks collapse into one draw. Because the
// render context is built inside the callback, a request arriving
// while a draw is already scheduled supersedes the stale context
// rather than duplicating the draw.
type frameScheduler struct {
	refresh   RefreshSource
	draw      func(now time.Time)
	scheduled bool
	after     []func()
}

func (s *frameScheduler) request() {
	if s.scheduled {
		return
	}
	s.scheduled = true
	s.refresh.RequestFrame(func(now time.Time) {
		s.scheduled = false
		s.draw(now)
		post := s.after
		s.after = nil
		for _, f := range post {
			f()
		}
	})
}

// afterNextFrame runs f once after the next completed draw. Used for
// focus transfer that must wait until an overlay's host surface exists
// in the layout.
func (s *frameScheduler) afterNextFrame(f func()) {
	s.after = append(s.after, f)
	s.request()
}

// throttle limits a high-rate input class to one action per interval
// with trailing semantics: the last call inside a window wins and runs
// when the window elapses.
type throttle struct {
	interval time.Duration
	refresh  RefreshSource

	last    time.Time
	pending func()
	armed   bool
}

func (t *throttle) call(now time.Time, f func()) {
	if t.interval <= 0 || now.Sub(t.last) >= t.interval {
		t.last = now
		t.pending = nil
		f()
		return
	}
	t.pending = f
	if !t.armed {
		t.armed = true
		t.refresh.RequestFrame(t.tick)
	}
}

func (t *throttle) tick(now time.Time) {
	if t.pending == nil {
		t.armed = false
		return
	}
	if now.Sub(t.last) >= t.interval {
		f := t.pending
		t.pending = nil
		t.armed = false
		t.last = now
		f()
		return
	}
	t.refresh.RequestFrame(t.tick)
}

// animation is a self-rescheduling per-refresh step function. The step
// returns false to finish; Stop cancels it from outside, e.g. when the
// owning gesture ends or the animated cell leaves the viewport.
type animation struct {
	stopped bool
}

func (a *animation) Stop() { a.stopped = true }

func (e *Engine) startAnimation(step func(now time.Time) bool) *animation {
	a := &animation{}
	var tick func(now time.Time)
	tick = func(now time.Time) {
		if a.stopped || e.closed {
			return
		}
		if !step(now) {
			a.stopped = true
			return
		}
		e.refresh.RequestFrame(tick)
	}
	e.refresh.RequestFrame(tick)
	return a
}
