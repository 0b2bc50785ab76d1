package cellgrid

import (
	"time"

	"github.com/bennyboer/cellgrid/draw"
)

// Option handling per
// https://commandcenter.blogspot.ca/2014/01/self-referential-functions-and-design.html

// OptionClosure configures an Engine at construction time.
type OptionClosure func(*Engine, *optioncontext)

// optioncontext aggregates knowledge about one-time updates that
// should happen once after all options are applied.
type optioncontext struct {
	relayout bool // fixed areas and scroll clamp need recomputing
}

type options struct {
	frozen FrozenCounts

	resizableRows int
	resizableCols int

	resizeThreshold   int
	selectionInset    int
	scrollbarWidth    int
	minThumbLen       int
	copyHandleSize    int
	wheelRows         int
	copyWarnThreshold int
	throttleInterval  time.Duration

	confirmer Confirmer
	clock     func() time.Time
}

func defaultOptions() options {
	return options{
		resizeThreshold:   4,
		selectionInset:    1,
		scrollbarWidth:    10,
		minThumbLen:       16,
		copyHandleSize:    7,
		wheelRows:         3,
		copyWarnThreshold: 10000,
		throttleInterval:  16 * time.Millisecond,
		clock:             time.Now,
	}
}

// Option applies the given options and returns the aggregate context.
func (e *Engine) Option(opts ...OptionClosure) *optioncontext {
	ctx := &optioncontext{}
	for _, opt := range opts {
		opt(e, ctx)
	}
	if ctx.relayout {
		e.refreshLayout()
	}
	return ctx
}

// OptFrozen sets the frozen row/column counts per edge. The engine
// renders top and left bands only; bottom and right counts are
// accepted for interface symmetry but clamped to zero, so the body
// always reaches the viewport's bottom-right corner.
func OptFrozen(topRows, bottomRows, leftCols, rightCols int) OptionClosure {
	return func(e *Engine, ctx *optioncontext) {
		e.opt.frozen = FrozenCounts{
			TopRows:  topRows,
			LeftCols: leftCols,
		}
		ctx.relayout = true
	}
}

// OptResizable limits interactive resizing to the first rows rows and
// cols columns. Zero disables resizing on that axis.
func OptResizable(rows, cols int) OptionClosure {
	return func(e *Engine, ctx *optioncontext) {
		e.opt.resizableRows = rows
		e.opt.resizableCols = cols
	}
}

// OptResizeThreshold sets the pixel distance from a boundary within
// which a press starts a resize drag.
func OptResizeThreshold(px int) OptionClosure {
	return func(e *Engine, ctx *optioncontext) { e.opt.resizeThreshold = px }
}

// OptSelectionInset sets the symmetric pixel inset applied to drawn
// selection rectangles so adjacent strokes don't merge.
func OptSelectionInset(px int) OptionClosure {
	return func(e *Engine, ctx *optioncontext) { e.opt.selectionInset = px }
}

// OptScrollbar sets the scrollbar width and minimum thumb length.
func OptScrollbar(width, minThumb int) OptionClosure {
	return func(e *Engine, ctx *optioncontext) {
		e.opt.scrollbarWidth = width
		e.opt.minThumbLen = minThumb
	}
}

// OptWheelRows sets how many rows one wheel notch scrolls.
func OptWheelRows(n int) OptionClosure {
	return func(e *Engine, ctx *optioncontext) { e.opt.wheelRows = n }
}

// OptCopyWarnThreshold sets the cell count above which a copy asks the
// confirmer first. Zero disables the warning.
func OptCopyWarnThreshold(cells int) OptionClosure {
	return func(e *Engine, ctx *optioncontext) { e.opt.copyWarnThreshold = cells }
}

// OptConfirmer installs the embedder's yes/no prompt.
func OptConfirmer(c Confirmer) OptionClosure {
	return func(e *Engine, ctx *optioncontext) { e.opt.confirmer = c }
}

// OptThrottleInterval sets the window for high-rate input coalescing
// (wheel, resize notifications).
func OptThrottleInterval(d time.Duration) OptionClosure {
	return func(e *Engine, ctx *optioncontext) {
		e.opt.throttleInterval = d
		e.wheel.interval = d
		e.resizeNotify.interval = d
	}
}

// OptBorders sets the border store. The engine draws no borders
// without one.
func OptBorders(b BorderStore) OptionClosure {
	return func(e *Engine, ctx *optioncontext) { e.borders = b }
}

// OptClock overrides the time source, for tests.
func OptClock(now func() time.Time) OptionClosure {
	return func(e *Engine, ctx *optioncontext) { e.opt.clock = now }
}

// OptTarget redirects drawing to an image other than the display's
// screen image.
func OptTarget(img draw.Image) OptionClosure {
	return func(e *Engine, ctx *optioncontext) {
		e.screen = img
		e.viewRect = img.R()
		ctx.relayout = true
	}
}
