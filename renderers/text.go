// Package renderers provides the built-in cell renderers: plain text
// and a clickable checkbox.
package renderers

import (
	"fmt"
	"image"

	"github.com/bennyboer/cellgrid"
	"github.com/bennyboer/cellgrid/draw"
)

const textPadding = 4

// textMetrics is the per-cell cache payload: the string that was
// measured and its width in the engine font.
type textMetrics struct {
	text  string
	width int
}

// Text renders a cell's value as a single line of text. Measured
// widths are kept in the engine's render cache so that scrolling the
// same cells back into view does not re-measure them.
type Text struct {
	e *cellgrid.Engine
}

var _ = cellgrid.CellRenderer((*Text)(nil))

func NewText() *Text { return &Text{} }

func (t *Text) Initialize(e *cellgrid.Engine) { t.e = e }

func (t *Text) Name() string { return "text" }

func (t *Text) BeforeFrame(ctx *cellgrid.RenderContext) {}
func (t *Text) AfterFrame(ctx *cellgrid.RenderContext)  {}

func (t *Text) Render(target draw.Image, cell cellgrid.Cell, ctx *cellgrid.RenderContext) {
	s := valueString(cell.Value)
	if s == "" {
		return
	}
	m := t.metrics(cell.Address(), s)

	font := t.e.Font()
	pad := ctx.Scale(textPadding)
	avail := cell.Bounds.Dx() - 2*pad
	if avail <= 0 {
		return
	}
	if m.width > avail {
		s = truncate(font, s, avail)
	}
	pt := image.Pt(cell.Bounds.Min.X+pad, cell.Bounds.Min.Y+(cell.Bounds.Dy()-font.Height())/2)
	target.String(pt, t.e.Color(draw.Black), image.ZP, font, s)
}

func (t *Text) CopyValue(cell cellgrid.Cell) string {
	return valueString(cell.Value)
}

// OnDisappear has nothing to release; the measurement lives in the
// engine's cache, which evicts the slot itself.
func (t *Text) OnDisappear(addr cellgrid.CellAddress) {}

func (t *Text) PreferredSize(cell cellgrid.Cell) (image.Point, bool) {
	s := valueString(cell.Value)
	if s == "" {
		return image.Point{}, false
	}
	m := t.metrics(cell.Address(), s)
	return image.Pt(m.width+2*textPadding, t.e.Font().Height()+2*textPadding), true
}

// metrics returns the cached measurement for addr, re-measuring when
// the cell's text changed since it was cached.
func (t *Text) metrics(addr cellgrid.CellAddress, s string) textMetrics {
	if v, ok := t.e.CellCache(addr); ok {
		if m, ok := v.(textMetrics); ok && m.text == s {
			return m
		}
	}
	m := textMetrics{text: s, width: t.e.Font().StringWidth(s)}
	t.e.SetCellCache(addr, t.Name(), m)
	return m
}

// truncate trims s until it fits in w pixels of f.
func truncate(f draw.Font, s string, w int) string {
	r := []rune(s)
	for len(r) > 0 && f.RunesWidth(r) > w {
		r = r[:len(r)-1]
	}
	return string(r)
}

func valueString(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
