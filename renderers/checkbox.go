package renderers

import (
	"image"

	"github.com/bennyboer/cellgrid"
	"github.com/bennyboer/cellgrid/draw"
)

const checkboxSize = 12

// Checkbox renders a boolean cell as a clickable box. A mouse-down on
// the cell toggles the value and suppresses the engine's default
// selection handling for that click.
type Checkbox struct {
	e         *cellgrid.Engine
	listeners cellgrid.CellEventListeners
}

var _ = cellgrid.EventfulRenderer((*Checkbox)(nil))

func NewCheckbox() *Checkbox {
	c := &Checkbox{}
	c.listeners = cellgrid.CellEventListeners{
		MouseDown: c.mouseDown,
	}
	return c
}

func (c *Checkbox) Initialize(e *cellgrid.Engine) { c.e = e }

func (c *Checkbox) Name() string { return "checkbox" }

func (c *Checkbox) BeforeFrame(ctx *cellgrid.RenderContext) {}
func (c *Checkbox) AfterFrame(ctx *cellgrid.RenderContext)  {}

func (c *Checkbox) Render(target draw.Image, cell cellgrid.Cell, ctx *cellgrid.RenderContext) {
	box := c.boxRect(cell, ctx)
	target.Border(box, 1, c.e.Color(draw.Black), image.ZP)
	if checked(cell.Value) {
		target.Draw(box.Inset(2), c.e.Color(draw.Medblue), nil, image.ZP)
	}
}

func (c *Checkbox) CopyValue(cell cellgrid.Cell) string {
	if checked(cell.Value) {
		return "true"
	}
	return "false"
}

func (c *Checkbox) OnDisappear(addr cellgrid.CellAddress) {}

func (c *Checkbox) PreferredSize(cell cellgrid.Cell) (image.Point, bool) {
	return image.Pt(checkboxSize+2*textPadding, checkboxSize+2*textPadding), true
}

func (c *Checkbox) Listeners() *cellgrid.CellEventListeners { return &c.listeners }

func (c *Checkbox) mouseDown(cell cellgrid.Cell, ev *cellgrid.MouseEvent) {
	if ev.Buttons&cellgrid.Button1 == 0 {
		return
	}
	ctx := c.e.LastRenderContext()
	if ctx == nil || !ev.Point.In(c.boxRect(cell, ctx)) {
		return
	}
	ev.PreventDefault()
	c.e.DataSource().SetCellValue(cell.Row, cell.Col, !checked(cell.Value))
}

// boxRect centers the box in the cell.
func (c *Checkbox) boxRect(cell cellgrid.Cell, ctx *cellgrid.RenderContext) image.Rectangle {
	size := ctx.Scale(checkboxSize)
	min := image.Pt(
		cell.Bounds.Min.X+(cell.Bounds.Dx()-size)/2,
		cell.Bounds.Min.Y+(cell.Bounds.Dy()-size)/2,
	)
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(size, size))}
}

func checked(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}
