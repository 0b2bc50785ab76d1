// Command griddemo opens a window showing a 100x100 grid with frozen
// rows and columns, merged cells, per-cell borders and a checkbox
// column. It exists to exercise the engine against a real display.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/bennyboer/cellgrid"
	"github.com/bennyboer/cellgrid/draw"
	"github.com/bennyboer/cellgrid/grid"
	"github.com/bennyboer/cellgrid/renderers"
)

var winsize = flag.String("W", "800x600", "window size")

// loopRefresh delivers frame callbacks through the main event loop so
// that drawing stays on the loop goroutine.
type loopRefresh struct {
	c chan func(now time.Time)
}

func (r *loopRefresh) RequestFrame(f func(now time.Time)) {
	select {
	case r.c <- f:
	default:
		// A frame is already queued; the scheduler coalesces.
	}
}

func main() {
	flag.Parse()
	draw.Main(func(dev *draw.Device) {
		errch := make(chan error)
		display, err := dev.NewDisplay(errch, "", "griddemo", *winsize)
		if err != nil {
			log.Fatalf("can't open display: %v", err)
		}
		if err := display.Attach(draw.Refnone); err != nil {
			log.Fatalf("can't attach to window: %v", err)
		}

		mousectl := display.InitMouse()
		keyboardctl := display.InitKeyboard()

		src := buildSource()
		sel := grid.NewMemSelection(src)
		borders := grid.NewMemBorders(&cellgrid.BorderSide{Color: 0xE0E0E0FF, Width: 1})
		borders.SetCellBorder(2, 2, cellgrid.CellBorder{
			Bottom: &cellgrid.BorderSide{Color: 0xFF0000FF, Width: 3, Priority: 5},
		})

		refresh := &loopRefresh{c: make(chan func(now time.Time), 1)}
		engine := cellgrid.New(display, src, sel, refresh,
			cellgrid.OptFrozen(1, 0, 1, 0),
			cellgrid.OptResizable(100, 100),
			cellgrid.OptBorders(borders),
		)
		engine.RegisterCellRenderer(renderers.NewText())
		engine.RegisterCellRenderer(renderers.NewCheckbox())
		engine.RequestFocus()
		engine.Render()

		for {
			select {
			case err := <-errch:
				log.Fatalf("display error: %v", err)
			case <-mousectl.Resize:
				if err := display.Attach(draw.Refnone); err != nil {
					log.Fatalf("can't reattach to window: %v", err)
				}
				engine.NotifyResize(display.ScreenImage())
			case m := <-mousectl.C:
				mousectl.Mouse = m
				engine.HandleMouse(m.Point, m.Buttons, m.Msec)
			case r := <-keyboardctl.C:
				if r == ' ' {
					engine.SetPanModifier(true)
					continue
				}
				engine.SetPanModifier(false)
				engine.KeyDown(&cellgrid.KeyEvent{Rune: r})
				engine.KeyUp(&cellgrid.KeyEvent{Rune: r})
			case f := <-refresh.c:
				f(time.Now())
			}
		}
	})
}

func buildSource() *grid.MemSource {
	src := grid.NewMemSource(100, 100, 22, 90, "text")
	for col := 0; col < 100; col++ {
		src.SetCellValue(0, col, fmt.Sprintf("Col %d", col))
	}
	for row := 1; row < 100; row++ {
		src.SetCellValue(row, 0, fmt.Sprintf("Row %d", row))
		for col := 1; col < 99; col++ {
			src.SetCellValue(row, col, fmt.Sprintf("%d/%d", row, col))
		}
		src.SetRendererName(row, 99, "checkbox")
		src.SetCellValue(row, 99, row%3 == 0)
	}
	src.AddMerge(cellgrid.CellRange{StartRow: 4, EndRow: 6, StartCol: 2, EndCol: 3})
	return src
}
