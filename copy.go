package cellgrid

import (
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"
)

// Copy path. The primary selection becomes a markup table built from
// each cell's CopyValue. Selections above the configured cell-count
// threshold are a soft condition: the embedder's confirmer is asked
// first, and a missing answer counts as a decline after a minute.

const copyConfirmTimeout = 60 * time.Second

// CopySelection copies the primary selection to the clipboard and the
// display snarf buffer. It reports whether a copy actually happened.
func (e *Engine) CopySelection() bool {
	if e.sel == nil {
		return false
	}
	primary, ok := e.sel.Primary()
	if !ok {
		return false
	}
	rng := primary.Range.ClampTo(e.src.RowCount(), e.src.ColCount())

	if n := rng.CellCount(); e.opt.copyWarnThreshold > 0 && n > e.opt.copyWarnThreshold {
		if !e.confirmCopy(n) {
			return false
		}
	}

	table := e.buildCopyTable(rng)
	if err := clipboard.WriteAll(table); err != nil {
		log.Printf("cellgrid: clipboard write failed: %v", err)
	}
	if e.display != nil {
		if err := e.display.WriteSnarf([]byte(table)); err != nil {
			log.Printf("cellgrid: snarf write failed: %v", err)
		}
	}
	return true
}

// confirmCopy asks the embedder whether an oversized copy should
// proceed. No confirmer, no answer, or a timeout all decline.
func (e *Engine) confirmCopy(cells int) bool {
	if e.opt.confirmer == nil {
		return false
	}
	msg := fmt.Sprintf("copy %d cells to the clipboard?", cells)
	select {
	case ok := <-e.opt.confirmer.Confirm(msg):
		return ok
	case <-time.After(copyConfirmTimeout):
		return false
	}
}

// buildCopyTable renders the range as an HTML table so spreadsheet
// targets keep the cell structure. Merged cells span; covered cells
// are skipped.
func (e *Engine) buildCopyTable(rng CellRange) string {
	var b strings.Builder
	b.WriteString("<table>")
	for row := rng.StartRow; row <= rng.EndRow; row++ {
		b.WriteString("<tr>")
		for col := rng.StartCol; col <= rng.EndCol; col++ {
			merge, merged := e.src.MergeAt(row, col)
			if merged && (merge.StartRow != row || merge.StartCol != col) {
				continue
			}
			b.WriteString("<td")
			if merged {
				if rs := merge.Rows(); rs > 1 {
					fmt.Fprintf(&b, " rowspan=%q", fmt.Sprint(rs))
				}
				if cs := merge.Cols(); cs > 1 {
					fmt.Fprintf(&b, " colspan=%q", fmt.Sprint(cs))
				}
			}
			b.WriteString(">")
			b.WriteString(html.EscapeString(e.copyValue(row, col)))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String()
}

func (e *Engine) copyValue(row, col int) string {
	name := e.src.RendererName(row, col)
	r, ok := e.renderers[name]
	if !ok {
		panic("cellgrid: no renderer registered under " + name)
	}
	merge, merged := e.src.MergeAt(row, col)
	if !merged {
		merge = SingleCell(row, col)
	}
	return r.CopyValue(Cell{
		Row:   row,
		Col:   col,
		Value: e.src.CellValue(row, col),
		Merge: merge,
	})
}
