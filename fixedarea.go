package cellgrid

// FrozenCounts is the requested number of frozen rows or columns per
// grid edge.
type FrozenCounts struct {
	TopRows    int
	BottomRows int
	LeftCols   int
	RightCols  int
}

// FixedAreaInfo describes one frozen band. Count is the effective
// (clamped) number of frozen lines, BoundaryIndex the index of the
// first line past the band counted from its edge, and PixelSize the
// band's extent in content pixels. Hidden lines inside the band
// contribute zero size.
type FixedAreaInfo struct {
	Count         int
	BoundaryIndex int
	PixelSize     int
}

// FixedAreas is the partitioning of the grid's edges into frozen
// bands. When opposing bands overlap (top+bottom ≥ rows) the
// scrollable area degrades to empty; ScrollableRows/ScrollableCols
// report that as zero.
type FixedAreas struct {
	Top    FixedAreaInfo
	Bottom FixedAreaInfo
	Left   FixedAreaInfo
	Right  FixedAreaInfo
}

func (f FixedAreas) ScrollableRows() int {
	n := f.Top.BoundaryIndex
	if b := f.Bottom.BoundaryIndex; b > n {
		return b - n
	}
	return 0
}

func (f FixedAreas) ScrollableCols() int {
	n := f.Left.BoundaryIndex
	if b := f.Right.BoundaryIndex; b > n {
		return b - n
	}
	return 0
}

// computeFixedAreas partitions the grid per the requested frozen
// counts. It is a pure function of the request and the source's
// current sizing; callers recompute it whenever sizing, hidden state
// or the requested counts change.
func computeFixedAreas(src DataSource, req FrozenCounts) FixedAreas {
	rows := src.RowCount()
	cols := src.ColCount()

	top := clamp(req.TopRows, 0, rows)
	bottom := clamp(req.BottomRows, 0, rows)
	left := clamp(req.LeftCols, 0, cols)
	right := clamp(req.RightCols, 0, cols)

	totalH := src.RowOffset(rows)
	totalW := src.ColOffset(cols)

	return FixedAreas{
		Top: FixedAreaInfo{
			Count:         top,
			BoundaryIndex: top,
			PixelSize:     src.RowOffset(top),
		},
		Bottom: FixedAreaInfo{
			Count:         bottom,
			BoundaryIndex: rows - bottom,
			PixelSize:     totalH - src.RowOffset(rows-bottom),
		},
		Left: FixedAreaInfo{
			Count:         left,
			BoundaryIndex: left,
			PixelSize:     src.ColOffset(left),
		},
		Right: FixedAreaInfo{
			Count:         right,
			BoundaryIndex: cols - right,
			PixelSize:     totalW - src.ColOffset(cols-right),
		},
	}
}
