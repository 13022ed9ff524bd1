// Package ui implements the display engine: the frame buffer, the
// viewport assembler, the widget tree, the canvas renderer, and the
// terminal glue that paints a Frame to a real terminal.
package ui

// Style describes the visual attributes of a cell: the usual
// bold/dim/italic/underline/strike/reverse/blink toggles plus ANSI
// foreground/background color strings.
type Style struct {
	Bold      bool
	Dim       bool
	Italic    bool
	Underline bool
	Strike    bool
	Reverse   bool
	Blink     bool
	Fg        string
	Bg        string
}

// Cell is one terminal cell: a short symbol (almost always a single rune,
// but wide enough to hold a multi-rune grapheme cluster the viewport
// chose to paint atomically) plus its style.
type Cell struct {
	Symbol string
	Style  Style
}

var blankCell = Cell{Symbol: " "}

// Frame is a fixed-size grid of cells plus a dirty-row set. Rather than
// diffing two full grids on every Render, Frame marks a row dirty
// whenever a cell in it is written, so a terminal flush only has to
// repaint the rows written since the last reset.
type Frame struct {
	width, height int
	cells         []Cell
	dirty         []bool
}

// NewFrame allocates a width x height frame, every cell blank.
func NewFrame(width, height int) *Frame {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	f := &Frame{width: width, height: height}
	f.cells = make([]Cell, width*height)
	for i := range f.cells {
		f.cells[i] = blankCell
	}
	f.dirty = make([]bool, height)
	return f
}

func (f *Frame) Width() int  { return f.width }
func (f *Frame) Height() int { return f.height }

// pos2idx converts (x, y) to a row-major cell index. idx2pos is its exact
// inverse within bounds.
func (f *Frame) pos2idx(x, y int) int { return y*f.width + x }

func (f *Frame) idx2pos(idx int) (x, y int) { return idx % f.width, idx / f.width }

func (f *Frame) inBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// SetCell writes cell at (x, y) and returns the cell that was there
// before. Panics if out of bounds; use TrySetCell to avoid that.
func (f *Frame) SetCell(x, y int, cell Cell) Cell {
	if !f.inBounds(x, y) {
		panic("ui: Frame.SetCell position out of bounds")
	}
	idx := f.pos2idx(x, y)
	old := f.cells[idx]
	f.cells[idx] = cell
	f.dirty[y] = true
	return old
}

// TrySetCell is SetCell but returns (Cell{}, false) instead of panicking
// when (x, y) is out of bounds.
func (f *Frame) TrySetCell(x, y int, cell Cell) (Cell, bool) {
	if !f.inBounds(x, y) {
		return Cell{}, false
	}
	return f.SetCell(x, y, cell), true
}

// SetCellsAt writes cells left-to-right starting at (x, y), clipping at
// the row's right edge, and returns the cells that were overwritten.
func (f *Frame) SetCellsAt(x, y int, cells []Cell) []Cell {
	olds := make([]Cell, 0, len(cells))
	for i, c := range cells {
		cx := x + i
		if cx >= f.width {
			break
		}
		olds = append(olds, f.SetCell(cx, y, c))
	}
	return olds
}

// GetCell reads the cell at (x, y), returning the zero Cell when out of
// bounds.
func (f *Frame) GetCell(x, y int) Cell {
	if !f.inBounds(x, y) {
		return Cell{}
	}
	return f.cells[f.pos2idx(x, y)]
}

// TryGetCell is GetCell but reports whether (x, y) was in bounds.
func (f *Frame) TryGetCell(x, y int) (Cell, bool) {
	if !f.inBounds(x, y) {
		return Cell{}, false
	}
	return f.cells[f.pos2idx(x, y)], true
}

// DirtyRows returns the indices of rows touched since the last
// ResetDirtyRows.
func (f *Frame) DirtyRows() []int {
	var rows []int
	for y, d := range f.dirty {
		if d {
			rows = append(rows, y)
		}
	}
	return rows
}

// ResetDirtyRows clears the dirty-row set.
func (f *Frame) ResetDirtyRows() {
	for y := range f.dirty {
		f.dirty[y] = false
	}
}

// SetSize reallocates the frame to width x height, discarding prior
// content, and marks every row dirty so the next flush repaints the
// whole screen.
func (f *Frame) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	f.width, f.height = width, height
	f.cells = make([]Cell, width*height)
	for i := range f.cells {
		f.cells[i] = blankCell
	}
	f.dirty = make([]bool, height)
	for y := range f.dirty {
		f.dirty[y] = true
	}
}
