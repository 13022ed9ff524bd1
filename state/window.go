package state

import (
	"github.com/rsvim/rsvim-go/buf"
	"github.com/rsvim/rsvim-go/ui"
)

// Window couples a buffer with a viewport anchor, a cursor position,
// and the remembered wanted column. One Window corresponds to one
// on-screen text area; the widget tree hosts it as a leaf value.
type Window struct {
	Buf    *buf.Buffer
	Width  int
	Height int
	Opt    ui.Options

	StartLine int
	StartCol  int

	LineIdx int
	CharIdx int

	// WantedCol is the display column the user last explicitly moved
	// to; vertical moves try to restore it without disturbing it.
	WantedCol int

	Mode Mode
}

// NewWindow creates a window over buf sized width x height, cursor and
// viewport anchored at the buffer's start.
func NewWindow(b *buf.Buffer, width, height int, opt ui.Options) *Window {
	return &Window{Buf: b, Width: width, Height: height, Opt: opt}
}

func (w *Window) lineCount() int {
	n := w.Buf.Rope().LenLines()
	if n == 0 {
		return 1
	}
	return n
}

func (w *Window) lineLen(lineIdx int) int {
	return len(w.Buf.Rope().Line(lineIdx))
}

func (w *Window) clampLine(n int) int {
	if n < 0 {
		return 0
	}
	if last := w.lineCount() - 1; n > last {
		return last
	}
	return n
}

// clampChar clamps idx to a line's actual chars, [0, len-1], never one
// past the end (that's insert mode's Append variant, handled
// separately).
func (w *Window) clampChar(lineIdx, idx int) int {
	n := w.lineLen(lineIdx)
	if n == 0 {
		return 0
	}
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}

func (w *Window) displayColumn() int {
	line := w.Buf.Rope().Line(w.LineIdx)
	return w.Buf.ColumnIndexFor(w.LineIdx).WidthBefore(w.Buf.Options(), line, w.CharIdx)
}

// restoreWantedColumn places the cursor at WantedCol on the current
// line, clamped to that line's total width.
func (w *Window) restoreWantedColumn() {
	line := w.Buf.Rope().Line(w.LineIdx)
	cidx := w.Buf.ColumnIndexFor(w.LineIdx)
	if c, ok := cidx.CharAt(w.Buf.Options(), line, w.WantedCol+1); ok {
		w.CharIdx = c
		return
	}
	w.CharIdx = w.clampChar(w.LineIdx, len(line))
}

func (w *Window) clampStartLine(n int) int {
	if n < 0 {
		return 0
	}
	if last := w.lineCount() - 1; n > last {
		return last
	}
	return n
}

// adjustViewport scrolls the viewport minimally so the cursor stays
// visible: vertical scroll is counted in buffer lines regardless of
// wrap mode; horizontal scroll only applies when wrap=false.
func (w *Window) adjustViewport() {
	if w.LineIdx < w.StartLine {
		w.StartLine = w.LineIdx
	}
	if w.Height > 0 && w.LineIdx >= w.StartLine+w.Height {
		w.StartLine = w.LineIdx - w.Height + 1
	}
	w.StartLine = w.clampStartLine(w.StartLine)

	if w.Opt.Wrap {
		w.StartCol = 0
		return
	}
	col := w.displayColumn()
	if col < w.StartCol {
		w.StartCol = col
	}
	if w.Width > 0 && col >= w.StartCol+w.Width {
		w.StartCol = col - w.Width + 1
	}
	if w.StartCol < 0 {
		w.StartCol = 0
	}
}

// reclampCursorToViewport pulls the cursor back inside the current
// viewport after a window scroll moved the viewport out from under
// it, preferring WantedCol on the horizontal axis.
func (w *Window) reclampCursorToViewport() {
	if w.LineIdx < w.StartLine {
		w.LineIdx = w.StartLine
	}
	if w.Height > 0 && w.LineIdx >= w.StartLine+w.Height {
		w.LineIdx = w.StartLine + w.Height - 1
	}
	w.LineIdx = w.clampLine(w.LineIdx)

	if w.Opt.Wrap {
		w.CharIdx = w.clampChar(w.LineIdx, w.CharIdx)
		return
	}

	col := w.WantedCol
	if col < w.StartCol {
		col = w.StartCol
	}
	if w.Width > 0 && col >= w.StartCol+w.Width {
		col = w.StartCol + w.Width - 1
	}
	line := w.Buf.Rope().Line(w.LineIdx)
	cidx := w.Buf.ColumnIndexFor(w.LineIdx)
	if c, ok := cidx.CharAt(w.Buf.Options(), line, col+1); ok {
		w.CharIdx = c
		return
	}
	w.CharIdx = w.clampChar(w.LineIdx, len(line))
}
