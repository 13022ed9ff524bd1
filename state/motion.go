package state

import "github.com/rsvim/rsvim-go/buf"

// CursorMoveUpBy moves the cursor up n buffer lines, restoring
// WantedCol on the destination line.
func (w *Window) CursorMoveUpBy(n int) {
	w.LineIdx = w.clampLine(w.LineIdx - n)
	w.restoreWantedColumn()
	w.adjustViewport()
}

// CursorMoveDownBy moves the cursor down n buffer lines, restoring
// WantedCol on the destination line.
func (w *Window) CursorMoveDownBy(n int) {
	w.LineIdx = w.clampLine(w.LineIdx + n)
	w.restoreWantedColumn()
	w.adjustViewport()
}

// CursorMoveLeftBy moves the cursor left n chars on the current line,
// clamped to char 0, and updates WantedCol.
func (w *Window) CursorMoveLeftBy(n int) {
	w.CharIdx = w.clampChar(w.LineIdx, w.CharIdx-n)
	w.WantedCol = w.displayColumn()
	w.adjustViewport()
}

// CursorMoveRightBy moves the cursor right n chars on the current
// line, clamped to the line's last char, and updates WantedCol.
func (w *Window) CursorMoveRightBy(n int) {
	w.CharIdx = w.clampChar(w.LineIdx, w.CharIdx+n)
	w.WantedCol = w.displayColumn()
	w.adjustViewport()
}

// CursorMoveBy composes a vertical then a horizontal move, matching
// the order CursorMoveUpBy/DownBy then LeftBy/RightBy would run
// individually.
func (w *Window) CursorMoveBy(dx, dy int) {
	switch {
	case dy > 0:
		w.CursorMoveDownBy(dy)
	case dy < 0:
		w.CursorMoveUpBy(-dy)
	}
	switch {
	case dx > 0:
		w.CursorMoveRightBy(dx)
	case dx < 0:
		w.CursorMoveLeftBy(-dx)
	}
}

// CursorMoveTo positions the cursor at an absolute location. y is
// always a buffer line index; x is a display column when wrap=false,
// or a char position within the visible row when wrap=true, converted
// via the line's ColumnIndex.
func (w *Window) CursorMoveTo(x, y int) {
	w.LineIdx = w.clampLine(y)
	line := w.Buf.Rope().Line(w.LineIdx)

	if !w.Opt.Wrap {
		cidx := w.Buf.ColumnIndexFor(w.LineIdx)
		if c, ok := cidx.CharAt(w.Buf.Options(), line, x+1); ok {
			w.CharIdx = c
		} else {
			w.CharIdx = w.clampChar(w.LineIdx, len(line))
		}
	} else {
		w.CharIdx = w.clampChar(w.LineIdx, x)
	}

	w.WantedCol = w.displayColumn()
	w.adjustViewport()
}

// WindowScrollUpBy scrolls the viewport up n buffer lines, pulling the
// cursor back inside the viewport if it would otherwise leave it.
func (w *Window) WindowScrollUpBy(n int) {
	w.StartLine = w.clampStartLine(w.StartLine - n)
	w.reclampCursorToViewport()
}

// WindowScrollDownBy scrolls the viewport down n buffer lines.
func (w *Window) WindowScrollDownBy(n int) {
	w.StartLine = w.clampStartLine(w.StartLine + n)
	w.reclampCursorToViewport()
}

// WindowScrollLeftBy shifts start_col left by n display columns when
// wrap=false; a no-op when wrap=true, which always keeps start_col=0.
func (w *Window) WindowScrollLeftBy(n int) {
	if w.Opt.Wrap {
		return
	}
	w.StartCol -= n
	if w.StartCol < 0 {
		w.StartCol = 0
	}
	w.reclampCursorToViewport()
}

// WindowScrollRightBy shifts start_col right by n display columns when
// wrap=false; a no-op when wrap=true.
func (w *Window) WindowScrollRightBy(n int) {
	if w.Opt.Wrap {
		return
	}
	w.StartCol += n
	w.reclampCursorToViewport()
}

// WindowScrollBy composes a vertical then a horizontal window scroll.
func (w *Window) WindowScrollBy(dx, dy int) {
	switch {
	case dy > 0:
		w.WindowScrollDownBy(dy)
	case dy < 0:
		w.WindowScrollUpBy(-dy)
	}
	switch {
	case dx > 0:
		w.WindowScrollRightBy(dx)
	case dx < 0:
		w.WindowScrollLeftBy(-dx)
	}
}

// WindowScrollTo positions the viewport's top-left anchor at (x, y)
// exactly, then clamps.
func (w *Window) WindowScrollTo(x, y int) {
	w.StartLine = w.clampStartLine(y)
	if w.Opt.Wrap {
		w.StartCol = 0
	} else {
		w.StartCol = x
		if w.StartCol < 0 {
			w.StartCol = 0
		}
	}
	w.reclampCursorToViewport()
}

// GotoInsertMode transitions to insert mode per variant. For NewLine,
// it mutates the buffer before handing control to insert mode: a rope
// that does not implement buf.MutableRope silently cannot support it,
// and the cursor simply moves to insert mode on the same line instead
// of panicking.
func (w *Window) GotoInsertMode(variant InsertVariant) {
	switch variant {
	case InsertKeep:
		// cursor unchanged
	case InsertAppend:
		n := w.lineLen(w.LineIdx)
		w.CharIdx++
		if w.CharIdx > n {
			w.CharIdx = n
		}
	case InsertNewLine:
		if mr, ok := w.Buf.Rope().(buf.MutableRope); ok {
			mr.InsertLineAfter(w.LineIdx, "")
			w.Buf.ShiftLinesDown(w.LineIdx + 1)
			w.LineIdx++
			w.CharIdx = 0
		}
	}
	w.Mode = ModeInsert
	w.WantedCol = w.displayColumn()
	w.adjustViewport()
}

// GotoCommandLineExMode transfers focus to the command-line widget.
func (w *Window) GotoCommandLineExMode() {
	w.Mode = ModeCommandLineEx
}

// ExitToNormalMode returns to normal mode, e.g. on Escape or on a
// command-line submit/abort.
func (w *Window) ExitToNormalMode() {
	w.Mode = ModeNormal
}
