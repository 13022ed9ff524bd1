package state

import (
	"testing"

	"github.com/rsvim/rsvim-go/buf"
	"github.com/rsvim/rsvim-go/ui"
	"github.com/stretchr/testify/assert"
)

func newTestWindow(text string) *Window {
	rope := buf.NewSliceRope(text, "\n")
	b := buf.NewBuffer(rope)
	return NewWindow(b, 20, 10, ui.Options{Wrap: true})
}

func TestMotionCursorMoveRightClampsAtLineEnd(t *testing.T) {
	// A 13-char line, huge rightward move, wrap=true.
	w := newTestWindow("Hello, RSVIM!\nsecond\n")
	w.CursorMoveRightBy(10_000)

	assert.Equal(t, 0, w.LineIdx)
	assert.Equal(t, 12, w.CharIdx) // clamped to the line's last char
	assert.Equal(t, 0, w.StartCol) // wrap=true: no horizontal scroll
}

func TestMotionGotoInsertModeNewLine(t *testing.T) {
	w := newTestWindow("Should go to insert mode\n")
	w.GotoInsertMode(InsertNewLine)

	assert.Equal(t, 1, w.LineIdx)
	assert.Equal(t, 0, w.CharIdx)
	assert.Equal(t, ModeInsert, w.Mode)
	assert.Equal(t, "Should go to insert mode", string(w.Buf.Rope().Line(0)))
	assert.Equal(t, "", string(w.Buf.Rope().Line(1)))
}

func TestMotionGotoInsertModeAppendAllowsOnePastEnd(t *testing.T) {
	w := newTestWindow("abc\n")
	w.CharIdx = 2
	w.GotoInsertMode(InsertAppend)
	assert.Equal(t, 3, w.CharIdx) // one past 'c' at index 2
}

func TestMotionGotoInsertModeKeepLeavesCursor(t *testing.T) {
	w := newTestWindow("abc\n")
	w.CharIdx = 1
	w.GotoInsertMode(InsertKeep)
	assert.Equal(t, 1, w.CharIdx)
}

func TestMotionClampingStaysWithinBounds(t *testing.T) {
	w := newTestWindow("a\nbb\nccc\n")
	w.CursorMoveUpBy(100)
	assert.Equal(t, 0, w.LineIdx)
	w.CursorMoveDownBy(100)
	assert.Equal(t, 2, w.LineIdx)
	w.CursorMoveLeftBy(100)
	assert.Equal(t, 0, w.CharIdx)
	w.CursorMoveRightBy(100)
	assert.Equal(t, 2, w.CharIdx) // "ccc" last char index
}

func TestMotionWantedColumnPreservedAcrossDownThenUp(t *testing.T) {
	// Right(k) then Down(m) then Up(m) returns to the same (line, char)
	// when no intervening line is shorter than the starting column.
	w := newTestWindow("aaaaaa\nbbbbbb\ncccccc\n")
	w.CursorMoveRightBy(4)
	startLine, startChar := w.LineIdx, w.CharIdx

	w.CursorMoveDownBy(2)
	w.CursorMoveUpBy(2)

	assert.Equal(t, startLine, w.LineIdx)
	assert.Equal(t, startChar, w.CharIdx)
}

func TestMotionWantedColumnClampsOnShorterLine(t *testing.T) {
	w := newTestWindow("aaaaaa\nbb\n")
	w.CursorMoveRightBy(5) // char index 5, wanted col 5
	w.CursorMoveDownBy(1)
	assert.Equal(t, 1, w.CharIdx) // "bb" only has chars 0,1
	w.CursorMoveUpBy(1)
	assert.Equal(t, 5, w.CharIdx) // restored on the longer line again
}

func TestMotionAdjustViewportScrollsDownPastWindowHeight(t *testing.T) {
	w := newTestWindow("l0\nl1\nl2\nl3\nl4\nl5\n")
	w.Height = 3
	w.CursorMoveDownBy(4)
	assert.Equal(t, 4, w.LineIdx)
	assert.Equal(t, 2, w.StartLine) // lines [2,5) visible, cursor at 4
}

func TestMotionWindowScrollLeftRightNoopWhenWrapped(t *testing.T) {
	w := newTestWindow("hello\n")
	w.Opt.Wrap = true
	w.WindowScrollRightBy(10)
	assert.Equal(t, 0, w.StartCol)
}

func TestMotionWindowScrollToClampsNegative(t *testing.T) {
	w := newTestWindow("hello\n")
	w.Opt.Wrap = false
	w.WindowScrollTo(-5, -5)
	assert.Equal(t, 0, w.StartCol)
	assert.Equal(t, 0, w.StartLine)
}
