package ui

import (
	"testing"

	"github.com/rsvim/rsvim-go/buf"
	"github.com/stretchr/testify/assert"
)

func TestViewportZeroSizeWindow(t *testing.T) {
	b := buf.NewBuffer(buf.NewSliceRope("hello\n", "\n"))
	vp := Assemble(b, 0, 0, 0, 0, Options{})
	assert.Empty(t, vp.Rows)
	assert.Equal(t, 0, vp.EndLine)
}

func TestViewportTruncateStopsAtEndOfBuffer(t *testing.T) {
	// 3 lines in a 5-row window: no phantom rows past end-of-buffer.
	b := buf.NewBuffer(buf.NewSliceRope("one\ntwo\nthree\n", "\n"))
	vp := Assemble(b, 10, 5, 0, 0, Options{Wrap: false})
	assert.Len(t, vp.Rows, 3)
	assert.Equal(t, 0, vp.Rows[0].LineIdx)
	assert.Equal(t, 2, vp.Rows[2].LineIdx)
	assert.Equal(t, 3, vp.EndLine)
}

func TestViewportTruncateTabExpansionScenario(t *testing.T) {
	// "Hello,\tRSVIM!" - tab at char index 6 expands to a constant 8-wide stop.
	b := buf.NewBuffer(buf.NewSliceRope("Hello,\tRSVIM!\n", "\n"))
	line := b.Rope().Line(0)
	cidx := b.ColumnIndexFor(0)
	assert.Equal(t, 6, cidx.WidthAt(b.Options(), line, 5))
	assert.Equal(t, 14, cidx.WidthAt(b.Options(), line, 6))

	vp := Assemble(b, 4, 1, 0, 0, Options{Wrap: false})
	row := vp.Rows[0]
	assert.Equal(t, 0, row.StartCharIdx)
	// window is only 4 cols wide: "Hell" fits exactly within [0,4).
	assert.Equal(t, 4, row.EndCharIdx)
	assert.Equal(t, 0, row.EndFilledCols)
}

func TestViewportTruncateStartColStraddlesWideChar(t *testing.T) {
	// CJK chars are width 2; starting at column 1 straddles the first char.
	b := buf.NewBuffer(buf.NewSliceRope("你好\n", "\n")) // "你好"
	vp := Assemble(b, 10, 1, 0, 1, Options{Wrap: false})
	row := vp.Rows[0]
	assert.Equal(t, 0, row.StartCharIdx)
	assert.Equal(t, 1, row.StartFilledCols) // one visible cell of the straddled glyph, blanked
}

func TestViewportCharWrapSplitsAcrossRows(t *testing.T) {
	b := buf.NewBuffer(buf.NewSliceRope("abcdefgh\n", "\n"))
	vp := Assemble(b, 3, 3, 0, 0, Options{Wrap: true, LineBreak: false})
	assert.Len(t, vp.Rows, 3)
	assert.Equal(t, 0, vp.Rows[0].StartCharIdx)
	assert.Equal(t, 3, vp.Rows[0].EndCharIdx)
	assert.Equal(t, 3, vp.Rows[1].StartCharIdx)
	assert.Equal(t, 6, vp.Rows[1].EndCharIdx)
	assert.Equal(t, 6, vp.Rows[2].StartCharIdx)
	assert.Equal(t, 8, vp.Rows[2].EndCharIdx)
	assert.Equal(t, 1, vp.Rows[2].EndFilledCols) // "gh" leaves one unused cell
}

func TestViewportCharWiderThanWindowGetsOwnFilledRow(t *testing.T) {
	b := buf.NewBuffer(buf.NewSliceRope("a你b\n", "\n")) // a, wide CJK char, b
	vp := Assemble(b, 1, 3, 0, 0, Options{Wrap: true, LineBreak: false})
	assert.Equal(t, 3, len(vp.Rows))
	assert.Equal(t, 1, vp.Rows[1].StartFilledCols)
}

func TestViewportWordWrapKeepsWordsTogether(t *testing.T) {
	b := buf.NewBuffer(buf.NewSliceRope("foo bar baz\n", "\n"))
	vp := Assemble(b, 7, 3, 0, 0, Options{Wrap: true, LineBreak: true})
	assert.NotEmpty(t, vp.Rows)
	// "foo bar" (7 cols) fits the first row; "baz" wraps to the next.
	first := vp.Rows[0]
	assert.Equal(t, 0, first.StartCharIdx)
	assert.GreaterOrEqual(t, first.EndCharIdx, 3)
}

func TestViewportEmptyLineEmitsOneRow(t *testing.T) {
	b := buf.NewBuffer(buf.NewSliceRope("\n\n", "\n"))
	vp := Assemble(b, 10, 2, 0, 0, Options{Wrap: false})
	assert.Len(t, vp.Rows, 2)
	for _, r := range vp.Rows {
		assert.Equal(t, r.StartCharIdx, r.EndCharIdx)
	}
}

func TestViewportRowsNeverExceedWindowHeight(t *testing.T) {
	b := buf.NewBuffer(buf.NewSliceRope("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa\n", "\n"))
	vp := Assemble(b, 2, 4, 0, 0, Options{Wrap: true, LineBreak: false})
	assert.LessOrEqual(t, len(vp.Rows), 4)
}
