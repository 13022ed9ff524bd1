package ui

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"github.com/rsvim/rsvim-go/buf"
)

// Options selects the wrap/line-break rendering mode.
type Options struct {
	Wrap      bool
	LineBreak bool
}

// Row is one rendered row of the viewport: the buffer line it belongs
// to, its row index within the window, the half-open char range it
// covers, and the left/right fill counts of a multi-cell char truncated
// by the window boundary.
type Row struct {
	LineIdx         int
	RowIdx          int
	StartCharIdx    int
	EndCharIdx      int // exclusive
	StartFilledCols int
	EndFilledCols   int
}

// Viewport is the set of on-screen rows produced for one window.
type Viewport struct {
	StartLine int
	EndLine   int // exclusive
	Rows      []Row
}

// wordSegmentSafetyFactor bounds the bytes of a line handed to word
// segmentation: 4x the row/column budget is enough slack for worst-case
// multi-byte runes while still bounding the work per frame on
// pathologically long lines.
const wordSegmentSafetyFactor = 4

// Assemble computes the viewport for a window of winW x winH cells whose
// top-left anchor is (startLine, startCol) in buf, under opt. It never
// panics and is total over all inputs, including zero-sized windows and
// an anchor beyond end-of-buffer.
func Assemble(b *buf.Buffer, winW, winH, startLine, startCol int, opt Options) *Viewport {
	vp := &Viewport{StartLine: startLine, EndLine: startLine}
	if winW <= 0 || winH <= 0 {
		return vp
	}

	rope := b.Rope()
	lineIdx := startLine
	row := 0

	for row < winH {
		if lineIdx < 0 || lineIdx >= rope.LenLines() {
			break
		}
		line := rope.Line(lineIdx)
		cidx := b.ColumnIndexFor(lineIdx)
		col := 0
		if lineIdx == startLine {
			col = startCol
		}

		switch {
		case !opt.Wrap:
			r := assembleTruncatedRow(b.Options(), cidx, line, lineIdx, row, col, winW)
			vp.Rows = append(vp.Rows, r)
			row++
		default:
			rows := assembleWrappedRows(b.Options(), cidx, line, lineIdx, row, winH-row, winW, col, opt.LineBreak)
			vp.Rows = append(vp.Rows, rows...)
			row += len(rows)
		}
		lineIdx++
	}

	vp.EndLine = lineIdx
	return vp
}

// assembleTruncatedRow implements the wrap=false case: the line is cut
// off rather than continued on another row.
func assembleTruncatedRow(opt *buf.TextOptions, cidx *buf.ColumnIndex, line []rune, lineIdx, rowIdx, startCol, winW int) Row {
	if len(line) == 0 {
		return Row{LineIdx: lineIdx, RowIdx: rowIdx}
	}

	startChar, ok := cidx.CharAt(opt, line, startCol+1)
	if !ok {
		// Scrolled past the line's content entirely: empty payload, the
		// row still occupies the window visually (painted blank by the
		// canvas renderer).
		return Row{LineIdx: lineIdx, RowIdx: rowIdx, StartCharIdx: len(line), EndCharIdx: len(line)}
	}

	startFilled := 0
	if priorWidth := cidx.WidthBefore(opt, line, startChar); priorWidth < startCol {
		startFilled = cidx.WidthAt(opt, line, startChar) - startCol
	}

	endColExclusive := startCol + winW
	endFilled := 0
	endChar, ok := cidx.CharAt(opt, line, endColExclusive)
	if !ok {
		endChar = len(line) - 1
	} else if widthAtEnd := cidx.WidthAt(opt, line, endChar); widthAtEnd > endColExclusive {
		endFilled = endColExclusive - cidx.WidthBefore(opt, line, endChar)
	}

	if endChar < startChar {
		return Row{LineIdx: lineIdx, RowIdx: rowIdx, StartCharIdx: startChar, EndCharIdx: startChar, StartFilledCols: startFilled}
	}
	return Row{
		LineIdx: lineIdx, RowIdx: rowIdx,
		StartCharIdx: startChar, EndCharIdx: endChar + 1,
		StartFilledCols: startFilled, EndFilledCols: endFilled,
	}
}

// atom is one indivisible unit of wrap placement: either a single char
// (char-wrapping) or a UAX #29 word-boundary segment (word-wrapping).
type atom struct {
	chars []int
	width int
}

// assembleWrappedRows implements the wrap=true cases, char-wrapping or
// word-wrapping depending on lineBreak. It returns at most rowBudget
// rows.
func assembleWrappedRows(opt *buf.TextOptions, cidx *buf.ColumnIndex, line []rune, lineIdx, rowBase, rowBudget, winW, startCol int, lineBreak bool) []Row {
	if rowBudget <= 0 {
		return nil
	}

	startCharIdx := 0
	if startCol > 0 {
		if c, ok := cidx.CharAt(opt, line, startCol+1); ok {
			startCharIdx = c
		} else {
			startCharIdx = len(line)
		}
	}

	atoms := buildAtoms(opt, cidx, line, startCharIdx, lineBreak, rowBudget*winW)

	var rows []Row
	curStart, curEnd, used := -1, -1, 0

	flush := func(endFill int) {
		rows = append(rows, Row{
			LineIdx: lineIdx, RowIdx: rowBase + len(rows),
			StartCharIdx: curStart, EndCharIdx: curEnd + 1,
			EndFilledCols: endFill,
		})
		curStart, curEnd, used = -1, -1, 0
	}

	for i := 0; i < len(atoms) && len(rows) < rowBudget; i++ {
		a := atoms[i]

		if a.width > winW {
			if curStart != -1 {
				flush(winW - used)
				if len(rows) >= rowBudget {
					break
				}
			}
			if lineBreak {
				// Word segment itself doesn't fit: fall back to per-char
				// placement for this atom's chars, spliced back into the
				// work queue.
				split := make([]atom, len(a.chars))
				for j, c := range a.chars {
					split[j] = atom{chars: []int{c}, width: buf.CharWidth(opt, line[c])}
				}
				tail := append(append([]atom{}, split...), atoms[i+1:]...)
				atoms = append(atoms[:i], tail...)
				i--
				continue
			}
			// A single char wider than the window claims its own,
			// entirely-filler row.
			rows = append(rows, Row{
				LineIdx: lineIdx, RowIdx: rowBase + len(rows),
				StartCharIdx: a.chars[0], EndCharIdx: a.chars[len(a.chars)-1] + 1,
				StartFilledCols: winW,
			})
			continue
		}

		if used+a.width > winW && curStart != -1 {
			flush(winW - used)
			if len(rows) >= rowBudget {
				break
			}
		}
		if curStart == -1 {
			curStart = a.chars[0]
		}
		curEnd = a.chars[len(a.chars)-1]
		used += a.width
	}

	if curStart != -1 && len(rows) < rowBudget {
		flush(winW - used)
	}
	if len(rows) == 0 {
		rows = append(rows, Row{LineIdx: lineIdx, RowIdx: rowBase})
	}
	if len(rows) > rowBudget {
		rows = rows[:rowBudget]
	}
	return rows
}

// buildAtoms turns line[startCharIdx:] into placement atoms: one per
// char when lineBreak is false, or UAX #29 word-boundary segments when
// true. When word-wrapping, only the first maxChars*wordSegmentSafetyFactor
// bytes of the line are segmented; char-wrapping considers the whole
// rest of the line.
func buildAtoms(opt *buf.TextOptions, cidx *buf.ColumnIndex, line []rune, startCharIdx int, lineBreak bool, maxChars int) []atom {
	rest := line[startCharIdx:]
	if !lineBreak {
		atoms := make([]atom, 0, len(rest))
		for i, r := range rest {
			atoms = append(atoms, atom{chars: []int{startCharIdx + i}, width: buf.CharWidth(opt, r)})
		}
		return atoms
	}

	s := runesToSafeString(rest, maxChars*wordSegmentSafetyFactor)

	var atoms []atom
	charPos := startCharIdx
	remaining := s
	for len(remaining) > 0 {
		word, rest2, _ := uniseg.FirstWordInString(remaining, -1)
		n := utf8.RuneCountInString(word)
		if n == 0 {
			break
		}
		chars := make([]int, n)
		width := 0
		for i := 0; i < n; i++ {
			chars[i] = charPos + i
			width += buf.CharWidth(opt, line[charPos+i])
		}
		atoms = append(atoms, atom{chars: chars, width: width})
		charPos += n
		remaining = rest2
	}
	return atoms
}

// runesToSafeString converts rs to a string, truncated to at most
// maxBytes bytes without splitting a rune.
func runesToSafeString(rs []rune, maxBytes int) string {
	if maxBytes <= 0 {
		return ""
	}
	var n, bytes int
	for n = 0; n < len(rs); n++ {
		w := utf8.RuneLen(rs[n])
		if bytes+w > maxBytes {
			break
		}
		bytes += w
	}
	return string(rs[:n])
}
