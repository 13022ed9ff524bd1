package buf

// SliceRope is a minimal in-memory Rope backed by a plain slice of
// lines. It isn't a chunked production rope, but it's a real, usable
// implementation adequate for tests, the headless test harness
// (`--headless`), and small buffers.
type SliceRope struct {
	lines []string
	eol   string
}

// NewSliceRope splits text into lines on eol (e.g. "\n", "\r\n", "\r").
// A trailing eol produces no extra empty line, matching how a file
// ending in a newline has exactly that many lines, not one more.
func NewSliceRope(text string, eol string) *SliceRope {
	if eol == "" {
		eol = "\n"
	}
	var lines []string
	start := 0
	for i := 0; i+len(eol) <= len(text); {
		if text[i:i+len(eol)] == eol {
			lines = append(lines, text[start:i])
			i += len(eol)
			start = i
			continue
		}
		i++
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	} else if len(lines) == 0 {
		lines = append(lines, "")
	}
	return &SliceRope{lines: lines, eol: eol}
}

func (r *SliceRope) LenLines() int { return len(r.lines) }

// InsertLineAfter implements MutableRope.
func (r *SliceRope) InsertLineAfter(lineIdx int, content string) {
	at := lineIdx + 1
	if at < 0 {
		at = 0
	}
	if at > len(r.lines) {
		at = len(r.lines)
	}
	r.lines = append(r.lines, "")
	copy(r.lines[at+1:], r.lines[at:])
	r.lines[at] = content
}

// SplitLine implements MutableRope.
func (r *SliceRope) SplitLine(lineIdx, charIdx int) {
	if lineIdx < 0 || lineIdx >= len(r.lines) {
		return
	}
	runes := []rune(r.lines[lineIdx])
	if charIdx < 0 {
		charIdx = 0
	}
	if charIdx > len(runes) {
		charIdx = len(runes)
	}
	before := string(runes[:charIdx])
	after := string(runes[charIdx:])
	r.lines[lineIdx] = before
	r.InsertLineAfter(lineIdx, after)
}

func (r *SliceRope) LenChars() int {
	n := 0
	for i, l := range r.lines {
		n += len([]rune(l))
		if i < len(r.lines)-1 {
			n += len([]rune(r.eol))
		}
	}
	return n
}

func (r *SliceRope) Line(i int) []rune {
	if i < 0 || i >= len(r.lines) {
		return nil
	}
	return []rune(r.lines[i])
}

func (r *SliceRope) LinesAt(i int) LineIterator {
	return &sliceLineIter{r: r, next: i}
}

func (r *SliceRope) CharToLine(charIdx int) int {
	remaining := charIdx
	for i, l := range r.lines {
		n := len([]rune(l)) + len([]rune(r.eol))
		if remaining < n || i == len(r.lines)-1 {
			return i
		}
		remaining -= n
	}
	return len(r.lines) - 1
}

func (r *SliceRope) LineToChar(lineIdx int) int {
	n := 0
	for i := 0; i < lineIdx && i < len(r.lines); i++ {
		n += len([]rune(r.lines[i])) + len([]rune(r.eol))
	}
	return n
}

func (r *SliceRope) CharsAt(charIdx int) CharIterator {
	return &sliceCharIter{r: r, lineIdx: r.CharToLine(charIdx), charIdx: charIdx}
}

type sliceLineIter struct {
	r    *SliceRope
	next int
}

func (it *sliceLineIter) Next() ([]rune, bool) {
	if it.next >= len(it.r.lines) {
		return nil, false
	}
	l := it.r.Line(it.next)
	it.next++
	return l, true
}

type sliceCharIter struct {
	r       *SliceRope
	lineIdx int
	charIdx int
}

func (it *sliceCharIter) Next() (rune, bool) {
	if it.lineIdx >= len(it.r.lines) {
		return 0, false
	}
	lineStart := it.r.LineToChar(it.lineIdx)
	line := it.r.Line(it.lineIdx)
	eol := []rune(it.r.eol)
	offset := it.charIdx - lineStart

	if offset < len(line) {
		it.charIdx++
		return line[offset], true
	}
	eolOffset := offset - len(line)
	if eolOffset < len(eol) && it.lineIdx < len(it.r.lines)-1 {
		it.charIdx++
		return eol[eolOffset], true
	}

	it.lineIdx++
	it.charIdx = it.r.LineToChar(it.lineIdx)
	return it.Next()
}
