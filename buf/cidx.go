package buf

// ColumnIndex is the per-line prefix-sum display-width index.
// char2width[i] is the inclusive prefix display width covering chars
// [0..=i]. width2char maps a prefix width to the right-most char index
// whose inclusive prefix width equals it (a zero-width rune can share
// a width with its neighbor; this index keeps the later char on
// collision).
//
// The index is built lazily: queries only walk the line as far as they
// need to, and repeated queries amortize to O(line length) total.
type ColumnIndex struct {
	char2width []int
	width2char map[int]int
}

// NewColumnIndex creates an empty index. Call sites build the cache
// lazily the first time a query needs it.
func NewColumnIndex() *ColumnIndex {
	return &ColumnIndex{width2char: make(map[int]int)}
}

func (c *ColumnIndex) buildCache(opt *TextOptions, line []rune, charIdxBound, widthBound int, hasCharBound, hasWidthBound bool) {
	n := len(line)
	start := len(c.char2width)
	var prefix int
	if start > 0 {
		prefix = c.char2width[start-1]
	}

	for i := start; i < n; i++ {
		prefix += CharWidth(opt, line[i])
		c.char2width = append(c.char2width, prefix)

		idx := len(c.char2width) - 1
		if existing, ok := c.width2char[prefix]; !ok || idx > existing {
			c.width2char[prefix] = idx
		}

		if hasCharBound && i > charIdxBound {
			return
		}
		if hasWidthBound && prefix > widthBound {
			return
		}
	}
}

func (c *ColumnIndex) buildUntilChar(opt *TextOptions, line []rune, charIdx int) {
	c.buildCache(opt, line, charIdx, 0, true, false)
}

func (c *ColumnIndex) buildUntilWidth(opt *TextOptions, line []rune, width int) {
	c.buildCache(opt, line, 0, width, false, true)
}

// lastWidth returns the greatest key present in width2char, i.e. the
// prefix width of the last char cached so far (the line's total display
// width once the whole line has been built), and whether the index is
// non-empty.
func (c *ColumnIndex) lastWidth() (int, bool) {
	if len(c.char2width) == 0 {
		return 0, false
	}
	return c.char2width[len(c.char2width)-1], true
}

// WidthBefore returns the inclusive prefix width over chars [0, charIdx).
func (c *ColumnIndex) WidthBefore(opt *TextOptions, line []rune, charIdx int) int {
	c.buildUntilChar(opt, line, charIdx)

	if charIdx == 0 || len(c.char2width) == 0 {
		return 0
	}
	if charIdx-1 < len(c.char2width) {
		return c.char2width[charIdx-1]
	}
	return c.char2width[len(c.char2width)-1]
}

// WidthAt returns the inclusive prefix width over chars [0, charIdx].
// Equivalent to WidthBefore(charIdx + 1).
func (c *ColumnIndex) WidthAt(opt *TextOptions, line []rune, charIdx int) int {
	c.buildUntilChar(opt, line, charIdx)

	if len(c.char2width) == 0 {
		return 0
	}
	if charIdx < len(c.char2width) {
		return c.char2width[charIdx]
	}
	return c.char2width[len(c.char2width)-1]
}

// CharBefore returns the last char index with strict prefix width < w.
func (c *ColumnIndex) CharBefore(opt *TextOptions, line []rune, w int) (int, bool) {
	c.buildUntilWidth(opt, line, w)

	if w == 0 {
		return 0, false
	}
	last, ok := c.lastWidth()
	if !ok {
		return 0, false
	}
	if w > last {
		return 0, false
	}
	for width := w - 1; width >= 0; width-- {
		if ch, ok := c.width2char[width]; ok {
			return ch, true
		}
	}
	return 0, false
}

// CharAt returns the char index whose inclusive width range covers w.
func (c *ColumnIndex) CharAt(opt *TextOptions, line []rune, w int) (int, bool) {
	c.buildUntilWidth(opt, line, w)

	last, ok := c.lastWidth()
	if !ok {
		return 0, false
	}
	if w == 0 {
		if c.char2width[0] == 0 {
			return 0, true
		}
		return 0, false
	}
	if w > last {
		return 0, false
	}
	for width := w; width <= last; width++ {
		if ch, ok := c.width2char[width]; ok {
			return ch, true
		}
	}
	return 0, false
}

// CharAfter returns the first char index whose inclusive width strictly
// exceeds w.
func (c *ColumnIndex) CharAfter(opt *TextOptions, line []rune, w int) (int, bool) {
	c.buildUntilWidth(opt, line, w+1)

	if len(c.char2width) == 0 {
		return 0, false
	}
	if w == 0 {
		return 0, true
	}
	for ch, cw := range c.char2width {
		if cw > w {
			return ch, true
		}
	}
	return 0, false
}

// LastCharUntil returns the greatest char index whose inclusive width is
// <= w; if w exceeds the line's total width, it returns the last char.
func (c *ColumnIndex) LastCharUntil(opt *TextOptions, line []rune, w int) (int, bool) {
	c.buildUntilWidth(opt, line, w)

	if len(c.char2width) == 0 {
		return 0, false
	}
	if w == 0 {
		if c.char2width[0] == 0 {
			return 0, true
		}
		return 0, false
	}

	last, _ := c.lastWidth()
	if w > last {
		return len(c.char2width) - 1, true
	}
	for width := w; width >= 0; width-- {
		if ch, ok := c.width2char[width]; ok {
			return ch, true
		}
	}
	return 0, false
}

// TruncateSinceChar drops cached entries with char index >= i. It is
// idempotent: calling it twice in a row with the same i is equivalent to
// calling it once.
func (c *ColumnIndex) TruncateSinceChar(i int) {
	if len(c.char2width) == 0 {
		return
	}
	if i >= len(c.char2width) {
		return
	}
	keep := i - 1
	if keep < 0 {
		keep = 0
		c.char2width = c.char2width[:0]
	} else {
		c.char2width = c.char2width[:keep+1]
	}
	endChar := len(c.char2width)
	for w, ch := range c.width2char {
		if ch >= endChar {
			delete(c.width2char, w)
		}
	}
}

// TruncateSinceWidth drops cached entries for prefix width >= w.
func (c *ColumnIndex) TruncateSinceWidth(w int) {
	if len(c.char2width) == 0 {
		return
	}
	last, _ := c.lastWidth()
	if w > last {
		return
	}
	for width := w; width >= 1; width-- {
		if ch, ok := c.width2char[width]; ok {
			c.TruncateSinceChar(ch)
			return
		}
	}
	// No char reaches as low as w: the whole cache predates it.
	c.char2width = c.char2width[:0]
	c.width2char = make(map[int]int)
}
