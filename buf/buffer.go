package buf

import "sync"

// Buffer couples a Rope collaborator with buffer-local options and a
// per-line ColumnIndex cache. One ColumnIndex is owned per buffer line
// and destroyed with it.
type Buffer struct {
	mu   sync.Mutex
	rope Rope
	opt  *TextOptions
	cidx map[int]*ColumnIndex
}

// NewBuffer wraps rope with fresh, default buffer-local options. Writing
// any option that affects display width drops every line's ColumnIndex,
// since widths computed under the old option are no longer valid.
func NewBuffer(rope Rope) *Buffer {
	b := &Buffer{rope: rope, opt: NewTextOptions(), cidx: make(map[int]*ColumnIndex)}
	b.opt.OnInvalidate(func() {
		b.mu.Lock()
		b.cidx = make(map[int]*ColumnIndex)
		b.mu.Unlock()
	})
	return b
}

func (b *Buffer) Rope() Rope          { return b.rope }
func (b *Buffer) Options() *TextOptions { return b.opt }

// ColumnIndexFor returns (creating if necessary) the ColumnIndex owned by
// line lineIdx.
func (b *Buffer) ColumnIndexFor(lineIdx int) *ColumnIndex {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.cidx[lineIdx]
	if !ok {
		c = NewColumnIndex()
		b.cidx[lineIdx] = c
	}
	return c
}

// InvalidateLineFromChar truncates lineIdx's ColumnIndex cache from
// charIdx onward, called after an edit touches that line starting at
// charIdx.
func (b *Buffer) InvalidateLineFromChar(lineIdx, charIdx int) {
	b.mu.Lock()
	c, ok := b.cidx[lineIdx]
	b.mu.Unlock()
	if ok {
		c.TruncateSinceChar(charIdx)
	}
}

// DropLine discards lineIdx's ColumnIndex entirely, e.g. when the line
// itself is deleted and line indices below it shift up.
func (b *Buffer) DropLine(lineIdx int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.cidx, lineIdx)
}

// ShiftLinesDown renumbers every cached ColumnIndex at or after fromIdx
// up by one, matching a rope insertion of a new line at fromIdx.
func (b *Buffer) ShiftLinesDown(fromIdx int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	shifted := make(map[int]*ColumnIndex, len(b.cidx))
	for idx, c := range b.cidx {
		if idx >= fromIdx {
			shifted[idx+1] = c
		} else {
			shifted[idx] = c
		}
	}
	b.cidx = shifted
}

// LineWidth returns the line's total display width, building its
// ColumnIndex fully if needed.
func (b *Buffer) LineWidth(lineIdx int) int {
	line := b.rope.Line(lineIdx)
	c := b.ColumnIndexFor(lineIdx)
	if len(line) == 0 {
		return 0
	}
	return c.WidthAt(b.opt, line, len(line)-1)
}
