package buf

// Rope is the contract a chunked, immutable-ish text sequence must
// satisfy to back a Buffer. Any implementation offering O(log N)
// line/char queries and lazy forward iteration satisfies it.
type Rope interface {
	LenChars() int
	LenLines() int

	// Line returns the content of buffer line i, excluding its EOL
	// terminator, as a rune slice so callers can index by char position.
	Line(i int) []rune

	// LinesAt returns a lazy forward iterator over lines starting at i.
	LinesAt(i int) LineIterator

	// CharsAt returns a lazy forward iterator over chars starting at the
	// absolute char index i (counting EOL terminators as chars).
	CharsAt(charIdx int) CharIterator

	CharToLine(charIdx int) int
	LineToChar(lineIdx int) int
}

// MutableRope is the optional write extension to Rope. The core spec
// treats the rope as an external, largely read-only collaborator, but
// a handful of motion-engine operations (e.g. GotoInsertMode(NewLine))
// mutate the buffer atomically before handing control to insert mode;
// an implementation that cannot support that simply doesn't implement
// MutableRope, and callers fall back to a read-only no-op.
type MutableRope interface {
	Rope

	// InsertLineAfter inserts a new line with content content immediately
	// after lineIdx (lineIdx == -1 inserts at the start).
	InsertLineAfter(lineIdx int, content string)

	// SplitLine splits lineIdx's content at charIdx into two lines: the
	// prefix [0, charIdx) stays at lineIdx, the suffix [charIdx, end)
	// becomes a new line immediately after it.
	SplitLine(lineIdx, charIdx int)
}

// LineIterator yields successive buffer lines.
type LineIterator interface {
	// Next returns the next line's runes (without EOL) and true, or
	// (nil, false) once exhausted.
	Next() ([]rune, bool)
}

// CharIterator yields successive chars from an absolute position.
type CharIterator interface {
	// Next returns the next char and true, or (0, false) once exhausted.
	Next() (rune, bool)
}
